package model

import (
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// Triangle is one flat-shaded face in model space.
type Triangle struct {
	V      [3]mgl32.Vec3
	Normal mgl32.Vec3
	Color  [4]float32
}

// Mesh is a scene flattened into triangles with node transforms applied.
type Mesh struct {
	Name      string
	Triangles []Triangle
	Min, Max  mgl32.Vec3
	// Sources lists the files the mesh was built from: the document itself
	// and any external buffers it references.
	Sources []string
}

// Center returns the midpoint of the bounding box.
func (m *Mesh) Center() mgl32.Vec3 {
	return m.Min.Add(m.Max).Mul(0.5)
}

// Radius returns half the bounding box diagonal.
func (m *Mesh) Radius() float32 {
	return m.Max.Sub(m.Min).Len() * 0.5
}

var defaultColor = [4]float32{0.8, 0.8, 0.8, 1}

// Load reads a .gltf/.glb file and flattens the selected scene. path may carry
// a "#SceneN" selector.
func Load(path string) (*Mesh, error) {
	file, scene, err := SplitSelector(path)
	if err != nil {
		return nil, err
	}
	doc, err := gltf.Open(file)
	if err != nil {
		return nil, fmt.Errorf("model: open %s: %w", file, err)
	}
	mesh, err := FromDocument(doc, scene)
	if err != nil {
		return nil, err
	}
	mesh.Sources = sources(file, doc)
	return mesh, nil
}

// Decode reads a self-contained document (embedded buffers only) from r and
// flattens the given scene.
func Decode(r io.Reader, scene int) (*Mesh, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("model: decode: %w", err)
	}
	return FromDocument(doc, scene)
}

func sources(file string, doc *gltf.Document) []string {
	out := []string{filepath.Clean(file)}
	dir := filepath.Dir(file)
	for _, buf := range doc.Buffers {
		if buf.URI == "" || strings.HasPrefix(buf.URI, "data:") {
			continue
		}
		uri, err := url.PathUnescape(buf.URI)
		if err != nil {
			continue
		}
		out = append(out, filepath.Join(dir, filepath.FromSlash(uri)))
	}
	return out
}

// FromDocument flattens scene (or the default scene when scene < 0).
func FromDocument(doc *gltf.Document, scene int) (*Mesh, error) {
	if scene < 0 {
		scene = 0
		if doc.Scene != nil {
			scene = *doc.Scene
		}
	}
	if scene >= len(doc.Scenes) {
		return nil, fmt.Errorf("%w: Scene%d (document has %d)", ErrNoScene, scene, len(doc.Scenes))
	}

	b := &builder{doc: doc, mesh: &Mesh{Name: doc.Scenes[scene].Name}}
	for _, n := range doc.Scenes[scene].Nodes {
		if err := b.node(n, mgl32.Ident4(), 0); err != nil {
			return nil, err
		}
	}
	b.bounds()
	return b.mesh, nil
}

// maxDepth guards against cyclic node graphs in malformed files.
const maxDepth = 64

type builder struct {
	doc  *gltf.Document
	mesh *Mesh
}

func (b *builder) node(idx int, parent mgl32.Mat4, depth int) error {
	if idx < 0 || idx >= len(b.doc.Nodes) {
		return fmt.Errorf("model: node %d out of range", idx)
	}
	if depth > maxDepth {
		return fmt.Errorf("model: node hierarchy deeper than %d", maxDepth)
	}
	n := b.doc.Nodes[idx]
	world := parent.Mul4(localMatrix(n))

	if n.Mesh != nil {
		if err := b.meshAt(*n.Mesh, world); err != nil {
			return fmt.Errorf("model: node %q: %w", n.Name, err)
		}
	}
	for _, child := range n.Children {
		if err := b.node(child, world, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func localMatrix(n *gltf.Node) mgl32.Mat4 {
	m := n.MatrixOrDefault()
	if m != gltf.DefaultMatrix {
		var out mgl32.Mat4
		for i, v := range m {
			out[i] = float32(v)
		}
		return out
	}
	t := n.TranslationOrDefault()
	r := n.RotationOrDefault()
	s := n.ScaleOrDefault()
	rot := mgl32.Quat{W: float32(r[3]), V: mgl32.Vec3{float32(r[0]), float32(r[1]), float32(r[2])}}
	return mgl32.Translate3D(float32(t[0]), float32(t[1]), float32(t[2])).
		Mul4(rot.Normalize().Mat4()).
		Mul4(mgl32.Scale3D(float32(s[0]), float32(s[1]), float32(s[2])))
}

func (b *builder) meshAt(idx int, world mgl32.Mat4) error {
	if idx < 0 || idx >= len(b.doc.Meshes) {
		return fmt.Errorf("mesh %d out of range", idx)
	}
	for _, prim := range b.doc.Meshes[idx].Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		if err := b.primitive(prim, world); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) primitive(prim *gltf.Primitive, world mgl32.Mat4) error {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil
	}
	posAcc, err := b.accessor(posIdx)
	if err != nil {
		return fmt.Errorf("positions: %w", err)
	}
	positions, err := modeler.ReadPosition(b.doc, posAcc, nil)
	if err != nil {
		return fmt.Errorf("read positions: %w", err)
	}

	var indices []uint32
	if prim.Indices != nil {
		idxAcc, err := b.accessor(*prim.Indices)
		if err != nil {
			return fmt.Errorf("indices: %w", err)
		}
		indices, err = modeler.ReadIndices(b.doc, idxAcc, nil)
		if err != nil {
			return fmt.Errorf("read indices: %w", err)
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	color := b.materialColor(prim.Material)
	for i := 0; i+2 < len(indices); i += 3 {
		var tri Triangle
		for k := 0; k < 3; k++ {
			vi := int(indices[i+k])
			if vi >= len(positions) {
				return fmt.Errorf("index %d out of range", vi)
			}
			p := positions[vi]
			tri.V[k] = world.Mul4x1(mgl32.Vec4{p[0], p[1], p[2], 1}).Vec3()
		}
		tri.Normal = faceNormal(tri.V)
		tri.Color = color
		b.mesh.Triangles = append(b.mesh.Triangles, tri)
	}
	return nil
}

// accessor returns accessor idx after checking it and its buffer view exist;
// decoding does not validate references.
func (b *builder) accessor(idx int) (*gltf.Accessor, error) {
	if idx < 0 || idx >= len(b.doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", idx)
	}
	acc := b.doc.Accessors[idx]
	if acc == nil {
		return nil, fmt.Errorf("accessor %d is empty", idx)
	}
	if bv := acc.BufferView; bv != nil {
		if *bv < 0 || *bv >= len(b.doc.BufferViews) {
			return nil, fmt.Errorf("accessor %d: buffer view %d out of range", idx, *bv)
		}
		view := b.doc.BufferViews[*bv]
		if view == nil {
			return nil, fmt.Errorf("accessor %d: buffer view %d is empty", idx, *bv)
		}
		if buf := view.Buffer; buf < 0 || buf >= len(b.doc.Buffers) {
			return nil, fmt.Errorf("accessor %d: buffer %d out of range", idx, buf)
		}
	}
	return acc, nil
}

func (b *builder) materialColor(idx *int) [4]float32 {
	if idx == nil || *idx < 0 || *idx >= len(b.doc.Materials) {
		return defaultColor
	}
	pbr := b.doc.Materials[*idx].PBRMetallicRoughness
	if pbr == nil {
		return defaultColor
	}
	c := pbr.BaseColorFactorOrDefault()
	return [4]float32{float32(c[0]), float32(c[1]), float32(c[2]), float32(c[3])}
}

func faceNormal(v [3]mgl32.Vec3) mgl32.Vec3 {
	n := v[1].Sub(v[0]).Cross(v[2].Sub(v[0]))
	if n.Len() == 0 {
		return mgl32.Vec3{0, 1, 0}
	}
	return n.Normalize()
}

func (b *builder) bounds() {
	m := b.mesh
	if len(m.Triangles) == 0 {
		return
	}
	m.Min = m.Triangles[0].V[0]
	m.Max = m.Min
	for _, tri := range m.Triangles {
		for _, v := range tri.V {
			for i := 0; i < 3; i++ {
				m.Min[i] = min(m.Min[i], v[i])
				m.Max[i] = max(m.Max[i], v[i])
			}
		}
	}
}
