package model

import (
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
)

const assetsDir = "../assets"

func TestSplitSelector(t *testing.T) {
	cases := []struct {
		in      string
		file    string
		scene   int
		wantErr bool
	}{
		{"gltf/puck.gltf#Scene0", "gltf/puck.gltf", 0, false},
		{"gltf/puck.gltf#Scene12", "gltf/puck.gltf", 12, false},
		{"gltf/puck.gltf", "gltf/puck.gltf", -1, false},
		{"gltf/puck.gltf#Mesh0", "", 0, true},
		{"gltf/puck.gltf#Scene", "", 0, true},
		{"gltf/puck.gltf#Scene-1", "", 0, true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			file, scene, err := SplitSelector(c.in)
			if c.wantErr {
				if !errors.Is(err, ErrSceneSelector) {
					t.Fatalf("expected ErrSceneSelector, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if file != c.file || scene != c.scene {
				t.Fatalf("got (%q, %d), want (%q, %d)", file, scene, c.file, c.scene)
			}
		})
	}

	if got := WithScene("a.gltf", 3); got != "a.gltf#Scene3" {
		t.Fatalf("WithScene: got %q", got)
	}
}

func TestResolve(t *testing.T) {
	path, err := Resolve(assetsDir, "cube.gltf")
	if err != nil {
		t.Fatalf("resolve cube.gltf: %v", err)
	}
	if want := filepath.Join(assetsDir, "gltf", "cube.gltf"); path != want {
		t.Fatalf("got %q, want %q", path, want)
	}

	for _, name := range []string{"", "missing.gltf", "."} {
		if _, err := Resolve(assetsDir, name); !errors.Is(err, ErrAssetNotFound) {
			t.Fatalf("Resolve(%q): expected ErrAssetNotFound, got %v", name, err)
		}
	}
}

func TestLoadCube(t *testing.T) {
	mesh, err := Load(filepath.Join(assetsDir, "gltf", "cube.gltf") + "#Scene0")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(mesh.Triangles) != 12 {
		t.Fatalf("expected 12 triangles, got %d", len(mesh.Triangles))
	}
	if mesh.Name != "Cube" {
		t.Fatalf("expected scene name Cube, got %q", mesh.Name)
	}
	if !mesh.Min.ApproxEqual(mgl32.Vec3{-0.5, -0.5, -0.5}) || !mesh.Max.ApproxEqual(mgl32.Vec3{0.5, 0.5, 0.5}) {
		t.Fatalf("unexpected bounds %v %v", mesh.Min, mesh.Max)
	}
	if !mesh.Center().ApproxEqual(mgl32.Vec3{}) {
		t.Fatalf("expected centred mesh, got %v", mesh.Center())
	}
	if r := mesh.Radius(); math.Abs(float64(r)-math.Sqrt(3)/2) > 1e-5 {
		t.Fatalf("unexpected radius %v", r)
	}
	for i, tri := range mesh.Triangles {
		if math.Abs(float64(tri.Normal.Len())-1) > 1e-5 {
			t.Fatalf("triangle %d: normal not unit length: %v", i, tri.Normal)
		}
		if tri.Color != [4]float32{0.8, 0.3, 0.2, 1} {
			t.Fatalf("triangle %d: unexpected color %v", i, tri.Color)
		}
		// Faces wind outward, so the normal points away from the centre.
		centroid := tri.V[0].Add(tri.V[1]).Add(tri.V[2]).Mul(1.0 / 3)
		if centroid.Dot(tri.Normal) <= 0 {
			t.Fatalf("triangle %d: normal points inward", i)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	cube := filepath.Join(assetsDir, "gltf", "cube.gltf")

	if _, err := Load(cube + "#Scene1"); !errors.Is(err, ErrNoScene) {
		t.Fatalf("expected ErrNoScene, got %v", err)
	}
	if _, err := Load(cube + "#Sc0"); !errors.Is(err, ErrSceneSelector) {
		t.Fatalf("expected ErrSceneSelector, got %v", err)
	}
	if _, err := Load(filepath.Join(assetsDir, "gltf", "missing.gltf")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFromDocumentAppliesNodeTransforms(t *testing.T) {
	doc, err := gltf.Open(filepath.Join(assetsDir, "gltf", "cube.gltf"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	doc.Nodes[0].Translation = [3]float64{2, 0, 0}
	doc.Nodes[0].Scale = [3]float64{2, 2, 2}

	mesh, err := FromDocument(doc, -1)
	if err != nil {
		t.Fatalf("from document: %v", err)
	}
	if !mesh.Min.ApproxEqual(mgl32.Vec3{1, -1, -1}) || !mesh.Max.ApproxEqual(mgl32.Vec3{3, 1, 1}) {
		t.Fatalf("transform not applied: %v %v", mesh.Min, mesh.Max)
	}
}

func TestLoadRecordsSources(t *testing.T) {
	path := filepath.Join(assetsDir, "gltf", "puck.gltf")
	mesh, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	// The fixture embeds its buffer as a data URI, so only the document itself
	// is a source.
	if len(mesh.Sources) != 1 || mesh.Sources[0] != path {
		t.Fatalf("unexpected sources %v", mesh.Sources)
	}
	if len(mesh.Triangles) != 24*4 {
		t.Fatalf("expected %d triangles, got %d", 24*4, len(mesh.Triangles))
	}
}

func TestFromDocumentRejectsBadAccessors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *gltf.Primitive)
	}{
		{name: "position_out_of_range", mutate: func(p *gltf.Primitive) { p.Attributes[gltf.POSITION] = 7 }},
		{name: "position_negative", mutate: func(p *gltf.Primitive) { p.Attributes[gltf.POSITION] = -1 }},
		{name: "indices_out_of_range", mutate: func(p *gltf.Primitive) { idx := 99; p.Indices = &idx }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := gltf.Open(filepath.Join(assetsDir, "gltf", "cube.gltf"))
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			for _, m := range doc.Meshes {
				for _, p := range m.Primitives {
					tc.mutate(p)
				}
			}
			if _, err := FromDocument(doc, -1); err == nil || !strings.Contains(err.Error(), "out of range") {
				t.Fatalf("expected out of range error, got %v", err)
			}
		})
	}
}

func TestDecodeDanglingAccessor(t *testing.T) {
	doc := `{
		"asset": {"version": "2.0"},
		"scene": 0,
		"scenes": [{"nodes": [0]}],
		"nodes": [{"mesh": 0}],
		"meshes": [{"primitives": [{"attributes": {"POSITION": 7}}]}]
	}`
	if _, err := Decode(strings.NewReader(doc), -1); err == nil {
		t.Fatal("expected error for dangling accessor")
	}
}
