package system

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/assetviewer/ecs"
	"github.com/milk9111/assetviewer/ecs/component"
)

// maxBatchVertices keeps every batch addressable by uint16 indices.
const maxBatchVertices = 65535 - 3

// Face is a projected triangle ready for drawing.
type Face struct {
	Screen [3]mgl32.Vec2
	Depth  float32
	Color  [4]float32
}

// RenderSystem projects every Model through the camera on the CPU and draws
// the faces back to front with DrawTriangles.
type RenderSystem struct {
	background color.Color
	white      *ebiten.Image

	faces    []Face
	vertices []ebiten.Vertex
	indices  []uint16
}

func NewRenderSystem(background color.Color) *RenderSystem {
	return &RenderSystem{background: background}
}

// SetBackground changes the clear color.
func (r *RenderSystem) SetBackground(c color.Color) {
	r.background = c
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r.background != nil {
		screen.Fill(r.background)
	}
	b := screen.Bounds()
	r.faces = ProjectFaces(w, float32(b.Dx()), float32(b.Dy()), r.faces[:0])
	if len(r.faces) == 0 {
		return
	}
	if r.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		r.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}

	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
	for _, f := range r.faces {
		if len(r.vertices)+3 > maxBatchVertices {
			r.flush(screen)
		}
		base := uint16(len(r.vertices))
		for _, p := range f.Screen {
			r.vertices = append(r.vertices, ebiten.Vertex{
				DstX: p.X(), DstY: p.Y(),
				SrcX: 1, SrcY: 1,
				ColorR: f.Color[0], ColorG: f.Color[1], ColorB: f.Color[2], ColorA: f.Color[3],
			})
		}
		r.indices = append(r.indices, base, base+1, base+2)
	}
	r.flush(screen)
}

func (r *RenderSystem) flush(screen *ebiten.Image) {
	if len(r.indices) == 0 {
		return
	}
	screen.DrawTriangles(r.vertices, r.indices, r.white, &ebiten.DrawTrianglesOptions{AntiAlias: true})
	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
}

// ProjectFaces transforms, culls, shades and depth-sorts every model face for
// a viewport of width x height pixels. Faces are appended to dst, farthest first.
func ProjectFaces(w *ecs.World, width, height float32, dst []Face) []Face {
	_, cam, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok || width <= 0 || height <= 0 {
		return dst
	}
	light := component.AmbientLight{Color: color.NRGBA{255, 255, 255, 255}, Brightness: 1}
	if _, l, ok := ecs.First(w, component.AmbientLightComponent.Kind()); ok {
		light = *l
	}
	lr := float32(light.Color.R) / 255
	lg := float32(light.Color.G) / 255
	lb := float32(light.Color.B) / 255

	viewProj := cam.Projection(width / height).Mul4(cam.View())
	start := len(dst)

	ecs.ForEach2(w, component.TransformComponent.Kind(), component.ModelComponent.Kind(),
		func(_ ecs.Entity, t *component.Transform, m *component.Model) {
			if m.Mesh == nil {
				return
			}
			modelMat := t.Matrix()
			mvp := viewProj.Mul4(modelMat)
			rot := t.Rotation.Normalize()

			for _, tri := range m.Mesh.Triangles {
				var worldCentroid mgl32.Vec3
				for _, v := range tri.V {
					worldCentroid = worldCentroid.Add(modelMat.Mul4x1(v.Vec4(1)).Vec3())
				}
				worldCentroid = worldCentroid.Mul(1.0 / 3)

				normal := rot.Rotate(tri.Normal)
				toEye := cam.Eye.Sub(worldCentroid)
				if toEye.Len() == 0 {
					continue
				}
				toEye = toEye.Normalize()
				facing := normal.Dot(toEye)
				if facing <= 0 {
					continue
				}

				var f Face
				visible := true
				for k, v := range tri.V {
					clip := mvp.Mul4x1(v.Vec4(1))
					if clip.W() <= cam.Near {
						visible = false
						break
					}
					ndc := clip.Vec3().Mul(1 / clip.W())
					f.Screen[k] = mgl32.Vec2{(ndc.X() + 1) * 0.5 * width, (1 - ndc.Y()) * 0.5 * height}
					f.Depth += ndc.Z()
				}
				if !visible {
					continue
				}

				shade := light.Brightness + light.Headlight*facing
				f.Color = [4]float32{
					clamp01(tri.Color[0] * lr * shade),
					clamp01(tri.Color[1] * lg * shade),
					clamp01(tri.Color[2] * lb * shade),
					clamp01(tri.Color[3]),
				}
				dst = append(dst, f)
			}
		})

	faces := dst[start:]
	sort.SliceStable(faces, func(i, j int) bool { return faces[i].Depth > faces[j].Depth })
	return dst
}

func clamp01(v float32) float32 {
	return float32(math.Min(1, math.Max(0, float64(v))))
}
