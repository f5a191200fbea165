package component

import "github.com/go-gl/mathgl/mgl32"

// Transform places a model in world space. Rotation is written by the
// orientation system every tick; Position and Scale come from the scene setup.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    float32
	// Pivot is the model-space point the rotation is applied around.
	Pivot mgl32.Vec3
}

// Matrix returns the model matrix: translate * rotate * scale * -pivot.
func (t *Transform) Matrix() mgl32.Mat4 {
	scale := t.Scale
	if scale == 0 {
		scale = 1
	}
	return mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).
		Mul4(t.Rotation.Normalize().Mat4()).
		Mul4(mgl32.Scale3D(scale, scale, scale)).
		Mul4(mgl32.Translate3D(-t.Pivot.X(), -t.Pivot.Y(), -t.Pivot.Z()))
}

var TransformComponent = NewComponent[Transform]()
