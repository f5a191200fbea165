package component

import "github.com/go-gl/mathgl/mgl32"

// Camera is a perspective camera looking from Eye at Target.
type Camera struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3
	// FovY is the vertical field of view in radians.
	FovY float32
	Near float32
	Far  float32
}

// View returns the world-to-camera matrix.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.Target, c.Up)
}

// Projection returns the camera-to-clip matrix for the given aspect ratio.
func (c *Camera) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(c.FovY, aspect, c.Near, c.Far)
}

var CameraComponent = NewComponent[Camera]()
