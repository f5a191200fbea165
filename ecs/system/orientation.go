package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/assetviewer/common"
	"github.com/milk9111/assetviewer/ecs"
	"github.com/milk9111/assetviewer/ecs/component"
	"github.com/milk9111/assetviewer/settings"
)

// OrientationSystem advances every Viewable once per tick and writes the
// resulting rotation into its Transform.
type OrientationSystem struct {
	settings *settings.Settings
}

func NewOrientationSystem(s *settings.Settings) *OrientationSystem {
	return &OrientationSystem{settings: s}
}

func (o *OrientationSystem) Update(w *ecs.World) {
	controls := o.settings.Controls

	var dt float64
	if _, clock, ok := ecs.First(w, component.ClockComponent.Kind()); ok {
		dt = clock.Delta
	}
	var held component.KeySet
	if _, frame, ok := ecs.First(w, component.InputFrameComponent.Kind()); ok {
		held = frame.Held
	}
	_, acc, hasAcc := ecs.First(w, component.PointerAccumulatorComponent.Kind())

	var dx, dy float64
	if hasAcc && controls.PointerPolicy == settings.PointerBroadcast {
		dx, dy = acc.Drain()
	}

	ecs.ForEach2(w, component.ViewableComponent.Kind(), component.TransformComponent.Kind(),
		func(_ ecs.Entity, v *component.Viewable, t *component.Transform) {
			if hasAcc && controls.PointerPolicy == settings.PointerFirst {
				dx, dy = acc.Drain()
			}
			Integrate(v, dx, dy, held, dt, controls)
			t.Rotation = Rotation(v)
		})
}

// Integrate applies one tick to v: the drained pointer delta, then the held
// keys scaled by dt, then the tilt clamp and the yaw wrap.
func Integrate(v *component.Viewable, dx, dy float64, held component.KeySet, dt float64, controls settings.ControlsSpec) {
	v.Rot += dx
	v.Tilt += dy

	step := controls.RotationSpeed * dt
	if held.Has(component.KeyD) {
		v.Rot += step
	}
	if held.Has(component.KeyA) {
		v.Rot -= step
	}
	if held.Has(component.KeyS) {
		v.Tilt += step
	}
	if held.Has(component.KeyW) {
		v.Tilt -= step
	}

	v.Tilt = common.Clamp(v.Tilt, -math.Pi, math.Pi)

	switch controls.Wrap {
	case settings.WrapSingleStep:
		v.Rot = common.WrapAngleOnce(v.Rot)
	default:
		v.Rot = common.WrapAngle(v.Rot)
	}
}

// Rotation converts v to a quaternion: pitch (tilt) about X, then yaw (rot)
// about Y, no roll.
func Rotation(v *component.Viewable) mgl32.Quat {
	return mgl32.AnglesToQuat(float32(v.Tilt), float32(v.Rot), 0, mgl32.XYZ)
}
