package system

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/assetviewer/ecs"
	"github.com/milk9111/assetviewer/ecs/component"
	"github.com/milk9111/assetviewer/ecs/entity"
	"github.com/milk9111/assetviewer/settings"
)

func TestIntegrateKeys(t *testing.T) {
	s := defaultSettings(t)
	tests := []struct {
		name     string
		held     component.KeySet
		wantRot  float64
		wantTilt float64
	}{
		{name: "none"},
		{name: "d", held: component.NewKeySet(component.KeyD), wantRot: 0.5},
		{name: "a", held: component.NewKeySet(component.KeyA), wantRot: 2*math.Pi - 0.5},
		{name: "s", held: component.NewKeySet(component.KeyS), wantTilt: 0.5},
		{name: "w", held: component.NewKeySet(component.KeyW), wantTilt: -0.5},
		{name: "d_and_s", held: component.NewKeySet(component.KeyD, component.KeyS), wantRot: 0.5, wantTilt: 0.5},
		{name: "opposites_cancel", held: component.NewKeySet(component.KeyA, component.KeyD, component.KeyW, component.KeyS)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var v component.Viewable
			Integrate(&v, 0, 0, tc.held, 1, s.Controls)
			if !approx(v.Rot, tc.wantRot) || !approx(v.Tilt, tc.wantTilt) {
				t.Fatalf("got rot=%v tilt=%v, want rot=%v tilt=%v", v.Rot, v.Tilt, tc.wantRot, tc.wantTilt)
			}
		})
	}
}

func TestIntegrateClampsTilt(t *testing.T) {
	s := defaultSettings(t)

	v := component.Viewable{Tilt: math.Pi - 0.1}
	Integrate(&v, 0, 1, 0, 0, s.Controls)
	if v.Tilt != math.Pi {
		t.Fatalf("tilt not clamped to +π: %v", v.Tilt)
	}

	v = component.Viewable{Tilt: -math.Pi + 0.1}
	Integrate(&v, 0, -1, 0, 0, s.Controls)
	if v.Tilt != -math.Pi {
		t.Fatalf("tilt not clamped to -π: %v", v.Tilt)
	}

	// Clamping does not wrap: pushing past the limit again stays there.
	Integrate(&v, 0, -5, component.NewKeySet(component.KeyW), 1, s.Controls)
	if v.Tilt != -math.Pi {
		t.Fatalf("tilt moved past -π: %v", v.Tilt)
	}
}

func TestIntegrateWrapModes(t *testing.T) {
	tests := []struct {
		name string
		mode settings.WrapMode
		rot  float64
		want float64
	}{
		{name: "euclid_negative", mode: settings.WrapEuclid, rot: -0.5, want: 2*math.Pi - 0.5},
		{name: "euclid_large", mode: settings.WrapEuclid, rot: 10*math.Pi + 1, want: 1},
		{name: "euclid_over_one_turn", mode: settings.WrapEuclid, rot: 2*math.Pi + 1, want: 1},
		{name: "euclid_many_negative_turns", mode: settings.WrapEuclid, rot: -7*math.Pi + 0.25, want: math.Pi + 0.25},
		{name: "single_step_negative", mode: settings.WrapSingleStep, rot: -0.5, want: 2*math.Pi - 0.5},
		{name: "single_step_large", mode: settings.WrapSingleStep, rot: 10 * math.Pi, want: 8 * math.Pi},
		{name: "single_step_exact_turn", mode: settings.WrapSingleStep, rot: 2 * math.Pi, want: 2 * math.Pi},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := defaultSettings(t)
			s.Controls.Wrap = tc.mode
			v := component.Viewable{Rot: tc.rot}
			Integrate(&v, 0, 0, 0, 0, s.Controls)
			if math.Abs(v.Rot-tc.want) > 1e-6 {
				t.Fatalf("got %v, want %v", v.Rot, tc.want)
			}
			if tc.mode == settings.WrapEuclid && (v.Rot < 0 || v.Rot >= 2*math.Pi) {
				t.Fatalf("euclid result out of range: %v", v.Rot)
			}
		})
	}
}

func TestRotationIsYawAboutY(t *testing.T) {
	q := Rotation(&component.Viewable{Rot: math.Pi / 2})
	want := mgl32.QuatRotate(math.Pi/2, mgl32.Vec3{0, 1, 0})
	if !q.ApproxEqualThreshold(want, 1e-5) {
		t.Fatalf("got %v, want %v", q, want)
	}

	q = Rotation(&component.Viewable{Tilt: math.Pi / 2})
	want = mgl32.QuatRotate(math.Pi/2, mgl32.Vec3{1, 0, 0})
	if !q.ApproxEqualThreshold(want, 1e-5) {
		t.Fatalf("got %v, want %v", q, want)
	}

	if !Rotation(&component.Viewable{}).ApproxEqual(mgl32.QuatIdent()) {
		t.Fatal("zero orientation should be the identity")
	}
}

func TestOrientationSystemFullFrame(t *testing.T) {
	s := defaultSettings(t)
	w, e := newTestScene(t, s)
	src := &scriptedSource{frames: []component.InputFrame{{
		Held: component.NewKeySet(component.KeyD),
		Events: []component.InputEvent{
			{Kind: component.EventMouseDown, Button: component.MouseButtonLeft},
			{Kind: component.EventMouseMotion, DX: 5, DY: 0},
		},
	}}}

	newPipeline(s, 0.1, src).Update(w)

	v, _ := ecs.Get(w, e, component.ViewableComponent.Kind())
	if !approx(v.Rot, 0.1) || !approx(v.Tilt, 0) {
		t.Fatalf("got rot=%v tilt=%v, want rot=0.1 tilt=0", v.Rot, v.Tilt)
	}

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if !tr.Rotation.ApproxEqualThreshold(Rotation(v), 1e-6) {
		t.Fatalf("transform rotation not written: %v", tr.Rotation)
	}

	_, acc, _ := ecs.First(w, component.PointerAccumulatorComponent.Kind())
	if acc.Pending() {
		t.Fatalf("accumulator not drained: %+v", acc)
	}
	if !acc.Active {
		t.Fatal("drag should still be active")
	}
}

func TestOrientationDrainIsIdempotent(t *testing.T) {
	s := defaultSettings(t)
	w, e := newTestScene(t, s)
	_, acc, _ := ecs.First(w, component.PointerAccumulatorComponent.Kind())
	acc.Active = true
	acc.PendingDX, acc.PendingDY = 0.3, 0.2

	sys := NewOrientationSystem(s)
	sys.Update(w)
	v, _ := ecs.Get(w, e, component.ViewableComponent.Kind())
	rot, tilt := v.Rot, v.Tilt
	if !approx(rot, 0.3) || !approx(tilt, 0.2) {
		t.Fatalf("first drain: got rot=%v tilt=%v", rot, tilt)
	}

	sys.Update(w)
	if v.Rot != rot || v.Tilt != tilt {
		t.Fatalf("second drain changed orientation: rot=%v tilt=%v", v.Rot, v.Tilt)
	}
}

func TestOrientationPointerPolicies(t *testing.T) {
	tests := []struct {
		name       string
		policy     settings.PointerPolicy
		wantSecond float64
	}{
		{name: "broadcast", policy: settings.PointerBroadcast, wantSecond: 0.4},
		{name: "first", policy: settings.PointerFirst, wantSecond: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := defaultSettings(t)
			s.Controls.PointerPolicy = tc.policy
			w, first := newTestScene(t, s)
			second, err := entity.NewModel(w, cubeAsset, nil, s)
			if err != nil {
				t.Fatalf("second model: %v", err)
			}
			_, acc, _ := ecs.First(w, component.PointerAccumulatorComponent.Kind())
			acc.PendingDX = 0.4

			NewOrientationSystem(s).Update(w)

			v1, _ := ecs.Get(w, first, component.ViewableComponent.Kind())
			v2, _ := ecs.Get(w, second, component.ViewableComponent.Kind())
			if !approx(v1.Rot, 0.4) {
				t.Fatalf("first object: got %v, want 0.4", v1.Rot)
			}
			if !approx(v2.Rot, tc.wantSecond) {
				t.Fatalf("second object: got %v, want %v", v2.Rot, tc.wantSecond)
			}
			if acc.Pending() {
				t.Fatal("accumulator not drained")
			}
		})
	}
}

func TestOrientationWithoutControllerUsesKeysOnly(t *testing.T) {
	s := defaultSettings(t)
	w := ecs.NewWorld()
	e, err := entity.NewModel(w, cubeAsset, nil, s)
	if err != nil {
		t.Fatalf("new model: %v", err)
	}

	NewOrientationSystem(s).Update(w)

	v, _ := ecs.Get(w, e, component.ViewableComponent.Kind())
	if v.Rot != 0 || v.Tilt != 0 {
		t.Fatalf("orientation changed without input: %+v", v)
	}
}
