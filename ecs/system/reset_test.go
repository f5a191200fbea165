package system

import (
	"math"
	"testing"

	"github.com/milk9111/assetviewer/ecs"
	"github.com/milk9111/assetviewer/ecs/component"
)

func pressed(keys ...component.Key) component.InputFrame {
	return component.InputFrame{Pressed: component.NewKeySet(keys...)}
}

func TestResetReturnsToOrigin(t *testing.T) {
	tests := []struct {
		name string
		rot  float64
		tilt float64
	}{
		{name: "short_way_down", rot: 1, tilt: 0.5},
		{name: "short_way_up", rot: 5, tilt: -2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := defaultSettings(t)
			w, e := newTestScene(t, s)
			v, _ := ecs.Get(w, e, component.ViewableComponent.Kind())
			v.Rot, v.Tilt = tc.rot, tc.tilt

			src := &scriptedSource{frames: []component.InputFrame{pressed(component.KeyReset)}}
			pipeline := newPipeline(s, 0.1, src)
			pipeline.Update(w)
			if !ecs.Has(w, e, component.ResetAnimationComponent.Kind()) {
				t.Fatal("reset animation not started")
			}
			if v.Rot == tc.rot && v.Tilt == tc.tilt {
				t.Fatal("reset did not move on its first tick")
			}

			for i := 0; i < 10; i++ {
				pipeline.Update(w)
			}
			if ecs.Has(w, e, component.ResetAnimationComponent.Kind()) {
				t.Fatal("reset animation still attached after its duration")
			}
			if math.Abs(v.Rot) > 1e-5 || math.Abs(v.Tilt) > 1e-5 {
				t.Fatalf("got rot=%v tilt=%v, want 0", v.Rot, v.Tilt)
			}
		})
	}
}

func TestResetCancelledByInput(t *testing.T) {
	s := defaultSettings(t)
	w, e := newTestScene(t, s)
	v, _ := ecs.Get(w, e, component.ViewableComponent.Kind())
	v.Rot = 1

	src := &scriptedSource{frames: []component.InputFrame{
		pressed(component.KeyReset),
		{Held: component.NewKeySet(component.KeyD)},
	}}
	pipeline := newPipeline(s, 0.1, src)
	pipeline.Update(w)
	mid := v.Rot
	pipeline.Update(w)

	if ecs.Has(w, e, component.ResetAnimationComponent.Kind()) {
		t.Fatal("held key should cancel the reset")
	}
	if !approx(v.Rot, mid+0.05) {
		t.Fatalf("key input not applied after cancel: got %v, want %v", v.Rot, mid+0.05)
	}
}

func TestResetZeroDurationSnaps(t *testing.T) {
	s := defaultSettings(t)
	w, e := newTestScene(t, s)
	v, _ := ecs.Get(w, e, component.ViewableComponent.Kind())
	v.Rot, v.Tilt = 2, -1

	ResetView(w, 0)

	if v.Rot != 0 || v.Tilt != 0 {
		t.Fatalf("got rot=%v tilt=%v", v.Rot, v.Tilt)
	}
	if ecs.Has(w, e, component.ResetAnimationComponent.Kind()) {
		t.Fatal("snap should not leave an animation behind")
	}
	events := w.Events().Peek()
	if len(events) != 1 || events[0].Type != ecs.EventViewReset {
		t.Fatalf("expected one view reset event, got %v", events)
	}
}
