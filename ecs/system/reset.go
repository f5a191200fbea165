package system

import (
	"log"

	"github.com/milk9111/assetviewer/common"
	"github.com/milk9111/assetviewer/ecs"
	"github.com/milk9111/assetviewer/ecs/component"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ResetView starts animating every Viewable back to rot = tilt = 0. A zero
// duration snaps immediately.
func ResetView(w *ecs.World, duration float64) {
	ecs.ForEach(w, component.ViewableComponent.Kind(), func(e ecs.Entity, v *component.Viewable) {
		if duration <= 0 {
			v.Rot, v.Tilt = 0, 0
			ecs.Remove(w, e, component.ResetAnimationComponent.Kind())
			return
		}
		anim := &component.ResetAnimation{
			Rot:  gween.New(float32(v.Rot), float32(common.NearestTurn(v.Rot)), float32(duration), ease.OutCubic),
			Tilt: gween.New(float32(v.Tilt), 0, float32(duration), ease.OutCubic),
		}
		if err := ecs.Add(w, e, component.ResetAnimationComponent.Kind(), anim); err != nil {
			log.Printf("reset: entity=%s: %v", e, err)
		}
	})
	w.Events().Push(ecs.Event{Type: ecs.EventViewReset})
}

// ResetSystem advances reset animations. Any key or drag input cancels them so
// the user is never fighting the animation.
type ResetSystem struct{}

func NewResetSystem() *ResetSystem {
	return &ResetSystem{}
}

func (r *ResetSystem) Update(w *ecs.World) {
	var dt float64
	if _, clock, ok := ecs.First(w, component.ClockComponent.Kind()); ok {
		dt = clock.Delta
	}
	interrupted := false
	if _, frame, ok := ecs.First(w, component.InputFrameComponent.Kind()); ok {
		movement := component.NewKeySet(component.KeyW, component.KeyA, component.KeyS, component.KeyD)
		interrupted = frame.Held&movement != 0
	}
	if _, acc, ok := ecs.First(w, component.PointerAccumulatorComponent.Kind()); ok {
		interrupted = interrupted || acc.Active || acc.Pending()
	}

	ecs.ForEach2(w, component.ViewableComponent.Kind(), component.ResetAnimationComponent.Kind(),
		func(e ecs.Entity, v *component.Viewable, anim *component.ResetAnimation) {
			if interrupted {
				ecs.Remove(w, e, component.ResetAnimationComponent.Kind())
				return
			}
			rot, rotDone := anim.Rot.Update(float32(dt))
			tilt, tiltDone := anim.Tilt.Update(float32(dt))
			v.Rot = float64(rot)
			v.Tilt = float64(tilt)
			if rotDone && tiltDone {
				ecs.Remove(w, e, component.ResetAnimationComponent.Kind())
			}
		})
}
