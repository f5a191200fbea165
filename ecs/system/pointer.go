package system

import (
	"github.com/milk9111/assetviewer/ecs"
	"github.com/milk9111/assetviewer/ecs/component"
	"github.com/milk9111/assetviewer/settings"
)

// PointerSystem folds the tick's pointer events into the PointerAccumulator.
type PointerSystem struct {
	settings *settings.Settings
}

func NewPointerSystem(s *settings.Settings) *PointerSystem {
	return &PointerSystem{settings: s}
}

func (p *PointerSystem) Update(w *ecs.World) {
	controls := p.settings.Controls
	ecs.ForEach2(w, component.InputFrameComponent.Kind(), component.PointerAccumulatorComponent.Kind(),
		func(_ ecs.Entity, frame *component.InputFrame, acc *component.PointerAccumulator) {
			ReducePointer(acc, frame.Events, controls.MouseSensitivity, controls.TouchSensitivity)
		})
}

// ReducePointer applies events to acc in order. Motion overwrites the pending
// delta rather than adding to it, so only the last motion event before a
// drain counts. Unknown events are ignored.
func ReducePointer(acc *component.PointerAccumulator, events []component.InputEvent, mouseSensitivity, touchSensitivity float64) {
	for _, ev := range events {
		switch ev.Kind {
		case component.EventMouseDown:
			if ev.Button == component.MouseButtonLeft {
				acc.Active = true
			}
		case component.EventMouseUp:
			if ev.Button == component.MouseButtonLeft {
				acc.Active = false
			}
		case component.EventMouseMotion:
			if acc.Active {
				acc.PendingDX = ev.DX * mouseSensitivity
				acc.PendingDY = ev.DY * mouseSensitivity
			}
		case component.EventTouchStart:
			acc.Active = true
			acc.LastTouch = ev.Pos
		case component.EventTouchMove:
			if acc.Active {
				acc.PendingDX = (ev.Pos.X - acc.LastTouch.X) * touchSensitivity
				acc.PendingDY = (ev.Pos.Y - acc.LastTouch.Y) * touchSensitivity
				acc.LastTouch = ev.Pos
			}
		case component.EventTouchEnd, component.EventTouchCancel:
			// A cancelled touch is treated like a lifted one.
			acc.Active = false
			acc.LastTouch = component.Point{}
		}
	}
}
