package system

import (
	"github.com/milk9111/assetviewer/ecs"
	"github.com/milk9111/assetviewer/ecs/component"
)

// InputSource fills a frame with the keys and pointer events of one tick.
type InputSource interface {
	Poll(frame *component.InputFrame)
}

// InputSystem snapshots an InputSource into the controller's InputFrame.
type InputSystem struct {
	source InputSource
}

func NewInputSystem(source InputSource) *InputSystem {
	return &InputSystem{source: source}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || i.source == nil {
		return
	}
	ecs.ForEach(w, component.InputFrameComponent.Kind(), func(_ ecs.Entity, frame *component.InputFrame) {
		frame.Held = 0
		frame.Pressed = 0
		frame.Events = frame.Events[:0]
		i.source.Poll(frame)
	})
}
