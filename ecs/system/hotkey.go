package system

import (
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/assetviewer/ecs"
	"github.com/milk9111/assetviewer/ecs/component"
	"github.com/milk9111/assetviewer/settings"
	"golang.design/x/clipboard"
)

// Clipboard receives copied orientation text.
type Clipboard interface {
	WriteText(text string) error
}

type systemClipboard struct{}

// NewSystemClipboard returns the OS clipboard, or an error when the platform
// has none (headless X11, missing cgo).
func NewSystemClipboard() (Clipboard, error) {
	if err := clipboard.Init(); err != nil {
		return nil, fmt.Errorf("clipboard: init: %w", err)
	}
	return systemClipboard{}, nil
}

func (systemClipboard) WriteText(text string) error {
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}

// HotkeySystem handles the one-shot keys: reset view and copy orientation.
type HotkeySystem struct {
	settings  *settings.Settings
	clipboard Clipboard
}

// NewHotkeySystem creates the system. A nil clipboard disables copying.
func NewHotkeySystem(s *settings.Settings, cb Clipboard) *HotkeySystem {
	return &HotkeySystem{settings: s, clipboard: cb}
}

func (h *HotkeySystem) Update(w *ecs.World) {
	_, frame, ok := ecs.First(w, component.InputFrameComponent.Kind())
	if !ok {
		return
	}

	if frame.Pressed.Has(component.KeyReset) {
		ResetView(w, h.settings.Reset.Duration)
	}

	if frame.Pressed.Has(component.KeyCopy) {
		_, v, ok := ecs.First(w, component.ViewableComponent.Kind())
		if !ok {
			return
		}
		text := FormatOrientation(v, Rotation(v))
		if h.clipboard == nil {
			log.Printf("hotkey: clipboard unavailable, orientation %s", text)
			return
		}
		if err := h.clipboard.WriteText(text); err != nil {
			log.Printf("hotkey: copy orientation: %v", err)
			return
		}
		w.Events().Push(ecs.Event{Type: ecs.EventOrientationCopy, Data: text})
	}
}

// FormatOrientation renders an orientation the way it is copied to the clipboard.
func FormatOrientation(v *component.Viewable, q mgl32.Quat) string {
	return fmt.Sprintf("rot=%.4f tilt=%.4f quat=%.4f %.4f %.4f %.4f",
		v.Rot, v.Tilt, q.W, q.V.X(), q.V.Y(), q.V.Z())
}
