package replay

import (
	"errors"
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/assetviewer/ecs/component"
)

var ErrScript = errors.New("replay: invalid script")

// maxFrames caps the expanded length of a script.
const maxFrames = 1_000_000

// Frame is one scripted tick.
type Frame struct {
	DT      float64
	Held    component.KeySet
	Pressed component.KeySet
	Events  []component.InputEvent
}

var keyNames = map[string]component.Key{
	"w":      component.KeyW,
	"a":      component.KeyA,
	"s":      component.KeyS,
	"d":      component.KeyD,
	"r":      component.KeyReset,
	"reset":  component.KeyReset,
	"c":      component.KeyCopy,
	"copy":   component.KeyCopy,
	"escape": component.KeyQuit,
	"quit":   component.KeyQuit,
}

var buttonNames = map[string]component.MouseButton{
	"left":   component.MouseButtonLeft,
	"right":  component.MouseButtonRight,
	"middle": component.MouseButtonMiddle,
}

// Parse runs a tengo script and reads its top-level `frames` array. Each
// element is a map with optional keys dt, keys, pressed, events and repeat;
// the tengo stdlib is importable so scripts can build frames in loops.
//
//	frames := [
//	    {dt: 0.1, keys: ["d"], events: [
//	        {kind: "mouse_down", button: "left"},
//	        {kind: "mouse_motion", dx: 5, dy: 0}
//	    ]}
//	]
func Parse(src []byte) ([]Frame, error) {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	compiled, err := script.Run()
	if err != nil {
		return nil, fmt.Errorf("replay: run script: %w", err)
	}
	if !compiled.IsDefined("frames") {
		return nil, fmt.Errorf("%w: no frames variable", ErrScript)
	}
	raw, ok := compiled.Get("frames").Value().([]any)
	if !ok {
		return nil, fmt.Errorf("%w: frames must be an array", ErrScript)
	}

	var frames []Frame
	for i, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: frame %d is not a map", ErrScript, i)
		}
		frame, repeat, err := parseFrame(m)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		if repeat > maxFrames-len(frames) {
			return nil, fmt.Errorf("%w: frame %d: script expands past %d frames", ErrScript, i, maxFrames)
		}
		for range repeat {
			frames = append(frames, frame)
		}
	}
	return frames, nil
}

func parseFrame(m map[string]any) (Frame, int, error) {
	var f Frame
	repeat := 1
	for key, value := range m {
		switch key {
		case "dt":
			dt, ok := number(value)
			if !ok || dt < 0 {
				return f, 0, fmt.Errorf("%w: dt must be a non-negative number", ErrScript)
			}
			f.DT = dt
		case "repeat":
			n, ok := number(value)
			if !ok || !(n >= 0 && n <= maxFrames) {
				return f, 0, fmt.Errorf("%w: repeat must be between 0 and %d", ErrScript, maxFrames)
			}
			repeat = int(n)
		case "keys", "pressed":
			set, err := keySet(value)
			if err != nil {
				return f, 0, err
			}
			if key == "keys" {
				f.Held = set
			} else {
				f.Pressed = set
			}
		case "events":
			list, ok := value.([]any)
			if !ok {
				return f, 0, fmt.Errorf("%w: events must be an array", ErrScript)
			}
			for _, item := range list {
				ev, err := parseEvent(item)
				if err != nil {
					return f, 0, err
				}
				f.Events = append(f.Events, ev)
			}
		default:
			return f, 0, fmt.Errorf("%w: unknown frame field %q", ErrScript, key)
		}
	}
	return f, repeat, nil
}

func keySet(value any) (component.KeySet, error) {
	list, ok := value.([]any)
	if !ok {
		return 0, fmt.Errorf("%w: key list must be an array", ErrScript)
	}
	var set component.KeySet
	for _, item := range list {
		name, _ := item.(string)
		k, ok := keyNames[strings.ToLower(name)]
		if !ok {
			return 0, fmt.Errorf("%w: unknown key %v", ErrScript, item)
		}
		set = set.With(k)
	}
	return set, nil
}

func parseEvent(item any) (component.InputEvent, error) {
	m, ok := item.(map[string]any)
	if !ok {
		return component.InputEvent{}, fmt.Errorf("%w: event is not a map", ErrScript)
	}
	name, _ := m["kind"].(string)
	ev := component.InputEvent{Kind: component.ParseInputEventKind(name)}
	if ev.Kind == component.EventUnknown {
		return ev, fmt.Errorf("%w: unknown event kind %q", ErrScript, name)
	}
	if b, ok := m["button"]; ok {
		bname, _ := b.(string)
		button, ok := buttonNames[bname]
		if !ok {
			return ev, fmt.Errorf("%w: unknown button %v", ErrScript, b)
		}
		ev.Button = button
	}
	ev.DX, _ = number(m["dx"])
	ev.DY, _ = number(m["dy"])
	ev.Pos.X, _ = number(m["x"])
	ev.Pos.Y, _ = number(m["y"])
	return ev, nil
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
