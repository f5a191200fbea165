package system

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/assetviewer/ecs/component"
)

var heldKeys = []struct {
	key     ebiten.Key
	logical component.Key
}{
	{ebiten.KeyW, component.KeyW},
	{ebiten.KeyA, component.KeyA},
	{ebiten.KeyS, component.KeyS},
	{ebiten.KeyD, component.KeyD},
}

var pressedKeys = []struct {
	key     ebiten.Key
	logical component.Key
}{
	{ebiten.KeyR, component.KeyReset},
	{ebiten.KeyC, component.KeyCopy},
	{ebiten.KeyEscape, component.KeyQuit},
}

var mouseButtons = []struct {
	button  ebiten.MouseButton
	logical component.MouseButton
}{
	{ebiten.MouseButtonLeft, component.MouseButtonLeft},
	{ebiten.MouseButtonRight, component.MouseButtonRight},
	{ebiten.MouseButtonMiddle, component.MouseButtonMiddle},
}

// EbitenSource turns Ebitengine's polled input state into discrete events.
// Only a single touch drives a drag: a second finger cancels it, and a new
// drag starts once every finger has lifted.
type EbitenSource struct {
	// Blocked reports whether the pointer is over UI that owns presses.
	Blocked func() bool

	cursorX, cursorY int
	hasCursor        bool
	leftDown         bool

	touchIDs    []ebiten.TouchID
	touchID     ebiten.TouchID
	touching    bool
	waitRelease bool
	lastTouch   component.Point
}

// NewEbitenSource creates a source. blocked may be nil.
func NewEbitenSource(blocked func() bool) *EbitenSource {
	return &EbitenSource{Blocked: blocked}
}

func (s *EbitenSource) Poll(frame *component.InputFrame) {
	if !ebiten.IsFocused() {
		s.releaseAll(frame)
		return
	}

	for _, k := range heldKeys {
		if ebiten.IsKeyPressed(k.key) {
			frame.Held = frame.Held.With(k.logical)
		}
	}
	for _, k := range pressedKeys {
		if inpututil.IsKeyJustPressed(k.key) {
			frame.Pressed = frame.Pressed.With(k.logical)
		}
	}

	blocked := s.Blocked != nil && s.Blocked()
	s.pollMouse(frame, blocked)
	s.pollTouch(frame, blocked)
}

func (s *EbitenSource) pollMouse(frame *component.InputFrame, blocked bool) {
	for _, b := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(b.button) && !blocked {
			frame.Events = append(frame.Events, component.InputEvent{Kind: component.EventMouseDown, Button: b.logical})
			if b.logical == component.MouseButtonLeft {
				s.leftDown = true
			}
		}
		if inpututil.IsMouseButtonJustReleased(b.button) {
			frame.Events = append(frame.Events, component.InputEvent{Kind: component.EventMouseUp, Button: b.logical})
			if b.logical == component.MouseButtonLeft {
				s.leftDown = false
			}
		}
	}

	x, y := ebiten.CursorPosition()
	if s.hasCursor && (x != s.cursorX || y != s.cursorY) {
		frame.Events = append(frame.Events, component.InputEvent{
			Kind: component.EventMouseMotion,
			DX:   float64(x - s.cursorX),
			DY:   float64(y - s.cursorY),
		})
	}
	s.cursorX, s.cursorY, s.hasCursor = x, y, true
}

func (s *EbitenSource) pollTouch(frame *component.InputFrame, blocked bool) {
	s.touchIDs = ebiten.AppendTouchIDs(s.touchIDs[:0])

	if s.touching {
		switch {
		case !slices.Contains(s.touchIDs, s.touchID):
			frame.Events = append(frame.Events, component.InputEvent{Kind: component.EventTouchEnd, Pos: s.lastTouch})
			s.touching = false
		case len(s.touchIDs) > 1:
			frame.Events = append(frame.Events, component.InputEvent{Kind: component.EventTouchCancel, Pos: s.lastTouch})
			s.touching = false
			s.waitRelease = true
		default:
			x, y := ebiten.TouchPosition(s.touchID)
			pos := component.Point{X: float64(x), Y: float64(y)}
			if pos != s.lastTouch {
				frame.Events = append(frame.Events, component.InputEvent{Kind: component.EventTouchMove, Pos: pos})
				s.lastTouch = pos
			}
		}
		return
	}

	if len(s.touchIDs) == 0 {
		s.waitRelease = false
		return
	}
	if s.waitRelease || blocked || len(s.touchIDs) != 1 {
		return
	}
	s.touchID = s.touchIDs[0]
	x, y := ebiten.TouchPosition(s.touchID)
	s.lastTouch = component.Point{X: float64(x), Y: float64(y)}
	s.touching = true
	frame.Events = append(frame.Events, component.InputEvent{Kind: component.EventTouchStart, Pos: s.lastTouch})
}

// releaseAll ends any gesture in progress when the window loses focus, since
// the matching release will never be delivered.
func (s *EbitenSource) releaseAll(frame *component.InputFrame) {
	if s.leftDown {
		frame.Events = append(frame.Events, component.InputEvent{Kind: component.EventMouseUp, Button: component.MouseButtonLeft})
		s.leftDown = false
	}
	if s.touching {
		frame.Events = append(frame.Events, component.InputEvent{Kind: component.EventTouchCancel, Pos: s.lastTouch})
		s.touching = false
	}
	s.hasCursor = false
}
