package component

// Key is a logical viewer key, independent of the windowing backend.
type Key uint8

const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyReset
	KeyCopy
	KeyQuit
)

// KeySet is a bit set of Keys.
type KeySet uint16

func NewKeySet(keys ...Key) KeySet {
	var s KeySet
	for _, k := range keys {
		s = s.With(k)
	}
	return s
}

func (s KeySet) Has(k Key) bool {
	return s&(1<<k) != 0
}

func (s KeySet) With(k Key) KeySet {
	return s | 1<<k
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// InputEventKind enumerates the discrete pointer events the reducer understands.
type InputEventKind uint8

const (
	EventUnknown InputEventKind = iota
	EventMouseDown
	EventMouseUp
	EventMouseMotion
	EventTouchStart
	EventTouchMove
	EventTouchEnd
	EventTouchCancel
)

func (k InputEventKind) String() string {
	switch k {
	case EventMouseDown:
		return "mouse_down"
	case EventMouseUp:
		return "mouse_up"
	case EventMouseMotion:
		return "mouse_motion"
	case EventTouchStart:
		return "touch_start"
	case EventTouchMove:
		return "touch_move"
	case EventTouchEnd:
		return "touch_end"
	case EventTouchCancel:
		return "touch_cancel"
	default:
		return "unknown"
	}
}

// ParseInputEventKind is the inverse of InputEventKind.String. Unrecognised
// names map to EventUnknown.
func ParseInputEventKind(s string) InputEventKind {
	for k := EventMouseDown; k <= EventTouchCancel; k++ {
		if k.String() == s {
			return k
		}
	}
	return EventUnknown
}

// InputEvent is one discrete pointer event. Mouse motion carries a delta in
// DX/DY; touch events carry an absolute position in Pos.
type InputEvent struct {
	Kind   InputEventKind
	Button MouseButton
	DX, DY float64
	Pos    Point
}

// InputFrame is the input snapshot for one tick: the keys currently held, the
// keys pressed this tick, and the ordered pointer events since the last tick.
type InputFrame struct {
	Held    KeySet
	Pressed KeySet
	Events  []InputEvent
}

var InputFrameComponent = NewComponent[InputFrame]()
