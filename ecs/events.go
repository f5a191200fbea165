package ecs

// Event is something a system wants later systems in the same tick to see.
type Event struct {
	Type EventType
	Data any
}

// EventType identifies viewer events.
type EventType string

const (
	EventModelReloaded    EventType = "model_reloaded"
	EventSettingsReloaded EventType = "settings_reloaded"
	EventViewReset        EventType = "view_reset"
	EventOrientationCopy  EventType = "orientation_copied"
)

// EventQueue is a simple FIFO queue. Events live until the end of the tick
// they were pushed in.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Peek returns pending events without consuming them.
func (q *EventQueue) Peek() []Event {
	if q == nil {
		return nil
	}
	return q.items
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
