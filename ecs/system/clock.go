package system

import (
	"time"

	"github.com/milk9111/assetviewer/ecs"
	"github.com/milk9111/assetviewer/ecs/component"
)

// ClockSystem writes the elapsed time of the current tick into the
// controller's Clock.
type ClockSystem struct {
	now      func() time.Time
	last     time.Time
	maxDelta float64
	fixed    float64
}

// NewClockSystem measures wall-clock time between ticks. Deltas larger than
// maxDelta (a stall, a dragged window) are clamped to it.
func NewClockSystem(maxDelta float64) *ClockSystem {
	return &ClockSystem{now: time.Now, maxDelta: maxDelta}
}

// NewFixedClockSystem reports the same delta every tick. Replays and tests use
// it so results do not depend on the host.
func NewFixedClockSystem(dt float64) *ClockSystem {
	return &ClockSystem{fixed: max(dt, 0)}
}

// SetFixed changes the delta of a fixed clock.
func (c *ClockSystem) SetFixed(dt float64) {
	c.fixed = max(dt, 0)
}

func (c *ClockSystem) Update(w *ecs.World) {
	_, clock, ok := ecs.First(w, component.ClockComponent.Kind())
	if !ok {
		return
	}
	clock.Frame++

	if c.now == nil {
		clock.Delta = c.fixed
		return
	}

	now := c.now()
	if c.last.IsZero() {
		c.last = now
		clock.Delta = 0
		return
	}
	dt := now.Sub(c.last).Seconds()
	c.last = now
	if dt < 0 {
		dt = 0
	}
	if c.maxDelta > 0 && dt > c.maxDelta {
		dt = c.maxDelta
	}
	clock.Delta = dt
}
