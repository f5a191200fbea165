package component

// Point is a position in window pixels.
type Point struct {
	X float64
	Y float64
}

// PointerAccumulator holds drag motion that has not been applied yet.
// PointerSystem writes it; OrientationSystem drains it once per tick.
type PointerAccumulator struct {
	// Active is true while a left-button drag or single-touch drag is in progress.
	Active bool
	// PendingDX/PendingDY are the unconsumed deltas, already scaled by sensitivity.
	PendingDX float64
	PendingDY float64
	// LastTouch is the previous touch position; touch events report absolute
	// positions, so deltas are computed against it.
	LastTouch Point
}

// Drain returns the pending deltas and resets them to zero.
func (p *PointerAccumulator) Drain() (dx, dy float64) {
	dx, dy = p.PendingDX, p.PendingDY
	p.PendingDX, p.PendingDY = 0, 0
	return dx, dy
}

// Pending reports whether any motion is waiting to be applied.
func (p *PointerAccumulator) Pending() bool {
	return p.PendingDX != 0 || p.PendingDY != 0
}

var PointerAccumulatorComponent = NewComponent[PointerAccumulator]()
