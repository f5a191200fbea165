package component

// ControllerTag marks the single entity that owns the clock, the input frame
// and the pointer accumulator.
type ControllerTag struct{}

var ControllerTagComponent = NewComponent[ControllerTag]()
