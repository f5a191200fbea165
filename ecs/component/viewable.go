package component

// Viewable is the user-controlled orientation of one tracked object.
// Rot (yaw, radians) is kept in [0, 2π); Tilt (pitch, radians) in [-π, π].
type Viewable struct {
	Rot  float64
	Tilt float64
}

var ViewableComponent = NewComponent[Viewable]()
