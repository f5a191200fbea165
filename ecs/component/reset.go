package component

import "github.com/tanema/gween"

// ResetAnimation tweens a Viewable back to its home orientation.
type ResetAnimation struct {
	Rot  *gween.Tween
	Tilt *gween.Tween
}

var ResetAnimationComponent = NewComponent[ResetAnimation]()
