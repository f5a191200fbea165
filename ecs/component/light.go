package component

import "image/color"

// AmbientLight lights every surface uniformly.
type AmbientLight struct {
	Color      color.NRGBA
	Brightness float32
	// Headlight adds a diffuse term from the camera direction so surfaces
	// facing away from the viewer read darker. Zero disables it.
	Headlight float32
}

var AmbientLightComponent = NewComponent[AmbientLight]()
