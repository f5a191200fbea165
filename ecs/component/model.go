package component

import "github.com/milk9111/assetviewer/model"

// Model attaches loaded scene geometry to an entity.
type Model struct {
	// Path is the asset path including the scene selector, e.g.
	// "assets/gltf/puck.gltf#Scene0".
	Path string
	Mesh *model.Mesh
}

var ModelComponent = NewComponent[Model]()
