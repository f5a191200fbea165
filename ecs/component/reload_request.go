package component

// ReloadRequest asks ReloadSystem to re-read the Model on the same entity.
// Reason names the file change that triggered it.
type ReloadRequest struct {
	Reason string
}

var ReloadRequestComponent = NewComponent[ReloadRequest]()
