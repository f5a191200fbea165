package system

import (
	"log"
	"path/filepath"
	"slices"

	"github.com/milk9111/assetviewer/ecs"
	"github.com/milk9111/assetviewer/ecs/component"
	"github.com/milk9111/assetviewer/ecs/entity"
	"github.com/milk9111/assetviewer/model"
	"github.com/milk9111/assetviewer/settings"
)

// ReloadSystem applies file changes reported by a settings.Watcher. It only
// reads the channel; all world mutation happens on the update goroutine.
type ReloadSystem struct {
	changes      <-chan string
	settingsPath string
	settings     *settings.Settings
	load         func(path string) (*model.Mesh, error)
}

// NewReloadSystem reloads models whose sources change and, when settingsPath
// is non-empty, re-reads that file into s. changes may be nil, in which case
// only explicit ReloadRequests are served.
func NewReloadSystem(changes <-chan string, settingsPath string, s *settings.Settings) *ReloadSystem {
	if settingsPath != "" {
		settingsPath = filepath.Clean(settingsPath)
	}
	return &ReloadSystem{changes: changes, settingsPath: settingsPath, settings: s, load: model.Load}
}

func (r *ReloadSystem) Update(w *ecs.World) {
	for _, path := range r.pending() {
		if path == r.settingsPath {
			r.reloadSettings(w)
			continue
		}
		ecs.ForEach(w, component.ModelComponent.Kind(), func(e ecs.Entity, m *component.Model) {
			if m.Mesh != nil && slices.Contains(m.Mesh.Sources, path) {
				if err := ecs.Add(w, e, component.ReloadRequestComponent.Kind(), &component.ReloadRequest{Reason: path}); err != nil {
					log.Printf("reload: entity=%s: %v", e, err)
				}
			}
		})
	}

	ecs.ForEach2(w, component.ModelComponent.Kind(), component.ReloadRequestComponent.Kind(),
		func(e ecs.Entity, m *component.Model, req *component.ReloadRequest) {
			ecs.Remove(w, e, component.ReloadRequestComponent.Kind())
			mesh, err := r.load(m.Path)
			if err != nil {
				log.Printf("reload: %s (%s): %v; keeping previous mesh", m.Path, req.Reason, err)
				return
			}
			m.Mesh = mesh
			if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
				entity.Fit(t, mesh, r.settings.Model.FitRadius)
			}
			log.Printf("reload: %s: %d triangles", m.Path, len(mesh.Triangles))
			w.Events().Push(ecs.Event{Type: ecs.EventModelReloaded, Data: m.Path})
		})
}

func (r *ReloadSystem) pending() []string {
	if r.changes == nil {
		return nil
	}
	var out []string
	for {
		select {
		case path, ok := <-r.changes:
			if !ok {
				r.changes = nil
				return out
			}
			if !slices.Contains(out, path) {
				out = append(out, path)
			}
		default:
			return out
		}
	}
}

func (r *ReloadSystem) reloadSettings(w *ecs.World) {
	s, err := settings.Load(r.settingsPath)
	if err != nil {
		log.Printf("reload: %v; keeping previous settings", err)
		return
	}
	*r.settings = s
	entity.ApplySettings(w, r.settings)
	log.Printf("reload: settings %s", r.settingsPath)
	w.Events().Push(ecs.Event{Type: ecs.EventSettingsReloaded, Data: r.settingsPath})
}
