package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/assetviewer/ecs"
	"github.com/milk9111/assetviewer/ecs/component"
	"github.com/milk9111/assetviewer/model"
	"github.com/milk9111/assetviewer/settings"
)

// NewController creates the entity that owns the per-tick clock, the input
// snapshot and the pointer accumulator.
func NewController(w *ecs.World) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.ControllerTagComponent.Kind(), &component.ControllerTag{}); err != nil {
		return 0, fmt.Errorf("controller: add tag: %w", err)
	}
	if err := ecs.Add(w, e, component.ClockComponent.Kind(), &component.Clock{}); err != nil {
		return 0, fmt.Errorf("controller: add clock: %w", err)
	}
	if err := ecs.Add(w, e, component.InputFrameComponent.Kind(), &component.InputFrame{}); err != nil {
		return 0, fmt.Errorf("controller: add input frame: %w", err)
	}
	if err := ecs.Add(w, e, component.PointerAccumulatorComponent.Kind(), &component.PointerAccumulator{}); err != nil {
		return 0, fmt.Errorf("controller: add pointer accumulator: %w", err)
	}
	return e, nil
}

func NewCamera(w *ecs.World, s *settings.Settings) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	cam := &component.Camera{}
	applyCamera(cam, s)
	if err := ecs.Add(w, e, component.CameraComponent.Kind(), cam); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}
	return e, nil
}

func NewAmbientLight(w *ecs.World, s *settings.Settings) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	light := &component.AmbientLight{}
	applyLight(light, s)
	if err := ecs.Add(w, e, component.AmbientLightComponent.Kind(), light); err != nil {
		return 0, fmt.Errorf("light: add ambient light: %w", err)
	}
	return e, nil
}

// NewModel creates a tracked object at the origin with rot = tilt = 0.
func NewModel(w *ecs.World, path string, mesh *model.Mesh, s *settings.Settings) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.ViewableComponent.Kind(), &component.Viewable{}); err != nil {
		return 0, fmt.Errorf("model: add viewable: %w", err)
	}
	t := &component.Transform{Rotation: mgl32.QuatIdent()}
	Fit(t, mesh, s.Model.FitRadius)
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), t); err != nil {
		return 0, fmt.Errorf("model: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.ModelComponent.Kind(), &component.Model{Path: path, Mesh: mesh}); err != nil {
		return 0, fmt.Errorf("model: add model: %w", err)
	}
	return e, nil
}

// NewScene builds the controller, camera, light and one model entity.
func NewScene(w *ecs.World, path string, mesh *model.Mesh, s *settings.Settings) error {
	if _, err := NewController(w); err != nil {
		return err
	}
	if _, err := NewCamera(w, s); err != nil {
		return err
	}
	if _, err := NewAmbientLight(w, s); err != nil {
		return err
	}
	if _, err := NewModel(w, path, mesh, s); err != nil {
		return err
	}
	return nil
}

// Fit centres the rotation on the mesh and, when fitRadius > 0, scales the
// mesh so its bounding sphere has that radius.
func Fit(t *component.Transform, mesh *model.Mesh, fitRadius float64) {
	t.Pivot = mgl32.Vec3{}
	t.Scale = 1
	if mesh == nil {
		return
	}
	t.Pivot = mesh.Center()
	if r := mesh.Radius(); fitRadius > 0 && r > 0 {
		t.Scale = float32(fitRadius) / r
	}
}

// ApplySettings pushes camera, light and fit changes into existing entities.
func ApplySettings(w *ecs.World, s *settings.Settings) {
	ecs.ForEach(w, component.CameraComponent.Kind(), func(_ ecs.Entity, cam *component.Camera) {
		applyCamera(cam, s)
	})
	ecs.ForEach(w, component.AmbientLightComponent.Kind(), func(_ ecs.Entity, light *component.AmbientLight) {
		applyLight(light, s)
	})
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.ModelComponent.Kind(),
		func(_ ecs.Entity, t *component.Transform, m *component.Model) {
			Fit(t, m.Mesh, s.Model.FitRadius)
		})
}

func applyCamera(cam *component.Camera, s *settings.Settings) {
	cam.Eye = s.Camera.EyeVec()
	cam.Target = s.Camera.TargetVec()
	cam.Up = s.Camera.UpVec()
	cam.FovY = s.Camera.FovY()
	cam.Near = float32(s.Camera.Near)
	cam.Far = float32(s.Camera.Far)
}

func applyLight(light *component.AmbientLight, s *settings.Settings) {
	light.Color = s.Ambient.Color.NRGBA
	light.Brightness = float32(s.Ambient.Brightness)
	light.Headlight = float32(s.Ambient.Headlight)
}
