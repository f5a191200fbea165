package system

import (
	"math"
	"testing"

	"github.com/milk9111/assetviewer/ecs"
	"github.com/milk9111/assetviewer/ecs/component"
	"github.com/milk9111/assetviewer/ecs/entity"
	"github.com/milk9111/assetviewer/model"
	"github.com/milk9111/assetviewer/settings"
)

const (
	eps       = 1e-9
	cubeAsset = "../../assets/gltf/cube.gltf"
)

// scriptedSource replays one prepared frame per Poll.
type scriptedSource struct {
	frames []component.InputFrame
}

func (s *scriptedSource) Poll(frame *component.InputFrame) {
	if len(s.frames) == 0 {
		return
	}
	next := s.frames[0]
	s.frames = s.frames[1:]
	frame.Held = next.Held
	frame.Pressed = next.Pressed
	frame.Events = append(frame.Events, next.Events...)
}

func defaultSettings(t *testing.T) *settings.Settings {
	t.Helper()
	s, err := settings.Default()
	if err != nil {
		t.Fatalf("default settings: %v", err)
	}
	return &s
}

func newTestScene(t *testing.T, s *settings.Settings) (*ecs.World, ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()
	mesh, err := model.Load(cubeAsset)
	if err != nil {
		t.Fatalf("load cube: %v", err)
	}
	if err := entity.NewScene(w, cubeAsset, mesh, s); err != nil {
		t.Fatalf("new scene: %v", err)
	}
	e, _, ok := ecs.First(w, component.ViewableComponent.Kind())
	if !ok {
		t.Fatal("scene has no viewable")
	}
	return w, e
}

// newPipeline wires the per-tick systems in their production order.
func newPipeline(s *settings.Settings, dt float64, src InputSource) *ecs.Scheduler {
	return ecs.NewScheduler(
		NewFixedClockSystem(dt),
		NewInputSystem(src),
		NewPointerSystem(s),
		NewHotkeySystem(s, nil),
		NewResetSystem(),
		NewOrientationSystem(s),
	)
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}
