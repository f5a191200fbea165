package replay

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/milk9111/assetviewer/ecs"
	"github.com/milk9111/assetviewer/ecs/component"
	"github.com/milk9111/assetviewer/ecs/entity"
	"github.com/milk9111/assetviewer/ecs/system"
	"github.com/milk9111/assetviewer/model"
	"github.com/milk9111/assetviewer/settings"
)

// Result is the orientation of the first tracked object after a replay.
type Result struct {
	Rot    float64
	Tilt   float64
	Quat   mgl32.Quat
	Frames int
	// Copied holds every orientation the script copied with the copy key.
	Copied []string
}

func (r Result) String() string {
	v := component.Viewable{Rot: r.Rot, Tilt: r.Tilt}
	return fmt.Sprintf("frames=%d %s", r.Frames, system.FormatOrientation(&v, r.Quat))
}

// player feeds frames to the InputSystem one tick at a time.
type player struct {
	frames []Frame
	next   int
}

func (p *player) Poll(frame *component.InputFrame) {
	if p.next >= len(p.frames) {
		return
	}
	f := p.frames[p.next]
	p.next++
	frame.Held = f.Held
	frame.Pressed = f.Pressed
	frame.Events = append(frame.Events, f.Events...)
}

type recorder struct {
	copied []string
}

func (r *recorder) WriteText(text string) error {
	r.copied = append(r.copied, text)
	return nil
}

// Run plays frames through the same per-tick systems as the viewer, without a
// window, and reports the resulting orientation. mesh may be nil.
func Run(frames []Frame, s *settings.Settings, mesh *model.Mesh) (Result, error) {
	w := ecs.NewWorld()
	if err := entity.NewScene(w, "replay", mesh, s); err != nil {
		return Result{}, fmt.Errorf("replay: build scene: %w", err)
	}

	clock := system.NewFixedClockSystem(0)
	clip := &recorder{}
	scheduler := ecs.NewScheduler(
		clock,
		system.NewInputSystem(&player{frames: frames}),
		system.NewPointerSystem(s),
		system.NewHotkeySystem(s, clip),
		system.NewResetSystem(),
		system.NewOrientationSystem(s),
	)

	for _, f := range frames {
		clock.SetFixed(f.DT)
		scheduler.Update(w)
	}

	_, v, ok := ecs.First(w, component.ViewableComponent.Kind())
	if !ok {
		return Result{}, fmt.Errorf("replay: scene has no viewable object")
	}
	return Result{
		Rot:    v.Rot,
		Tilt:   v.Tilt,
		Quat:   system.Rotation(v),
		Frames: len(frames),
		Copied: clip.copied,
	}, nil
}
