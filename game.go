package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/assetviewer/ecs"
	"github.com/milk9111/assetviewer/ecs/component"
	"github.com/milk9111/assetviewer/ecs/system"
	"github.com/milk9111/assetviewer/hud"
	"github.com/milk9111/assetviewer/settings"
)

type Game struct {
	world     *ecs.World
	settings  *settings.Settings
	scheduler *ecs.Scheduler
	render    *system.RenderSystem
	hud       *hud.HUD
	debug     bool
}

type gameOptions struct {
	clipboard system.Clipboard
	changes   <-chan string
	// configPath is reloaded when it appears on changes.
	configPath string
	showHUD    bool
	debug      bool
}

// NewGame wires the per-tick systems around an already populated world.
func NewGame(w *ecs.World, s *settings.Settings, opts gameOptions) (*Game, error) {
	g := &Game{
		world:    w,
		settings: s,
		render:   system.NewRenderSystem(s.Background),
		debug:    opts.debug,
	}

	var blocked func() bool
	if opts.showHUD {
		overlay, err := hud.New(s.Window.Title, func(w *ecs.World) {
			system.ResetView(w, s.Reset.Duration)
		})
		if err != nil {
			return nil, err
		}
		g.hud = overlay
		blocked = hud.Hovered
	}

	g.scheduler = ecs.NewScheduler(
		system.NewClockSystem(s.MaxFrameDelta),
		system.NewInputSystem(system.NewEbitenSource(blocked)),
		system.NewPointerSystem(s),
		system.NewHotkeySystem(s, opts.clipboard),
		system.NewResetSystem(),
		system.NewOrientationSystem(s),
		system.NewReloadSystem(opts.changes, opts.configPath, s),
	)
	if g.hud != nil {
		// Last, so it sees this tick's events before they are flushed.
		g.scheduler.Add(g.hud)
	}
	return g, nil
}

func (g *Game) Update() error {
	g.scheduler.Update(g.world)
	g.render.SetBackground(g.settings.Background)

	if _, frame, ok := ecs.First(g.world, component.InputFrameComponent.Kind()); ok && frame.Pressed.Has(component.KeyQuit) {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.render.Draw(g.world, screen)
	if g.hud != nil {
		g.hud.Draw(screen)
	}
	if g.debug {
		var frame uint64
		if _, clock, ok := ecs.First(g.world, component.ClockComponent.Kind()); ok {
			frame = clock.Frame
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Frames: %d    FPS: %.2f    Entities: %d",
			frame, ebiten.ActualFPS(), len(ecs.Entities(g.world))), 8, screen.Bounds().Dy()-20)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
