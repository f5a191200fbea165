package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/assetviewer/assets"
	"github.com/milk9111/assetviewer/ecs"
	"github.com/milk9111/assetviewer/ecs/entity"
	"github.com/milk9111/assetviewer/ecs/system"
	"github.com/milk9111/assetviewer/model"
	"github.com/milk9111/assetviewer/settings"
)

func main() {
	configPath := flag.String("config", "", "settings override (YAML), layered on the built-in defaults")
	assetsDir := flag.String("assets", "", "assets directory (default from settings)")
	scene := flag.Int("scene", 0, "scene index to show")
	watch := flag.Bool("watch", false, "reload the model and settings when they change on disk")
	showHUD := flag.Bool("hud", true, "show the orientation overlay")
	debug := flag.Bool("debug", false, "enable debug mode")
	list := flag.Bool("list", false, "list the bundled sample models and exit")
	flag.Usage = usage
	flag.Parse()

	if *list {
		for _, name := range assets.Names() {
			fmt.Println(name)
		}
		return
	}
	if flag.NArg() != 1 {
		usage()
		os.Exit(1)
	}

	s, err := settings.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *assetsDir != "" {
		s.AssetsDir = *assetsDir
	}

	path, err := assetPath(s.AssetsDir, flag.Arg(0), *scene)
	if err != nil {
		log.Fatal(err)
	}
	mesh, err := model.Load(path)
	if err != nil {
		log.Fatal(err)
	}
	if *debug {
		log.Printf("viewer: %s: scene %q, %d triangles", path, mesh.Name, len(mesh.Triangles))
	}

	w := ecs.NewWorld()
	if err := entity.NewScene(w, path, mesh, &s); err != nil {
		log.Fatal(err)
	}

	opts := gameOptions{showHUD: *showHUD, debug: *debug}
	if cb, err := system.NewSystemClipboard(); err != nil {
		log.Printf("viewer: %v; copy disabled", err)
	} else {
		opts.clipboard = cb
	}
	if *watch {
		watcher, err := settings.NewWatcher(append([]string{*configPath}, mesh.Sources...)...)
		if err != nil {
			log.Fatalf("viewer: watch: %v", err)
		}
		defer watcher.Close()
		go func() {
			for err := range watcher.Errors {
				log.Printf("watch: %v", err)
			}
		}()
		opts.changes = watcher.Events
		opts.configPath = *configPath
	}

	game, err := NewGame(w, &s, opts)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(s.Window.Width, s.Window.Height)
	ebiten.SetWindowTitle(s.Window.Title)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

// assetPath resolves a CLI name under <assetsDir>/gltf. A "#SceneN" suffix on
// the name takes precedence over the -scene flag.
func assetPath(assetsDir, name string, scene int) (string, error) {
	file, selected, err := model.SplitSelector(name)
	if err != nil {
		return "", err
	}
	if selected >= 0 {
		scene = selected
	}
	if scene < 0 {
		return "", fmt.Errorf("%w: scene %d", model.ErrSceneSelector, scene)
	}
	resolved, err := model.Resolve(assetsDir, file)
	if err != nil {
		return "", err
	}
	return model.WithScene(resolved, scene), nil
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "usage: assetviewer [flags] <name>\n\n")
	fmt.Fprintf(out, "<name> is a glTF file under <assets>/gltf, e.g. puck.gltf or puck.gltf#Scene0.\n")
	if names := assets.Names(); len(names) > 0 {
		fmt.Fprintf(out, "bundled samples: %s\n", strings.Join(names, ", "))
	}
	fmt.Fprintln(out)
	flag.PrintDefaults()
}
