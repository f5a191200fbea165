package settings

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestDefaults(t *testing.T) {
	s, err := Default()
	if err != nil {
		t.Fatalf("default settings: %v", err)
	}

	if s.Controls.RotationSpeed != 0.5 {
		t.Fatalf("rotation_speed: got %v", s.Controls.RotationSpeed)
	}
	if s.Controls.MouseSensitivity != 0.01 || s.Controls.TouchSensitivity != 0.01 {
		t.Fatalf("sensitivities: got %v/%v", s.Controls.MouseSensitivity, s.Controls.TouchSensitivity)
	}
	if s.Controls.Wrap != WrapEuclid || s.Controls.PointerPolicy != PointerBroadcast {
		t.Fatalf("policies: got %q/%q", s.Controls.Wrap, s.Controls.PointerPolicy)
	}
	if s.Ambient.Brightness != 0.8 {
		t.Fatalf("ambient brightness: got %v", s.Ambient.Brightness)
	}
	if s.Ambient.Color.NRGBA != (color.NRGBA{255, 255, 255, 255}) {
		t.Fatalf("ambient color: got %v", s.Ambient.Color)
	}
	if !s.Camera.EyeVec().ApproxEqual(mgl32.Vec3{-2, 2.5, 5}) {
		t.Fatalf("camera eye: got %v", s.Camera.EyeVec())
	}
	if !s.Camera.TargetVec().ApproxEqual(mgl32.Vec3{}) {
		t.Fatalf("camera target: got %v", s.Camera.TargetVec())
	}
	if s.AssetsDir != "assets" {
		t.Fatalf("assets_dir: got %q", s.AssetsDir)
	}
}

func TestParseOverrideKeepsUnsetKeys(t *testing.T) {
	s, err := Parse([]byte("controls:\n  rotation_speed: 1.5\n  wrap: single_step\nbackground: \"#ff000080\"\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if s.Controls.RotationSpeed != 1.5 || s.Controls.Wrap != WrapSingleStep {
		t.Fatalf("override not applied: %+v", s.Controls)
	}
	if s.Controls.MouseSensitivity != 0.01 {
		t.Fatalf("default lost: mouse_sensitivity = %v", s.Controls.MouseSensitivity)
	}
	if s.Background.NRGBA != (color.NRGBA{255, 0, 0, 128}) {
		t.Fatalf("background: got %v", s.Background)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"wrap":       "controls:\n  wrap: modulo\n",
		"policy":     "controls:\n  pointer_policy: queue\n",
		"speed":      "controls:\n  rotation_speed: -1\n",
		"fov":        "camera:\n  fov_deg: 0\n",
		"near_far":   "camera:\n  near: 10\n  far: 1\n",
		"eye_target": "camera:\n  eye: [0, 0, 0]\n",
		"window":     "window:\n  width: 0\n",
		"delta":      "max_frame_delta: 0\n",
		"mouse_nan":  "controls:\n  mouse_sensitivity: .nan\n",
		"mouse_inf":  "controls:\n  mouse_sensitivity: .inf\n",
		"touch_neg":  "controls:\n  touch_sensitivity: -0.5\n",
		"speed_inf":  "controls:\n  rotation_speed: .inf\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(doc)); !errors.Is(err, ErrInvalid) {
				t.Fatalf("expected ErrInvalid, got %v", err)
			}
		})
	}

	if _, err := Parse([]byte("ambient:\n  color: notacolor\n")); err == nil {
		t.Fatal("expected color error")
	}
	if _, err := Parse([]byte("camera:\n  eye: [1, 2]\n")); err == nil {
		t.Fatal("expected array length error")
	}
}

func TestLoadFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.yaml")
	if err := os.WriteFile(path, []byte("ambient:\n  brightness: 0.3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Ambient.Brightness != 0.3 {
		t.Fatalf("brightness: got %v", s.Ambient.Brightness)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}
