package settings

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mazznoer/csscolorparser"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("settings: invalid")

// WrapMode selects how yaw is brought back into [0, 2π).
type WrapMode string

const (
	// WrapEuclid takes the Euclidean remainder; any overshoot is normalised.
	WrapEuclid WrapMode = "euclid"
	// WrapSingleStep adds or subtracts one revolution at most per tick.
	WrapSingleStep WrapMode = "single_step"
)

// PointerPolicy selects which tracked objects receive a tick's drag delta.
type PointerPolicy string

const (
	// PointerBroadcast applies the delta to every tracked object, then drains.
	PointerBroadcast PointerPolicy = "broadcast"
	// PointerFirst drains after the first object, so later objects see zero.
	PointerFirst PointerPolicy = "first"
)

type Settings struct {
	AssetsDir     string       `yaml:"assets_dir"`
	MaxFrameDelta float64      `yaml:"max_frame_delta"`
	Background    YAMLColor    `yaml:"background"`
	Window        WindowSpec   `yaml:"window"`
	Controls      ControlsSpec `yaml:"controls"`
	Ambient       AmbientSpec  `yaml:"ambient"`
	Camera        CameraSpec   `yaml:"camera"`
	Reset         ResetSpec    `yaml:"reset"`
	Model         ModelSpec    `yaml:"model"`
}

type WindowSpec struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type ControlsSpec struct {
	// RotationSpeed is the keyboard angular speed in rad/s.
	RotationSpeed    float64       `yaml:"rotation_speed"`
	MouseSensitivity float64       `yaml:"mouse_sensitivity"`
	TouchSensitivity float64       `yaml:"touch_sensitivity"`
	Wrap             WrapMode      `yaml:"wrap"`
	PointerPolicy    PointerPolicy `yaml:"pointer_policy"`
}

type AmbientSpec struct {
	Color      YAMLColor `yaml:"color"`
	Brightness float64   `yaml:"brightness"`
	Headlight  float64   `yaml:"headlight"`
}

type CameraSpec struct {
	Eye    [3]float64 `yaml:"eye"`
	Target [3]float64 `yaml:"target"`
	Up     [3]float64 `yaml:"up"`
	FovDeg float64    `yaml:"fov_deg"`
	Near   float64    `yaml:"near"`
	Far    float64    `yaml:"far"`
}

func (c CameraSpec) EyeVec() mgl32.Vec3    { return vec3(c.Eye) }
func (c CameraSpec) TargetVec() mgl32.Vec3 { return vec3(c.Target) }
func (c CameraSpec) UpVec() mgl32.Vec3     { return vec3(c.Up) }

// FovY returns the vertical field of view in radians.
func (c CameraSpec) FovY() float32 {
	return mgl32.DegToRad(float32(c.FovDeg))
}

type ModelSpec struct {
	// FitRadius scales the model so its bounding sphere has this radius.
	// Zero keeps the file's own units.
	FitRadius float64 `yaml:"fit_radius"`
}

type ResetSpec struct {
	// Duration of the reset-view animation in seconds.
	Duration float64 `yaml:"duration"`
}

func vec3(v [3]float64) mgl32.Vec3 {
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}

// Default returns the embedded settings.
func Default() (Settings, error) {
	return Parse(nil)
}

// Load returns the embedded settings with the file at path layered on top.
func Load(path string) (Settings, error) {
	data, err := ReadOverride(path)
	if err != nil {
		return Settings{}, err
	}
	s, err := Parse(data)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes the embedded defaults and then override (if any) into the same
// value, so keys missing from override keep their defaults.
func Parse(override []byte) (Settings, error) {
	var s Settings
	if err := yaml.Unmarshal(defaultYAML, &s); err != nil {
		return Settings{}, fmt.Errorf("settings: unmarshal defaults: %w", err)
	}
	if len(override) > 0 {
		if err := yaml.Unmarshal(override, &s); err != nil {
			return Settings{}, fmt.Errorf("settings: unmarshal: %w", err)
		}
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate rejects values the viewer cannot run with.
func (s *Settings) Validate() error {
	switch s.Controls.Wrap {
	case WrapEuclid, WrapSingleStep:
	default:
		return fmt.Errorf("%w: controls.wrap %q", ErrInvalid, s.Controls.Wrap)
	}
	switch s.Controls.PointerPolicy {
	case PointerBroadcast, PointerFirst:
	default:
		return fmt.Errorf("%w: controls.pointer_policy %q", ErrInvalid, s.Controls.PointerPolicy)
	}
	if !nonNegative(s.Controls.RotationSpeed) {
		return fmt.Errorf("%w: controls.rotation_speed %v", ErrInvalid, s.Controls.RotationSpeed)
	}
	if !nonNegative(s.Controls.MouseSensitivity) {
		return fmt.Errorf("%w: controls.mouse_sensitivity %v", ErrInvalid, s.Controls.MouseSensitivity)
	}
	if !nonNegative(s.Controls.TouchSensitivity) {
		return fmt.Errorf("%w: controls.touch_sensitivity %v", ErrInvalid, s.Controls.TouchSensitivity)
	}
	if s.Ambient.Brightness < 0 {
		return fmt.Errorf("%w: ambient.brightness %v", ErrInvalid, s.Ambient.Brightness)
	}
	if s.Camera.FovDeg <= 0 || s.Camera.FovDeg >= 180 {
		return fmt.Errorf("%w: camera.fov_deg %v", ErrInvalid, s.Camera.FovDeg)
	}
	if s.Camera.Near <= 0 || s.Camera.Far <= s.Camera.Near {
		return fmt.Errorf("%w: camera near/far %v/%v", ErrInvalid, s.Camera.Near, s.Camera.Far)
	}
	if s.Camera.EyeVec().Sub(s.Camera.TargetVec()).Len() == 0 {
		return fmt.Errorf("%w: camera eye equals target", ErrInvalid)
	}
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		return fmt.Errorf("%w: window %dx%d", ErrInvalid, s.Window.Width, s.Window.Height)
	}
	if s.MaxFrameDelta <= 0 {
		return fmt.Errorf("%w: max_frame_delta %v", ErrInvalid, s.MaxFrameDelta)
	}
	if s.Model.FitRadius < 0 {
		return fmt.Errorf("%w: model.fit_radius %v", ErrInvalid, s.Model.FitRadius)
	}
	if s.Reset.Duration < 0 {
		return fmt.Errorf("%w: reset.duration %v", ErrInvalid, s.Reset.Duration)
	}
	return nil
}

// YAMLColor accepts any CSS color string ("white", "#1d1f24", "rgb(0 0 0)").
type YAMLColor struct {
	color.NRGBA
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := csscolorparser.Parse(value.Value)
	if err != nil {
		return fmt.Errorf("invalid color %q: %w", value.Value, err)
	}
	r, g, b, a := parsed.RGBA255()
	c.NRGBA = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// nonNegative reports whether v is finite and not below zero.
func nonNegative(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}
