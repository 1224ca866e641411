// Package config loads the scene description of the sculpture from YAML.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/gekko3d/blossom/sculpt/core"
	"github.com/gekko3d/blossom/sculpt/shape"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Seed       int64           `yaml:"seed"` // 0 seeds from the clock
	Background string          `yaml:"background"`
	Window     WindowConfig    `yaml:"window"`
	Counts     CountsConfig    `yaml:"counts"`
	Tree       TreeConfig      `yaml:"tree"`
	Rings      ColorConfig     `yaml:"rings"`
	Snow       SnowConfig      `yaml:"snow"`
	Star       StarConfig      `yaml:"star"`
	Wings      WingsConfig     `yaml:"wings"`
	Camera     CameraConfig    `yaml:"camera"`
	Explosion  ExplosionConfig `yaml:"explosion"`
	Gesture    GestureConfig   `yaml:"gesture"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type CountsConfig struct {
	Tree  int `yaml:"tree"`
	Rings int `yaml:"rings"`
	Snow  int `yaml:"snow"`
	Star  int `yaml:"star"`
	Wings int `yaml:"wings"`
}

type TreeConfig struct {
	Radius     float32 `yaml:"radius"`
	Height     float32 `yaml:"height"`
	CoreColor  string  `yaml:"coreColor"`
	MidColor   string  `yaml:"midColor"`
	OuterColor string  `yaml:"outerColor"`
}

type ColorConfig struct {
	Color string `yaml:"color"`
}

type SnowConfig struct {
	BoxSize float32 `yaml:"boxSize"`
	Color   string  `yaml:"color"`
}

type StarConfig struct {
	Radius float32 `yaml:"radius"`
	Color  string  `yaml:"color"`
}

type WingsConfig struct {
	Span   float32 `yaml:"span"`
	PivotY float32 `yaml:"pivotY"` // flap pivot height
	Color  string  `yaml:"color"`
}

type CameraConfig struct {
	Position   [3]float32 `yaml:"position"`
	Fov        float32    `yaml:"fov"` // degrees
	AutoRotate float32    `yaml:"autoRotate"`
}

type ExplosionConfig struct {
	Rate float32 `yaml:"rate"` // smoothing rate per second
}

type GestureConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	Facing    string  `yaml:"facing"`
	FrameRate float64 `yaml:"frameRate"` // pointer source only
}

// Default returns the stock sculpture.
func Default() *Config {
	return &Config{
		Background: "#050005",
		Window:     WindowConfig{Width: 1280, Height: 720, Title: "Blossom"},
		Counts:     CountsConfig{Tree: 12000, Rings: 3000, Snow: 1500, Star: 300, Wings: 6000},
		Tree: TreeConfig{
			Radius:     4.5,
			Height:     12,
			CoreColor:  "#ffe4f1",
			MidColor:   "#ff8fc8",
			OuterColor: "#d6246e",
		},
		Rings:     ColorConfig{Color: "#ffd27a"},
		Snow:      SnowConfig{BoxSize: 30, Color: "#ffffff"},
		Star:      StarConfig{Radius: 0.8, Color: "#fff3b0"},
		Wings:     WingsConfig{Span: 8, PivotY: 6, Color: "#ffe9f5"},
		Camera:    CameraConfig{Position: [3]float32{0, 8, 24}, Fov: 45, AutoRotate: 0.5},
		Explosion: ExplosionConfig{Rate: 2},
		Gesture:   GestureConfig{Width: 640, Height: 480, Facing: "user", FrameRate: 30},
	}
}

// Load reads path and overlays it on Default. Missing keys keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate reports every problem found, joined. Geometry problems wrap
// shape.ErrGeometryConfig.
func (c *Config) Validate() error {
	_, err := c.Scene()
	return err
}

// Scene is a validated Config resolved into generator and camera parameters.
type Scene struct {
	Counts     CountsConfig
	Background mgl32.Vec3

	Tree  shape.TreeParams
	Rings shape.RingParams
	Snow  shape.SnowParams
	Star  shape.StarParams
	Wings shape.WingParams

	StarCenter mgl32.Vec3
	WingPivotY float32

	CameraPosition mgl32.Vec3
	CameraTarget   mgl32.Vec3
	Fov            float32
	AutoRotate     float32

	ExplosionRate float32
}

func (c *Config) Scene() (*Scene, error) {
	var errs []error
	geom := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{shape.ErrGeometryConfig}, args...)...))
	}
	color := func(field, hex string) mgl32.Vec3 {
		v, err := core.ParseHexColor(hex)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", field, err))
		}
		return v
	}

	counts := []struct {
		name string
		n    int
	}{
		{"tree", c.Counts.Tree}, {"rings", c.Counts.Rings}, {"snow", c.Counts.Snow},
		{"star", c.Counts.Star}, {"wings", c.Counts.Wings},
	}
	for _, cnt := range counts {
		if cnt.n <= 0 {
			geom("counts.%s must be positive, got %d", cnt.name, cnt.n)
		}
	}
	dims := []struct {
		name string
		v    float32
	}{
		{"tree.radius", c.Tree.Radius}, {"tree.height", c.Tree.Height}, {"snow.boxSize", c.Snow.BoxSize},
		{"star.radius", c.Star.Radius}, {"wings.span", c.Wings.Span},
	}
	for _, d := range dims {
		if !positiveFinite(d.v) {
			geom("%s must be positive and finite, got %v", d.name, d.v)
		}
	}
	if !finite(c.Wings.PivotY) {
		geom("wings.pivotY must be finite, got %v", c.Wings.PivotY)
	}

	if !(c.Camera.Fov > 0 && c.Camera.Fov < 180) {
		errs = append(errs, fmt.Errorf("camera.fov must be in (0,180), got %v", c.Camera.Fov))
	}
	for i, v := range c.Camera.Position {
		if !finite(v) {
			errs = append(errs, fmt.Errorf("camera.position[%d] must be finite, got %v", i, v))
		}
	}
	if !finite(c.Camera.AutoRotate) {
		errs = append(errs, fmt.Errorf("camera.autoRotate must be finite, got %v", c.Camera.AutoRotate))
	}
	if !positiveFinite(c.Explosion.Rate) {
		errs = append(errs, fmt.Errorf("explosion.rate must be positive, got %v", c.Explosion.Rate))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Gesture.Width <= 0 || c.Gesture.Height <= 0 {
		errs = append(errs, fmt.Errorf("gesture camera size must be positive, got %dx%d", c.Gesture.Width, c.Gesture.Height))
	}

	h := c.Tree.Height
	s := &Scene{
		Counts:     c.Counts,
		Background: color("background", c.Background),
		Tree: shape.TreeParams{
			Radius:     c.Tree.Radius,
			Height:     h,
			CoreColor:  color("tree.coreColor", c.Tree.CoreColor),
			MidColor:   color("tree.midColor", c.Tree.MidColor),
			OuterColor: color("tree.outerColor", c.Tree.OuterColor),
		},
		Rings: shape.RingParams{TreeRadius: c.Tree.Radius, Color: color("rings.color", c.Rings.Color)},
		Snow:  shape.SnowParams{BoxSize: c.Snow.BoxSize, Color: color("snow.color", c.Snow.Color)},
		Star:  shape.StarParams{Radius: c.Star.Radius, Color: color("star.color", c.Star.Color)},
		Wings: shape.WingParams{
			Span:         c.Wings.Span,
			HeightOffset: 0.65 * h,
			Color:        color("wings.color", c.Wings.Color),
		},
		StarCenter:     mgl32.Vec3{0, h + 0.5, 0},
		WingPivotY:     c.Wings.PivotY,
		CameraPosition: mgl32.Vec3(c.Camera.Position),
		CameraTarget:   mgl32.Vec3{0, h / 2, 0},
		Fov:            c.Camera.Fov,
		AutoRotate:     c.Camera.AutoRotate,
		ExplosionRate:  c.Explosion.Rate,
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return s, nil
}

func finite(v float32) bool {
	return !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0)
}

func positiveFinite(v float32) bool {
	return v > 0 && !math.IsInf(float64(v), 1)
}
