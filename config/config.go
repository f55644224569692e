// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package config loads viewer settings from TOML and the environment.
//
// A file only needs the keys it changes; everything else keeps the value
// from Default. Unknown keys are rejected so typos surface at startup.
//
//	[bloom]
//	threshold = 0.85
//	strength = 1.5
//
//	[render]
//	tone_mapping = "reinhard"
//	fog_color = "#EBE2DB"
//
//	[[waypoints]]
//	name = "core"
//	key = "2"
//	position = [-218.4, 127.5, 12.8]
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/nebula"
	"github.com/gogpu/nebula/camera"
	"github.com/gogpu/nebula/composite"
	"github.com/gogpu/nebula/scene"
)

// ErrInvalidConfig is returned for malformed or out-of-range settings.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the complete viewer configuration.
type Config struct {
	Bloom     Bloom      `toml:"bloom"`
	Render    Render     `toml:"render"`
	Camera    Camera     `toml:"camera"`
	Orbit     Orbit      `toml:"orbit"`
	Viewer    Viewer     `toml:"viewer"`
	Waypoints []Waypoint `toml:"waypoints"`
}

// Bloom configures the glow filter.
type Bloom struct {
	Threshold float32 `toml:"threshold"`
	Strength  float32 `toml:"strength"`
	Radius    float32 `toml:"radius"`
	Levels    int     `toml:"levels"`
}

// Render configures the compositor and the channel renderers.
type Render struct {
	Exposure    float32               `toml:"exposure"`
	ToneMapping composite.ToneMapping `toml:"tone_mapping"`
	FogColor    Hex                   `toml:"fog_color"`
	FogDensity  float32               `toml:"fog_density"`
	Background  Hex                   `toml:"background"`
	Workers     int                   `toml:"workers"`
}

// Camera is the initial camera.
type Camera struct {
	FOV      float64 `toml:"fov"`
	Near     float64 `toml:"near"`
	Far      float64 `toml:"far"`
	Position Vec3    `toml:"position"`
	Up       Vec3    `toml:"up"`
	LookAt   Vec3    `toml:"look_at"`
}

// Orbit configures the map-style orbit controller.
type Orbit struct {
	Damping            bool    `toml:"damping"`
	DampingFactor      float64 `toml:"damping_factor"`
	ScreenSpacePanning bool    `toml:"screen_space_panning"`
	MinDistance        float64 `toml:"min_distance"`
	MaxDistance        float64 `toml:"max_distance"`
	MinPolarAngle      float64 `toml:"min_polar_angle"`
	MaxPolarAngle      float64 `toml:"max_polar_angle"`
	RotateSpeed        float64 `toml:"rotate_speed"`
	PanSpeed           float64 `toml:"pan_speed"`
	ZoomSpeed          float64 `toml:"zoom_speed"`
}

// Viewer configures the cmd/nebula host.
type Viewer struct {
	// Surface is a registered surface backend name; empty picks the best
	// available one.
	Surface string `toml:"surface"`
	FPS     int    `toml:"fps"`

	// Width, Height and Output apply to headless surfaces.
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Output string `toml:"output"`
	Every  int    `toml:"every"`

	// Frames stops the viewer after this many frames; 0 runs until quit.
	Frames int `toml:"frames"`

	// Stars is the number of points in the generated galaxy.
	Stars int   `toml:"stars"`
	Seed  int64 `toml:"seed"`
}

// Default returns the reference galaxy viewer configuration.
func Default() Config {
	p := nebula.DefaultParams()
	o := camera.DefaultOrbitOptions()
	return Config{
		Bloom: Bloom{
			Threshold: p.BloomThreshold,
			Strength:  p.BloomStrength,
			Radius:    p.BloomRadius,
			Levels:    5,
		},
		Render: Render{
			Exposure:    p.Exposure,
			ToneMapping: p.ToneMapping,
			FogColor:    0xEBE2DB,
			FogDensity:  p.FogDensity,
			Background:  0x000000,
			Workers:     1,
		},
		Camera: Camera{
			FOV:      p.FOV,
			Near:     p.Near,
			Far:      p.Far,
			Position: Vec3{0, 500, 200},
			Up:       Vec3{0, 0, 1},
			LookAt:   Vec3{-1000, -1000, 200},
		},
		Orbit: Orbit{
			Damping:            o.Damping,
			DampingFactor:      o.DampingFactor,
			ScreenSpacePanning: o.ScreenSpacePanning,
			MinDistance:        o.MinDistance,
			MaxDistance:        o.MaxDistance,
			MinPolarAngle:      o.MinPolarAngle,
			MaxPolarAngle:      o.MaxPolarAngle,
			RotateSpeed:        o.RotateSpeed,
			PanSpeed:           o.PanSpeed,
			ZoomSpeed:          o.ZoomSpeed,
		},
		Viewer: Viewer{
			FPS:    30,
			Width:  640,
			Height: 360,
			Output: "nebula.png",
			Every:  1,
			Stars:  20000,
			Seed:   1,
		},
		Waypoints: DefaultWaypoints(),
	}
}

// Load reads the TOML file at path over Default and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	cfg, err := Decode(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode reads TOML from r over Default and validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	// a file that lists waypoints replaces the defaults rather than
	// merging into them element by element
	cfg.Waypoints = nil
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("%w: %s", ErrInvalidConfig, strict.String())
		}
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if cfg.Waypoints == nil {
		cfg.Waypoints = DefaultWaypoints()
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode writes cfg as TOML.
func (c Config) Encode(w io.Writer) error {
	enc := toml.NewEncoder(w).SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	return nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Bloom.Levels < 1 || c.Bloom.Levels > 5 {
		return fmt.Errorf("%w: bloom levels %d not in [1,5]", ErrInvalidConfig, c.Bloom.Levels)
	}
	if err := c.OrbitOptions().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Camera.Position.Vec().Sub(c.Camera.LookAt.Vec()).Len() == 0 {
		return fmt.Errorf("%w: camera position equals look_at", ErrInvalidConfig)
	}
	if c.Camera.Up.Vec().Len() == 0 {
		return fmt.Errorf("%w: camera up is zero", ErrInvalidConfig)
	}
	v := c.Viewer
	switch {
	case v.FPS <= 0 || v.FPS > 240:
		return fmt.Errorf("%w: fps %d not in [1,240]", ErrInvalidConfig, v.FPS)
	case v.Width <= 0 || v.Height <= 0:
		return fmt.Errorf("%w: viewer size %dx%d", ErrInvalidConfig, v.Width, v.Height)
	case v.Frames < 0 || v.Every < 0 || v.Stars < 0:
		return fmt.Errorf("%w: negative viewer count", ErrInvalidConfig)
	}
	keys := make(map[string]string, len(c.Waypoints))
	for i, wp := range c.Waypoints {
		if err := wp.Validate(); err != nil {
			return fmt.Errorf("%w: waypoint %d: %w", ErrInvalidConfig, i, err)
		}
		if wp.Key == "" {
			continue
		}
		if prev, dup := keys[wp.Key]; dup {
			return fmt.Errorf("%w: key %q bound to %q and %q", ErrInvalidConfig, wp.Key, prev, wp.Name)
		}
		keys[wp.Key] = wp.Name
	}
	return nil
}

// Params returns the pipeline parameters.
func (c Config) Params() nebula.Params {
	return nebula.Params{
		BloomThreshold: c.Bloom.Threshold,
		BloomStrength:  c.Bloom.Strength,
		BloomRadius:    c.Bloom.Radius,
		Exposure:       c.Render.Exposure,
		ToneMapping:    c.Render.ToneMapping,
		FogColor:       c.Render.FogColor.Color(),
		FogDensity:     c.Render.FogDensity,
		FOV:            c.Camera.FOV,
		Near:           c.Camera.Near,
		Far:            c.Camera.Far,
	}
}

// Options returns the pipeline options the configuration implies.
func (c Config) Options() []nebula.Option {
	return []nebula.Option{
		nebula.WithBloomLevels(c.Bloom.Levels),
		nebula.WithWorkers(c.Render.Workers),
	}
}

// OrbitOptions returns the orbit controller options.
func (c Config) OrbitOptions() camera.OrbitOptions {
	o := c.Orbit
	return camera.OrbitOptions{
		Damping:            o.Damping,
		DampingFactor:      o.DampingFactor,
		ScreenSpacePanning: o.ScreenSpacePanning,
		MinDistance:        o.MinDistance,
		MaxDistance:        o.MaxDistance,
		MinPolarAngle:      o.MinPolarAngle,
		MaxPolarAngle:      o.MaxPolarAngle,
		RotateSpeed:        o.RotateSpeed,
		PanSpeed:           o.PanSpeed,
		ZoomSpeed:          o.ZoomSpeed,
	}
}

// NewCamera returns the initial camera: positioned, oriented toward LookAt
// and with the configured projection. Aspect is set by the pipeline.
func (c Config) NewCamera() *camera.Camera {
	cam := camera.New(c.Camera.FOV, 1, c.Camera.Near, c.Camera.Far)
	cam.Position = c.Camera.Position.Vec()
	cam.Up = c.Camera.Up.Vec().Normalize()
	cam.LookAt(c.Camera.LookAt.Vec())
	return cam
}

// NewRig builds the camera, an orbit around LookAt and the rig.
func (c Config) NewRig() (*camera.Rig, error) {
	orbit, err := camera.NewOrbit(c.Camera.LookAt.Vec(), c.OrbitOptions())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return camera.NewRig(c.NewCamera(), orbit, 0), nil
}

// Background returns the scene background color.
func (c Config) Background() scene.Color {
	return c.Render.Background.Color()
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
