// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gogpu/nebula"
	"github.com/gogpu/nebula/camera"
	"github.com/gogpu/nebula/composite"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.Params() != nebula.DefaultParams() {
		t.Errorf("Params() = %+v, want nebula.DefaultParams()", cfg.Params())
	}
	if cfg.OrbitOptions() != camera.DefaultOrbitOptions() {
		t.Errorf("OrbitOptions() = %+v", cfg.OrbitOptions())
	}
	if len(cfg.Waypoints) != 4 {
		t.Errorf("%d default waypoints, want 4", len(cfg.Waypoints))
	}
}

func TestDecodeOverridesDefaults(t *testing.T) {
	const src = `
[bloom]
strength = 2.5

[render]
tone_mapping = "reinhard"
fog_color = "#102030"
background = 0x000010

[camera]
fov = 75.0

[orbit]
damping = false

[[waypoints]]
name = "home"
key = "h"
position = [1.0, 2.0, 3.0]
euler = [0.0, 0.5, 0.0]
duration = "1500ms"
ease = "sine.inOut"
`
	cfg, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	def := Default()
	if cfg.Bloom.Strength != 2.5 || cfg.Bloom.Threshold != def.Bloom.Threshold {
		t.Errorf("bloom = %+v", cfg.Bloom)
	}
	if cfg.Render.ToneMapping != composite.Reinhard {
		t.Errorf("tone mapping = %v", cfg.Render.ToneMapping)
	}
	if cfg.Render.FogColor != 0x102030 || cfg.Render.Background != 0x10 {
		t.Errorf("colors = %06X %06X", uint32(cfg.Render.FogColor), uint32(cfg.Render.Background))
	}
	if cfg.Camera.FOV != 75 || cfg.Camera.Far != def.Camera.Far {
		t.Errorf("camera = %+v", cfg.Camera)
	}
	if cfg.Orbit.Damping || cfg.Orbit.DampingFactor != def.Orbit.DampingFactor {
		t.Errorf("orbit = %+v", cfg.Orbit)
	}
	if len(cfg.Waypoints) != 1 {
		t.Fatalf("waypoints = %+v, want only the file's", cfg.Waypoints)
	}
	cmd := cfg.Waypoints[0].Command()
	if cmd.Duration != 1500*time.Millisecond || cmd.Ease == nil || cmd.Orientation == nil {
		t.Errorf("command = %+v", cmd)
	}
	if !cmd.Position.ApproxEqual(mgl64.Vec3{1, 2, 3}) {
		t.Errorf("position = %v", cmd.Position)
	}
}

func TestDecodeKeepsDefaultWaypoints(t *testing.T) {
	cfg, err := Decode(strings.NewReader("[viewer]\nfps = 60\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Viewer.FPS != 60 || len(cfg.Waypoints) != 4 {
		t.Errorf("fps %d, %d waypoints", cfg.Viewer.FPS, len(cfg.Waypoints))
	}
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown key", "[bloom]\nglow = 1.0\n"},
		{"syntax", "[bloom\n"},
		{"tone mapping", "[render]\ntone_mapping = \"filmic\"\n"},
		{"fog color", "[render]\nfog_color = \"#12\"\n"},
		{"exposure", "[render]\nexposure = 0.0\n"},
		{"bloom levels", "[bloom]\nlevels = 6\n"},
		{"bloom radius", "[bloom]\nradius = 1.5\n"},
		{"near far", "[camera]\nnear = 10.0\nfar = 1.0\n"},
		{"look at self", "[camera]\nposition = [1.0, 1.0, 1.0]\nlook_at = [1.0, 1.0, 1.0]\n"},
		{"damping factor", "[orbit]\ndamping_factor = 1.5\n"},
		{"fps", "[viewer]\nfps = 0\n"},
		{"duration", "[[waypoints]]\nname = \"a\"\nposition = [0.0, 0.0, 0.0]\nduration = \"soon\"\n"},
		{"ease", "[[waypoints]]\nname = \"a\"\nposition = [0.0, 0.0, 0.0]\nease = \"bounce\"\n"},
		{"both orientations", "[[waypoints]]\nname = \"a\"\nposition = [0.0, 0.0, 0.0]\neuler = [0.0, 0.0, 0.0]\norientation = [0.0, 0.0, 0.0, 1.0]\n"},
		{"zero quaternion", "[[waypoints]]\nname = \"a\"\nposition = [0.0, 0.0, 0.0]\norientation = [0.0, 0.0, 0.0, 0.0]\n"},
		{"unnamed", "[[waypoints]]\nposition = [0.0, 0.0, 0.0]\n"},
		{"duplicate key", "[[waypoints]]\nname = \"a\"\nkey = \"1\"\nposition = [0.0, 0.0, 0.0]\n[[waypoints]]\nname = \"b\"\nkey = \"1\"\nposition = [1.0, 0.0, 0.0]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(tt.src)); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Render.ToneMapping = composite.Linear
	cfg.Waypoints[1].Duration = Duration(2 * time.Second)

	var buf bytes.Buffer
	if err := cfg.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`tone_mapping = 'linear'`, `fog_color = '#EBE2DB'`, `duration = '2s'`} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("encoded config missing %s:\n%s", want, buf.String())
		}
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if got.Render != cfg.Render || len(got.Waypoints) != len(cfg.Waypoints) {
		t.Errorf("round trip changed the config")
	}
	if *got.Waypoints[0].Orientation != *cfg.Waypoints[0].Orientation {
		t.Errorf("orientation = %v", *got.Waypoints[0].Orientation)
	}
}

func TestHex(t *testing.T) {
	tests := []struct {
		in   string
		want Hex
		ok   bool
	}{
		{"#EBE2DB", 0xEBE2DB, true},
		{"0xebe2db", 0xEBE2DB, true},
		{" 102030 ", 0x102030, true},
		{"#12345", 0, false},
		{"#GGGGGG", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var h Hex
			err := h.UnmarshalText([]byte(tt.in))
			if (err == nil) != tt.ok {
				t.Fatalf("err = %v", err)
			}
			if h != tt.want {
				t.Errorf("got %06X, want %06X", uint32(h), uint32(tt.want))
			}
		})
	}
	white := Hex(0xFFFFFF).Color()
	if white.R != 1 || white.G != 1 || white.B != 1 || white.A != 1 {
		t.Errorf("white = %+v", white)
	}
}

func TestWaypointCommands(t *testing.T) {
	cfg := Default()
	arm, ok := cfg.Find("1")
	if !ok {
		t.Fatal("no waypoint on key 1")
	}
	cmd := arm.Command()
	if cmd.Orientation == nil {
		t.Fatal("first waypoint should carry an orientation")
	}
	if l := cmd.Orientation.Len(); math.Abs(l-1) > 1e-9 {
		t.Errorf("orientation length = %v", l)
	}
	if cmd.Duration != 0 || cmd.Ease != nil {
		t.Error("unset duration and ease should defer to camera defaults")
	}

	core, _ := cfg.Find("2")
	if core.Command().Orientation != nil {
		t.Error("position-only waypoint got an orientation")
	}
	if _, ok := cfg.Find("9"); ok {
		t.Error("found waypoint on unbound key")
	}
	if _, ok := cfg.Find(""); ok {
		t.Error("empty key matched")
	}
}

func TestNewRig(t *testing.T) {
	rig, err := Default().NewRig()
	if err != nil {
		t.Fatal(err)
	}
	cam := rig.Camera()
	if !cam.Position.ApproxEqual(mgl64.Vec3{0, 500, 200}) {
		t.Errorf("position = %v", cam.Position)
	}
	want := mgl64.Vec3{-1000, -1500, 0}.Normalize()
	if got := cam.Forward(); got.Sub(want).Len() > 1e-9 {
		t.Errorf("forward = %v, want %v", got, want)
	}
	if !rig.Orbit().Target.ApproxEqual(mgl64.Vec3{-1000, -1000, 200}) {
		t.Errorf("orbit target = %v", rig.Orbit().Target)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nebula.toml")
	if err := os.WriteFile(path, []byte("[viewer]\nstars = 10\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Viewer.Stars != 10 {
		t.Errorf("stars = %d", cfg.Viewer.Stars)
	}
	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file err = %v", err)
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	toml := filepath.Join(dir, "viewer.toml")
	if err := os.WriteFile(toml, []byte("[viewer]\nfps = 12\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	env := filepath.Join(dir, ".env")
	if err := os.WriteFile(env, []byte(EnvConfig+"="+toml+"\n"+EnvLogLevel+"=debug\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvConfig, "")
	t.Setenv(EnvLogLevel, "")
	os.Unsetenv(EnvConfig)
	os.Unsetenv(EnvLogLevel)

	cfg, err := LoadEnv(env, filepath.Join(dir, "absent.env"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Viewer.FPS != 12 {
		t.Errorf("fps = %d, want 12 from %s", cfg.Viewer.FPS, toml)
	}
	level, ok, err := LogLevel()
	if err != nil || !ok || level != slog.LevelDebug {
		t.Errorf("LogLevel() = %v %v %v", level, ok, err)
	}
}

func TestLoadEnvDefaults(t *testing.T) {
	t.Setenv(EnvConfig, "")
	t.Setenv(EnvLogLevel, "")
	cfg, err := LoadEnv(filepath.Join(t.TempDir(), "none.env"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Viewer != Default().Viewer {
		t.Error("expected defaults without NEBULA_CONFIG")
	}
	if _, ok, err := LogLevel(); ok || err != nil {
		t.Errorf("LogLevel() ok=%v err=%v with empty env", ok, err)
	}

	t.Setenv(EnvLogLevel, "loud")
	if _, _, err := LogLevel(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}
