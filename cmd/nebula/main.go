// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command nebula renders a procedural galaxy through the base, bloom and
// overlay channels. In a terminal it runs interactively; elsewhere it writes
// frames to image files.
//
// Configuration comes from the TOML file named by -config or
// $NEBULA_CONFIG (a .env file in the working directory is loaded first),
// with command line flags taking precedence.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"golang.org/x/text/language"

	"github.com/gogpu/nebula"
	"github.com/gogpu/nebula/config"
	"github.com/gogpu/nebula/layer"
	"github.com/gogpu/nebula/scene"
	"github.com/gogpu/nebula/surface"
	"github.com/gogpu/nebula/surface/termsurface"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "nebula:", err)
		os.Exit(1)
	}
}

type flags struct {
	config   string
	surface  string
	frames   int
	output   string
	waypoint string
	logFile  string
	lang     string
	dump     bool
}

func parseFlags(args []string, stderr io.Writer) (flags, error) {
	var f flags
	fs := flag.NewFlagSet("nebula", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.config, "config", "", "TOML configuration `file` (overrides $"+config.EnvConfig+")")
	fs.StringVar(&f.surface, "surface", "", "surface backend "+fmt.Sprint(surface.List())+"; empty picks the best available")
	fs.IntVar(&f.frames, "frames", -1, "stop after this many frames; 0 runs until quit")
	fs.StringVar(&f.output, "output", "", "image `path` for the png surface; %d is replaced by the frame number")
	fs.StringVar(&f.waypoint, "waypoint", "", "fly to the waypoint bound to this `key` on start")
	fs.StringVar(&f.logFile, "log", "", "append logs to `file` instead of stderr")
	fs.StringVar(&f.lang, "lang", "en", "language `tag` for HUD number formatting")
	fs.BoolVar(&f.dump, "dump-config", false, "print the effective configuration and exit")
	if err := fs.Parse(args); err != nil {
		return f, err
	}
	if fs.NArg() > 0 {
		return f, fmt.Errorf("unexpected argument %q", fs.Arg(0))
	}
	return f, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	f, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}
	if f.dump {
		return cfg.Encode(stdout)
	}
	tag, err := language.Parse(f.lang)
	if err != nil {
		return fmt.Errorf("-lang: %w", err)
	}

	s, err := surface.Open(cfg.Viewer.Surface, surface.Options{
		Width:  cfg.Viewer.Width,
		Height: cfg.Viewer.Height,
		Path:   cfg.Viewer.Output,
		Every:  cfg.Viewer.Every,
	})
	if err != nil {
		return err
	}
	if c, ok := s.(io.Closer); ok {
		defer c.Close()
	}
	_, interactive := s.(*termsurface.Surface)
	if !interactive && cfg.Viewer.Frames == 0 && f.frames < 0 {
		// a headless run needs an end
		cfg.Viewer.Frames = 1
	}

	// logs would tear the terminal picture
	logOut := stderr
	if interactive {
		logOut = io.Discard
	}
	if f.logFile != "" {
		lf, err := os.OpenFile(f.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer lf.Close()
		logOut = lf
	}
	if err := setupLogger(logOut); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return view(ctx, cfg, s, f.waypoint, newHUD(tag))
}

// loadConfig resolves the configuration: .env and $NEBULA_CONFIG, then
// -config, then the remaining flags.
func loadConfig(f flags) (config.Config, error) {
	cfg, err := config.LoadEnv()
	if err != nil {
		return cfg, err
	}
	if f.config != "" {
		if cfg, err = config.Load(f.config); err != nil {
			return cfg, err
		}
	}
	if f.surface != "" {
		cfg.Viewer.Surface = f.surface
	}
	if f.frames >= 0 {
		cfg.Viewer.Frames = f.frames
	}
	if f.output != "" {
		cfg.Viewer.Output = f.output
	}
	if f.waypoint != "" {
		if _, ok := cfg.Find(f.waypoint); !ok {
			return cfg, fmt.Errorf("%w: no waypoint bound to %q", config.ErrInvalidConfig, f.waypoint)
		}
	}
	return cfg, cfg.Validate()
}

// setupLogger installs a text logger at $NEBULA_LOG_LEVEL, info by default.
func setupLogger(w io.Writer) error {
	level, ok, err := config.LogLevel()
	if err != nil {
		return err
	}
	if !ok {
		level = slog.LevelInfo
	}
	nebula.SetLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return nil
}

// view builds the scene and runs the frame loop until ctx ends, the user
// quits or the frame limit is reached.
func view(ctx context.Context, cfg config.Config, s surface.Surface, waypoint string, h *hud) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rig, err := cfg.NewRig()
	if err != nil {
		return err
	}

	sc := scene.New()
	sc.Background = cfg.Background()
	galaxy := NewGalaxy(cfg.Viewer.Stars, cfg.Viewer.Seed)
	sc.Add(galaxy.Objects()...)
	axes := scene.NewAxes(5)
	layer.Assign(axes, layer.Base)
	sc.Add(axes)

	opts := append(cfg.Options(),
		nebula.WithProvider(galaxy),
		nebula.WithStateHook(h.observe),
	)
	if ts, ok := s.(*termsurface.Surface); ok {
		ctl := newControls(rig, cfg, ts.Events(), cancel)
		ctl.sync = ts.Screen().Sync
		opts = append(opts, nebula.WithInput(ctl.pump), nebula.WithInput(func(time.Time) {
			ts.SetStatus(h.status(rig))
		}))
	}

	pipe, err := nebula.New(s, sc, rig, cfg.Params(), opts...)
	if err != nil {
		return err
	}
	defer pipe.Close()

	if waypoint != "" {
		wp, _ := cfg.Find(waypoint)
		if err := rig.FlyTo(wp.Command()); err != nil {
			return err
		}
	}

	drv := nebula.NewDriver(pipe)
	err = drv.Run(ctx, ticks(ctx, cfg.Viewer.FPS, cfg.Viewer.Frames))
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	st := drv.Stats()
	nebula.Logger().Info(h.p.Sprintf("nebula: rendered %d frames, %d skipped", st.Frames, st.Failed))
	if st.Failed > 0 && st.Failed == st.Frames {
		return fmt.Errorf("every frame failed: %w", st.LastError)
	}
	return err
}

// ticks delivers fps ticks and closes after limit of them; limit 0 means
// no limit.
func ticks(ctx context.Context, fps, limit int) <-chan time.Time {
	out := make(chan time.Time)
	go func() {
		defer close(out)
		t := time.NewTicker(time.Second / time.Duration(max(fps, 1)))
		defer t.Stop()
		for n := 0; limit == 0 || n < limit; n++ {
			select {
			case now := <-t.C:
				select {
				case out <- now:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
