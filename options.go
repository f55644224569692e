// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package nebula

import (
	"log/slog"
	"time"

	"github.com/gogpu/nebula/filter"
	"github.com/gogpu/nebula/scene"
)

// Option configures a Pipeline during creation.
//
// Example:
//
//	p, err := nebula.New(s, sc, rig, nebula.DefaultParams(),
//	    nebula.WithProvider(galaxy),
//	    nebula.WithInput(pumpKeys),
//	)
type Option func(*options)

type options struct {
	logger      *slog.Logger
	inputs      []func(time.Time)
	providers   []scene.Provider
	stateHook   func(State)
	clear       *scene.Color
	bloomLevels int
	workers     int
}

func defaultOptions() options {
	return options{
		bloomLevels: filter.MaxBloomLevels,
		workers:     1,
	}
}

// WithLogger sets the logger for this pipeline. By default the package
// logger (see SetLogger) is used.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithInput adds a hook run at the start of every frame, before the camera
// rig updates. Hooks drain host input into the rig or its orbit.
func WithInput(fn func(now time.Time)) Option {
	return func(o *options) {
		if fn != nil {
			o.inputs = append(o.inputs, fn)
		}
	}
}

// WithProvider adds a scene provider whose UpdateScale runs every frame
// after the camera settles and before any channel renders.
func WithProvider(p scene.Provider) Option {
	return func(o *options) {
		if p != nil {
			o.providers = append(o.providers, p)
		}
	}
}

// WithStateHook observes every state transition. It runs on the frame
// goroutine and must not call back into the pipeline.
func WithStateHook(fn func(State)) Option {
	return func(o *options) {
		o.stateHook = fn
	}
}

// WithClearColor overrides the scene background as the Base clear color.
func WithClearColor(c scene.Color) Option {
	return func(o *options) {
		o.clear = &c
	}
}

// WithBloomLevels sets the depth of the bloom mip chain, 1 to
// filter.MaxBloomLevels.
func WithBloomLevels(n int) Option {
	return func(o *options) {
		o.bloomLevels = n
	}
}

// WithWorkers splits the per-pixel passes across n goroutines. 0 uses
// GOMAXPROCS; 1, the default, keeps everything on the frame goroutine.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}
