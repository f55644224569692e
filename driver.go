// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package nebula

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Stats counts the frames a Driver has run.
type Stats struct {
	// Frames is the number of frames attempted.
	Frames uint64

	// Failed is the number of frames that returned an error.
	Failed uint64

	// LastError is the most recent frame error, or nil.
	LastError error
}

// Driver runs a Pipeline once per vsync tick. A failing frame is logged and
// counted; it never stops the loop.
type Driver struct {
	pipeline *Pipeline

	mu    sync.Mutex
	stats Stats
}

// NewDriver creates a driver for p.
func NewDriver(p *Pipeline) *Driver {
	return &Driver{pipeline: p}
}

// Pipeline returns the driven pipeline.
func (d *Driver) Pipeline() *Pipeline { return d.pipeline }

// Step runs one frame at now and records the outcome.
func (d *Driver) Step(now time.Time) error {
	err := d.pipeline.Frame(now)

	d.mu.Lock()
	d.stats.Frames++
	if err != nil {
		d.stats.Failed++
		d.stats.LastError = err
	}
	frame := d.stats.Frames
	d.mu.Unlock()

	log := d.pipeline.logger()
	if err != nil {
		log.Warn("nebula: frame skipped", "frame", frame, "err", err)
	} else if log.Enabled(context.Background(), slog.LevelDebug) {
		log.Debug("nebula: frame presented", "frame", frame, "viewport", d.pipeline.viewport.String())
	}
	return err
}

// Run renders one frame per value received from vsync, using the received
// time as the frame time. It returns ctx.Err() when ctx is cancelled and nil
// when vsync is closed. Frame errors do not end the loop.
func (d *Driver) Run(ctx context.Context, vsync <-chan time.Time) error {
	log := d.pipeline.logger()
	log.Info("nebula: driver started")
	defer func() { log.Info("nebula: driver stopped", "frames", d.Stats().Frames) }()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now, ok := <-vsync:
			if !ok {
				return nil
			}
			// a tick may race with cancellation
			if ctx.Err() != nil {
				return ctx.Err()
			}
			_ = d.Step(now)
		}
	}
}

// Stats returns a snapshot of the counters. It is safe to call from any
// goroutine.
func (d *Driver) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stats
}
