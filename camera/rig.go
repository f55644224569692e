// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package camera

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gogpu/nebula/internal/logging"
)

// ErrQueueFull is returned by FlyTo when the command queue has no room.
var ErrQueueFull = errors.New("camera: fly-to queue full")

// DefaultQueueSize is the command queue capacity used when NewRig gets zero.
const DefaultQueueSize = 8

// Rig combines a camera with its orbit controller and scripted transitions.
//
// Commands may be queued from any goroutine. Update must be called from the
// frame goroutine only.
type Rig struct {
	cam    *Camera
	orbit  *Orbit
	queue  chan Command
	active *Transition
}

// NewRig creates a rig. queueSize <= 0 selects DefaultQueueSize.
func NewRig(cam *Camera, orbit *Orbit, queueSize int) *Rig {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Rig{cam: cam, orbit: orbit, queue: make(chan Command, queueSize)}
}

// Camera returns the camera driven by the rig.
func (r *Rig) Camera() *Camera { return r.cam }

// Orbit returns the orbit controller, or nil.
func (r *Rig) Orbit() *Orbit { return r.orbit }

// FlyTo queues a transition. It never blocks.
func (r *Rig) FlyTo(cmd Command) error {
	if cmd.Duration < 0 {
		return ErrInvalidDuration
	}
	select {
	case r.queue <- cmd:
		return nil
	default:
		return ErrQueueFull
	}
}

// Transitioning reports whether a fly-to is in progress.
func (r *Rig) Transitioning() bool {
	return r.active != nil
}

// Update advances the camera to now. Queued commands are consumed first;
// the newest replaces any running transition and starts from the current
// pose. Orbit motion is applied next, then the transition, so a running
// transition owns the pose for the frame.
func (r *Rig) Update(now time.Time, viewportHeight int) {
	log := logging.Logger()

	for drained := false; !drained; {
		select {
		case cmd := <-r.queue:
			tr, err := NewTransition(r.cam.Pose(), cmd, now)
			if err != nil {
				log.Warn("camera: dropping fly-to", "err", err)
				continue
			}
			r.active = tr
			log.Debug("camera: fly-to",
				slog.Any("to", cmd.Position),
				slog.Duration("duration", tr.duration))
		default:
			drained = true
		}
	}

	if r.orbit != nil && r.orbit.Update(r.cam, viewportHeight) && r.active == nil {
		if log.Enabled(context.Background(), slog.LevelDebug) {
			e := r.cam.Euler()
			log.Debug("camera: orbit",
				slog.Any("position", r.cam.Position),
				slog.Any("quaternion", r.cam.Orientation),
				slog.Any("rotation", [3]float64{e.X, e.Y, e.Z}))
		}
	}

	if r.active == nil {
		return
	}
	aim := r.cam.Position.Add(r.cam.Forward())
	if r.orbit != nil {
		aim = r.orbit.Target
	}
	if r.active.Apply(r.cam, now, aim) {
		if r.orbit != nil {
			if !r.active.Aims() {
				r.orbit.SyncTarget(r.cam)
			}
			r.orbit.Reset()
		}
		r.active = nil
		log.Debug("camera: fly-to complete", slog.Any("position", r.cam.Position))
	}
}
