// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package camera

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidDuration is returned for a fly-to with a negative duration.
var ErrInvalidDuration = errors.New("camera: invalid transition duration")

// DefaultFlyDuration is used when a command leaves Duration zero.
const DefaultFlyDuration = 3 * time.Second

// Command requests a timed transition to a new pose.
type Command struct {
	// Position is the destination eye position.
	Position mgl64.Vec3

	// Orientation is the destination orientation. When nil the camera keeps
	// aiming at the orbit target while it moves.
	Orientation *mgl64.Quat

	// Duration of the transition. Zero selects DefaultFlyDuration.
	Duration time.Duration

	// Ease shapes progress. Nil selects Power3InOut.
	Ease Ease
}

// Transition interpolates the camera pose between two endpoints over time.
type Transition struct {
	from, to Pose
	aim      bool
	start    time.Time
	duration time.Duration
	ease     Ease
}

// NewTransition starts a transition from the given pose at start.
func NewTransition(from Pose, cmd Command, start time.Time) (*Transition, error) {
	if cmd.Duration < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDuration, cmd.Duration)
	}
	d := cmd.Duration
	if d == 0 {
		d = DefaultFlyDuration
	}
	ease := cmd.Ease
	if ease == nil {
		ease = Power3InOut
	}
	tr := &Transition{
		from:     from,
		to:       Pose{Position: cmd.Position, Orientation: from.Orientation},
		aim:      cmd.Orientation == nil,
		start:    start,
		duration: d,
		ease:     ease,
	}
	if cmd.Orientation != nil {
		tr.to.Orientation = cmd.Orientation.Normalize()
	}
	return tr, nil
}

// Target returns the destination pose.
func (tr *Transition) Target() Pose {
	return tr.to
}

// Progress returns eased progress in [0,1] at now.
func (tr *Transition) Progress(now time.Time) float64 {
	t := float64(now.Sub(tr.start)) / float64(tr.duration)
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return mgl64.Clamp(tr.ease(t), 0, 1)
}

// Done reports whether the transition has reached its end at now.
func (tr *Transition) Done(now time.Time) bool {
	return now.Sub(tr.start) >= tr.duration
}

// Pose returns the interpolated pose at now.
func (tr *Transition) Pose(now time.Time) Pose {
	if tr.Done(now) {
		return tr.to
	}
	p := tr.Progress(now)
	return Pose{
		Position:    lerp(tr.from.Position, tr.to.Position, p),
		Orientation: Slerp(tr.from.Orientation, tr.to.Orientation, p),
	}
}

// Apply writes the pose at now into cam. Position-only transitions re-aim
// the camera at aim. It reports whether the transition is finished.
func (tr *Transition) Apply(cam *Camera, now time.Time, aim mgl64.Vec3) bool {
	cam.SetPose(tr.Pose(now))
	if tr.aim {
		cam.LookAt(aim)
	}
	return tr.Done(now)
}

// Aims reports whether the transition re-aims instead of rotating.
func (tr *Transition) Aims() bool {
	return tr.aim
}

// Slerp interpolates between unit quaternions along the shortest arc.
// At t >= 1 it returns b exactly.
func Slerp(a, b mgl64.Quat, t float64) mgl64.Quat {
	a, b = a.Normalize(), b.Normalize()
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	return mgl64.QuatSlerp(a, b, t).Normalize()
}

// QuatEqual reports whether a and b are the same rotation within eps.
func QuatEqual(a, b mgl64.Quat, eps float64) bool {
	return 1-math.Abs(a.Normalize().Dot(b.Normalize())) <= eps
}

func lerp(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
