// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/nebula/camera"
)

// Waypoint is a named fly-to target.
type Waypoint struct {
	Name string `toml:"name"`

	// Key is the single key that triggers the waypoint in the viewer.
	Key string `toml:"key,omitempty"`

	Position Vec3 `toml:"position"`

	// Orientation is the target rotation as a quaternion. Euler is the
	// same as XYZ angles in radians. At most one may be set; with neither
	// the camera keeps facing the orbit target.
	Orientation *Quat `toml:"orientation,omitempty"`
	Euler       *Vec3 `toml:"euler,omitempty"`

	// Duration defaults to camera.DefaultFlyDuration; Ease to power3.inOut.
	Duration Duration `toml:"duration,omitempty"`
	Ease     string   `toml:"ease,omitempty"`
}

// DefaultWaypoints returns the four tour stops of the reference viewer,
// bound to keys 1 to 4.
func DefaultWaypoints() []Waypoint {
	return []Waypoint{
		{
			Name:        "arm",
			Key:         "1",
			Position:    Vec3{119.94744000755225, -324.1269346826163, 5.287829609798369},
			Orientation: &Quat{0.6116241619981553, 0.19087174097977538, 0.228724390230978, 0.7329181511389052},
		},
		{Name: "core", Key: "2", Position: Vec3{-218.39330025565675, 127.52050091253452, 12.801576880069018}},
		{Name: "above", Key: "3", Position: Vec3{134.55455094962647, 111.653538441952, 158.54824822696492}},
		{Name: "rim", Key: "4", Position: Vec3{129.51970109175414, 157.44119086886838, 72.1166169548824}},
	}
}

// Validate checks the waypoint on its own.
func (w Waypoint) Validate() error {
	if w.Name == "" {
		return errors.New("missing name")
	}
	if len([]rune(w.Key)) > 1 {
		return fmt.Errorf("%s: key %q is not a single character", w.Name, w.Key)
	}
	if !finite(w.Position[:]...) {
		return fmt.Errorf("%s: position %v", w.Name, w.Position)
	}
	if w.Orientation != nil && w.Euler != nil {
		return fmt.Errorf("%s: orientation and euler are exclusive", w.Name)
	}
	if q := w.Orientation; q != nil && (!finite(q[:]...) || q[0] == 0 && q[1] == 0 && q[2] == 0 && q[3] == 0) {
		return fmt.Errorf("%s: orientation %v", w.Name, *q)
	}
	if e := w.Euler; e != nil && !finite(e[:]...) {
		return fmt.Errorf("%s: euler %v", w.Name, *e)
	}
	if w.Duration < 0 {
		return fmt.Errorf("%s: %w", w.Name, camera.ErrInvalidDuration)
	}
	if w.Ease != "" {
		if _, ok := camera.EaseByName(w.Ease); !ok {
			return fmt.Errorf("%s: unknown ease %q", w.Name, w.Ease)
		}
	}
	return nil
}

// Command converts w to a fly-to command. w must be valid.
func (w Waypoint) Command() camera.Command {
	cmd := camera.Command{
		Position: w.Position.Vec(),
		Duration: time.Duration(w.Duration),
	}
	switch {
	case w.Orientation != nil:
		q := w.Orientation.Quat()
		cmd.Orientation = &q
	case w.Euler != nil:
		q := camera.Euler{X: w.Euler[0], Y: w.Euler[1], Z: w.Euler[2]}.Quat()
		cmd.Orientation = &q
	}
	if w.Ease != "" {
		cmd.Ease, _ = camera.EaseByName(w.Ease)
	}
	return cmd
}

// Find returns the waypoint bound to key.
func (c Config) Find(key string) (Waypoint, bool) {
	for _, w := range c.Waypoints {
		if w.Key != "" && w.Key == key {
			return w, true
		}
	}
	return Waypoint{}, false
}
