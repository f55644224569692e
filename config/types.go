// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/gogpu/nebula/scene"
)

// Vec3 is a TOML array of three numbers.
type Vec3 [3]float64

// Vec converts v to a mathgl vector.
func (v Vec3) Vec() mgl64.Vec3 { return mgl64.Vec3(v) }

// Quat is a TOML array [x, y, z, w].
type Quat [4]float64

// Quat converts q to a normalized mathgl quaternion.
func (q Quat) Quat() mgl64.Quat {
	return mgl64.Quat{W: q[3], V: mgl64.Vec3{q[0], q[1], q[2]}}.Normalize()
}

// Hex is an sRGB color written as "#RRGGBB", "0xRRGGBB" or a TOML integer.
type Hex uint32

// Color converts h to a linear scene color.
func (h Hex) Color() scene.Color { return scene.Hex(uint32(h)) }

// MarshalText implements encoding.TextMarshaler.
func (h Hex) MarshalText() ([]byte, error) {
	return fmt.Appendf(nil, "#%06X", uint32(h)&0xFFFFFF), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Hex) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	switch {
	case strings.HasPrefix(s, "#"):
		s = s[1:]
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		s = s[2:]
	}
	if len(s) != 6 {
		return fmt.Errorf("%w: color %q is not RRGGBB", ErrInvalidConfig, text)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fmt.Errorf("%w: color %q: %w", ErrInvalidConfig, text, err)
	}
	*h = Hex(v)
	return nil
}

// Duration is a time.Duration written as a Go duration string ("3s",
// "1500ms").
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("%w: duration: %w", ErrInvalidConfig, err)
	}
	*d = Duration(v)
	return nil
}
