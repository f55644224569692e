// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scene

import "github.com/go-gl/mathgl/mgl32"

// Blending selects how a primitive combines with what is already drawn.
type Blending uint8

const (
	// NormalBlending draws source-over and writes depth.
	NormalBlending Blending = iota

	// AdditiveBlending adds light and leaves depth untouched, so overlapping
	// glows accumulate regardless of draw order.
	AdditiveBlending
)

// String returns the blending name.
func (b Blending) String() string {
	switch b {
	case NormalBlending:
		return "normal"
	case AdditiveBlending:
		return "additive"
	default:
		return "unknown"
	}
}

// Sprite is a round point primitive.
type Sprite struct {
	// Position in world space.
	Position mgl32.Vec3

	// Size is the diameter in pixels, or in world units scaled by
	// (viewport height / 2) / depth when Attenuate is set.
	Size float32

	Color    Color
	Blending Blending

	Attenuate bool
	Fog       bool
}

// Canvas receives primitives from Object.Draw.
type Canvas interface {
	// Point draws a round sprite.
	Point(s Sprite)

	// Line draws a segment with colors interpolated between the endpoints.
	Line(a, b mgl32.Vec3, ca, cb Color, fog bool)

	// Text draws a screen-aligned label anchored at a world position.
	Text(anchor mgl32.Vec3, s string, c Color)
}
