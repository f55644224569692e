// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scene

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/nebula/internal/color"
)

// Color is a linear-light RGBA color with straight (non-premultiplied)
// alpha. RGB may exceed 1 for emissive content.
type Color struct {
	R, G, B, A float32
}

// Common colors.
var (
	Black = Color{A: 1}
	White = Color{R: 1, G: 1, B: 1, A: 1}
)

// RGB returns an opaque linear color.
func RGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// Hex returns the opaque color for a 0xRRGGBB sRGB value.
func Hex(rgb uint32) Color {
	r, g, b := color.Hex(rgb)
	return Color{R: r, G: g, B: b, A: 1}
}

// Scale multiplies RGB by k.
func (c Color) Scale(k float32) Color {
	return Color{R: c.R * k, G: c.G * k, B: c.B * k, A: c.A}
}

// Lerp mixes c toward d by t.
func (c Color) Lerp(d Color, t float32) Color {
	return Color{
		R: c.R + (d.R-c.R)*t,
		G: c.G + (d.G-c.G)*t,
		B: c.B + (d.B-c.B)*t,
		A: c.A + (d.A-c.A)*t,
	}
}

// Luminance returns the Rec. 709 relative luminance.
func (c Color) Luminance() float32 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

// FogExp2 is exponential-squared distance fog.
type FogExp2 struct {
	Color   Color
	Density float32
}

// NewFogExp2 creates fog from a 0xRRGGBB sRGB color.
func NewFogExp2(rgb uint32, density float32) *FogExp2 {
	return &FogExp2{Color: Hex(rgb), Density: density}
}

// Factor returns how much of the fog color replaces a surface at the given
// view depth, in [0,1].
func (f *FogExp2) Factor(depth float32) float32 {
	if f == nil || f.Density <= 0 {
		return 0
	}
	d := f.Density * depth
	return 1 - math32.Exp(-d*d)
}

// Apply mixes c toward the fog color for the given depth.
func (f *FogExp2) Apply(c Color, depth float32) Color {
	k := f.Factor(depth)
	if k == 0 {
		return c
	}
	out := c.Lerp(f.Color, k)
	out.A = c.A
	return out
}
