// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"image"
	"image/color"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/nebula/scene"
)

// ErrEmptyTarget is returned when a target would have no pixels.
var ErrEmptyTarget = errors.New("render: empty target")

// FloatTarget is a linear-light RGBA float32 image with premultiplied alpha.
//
// It implements image.Image so channel images can be inspected or saved;
// At clamps to [0,1] and loses HDR range.
type FloatTarget struct {
	pix    []float32
	width  int
	height int
}

// NewFloatTarget creates a transparent black target.
func NewFloatTarget(width, height int) *FloatTarget {
	t := &FloatTarget{}
	t.Resize(width, height)
	return t
}

// Width returns the target width in pixels.
func (t *FloatTarget) Width() int { return t.width }

// Height returns the target height in pixels.
func (t *FloatTarget) Height() int { return t.height }

// Format returns the pixel format (RGBA32Float).
func (t *FloatTarget) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA32Float
}

// Empty reports whether the target has no pixels. A nil target is empty.
func (t *FloatTarget) Empty() bool {
	return t == nil || t.width == 0 || t.height == 0
}

// Pix returns the pixel data, four floats per pixel, row by row.
func (t *FloatTarget) Pix() []float32 { return t.pix }

// Stride returns the number of floats per row.
func (t *FloatTarget) Stride() int { return t.width * 4 }

// Offset returns the index of pixel (x, y) in Pix, or -1 when out of bounds.
func (t *FloatTarget) Offset(x, y int) int {
	if t == nil || x < 0 || y < 0 || x >= t.width || y >= t.height {
		return -1
	}
	return (y*t.width + x) * 4
}

// Resize changes the dimensions, reusing the buffer when its capacity
// suffices. Contents become transparent black. It reports whether the size
// changed.
func (t *FloatTarget) Resize(width, height int) bool {
	width, height = max(width, 0), max(height, 0)
	if width == t.width && height == t.height {
		return false
	}
	n := width * height * 4
	if cap(t.pix) < n {
		t.pix = make([]float32, n)
	} else {
		t.pix = t.pix[:n]
		clear(t.pix)
	}
	t.width, t.height = width, height
	return true
}

// Clear fills the target with c, premultiplying by its alpha.
func (t *FloatTarget) Clear(c scene.Color) {
	if len(t.pix) == 0 {
		return
	}
	r, g, b, a := c.R*c.A, c.G*c.A, c.B*c.A, c.A
	if r == 0 && g == 0 && b == 0 && a == 0 {
		clear(t.pix)
		return
	}
	t.pix[0], t.pix[1], t.pix[2], t.pix[3] = r, g, b, a
	for filled := 4; filled < len(t.pix); filled *= 2 {
		copy(t.pix[filled:], t.pix[:filled])
	}
}

// CopyFrom copies src into t, resizing t to match.
func (t *FloatTarget) CopyFrom(src *FloatTarget) {
	t.Resize(src.width, src.height)
	copy(t.pix, src.pix)
}

// RGBA returns the premultiplied components of pixel (x, y). Out-of-bounds
// pixels are transparent black.
func (t *FloatTarget) RGBA(x, y int) (r, g, b, a float32) {
	i := t.Offset(x, y)
	if i < 0 {
		return 0, 0, 0, 0
	}
	p := t.pix[i : i+4 : i+4]
	return p[0], p[1], p[2], p[3]
}

// SetRGBA stores premultiplied components at (x, y). Out-of-bounds writes
// are dropped.
func (t *FloatTarget) SetRGBA(x, y int, r, g, b, a float32) {
	i := t.Offset(x, y)
	if i < 0 {
		return
	}
	p := t.pix[i : i+4 : i+4]
	p[0], p[1], p[2], p[3] = r, g, b, a
}

// ColorModel implements image.Image.
func (t *FloatTarget) ColorModel() color.Model { return color.RGBA64Model }

// Bounds implements image.Image.
func (t *FloatTarget) Bounds() image.Rectangle {
	return image.Rect(0, 0, t.width, t.height)
}

// At implements image.Image.
func (t *FloatTarget) At(x, y int) color.Color {
	r, g, b, a := t.RGBA(x, y)
	a = unit(a)
	return color.RGBA64{
		R: uint16(min(unit(r), a) * 0xffff),
		G: uint16(min(unit(g), a) * 0xffff),
		B: uint16(min(unit(b), a) * 0xffff),
		A: uint16(a * 0xffff),
	}
}

func unit(v float32) float32 {
	if !(v > 0) {
		return 0
	}
	return min(v, 1)
}

var (
	_ RenderTarget = (*FloatTarget)(nil)
	_ image.Image  = (*FloatTarget)(nil)
)
