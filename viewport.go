// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package nebula

import (
	"fmt"
	"math"
)

// Viewport is the host surface's logical size and device pixel ratio.
type Viewport struct {
	Width, Height int
	PixelRatio    float64
}

// Physical returns the size in device pixels, rounded to the nearest pixel.
func (v Viewport) Physical() (width, height int) {
	return int(math.Round(float64(v.Width) * v.PixelRatio)),
		int(math.Round(float64(v.Height) * v.PixelRatio))
}

// Aspect returns physical width over physical height.
func (v Viewport) Aspect() float64 {
	w, h := v.Physical()
	return float64(w) / float64(h)
}

// Validate reports ErrInvalidViewport unless v has a positive physical area.
func (v Viewport) Validate() error {
	r := v.PixelRatio
	if !(r > 0) || math.IsInf(r, 0) {
		return fmt.Errorf("%w: pixel ratio %v", ErrInvalidViewport, r)
	}
	if w, h := v.Physical(); w <= 0 || h <= 0 {
		return fmt.Errorf("%w: %dx%d at ratio %v", ErrInvalidViewport, v.Width, v.Height, r)
	}
	return nil
}

// String returns "WxH@ratio".
func (v Viewport) String() string {
	return fmt.Sprintf("%dx%d@%g", v.Width, v.Height, v.PixelRatio)
}
