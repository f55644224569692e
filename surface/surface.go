// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"errors"
	"image"
	"math"
)

// ErrInvalidOptions is returned by factories for unusable options.
var ErrInvalidOptions = errors.New("surface: invalid options")

// ErrClosed is returned by Present after Close.
var ErrClosed = errors.New("surface: closed")

// Surface is a host that displays frames.
//
// Size and PixelRatio may be called from the frame goroutine while the host
// changes them from another; implementations synchronize internally.
type Surface interface {
	// Size returns the logical (CSS) size.
	Size() (width, height int)

	// PixelRatio returns device pixels per logical pixel.
	PixelRatio() float64

	// Present displays frame. The surface must not retain frame after
	// Present returns; the caller reuses it for the next frame.
	Present(frame *image.RGBA) error
}

// Options configures a surface created through the registry.
type Options struct {
	// Width and Height are the logical size. Terminal surfaces ignore them.
	Width, Height int

	// PixelRatio defaults to 1.
	PixelRatio float64

	// Path is the output file for file surfaces. A "%d" verb is replaced
	// with the frame number.
	Path string

	// Every writes only every Nth presented frame. Defaults to 1.
	Every int
}

// ratio returns PixelRatio, or 1 when it is unset or unusable.
func (o Options) ratio() float64 {
	if o.PixelRatio <= 0 || math.IsInf(o.PixelRatio, 0) || math.IsNaN(o.PixelRatio) {
		return 1
	}
	return o.PixelRatio
}
