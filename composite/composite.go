// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package composite merges the channel images of one frame into the 8-bit
// framebuffer.
//
// The Base and Bloom images are summed in linear HDR, tone mapped and
// encoded to sRGB. The Overlay image is laid over the result with its own
// alpha and is never tone mapped, so HUD colors come out as authored.
package composite

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/gogpu/nebula/internal/color"
	"github.com/gogpu/nebula/internal/parallel"
	"github.com/gogpu/nebula/render"
)

// ErrInvalidParams is returned for compositor parameters out of range.
var ErrInvalidParams = errors.New("composite: invalid parameters")

// ErrNilTarget is returned when Composite has no framebuffer to write.
var ErrNilTarget = errors.New("composite: nil framebuffer")

// Params configures the compositor.
type Params struct {
	// Exposure scales radiance before tone mapping. Must be positive.
	Exposure float32

	// ToneMapping selects the HDR operator.
	ToneMapping ToneMapping
}

// DefaultParams returns exposure 0.5 with ACES filmic tone mapping.
func DefaultParams() Params {
	return Params{Exposure: 0.5, ToneMapping: ACESFilmic}
}

// Validate checks p.
func (p Params) Validate() error {
	if !(p.Exposure > 0) || math32.IsInf(p.Exposure, 0) {
		return fmt.Errorf("%w: exposure %v", ErrInvalidParams, p.Exposure)
	}
	if !p.ToneMapping.Valid() {
		return fmt.Errorf("%w: tone mapping %d", ErrInvalidParams, uint8(p.ToneMapping))
	}
	return nil
}

// Option configures a Compositor.
type Option func(*Compositor)

// WithPool splits rows across the pool's workers.
func WithPool(p *parallel.WorkerPool) Option {
	return func(c *Compositor) {
		c.pool = p
	}
}

// Compositor applies a fixed blend function to the channel images.
// It holds no per-frame state.
type Compositor struct {
	params Params
	tone   func(r, g, b float32) (float32, float32, float32)
	pool   *parallel.WorkerPool
}

// New creates a compositor. Invalid parameters are rejected.
func New(p Params, opts ...Option) (*Compositor, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	c := &Compositor{params: p, tone: p.ToneMapping.operator(p.Exposure)}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Params returns the compositor's parameters.
func (c *Compositor) Params() Params { return c.params }

// Composite writes the merged frame into dst:
//
//	hdr = base + bloom
//	out = overlay + (1 - overlay.a) * tonemap(hdr)
//
// in linear light, then encodes out to sRGB. Any of base, bloom or overlay
// may be nil or smaller than dst; pixels they do not cover contribute zero.
// The framebuffer is always fully opaque.
func (c *Compositor) Composite(dst *render.PixmapTarget, base, bloom, overlay *render.FloatTarget) error {
	if dst == nil {
		return ErrNilTarget
	}
	w, h := dst.Width(), dst.Height()
	if w == 0 || h == 0 {
		return nil
	}
	pix, stride := dst.Pixels(), dst.Stride()
	c.pool.Bands(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			bs, bw := row(base, y)
			gs, gw := row(bloom, y)
			os, ow := row(overlay, y)
			out := pix[y*stride : y*stride+w*4]
			for x := 0; x < w; x++ {
				i := x * 4
				var r, g, b float32
				if x < bw {
					r, g, b = bs[i], bs[i+1], bs[i+2]
				}
				if x < gw {
					r, g, b = r+gs[i], g+gs[i+1], b+gs[i+2]
				}
				r, g, b = c.tone(r, g, b)
				if x < ow {
					a := saturate(os[i+3])
					r = saturate(os[i]) + (1-a)*r
					g = saturate(os[i+1]) + (1-a)*g
					b = saturate(os[i+2]) + (1-a)*b
				}
				out[i] = color.EncodeByte(r)
				out[i+1] = color.EncodeByte(g)
				out[i+2] = color.EncodeByte(b)
				out[i+3] = 255
			}
		}
	})
	return nil
}

// row returns the pixels of row y of t and the row's width in pixels, or
// zero width when t has no such row.
func row(t *render.FloatTarget, y int) ([]float32, int) {
	if t.Empty() || y >= t.Height() {
		return nil, 0
	}
	i := t.Offset(0, y)
	return t.Pix()[i : i+t.Stride()], t.Width()
}
