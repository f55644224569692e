// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package filter

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/gogpu/nebula/internal/parallel"
	"github.com/gogpu/nebula/render"
)

// ErrInvalidBloom is returned for bloom settings outside their valid range.
var ErrInvalidBloom = errors.New("filter: invalid bloom parameters")

// MaxBloomLevels is the deepest supported mip chain.
const MaxBloomLevels = 5

// thresholdSoftness widens the bright-pass cutoff into a smooth ramp.
const thresholdSoftness = 0.01

// Per-level blur sizes and weights. Each level halves the resolution.
var (
	bloomKernelSizes = [MaxBloomLevels]int{3, 5, 7, 9, 11}
	bloomFactors     = [MaxBloomLevels]float32{1.0, 0.8, 0.6, 0.4, 0.2}
)

// Bloom makes bright pixels glow.
//
// Pixels whose luma exceeds Threshold pass a soft high-pass, are blurred at
// successively halved resolutions and the levels are summed back onto the
// source. Radius in [0,1] shifts weight from the sharp levels toward the wide
// ones; Strength scales the glow. The output never darkens the input.
type Bloom struct {
	Threshold float32
	Strength  float32
	Radius    float32
	Levels    int

	// Pool, if set, splits per-pixel passes across its workers.
	Pool *parallel.WorkerPool

	width, height int
	bright        *render.FloatTarget
	mips          []bloomMip
}

type bloomMip struct {
	tmp, out *render.FloatTarget
}

// NewBloom creates a bloom filter with the full mip chain.
func NewBloom(threshold, strength, radius float32) *Bloom {
	return &Bloom{Threshold: threshold, Strength: strength, Radius: radius, Levels: MaxBloomLevels}
}

// Validate checks the parameters.
func (b *Bloom) Validate() error {
	switch {
	case !(b.Threshold >= 0) || math32.IsInf(b.Threshold, 0):
		return fmt.Errorf("%w: threshold %v", ErrInvalidBloom, b.Threshold)
	case !(b.Strength >= 0) || math32.IsInf(b.Strength, 0):
		return fmt.Errorf("%w: strength %v", ErrInvalidBloom, b.Strength)
	case !(b.Radius >= 0 && b.Radius <= 1):
		return fmt.Errorf("%w: radius %v not in [0,1]", ErrInvalidBloom, b.Radius)
	case b.Levels < 1 || b.Levels > MaxBloomLevels:
		return fmt.Errorf("%w: %d levels not in [1,%d]", ErrInvalidBloom, b.Levels, MaxBloomLevels)
	}
	return nil
}

// Resize implements render.Resizer. It allocates the bright-pass buffer and
// the mip chain for a width x height source.
func (b *Bloom) Resize(width, height int) {
	levels := min(max(b.Levels, 1), MaxBloomLevels)
	if width == b.width && height == b.height && len(b.mips) == levels {
		return
	}
	b.width, b.height = width, height
	if b.bright == nil {
		b.bright = render.NewFloatTarget(width, height)
	} else {
		b.bright.Resize(width, height)
	}
	if cap(b.mips) < levels {
		b.mips = append(b.mips[:cap(b.mips)], make([]bloomMip, levels-cap(b.mips))...)
	}
	b.mips = b.mips[:levels]

	w, h := width, height
	for i := range b.mips {
		w, h = max((w+1)/2, 1), max((h+1)/2, 1)
		m := &b.mips[i]
		if m.tmp == nil {
			m.tmp, m.out = render.NewFloatTarget(w, h), render.NewFloatTarget(w, h)
			continue
		}
		m.tmp.Resize(w, h)
		m.out.Resize(w, h)
	}
}

// Apply implements render.Filter. dst receives src plus glow.
func (b *Bloom) Apply(src, dst *render.FloatTarget) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if src.Width() != dst.Width() || src.Height() != dst.Height() {
		return ErrSizeMismatch
	}
	if src.Empty() {
		return nil
	}
	if b.Strength == 0 {
		copy(dst.Pix(), src.Pix())
		return nil
	}
	b.Resize(src.Width(), src.Height())

	b.highPass(src, b.bright)

	in := b.bright
	for i := range b.mips {
		m := &b.mips[i]
		downsample(in, m.tmp, b.Pool)
		separable(m.tmp, m.out, cachedBloomKernel(bloomKernelSizes[i]), b.Pool)
		in = m.out
	}

	b.combine(src, dst)
	return nil
}

// highPass keeps pixels brighter than the threshold, fading them in over
// thresholdSoftness.
func (b *Bloom) highPass(src, dst *render.FloatTarget) {
	s, d := src.Pix(), dst.Pix()
	lo, hi := b.Threshold, b.Threshold+thresholdSoftness
	stride := src.Stride()
	b.Pool.Bands(src.Height(), func(y0, y1 int) {
		for i := y0 * stride; i < y1*stride; i += 4 {
			luma := 0.299*s[i] + 0.587*s[i+1] + 0.114*s[i+2]
			k := smoothstep(lo, hi, luma)
			d[i], d[i+1], d[i+2], d[i+3] = s[i]*k, s[i+1]*k, s[i+2]*k, s[i+3]*k
		}
	})
}

// levelFactor returns the weight of mip level i.
func (b *Bloom) levelFactor(i int) float32 {
	f := bloomFactors[i]
	return b.Strength * (f + (1.2-2*f)*b.Radius)
}

// combine writes src plus the upsampled weighted sum of all levels to dst.
func (b *Bloom) combine(src, dst *render.FloatTarget) {
	w, h := src.Width(), src.Height()
	s, d := src.Pix(), dst.Pix()
	var factors [MaxBloomLevels]float32
	for i := range b.mips {
		factors[i] = b.levelFactor(i)
	}
	b.Pool.Bands(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			v := (float32(y) + 0.5) / float32(h)
			for x := 0; x < w; x++ {
				u := (float32(x) + 0.5) / float32(w)
				var gr, gg, gb float32
				for i := range b.mips {
					r, g, bl, _ := sample(b.mips[i].out, u, v)
					gr += r * factors[i]
					gg += g * factors[i]
					gb += bl * factors[i]
				}
				o := (y*w + x) * 4
				d[o] = s[o] + max(gr, 0)
				d[o+1] = s[o+1] + max(gg, 0)
				d[o+2] = s[o+2] + max(gb, 0)
				d[o+3] = s[o+3]
			}
		}
	})
}

// downsample resamples src into the smaller dst with bilinear filtering.
func downsample(src, dst *render.FloatTarget, pool *parallel.WorkerPool) {
	w, h := dst.Width(), dst.Height()
	d := dst.Pix()
	pool.Bands(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			v := (float32(y) + 0.5) / float32(h)
			for x := 0; x < w; x++ {
				u := (float32(x) + 0.5) / float32(w)
				r, g, b, a := sample(src, u, v)
				o := (y*w + x) * 4
				d[o], d[o+1], d[o+2], d[o+3] = r, g, b, a
			}
		}
	})
}

// sample reads t at normalized coordinates with bilinear filtering and
// clamp-to-edge addressing.
func sample(t *render.FloatTarget, u, v float32) (r, g, b, a float32) {
	w, h := t.Width(), t.Height()
	fx := u*float32(w) - 0.5
	fy := v*float32(h) - 0.5
	x0, y0 := int(math32.Floor(fx)), int(math32.Floor(fy))
	tx, ty := fx-float32(x0), fy-float32(y0)
	x1, y1 := min(max(x0+1, 0), w-1), min(max(y0+1, 0), h-1)
	x0, y0 = min(max(x0, 0), w-1), min(max(y0, 0), h-1)

	p := t.Pix()
	i00, i10 := (y0*w+x0)*4, (y0*w+x1)*4
	i01, i11 := (y1*w+x0)*4, (y1*w+x1)*4
	w00, w10 := (1-tx)*(1-ty), tx*(1-ty)
	w01, w11 := (1-tx)*ty, tx*ty
	r = p[i00]*w00 + p[i10]*w10 + p[i01]*w01 + p[i11]*w11
	g = p[i00+1]*w00 + p[i10+1]*w10 + p[i01+1]*w01 + p[i11+1]*w11
	b = p[i00+2]*w00 + p[i10+2]*w10 + p[i01+2]*w01 + p[i11+2]*w11
	a = p[i00+3]*w00 + p[i10+3]*w10 + p[i01+3]*w01 + p[i11+3]*w11
	return r, g, b, a
}

func smoothstep(lo, hi, x float32) float32 {
	t := min(max((x-lo)/(hi-lo), 0), 1)
	return t * t * (3 - 2*t)
}

var (
	_ render.Filter  = (*Bloom)(nil)
	_ render.Resizer = (*Bloom)(nil)
)
