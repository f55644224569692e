// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package filter

import (
	"errors"
	"sync"

	"github.com/gogpu/nebula/internal/parallel"
	"github.com/gogpu/nebula/render"
)

// ErrSizeMismatch is returned when a filter's source and destination differ
// in size.
var ErrSizeMismatch = errors.New("filter: source and destination sizes differ")

// Blur applies a separable Gaussian blur. Edges are extended.
type Blur struct {
	// Radius is the Gaussian sigma in pixels.
	Radius float32

	// Pool, if set, splits rows across its workers.
	Pool *parallel.WorkerPool
}

// NewBlur creates a blur filter.
func NewBlur(radius float32) *Blur {
	return &Blur{Radius: radius}
}

// Apply implements render.Filter.
func (f *Blur) Apply(src, dst *render.FloatTarget) error {
	if src.Width() != dst.Width() || src.Height() != dst.Height() {
		return ErrSizeMismatch
	}
	if f.Radius <= 0 {
		copy(dst.Pix(), src.Pix())
		return nil
	}
	separable(src, dst, CachedGaussianKernel(f.Radius), f.Pool)
	return nil
}

var _ render.Filter = (*Blur)(nil)

// separable convolves src with kernel horizontally then vertically into dst.
func separable(src, dst *render.FloatTarget, kernel []float32, pool *parallel.WorkerPool) {
	w, h := src.Width(), src.Height()
	if w == 0 || h == 0 {
		return
	}
	temp := getTempBuffer(w * h * 4)
	defer putTempBuffer(temp)

	pool.Bands(h, func(lo, hi int) {
		blurHorizontal(src.Pix(), temp, w, lo, hi, kernel)
	})
	pool.Bands(h, func(lo, hi int) {
		blurVertical(temp, dst.Pix(), w, h, lo, hi, kernel)
	})
}

// blurHorizontal convolves rows [y0, y1).
func blurHorizontal(src, dst []float32, w, y0, y1 int, kernel []float32) {
	half := len(kernel) / 2
	for y := y0; y < y1; y++ {
		row := y * w
		for x := 0; x < w; x++ {
			var r, g, b, a float32
			for k, wt := range kernel {
				kx := min(max(x+k-half, 0), w-1)
				i := (row + kx) * 4
				r += src[i] * wt
				g += src[i+1] * wt
				b += src[i+2] * wt
				a += src[i+3] * wt
			}
			o := (row + x) * 4
			dst[o], dst[o+1], dst[o+2], dst[o+3] = r, g, b, a
		}
	}
}

// blurVertical writes rows [y0, y1) of dst, reading all h rows of src.
func blurVertical(src, dst []float32, w, h, y0, y1 int, kernel []float32) {
	half := len(kernel) / 2
	for y := y0; y < y1; y++ {
		for x := 0; x < w; x++ {
			var r, g, b, a float32
			for k, wt := range kernel {
				ky := min(max(y+k-half, 0), h-1)
				i := (ky*w + x) * 4
				r += src[i] * wt
				g += src[i+1] * wt
				b += src[i+2] * wt
				a += src[i+3] * wt
			}
			o := (y*w + x) * 4
			dst[o], dst[o+1], dst[o+2], dst[o+3] = r, g, b, a
		}
	}
}

// floatBuffer wraps a slice for sync.Pool to avoid allocation warnings.
type floatBuffer struct {
	data []float32
}

var tempBufferPool = sync.Pool{
	New: func() any {
		return &floatBuffer{}
	},
}

// getTempBuffer returns a buffer of exactly n floats. Contents are undefined.
func getTempBuffer(n int) []float32 {
	fb := tempBufferPool.Get().(*floatBuffer)
	if cap(fb.data) < n {
		tempBufferPool.Put(fb)
		return make([]float32, n)
	}
	buf := fb.data[:n]
	fb.data = nil
	tempBufferPool.Put(fb)
	return buf
}

// putTempBuffer returns a buffer to the pool.
func putTempBuffer(buf []float32) {
	// 64MB max
	if cap(buf) <= 16*1024*1024 {
		tempBufferPool.Put(&floatBuffer{data: buf[:cap(buf)]})
	}
}
