// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"sync"
)

// ImageSurface is a headless surface that keeps a copy of the last
// presented frame.
//
// Example:
//
//	s := surface.NewImageSurface(800, 600)
//	// ... run frames ...
//	img := s.Snapshot()
type ImageSurface struct {
	mu     sync.Mutex
	width  int
	height int
	ratio  float64
	last   *image.RGBA
	frames int
	closed bool
}

// NewImageSurface creates a surface with the given logical size and a pixel
// ratio of 1. Negative sizes are treated as zero.
func NewImageSurface(width, height int) *ImageSurface {
	return &ImageSurface{
		width:  max(width, 0),
		height: max(height, 0),
		ratio:  1,
	}
}

// Size implements Surface.
func (s *ImageSurface) Size() (width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// PixelRatio implements Surface.
func (s *ImageSurface) PixelRatio() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ratio
}

// SetSize changes the logical size, as a window resize would.
func (s *ImageSurface) SetSize(width, height int) {
	s.mu.Lock()
	s.width, s.height = width, height
	s.mu.Unlock()
}

// SetPixelRatio changes the device pixel ratio.
func (s *ImageSurface) SetPixelRatio(ratio float64) {
	s.mu.Lock()
	s.ratio = ratio
	s.mu.Unlock()
}

// Present implements Surface. The frame is copied.
func (s *ImageSurface) Present(frame *image.RGBA) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.last = copyInto(s.last, frame)
	s.frames++
	return nil
}

// Snapshot returns a copy of the last presented frame, or nil before the
// first Present.
func (s *ImageSurface) Snapshot() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return nil
	}
	return copyInto(nil, s.last)
}

// Frames returns the number of frames presented.
func (s *ImageSurface) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Close makes further Present calls fail. Close is idempotent.
func (s *ImageSurface) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

// copyInto copies src into dst, reallocating dst when its size differs.
// The result always has its origin at (0, 0).
func copyInto(dst, src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if dst == nil || dst.Rect.Dx() != w || dst.Rect.Dy() != h {
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	for y := range h {
		so := src.PixOffset(b.Min.X, b.Min.Y+y)
		copy(dst.Pix[y*dst.Stride:y*dst.Stride+w*4], src.Pix[so:so+w*4])
	}
	return dst
}

var _ Surface = (*ImageSurface)(nil)
