// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/gogpu/nebula/camera"
	"github.com/gogpu/nebula/layer"
	"github.com/gogpu/nebula/scene"
)

// ChannelOption configures a ChannelRenderer.
type ChannelOption func(*channelOptions)

type channelOptions struct {
	clear         scene.Color
	useBackground bool
	filters       Chain
	face          font.Face
}

// WithClearColor sets the color the target is cleared to before drawing.
func WithClearColor(c scene.Color) ChannelOption {
	return func(o *channelOptions) {
		o.clear = c
		o.useBackground = false
	}
}

// WithSceneBackground clears to the scene's background color.
func WithSceneBackground() ChannelOption {
	return func(o *channelOptions) {
		o.useBackground = true
	}
}

// WithFilters appends post-processing filters.
func WithFilters(filters ...Filter) ChannelOption {
	return func(o *channelOptions) {
		o.filters = append(o.filters, filters...)
	}
}

// WithFontFace sets the face used for labels.
func WithFontFace(face font.Face) ChannelOption {
	return func(o *channelOptions) {
		o.face = face
	}
}

// defaultClear returns the clear color for a channel: opaque black for the
// lit channels, transparent for the overlay.
func defaultClear(ch layer.Channel) scene.Color {
	if ch == layer.Overlay {
		return scene.Color{}
	}
	return scene.Black
}

// ChannelRenderer renders the objects tagged with one channel into an
// offscreen image.
type ChannelRenderer struct {
	channel layer.Channel
	opts    channelOptions
	targets [2]*FloatTarget
	depth   []float32
	stats   RasterStats
}

// NewChannelRenderer creates a renderer for ch with width x height targets.
func NewChannelRenderer(ch layer.Channel, width, height int, opts ...ChannelOption) (*ChannelRenderer, error) {
	if !ch.Valid() {
		return nil, fmt.Errorf("render: invalid channel %d", ch)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyTarget, width, height)
	}
	o := channelOptions{clear: defaultClear(ch), face: basicfont.Face7x13}
	for _, opt := range opts {
		opt(&o)
	}
	r := &ChannelRenderer{
		channel: ch,
		opts:    o,
		targets: [2]*FloatTarget{NewFloatTarget(width, height), NewFloatTarget(width, height)},
		depth:   make([]float32, width*height),
	}
	r.opts.filters.Resize(width, height)
	return r, nil
}

// Channel returns the channel this renderer draws.
func (r *ChannelRenderer) Channel() layer.Channel { return r.channel }

// Size returns the target dimensions.
func (r *ChannelRenderer) Size() (width, height int) {
	return r.targets[0].Width(), r.targets[0].Height()
}

// Stats returns counters from the last Render.
func (r *ChannelRenderer) Stats() RasterStats { return r.stats }

// Resize changes the target dimensions. Buffers are reused when their
// capacity suffices. It reports whether the size changed.
func (r *ChannelRenderer) Resize(width, height int) (bool, error) {
	if width <= 0 || height <= 0 {
		return false, fmt.Errorf("%w: %dx%d", ErrEmptyTarget, width, height)
	}
	if w, h := r.Size(); w == width && h == height {
		return false, nil
	}
	r.targets[0].Resize(width, height)
	r.targets[1].Resize(width, height)
	n := width * height
	if cap(r.depth) < n {
		r.depth = make([]float32, n)
	} else {
		r.depth = r.depth[:n]
	}
	r.opts.filters.Resize(width, height)
	return true, nil
}

// Render draws every object of sc tagged with the renderer's channel as seen
// by cam, then applies the filters. The returned target is owned by the
// renderer and valid until the next Render or Resize.
func (r *ChannelRenderer) Render(sc *scene.Scene, cam *camera.Camera) (*FloatTarget, error) {
	w, h := r.Size()
	if w == 0 || h == 0 {
		return nil, ErrEmptyTarget
	}

	dst := r.targets[0]
	clearColor := r.opts.clear
	if r.opts.useBackground && sc != nil {
		clearColor = sc.Background
	}
	dst.Clear(clearColor)
	inf := float32(math.Inf(1))
	for i := range r.depth {
		r.depth[i] = inf
	}

	rs := rasterizer{
		dst:   dst,
		depth: r.depth,
		proj:  cam.Projector(w, h),
		half:  float32(h) / 2,
		face:  r.opts.face,
	}
	if sc != nil {
		rs.fog = sc.Fog
		sc.Visit(r.channel, func(o scene.Object) { o.Draw(&rs) })
	}
	r.stats = rs.stats

	out, err := r.opts.filters.Run(r.targets[0], r.targets[1])
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", r.channel, err)
	}
	return out, nil
}
