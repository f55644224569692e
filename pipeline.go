// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package nebula

import (
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/gogpu/nebula/camera"
	"github.com/gogpu/nebula/composite"
	"github.com/gogpu/nebula/filter"
	"github.com/gogpu/nebula/internal/logging"
	"github.com/gogpu/nebula/internal/parallel"
	"github.com/gogpu/nebula/layer"
	"github.com/gogpu/nebula/render"
	"github.com/gogpu/nebula/scene"
	"github.com/gogpu/nebula/surface"
)

// Pipeline is the Frame Driver. It owns one renderer per channel, the bloom
// filter, the compositor and the framebuffer.
//
// A Pipeline is not safe for concurrent use: Frame and the accessors must be
// called from a single goroutine. Only the rig's FlyTo may be called from
// elsewhere.
type Pipeline struct {
	surface surface.Surface
	scene   *scene.Scene
	rig     *camera.Rig
	params  Params
	opts    options
	pool    *parallel.WorkerPool

	renderers [layer.NumChannels]*render.ChannelRenderer
	images    [layer.NumChannels]*render.FloatTarget
	bloom     *filter.Bloom
	comp      *composite.Compositor
	fb        *render.PixmapTarget

	viewport Viewport
	state    State
	frames   uint64
	closed   bool
}

// New validates p and the surface's current viewport and builds a pipeline
// sized to it. It applies FOV, near and far to the rig's camera and fog to
// the scene. On error no pipeline is returned.
func New(s surface.Surface, sc *scene.Scene, rig *camera.Rig, p Params, opts ...Option) (*Pipeline, error) {
	switch {
	case s == nil:
		return nil, fmt.Errorf("%w: surface", ErrMissingDependency)
	case sc == nil:
		return nil, fmt.Errorf("%w: scene", ErrMissingDependency)
	case rig == nil || rig.Camera() == nil:
		return nil, fmt.Errorf("%w: camera rig", ErrMissingDependency)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	bloom := p.bloom()
	bloom.Levels = o.bloomLevels
	if err := bloom.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}

	w, h := s.Size()
	vp := Viewport{Width: w, Height: h, PixelRatio: s.PixelRatio()}
	if err := vp.Validate(); err != nil {
		return nil, err
	}
	pw, ph := vp.Physical()

	pipe := &Pipeline{
		surface:  s,
		scene:    sc,
		rig:      rig,
		params:   p,
		opts:     o,
		bloom:    bloom,
		fb:       render.NewPixmapTarget(pw, ph),
		viewport: vp,
	}
	if o.workers != 1 {
		pipe.pool = parallel.NewWorkerPool(o.workers)
		bloom.Pool = pipe.pool
	}

	comp, err := composite.New(p.composite(), composite.WithPool(pipe.pool))
	if err != nil {
		pipe.pool.Close()
		return nil, fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	pipe.comp = comp

	baseOpts := []render.ChannelOption{render.WithSceneBackground()}
	if o.clear != nil {
		baseOpts = []render.ChannelOption{render.WithClearColor(*o.clear)}
	}
	channelOpts := [layer.NumChannels][]render.ChannelOption{
		layer.Base:    baseOpts,
		layer.Bloom:   {render.WithFilters(bloom)},
		layer.Overlay: nil,
	}
	for _, ch := range layer.Channels {
		r, err := render.NewChannelRenderer(ch, pw, ph, channelOpts[ch]...)
		if err != nil {
			pipe.pool.Close()
			return nil, fmt.Errorf("%w: %w", ErrInvalidViewport, err)
		}
		pipe.renderers[ch] = r
	}

	cam := rig.Camera()
	cam.FOV, cam.Near, cam.Far = p.FOV, p.Near, p.Far
	cam.SetAspect(vp.Aspect())
	sc.Fog = p.fog()

	pipe.logger().Info("nebula: pipeline ready",
		"viewport", vp.String(),
		"physical", fmt.Sprintf("%dx%d", pw, ph),
		"tone_mapping", p.ToneMapping.String(),
		"bloom_levels", bloom.Levels,
		"workers", pipe.pool.Workers())
	return pipe, nil
}

// Frame renders and presents one frame for time now. Any error or panic
// ends the frame early; the pipeline stays usable and the next Frame starts
// from scratch. The state is Idle when Frame returns.
func (p *Pipeline) Frame(now time.Time) (err error) {
	if p.closed {
		return ErrClosed
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrFramePanic, r)
		}
		p.setState(Idle)
	}()

	p.setState(UpdatingInput)
	for _, in := range p.opts.inputs {
		in(now)
	}
	_, vh := p.viewport.Physical()
	p.rig.Update(now, vh)

	p.setState(ReconcilingViewport)
	if err := p.reconcile(); err != nil {
		return err
	}

	cam := p.rig.Camera()
	for _, pr := range p.opts.providers {
		pr.UpdateScale(cam)
	}

	for _, step := range [...]struct {
		state State
		ch    layer.Channel
	}{
		{RenderingBase, layer.Base},
		{RenderingBloom, layer.Bloom},
		{RenderingOverlay, layer.Overlay},
	} {
		p.setState(step.state)
		img, err := p.renderers[step.ch].Render(p.scene, cam)
		if err != nil {
			return fmt.Errorf("nebula: %w", err)
		}
		p.images[step.ch] = img
	}

	p.setState(Compositing)
	if err := p.comp.Composite(p.fb, p.images[layer.Base], p.images[layer.Bloom], p.images[layer.Overlay]); err != nil {
		return fmt.Errorf("nebula: %w", err)
	}
	if err := p.surface.Present(p.fb.Image()); err != nil {
		return fmt.Errorf("nebula: present: %w", err)
	}
	p.setState(Presented)
	p.frames++
	return nil
}

// reconcile matches every target to the surface's current size. The camera
// aspect is set every frame whether or not the size changed.
func (p *Pipeline) reconcile() error {
	w, h := p.surface.Size()
	vp := Viewport{Width: w, Height: h, PixelRatio: p.surface.PixelRatio()}
	if err := vp.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrEmptyViewport, err)
	}
	pw, ph := vp.Physical()
	if vp != p.viewport || p.fb.Width() != pw || p.fb.Height() != ph {
		for _, r := range p.renderers {
			if _, err := r.Resize(pw, ph); err != nil {
				return fmt.Errorf("nebula: resize: %w", err)
			}
		}
		p.fb.Resize(pw, ph)
		clear(p.images[:])
		p.logger().Debug("nebula: viewport resized",
			"from", p.viewport.String(), "to", vp.String(),
			"physical", fmt.Sprintf("%dx%d", pw, ph))
		p.viewport = vp
	}
	p.rig.Camera().SetAspect(vp.Aspect())
	return nil
}

// logger returns the WithLogger logger or the current package logger.
func (p *Pipeline) logger() *slog.Logger {
	if p.opts.logger != nil {
		return p.opts.logger
	}
	return logging.Logger()
}

func (p *Pipeline) setState(s State) {
	p.state = s
	if p.opts.stateHook != nil {
		p.opts.stateHook(s)
	}
}

// State returns the current frame state. Between frames it is Idle.
func (p *Pipeline) State() State { return p.state }

// Viewport returns the viewport of the last reconciliation.
func (p *Pipeline) Viewport() Viewport { return p.viewport }

// Params returns the pipeline's parameters.
func (p *Pipeline) Params() Params { return p.params }

// Frames returns the number of frames presented.
func (p *Pipeline) Frames() uint64 { return p.frames }

// Rig returns the camera rig.
func (p *Pipeline) Rig() *camera.Rig { return p.rig }

// Scene returns the scene.
func (p *Pipeline) Scene() *scene.Scene { return p.scene }

// Framebuffer returns the composited frame. It is overwritten by the next
// Frame.
func (p *Pipeline) Framebuffer() *image.RGBA { return p.fb.Image() }

// ChannelImage returns the image the given channel produced in the last
// frame, or nil before the first frame or after a resize.
func (p *Pipeline) ChannelImage(ch layer.Channel) *render.FloatTarget {
	if !ch.Valid() {
		return nil
	}
	return p.images[ch]
}

// ChannelStats returns the rasterizer counters of the channel's last render.
func (p *Pipeline) ChannelStats(ch layer.Channel) render.RasterStats {
	if !ch.Valid() {
		return render.RasterStats{}
	}
	return p.renderers[ch].Stats()
}

// Close stops the worker pool. Frame fails with ErrClosed afterwards.
// Close is idempotent and does not close the surface.
func (p *Pipeline) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	p.pool.Close()
	p.logger().Info("nebula: pipeline closed", "frames", p.frames)
	return nil
}
