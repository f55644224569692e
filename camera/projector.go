// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package camera

import "github.com/go-gl/mathgl/mgl64"

// Projector maps world positions to pixel coordinates of a viewport.
// It snapshots the camera matrices, so build one per channel render.
type Projector struct {
	view   mgl64.Mat4
	proj   mgl64.Mat4
	width  float64
	height float64
	near   float64
}

// Projector returns a projector for a width x height pixel grid.
func (c *Camera) Projector(width, height int) Projector {
	return Projector{
		view:   c.View(),
		proj:   c.Projection(),
		width:  float64(width),
		height: float64(height),
		near:   c.Near,
	}
}

// Width returns the pixel width of the grid.
func (p Projector) Width() float64 { return p.width }

// Height returns the pixel height of the grid.
func (p Projector) Height() float64 { return p.height }

// Near returns the near clip distance.
func (p Projector) Near() float64 { return p.near }

// ToView transforms a world position into view space.
func (p Projector) ToView(world mgl64.Vec3) mgl64.Vec3 {
	return p.view.Mul4x1(world.Vec4(1)).Vec3()
}

// Project maps a world position to pixel coordinates.
// depth is the distance along the view axis. ok is false when the point
// lies outside the near/far range.
func (p Projector) Project(world mgl64.Vec3) (x, y, depth float64, ok bool) {
	return p.ProjectView(p.ToView(world))
}

// ProjectView is Project for a point already in view space.
func (p Projector) ProjectView(v mgl64.Vec3) (x, y, depth float64, ok bool) {
	clip := p.proj.Mul4x1(v.Vec4(1))
	w := clip.W()
	if w <= 0 {
		return 0, 0, 0, false
	}
	nz := clip.Z() / w
	if nz < -1 || nz > 1 {
		return 0, 0, 0, false
	}
	x = (clip.X()/w + 1) * 0.5 * p.width
	y = (1 - clip.Y()/w) * 0.5 * p.height
	return x, y, w, true
}

// Screen maps a view-space point to pixel coordinates without any depth
// range check. Callers must clip against the near plane first; depth is
// only meaningful when positive.
func (p Projector) Screen(v mgl64.Vec3) (x, y, depth float64) {
	clip := p.proj.Mul4x1(v.Vec4(1))
	w := clip.W()
	if w == 0 {
		return 0, 0, 0
	}
	return (clip.X()/w + 1) * 0.5 * p.width, (1 - clip.Y()/w) * 0.5 * p.height, w
}
