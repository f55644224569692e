// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package camera owns the viewer pose and the two sources that mutate it:
// continuous orbit input and scripted fly-to transitions.
//
// The orientation is stored only as a quaternion. Euler angles are derived
// on demand and converted back at the boundary, so the two forms can never
// drift apart.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Axis vectors in the camera's local frame. The camera looks down -Z with +Y up.
var (
	localRight   = mgl64.Vec3{1, 0, 0}
	localUp      = mgl64.Vec3{0, 1, 0}
	localForward = mgl64.Vec3{0, 0, -1}
)

// Camera is a perspective camera.
type Camera struct {
	// Position is the eye location in world space.
	Position mgl64.Vec3

	// Orientation rotates the local frame into world space.
	Orientation mgl64.Quat

	// Up is the world direction LookAt keeps pointing up.
	Up mgl64.Vec3

	// FOV is the vertical field of view in degrees.
	FOV float64

	// Near and Far are the clip plane distances.
	Near, Far float64

	// Aspect is width / height of the viewport.
	Aspect float64
}

// New creates a camera at the origin looking down -Z with +Y up.
func New(fov, aspect, near, far float64) *Camera {
	return &Camera{
		Orientation: mgl64.QuatIdent(),
		Up:          localUp,
		FOV:         fov,
		Near:        near,
		Far:         far,
		Aspect:      aspect,
	}
}

// Pose is the part of the camera that navigation mutates.
type Pose struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

// Pose returns the current position and orientation.
func (c *Camera) Pose() Pose {
	return Pose{Position: c.Position, Orientation: c.Orientation}
}

// SetPose replaces position and orientation together.
func (c *Camera) SetPose(p Pose) {
	c.Position = p.Position
	c.Orientation = p.Orientation.Normalize()
}

// SetAspect sets the aspect ratio. Non-finite or non-positive values are
// ignored. It reports whether the value changed.
func (c *Camera) SetAspect(aspect float64) bool {
	if aspect <= 0 || math.IsInf(aspect, 0) || math.IsNaN(aspect) {
		return false
	}
	if c.Aspect == aspect {
		return false
	}
	c.Aspect = aspect
	return true
}

// LookAt orients the camera so it faces target, keeping Up pointing up.
func (c *Camera) LookAt(target mgl64.Vec3) {
	up := c.Up
	if up.Len() == 0 {
		up = localUp
	}
	z := c.Position.Sub(target)
	if z.Len() == 0 {
		z = mgl64.Vec3{0, 0, 1}
	}
	z = z.Normalize()
	x := up.Cross(z)
	if x.Len() == 0 {
		// up and view direction are parallel; nudge off the pole
		if math.Abs(up.Z()) == 1 {
			z[0] += 0.0001
		} else {
			z[2] += 0.0001
		}
		z = z.Normalize()
		x = up.Cross(z)
	}
	x = x.Normalize()
	y := z.Cross(x)
	basis := mgl64.Mat3FromCols(x, y, z)
	c.Orientation = mgl64.Mat4ToQuat(basis.Mat4()).Normalize()
}

// Forward returns the world-space view direction.
func (c *Camera) Forward() mgl64.Vec3 {
	return c.Orientation.Rotate(localForward)
}

// Right returns the world-space right vector of the view.
func (c *Camera) Right() mgl64.Vec3 {
	return c.Orientation.Rotate(localRight)
}

// ViewUp returns the world-space up vector of the view, which differs from
// Up whenever the camera pitches.
func (c *Camera) ViewUp() mgl64.Vec3 {
	return c.Orientation.Rotate(localUp)
}

// View returns the world-to-view matrix.
func (c *Camera) View() mgl64.Mat4 {
	rot := c.Orientation.Conjugate().Mat4()
	return rot.Mul4(mgl64.Translate3D(-c.Position.X(), -c.Position.Y(), -c.Position.Z()))
}

// Projection returns the perspective projection matrix.
func (c *Camera) Projection() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// ViewProjection returns Projection * View.
func (c *Camera) ViewProjection() mgl64.Mat4 {
	return c.Projection().Mul4(c.View())
}

// Euler returns the orientation as XYZ Euler angles in radians.
func (c *Camera) Euler() Euler {
	return EulerFromQuat(c.Orientation)
}

// SetEuler sets the orientation from XYZ Euler angles in radians.
func (c *Camera) SetEuler(e Euler) {
	c.Orientation = e.Quat()
}
