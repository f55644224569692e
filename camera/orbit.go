// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package camera

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrInvalidOrbit is returned for orbit options outside their valid range.
var ErrInvalidOrbit = errors.New("camera: invalid orbit options")

// settle is the magnitude below which pending motion is dropped, so a damped
// orbit reaches an exact fixed point instead of creeping forever.
const settle = 1e-6

// polarEpsilon keeps the polar angle off the poles where the azimuth is undefined.
const polarEpsilon = 1e-6

// OrbitOptions configures how pointer deltas map to pose changes.
type OrbitOptions struct {
	// Damping spreads every input over several frames. Each Update applies
	// DampingFactor of the remaining motion; the rest decays by
	// (1 - DampingFactor) per frame.
	Damping       bool
	DampingFactor float64

	// ScreenSpacePanning pans in the view plane. When false, vertical pan
	// moves the target in the plane orthogonal to Up (map style).
	ScreenSpacePanning bool

	// MinDistance and MaxDistance clamp the camera-to-target distance.
	MinDistance, MaxDistance float64

	// MinPolarAngle and MaxPolarAngle clamp the angle between Up and the
	// target-to-camera vector, in radians.
	MinPolarAngle, MaxPolarAngle float64

	// RotateSpeed scales rotation: a drag of one viewport height turns
	// 2*pi*RotateSpeed radians.
	RotateSpeed float64

	// PanSpeed scales panning: a drag of one viewport height moves the
	// target by the visible height at the target distance times PanSpeed.
	PanSpeed float64

	// ZoomSpeed scales dolly: each zoom step multiplies the distance by
	// 0.95^ZoomSpeed.
	ZoomSpeed float64
}

// DefaultOrbitOptions returns map-style controls tuned for the galaxy view.
func DefaultOrbitOptions() OrbitOptions {
	return OrbitOptions{
		Damping:            true,
		DampingFactor:      0.05,
		ScreenSpacePanning: false,
		MinDistance:        1,
		MaxDistance:        16384,
		MinPolarAngle:      0,
		MaxPolarAngle:      math.Pi/2 - math.Pi/360,
		RotateSpeed:        1,
		PanSpeed:           1,
		ZoomSpeed:          1,
	}
}

// Validate checks the options.
func (o OrbitOptions) Validate() error {
	switch {
	case o.Damping && (o.DampingFactor <= 0 || o.DampingFactor > 1):
		return fmt.Errorf("%w: damping factor %v not in (0,1]", ErrInvalidOrbit, o.DampingFactor)
	case o.MinDistance < 0 || o.MaxDistance < o.MinDistance:
		return fmt.Errorf("%w: distance range [%v,%v]", ErrInvalidOrbit, o.MinDistance, o.MaxDistance)
	case o.MinPolarAngle < 0 || o.MaxPolarAngle > math.Pi || o.MaxPolarAngle < o.MinPolarAngle:
		return fmt.Errorf("%w: polar range [%v,%v]", ErrInvalidOrbit, o.MinPolarAngle, o.MaxPolarAngle)
	case o.RotateSpeed < 0 || o.PanSpeed < 0 || o.ZoomSpeed < 0:
		return fmt.Errorf("%w: negative speed", ErrInvalidOrbit)
	}
	return nil
}

// Orbit rotates, pans and dollies a camera around a target point.
//
// Input methods only queue deltas; Update folds them into the pose. Update
// is idempotent with no new input: once motion settles it leaves the camera
// untouched.
type Orbit struct {
	// Target is the point the camera orbits around.
	Target mgl64.Vec3

	opts OrbitOptions

	// raw pointer input since the last Update, in pixels
	rotX, rotY float64
	panX, panY float64

	// motion still to be applied
	dTheta, dPhi float64
	pan          mgl64.Vec3
	scale        float64
}

// NewOrbit creates an orbit controller around target.
func NewOrbit(target mgl64.Vec3, opts OrbitOptions) (*Orbit, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Orbit{Target: target, opts: opts, scale: 1}, nil
}

// Options returns the controller configuration.
func (o *Orbit) Options() OrbitOptions {
	return o.opts
}

// Rotate queues a rotation drag of dx, dy pixels.
func (o *Orbit) Rotate(dx, dy float64) {
	o.rotX += dx
	o.rotY += dy
}

// Pan queues a pan drag of dx, dy pixels.
func (o *Orbit) Pan(dx, dy float64) {
	o.panX += dx
	o.panY += dy
}

// Zoom queues steps of dolly. Positive steps move toward the target.
func (o *Orbit) Zoom(steps float64) {
	o.Dolly(math.Pow(0.95, o.opts.ZoomSpeed*steps))
}

// Dolly queues a multiplicative change of the target distance.
// Non-positive scales are ignored.
func (o *Orbit) Dolly(scale float64) {
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return
	}
	o.scale *= scale
}

// Idle reports whether no motion is pending.
func (o *Orbit) Idle() bool {
	return o.rotX == 0 && o.rotY == 0 && o.panX == 0 && o.panY == 0 &&
		o.dTheta == 0 && o.dPhi == 0 && o.pan == (mgl64.Vec3{}) && o.scale == 1
}

// Reset drops all pending motion.
func (o *Orbit) Reset() {
	o.rotX, o.rotY, o.panX, o.panY = 0, 0, 0, 0
	o.dTheta, o.dPhi = 0, 0
	o.pan = mgl64.Vec3{}
	o.scale = 1
}

// SyncTarget moves the target onto the current view direction, keeping the
// current distance, so the next Update does not re-aim the camera.
func (o *Orbit) SyncTarget(cam *Camera) {
	dist := cam.Position.Sub(o.Target).Len()
	dist = mgl64.Clamp(dist, math.Max(o.opts.MinDistance, settle), o.opts.MaxDistance)
	o.Target = cam.Position.Add(cam.Forward().Mul(dist))
}

// Update applies pending motion to cam. viewportHeight is the pixel height
// that pointer deltas were measured against. It reports whether the pose
// changed.
func (o *Orbit) Update(cam *Camera, viewportHeight int) bool {
	h := float64(max(viewportHeight, 1))

	if o.rotX != 0 || o.rotY != 0 {
		o.dTheta -= 2 * math.Pi * o.rotX / h * o.opts.RotateSpeed
		o.dPhi -= 2 * math.Pi * o.rotY / h * o.opts.RotateSpeed
		o.rotX, o.rotY = 0, 0
	}
	if o.panX != 0 || o.panY != 0 {
		o.pan = o.pan.Add(o.panOffset(cam, o.panX, o.panY, h))
		o.panX, o.panY = 0, 0
	}

	// work in a frame where Up is +Y
	toY := mgl64.QuatBetweenVectors(upOf(cam), localUp)
	fromY := toY.Conjugate()

	offset := toY.Rotate(cam.Position.Sub(o.Target))
	radius := offset.Len()
	theta := math.Atan2(offset.X(), offset.Z())
	phi := 0.0
	if radius > 0 {
		phi = math.Acos(mgl64.Clamp(offset.Y()/radius, -1, 1))
	}

	f := 1.0
	if o.opts.Damping {
		f = o.opts.DampingFactor
	}

	newTheta := theta + o.dTheta*f
	newPhi := o.clampPolar(phi + o.dPhi*f)
	newRadius := mgl64.Clamp(radius*o.scale, o.opts.MinDistance, o.opts.MaxDistance)
	step := o.pan.Mul(f)

	moving := o.dTheta != 0 || o.dPhi != 0 || o.scale != 1 || o.pan != (mgl64.Vec3{}) ||
		math.Abs(newPhi-phi) > settle || math.Abs(newRadius-radius) > settle
	if !moving {
		return false
	}

	o.Target = o.Target.Add(step)
	sinPhi := math.Sin(newPhi)
	offset = mgl64.Vec3{
		newRadius * sinPhi * math.Sin(newTheta),
		newRadius * math.Cos(newPhi),
		newRadius * sinPhi * math.Cos(newTheta),
	}
	before := cam.Pose()
	cam.Position = o.Target.Add(fromY.Rotate(offset))
	cam.LookAt(o.Target)

	o.scale = 1
	if o.opts.Damping {
		o.dTheta *= 1 - f
		o.dPhi *= 1 - f
		o.pan = o.pan.Mul(1 - f)
		if math.Abs(o.dTheta) < settle {
			o.dTheta = 0
		}
		if math.Abs(o.dPhi) < settle {
			o.dPhi = 0
		}
		if o.pan.Len() < settle {
			o.pan = mgl64.Vec3{}
		}
	} else {
		o.dTheta, o.dPhi = 0, 0
		o.pan = mgl64.Vec3{}
	}

	return cam.Position.Sub(before.Position).Len() > settle ||
		1-math.Abs(cam.Orientation.Dot(before.Orientation)) > settle*settle
}

func (o *Orbit) clampPolar(phi float64) float64 {
	phi = mgl64.Clamp(phi, o.opts.MinPolarAngle, o.opts.MaxPolarAngle)
	return mgl64.Clamp(phi, polarEpsilon, math.Pi-polarEpsilon)
}

// panOffset converts a pixel drag into a world-space target offset.
func (o *Orbit) panOffset(cam *Camera, dx, dy, h float64) mgl64.Vec3 {
	// visible half-height at the target distance
	dist := cam.Position.Sub(o.Target).Len() * math.Tan(mgl64.DegToRad(cam.FOV)/2)
	right := cam.Right()
	left := right.Mul(-2 * dx * dist / h * o.opts.PanSpeed)

	var up mgl64.Vec3
	if o.opts.ScreenSpacePanning {
		up = cam.ViewUp()
	} else {
		up = upOf(cam).Cross(right)
		if up.Len() > 0 {
			up = up.Normalize()
		}
	}
	return left.Add(up.Mul(2 * dy * dist / h * o.opts.PanSpeed))
}

func upOf(cam *Camera) mgl64.Vec3 {
	if cam.Up.Len() == 0 {
		return localUp
	}
	return cam.Up.Normalize()
}
