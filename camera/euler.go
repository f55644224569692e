// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Euler is a rotation as angles in radians applied in XYZ order,
// i.e. the rotation matrix is Rx * Ry * Rz.
type Euler struct {
	X, Y, Z float64
}

// Quat converts e to a unit quaternion.
func (e Euler) Quat() mgl64.Quat {
	qx := mgl64.QuatRotate(e.X, localRight)
	qy := mgl64.QuatRotate(e.Y, localUp)
	qz := mgl64.QuatRotate(e.Z, mgl64.Vec3{0, 0, 1})
	return qx.Mul(qy).Mul(qz).Normalize()
}

// EulerFromQuat converts q to XYZ Euler angles.
// Near gimbal lock (|Y| = pi/2) the Z angle is folded into X.
func EulerFromQuat(q mgl64.Quat) Euler {
	m := q.Normalize().Mat4()
	m11, m12, m13 := m.At(0, 0), m.At(0, 1), m.At(0, 2)
	m22, m23 := m.At(1, 1), m.At(1, 2)
	m32, m33 := m.At(2, 1), m.At(2, 2)

	var e Euler
	e.Y = math.Asin(mgl64.Clamp(m13, -1, 1))
	if math.Abs(m13) < 0.9999999 {
		e.X = math.Atan2(-m23, m33)
		e.Z = math.Atan2(-m12, m11)
	} else {
		e.X = math.Atan2(m32, m22)
		e.Z = 0
	}
	return e
}
