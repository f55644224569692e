// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package camera

import (
	"math"
	"strings"
)

// Ease maps linear progress in [0,1] to eased progress in [0,1].
// Every Ease returns exactly 0 at 0 and exactly 1 at 1.
type Ease func(t float64) float64

// Linear is the identity ease.
func Linear(t float64) float64 { return t }

func powerIn(p float64) Ease {
	return func(t float64) float64 { return math.Pow(t, p) }
}

func powerOut(p float64) Ease {
	return func(t float64) float64 { return 1 - math.Pow(1-t, p) }
}

func powerInOut(p float64) Ease {
	return func(t float64) float64 {
		if t < 0.5 {
			return math.Pow(2*t, p) / 2
		}
		return 1 - math.Pow(2*(1-t), p)/2
	}
}

// Power eases. PowerN raises progress to the (N+1)th power.
var (
	Power1In    = powerIn(2)
	Power1Out   = powerOut(2)
	Power1InOut = powerInOut(2)
	Power2In    = powerIn(3)
	Power2Out   = powerOut(3)
	Power2InOut = powerInOut(3)
	Power3In    = powerIn(4)
	Power3Out   = powerOut(4)
	Power3InOut = powerInOut(4)
	Power4In    = powerIn(5)
	Power4Out   = powerOut(5)
	Power4InOut = powerInOut(5)
)

// SineInOut follows half a cosine period.
func SineInOut(t float64) float64 {
	return -(math.Cos(math.Pi*t) - 1) / 2
}

var easeNames = map[string]Ease{
	"none":         Linear,
	"linear":       Linear,
	"power1.in":    Power1In,
	"power1.out":   Power1Out,
	"power1.inout": Power1InOut,
	"power2.in":    Power2In,
	"power2.out":   Power2Out,
	"power2.inout": Power2InOut,
	"power3.in":    Power3In,
	"power3.out":   Power3Out,
	"power3.inout": Power3InOut,
	"power4.in":    Power4In,
	"power4.out":   Power4Out,
	"power4.inout": Power4InOut,
	"sine.inout":   SineInOut,
}

// EaseByName looks up an ease by name such as "power3.inOut".
// Names are case-insensitive.
func EaseByName(name string) (Ease, bool) {
	e, ok := easeNames[strings.ToLower(name)]
	return e, ok
}
