// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package color converts between sRGB-encoded bytes and linear light.
//
// Rendering and bloom work in linear float32; only the compositor's output
// and host-facing colors are sRGB. Both directions go through lookup tables
// built once at init.
package color

import "github.com/chewxy/math32"

// lutSize gives 12-bit precision on the encode side, enough for 8-bit output.
const lutSize = 4096

var (
	toLinear [256]float32
	toSRGB   [lutSize]uint8
)

func init() {
	for i := range toLinear {
		toLinear[i] = SRGBToLinear(float32(i) / 255)
	}
	for i := range toSRGB {
		toSRGB[i] = quantize(LinearToSRGB(float32(i) / (lutSize - 1)))
	}
}

// SRGBToLinear applies the sRGB decoding curve to s in [0,1].
func SRGBToLinear(s float32) float32 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return math32.Pow((s+0.055)/1.055, 2.4)
}

// LinearToSRGB applies the sRGB encoding curve to l in [0,1].
func LinearToSRGB(l float32) float32 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*math32.Pow(l, 1/2.4) - 0.055
}

// DecodeByte converts an sRGB byte to linear light.
func DecodeByte(s uint8) float32 {
	return toLinear[s]
}

// EncodeByte converts linear light to an sRGB byte. Input outside [0,1]
// is clamped; NaN encodes as 0.
func EncodeByte(l float32) uint8 {
	if !(l > 0) {
		return 0
	}
	if l >= 1 {
		return 255
	}
	return toSRGB[int(l*(lutSize-1)+0.5)]
}

// Quantize maps v in [0,1] to a byte with rounding, clamping out-of-range
// input. It does not apply any transfer curve.
func Quantize(v float32) uint8 {
	return quantize(v)
}

func quantize(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Hex decodes a 0xRRGGBB sRGB color into linear components.
func Hex(rgb uint32) (r, g, b float32) {
	return DecodeByte(uint8(rgb >> 16)), DecodeByte(uint8(rgb >> 8)), DecodeByte(uint8(rgb))
}
