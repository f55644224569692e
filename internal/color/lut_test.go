// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package color

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestDecodeMatchesCurve(t *testing.T) {
	for i := 0; i < 256; i++ {
		want := SRGBToLinear(float32(i) / 255)
		if got := DecodeByte(uint8(i)); math32.Abs(got-want) > 1e-6 {
			t.Errorf("DecodeByte(%d) = %v, want %v", i, got, want)
		}
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	for i := 0; i < 256; i++ {
		got := EncodeByte(DecodeByte(uint8(i)))
		diff := int(got) - i
		if diff < -1 || diff > 1 {
			t.Errorf("EncodeByte(DecodeByte(%d)) = %d", i, got)
		}
	}
}

func TestEncodeClamps(t *testing.T) {
	tests := []struct {
		in   float32
		want uint8
	}{
		{-1, 0},
		{0, 0},
		{math32.NaN(), 0},
		{1, 255},
		{7.5, 255},
		{math32.Inf(1), 255},
	}
	for _, tt := range tests {
		if got := EncodeByte(tt.in); got != tt.want {
			t.Errorf("EncodeByte(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
	if got := EncodeByte(0.5); got != 188 {
		t.Errorf("EncodeByte(0.5) = %d, want 188", got)
	}
}

func TestHex(t *testing.T) {
	r, g, b := Hex(0xff8000)
	if r != 1 || b != 0 {
		t.Errorf("Hex(0xff8000) = %v %v %v", r, g, b)
	}
	if want := DecodeByte(0x80); g != want {
		t.Errorf("green = %v, want %v", g, want)
	}
}
