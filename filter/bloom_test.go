// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package filter

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"

	"github.com/gogpu/nebula/internal/parallel"
	"github.com/gogpu/nebula/render"
	"github.com/gogpu/nebula/scene"
)

func fill(t *render.FloatTarget, c scene.Color) *render.FloatTarget {
	t.Clear(c)
	return t
}

func TestBlurConstantStaysConstant(t *testing.T) {
	src := fill(render.NewFloatTarget(17, 9), scene.Color{R: 0.25, G: 2, B: 1, A: 1})
	dst := render.NewFloatTarget(17, 9)
	if err := NewBlur(3).Apply(src, dst); err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 9; y++ {
		for x := 0; x < 17; x++ {
			r, g, _, a := dst.RGBA(x, y)
			if math32.Abs(r-0.25) > 1e-5 || math32.Abs(g-2) > 1e-5 || math32.Abs(a-1) > 1e-5 {
				t.Fatalf("pixel (%d,%d) = %v %v %v", x, y, r, g, a)
			}
		}
	}
}

func TestBlurSpreadsAndConservesEnergy(t *testing.T) {
	src := render.NewFloatTarget(31, 31)
	src.SetRGBA(15, 15, 1, 1, 1, 1)
	dst := render.NewFloatTarget(31, 31)
	if err := NewBlur(2).Apply(src, dst); err != nil {
		t.Fatal(err)
	}
	var sum float32
	for _, v := range dst.Pix() {
		sum += v
	}
	if math32.Abs(sum-4) > 1e-4 {
		t.Errorf("energy = %v, want 4", sum)
	}
	if r, _, _, _ := dst.RGBA(17, 15); r == 0 {
		t.Error("blur did not spread")
	}
}

func TestBlurSizeMismatch(t *testing.T) {
	err := NewBlur(1).Apply(render.NewFloatTarget(2, 2), render.NewFloatTarget(3, 2))
	if !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("err = %v, want ErrSizeMismatch", err)
	}
}

func TestBloomValidate(t *testing.T) {
	tests := []struct {
		name string
		b    Bloom
		ok   bool
	}{
		{"defaults", *NewBloom(0.85, 1.5, 0.4), true},
		{"negative threshold", Bloom{Threshold: -1, Levels: 5}, false},
		{"NaN strength", Bloom{Strength: math32.NaN(), Levels: 5}, false},
		{"radius above one", Bloom{Radius: 1.5, Levels: 5}, false},
		{"no levels", Bloom{Levels: 0}, false},
		{"too many levels", Bloom{Levels: 6}, false},
		{"one level", Bloom{Levels: 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.b.Validate()
			if tt.ok != (err == nil) {
				t.Errorf("Validate() = %v, want ok=%v", err, tt.ok)
			}
			if err != nil && !errors.Is(err, ErrInvalidBloom) {
				t.Errorf("Validate() = %v, want ErrInvalidBloom", err)
			}
		})
	}
}

func TestBloomBlackStaysBlack(t *testing.T) {
	src := fill(render.NewFloatTarget(40, 30), scene.Black)
	dst := render.NewFloatTarget(40, 30)
	if err := NewBloom(0, 1.5, 0.4).Apply(src, dst); err != nil {
		t.Fatal(err)
	}
	pix := dst.Pix()
	for i := 0; i < len(pix); i += 4 {
		if pix[i] != 0 || pix[i+1] != 0 || pix[i+2] != 0 {
			t.Fatalf("pixel %d not black: %v", i/4, pix[i:i+4])
		}
	}
}

func TestBloomBelowThresholdUnchanged(t *testing.T) {
	src := fill(render.NewFloatTarget(20, 20), scene.RGB(0.3, 0.3, 0.3))
	src.SetRGBA(10, 10, 0.5, 0.5, 0.5, 1)
	dst := render.NewFloatTarget(20, 20)
	if err := NewBloom(0.85, 1.5, 0.4).Apply(src, dst); err != nil {
		t.Fatal(err)
	}
	for i, v := range dst.Pix() {
		if v != src.Pix()[i] {
			t.Fatalf("value %d changed: %v -> %v", i, src.Pix()[i], v)
		}
	}
}

func TestBloomGlowsAndNeverDarkens(t *testing.T) {
	src := fill(render.NewFloatTarget(64, 64), scene.Black)
	for y := 30; y < 34; y++ {
		for x := 30; x < 34; x++ {
			src.SetRGBA(x, y, 4, 4, 4, 1)
		}
	}
	dst := render.NewFloatTarget(64, 64)
	b := NewBloom(0.85, 1.5, 0.4)
	b.Resize(64, 64)
	if err := b.Apply(src, dst); err != nil {
		t.Fatal(err)
	}

	for i, v := range dst.Pix() {
		if v < src.Pix()[i] {
			t.Fatalf("value %d darkened: %v -> %v", i, src.Pix()[i], v)
		}
	}
	if r, _, _, _ := dst.RGBA(40, 32); r <= 0 {
		t.Error("no glow next to the bright square")
	}
	// glow falls off with distance
	r1, _, _, _ := dst.RGBA(38, 32)
	r2, _, _, _ := dst.RGBA(50, 32)
	if r1 <= r2 {
		t.Errorf("glow at 6px (%v) not above glow at 18px (%v)", r1, r2)
	}
}

func TestBloomZeroStrengthCopies(t *testing.T) {
	src := fill(render.NewFloatTarget(8, 8), scene.RGB(5, 5, 5))
	dst := render.NewFloatTarget(8, 8)
	if err := NewBloom(0, 0, 0).Apply(src, dst); err != nil {
		t.Fatal(err)
	}
	if r, _, _, _ := dst.RGBA(3, 3); r != 5 {
		t.Errorf("r = %v, want 5", r)
	}
}

func TestBloomResizeMipChain(t *testing.T) {
	b := NewBloom(0.85, 1.5, 0.4)
	b.Resize(100, 50)
	want := [][2]int{{50, 25}, {25, 13}, {13, 7}, {7, 4}, {4, 2}}
	if len(b.mips) != len(want) {
		t.Fatalf("levels = %d, want %d", len(b.mips), len(want))
	}
	for i, m := range b.mips {
		if m.out.Width() != want[i][0] || m.out.Height() != want[i][1] {
			t.Errorf("level %d = %dx%d, want %dx%d", i, m.out.Width(), m.out.Height(), want[i][0], want[i][1])
		}
	}

	b.Levels = 2
	b.Resize(100, 50)
	if len(b.mips) != 2 {
		t.Errorf("levels after shrinking = %d, want 2", len(b.mips))
	}
}

func TestBloomPooledMatchesSerial(t *testing.T) {
	pool := parallel.NewWorkerPool(4)
	defer pool.Close()

	src := render.NewFloatTarget(96, 80)
	for y := 0; y < 80; y += 7 {
		for x := 0; x < 96; x += 5 {
			src.SetRGBA(x, y, float32(x)/24, 1.5, float32(y)/40, 1)
		}
	}
	serial, pooled := render.NewFloatTarget(96, 80), render.NewFloatTarget(96, 80)

	b := NewBloom(0.5, 1.2, 0.4)
	if err := b.Apply(src, serial); err != nil {
		t.Fatal(err)
	}
	pb := NewBloom(0.5, 1.2, 0.4)
	pb.Pool = pool
	if err := pb.Apply(src, pooled); err != nil {
		t.Fatal(err)
	}
	for i, v := range serial.Pix() {
		if math32.Abs(v-pooled.Pix()[i]) > 1e-6 {
			t.Fatalf("component %d: serial %v, pooled %v", i, v, pooled.Pix()[i])
		}
	}
}
