// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package nebula

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultParamsValid(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Fatal(err)
	}
	p := DefaultParams()
	p.FogDensity = 0
	if p.fog() != nil {
		t.Error("zero density should disable fog")
	}
}

func TestViewport(t *testing.T) {
	tests := []struct {
		name    string
		v       Viewport
		physW   int
		physH   int
		wantErr bool
	}{
		{"unit", Viewport{800, 600, 1}, 800, 600, false},
		{"retina", Viewport{800, 600, 2}, 1600, 1200, false},
		{"rounds", Viewport{101, 51, 1.25}, 126, 64, false},
		{"zero", Viewport{0, 600, 1}, 0, 600, true},
		{"tiny ratio", Viewport{1, 1, 0.1}, 0, 0, true},
		{"zero ratio", Viewport{800, 600, 0}, 0, 0, true},
		{"nan ratio", Viewport{800, 600, math.NaN()}, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.v.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidViewport) {
					t.Fatalf("err = %v, want ErrInvalidViewport", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if w, h := tt.v.Physical(); w != tt.physW || h != tt.physH {
				t.Errorf("Physical() = %dx%d, want %dx%d", w, h, tt.physW, tt.physH)
			}
			if got, want := tt.v.Aspect(), float64(tt.physW)/float64(tt.physH); got != want {
				t.Errorf("Aspect() = %v, want %v", got, want)
			}
		})
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		s    State
		want string
	}{
		{Idle, "Idle"},
		{RenderingBloom, "RenderingBloom"},
		{Presented, "Presented"},
		{State(42), "State(42)"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.s, got, tt.want)
		}
	}
}
