// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package nebula

import (
	"fmt"
	"math"

	"github.com/chewxy/math32"

	"github.com/gogpu/nebula/composite"
	"github.com/gogpu/nebula/filter"
	"github.com/gogpu/nebula/scene"
)

// Params is the static per-session configuration of the pipeline. Each
// field affects one stage.
type Params struct {
	// Bloom filter.
	BloomThreshold float32 // luma above which pixels glow
	BloomStrength  float32 // glow intensity
	BloomRadius    float32 // 0 keeps the glow tight, 1 spreads it wide

	// Compositor.
	Exposure    float32
	ToneMapping composite.ToneMapping

	// Channel renderers.
	FogColor   scene.Color
	FogDensity float32 // 0 disables fog

	// Camera projection.
	FOV       float64 // vertical, degrees
	Near, Far float64
}

// DefaultParams returns the parameters of the reference galaxy viewer.
func DefaultParams() Params {
	return Params{
		BloomThreshold: 0.85,
		BloomStrength:  1.5,
		BloomRadius:    0.4,
		Exposure:       0.5,
		ToneMapping:    composite.ACESFilmic,
		FogColor:       scene.Hex(0xEBE2DB),
		FogDensity:     0.00003,
		FOV:            60,
		Near:           0.1,
		Far:            5e6,
	}
}

// Validate checks every field. Errors wrap ErrInvalidParams.
func (p Params) Validate() error {
	if err := p.bloom().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	if err := p.composite().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	if !(p.FogDensity >= 0) || math32.IsInf(p.FogDensity, 0) {
		return fmt.Errorf("%w: fog density %v", ErrInvalidParams, p.FogDensity)
	}
	if !(p.FOV > 0 && p.FOV < 180) {
		return fmt.Errorf("%w: fov %v not in (0,180)", ErrInvalidParams, p.FOV)
	}
	if !(p.Near > 0) || !(p.Far > p.Near) || math.IsInf(p.Far, 0) {
		return fmt.Errorf("%w: near %v far %v", ErrInvalidParams, p.Near, p.Far)
	}
	return nil
}

func (p Params) bloom() *filter.Bloom {
	return filter.NewBloom(p.BloomThreshold, p.BloomStrength, p.BloomRadius)
}

func (p Params) composite() composite.Params {
	return composite.Params{Exposure: p.Exposure, ToneMapping: p.ToneMapping}
}

func (p Params) fog() *scene.FogExp2 {
	if p.FogDensity == 0 {
		return nil
	}
	return &scene.FogExp2{Color: p.FogColor, Density: p.FogDensity}
}
