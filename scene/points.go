// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/gogpu/nebula/layer"
)

// Points is a point cloud.
//
// Colors and Sizes are either empty, hold a single shared value, or hold one
// value per position.
type Points struct {
	id     uuid.UUID
	layers layer.Set

	Positions []mgl32.Vec3
	Colors    []Color
	Sizes     []float32

	// Size is used when Sizes is empty; Scale multiplies every size.
	Size  float32
	Scale float32

	Blending        Blending
	SizeAttenuation bool
	Fog             bool
	Visible         bool
}

// NewPoints creates a visible, size-attenuated point cloud with no channels.
func NewPoints(positions []mgl32.Vec3, colors []Color, size float32) *Points {
	return &Points{
		id:              uuid.New(),
		Positions:       positions,
		Colors:          colors,
		Size:            size,
		Scale:           1,
		SizeAttenuation: true,
		Fog:             true,
		Visible:         true,
	}
}

// ID implements Object.
func (p *Points) ID() uuid.UUID { return p.id }

// Layers implements Object.
func (p *Points) Layers() *layer.Set { return &p.layers }

// Draw implements Object.
func (p *Points) Draw(c Canvas) {
	if !p.Visible {
		return
	}
	for i, pos := range p.Positions {
		s := Sprite{
			Position:  pos,
			Size:      p.sizeAt(i) * p.Scale,
			Color:     p.colorAt(i),
			Blending:  p.Blending,
			Attenuate: p.SizeAttenuation,
			Fog:       p.Fog,
		}
		if s.Size <= 0 || s.Color.A <= 0 {
			continue
		}
		c.Point(s)
	}
}

func (p *Points) colorAt(i int) Color {
	switch len(p.Colors) {
	case 0:
		return White
	case 1:
		return p.Colors[0]
	}
	if i < len(p.Colors) {
		return p.Colors[i]
	}
	return White
}

func (p *Points) sizeAt(i int) float32 {
	switch len(p.Sizes) {
	case 0:
		return p.Size
	case 1:
		return p.Sizes[0]
	}
	if i < len(p.Sizes) {
		return p.Sizes[i]
	}
	return p.Size
}
