// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/gogpu/nebula/layer"
)

// Segment is a line between two colored endpoints.
type Segment struct {
	A, B   mgl32.Vec3
	CA, CB Color
}

// Lines is a set of independent segments.
type Lines struct {
	id     uuid.UUID
	layers layer.Set

	Segments []Segment
	Fog      bool
	Visible  bool
}

// NewLines creates visible segments with no channels.
func NewLines(segs ...Segment) *Lines {
	return &Lines{id: uuid.New(), Segments: segs, Visible: true}
}

// NewAxes creates an axes helper: X red, Y green, Z blue, each of the given
// length from the origin.
func NewAxes(length float32) *Lines {
	return NewLines(
		Segment{B: mgl32.Vec3{length, 0, 0}, CA: RGB(1, 0, 0), CB: RGB(1, 0.6, 0)},
		Segment{B: mgl32.Vec3{0, length, 0}, CA: RGB(0, 1, 0), CB: RGB(0.6, 1, 0)},
		Segment{B: mgl32.Vec3{0, 0, length}, CA: RGB(0, 0, 1), CB: RGB(0, 0.6, 1)},
	)
}

// ID implements Object.
func (l *Lines) ID() uuid.UUID { return l.id }

// Layers implements Object.
func (l *Lines) Layers() *layer.Set { return &l.layers }

// Draw implements Object.
func (l *Lines) Draw(c Canvas) {
	if !l.Visible {
		return
	}
	for _, s := range l.Segments {
		c.Line(s.A, s.B, s.CA, s.CB, l.Fog)
	}
}
