// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scene

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"

	"github.com/gogpu/nebula/layer"
)

// Label is text pinned to a world position and drawn facing the viewer.
type Label struct {
	id     uuid.UUID
	layers layer.Set

	Position mgl32.Vec3
	Text     string
	Color    Color
	Visible  bool
}

// NewLabel creates a visible white label with no channels.
func NewLabel(pos mgl32.Vec3, text string) *Label {
	return &Label{id: uuid.New(), Position: pos, Text: text, Color: White, Visible: true}
}

// ID implements Object.
func (l *Label) ID() uuid.UUID { return l.id }

// Layers implements Object.
func (l *Label) Layers() *layer.Set { return &l.layers }

// Draw implements Object.
func (l *Label) Draw(c Canvas) {
	if !l.Visible || l.Text == "" {
		return
	}
	c.Text(l.Position, l.Text, l.Color)
}
