// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package scene holds the objects a frame renders and the contract between
// objects and the rasterizer.
//
// Objects never rasterize themselves. Draw emits primitives into a Canvas,
// and the channel renderer decides which objects to ask by testing their
// layer set.
package scene

import (
	"github.com/google/uuid"

	"github.com/gogpu/nebula/camera"
	"github.com/gogpu/nebula/layer"
)

// Object is anything that can be placed in a Scene.
type Object interface {
	// ID identifies the object within its scene.
	ID() uuid.UUID

	// Layers returns the object's channel set. The pointer allows
	// reassignment between frames.
	Layers() *layer.Set

	// Draw emits the object's primitives.
	Draw(c Canvas)
}

// Provider is notified once per frame, after the camera settles and before
// any channel renders, so it can adapt to the new view.
type Provider interface {
	UpdateScale(cam *camera.Camera)
}

// Scene is an ordered collection of objects plus global appearance.
// It is not safe for concurrent use; mutate it between frames.
//
// The zero value is an empty scene with a transparent background.
type Scene struct {
	// Background is the clear color of the base channel.
	Background Color

	// Fog, when non-nil, fades fog-enabled primitives with distance.
	Fog *FogExp2

	objects []Object
	index   map[uuid.UUID]int
}

// New creates an empty scene with a black background and no fog.
func New() *Scene {
	return &Scene{
		Background: Color{A: 1},
		index:      make(map[uuid.UUID]int),
	}
}

// Add appends objects. Re-adding an object with a known ID replaces it in place.
func (s *Scene) Add(objs ...Object) {
	for _, o := range objs {
		if o == nil {
			continue
		}
		if i, ok := s.index[o.ID()]; ok {
			s.objects[i] = o
			continue
		}
		if s.index == nil {
			s.index = make(map[uuid.UUID]int)
		}
		s.index[o.ID()] = len(s.objects)
		s.objects = append(s.objects, o)
	}
}

// Remove deletes the object with the given ID and reports whether it existed.
func (s *Scene) Remove(id uuid.UUID) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	copy(s.objects[i:], s.objects[i+1:])
	s.objects[len(s.objects)-1] = nil
	s.objects = s.objects[:len(s.objects)-1]
	delete(s.index, id)
	for j := i; j < len(s.objects); j++ {
		s.index[s.objects[j].ID()] = j
	}
	return true
}

// Get returns the object with the given ID.
func (s *Scene) Get(id uuid.UUID) (Object, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.objects[i], true
}

// Len returns the number of objects.
func (s *Scene) Len() int {
	return len(s.objects)
}

// Objects returns a copy of the object list in insertion order.
func (s *Scene) Objects() []Object {
	out := make([]Object, len(s.objects))
	copy(out, s.objects)
	return out
}

// Clear removes every object.
func (s *Scene) Clear() {
	clear(s.objects)
	s.objects = s.objects[:0]
	clear(s.index)
}

// Visit calls fn for each object whose layer set contains ch, in insertion
// order.
func (s *Scene) Visit(ch layer.Channel, fn func(Object)) {
	for _, o := range s.objects {
		if o.Layers().Test(ch) {
			fn(o)
		}
	}
}
