// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"
)

// Backend errors.
var (
	ErrNoBackend          = errors.New("surface: no backend available")
	ErrUnknownBackend     = errors.New("surface: unknown backend")
	ErrBackendUnavailable = errors.New("surface: backend unavailable")
)

// Backend is a named way to open a Surface.
type Backend struct {
	Name string

	// Priority orders automatic selection, highest first.
	// Built-ins: term 100, png 10, image 1.
	Priority int

	Open func(opts Options) (Surface, error)

	// Available reports whether the backend works on this host.
	// Nil means always.
	Available func() bool
}

func (b Backend) available() bool {
	return b.Available == nil || b.Available()
}

// backends is a priority-ordered backend table.
type backends struct {
	mu   sync.RWMutex
	list []Backend
}

var registry backends

// Register adds b, replacing any backend with the same name.
// Backends usually register from init.
func Register(b Backend) { registry.register(b) }

// List returns every registered backend name, highest priority first.
func List() []string { return registry.names(false) }

// Available returns the names of the backends usable on this host, highest
// priority first.
func Available() []string { return registry.names(true) }

// Open creates a surface with the named backend. An empty name picks the
// highest-priority available backend.
func Open(name string, opts Options) (Surface, error) { return registry.open(name, opts) }

func (r *backends) register(b Backend) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.list = slices.DeleteFunc(r.list, func(e Backend) bool { return e.Name == b.Name })
	r.list = append(r.list, b)
	slices.SortStableFunc(r.list, func(a, b Backend) int {
		return cmp.Or(cmp.Compare(b.Priority, a.Priority), cmp.Compare(a.Name, b.Name))
	})
}

func (r *backends) names(onlyAvailable bool) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []string
	for _, b := range r.list {
		if !onlyAvailable || b.available() {
			out = append(out, b.Name)
		}
	}
	return out
}

func (r *backends) open(name string, opts Options) (Surface, error) {
	r.mu.RLock()
	list := slices.Clone(r.list)
	r.mu.RUnlock()

	if name != "" {
		i := slices.IndexFunc(list, func(b Backend) bool { return b.Name == name })
		switch {
		case i < 0:
			return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
		case !list[i].available():
			return nil, fmt.Errorf("%w: %q", ErrBackendUnavailable, name)
		}
		return list[i].Open(opts)
	}

	for _, b := range list {
		if b.available() {
			return b.Open(opts)
		}
	}
	return nil, ErrNoBackend
}

func init() {
	Register(Backend{Name: "png", Priority: 10, Open: func(opts Options) (Surface, error) {
		if opts.Path == "" {
			opts.Path = "nebula.png"
		}
		return NewFileSurface(opts)
	}})
	Register(Backend{Name: "image", Priority: 1, Open: func(opts Options) (Surface, error) {
		s := NewImageSurface(opts.Width, opts.Height)
		s.SetPixelRatio(opts.ratio())
		return s, nil
	}})
}
