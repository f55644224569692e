// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package nebula

import "errors"

// Construction errors. These are fatal: New returns no pipeline.
var (
	// ErrInvalidViewport is returned when the surface reports a zero or
	// negative size or an unusable pixel ratio at construction.
	ErrInvalidViewport = errors.New("nebula: invalid viewport")

	// ErrInvalidParams is returned for composite parameters out of range.
	ErrInvalidParams = errors.New("nebula: invalid parameters")

	// ErrMissingDependency is returned when New gets a nil surface, scene
	// or rig.
	ErrMissingDependency = errors.New("nebula: missing dependency")
)

// Per-frame errors. The frame is skipped; the next one proceeds.
var (
	// ErrEmptyViewport is returned by Frame while the surface has no area,
	// e.g. a minimized window.
	ErrEmptyViewport = errors.New("nebula: empty viewport")

	// ErrFramePanic wraps a panic recovered during a frame.
	ErrFramePanic = errors.New("nebula: frame panicked")

	// ErrClosed is returned by Frame after Close.
	ErrClosed = errors.New("nebula: pipeline closed")
)
