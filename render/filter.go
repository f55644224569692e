// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "fmt"

// Filter post-processes a rendered channel.
//
// Apply reads src and writes the complete result to dst; src and dst are
// distinct and have the same size. Filters that need scratch buffers keep
// them between frames.
type Filter interface {
	Apply(src, dst *FloatTarget) error
}

// Resizer is implemented by filters whose scratch buffers depend on the
// target size. The channel renderer calls Resize during reconciliation.
type Resizer interface {
	Resize(width, height int)
}

// FilterFunc adapts a function to Filter.
type FilterFunc func(src, dst *FloatTarget) error

// Apply calls f.
func (f FilterFunc) Apply(src, dst *FloatTarget) error { return f(src, dst) }

// Chain runs filters in order.
type Chain []Filter

// Run applies every filter, alternating between a and b. It returns the
// target holding the result: a when the chain is empty.
func (c Chain) Run(a, b *FloatTarget) (*FloatTarget, error) {
	src, dst := a, b
	for i, f := range c {
		if err := f.Apply(src, dst); err != nil {
			return nil, fmt.Errorf("render: filter %d (%T): %w", i, f, err)
		}
		src, dst = dst, src
	}
	return src, nil
}

// Resize forwards a size change to every filter implementing Resizer.
func (c Chain) Resize(width, height int) {
	for _, f := range c {
		if r, ok := f.(Resizer); ok {
			r.Resize(width, height)
		}
	}
}
