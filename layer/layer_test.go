// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layer

import "testing"

type object struct{ set Set }

func (o *object) Layers() *Set { return &o.set }

func TestChannelMask(t *testing.T) {
	tests := []struct {
		ch   Channel
		want Mask
		name string
	}{
		{Base, 1, "base"},
		{Bloom, 2, "bloom"},
		{Overlay, 4, "overlay"},
		{Channel(7), None, "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ch.Mask(); got != tt.want {
				t.Errorf("Mask() = %d, want %d", got, tt.want)
			}
			if got := tt.ch.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
		})
	}
}

func TestAssignMembership(t *testing.T) {
	subsets := [][]Channel{
		nil,
		{Base},
		{Bloom},
		{Overlay},
		{Base, Bloom},
		{Bloom, Overlay},
		{Base, Bloom, Overlay},
	}
	for _, chs := range subsets {
		o := &object{}
		o.set.Assign(Base, Bloom, Overlay) // Assign must replace, not merge
		Assign(o, chs...)
		m := MaskOf(chs...)
		t.Run(m.String(), func(t *testing.T) {
			for _, c := range Channels {
				want := false
				for _, in := range chs {
					if in == c {
						want = true
					}
				}
				if got := o.Layers().Test(c); got != want {
					t.Errorf("Test(%v) = %v, want %v", c, got, want)
				}
			}
			if got := o.Layers().Mask().Empty(); got != (len(chs) == 0) {
				t.Errorf("Empty() = %v for %v", got, chs)
			}
		})
	}
}

func TestSetEnableDisableToggle(t *testing.T) {
	var s Set
	s.Enable(Bloom)
	s.Enable(Overlay)
	s.Disable(Overlay)
	s.Toggle(Base)
	if got := s.Mask(); got != MaskOf(Base, Bloom) {
		t.Errorf("mask = %v, want base|bloom", got)
	}
	s.Toggle(Base)
	if s.Test(Base) {
		t.Error("Toggle twice should remove Base")
	}
	s.SetMask(0xFF)
	if s.Mask() != All {
		t.Errorf("SetMask should drop unknown bits, got %08b", s.Mask())
	}
}

func TestMaskString(t *testing.T) {
	if got := None.String(); got != "none" {
		t.Errorf("None.String() = %q", got)
	}
	if got := All.String(); got != "base|bloom|overlay" {
		t.Errorf("All.String() = %q", got)
	}
}
