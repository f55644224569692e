// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package layer classifies renderable objects into visual channels.
//
// Every object carries a Set of channels. A channel render observes only
// the objects whose set contains that channel; an object with an empty set
// is invisible in every channel. There is no default assignment.
package layer

import "strings"

// Channel identifies one rendering pass of the pipeline.
type Channel uint8

// Channel constants. The value is the bit index inside a Mask.
const (
	// Base is the regular scene render.
	Base Channel = iota

	// Bloom is the emissive render that is passed through the glow filter.
	Bloom

	// Overlay is the HUD/marker render drawn on top of everything else,
	// unaffected by bloom and tone mapping.
	Overlay

	channelCount
)

// NumChannels is the number of defined channels.
const NumChannels = int(channelCount)

// Channels lists all channels in render order.
var Channels = [...]Channel{Base, Bloom, Overlay}

// String returns a human-readable name for the channel.
func (c Channel) String() string {
	switch c {
	case Base:
		return "base"
	case Bloom:
		return "bloom"
	case Overlay:
		return "overlay"
	default:
		return "unknown"
	}
}

// Valid reports whether c is one of the defined channels.
func (c Channel) Valid() bool {
	return c < channelCount
}

// Mask returns the single-bit mask for c. Invalid channels map to None.
func (c Channel) Mask() Mask {
	if !c.Valid() {
		return None
	}
	return Mask(1) << c
}

// Mask is a bit set of channels.
// Masks combine via OR and exclude via AND NOT.
type Mask uint8

// Mask constants.
const (
	None Mask = 0
	All  Mask = 1<<channelCount - 1
)

// MaskOf builds a mask from the given channels.
func MaskOf(chs ...Channel) Mask {
	var m Mask
	for _, c := range chs {
		m |= c.Mask()
	}
	return m
}

// Has reports whether c is in the mask.
func (m Mask) Has(c Channel) bool {
	return c.Valid() && m&c.Mask() != 0
}

// Empty reports whether the mask contains no channel.
func (m Mask) Empty() bool {
	return m&All == 0
}

// Channels returns the channels in the mask in render order.
func (m Mask) Channels() []Channel {
	out := make([]Channel, 0, channelCount)
	for _, c := range Channels {
		if m.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// String returns the channel names joined by "|", or "none".
func (m Mask) String() string {
	chs := m.Channels()
	if len(chs) == 0 {
		return "none"
	}
	names := make([]string, len(chs))
	for i, c := range chs {
		names[i] = c.String()
	}
	return strings.Join(names, "|")
}

// Set is the per-object channel membership.
// The zero value is an empty set.
type Set struct {
	mask Mask
}

// Assign replaces the membership with exactly the given channels.
func (s *Set) Assign(chs ...Channel) {
	s.mask = MaskOf(chs...)
}

// Enable adds c to the set.
func (s *Set) Enable(c Channel) {
	s.mask |= c.Mask()
}

// Disable removes c from the set.
func (s *Set) Disable(c Channel) {
	s.mask &^= c.Mask()
}

// Toggle flips membership of c.
func (s *Set) Toggle(c Channel) {
	s.mask ^= c.Mask()
}

// Test reports whether c is in the set.
func (s *Set) Test(c Channel) bool {
	return s.mask.Has(c)
}

// Mask returns the membership as a Mask.
func (s *Set) Mask() Mask {
	return s.mask
}

// SetMask replaces the membership with m. Bits outside All are dropped.
func (s *Set) SetMask(m Mask) {
	s.mask = m & All
}

// Tagged is implemented by anything that carries a channel Set.
type Tagged interface {
	Layers() *Set
}

// Assign sets obj's channels to exactly chs.
// Calling Assign with no channels makes obj invisible in every channel.
func Assign(obj Tagged, chs ...Channel) {
	obj.Layers().Assign(chs...)
}
