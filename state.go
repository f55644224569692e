// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package nebula

import "fmt"

// State is the Frame Driver's position within a frame.
type State uint8

// Frame states in execution order. Idle is the state between frames.
const (
	Idle State = iota
	UpdatingInput
	ReconcilingViewport
	RenderingBase
	RenderingBloom
	RenderingOverlay
	Compositing
	Presented
)

var stateNames = [...]string{
	Idle:                "Idle",
	UpdatingInput:       "UpdatingInput",
	ReconcilingViewport: "ReconcilingViewport",
	RenderingBase:       "RenderingBase",
	RenderingBloom:      "RenderingBloom",
	RenderingOverlay:    "RenderingOverlay",
	Compositing:         "Compositing",
	Presented:           "Presented",
}

// String returns the state name.
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}
