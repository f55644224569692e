// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface defines the host surface a frame is presented to.
//
// A host reports its logical size and device pixel ratio and accepts one
// finished 8-bit frame per displayed frame. The pipeline queries the size
// every frame, so a host may change it at any time.
//
// # Implementations
//
//   - ImageSurface keeps the last frame in memory (headless, tests)
//   - FileSurface writes every Nth frame to an image file
//   - termsurface.Surface draws into a terminal with half-block cells
//
// # Registry
//
// Backends register by name so a binary can pick one at run time:
//
//	s, err := surface.Open("png", surface.Options{Width: 800, Height: 600, Path: "frame.png"})
//
// An empty name opens the highest-priority backend available on the host.
// termsurface registers itself as "term" when imported and is available
// only when stdout is a terminal; otherwise "png" wins.
package surface
