// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render draws one channel of a scene into an offscreen image.
//
// # Targets
//
//   - FloatTarget: linear, premultiplied RGBA float32. Every channel renders
//     into one; values above 1 survive until tone mapping.
//   - PixmapTarget: 8-bit *image.RGBA framebuffer written by the compositor.
//
// # Channel renderer
//
// A ChannelRenderer owns a pair of FloatTargets and a depth buffer for one
// layer.Channel. Render clears them, asks every object tagged with the
// channel to draw itself through a software rasterizer, then runs the
// renderer's filters, ping-ponging between the two targets:
//
//	r, _ := render.NewChannelRenderer(layer.Bloom, w, h, render.WithFilters(bloom))
//	img, err := r.Render(sc, cam)
//
// The channel is an argument of the renderer, never state on the camera, so
// renders of different channels are independent of call order.
package render
