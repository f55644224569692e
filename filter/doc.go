// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package filter provides post-processing filters for channel images:
//   - Blur: separable Gaussian blur
//   - Bloom: bright pass, blur over a mip chain, additive recombination
//
// Filters work on linear premultiplied float32 targets and implement
// render.Filter, so they can be chained on a ChannelRenderer.
package filter
