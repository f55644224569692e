// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package filter

import (
	"sync"

	"github.com/chewxy/math32"
)

// GaussianKernel generates a normalized 1D Gaussian kernel using radius as
// sigma. The kernel has 2*ceil(3*radius)+1 taps, covering 99.7% of the
// distribution. For radius <= 0 it returns the identity kernel [1].
func GaussianKernel(radius float32) []float32 {
	if radius <= 0 {
		return []float32{1}
	}
	return gaussian(radius, int(math32.Ceil(radius*3)))
}

// bloomKernel matches the separable blur of the bloom mip chain: sigma and
// tap radius both equal to size, i.e. taps -(size-1)..size-1.
func bloomKernel(size int) []float32 {
	if size <= 1 {
		return []float32{1}
	}
	return gaussian(float32(size), size-1)
}

func gaussian(sigma float32, half int) []float32 {
	kernel := make([]float32, 2*half+1)
	twoSigmaSq := 2 * sigma * sigma
	var sum float32
	for i := range kernel {
		x := float32(i - half)
		v := math32.Exp(-(x * x) / twoSigmaSq)
		kernel[i] = v
		sum += v
	}
	inv := 1 / sum
	for i := range kernel {
		kernel[i] *= inv
	}
	return kernel
}

type kernelKey struct {
	sigma int // sigma * 100
	half  int
}

// kernelCache caches computed kernels between frames.
type kernelCache struct {
	mu     sync.RWMutex
	cache  map[kernelKey][]float32
	maxLen int
}

var defaultKernelCache = newKernelCache(64)

func newKernelCache(maxLen int) *kernelCache {
	return &kernelCache{
		cache:  make(map[kernelKey][]float32),
		maxLen: maxLen,
	}
}

func (c *kernelCache) get(key kernelKey, build func() []float32) []float32 {
	c.mu.RLock()
	if k, ok := c.cache[key]; ok {
		c.mu.RUnlock()
		return k
	}
	c.mu.RUnlock()

	k := build()

	c.mu.Lock()
	if len(c.cache) >= c.maxLen {
		// drop half; kernels are cheap to rebuild
		n := 0
		for key := range c.cache {
			delete(c.cache, key)
			n++
			if n >= c.maxLen/2 {
				break
			}
		}
	}
	c.cache[key] = k
	c.mu.Unlock()
	return k
}

// CachedGaussianKernel returns a cached GaussianKernel(radius).
func CachedGaussianKernel(radius float32) []float32 {
	key := kernelKey{sigma: int(radius * 100), half: -1}
	return defaultKernelCache.get(key, func() []float32 { return GaussianKernel(radius) })
}

func cachedBloomKernel(size int) []float32 {
	key := kernelKey{sigma: size * 100, half: size - 1}
	return defaultKernelCache.get(key, func() []float32 { return bloomKernel(size) })
}
