// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package filter

import (
	"fmt"
	"testing"

	"github.com/chewxy/math32"
)

func TestGaussianKernelIdentity(t *testing.T) {
	for _, r := range []float32{0, -5} {
		k := GaussianKernel(r)
		if len(k) != 1 || k[0] != 1 {
			t.Errorf("GaussianKernel(%v) = %v, want [1]", r, k)
		}
	}
}

func TestKernelsNormalizedAndSymmetric(t *testing.T) {
	kernels := map[string][]float32{
		"gaussian 1":   GaussianKernel(1),
		"gaussian 2.5": GaussianKernel(2.5),
		"gaussian 10":  GaussianKernel(10),
	}
	for _, size := range bloomKernelSizes {
		kernels[fmt.Sprintf("bloom %d", size)] = bloomKernel(size)
	}
	for name, k := range kernels {
		t.Run(name, func(t *testing.T) {
			if len(k)%2 != 1 {
				t.Fatalf("len = %d, want odd", len(k))
			}
			var sum float32
			for _, v := range k {
				sum += v
			}
			if math32.Abs(sum-1) > 1e-5 {
				t.Errorf("sum = %v, want 1", sum)
			}
			for i := 0; i < len(k)/2; i++ {
				if k[i] != k[len(k)-1-i] {
					t.Errorf("k[%d] = %v != k[%d] = %v", i, k[i], len(k)-1-i, k[len(k)-1-i])
				}
			}
		})
	}
}

func TestBloomKernelTaps(t *testing.T) {
	for _, size := range bloomKernelSizes {
		if got := len(bloomKernel(size)); got != 2*size-1 {
			t.Errorf("bloomKernel(%d) has %d taps, want %d", size, got, 2*size-1)
		}
	}
}

func TestCachedKernelReused(t *testing.T) {
	a := CachedGaussianKernel(3)
	b := CachedGaussianKernel(3)
	if &a[0] != &b[0] {
		t.Error("cached kernel was rebuilt")
	}
	if c := cachedBloomKernel(3); len(c) != 5 {
		t.Errorf("cachedBloomKernel(3) has %d taps, want 5", len(c))
	}
}
