package filter

import (
	"math"
	"sync"
)

// KernelRadius returns the half-width of the Gaussian kernel for radius:
// three standard deviations, rounded up.
func KernelRadius(radius float64) int {
	if radius <= 0 {
		return 0
	}
	return int(math.Ceil(radius * 3))
}

// GaussianKernel returns a normalized 1D Gaussian with sigma = radius and
// 2*KernelRadius(radius)+1 taps. A radius of zero or less gives the
// identity kernel [1].
func GaussianKernel(radius float64) []float32 {
	half := KernelRadius(radius)
	if half == 0 {
		return []float32{1}
	}

	weights := make([]float64, half+1)
	denom := 2 * radius * radius
	sum := 0.0
	for d := range weights {
		weights[d] = math.Exp(-float64(d*d) / denom)
		if d == 0 {
			sum += weights[d]
		} else {
			sum += 2 * weights[d]
		}
	}

	kernel := make([]float32, 2*half+1)
	for d, w := range weights {
		v := float32(w / sum)
		kernel[half-d] = v
		kernel[half+d] = v
	}
	return kernel
}

// kernelCache memoizes kernels by radius in hundredths of a pixel. It is
// emptied when full.
type kernelCache struct {
	mu     sync.RWMutex
	cache  map[int][]float32
	maxLen int
}

var defaultKernelCache = newKernelCache(32)

func newKernelCache(maxLen int) *kernelCache {
	return &kernelCache{cache: make(map[int][]float32), maxLen: maxLen}
}

func (c *kernelCache) get(radius float64) []float32 {
	key := int(math.Round(radius * 100))

	c.mu.RLock()
	k, ok := c.cache[key]
	c.mu.RUnlock()
	if ok {
		return k
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if k, ok := c.cache[key]; ok {
		return k
	}
	if len(c.cache) >= c.maxLen {
		clear(c.cache)
	}
	k = GaussianKernel(radius)
	c.cache[key] = k
	return k
}

// CachedGaussianKernel returns a shared kernel for radius. The slice must
// not be modified.
func CachedGaussianKernel(radius float64) []float32 {
	return defaultKernelCache.get(radius)
}
