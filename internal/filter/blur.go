package filter

// Plane is a single-channel float image in row-major order.
type Plane struct {
	Width, Height int
	Pix           []float32
}

// NewPlane allocates a zeroed plane.
func NewPlane(width, height int) Plane {
	return Plane{Width: width, Height: height, Pix: make([]float32, width*height)}
}

// At returns the sample at (x, y).
func (p Plane) At(x, y int) float32 {
	return p.Pix[y*p.Width+x]
}

// Blur applies a separable Gaussian blur to src and returns the result.
// Samples outside the plane repeat the nearest edge sample.
//
// The two passes run horizontally then vertically, so the cost is
// O(w*h*r) instead of O(w*h*r^2).
func Blur(src Plane, radius float64) Plane {
	dst := NewPlane(src.Width, src.Height)
	if radius <= 0 || len(src.Pix) == 0 {
		copy(dst.Pix, src.Pix)
		return dst
	}

	kernel := CachedGaussianKernel(radius)
	temp := NewPlane(src.Width, src.Height)
	blurHorizontal(src, temp, kernel)
	blurVertical(temp, dst, kernel)
	return dst
}

func blurHorizontal(src, dst Plane, kernel []float32) {
	half := len(kernel) / 2
	w := src.Width

	for y := 0; y < src.Height; y++ {
		row := src.Pix[y*w : (y+1)*w]
		out := dst.Pix[y*w : (y+1)*w]
		for x := range out {
			var acc float32
			for k, weight := range kernel {
				kx := clampInt(x+k-half, 0, w-1)
				acc += row[kx] * weight
			}
			out[x] = acc
		}
	}
}

func blurVertical(src, dst Plane, kernel []float32) {
	half := len(kernel) / 2
	w, h := src.Width, src.Height

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var acc float32
			for k, weight := range kernel {
				ky := clampInt(y+k-half, 0, h-1)
				acc += src.Pix[ky*w+x] * weight
			}
			dst.Pix[y*w+x] = acc
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
