package filter

// Axis selects the direction of a derivative.
type Axis int

const (
	// AxisX differentiates along columns (horizontal gradient).
	AxisX Axis = iota
	// AxisY differentiates along rows (vertical gradient).
	AxisY
)

// Sobel returns the 3x3 Sobel derivative of the w x h grid src along axis:
// a central difference [-1 0 1] along the axis combined with [1 2 1]
// smoothing across it.
//
// Boundaries are mirrored about the edge (index -1 reads 0, index n reads
// n-1), which matches the "reflect" mode of common array libraries.
func Sobel(src []float64, w, h int, axis Axis) []float64 {
	out := make([]float64, w*h)
	if w == 0 || h == 0 {
		return out
	}

	at := func(x, y int) float64 {
		return src[reflect(y, h)*w+reflect(x, w)]
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var g float64
			if axis == AxisX {
				g = (at(x+1, y-1) - at(x-1, y-1)) +
					2*(at(x+1, y)-at(x-1, y)) +
					(at(x+1, y+1) - at(x-1, y+1))
			} else {
				g = (at(x-1, y+1) - at(x-1, y-1)) +
					2*(at(x, y+1)-at(x, y-1)) +
					(at(x+1, y+1) - at(x+1, y-1))
			}
			out[y*w+x] = g
		}
	}
	return out
}

// reflect maps an index one step outside [0, n) back inside by mirroring
// about the edge.
func reflect(i, n int) int {
	switch {
	case n == 1:
		return 0
	case i < 0:
		return -i - 1
	case i >= n:
		return 2*n - i - 1
	}
	return i
}
