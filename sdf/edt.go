package sdf

import "math"

// distanceTransform returns the exact Euclidean distance from every pixel to
// the nearest site pixel. Sites have distance 0. If there are no sites at
// all the result is all zeros.
//
// The transform is separable: a 1D squared-distance pass down each column
// followed by one along each row (Felzenszwalb & Huttenlocher, 2012).
func distanceTransform(width, height int, site func(i int) bool) []float64 {
	out := make([]float64, width*height)

	// far exceeds every squared distance inside the grid, standing in for
	// infinity while keeping the envelope arithmetic exact.
	far := float64(width*width+height*height) + 1

	found := false
	for i := range out {
		if site(i) {
			found = true
		} else {
			out[i] = far
		}
	}
	if !found {
		clear(out)
		return out
	}

	n := max(width, height)
	f := make([]float64, n)
	d := make([]float64, n)
	v := make([]int, n)
	z := make([]float64, n+1)

	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			f[y] = out[y*width+x]
		}
		edt1D(f[:height], d[:height], v, z)
		for y := 0; y < height; y++ {
			out[y*width+x] = d[y]
		}
	}

	for y := 0; y < height; y++ {
		row := out[y*width : (y+1)*width]
		copy(f, row)
		edt1D(f[:width], d[:width], v, z)
		for x := range row {
			row[x] = math.Sqrt(d[x])
		}
	}
	return out
}

// edt1D computes the squared distance transform of the sampled function f
// into d using the lower envelope of parabolas. v and z are scratch buffers
// of length at least len(f) and len(f)+1.
func edt1D(f, d []float64, v []int, z []float64) {
	n := len(f)
	if n == 0 {
		return
	}

	k := 0
	v[0] = 0
	z[0] = math.Inf(-1)
	z[1] = math.Inf(1)

	for q := 1; q < n; q++ {
		fq := f[q] + float64(q*q)
		s := intersect(fq, q, f, v[k])
		for s <= z[k] {
			k--
			s = intersect(fq, q, f, v[k])
		}
		k++
		v[k] = q
		z[k] = s
		z[k+1] = math.Inf(1)
	}

	k = 0
	for q := 0; q < n; q++ {
		for z[k+1] < float64(q) {
			k++
		}
		dq := float64(q - v[k])
		d[q] = dq*dq + f[v[k]]
	}
}

// intersect returns the abscissa where the parabola rooted at q meets the
// one rooted at p.
func intersect(fq float64, q int, f []float64, p int) float64 {
	fp := f[p] + float64(p*p)
	return (fq - fp) / float64(2*q-2*p)
}
