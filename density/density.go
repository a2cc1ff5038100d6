// Package density measures the visual density of rectangular zones of a
// signed distance field.
//
// The density of a zone is the sum of its SDF values: negative when the
// zone is mostly outside the glyph, positive when mostly inside. It is used
// as a proxy for perceived ink coverage when spacing glyphs.
package density

import (
	"math"

	"github.com/gogpu/glyphfit/sdf"
)

// Total returns the sum of all field values inside a.
func Total(f *sdf.Field, a sdf.Area) (float64, error) {
	if err := f.Check(a); err != nil {
		return 0, err
	}
	var sum float64
	for y := a.Y1; y < a.Y2; y++ {
		for _, v := range f.Row(y)[a.X1:a.X2] {
			sum += float64(v)
		}
	}
	return sum, nil
}

// Mean returns Total divided by the pixel count of a, floored to an
// integral value.
func Mean(f *sdf.Field, a sdf.Area) (float64, error) {
	sum, err := Total(f, a)
	if err != nil {
		return 0, err
	}
	return math.Floor(sum / float64(a.Pixels())), nil
}

// Coverage returns the number of pixels inside a whose value is positive,
// i.e. the inked area of the zone.
func Coverage(f *sdf.Field, a sdf.Area) (float64, error) {
	if err := f.Check(a); err != nil {
		return 0, err
	}
	n := 0
	for y := a.Y1; y < a.Y2; y++ {
		for _, v := range f.Row(y)[a.X1:a.X2] {
			if v > 0 {
				n++
			}
		}
	}
	return float64(n), nil
}
