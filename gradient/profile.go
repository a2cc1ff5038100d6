package gradient

import (
	"fmt"

	"github.com/gogpu/glyphfit/sdf"
)

// Axis selects the direction a profile runs along.
type Axis int

const (
	// Horizontal yields one value per column.
	Horizontal Axis = iota
	// Vertical yields one value per row.
	Vertical
)

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// Profile returns the mean field value of each column (Horizontal) or each
// row (Vertical) of the zone a. It is meant for plotting, not searching.
func Profile(f *sdf.Field, a sdf.Area, axis Axis) ([]float64, error) {
	if err := f.Check(a); err != nil {
		return nil, err
	}

	if axis == Horizontal {
		out := make([]float64, a.Dx())
		for y := a.Y1; y < a.Y2; y++ {
			for i, v := range f.Row(y)[a.X1:a.X2] {
				out[i] += float64(v)
			}
		}
		for i := range out {
			out[i] /= float64(a.Dy())
		}
		return out, nil
	}

	out := make([]float64, a.Dy())
	for y := a.Y1; y < a.Y2; y++ {
		var sum float64
		for _, v := range f.Row(y)[a.X1:a.X2] {
			sum += float64(v)
		}
		out[y-a.Y1] = sum / float64(a.Dx())
	}
	return out, nil
}
