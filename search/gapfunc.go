package search

import (
	"github.com/gogpu/glyphfit/density"
	"github.com/gogpu/glyphfit/sdf"
)

// MarginGapFunc returns a GapFunc measuring the margin strip of width gap
// that ends at column edge, over rows [0, height): columns
// [edge-gap, edge) for Left and [edge, edge+gap) for Right, clipped to the
// field. A zero or fully clipped strip measures 0.
func MarginGapFunc(f *sdf.Field, m density.Metric, side Side, edge, height int) GapFunc {
	if m == nil {
		m = density.TotalMetric
	}
	return func(gap int) (float64, error) {
		a := sdf.Rect(edge-gap, 0, edge, height)
		if side == Right {
			a = sdf.Rect(edge, 0, edge+gap, height)
		}
		a.X1 = max(a.X1, 0)
		a.X2 = min(a.X2, f.Width)
		if a.X1 >= a.X2 {
			return 0, nil
		}
		return m.Evaluate(f, a)
	}
}
