// Package gradient analyzes how the distance field changes across a zone.
//
// Smooth zones (small gradient magnitude) read as even texture; rough zones
// (large magnitude) contain sharp transitions such as stems and bowls.
// [ConsistencyScore] folds the statistics into a bounded rank so candidate
// spacings can be compared by evenness rather than raw density.
package gradient

import (
	"math"

	"github.com/gogpu/glyphfit/internal/filter"
	"github.com/gogpu/glyphfit/sdf"
)

// Magnitude thresholds for classifying pixels.
const (
	SmoothThreshold = 0.5
	RoughThreshold  = 2.0
)

// Stats summarizes the gradient magnitude over a zone.
type Stats struct {
	Mean     float64 `json:"mean_gradient" yaml:"mean_gradient"`
	Max      float64 `json:"max_gradient" yaml:"max_gradient"`
	Variance float64 `json:"gradient_variance" yaml:"gradient_variance"`

	SmoothRegions   int     `json:"smooth_regions" yaml:"smooth_regions"`
	RoughRegions    int     `json:"rough_regions" yaml:"rough_regions"`
	SmoothnessRatio float64 `json:"smoothness_ratio" yaml:"smoothness_ratio"`
	RoughnessRatio  float64 `json:"roughness_ratio" yaml:"roughness_ratio"`
	TotalPixels     int     `json:"total_pixels" yaml:"total_pixels"`
}

// AxisStats summarizes one directional derivative.
type AxisStats struct {
	// Mean and Max are taken over absolute values, Variance over signed ones.
	Mean     float64 `json:"mean" yaml:"mean"`
	Variance float64 `json:"variance" yaml:"variance"`
	Max      float64 `json:"max" yaml:"max"`
}

// DirectionalStats holds per-axis derivative statistics.
type DirectionalStats struct {
	Horizontal AxisStats `json:"horizontal_gradient" yaml:"horizontal_gradient"`
	Vertical   AxisStats `json:"vertical_gradient" yaml:"vertical_gradient"`
}

// Analyze computes Sobel gradients over the zone a of f and summarizes their
// magnitude. The zone is cut out before filtering, so its borders are
// mirrored rather than reading neighbouring pixels.
func Analyze(f *sdf.Field, a sdf.Area) (Stats, error) {
	gx, gy, err := gradients(f, a)
	if err != nil {
		return Stats{}, err
	}

	mag := make([]float64, len(gx))
	for i := range gx {
		mag[i] = math.Sqrt(gx[i]*gx[i] + gy[i]*gy[i])
	}

	s := Stats{TotalPixels: len(mag)}
	s.Mean, s.Variance = meanVariance(mag)
	for _, m := range mag {
		s.Max = max(s.Max, m)
		if m < SmoothThreshold {
			s.SmoothRegions++
		}
		if m > RoughThreshold {
			s.RoughRegions++
		}
	}
	s.SmoothnessRatio = float64(s.SmoothRegions) / float64(s.TotalPixels)
	s.RoughnessRatio = float64(s.RoughRegions) / float64(s.TotalPixels)
	return s, nil
}

// Directional reports horizontal and vertical derivative statistics for the
// zone a of f.
func Directional(f *sdf.Field, a sdf.Area) (DirectionalStats, error) {
	gx, gy, err := gradients(f, a)
	if err != nil {
		return DirectionalStats{}, err
	}
	return DirectionalStats{
		Horizontal: axisStats(gx),
		Vertical:   axisStats(gy),
	}, nil
}

// ConsistencyScore ranks a zone by visual evenness on a 0..100 scale:
// variance and roughness lower it, smoothness raises it.
func ConsistencyScore(s Stats) float64 {
	score := 100 - s.Variance*10 - s.RoughnessRatio*5 + s.SmoothnessRatio*2
	return max(0, min(100, score))
}

func gradients(f *sdf.Field, a sdf.Area) (gx, gy []float64, err error) {
	if err := f.Check(a); err != nil {
		return nil, nil, err
	}
	zone := extract(f, a)
	w, h := a.Dx(), a.Dy()
	return filter.Sobel(zone, w, h, filter.AxisX), filter.Sobel(zone, w, h, filter.AxisY), nil
}

func extract(f *sdf.Field, a sdf.Area) []float64 {
	zone := make([]float64, 0, a.Pixels())
	for y := a.Y1; y < a.Y2; y++ {
		for _, v := range f.Row(y)[a.X1:a.X2] {
			zone = append(zone, float64(v))
		}
	}
	return zone
}

func axisStats(g []float64) AxisStats {
	var s AxisStats
	var sumAbs float64
	for _, v := range g {
		av := math.Abs(v)
		sumAbs += av
		s.Max = max(s.Max, av)
	}
	s.Mean = sumAbs / float64(len(g))
	_, s.Variance = meanVariance(g)
	return s
}

// meanVariance returns the mean and population variance of v.
func meanVariance(v []float64) (mean, variance float64) {
	for _, x := range v {
		mean += x
	}
	mean /= float64(len(v))
	for _, x := range v {
		d := x - mean
		variance += d * d
	}
	variance /= float64(len(v))
	return mean, variance
}
