package density

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/glyphfit/sdf"
)

// ErrUnknownMetric is returned by ByName for names outside the metric set.
var ErrUnknownMetric = errors.New("density: unknown metric")

// Metric evaluates a zone of a field to a scalar. Search loops take a Metric
// so that new measures can be added without touching them.
type Metric interface {
	Name() string
	Evaluate(f *sdf.Field, a sdf.Area) (float64, error)
}

// MetricFunc adapts a plain function to the Metric interface.
type MetricFunc struct {
	ID string
	Fn func(f *sdf.Field, a sdf.Area) (float64, error)
}

// Name implements Metric.
func (m MetricFunc) Name() string { return m.ID }

// Evaluate implements Metric.
func (m MetricFunc) Evaluate(f *sdf.Field, a sdf.Area) (float64, error) {
	return m.Fn(f, a)
}

// Built-in metrics.
var (
	TotalMetric    Metric = MetricFunc{ID: "total", Fn: Total}
	MeanMetric     Metric = MetricFunc{ID: "mean", Fn: Mean}
	CoverageMetric Metric = MetricFunc{ID: "coverage", Fn: Coverage}
)

// Metrics returns the built-in metrics in a fixed order.
func Metrics() []Metric {
	return []Metric{TotalMetric, MeanMetric, CoverageMetric}
}

// ByName looks up a built-in metric, ignoring case.
func ByName(name string) (Metric, error) {
	for _, m := range Metrics() {
		if strings.EqualFold(m.Name(), name) {
			return m, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, name)
}
