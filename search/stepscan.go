package search

import (
	"fmt"
	"math"

	"github.com/gogpu/glyphfit/density"
	"github.com/gogpu/glyphfit/sdf"
)

// DefaultStepSize is the width increment of a step scan in pixels.
const DefaultStepSize = 2

// Side names the half of the field a scan widens into.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Side) UnmarshalText(b []byte) error {
	switch string(b) {
	case "left":
		*s = Left
	case "right":
		*s = Right
	default:
		return fmt.Errorf("search: unknown side %q", b)
	}
	return nil
}

// Step is one evaluated rectangle of a scan.
type Step struct {
	Width   int      `json:"width" yaml:"width"`
	Area    sdf.Area `json:"area" yaml:"area"`
	Density float64  `json:"density" yaml:"density"`
	Diff    float64  `json:"diff" yaml:"diff"`
}

// SideResult is the outcome of scanning one side.
// Trace lists every step in order of increasing width.
type SideResult struct {
	Side    Side     `json:"side" yaml:"side"`
	CenterX int      `json:"center_x" yaml:"center_x"`
	Area    sdf.Area `json:"area" yaml:"area"`
	Density float64  `json:"density" yaml:"density"`
	Diff    float64  `json:"diff" yaml:"diff"`
	Trace   []Step   `json:"trace" yaml:"trace"`

	// Empty is set when the side had no candidate rectangle; Area, Density
	// and Diff are then zero.
	Empty bool `json:"empty,omitempty" yaml:"empty,omitempty"`
}

// Err returns an *EmptySearchSpaceError for an empty side and nil otherwise.
func (r SideResult) Err() error {
	if !r.Empty {
		return nil
	}
	return &EmptySearchSpaceError{Side: r.Side, CenterX: r.CenterX}
}

// Width returns the width of the chosen area.
func (r SideResult) Width() int {
	return r.Area.Dx()
}

// Bearing returns the side bearing implied by the chosen area: its width
// minus the glyph's own ink width.
func (r SideResult) Bearing(inkWidth int) int {
	return r.Area.Dx() - inkWidth
}

// Result holds both sides of a step scan for one target.
type Result struct {
	Target float64    `json:"target" yaml:"target"`
	Left   SideResult `json:"left" yaml:"left"`
	Right  SideResult `json:"right" yaml:"right"`
}

// Scanner runs step scans with a fixed step size and metric.
// A Scanner holds no mutable state and may be shared between goroutines.
type Scanner struct {
	StepSize int
	Metric   density.Metric
}

// NewScanner returns a scanner. A nil metric selects density.TotalMetric.
func NewScanner(stepSize int, m density.Metric) *Scanner {
	if m == nil {
		m = density.TotalMetric
	}
	return &Scanner{StepSize: stepSize, Metric: m}
}

// SearchOptimalAreas scans both sides of centerX using total density.
// It is shorthand for NewScanner(stepSize, nil).Search.
func SearchOptimalAreas(f *sdf.Field, centerX, height int, target float64, stepSize int) (Result, error) {
	return NewScanner(stepSize, nil).Search(f, centerX, height, target)
}

// Search scans left and right of centerX over rows [0, height) and returns
// the rectangle on each side whose density is closest to target.
//
// An error is returned only for invalid arguments or a failing metric; a
// side without candidates is reported through SideResult.Empty.
func (s *Scanner) Search(f *sdf.Field, centerX, height int, target float64) (Result, error) {
	left, err := s.ScanSide(f, Left, centerX, height, target)
	if err != nil {
		return Result{}, err
	}
	right, err := s.ScanSide(f, Right, centerX, height, target)
	if err != nil {
		return Result{}, err
	}
	return Result{Target: target, Left: left, Right: right}, nil
}

// ScanSide scans a single side. Every step up to the field edge is
// evaluated; the earliest step with the smallest difference wins.
//
// A rectangle may end exactly on the field edge on either side. On the
// right this admits centerX+width == f.Width, which a strict edge test
// rejects, so a right-side trace can hold one step more than one produced
// that way.
func (s *Scanner) ScanSide(f *sdf.Field, side Side, centerX, height int, target float64) (SideResult, error) {
	if s.StepSize < 1 {
		return SideResult{}, ErrInvalidStep
	}
	if s.Metric == nil {
		return SideResult{}, ErrNilMetric
	}
	if err := f.Check(sdf.Rect(0, 0, f.Width, height)); err != nil {
		return SideResult{}, fmt.Errorf("search: scan height %d: %w", height, err)
	}

	trace, err := s.scan(f, side, centerX, height, target)
	if err != nil {
		return SideResult{}, err
	}

	res := SideResult{Side: side, CenterX: centerX, Trace: trace}
	best, ok := closest(trace)
	if !ok {
		res.Empty = true
		slogger().Warn("step scan: empty side",
			"side", side, "center", centerX, "width", f.Width)
		return res, nil
	}

	res.Area = best.Area
	res.Density = best.Density
	res.Diff = best.Diff
	slogger().Debug("step scan",
		"side", side, "metric", s.Metric.Name(), "target", target,
		"steps", len(trace), "width", best.Width, "density", best.Density, "diff", best.Diff)
	return res, nil
}

// scan evaluates the widening rectangles of one side in order.
func (s *Scanner) scan(f *sdf.Field, side Side, centerX, height int, target float64) ([]Step, error) {
	var trace []Step
	for width := s.StepSize; ; width += s.StepSize {
		a, ok := sideArea(side, centerX, width, height, f.Width)
		if !ok {
			return trace, nil
		}
		d, err := s.Metric.Evaluate(f, a)
		if err != nil {
			return nil, fmt.Errorf("search: %s step %d: %w", side, width, err)
		}
		trace = append(trace, Step{
			Width:   width,
			Area:    a,
			Density: d,
			Diff:    math.Abs(d - target),
		})
	}
}

// sideArea returns the rectangle of the given width next to centerX, or
// false if it would leave [0, fieldWidth].
func sideArea(side Side, centerX, width, height, fieldWidth int) (sdf.Area, bool) {
	if side == Left {
		x1 := centerX - width
		if x1 < 0 || centerX > fieldWidth {
			return sdf.Area{}, false
		}
		return sdf.Rect(x1, 0, centerX, height), true
	}
	x2 := centerX + width
	if centerX < 0 || x2 > fieldWidth {
		return sdf.Area{}, false
	}
	return sdf.Rect(centerX, 0, x2, height), true
}

// closest returns the first step with the minimum Diff.
func closest(trace []Step) (Step, bool) {
	if len(trace) == 0 {
		return Step{}, false
	}
	best := trace[0]
	for _, st := range trace[1:] {
		if st.Diff < best.Diff {
			best = st
		}
	}
	return best, true
}
