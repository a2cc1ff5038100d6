package search

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/glyphfit/density"
	"github.com/gogpu/glyphfit/sdf"
)

// columnField builds a field where every row holds cols.
func columnField(height int, cols ...float32) *sdf.Field {
	w := len(cols)
	f := &sdf.Field{Data: make([]float32, w*height), Width: w, Height: height}
	for y := 0; y < height; y++ {
		copy(f.Data[y*w:], cols)
	}
	return f
}

func TestSearchOptimalAreasTrace(t *testing.T) {
	// Center 4; left columns 3,2,1,0 and right columns 4..7.
	f := columnField(2, 1, 1, 1, 1, 2, 2, 2, 2)

	res, err := SearchOptimalAreas(f, 4, 2, 6, 2)
	if err != nil {
		t.Fatalf("SearchOptimalAreas() error: %v", err)
	}

	wantLeft := []Step{
		{Width: 2, Area: sdf.Rect(2, 0, 4, 2), Density: 4, Diff: 2},
		{Width: 4, Area: sdf.Rect(0, 0, 4, 2), Density: 8, Diff: 2},
	}
	if diff := cmp.Diff(wantLeft, res.Left.Trace); diff != "" {
		t.Errorf("left trace mismatch (-want +got):\n%s", diff)
	}
	// Equal differences: the narrower step wins.
	if res.Left.Area != sdf.Rect(2, 0, 4, 2) {
		t.Errorf("left area = %v, want narrowest tie", res.Left.Area)
	}

	wantRight := []Step{
		{Width: 2, Area: sdf.Rect(4, 0, 6, 2), Density: 8, Diff: 2},
		{Width: 4, Area: sdf.Rect(4, 0, 8, 2), Density: 16, Diff: 10},
	}
	if diff := cmp.Diff(wantRight, res.Right.Trace); diff != "" {
		t.Errorf("right trace mismatch (-want +got):\n%s", diff)
	}
	if res.Right.Density != 8 || res.Right.Diff != 2 {
		t.Errorf("right = (%v, %v), want (8, 2)", res.Right.Density, res.Right.Diff)
	}
	if res.Target != 6 {
		t.Errorf("Target = %v, want 6", res.Target)
	}
}

func TestScanIsExhaustive(t *testing.T) {
	// Two separated blobs to the right of center: cumulative density
	// peaks at 10 (a local minimum of the difference), dips, then climbs
	// through the target at width 9.
	cols := []float32{0, 5, 5, -5, -5, 3, 3, 3, 3, 3, 3, 3}
	f := columnField(1, cols...)
	const target = 12

	res, err := NewScanner(1, density.TotalMetric).ScanSide(f, Right, 0, 1, target)
	if err != nil {
		t.Fatalf("ScanSide() error: %v", err)
	}
	if len(res.Trace) != len(cols) {
		t.Fatalf("trace length = %d, want %d", len(res.Trace), len(cols))
	}

	best := res.Trace[0]
	for _, st := range res.Trace {
		if st.Diff < best.Diff {
			best = st
		}
	}
	if res.Diff != best.Diff || res.Area != best.Area {
		t.Errorf("chosen = %v (diff %v), want global minimum %v (diff %v)", res.Area, res.Diff, best.Area, best.Diff)
	}
	if res.Width() != 9 {
		t.Errorf("Width() = %d, want 9", res.Width())
	}
	if res.Diff != 0 {
		t.Errorf("Diff = %v, want 0", res.Diff)
	}
}

func TestScanRightReachesFieldEdge(t *testing.T) {
	f := columnField(1, 0, 0, 0, 0, 0, 1, 1, 1)

	res, err := NewScanner(1, density.TotalMetric).ScanSide(f, Right, 5, 1, 3)
	if err != nil {
		t.Fatalf("ScanSide() error: %v", err)
	}
	if len(res.Trace) != 3 {
		t.Fatalf("trace length = %d, want 3", len(res.Trace))
	}
	last := res.Trace[len(res.Trace)-1]
	if last.Area != sdf.Rect(5, 0, 8, 1) {
		t.Errorf("last area = %v, want it to end on the field edge", last.Area)
	}
	if res.Area != last.Area || res.Diff != 0 {
		t.Errorf("chosen = %v (diff %v), want %v (diff 0)", res.Area, res.Diff, last.Area)
	}
}

func TestScanEmptySide(t *testing.T) {
	f := columnField(3, 1, 2, 3, 4, 5, 6)

	res, err := SearchOptimalAreas(f, 0, 3, 10, 2)
	if err != nil {
		t.Fatalf("SearchOptimalAreas() error: %v", err)
	}
	if !res.Left.Empty {
		t.Error("Left.Empty = false, want true")
	}
	if len(res.Left.Trace) != 0 {
		t.Errorf("Left.Trace = %v, want empty", res.Left.Trace)
	}
	var ee *EmptySearchSpaceError
	if !errors.As(res.Left.Err(), &ee) {
		t.Fatalf("Left.Err() = %v, want *EmptySearchSpaceError", res.Left.Err())
	}
	if ee.Side != Left || ee.CenterX != 0 {
		t.Errorf("error = %+v, want left side at 0", ee)
	}
	if res.Right.Empty || res.Right.Err() != nil {
		t.Errorf("Right = %+v, want non-empty", res.Right)
	}
	if len(res.Right.Trace) != 3 {
		t.Errorf("len(Right.Trace) = %d, want 3 (widths 2, 4, 6)", len(res.Right.Trace))
	}

	res, err = SearchOptimalAreas(f, 5, 3, 10, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !errors.Is(res.Right.Err(), ErrEmptySearchSpace) {
		t.Errorf("Right.Err() = %v, want ErrEmptySearchSpace", res.Right.Err())
	}
}

func TestScanCenterOutsideField(t *testing.T) {
	f := columnField(2, 1, 1, 1, 1)
	for _, center := range []int{-3, 9} {
		res, err := SearchOptimalAreas(f, center, 2, 0, 1)
		if err != nil {
			t.Fatalf("center %d: error %v", center, err)
		}
		if !res.Left.Empty || !res.Right.Empty {
			t.Errorf("center %d: empty = (%v, %v), want both", center, res.Left.Empty, res.Right.Empty)
		}
	}
}

func TestScanMeanMetric(t *testing.T) {
	f := columnField(2, 3, 3, 1, 1)
	res, err := NewScanner(1, density.MeanMetric).ScanSide(f, Left, 4, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	// Widths 1..4 give means 1, 1, floor(5/3)=1, 2.
	if res.Width() != 4 || res.Density != 2 {
		t.Errorf("chosen width %d density %v, want 4 and 2", res.Width(), res.Density)
	}
}

func TestScanInvalidArguments(t *testing.T) {
	f := columnField(2, 1, 1, 1, 1)

	if _, err := SearchOptimalAreas(f, 2, 2, 0, 0); !errors.Is(err, ErrInvalidStep) {
		t.Errorf("step 0: error = %v, want ErrInvalidStep", err)
	}
	if _, err := SearchOptimalAreas(f, 2, 3, 0, 1); !errors.Is(err, sdf.ErrInvalidArea) {
		t.Errorf("height 3: error = %v, want ErrInvalidArea", err)
	}
	s := &Scanner{StepSize: 1}
	if _, err := s.Search(f, 2, 2, 0); !errors.Is(err, ErrNilMetric) {
		t.Errorf("nil metric: error = %v, want ErrNilMetric", err)
	}
}

func TestScanMetricError(t *testing.T) {
	f := columnField(1, 1, 1, 1, 1)
	boom := errors.New("boom")
	m := density.MetricFunc{ID: "boom", Fn: func(*sdf.Field, sdf.Area) (float64, error) { return 0, boom }}

	if _, err := NewScanner(1, m).Search(f, 2, 1, 0); !errors.Is(err, boom) {
		t.Errorf("error = %v, want boom", err)
	}
}

func TestSideResultBearing(t *testing.T) {
	r := SideResult{Area: sdf.Rect(10, 0, 50, 8)}
	if got := r.Bearing(28); got != 12 {
		t.Errorf("Bearing(28) = %d, want 12", got)
	}
}

func TestMarginGapFunc(t *testing.T) {
	f := columnField(2, -1, -2, -3, 4, 4, -5)
	left := MarginGapFunc(f, nil, Left, 3, 2)
	right := MarginGapFunc(f, nil, Right, 5, 2)

	tests := []struct {
		name string
		fn   GapFunc
		gap  int
		want float64
	}{
		{"left zero", left, 0, 0},
		{"left one", left, 1, -6},
		{"left all", left, 3, -12},
		{"left clipped", left, 10, -12},
		{"right one", right, 1, -10},
		{"right clipped", right, 4, -10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(tt.gap)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("gap %d = %v, want %v", tt.gap, got, tt.want)
			}
		})
	}
}
