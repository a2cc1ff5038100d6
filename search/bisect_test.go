package search

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func linear(g int) (float64, error) { return float64(200 - g), nil }

func TestSolveGapLinear(t *testing.T) {
	res, err := SolveGap(linear, DefaultOptions())
	if err != nil {
		t.Fatalf("SolveGap() error: %v", err)
	}
	if res.Gap < 90 || res.Gap > 110 {
		t.Errorf("Gap = %d, want in [90, 110]", res.Gap)
	}
	if !res.Converged || res.Err() != nil {
		t.Errorf("Converged = %v, Err() = %v; want converged", res.Converged, res.Err())
	}
	if res.Stop != StopInBand {
		t.Errorf("Stop = %v, want %v", res.Stop, StopInBand)
	}
	if res.Direction != -1 {
		t.Errorf("Direction = %d, want -1", res.Direction)
	}
	if res.Iterations > DefaultOptions().IterationLimit {
		t.Errorf("Iterations = %d, exceeds limit", res.Iterations)
	}
}

func TestSolveGapIncreasing(t *testing.T) {
	opts := DefaultOptions()
	opts.Target = 37
	opts.Tolerance = 0.5

	res, err := SolveGap(func(g int) (float64, error) { return float64(g), nil }, opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.Gap != 37 || !res.Converged {
		t.Errorf("got gap %d converged %v, want 37 converged", res.Gap, res.Converged)
	}
	if res.Direction != 1 {
		t.Errorf("Direction = %d, want 1", res.Direction)
	}
}

func TestSolveGapIterationLimit(t *testing.T) {
	opts := Options{MinGap: 0, MaxGap: 1 << 30, Target: -1, Tolerance: 0, IterationLimit: 5}
	calls := 0
	fn := func(g int) (float64, error) {
		calls++
		return float64(g), nil
	}

	res, err := SolveGap(fn, opts)
	if err != nil {
		t.Fatalf("SolveGap() error: %v", err)
	}
	if res.Iterations != 5 || res.Stop != StopLimit {
		t.Errorf("Iterations = %d, Stop = %v; want 5, %v", res.Iterations, res.Stop, StopLimit)
	}
	if calls != 7 {
		t.Errorf("calls = %d, want 7 (two endpoints + five midpoints)", calls)
	}
	if res.Converged {
		t.Error("Converged = true, want false")
	}
	var nce *NonConvergenceError
	if !errors.As(res.Err(), &nce) {
		t.Fatalf("Err() = %v, want *NonConvergenceError", res.Err())
	}
	if nce.Gap != res.Gap || nce.Stop != StopLimit {
		t.Errorf("error = %+v, want gap %d and limit stop", nce, res.Gap)
	}
}

func TestSolveGapBandEdgeInclusive(t *testing.T) {
	opts := Options{MinGap: 0, MaxGap: 80, Target: 37, Tolerance: 3, IterationLimit: 10}

	// The first midpoint is 40, exactly Target+Tolerance.
	res, err := SolveGap(func(g int) (float64, error) { return float64(g), nil }, opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.Gap != 40 || !res.Converged || res.Stop != StopInBand {
		t.Errorf("got gap %d converged %v stop %v, want 40 converged in-band", res.Gap, res.Converged, res.Stop)
	}
	if res.Iterations != 1 {
		t.Errorf("Iterations = %d, want 1", res.Iterations)
	}
}

func TestSolveGapCollapsed(t *testing.T) {
	opts := DefaultOptions()
	opts.Target = 1000

	res, err := SolveGap(linear, opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.Stop != StopCollapsed {
		t.Errorf("Stop = %v, want %v", res.Stop, StopCollapsed)
	}
	if !errors.Is(res.Err(), ErrNonConvergence) {
		t.Errorf("Err() = %v, want ErrNonConvergence", res.Err())
	}
	if res.Iterations >= opts.IterationLimit {
		t.Errorf("Iterations = %d, want fewer than the limit", res.Iterations)
	}
}

func TestSolveGapModes(t *testing.T) {
	// 2g never equals 101. The bracket closes in on 50/51 and the last
	// midpoint is 51, but 50 was seen first with the same distance.
	fn := func(g int) (float64, error) { return float64(2 * g), nil }
	opts := Options{MinGap: 0, MaxGap: 200, Target: 101, Tolerance: 0, IterationLimit: 40}

	legacy, err := SolveGap(fn, opts)
	if err != nil {
		t.Fatal(err)
	}
	wantProbes := []Probe{
		{200, 400}, {0, 0}, {100, 200}, {50, 100}, {75, 150},
		{62, 124}, {56, 112}, {53, 106}, {51, 102},
	}
	if diff := cmp.Diff(wantProbes, legacy.Probes); diff != "" {
		t.Errorf("probes mismatch (-want +got):\n%s", diff)
	}
	if legacy.Gap != 51 || legacy.Stop != StopCollapsed {
		t.Errorf("legacy = gap %d stop %v, want 51 collapsed", legacy.Gap, legacy.Stop)
	}

	opts.Mode = ModeBest
	best, err := SolveGap(fn, opts)
	if err != nil {
		t.Fatal(err)
	}
	if best.Gap != 50 || best.Value != 100 {
		t.Errorf("best = gap %d value %v, want 50 and 100", best.Gap, best.Value)
	}
	if best.Mode != ModeBest {
		t.Errorf("Mode = %v, want best", best.Mode)
	}
}

func TestSolveGapEndpointInBand(t *testing.T) {
	// The minimum gap already satisfies the target: nothing is bisected and
	// the last evaluated gap is MinGap.
	res, err := SolveGap(func(g int) (float64, error) { return 100 - float64(g)/10, nil }, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if res.Gap != 0 || res.Iterations != 0 || !res.Converged {
		t.Errorf("got gap %d iterations %d converged %v, want 0 0 true", res.Gap, res.Iterations, res.Converged)
	}
}

func TestSolveGapInvalidOptions(t *testing.T) {
	tests := []struct {
		name  string
		opts  Options
		field string
	}{
		{"empty bracket", Options{MinGap: 5, MaxGap: 5, IterationLimit: 1}, "MinGap"},
		{"negative tolerance", Options{MaxGap: 5, Tolerance: -1, IterationLimit: 1}, "Tolerance"},
		{"zero limit", Options{MaxGap: 5}, "IterationLimit"},
		{"bad mode", Options{MaxGap: 5, IterationLimit: 1, Mode: 7}, "Mode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SolveGap(linear, tt.opts)
			var oe *OptionsError
			if !errors.As(err, &oe) {
				t.Fatalf("error = %v, want *OptionsError", err)
			}
			if oe.Field != tt.field {
				t.Errorf("Field = %q, want %q", oe.Field, tt.field)
			}
		})
	}
}

func TestSolveGapMetricError(t *testing.T) {
	boom := errors.New("boom")
	_, err := SolveGap(func(g int) (float64, error) {
		if g == 100 {
			return 0, boom
		}
		return float64(g), nil
	}, DefaultOptions())
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want boom", err)
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"legacy": ModeLegacy, "BEST": ModeBest, "": ModeLegacy} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseMode("newton"); err == nil {
		t.Error("ParseMode(newton) succeeded, want error")
	}
}

func TestGapResultJSON(t *testing.T) {
	opts := DefaultOptions()
	opts.Mode = ModeBest
	want, err := SolveGap(linear, opts)
	if err != nil {
		t.Fatalf("SolveGap() error = %v", err)
	}
	data, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	var got GapResult
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("json.Unmarshal() error = %v\n%s", err, data)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GapResult JSON mismatch (-want +got):\n%s", diff)
	}

	var r StopReason
	if err := r.UnmarshalText([]byte("exhausted")); err == nil {
		t.Error("StopReason.UnmarshalText(exhausted) succeeded, want error")
	}
}
