package search

import (
	"fmt"
	"math"
	"strings"
)

// GapFunc evaluates a spacing metric at an integer gap.
type GapFunc func(gap int) (float64, error)

// Mode selects which evaluated gap SolveGap reports.
type Mode int

const (
	// ModeLegacy reports the last gap evaluated.
	ModeLegacy Mode = iota
	// ModeBest reports the evaluated gap closest to the target, earliest
	// first on ties. Bracket endpoints count as evaluated.
	ModeBest
)

func (m Mode) String() string {
	switch m {
	case ModeLegacy:
		return "legacy"
	case ModeBest:
		return "best"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ParseMode parses "legacy" or "best".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "legacy", "":
		return ModeLegacy, nil
	case "best":
		return ModeBest, nil
	}
	return 0, fmt.Errorf("search: unknown bisection mode %q", s)
}

// StopReason tells why a bisection ended.
type StopReason int

const (
	// StopInBand: the last evaluated value lies within the tolerance band.
	StopInBand StopReason = iota
	// StopCollapsed: the midpoint equals a bracket bound.
	StopCollapsed
	// StopLimit: the iteration limit was reached.
	StopLimit
)

func (r StopReason) String() string {
	switch r {
	case StopInBand:
		return "in-band"
	case StopCollapsed:
		return "collapsed"
	case StopLimit:
		return "iteration-limit"
	}
	return fmt.Sprintf("StopReason(%d)", int(r))
}

// MarshalText implements encoding.TextMarshaler.
func (r StopReason) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *StopReason) UnmarshalText(b []byte) error {
	for _, s := range []StopReason{StopInBand, StopCollapsed, StopLimit} {
		if s.String() == string(b) {
			*r = s
			return nil
		}
	}
	return fmt.Errorf("search: unknown stop reason %q", b)
}

// Options configures SolveGap.
type Options struct {
	MinGap         int     `json:"min_gap" yaml:"min-gap"`
	MaxGap         int     `json:"max_gap" yaml:"max-gap"`
	Target         float64 `json:"target" yaml:"target"`
	Tolerance      float64 `json:"tolerance" yaml:"tolerance"`
	IterationLimit int     `json:"iteration_limit" yaml:"iteration-limit"`
	Mode           Mode    `json:"mode" yaml:"mode"`
}

// DefaultOptions returns the default bisection options.
func DefaultOptions() Options {
	return Options{
		MinGap:         0,
		MaxGap:         200,
		Target:         100,
		Tolerance:      10,
		IterationLimit: 40,
		Mode:           ModeLegacy,
	}
}

// Validate checks the bracket, tolerance and iteration limit.
func (o Options) Validate() error {
	if o.MinGap >= o.MaxGap {
		return &OptionsError{Field: "MinGap", Reason: "must be less than MaxGap"}
	}
	if o.Tolerance < 0 || math.IsNaN(o.Tolerance) {
		return &OptionsError{Field: "Tolerance", Reason: "must be non-negative"}
	}
	if o.IterationLimit < 1 {
		return &OptionsError{Field: "IterationLimit", Reason: "must be at least 1"}
	}
	if o.Mode != ModeLegacy && o.Mode != ModeBest {
		return &OptionsError{Field: "Mode", Reason: "must be legacy or best"}
	}
	return nil
}

// inBand reports whether v lies within Target +- Tolerance, bounds included.
func (o Options) inBand(v float64) bool {
	return math.Abs(v-o.Target) <= o.Tolerance
}

// Probe is one evaluation of the gap function.
type Probe struct {
	Gap   int     `json:"gap" yaml:"gap"`
	Value float64 `json:"value" yaml:"value"`
}

// GapResult is the outcome of SolveGap.
type GapResult struct {
	Gap       int     `json:"gap" yaml:"gap"`
	Value     float64 `json:"value" yaml:"value"`
	Converged bool    `json:"converged" yaml:"converged"`

	// Iterations counts midpoint evaluations; the two endpoint
	// evaluations are not included.
	Iterations int        `json:"iterations" yaml:"iterations"`
	Stop       StopReason `json:"stop" yaml:"stop"`
	Mode       Mode       `json:"mode" yaml:"mode"`

	// Direction is +1 when the metric grows with the gap, -1 otherwise.
	Direction int `json:"direction" yaml:"direction"`

	// Probes lists every evaluation in order: MaxGap, MinGap, then the
	// midpoints.
	Probes []Probe `json:"probes" yaml:"probes"`

	Target    float64 `json:"target" yaml:"target"`
	Tolerance float64 `json:"tolerance" yaml:"tolerance"`
}

// Err returns a *NonConvergenceError when the reported gap is outside the
// tolerance band, nil otherwise.
func (r GapResult) Err() error {
	if r.Converged {
		return nil
	}
	return &NonConvergenceError{
		Gap:        r.Gap,
		Value:      r.Value,
		Target:     r.Target,
		Tolerance:  r.Tolerance,
		Iterations: r.Iterations,
		Stop:       r.Stop,
	}
}

// SolveGap bisects the integer bracket [MinGap, MaxGap] for a gap whose
// metric value lies within Target +- Tolerance.
//
// The search direction is fixed up front from the endpoint values, which
// assumes fn is roughly monotonic over the bracket. Each round evaluates the
// floored midpoint and moves the bound on the side that brings the value
// toward the target. The loop ends when the last value is in band, the
// bracket collapses, or IterationLimit midpoints have been evaluated.
//
// The band is inclusive: a value exactly Target-Tolerance or
// Target+Tolerance counts as converged. Searchers that compare strictly
// keep bisecting at the band edge until the bracket collapses or the
// iteration limit is hit, so results can differ from theirs at that edge.
//
// Running out of iterations is not an error: the result is returned with
// Converged false. Errors come only from invalid options or from fn.
func SolveGap(fn GapFunc, opts Options) (GapResult, error) {
	if err := opts.Validate(); err != nil {
		return GapResult{}, err
	}

	eval := func(gap int) (Probe, error) {
		v, err := fn(gap)
		if err != nil {
			return Probe{}, fmt.Errorf("search: gap %d: %w", gap, err)
		}
		return Probe{Gap: gap, Value: v}, nil
	}

	lo, hi := opts.MinGap, opts.MaxGap
	hiProbe, err := eval(hi)
	if err != nil {
		return GapResult{}, err
	}
	loProbe, err := eval(lo)
	if err != nil {
		return GapResult{}, err
	}

	dir := -1
	if hiProbe.Value > loProbe.Value {
		dir = 1
	}

	probes := []Probe{hiProbe, loProbe}
	last := loProbe
	iterations := 0
	var stop StopReason

	for {
		mid := floorHalf(lo + hi)
		if opts.inBand(last.Value) {
			stop = StopInBand
			break
		}
		if mid == lo || mid == hi {
			stop = StopCollapsed
			break
		}
		if iterations >= opts.IterationLimit {
			stop = StopLimit
			break
		}

		iterations++
		last, err = eval(mid)
		if err != nil {
			return GapResult{}, err
		}
		probes = append(probes, last)

		switch {
		case last.Value > opts.Target+opts.Tolerance:
			if dir > 0 {
				hi = mid
			} else {
				lo = mid
			}
		case last.Value < opts.Target-opts.Tolerance:
			if dir > 0 {
				lo = mid
			} else {
				hi = mid
			}
		}
		slogger().Debug("bisection step",
			"iteration", iterations, "gap", mid, "value", last.Value, "lo", lo, "hi", hi)
	}

	chosen := last
	if opts.Mode == ModeBest {
		chosen = bestProbe(probes, opts.Target)
	}

	res := GapResult{
		Gap:        chosen.Gap,
		Value:      chosen.Value,
		Converged:  opts.inBand(chosen.Value),
		Iterations: iterations,
		Stop:       stop,
		Mode:       opts.Mode,
		Direction:  dir,
		Probes:     probes,
		Target:     opts.Target,
		Tolerance:  opts.Tolerance,
	}
	if !res.Converged {
		slogger().Warn("bisection did not converge",
			"gap", res.Gap, "value", res.Value, "target", opts.Target, "stop", stop)
	}
	return res, nil
}

// bestProbe returns the first probe with the smallest distance to target.
func bestProbe(probes []Probe, target float64) Probe {
	best := probes[0]
	for _, p := range probes[1:] {
		if math.Abs(p.Value-target) < math.Abs(best.Value-target) {
			best = p
		}
	}
	return best
}

// floorHalf returns floor(n / 2), also for negative n.
func floorHalf(n int) int {
	return n >> 1
}
