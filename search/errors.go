package search

import (
	"errors"
	"fmt"
)

// Sentinel errors for search package.
var (
	// ErrEmptySearchSpace is the target of errors.Is for every
	// *EmptySearchSpaceError.
	ErrEmptySearchSpace = errors.New("search: empty search space")

	// ErrNonConvergence is the target of errors.Is for every
	// *NonConvergenceError.
	ErrNonConvergence = errors.New("search: bisection did not converge")

	// ErrInvalidStep is returned for a step size below 1.
	ErrInvalidStep = errors.New("search: step size must be at least 1")

	// ErrNilMetric is returned when a search is given no metric.
	ErrNilMetric = errors.New("search: nil metric")
)

// EmptySearchSpaceError reports a scan side that produced no candidate
// rectangle because the center sits at or beyond the field edge.
type EmptySearchSpaceError struct {
	Side    Side
	CenterX int
}

func (e *EmptySearchSpaceError) Error() string {
	return fmt.Sprintf("search: no %s candidates from center column %d", e.Side, e.CenterX)
}

func (e *EmptySearchSpaceError) Unwrap() error { return ErrEmptySearchSpace }

// NonConvergenceError reports a bisection that stopped outside the
// tolerance band. The result still carries the gap it stopped at.
type NonConvergenceError struct {
	Gap        int
	Value      float64
	Target     float64
	Tolerance  float64
	Iterations int
	Stop       StopReason
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("search: gap %d gives %g, outside %g +- %g after %d iterations (%s)",
		e.Gap, e.Value, e.Target, e.Tolerance, e.Iterations, e.Stop)
}

func (e *NonConvergenceError) Unwrap() error { return ErrNonConvergence }

// OptionsError reports an invalid bisection option.
type OptionsError struct {
	Field  string
	Reason string
}

func (e *OptionsError) Error() string {
	return "search: invalid options." + e.Field + ": " + e.Reason
}
