// Package search inverts "area → density" to recover glyph spacing.
//
// Two strategies are provided:
//
//   - Step scan ([Scanner], [SearchOptimalAreas]): from a fixed center
//     column, widen a full-height rectangle outward on each side in fixed
//     increments, evaluating a density metric at every step, and keep the
//     step closest to the target. The scan is exhaustive because density is
//     not monotonic in width.
//
//   - Bisection ([SolveGap]): halve an integer gap bracket until a caller
//     supplied metric falls within a tolerance band of the target.
//
// Running out of candidates is an expected outcome, not a failure: an empty
// side or a non-converged bisection is reported on the result and exposed
// through its Err method.
package search
