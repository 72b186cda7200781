// Package synerr declares the closed set of error kinds from §7. Sentinel
// errors follow katalvlaran-lvlath/dijkstra/types.go's package-level
// var-of-errors.New convention, layered onto the teacher's
// fmt.Errorf("...: %w", err) wrapping style for the specifics.
package synerr

import "errors"

var (
	// ErrIncompatibleTarget: D != d^n for integer n (§7, fatal, raised at entry).
	ErrIncompatibleTarget = errors.New("qsynth: target matrix dimension is not d^n for the gateset's qudit dimension")

	// ErrMissingRequiredOption: a required option (e.g. target) is absent (§7, fatal).
	ErrMissingRequiredOption = errors.New("qsynth: required option missing")
)

// GatesetHasNoBranching is not an error (§7: "handled by solving the initial
// circuit once and returning"); it is represented in internal/synth as a
// normal early return, not a value in this package.
