// Package config implements the Option/config plumbing of §6/§9: a plain
// configuration record built once at entry with explicit required fields and
// explicit defaults. Design Notes §9: "the 'smart default' pattern collapses
// into 'if field absent, compute at construction and store'" — Resolve does
// exactly that, once, rather than the source's lazily-cached callables.
package config

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/hydraresearch/qsynth/internal/cmatrix"
	"github.com/hydraresearch/qsynth/internal/evalfunc"
	"github.com/hydraresearch/qsynth/internal/gateset"
	"github.com/hydraresearch/qsynth/internal/heuristic"
	"github.com/hydraresearch/qsynth/internal/solver"
	"github.com/hydraresearch/qsynth/internal/synerr"
	"github.com/hydraresearch/qsynth/internal/synthlog"
)

// DefaultThreshold is applied when Options.Threshold is left at its zero
// value and the caller hasn't explicitly opted into threshold=0 via
// ThresholdSet (§6: "threshold: real; default ~0.01").
const DefaultThreshold = 0.01

// AutoBeams requests the §4.6 auto-sizing rule: max(1, num_tasks /
// len(search_layers)).
const AutoBeams = 0

// Options is the synthesis entry point's configuration (§6).
type Options struct {
	Target  *cmatrix.Matrix // required
	Gateset gateset.Gateset // required
	Solver  solver.Solver   // optional, defaulted
	EvalFn  evalfunc.Func   // optional, defaulted
	Heur    heuristic.Func  // optional, defaulted

	Depth *int // optional maximum depth; nil = unbounded

	Threshold    float64
	ThresholdSet bool // distinguishes an explicit 0 from "unset"

	Beams int // AutoBeams (0) or a positive integer

	NumTasks int // <= 0 means hardware parallelism

	Timeout time.Duration // <= 0 means no timeout

	StateFile string // checkpoint handle; empty means no checkpointing

	Logger    *synthlog.Logger
	Verbosity int
	LogWriter io.Writer

	// Ordered, when true, makes the dispatcher yield results in
	// submission order for full cross-run determinism (§5, §8 scenario 6).
	Ordered bool

	// SolverSeed fixes the default solver's PRNG seed (§8 scenario 6).
	SolverSeed int64
}

// Resolved is Options after defaults have been filled in once.
type Resolved struct {
	Options
}

// Resolve validates required fields and fills every default exactly once
// (§9). It returns synerr.ErrMissingRequiredOption if Target or Gateset is
// absent.
func Resolve(opts Options) (*Resolved, error) {
	if opts.Target == nil {
		return nil, fmt.Errorf("target: %w", synerr.ErrMissingRequiredOption)
	}
	if opts.Gateset == nil {
		return nil, fmt.Errorf("gateset: %w", synerr.ErrMissingRequiredOption)
	}

	r := &Resolved{Options: opts}

	if r.Solver == nil {
		r.Solver = &solver.Default{Seed: r.SolverSeed, Restarts: 1}
	}
	if r.EvalFn == nil {
		r.EvalFn = evalfunc.TraceDistance
	}
	if r.Heur == nil {
		r.Heur = heuristic.Default
	}
	if !r.ThresholdSet && r.Threshold == 0 {
		r.Threshold = DefaultThreshold
	}
	if r.NumTasks <= 0 {
		r.NumTasks = runtime.NumCPU()
	}
	if r.Logger == nil {
		r.Logger = synthlog.New(r.Verbosity, r.LogWriter)
	}
	return r, nil
}
