// Package solver defines the Solver adapter contract (§4.4) and a concrete
// default backed by gonum's Nelder-Mead optimizer. The Solver is treated by
// the core as an opaque black box (§1 "Out of scope... The numerical
// optimizer itself"); this package supplies a runnable default since no
// example repo implements a general continuous optimizer (see DESIGN.md).
package solver

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/hydraresearch/qsynth/internal/cmatrix"
	"github.com/hydraresearch/qsynth/internal/evalfunc"
	"github.com/hydraresearch/qsynth/internal/gate"
)

// Result is what a solve attempt yields: the achieved matrix, the parameter
// vector that produced it, and the residual under the caller's eval_func.
type Result struct {
	V        *cmatrix.Matrix
	Theta    []float64
	Residual float64
}

// Solver is the external collaborator that minimizes eval(U, V(theta)) over
// theta in R^arity(circuit) (§4.4).
type Solver interface {
	// SolveForUnitary finds theta minimizing evalFn(target, circuit.Matrix(theta)).
	// seed is an optional warm-start (§3 "theta_seed"); pass nil for none.
	SolveForUnitary(ctx context.Context, circ gate.Node, target *cmatrix.Matrix, evalFn evalfunc.Func, seed []float64) (Result, error)
}

// Default is the gonum/optimize-backed adapter. It is safe for concurrent
// use: every call allocates its own optimizer state and PRNG, per §4.4/§5
// ("Solver state must be per-invocation").
type Default struct {
	// Seed drives the deterministic fallback initial guess used when no
	// warm start is supplied, and the restart schedule. Fixing Seed and
	// the circuit/target makes SolveForUnitary reproducible (§4.4,
	// §8 "Determinism under fixed seed").
	Seed int64
	// Restarts is the number of Nelder-Mead runs to try; the first starts
	// from the warm start when one of matching length is given, the rest
	// from random guesses. The best result is kept. Defaults to 1 if <= 0.
	Restarts int
	// MaxIterations caps each restart's optimizer iterations; <= 0 uses a
	// library default.
	MaxIterations int
}

func (s *Default) restarts() int {
	if s.Restarts <= 0 {
		return 1
	}
	return s.Restarts
}

// SolveForUnitary implements Solver.
func (s *Default) SolveForUnitary(ctx context.Context, circ gate.Node, target *cmatrix.Matrix, evalFn evalfunc.Func, seed []float64) (Result, error) {
	arity := circ.Arity()
	if arity == 0 {
		v, err := circ.Matrix(nil)
		if err != nil {
			return Result{}, fmt.Errorf("solver: evaluating zero-parameter circuit: %w", err)
		}
		return Result{V: v, Theta: nil, Residual: evalFn(target, v)}, nil
	}

	objective := func(theta []float64) float64 {
		v, err := circ.Matrix(theta)
		if err != nil {
			return 1e9 // out-of-domain penalty; keeps the optimizer away from invalid slices
		}
		return evalFn(target, v)
	}

	var best Result
	best.Residual = 2 // TraceDistance never exceeds 1, so any residual it yields is better than this sentinel
	rng := rand.New(rand.NewSource(s.Seed))

	for attempt := 0; attempt < s.restarts(); attempt++ {
		select {
		case <-ctx.Done():
			if best.Theta != nil {
				return best, nil
			}
			return Result{}, ctx.Err()
		default:
		}

		init := make([]float64, arity)
		if seed != nil && len(seed) == arity && attempt == 0 {
			copy(init, seed)
		} else {
			for i := range init {
				init[i] = rng.Float64()
			}
		}

		theta, residual := nelderMead(objective, init, s.MaxIterations)
		if residual < best.Residual {
			v, err := circ.Matrix(theta)
			if err != nil {
				continue
			}
			best = Result{V: v, Theta: theta, Residual: residual}
		}
	}
	if best.Theta == nil {
		return Result{}, fmt.Errorf("solver: no feasible parameter vector found for a %d-parameter circuit", arity)
	}
	return best, nil
}
