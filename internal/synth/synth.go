// Package synth implements the core search driver of §4.6 and the
// Synthesize entry point of §6: a single-threaded, sequential best-first
// search whose only parallelism is the work dispatcher it drives (§5 "the
// driver is the sole mutator of frontier and best").
//
// Grounded on original_source/qsearch/compiler.py and
// search_compiler/compiler.py's compile() loop (heapq-based frontier,
// beam pop, GatesetHasNoBranching short-circuit, the acceptance-rule
// clauses transcribed in §4.6).
package synth

import (
	"container/heap"
	"context"
	"fmt"
	"time"

	"github.com/hydraresearch/qsynth/internal/checkpoint"
	"github.com/hydraresearch/qsynth/internal/circuit"
	"github.com/hydraresearch/qsynth/internal/config"
	"github.com/hydraresearch/qsynth/internal/dispatcher"
	"github.com/hydraresearch/qsynth/internal/gate"
	"github.com/hydraresearch/qsynth/internal/gateset"
	"github.com/hydraresearch/qsynth/internal/synerr"
)

// Output is Synthesize's return value (§6: "Returns { structure:
// circuit_tree, vector: θ }").
type Output struct {
	Structure gate.Node
	Vector    []float64
}

// state is the driver's mutable working set (§3 frontier + best-so-far,
// §9 tiebreak counter).
type state struct {
	frontier *frontierHeap
	tiebreak int64

	bestDepth    int
	bestDistance float64
	bestCircuit  *circuit.Product
	bestTheta    []float64

	// elapsed is wall time accumulated across prior runs (restored from a
	// checkpoint); start marks when the current process began running.
	elapsed time.Duration
	start   time.Time
}

func (st *state) totalElapsed() time.Duration {
	return st.elapsed + time.Since(st.start)
}

// Synthesize is the single synthesis entry point of §6.
func Synthesize(ctx context.Context, opts config.Options) (*Output, error) {
	r, err := config.Resolve(opts)
	if err != nil {
		return nil, err
	}

	d := r.Gateset.D()
	n, err := integerLog(r.Target.Dim, d)
	if err != nil {
		return nil, fmt.Errorf("synth: target dimension %d is not %d^n: %w", r.Target.Dim, d, synerr.ErrIncompatibleTarget)
	}

	searchLayers, err := r.Gateset.SearchLayers(n)
	if err != nil {
		return nil, fmt.Errorf("synth: resolving search layers: %w", err)
	}

	bridge := &checkpoint.Default{}

	var st *state
	if r.StateFile != "" {
		st, err = tryResume(r, bridge)
		if err != nil {
			r.Logger.Warn("synth: checkpoint at %s unreadable, starting fresh: %v", r.StateFile, err)
			st = nil
		}
	}

	fresh := st == nil
	if fresh {
		st, err = initRoot(ctx, r, n)
		if err != nil {
			return nil, err
		}
	}

	if fresh && r.Depth != nil && *r.Depth == 0 {
		r.Logger.Info("synth: depth=0, returning initial layer without expansion")
		return &Output{Structure: st.bestCircuit, Vector: st.bestTheta}, nil
	}
	if fresh && len(searchLayers) == 0 {
		// GatesetHasNoBranching (§7): not an error, solve once and return.
		r.Logger.Info("synth: gateset reports no branching factor, returning initial layer")
		return &Output{Structure: st.bestCircuit, Vector: st.bestTheta}, nil
	}

	r.Logger.Info("synth: %d workers, %d search layers", r.NumTasks, len(searchLayers))

	disp := dispatcher.New(r.NumTasks, r.Solver, r.EvalFn, r.Ordered)
	return runLoop(ctx, r, disp, bridge, searchLayers, st)
}

// integerLog finds n such that d^n == dim, per §7 "IncompatibleTarget — D ≠
// d^n for integer n".
func integerLog(dim, d int) (int, error) {
	if d < 2 {
		return 0, fmt.Errorf("synth: qudit dimension must be >= 2, got %d", d)
	}
	p := 1
	for n := 0; n <= 63; n++ {
		if p == dim {
			return n, nil
		}
		if p > dim {
			break
		}
		p *= d
	}
	return 0, fmt.Errorf("synth: no integer n with %d^n == %d", d, dim)
}

func initRoot(ctx context.Context, r *config.Resolved, n int) (*state, error) {
	initial, err := r.Gateset.InitialLayer(n)
	if err != nil {
		return nil, fmt.Errorf("synth: building initial layer: %w", err)
	}
	root, err := circuit.NewProduct(initial)
	if err != nil {
		return nil, fmt.Errorf("synth: building root circuit: %w", err)
	}

	result, err := r.Solver.SolveForUnitary(ctx, root, r.Target, r.EvalFn, nil)
	if err != nil {
		return nil, fmt.Errorf("synth: solving root circuit: %w", err)
	}

	fh := newFrontierHeap()
	heap.Push(fh, &FrontierEntry{
		Priority:   r.Heur(result.Residual, 0),
		Tiebreaker: 0,
		Depth:      0,
		Distance:   result.Residual,
		ThetaSeed:  result.Theta,
		Circuit:    root,
	})

	return &state{
		frontier:     fh,
		tiebreak:     1,
		bestDepth:    0,
		bestDistance: result.Residual,
		bestCircuit:  root,
		bestTheta:    result.Theta,
		start:        time.Now(),
	}, nil
}

func tryResume(r *config.Resolved, bridge checkpoint.Bridge) (*state, error) {
	raw, ok, err := bridge.Load(r.StateFile)
	if err != nil {
		return nil, err // CheckpointReadError (§7): caller logs and falls back to a fresh root.
	}
	if !ok {
		return nil, nil
	}
	st, err := decodeState(raw)
	if err != nil {
		return nil, err
	}
	r.Logger.Info("synth: resumed from %s (best_distance=%g, best_depth=%d)", r.StateFile, st.bestDistance, st.bestDepth)
	return st, nil
}

func beamWidth(configured, numTasks, numLayers int) int {
	if configured != config.AutoBeams {
		return configured
	}
	if numLayers <= 0 {
		return 1
	}
	b := numTasks / numLayers
	if b < 1 {
		b = 1
	}
	return b
}

func runLoop(ctx context.Context, r *config.Resolved, disp *dispatcher.Dispatcher, bridge checkpoint.Bridge, searchLayers []gateset.SearchLayer, st *state) (*Output, error) {
	beam := beamWidth(r.Beams, r.NumTasks, len(searchLayers))

	for st.frontier.Len() > 0 {
		if r.Timeout > 0 && st.totalElapsed() > r.Timeout {
			r.Logger.Info("synth: timeout reached after %s", st.totalElapsed())
			break
		}
		if st.bestDistance < r.Threshold {
			r.Logger.Info("synth: threshold met (best_distance=%g < %g)", st.bestDistance, r.Threshold)
			*st.frontier = (*st.frontier)[:0]
			disp.Cancel()
			break
		}
		if ctx.Err() != nil {
			break
		}

		popped := make([]*FrontierEntry, 0, beam)
		for i := 0; i < beam && st.frontier.Len() > 0; i++ {
			popped = append(popped, heap.Pop(st.frontier).(*FrontierEntry))
		}

		var jobs []dispatcher.Job
		for _, parent := range popped {
			for _, layer := range searchLayers {
				child, err := parent.Circuit.Appending(layer.Gate)
				if err != nil {
					r.Logger.Warn("synth: appending search layer to parent at depth %d: %v", parent.Depth, err)
					continue
				}
				jobs = append(jobs, dispatcher.Job{
					Circuit: child,
					Depth:   parent.Depth,
					Weight:  layer.Weight,
					Seed:    parent.ThetaSeed,
				})
			}
		}

		if len(jobs) == 0 {
			continue
		}

		results := disp.SolveAll(ctx, r.Target, jobs)

		for _, res := range results {
			if res.Err != nil {
				r.Logger.Warn("synth: %v", res.Err)
				continue
			}
			child, ok := res.Circuit.(*circuit.Product)
			if !ok {
				r.Logger.Warn("synth: dispatcher returned a non-Product circuit, dropping")
				continue
			}

			newDepth := res.Depth + res.Weight
			currentValue := res.Residual

			updateBest := currentValue < st.bestDistance && (st.bestDistance >= r.Threshold || newDepth <= st.bestDepth)
			updateBest = updateBest || (currentValue < r.Threshold && newDepth < st.bestDepth)
			if updateBest {
				st.bestDistance = currentValue
				st.bestDepth = newDepth
				st.bestCircuit = child
				st.bestTheta = res.Theta
			}

			pushSurvivor := r.Depth == nil || newDepth < *r.Depth
			if pushSurvivor {
				st.tiebreak++
				entry := &FrontierEntry{
					Priority:   r.Heur(currentValue, newDepth),
					Tiebreaker: st.tiebreak,
					Depth:      newDepth,
					Distance:   currentValue,
					ThetaSeed:  res.Theta,
					Circuit:    child,
				}
				heap.Push(st.frontier, entry)
			}
		}

		if r.StateFile != "" {
			if err := saveCheckpoint(r, bridge, st); err != nil {
				r.Logger.Warn("synth: checkpoint write failed: %v", err) // CheckpointWriteError (§7): logged, search continues.
			}
		}
	}

	return &Output{Structure: st.bestCircuit, Vector: st.bestTheta}, nil
}

func saveCheckpoint(r *config.Resolved, bridge checkpoint.Bridge, st *state) error {
	blob, err := encodeState(st)
	if err != nil {
		return err
	}
	return bridge.Save(blob, r.StateFile)
}
