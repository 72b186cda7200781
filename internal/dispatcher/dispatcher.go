// Package dispatcher implements the work dispatcher of §4.5: a fixed-size
// pool of worker goroutines that score independent circuit candidates in
// parallel and return results as an unordered completion stream (or, when
// Ordered is set, in submission order for full determinism, §5).
//
// Grounded in spirit on the teacher's cache.go (sync.RWMutex-guarded shared
// state) for the one piece of state workers and the caller both touch: the
// cooperative-cancellation flag.
package dispatcher

import (
	"context"
	"sync"

	"github.com/hydraresearch/qsynth/internal/cmatrix"
	"github.com/hydraresearch/qsynth/internal/evalfunc"
	"github.com/hydraresearch/qsynth/internal/gate"
	"github.com/hydraresearch/qsynth/internal/solver"
)

// Job is one independent scoring task (§4.5: "jobs is a finite collection of
// (circuit, depth, weight) tuples").
type Job struct {
	Circuit gate.Node
	Depth   int
	Weight  int
	Seed    []float64 // optional warm-start theta, may be nil
}

// Result is one scored job (§4.5: "solve_all(jobs) -> iterable of (circuit,
// V, theta, residual, depth, weight)").
type Result struct {
	Circuit  gate.Node
	V        *cmatrix.Matrix
	Theta    []float64
	Residual float64
	Depth    int
	Weight   int
	Err      error // set on SolverFailure/WorkerCrash (§7); Circuit/Depth/Weight still populated
}

// Dispatcher fans jobs out across Workers goroutines.
type Dispatcher struct {
	Workers int
	Solver  solver.Solver
	EvalFn  evalfunc.Func
	// Ordered, when true, makes SolveAll return results in submission
	// order rather than completion order, trading latency for full
	// cross-run determinism (§5, §8 scenario 6).
	Ordered bool

	mu        sync.RWMutex
	cancelled bool
}

// New builds a Dispatcher. workers <= 0 is treated as 1; callers that want
// hardware parallelism resolve it beforehand (internal/config does, §6).
func New(workers int, s solver.Solver, evalFn evalfunc.Func, ordered bool) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	return &Dispatcher{Workers: workers, Solver: s, EvalFn: evalFn, Ordered: ordered}
}

// Cancel requests that the current and any subsequent SolveAll call return
// promptly with whatever partial results are already available (§4.5, §5).
func (d *Dispatcher) Cancel() {
	d.mu.Lock()
	d.cancelled = true
	d.mu.Unlock()
}

func (d *Dispatcher) isCancelled() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.cancelled
}

// SolveAll scores every job against target, fanning out across the worker
// pool. Results are returned once all submitted jobs have either completed
// or been skipped due to cancellation/context cancellation.
func (d *Dispatcher) SolveAll(ctx context.Context, target *cmatrix.Matrix, jobs []Job) []Result {
	type indexed struct {
		idx int
		res Result
	}

	resultCh := make(chan indexed, len(jobs))

	submitted := 0
	for range jobs {
		if d.isCancelled() || ctx.Err() != nil {
			break
		}
		submitted++
	}

	// Only the submitted prefix of jobs is queued for the workers.
	var wg sync.WaitGroup
	workers := d.Workers
	if workers > submitted && submitted > 0 {
		workers = submitted
	}
	if workers < 1 {
		workers = 1
	}

	work := make(chan int, submitted)
	for i := 0; i < submitted; i++ {
		work <- i
	}
	close(work)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range work {
				if d.isCancelled() || ctx.Err() != nil {
					continue // skipped: cancelled after submission
				}
				j := jobs[i]
				res := d.solveOne(ctx, target, j)
				resultCh <- indexed{idx: i, res: res}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	if !d.Ordered {
		out := make([]Result, 0, submitted)
		for r := range resultCh {
			out = append(out, r.res)
		}
		return out
	}

	collected := make([]Result, submitted)
	seen := make([]bool, submitted)
	for r := range resultCh {
		collected[r.idx] = r.res
		seen[r.idx] = true
	}
	out := make([]Result, 0, submitted)
	for i := 0; i < submitted; i++ {
		if seen[i] {
			out = append(out, collected[i])
		}
	}
	return out
}

// solveOne invokes the solver for a single job, converting a panicking
// solver (WorkerCrash, §7) into an error result rather than taking the whole
// dispatcher down.
func (d *Dispatcher) solveOne(ctx context.Context, target *cmatrix.Matrix, j Job) (res Result) {
	res = Result{Circuit: j.Circuit, Depth: j.Depth, Weight: j.Weight}
	defer func() {
		if r := recover(); r != nil {
			res.Err = &WorkerCrashError{Reason: r}
		}
	}()

	out, err := d.Solver.SolveForUnitary(ctx, j.Circuit, target, d.EvalFn, j.Seed)
	if err != nil {
		res.Err = &SolverFailureError{Cause: err}
		return res
	}
	res.V = out.V
	res.Theta = out.Theta
	res.Residual = out.Residual
	return res
}
