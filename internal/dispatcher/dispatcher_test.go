package dispatcher

import (
	"context"
	"errors"
	"testing"

	"github.com/hydraresearch/qsynth/internal/cmatrix"
	"github.com/hydraresearch/qsynth/internal/evalfunc"
	"github.com/hydraresearch/qsynth/internal/gate"
	"github.com/hydraresearch/qsynth/internal/solver"
)

type crashingSolver struct{}

func (crashingSolver) SolveForUnitary(ctx context.Context, circ gate.Node, target *cmatrix.Matrix, evalFn evalfunc.Func, seed []float64) (solver.Result, error) {
	panic("simulated worker crash")
}

type failingSolver struct{}

func (failingSolver) SolveForUnitary(ctx context.Context, circ gate.Node, target *cmatrix.Matrix, evalFn evalfunc.Func, seed []float64) (solver.Result, error) {
	return solver.Result{}, errBoom
}

var errBoom = &boomError{}

type boomError struct{}

func (*boomError) Error() string { return "boom" }

func identityJob(depth int) Job {
	return Job{Circuit: gate.NewIdentity(2), Depth: depth, Weight: 1}
}

func TestSolveAllReturnsEveryJob(t *testing.T) {
	d := New(4, &solver.Default{}, evalfunc.TraceDistance, false)
	jobs := []Job{identityJob(0), identityJob(1), identityJob(2)}
	results := d.SolveAll(context.Background(), cmatrix.Identity(2), jobs)
	if len(results) != len(jobs) {
		t.Fatalf("got %d results, want %d", len(results), len(jobs))
	}
}

func TestSolveAllOrderedMatchesSubmissionOrder(t *testing.T) {
	d := New(4, &solver.Default{}, evalfunc.TraceDistance, true)
	jobs := []Job{identityJob(0), identityJob(1), identityJob(2), identityJob(3)}
	results := d.SolveAll(context.Background(), cmatrix.Identity(2), jobs)
	if len(results) != len(jobs) {
		t.Fatalf("got %d results, want %d", len(results), len(jobs))
	}
	for i, r := range results {
		if r.Depth != jobs[i].Depth {
			t.Fatalf("Ordered=true result[%d].Depth = %d, want %d (submission order not preserved)", i, r.Depth, jobs[i].Depth)
		}
	}
}

func TestWorkerCrashIsRecoveredAsError(t *testing.T) {
	d := New(2, crashingSolver{}, evalfunc.TraceDistance, false)
	jobs := []Job{identityJob(0)}
	results := d.SolveAll(context.Background(), cmatrix.Identity(2), jobs)
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	var crashErr *WorkerCrashError
	if !errors.As(results[0].Err, &crashErr) {
		t.Fatalf("expected a *WorkerCrashError, got %v", results[0].Err)
	}
}

func TestSolverFailureIsSurfacedAsError(t *testing.T) {
	d := New(2, failingSolver{}, evalfunc.TraceDistance, false)
	jobs := []Job{identityJob(0)}
	results := d.SolveAll(context.Background(), cmatrix.Identity(2), jobs)
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	var failErr *SolverFailureError
	if !errors.As(results[0].Err, &failErr) {
		t.Fatalf("expected a *SolverFailureError, got %v", results[0].Err)
	}
}

func TestCancelStopsFurtherSubmission(t *testing.T) {
	d := New(2, &solver.Default{}, evalfunc.TraceDistance, false)
	d.Cancel()
	jobs := []Job{identityJob(0), identityJob(1), identityJob(2)}
	results := d.SolveAll(context.Background(), cmatrix.Identity(2), jobs)
	if len(results) != 0 {
		t.Fatalf("a pre-cancelled dispatcher should submit no jobs, got %d results", len(results))
	}
}

func TestSolveAllRespectsContextCancellation(t *testing.T) {
	d := New(2, &solver.Default{}, evalfunc.TraceDistance, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	jobs := []Job{identityJob(0), identityJob(1)}
	results := d.SolveAll(ctx, cmatrix.Identity(2), jobs)
	if len(results) != 0 {
		t.Fatalf("a cancelled context should yield no submitted jobs, got %d results", len(results))
	}
}
