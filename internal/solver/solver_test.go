package solver

import (
	"context"
	"testing"

	"github.com/hydraresearch/qsynth/internal/cmatrix"
	"github.com/hydraresearch/qsynth/internal/evalfunc"
	"github.com/hydraresearch/qsynth/internal/gate"
)

func TestSolveForUnitaryZeroArityEvaluatesDirectly(t *testing.T) {
	s := &Default{Seed: 1}
	target := cmatrix.Identity(2)
	res, err := s.SolveForUnitary(context.Background(), gate.NewIdentity(2), target, evalfunc.TraceDistance, nil)
	if err != nil {
		t.Fatalf("SolveForUnitary: %v", err)
	}
	if len(res.Theta) != 0 {
		t.Fatalf("a zero-arity circuit should return an empty Theta, got %v", res.Theta)
	}
	if res.Residual > 1e-9 {
		t.Fatalf("Identity against Identity should have ~0 residual, got %g", res.Residual)
	}
}

func TestSolveForUnitaryIsDeterministicGivenSeed(t *testing.T) {
	target := cmatrix.Identity(2)
	circ := gate.NewSingleQubit()

	s1 := &Default{Seed: 42, Restarts: 1}
	r1, err := s1.SolveForUnitary(context.Background(), circ, target, evalfunc.TraceDistance, nil)
	if err != nil {
		t.Fatalf("SolveForUnitary (1): %v", err)
	}

	s2 := &Default{Seed: 42, Restarts: 1}
	r2, err := s2.SolveForUnitary(context.Background(), circ, target, evalfunc.TraceDistance, nil)
	if err != nil {
		t.Fatalf("SolveForUnitary (2): %v", err)
	}

	if len(r1.Theta) != len(r2.Theta) {
		t.Fatalf("theta length mismatch between identically-seeded runs: %d vs %d", len(r1.Theta), len(r2.Theta))
	}
	for i := range r1.Theta {
		if r1.Theta[i] != r2.Theta[i] {
			t.Fatalf("theta[%d] diverged between identically-seeded runs: %g vs %g", i, r1.Theta[i], r2.Theta[i])
		}
	}
}

func TestSolveForUnitaryHonorsWarmStartSeed(t *testing.T) {
	circ := gate.NewSingleQubit()
	seed := []float64{0.12, 0.34, 0.56}
	target, err := circ.Matrix(seed)
	if err != nil {
		t.Fatalf("computing the target matrix: %v", err)
	}

	s := &Default{Seed: 7, Restarts: 1}
	res, err := s.SolveForUnitary(context.Background(), circ, target, evalfunc.TraceDistance, seed)
	if err != nil {
		t.Fatalf("SolveForUnitary: %v", err)
	}
	if res.Residual > 1e-6 {
		t.Fatalf("a warm start at the exact solution should converge near 0 residual, got %g", res.Residual)
	}
}

func TestSolveForUnitaryRespectsCancelledContext(t *testing.T) {
	target := cmatrix.Identity(2)
	circ := gate.NewSingleQubit()
	s := &Default{Seed: 1, Restarts: 4}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.SolveForUnitary(ctx, circ, target, evalfunc.TraceDistance, nil); err == nil {
		t.Fatalf("expected an error from a pre-cancelled context with no prior best result")
	}
}
