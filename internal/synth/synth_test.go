package synth

import (
	"context"
	"testing"

	"github.com/hydraresearch/qsynth/internal/circuit"
	"github.com/hydraresearch/qsynth/internal/cmatrix"
	"github.com/hydraresearch/qsynth/internal/config"
	"github.com/hydraresearch/qsynth/internal/evalfunc"
	"github.com/hydraresearch/qsynth/internal/gateset"
	"github.com/hydraresearch/qsynth/internal/solver"
)

func TestIntegerLogFindsExactPower(t *testing.T) {
	cases := []struct {
		dim, d, want int
	}{
		{1, 2, 0},
		{2, 2, 1},
		{4, 2, 2},
		{8, 2, 3},
		{9, 3, 2},
	}
	for _, tc := range cases {
		n, err := integerLog(tc.dim, tc.d)
		if err != nil {
			t.Fatalf("integerLog(%d, %d): %v", tc.dim, tc.d, err)
		}
		if n != tc.want {
			t.Fatalf("integerLog(%d, %d) = %d, want %d", tc.dim, tc.d, n, tc.want)
		}
	}
}

func TestIntegerLogRejectsNonPower(t *testing.T) {
	if _, err := integerLog(6, 2); err == nil {
		t.Fatalf("expected an error for a dimension that is not a power of 2")
	}
}

func TestIntegerLogRejectsQuditDimensionBelowTwo(t *testing.T) {
	if _, err := integerLog(4, 1); err == nil {
		t.Fatalf("expected an error for a qudit dimension < 2")
	}
}

func TestBeamWidthUsesConfiguredValue(t *testing.T) {
	if w := beamWidth(5, 100, 10); w != 5 {
		t.Fatalf("beamWidth with an explicit value = %d, want 5", w)
	}
}

func TestBeamWidthAutoSizesFromWorkersAndLayers(t *testing.T) {
	if w := beamWidth(config.AutoBeams, 8, 4); w != 2 {
		t.Fatalf("beamWidth(auto, 8, 4) = %d, want 2", w)
	}
}

func TestBeamWidthAutoSizeFloorsAtOne(t *testing.T) {
	if w := beamWidth(config.AutoBeams, 2, 10); w != 1 {
		t.Fatalf("beamWidth(auto, 2, 10) = %d, want 1 (workers < layers)", w)
	}
}

func TestBeamWidthAutoSizeWithNoLayers(t *testing.T) {
	if w := beamWidth(config.AutoBeams, 8, 0); w != 1 {
		t.Fatalf("beamWidth(auto, 8, 0) = %d, want 1", w)
	}
}

func TestSynthesizeIdentityShortCircuitsAtDepthZero(t *testing.T) {
	zero := 0
	out, err := Synthesize(context.Background(), config.Options{
		Target:  cmatrix.Identity(2),
		Gateset: &gateset.DefaultQubit{},
		Depth:   &zero,
	})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if out.Structure == nil {
		t.Fatalf("Synthesize returned a nil structure")
	}
	m, err := out.Structure.Matrix(out.Vector)
	if err != nil {
		t.Fatalf("evaluating returned structure: %v", err)
	}
	if cmatrix.FrobeniusDist(m, cmatrix.Identity(2)) > 1e-6 {
		t.Fatalf("depth=0 synthesis of the identity target should reproduce it closely, dist=%g", cmatrix.FrobeniusDist(m, cmatrix.Identity(2)))
	}
}

func TestSynthesizeSingleQuditHasNoBranching(t *testing.T) {
	out, err := Synthesize(context.Background(), config.Options{
		Target:  cmatrix.Identity(2),
		Gateset: &gateset.DefaultQubit{},
	})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if out.Structure == nil {
		t.Fatalf("Synthesize returned a nil structure")
	}
}

func TestSynthesizeRejectsIncompatibleTarget(t *testing.T) {
	_, err := Synthesize(context.Background(), config.Options{
		Target:  cmatrix.Identity(3),
		Gateset: &gateset.DefaultQubit{},
	})
	if err == nil {
		t.Fatalf("expected an error for a target dimension incompatible with the gateset's qudit dimension")
	}
}

func TestSynthesizeCNOTNeverRegressesFromTheRoot(t *testing.T) {
	cnotTarget := cnotMatrix()
	g := &gateset.DefaultQubit{Adjacent: true}
	seed := int64(1)

	initial, err := g.InitialLayer(2)
	if err != nil {
		t.Fatalf("InitialLayer: %v", err)
	}
	root, err := circuit.NewProduct(initial)
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	rootResult, err := (&solver.Default{Seed: seed, Restarts: 3}).SolveForUnitary(context.Background(), root, cnotTarget, evalfunc.TraceDistance, nil)
	if err != nil {
		t.Fatalf("solving the root circuit directly: %v", err)
	}

	one := 1
	out, err := Synthesize(context.Background(), config.Options{
		Target:   cnotTarget,
		Gateset:  g,
		Depth:    &one,
		Solver:   &solver.Default{Seed: seed, Restarts: 3},
		NumTasks: 2,
	})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if out.Structure == nil {
		t.Fatalf("Synthesize returned a nil structure")
	}
	m, err := out.Structure.Matrix(out.Vector)
	if err != nil {
		t.Fatalf("evaluating returned structure: %v", err)
	}
	got := evalfunc.TraceDistance(cnotTarget, m)
	if got > rootResult.Residual+1e-9 {
		t.Fatalf("search result (%g) is worse than the unexpanded root (%g)", got, rootResult.Residual)
	}
}

func cnotMatrix() *cmatrix.Matrix {
	m := cmatrix.New(4)
	m.Set(0, 0, 1)
	m.Set(1, 1, 1)
	m.Set(2, 3, 1)
	m.Set(3, 2, 1)
	return m
}
