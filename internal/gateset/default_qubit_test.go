package gateset

import "testing"

func TestInitialLayerWidthMatchesN(t *testing.T) {
	g := &DefaultQubit{}
	for n := 1; n <= 4; n++ {
		layer, err := g.InitialLayer(n)
		if err != nil {
			t.Fatalf("InitialLayer(%d): %v", n, err)
		}
		if layer.Width() != n {
			t.Fatalf("InitialLayer(%d).Width() = %d, want %d", n, layer.Width(), n)
		}
	}
}

func TestInitialLayerRejectsNonPositiveN(t *testing.T) {
	g := &DefaultQubit{}
	if _, err := g.InitialLayer(0); err == nil {
		t.Fatalf("expected an error for n=0")
	}
}

func TestSearchLayersEmptyForSingleQudit(t *testing.T) {
	g := &DefaultQubit{}
	layers, err := g.SearchLayers(1)
	if err != nil {
		t.Fatalf("SearchLayers(1): %v", err)
	}
	if len(layers) != 0 {
		t.Fatalf("a single qudit should have no branching, got %d layers", len(layers))
	}
}

func TestSearchLayersNonEmptyForMultipleQudits(t *testing.T) {
	g := &DefaultQubit{}
	layers, err := g.SearchLayers(2)
	if err != nil {
		t.Fatalf("SearchLayers(2): %v", err)
	}
	if len(layers) == 0 {
		t.Fatalf("2 qudits should have at least one branch")
	}
	for _, l := range layers {
		if l.Weight <= 0 {
			t.Fatalf("search layer weight should be positive, got %d", l.Weight)
		}
		if l.Gate.Width() != 2 {
			t.Fatalf("search layer gate width = %d, want 2", l.Gate.Width())
		}
	}
}

func TestAdjacentRestrictsBranchingFactor(t *testing.T) {
	full := &DefaultQubit{Adjacent: false}
	adjacent := &DefaultQubit{Adjacent: true}

	fullLayers, err := full.SearchLayers(4)
	if err != nil {
		t.Fatalf("SearchLayers (full): %v", err)
	}
	adjLayers, err := adjacent.SearchLayers(4)
	if err != nil {
		t.Fatalf("SearchLayers (adjacent): %v", err)
	}
	if len(adjLayers) >= len(fullLayers) {
		t.Fatalf("Adjacent=true should branch less than the unrestricted gateset: adjacent=%d full=%d", len(adjLayers), len(fullLayers))
	}
}

func TestDIsTwo(t *testing.T) {
	g := &DefaultQubit{}
	if g.D() != 2 {
		t.Fatalf("DefaultQubit.D() = %d, want 2", g.D())
	}
}
