package gateset

import (
	"fmt"

	"github.com/hydraresearch/qsynth/internal/circuit"
	"github.com/hydraresearch/qsynth/internal/gate"
)

// DefaultQubit is a standard qubit gateset: the initial layer is a single
// layer of ZXZXZ single-qubit rotations on every qudit, and each search
// layer places a CNOT between an ordered pair of qudits followed by a fresh
// layer of single-qubit rotations to re-optimize around it. This mirrors the
// qsearch project's standard gateset shape (a CNOT "slot" plus trailing
// single-qubit rotations), reconstructed here since gatesets.py was not part
// of the retrieved original_source excerpt.
type DefaultQubit struct {
	// Adjacent restricts CNOT placement to adjacent-qudit pairs (both
	// directions) when true; otherwise every ordered pair is a candidate.
	Adjacent bool
}

func (g *DefaultQubit) D() int { return 2 }

func (g *DefaultQubit) InitialLayer(n int) (gate.Node, error) {
	if n <= 0 {
		return nil, fmt.Errorf("gateset: InitialLayer requires n >= 1, got %d", n)
	}
	children := make([]gate.Node, n)
	for i := range children {
		children[i] = gate.NewSingleQubit()
	}
	return circuit.NewKronecker(children...), nil
}

func (g *DefaultQubit) rotationLayer(n int) gate.Node {
	children := make([]gate.Node, n)
	for i := range children {
		children[i] = gate.NewSingleQubit()
	}
	return circuit.NewKronecker(children...)
}

func (g *DefaultQubit) SearchLayers(n int) ([]SearchLayer, error) {
	if n <= 0 {
		return nil, fmt.Errorf("gateset: SearchLayers requires n >= 1, got %d", n)
	}
	if n < 2 {
		return nil, nil // GatesetHasNoBranching: a single qudit has no 2-qudit gate to place.
	}
	var layers []SearchLayer
	addPair := func(control, target int) error {
		cnot := gate.NewNonadjacentCNOT(n, control, target)
		layer, err := circuit.NewProduct(cnot, g.rotationLayer(n))
		if err != nil {
			return err
		}
		layers = append(layers, SearchLayer{Gate: layer, Weight: 1})
		return nil
	}
	for i := 0; i < n-1; i++ {
		if err := addPair(i, i+1); err != nil {
			return nil, err
		}
		if err := addPair(i+1, i); err != nil {
			return nil, err
		}
		if g.Adjacent {
			continue
		}
	}
	if !g.Adjacent {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if j == i || j == i+1 || j == i-1 {
					continue
				}
				if err := addPair(i, j); err != nil {
					return nil, err
				}
			}
		}
	}
	return layers, nil
}
