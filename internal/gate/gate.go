// Package gate implements the primitive gate node variants of §4.1: immutable
// values that report a parameter arity, a qudit width, and a matrix(theta)
// evaluation. Compositional nodes (Product, Kronecker) live in package
// circuit, which imports Node from here.
//
// Re-expressed from original_source/search_compiler/circuits.py's QuantumStep
// subclasses as a closed Go interface per Design Notes §9 ("tagged-variant
// enumeration" rather than a polymorphic base class).
package gate

import (
	"fmt"

	"github.com/hydraresearch/qsynth/internal/cmatrix"
)

// Record is one emitted assembly entry: either ("gate", name, params, qudits)
// or ("block", children) per §6's "Circuit assembly output".
type Record struct {
	Kind     string    // "gate" or "block"
	Name     string    // gate name, set when Kind == "gate"
	Params   []float64 // gate parameters, set when Kind == "gate"
	Qudits   []int     // absolute qudit indices, set when Kind == "gate"
	Children []Record  // nested records, set when Kind == "block"
}

// Node is the contract every gate and every compositional circuit node
// satisfies (§3 Data Model: "Each node exposes three derived attributes").
type Node interface {
	// Arity is the number of real parameters Matrix expects.
	Arity() int
	// Width is the number of qudits this node spans.
	Width() int
	// Matrix evaluates the node's unitary given a parameter slice of
	// length Arity().
	Matrix(theta []float64) (*cmatrix.Matrix, error)
	// Assemble emits the node's circuit-assembly records, placing qudit
	// indices starting at base.
	Assemble(theta []float64, base int) ([]Record, error)
	// String renders a debug repr, matching the teacher/original's
	// __repr__ convention.
	String() string
}

func checkArity(got, want int, who string) error {
	if got != want {
		return fmt.Errorf("gate: %s expects %d parameters, got %d", who, want, got)
	}
	return nil
}
