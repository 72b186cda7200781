package circuit

import (
	"fmt"

	"github.com/hydraresearch/qsynth/internal/cmatrix"
	"github.com/hydraresearch/qsynth/internal/gate"
)

// Evaluate computes V(theta) for a circuit tree, slicing theta by child
// arity and composing per §4.2 (§4.3: "Given a circuit and theta, computes
// V(theta)"). It is a thin wrapper: compositional nodes already implement
// Matrix recursively, so Evaluate adds only a check that len(theta) equals
// the circuit's arity before delegating to Matrix. The default solver
// adapter (§4.4) calls Matrix directly rather than Evaluate.
func Evaluate(c gate.Node, theta []float64) (*cmatrix.Matrix, error) {
	if len(theta) != c.Arity() {
		return nil, fmt.Errorf("circuit: Evaluate expects %d parameters, got %d", c.Arity(), len(theta))
	}
	return c.Matrix(theta)
}

// Assemble flattens a circuit's assembly records starting at qudit 0
// (§6: "Circuit assembly output").
func Assemble(c gate.Node, theta []float64) ([]gate.Record, error) {
	if len(theta) != c.Arity() {
		return nil, fmt.Errorf("circuit: Assemble expects %d parameters, got %d", c.Arity(), len(theta))
	}
	return c.Assemble(theta, 0)
}
