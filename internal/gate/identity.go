package gate

import (
	"fmt"

	"github.com/hydraresearch/qsynth/internal/cmatrix"
)

// Identity is the n x n identity gate, 0 params, 1 qudit wide (§4.1).
type Identity struct {
	D int // qudit dimension (2 for a qubit, 3 for a qutrit, ...)
}

// NewIdentity builds an Identity gate over a d-dimensional qudit.
func NewIdentity(d int) *Identity {
	return &Identity{D: d}
}

func (g *Identity) Arity() int { return 0 }
func (g *Identity) Width() int { return 1 }

func (g *Identity) Matrix(theta []float64) (*cmatrix.Matrix, error) {
	if err := checkArity(len(theta), 0, "Identity"); err != nil {
		return nil, err
	}
	return cmatrix.Identity(g.D), nil
}

func (g *Identity) Assemble(theta []float64, base int) ([]Record, error) {
	return nil, nil
}

func (g *Identity) String() string { return fmt.Sprintf("Identity(%d)", g.D) }

// Constant is a fixed-matrix gate with no free parameters: ConstantGate(U,
// label?, width) from §3.
type Constant struct {
	U     *cmatrix.Matrix
	Label string
	W     int
}

// NewConstant builds a fixed gate from an explicit unitary.
func NewConstant(u *cmatrix.Matrix, label string, width int) *Constant {
	return &Constant{U: u, Label: label, W: width}
}

func (g *Constant) Arity() int { return 0 }
func (g *Constant) Width() int { return g.W }

func (g *Constant) Matrix(theta []float64) (*cmatrix.Matrix, error) {
	if err := checkArity(len(theta), 0, "Constant"); err != nil {
		return nil, err
	}
	return g.U, nil
}

func (g *Constant) Assemble(theta []float64, base int) ([]Record, error) {
	name := g.Label
	if name == "" {
		name = "UNKNOWN"
	}
	qudits := make([]int, g.W)
	for i := range qudits {
		qudits[i] = base + i
	}
	return []Record{{Kind: "gate", Name: name, Qudits: qudits}}, nil
}

func (g *Constant) String() string {
	if g.Label == "" {
		return "Constant(<matrix>)"
	}
	return fmt.Sprintf("Constant(%s)", g.Label)
}
