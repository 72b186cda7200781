package gate

import (
	"math"

	"github.com/hydraresearch/qsynth/internal/cmatrix"
)

// Qutrit is the SU(3) single-qutrit gate (§4.1), 8 params, 1 qudit of
// dimension 3. The matrix is built as three 2-level (Givens-style) complex
// rotations in the (0,1), (1,2), (0,1) subspaces plus a closing diagonal
// phase, the standard "arbitrary qutrit rotation" decomposition (8 real
// parameters = dim SU(3)). original_source's circuits.py delegates this to
// an external utils.qt_arb_rot helper not captured in the retrieval pack; the
// decomposition below is the well-known generalization used by qsearch-style
// qutrit synthesis.
type Qutrit struct{}

func NewQutrit() *Qutrit { return &Qutrit{} }

func (g *Qutrit) Arity() int { return 8 }
func (g *Qutrit) Width() int { return 1 }

// twoLevelRotation embeds a 2-level unitary rotation with mixing angle theta
// and relative phase phi into the (i,j) subspace of a 3x3 identity.
func twoLevelRotation(i, j int, theta, phi float64) *cmatrix.Matrix {
	m := cmatrix.Identity(3)
	c := complex(math.Cos(theta), 0)
	s := math.Sin(theta)
	m.Set(i, i, c)
	m.Set(j, j, c)
	m.Set(i, j, complex(-s*math.Cos(phi), -s*math.Sin(phi)))
	m.Set(j, i, complex(s*math.Cos(phi), -s*math.Sin(phi)))
	return m
}

func (g *Qutrit) Matrix(theta []float64) (*cmatrix.Matrix, error) {
	if err := checkArity(len(theta), 8, "Qutrit"); err != nil {
		return nil, err
	}
	r1 := twoLevelRotation(0, 1, theta[0]*2*math.Pi, theta[1]*2*math.Pi)
	r2 := twoLevelRotation(1, 2, theta[2]*2*math.Pi, theta[3]*2*math.Pi)
	r3 := twoLevelRotation(0, 1, theta[4]*2*math.Pi, theta[5]*2*math.Pi)

	p0 := theta[6] * 2 * math.Pi
	p1 := theta[7] * 2 * math.Pi
	p2 := -(p0 + p1) // forces det == 1, keeping the result in SU(3)
	phase := cmatrix.New(3)
	phase.Set(0, 0, complex(math.Cos(p0), math.Sin(p0)))
	phase.Set(1, 1, complex(math.Cos(p1), math.Sin(p1)))
	phase.Set(2, 2, complex(math.Cos(p2), math.Sin(p2)))

	return cmatrix.MulChain([]*cmatrix.Matrix{r1, r2, r3, phase})
}

func (g *Qutrit) Assemble(theta []float64, base int) ([]Record, error) {
	if err := checkArity(len(theta), 8, "Qutrit"); err != nil {
		return nil, err
	}
	params := append([]float64(nil), theta...)
	return []Record{{Kind: "gate", Name: "qutrit", Params: params, Qudits: []int{base}}}, nil
}

func (g *Qutrit) String() string { return "Qutrit()" }
