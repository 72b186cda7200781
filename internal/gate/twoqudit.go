package gate

import (
	"math"
	"math/cmplx"
	"strconv"

	"github.com/hydraresearch/qsynth/internal/cmatrix"
	"github.com/hydraresearch/qsynth/internal/qrand"
)

func matFromRows(rows [][]complex128) *cmatrix.Matrix {
	n := len(rows)
	m := cmatrix.New(n)
	for i, row := range rows {
		for j, v := range row {
			m.Set(i, j, v)
		}
	}
	return m
}

// CNOT is the fixed 2-qudit controlled-NOT gate, 0 params (§4.1).
type CNOT struct{ m *cmatrix.Matrix }

func NewCNOT() *CNOT {
	return &CNOT{m: matFromRows([][]complex128{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 0, 1},
		{0, 0, 1, 0},
	})}
}

func (g *CNOT) Arity() int { return 0 }
func (g *CNOT) Width() int { return 2 }
func (g *CNOT) Matrix(theta []float64) (*cmatrix.Matrix, error) {
	if err := checkArity(len(theta), 0, "CNOT"); err != nil {
		return nil, err
	}
	return g.m, nil
}
func (g *CNOT) Assemble(theta []float64, base int) ([]Record, error) {
	return []Record{{Kind: "gate", Name: "CNOT", Qudits: []int{base, base + 1}}}, nil
}
func (g *CNOT) String() string { return "CNOT()" }

// CNOTRoot is sqrt(CNOT), 0 params, 2 qudits.
type CNOTRoot struct{ m *cmatrix.Matrix }

func NewCNOTRoot() *CNOTRoot {
	return &CNOTRoot{m: matFromRows([][]complex128{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 0.5 + 0.5i, 0.5 - 0.5i},
		{0, 0, 0.5 - 0.5i, 0.5 + 0.5i},
	})}
}

func (g *CNOTRoot) Arity() int { return 0 }
func (g *CNOTRoot) Width() int { return 2 }
func (g *CNOTRoot) Matrix(theta []float64) (*cmatrix.Matrix, error) {
	if err := checkArity(len(theta), 0, "CNOTRoot"); err != nil {
		return nil, err
	}
	return g.m, nil
}
func (g *CNOTRoot) Assemble(theta []float64, base int) ([]Record, error) {
	return []Record{{Kind: "gate", Name: "sqrt(CNOT)", Qudits: []int{base, base + 1}}}, nil
}
func (g *CNOTRoot) String() string { return "CNOTRoot()" }

// CSUM is the fixed 2-qutrit "controlled-sum" gate, 0 params, from the
// published table referenced by circuits.py's CSUMStep.
type CSUM struct{ m *cmatrix.Matrix }

func NewCSUM() *CSUM {
	rows := make([][]complex128, 9)
	for i := range rows {
		rows[i] = make([]complex128, 9)
	}
	perm := []int{0, 1, 2, 5, 3, 4, 7, 8, 6}
	for i, j := range perm {
		rows[i][j] = 1
	}
	return &CSUM{m: matFromRows(rows)}
}

func (g *CSUM) Arity() int { return 0 }
func (g *CSUM) Width() int { return 2 }
func (g *CSUM) Matrix(theta []float64) (*cmatrix.Matrix, error) {
	if err := checkArity(len(theta), 0, "CSUM"); err != nil {
		return nil, err
	}
	return g.m, nil
}
func (g *CSUM) Assemble(theta []float64, base int) ([]Record, error) {
	return []Record{{Kind: "gate", Name: "CSUM", Qudits: []int{base, base + 1}}}, nil
}
func (g *CSUM) String() string { return "CSUM()" }

// CPI is the fixed 2-qutrit "controlled-pi" gate, 0 params, per circuits.py's
// CPIStep table.
type CPI struct{ m *cmatrix.Matrix }

func NewCPI() *CPI {
	rows := [][]complex128{
		{1, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 1, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 1, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 1, 0, 0, 0, 0},
		{0, 0, 0, 1, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 1, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 1, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 1, 0},
		{0, 0, 0, 0, 0, 0, 0, 0, 1},
	}
	return &CPI{m: matFromRows(rows)}
}

func (g *CPI) Arity() int { return 0 }
func (g *CPI) Width() int { return 2 }
func (g *CPI) Matrix(theta []float64) (*cmatrix.Matrix, error) {
	if err := checkArity(len(theta), 0, "CPI"); err != nil {
		return nil, err
	}
	return g.m, nil
}
func (g *CPI) Assemble(theta []float64, base int) ([]Record, error) {
	return []Record{{Kind: "gate", Name: "CPI", Qudits: []int{base, base + 1}}}, nil
}
func (g *CPI) String() string { return "CPI()" }

// CPIPhase is CPI multiplied by a diagonal of random phases fixed at
// construction (§4.1: "nondeterministic seed, recorded for reproducibility").
// The seed is captured via internal/qrand so a checkpointed circuit
// containing a CPIPhase gate can be replayed exactly.
type CPIPhase struct {
	m    *cmatrix.Matrix
	Seed []byte
}

// NewCPIPhase draws a fresh random seed and builds the gate from it.
func NewCPIPhase() (*CPIPhase, error) {
	seed, err := qrand.NewSeed()
	if err != nil {
		return nil, err
	}
	return NewCPIPhaseFromSeed(seed), nil
}

// NewCPIPhaseFromSeed rebuilds a CPIPhase deterministically from a recorded
// seed, e.g. when restoring a checkpoint (§4.8).
func NewCPIPhaseFromSeed(seed []byte) *CPIPhase {
	stream := qrand.NewStream(seed)
	// Base matrix matches circuits.py's CPIPhaseStep, not CPIStep: the (3,4)
	// entry is -1 rather than 1.
	base := matFromRows([][]complex128{
		{1, 0, 0, 0, 0, 0, 0, 0, 0},
		{0, 1, 0, 0, 0, 0, 0, 0, 0},
		{0, 0, 1, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, -1, 0, 0, 0, 0},
		{0, 0, 0, 1, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 1, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 1, 0, 0},
		{0, 0, 0, 0, 0, 0, 0, 1, 0},
		{0, 0, 0, 0, 0, 0, 0, 0, 1},
	})
	diag := make([]complex128, 9)
	for i := 0; i < 4; i++ {
		diag[i] = 1
	}
	for i := 4; i < 9; i++ {
		phase := stream.Phase()
		diag[i] = cmplx.Rect(1, phase)
	}
	diagMod := cmatrix.New(9)
	for i := 0; i < 9; i++ {
		diagMod.Set(i, i, diag[i])
	}
	m, _ := base.Mul(diagMod)
	return &CPIPhase{m: m, Seed: stream.Seed()}
}

func (g *CPIPhase) Arity() int { return 0 }
func (g *CPIPhase) Width() int { return 2 }
func (g *CPIPhase) Matrix(theta []float64) (*cmatrix.Matrix, error) {
	if err := checkArity(len(theta), 0, "CPIPhase"); err != nil {
		return nil, err
	}
	return g.m, nil
}
func (g *CPIPhase) Assemble(theta []float64, base int) ([]Record, error) {
	return []Record{{Kind: "gate", Name: "CPI-", Qudits: []int{base, base + 1}}}, nil
}
func (g *CPIPhase) String() string { return "CPIPhase()" }

// NonadjacentCNOT is the n-qudit permutation matrix implementing a CNOT
// between a possibly-nonadjacent control and target (§4.1).
type NonadjacentCNOT struct {
	N, Control, Target int
	m                  *cmatrix.Matrix
}

// NewNonadjacentCNOT builds the n-qubit permutation matrix for a CNOT with
// the given control and target indices (0-based, within [0, n)).
func NewNonadjacentCNOT(n, control, target int) *NonadjacentCNOT {
	dim := 1 << n
	m := cmatrix.New(dim)
	for basis := 0; basis < dim; basis++ {
		out := basis
		controlBit := (basis >> (n - 1 - control)) & 1
		if controlBit == 1 {
			out ^= 1 << (n - 1 - target)
		}
		m.Set(out, basis, 1)
	}
	return &NonadjacentCNOT{N: n, Control: control, Target: target, m: m}
}

func (g *NonadjacentCNOT) Arity() int { return 0 }
func (g *NonadjacentCNOT) Width() int { return g.N }
func (g *NonadjacentCNOT) Matrix(theta []float64) (*cmatrix.Matrix, error) {
	if err := checkArity(len(theta), 0, "NonadjacentCNOT"); err != nil {
		return nil, err
	}
	return g.m, nil
}
func (g *NonadjacentCNOT) Assemble(theta []float64, base int) ([]Record, error) {
	return []Record{{Kind: "gate", Name: "CNOT", Qudits: []int{base + g.Control, base + g.Target}}}, nil
}
func (g *NonadjacentCNOT) String() string {
	return "NonadjacentCNOT(" + strconv.Itoa(g.N) + ", " + strconv.Itoa(g.Control) + ", " + strconv.Itoa(g.Target) + ")"
}

// CRZ is the controlled-RZ 2-qudit gate, 1 param, supplemented from
// circuits.py's CRZStep (SPEC_FULL.md §3): U(theta) = cnr . kron(I, Rz(theta)) . cnr
type CRZ struct{ cnr *cmatrix.Matrix }

func NewCRZ() *CRZ {
	return &CRZ{cnr: NewCNOTRoot().m}
}

func (g *CRZ) Arity() int { return 1 }
func (g *CRZ) Width() int { return 2 }
func (g *CRZ) Matrix(theta []float64) (*cmatrix.Matrix, error) {
	if err := checkArity(len(theta), 1, "CRZ"); err != nil {
		return nil, err
	}
	kz := cmatrix.Kron(cmatrix.Identity(2), rotZ(theta[0]*2*math.Pi))
	u, err := g.cnr.Mul(kz)
	if err != nil {
		return nil, err
	}
	return u.Mul(g.cnr)
}
func (g *CRZ) Assemble(theta []float64, base int) ([]Record, error) {
	if err := checkArity(len(theta), 1, "CRZ"); err != nil {
		return nil, err
	}
	return []Record{{Kind: "gate", Name: "CRZ", Params: []float64{theta[0] * 2 * math.Pi}, Qudits: []int{base, base + 1}}}, nil
}
func (g *CRZ) String() string { return "CRZ()" }
