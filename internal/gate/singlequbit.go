package gate

import (
	"math"

	"github.com/hydraresearch/qsynth/internal/cmatrix"
)

// SingleQubit is the ZXZXZ-parameterized single-qubit gate (§4.1), 3 params,
// 1 qudit. Angles are in units of 2*pi (theta in [0,1] is a full rotation):
//
//	M(theta) = Rz(2*pi*theta2 - pi) . X90 . Rz(2*pi*theta1 + pi) . X90 . Rz(2*pi*theta0)
//
// Adapted from original_source/search_compiler/circuits.py's ZXZXZQubitStep,
// scaled per the spec's standardization (Design Notes §9, Open Questions).
type SingleQubit struct{}

func NewSingleQubit() *SingleQubit { return &SingleQubit{} }

func (g *SingleQubit) Arity() int { return 3 }
func (g *SingleQubit) Width() int { return 1 }

func (g *SingleQubit) Matrix(theta []float64) (*cmatrix.Matrix, error) {
	if err := checkArity(len(theta), 3, "SingleQubit"); err != nil {
		return nil, err
	}
	x90 := rotX(math.Pi / 2)
	z0 := rotZ(theta[0] * 2 * math.Pi)
	z1 := rotZ(theta[1]*2*math.Pi + math.Pi)
	z2 := rotZ(theta[2]*2*math.Pi - math.Pi)
	return cmatrix.MulChain([]*cmatrix.Matrix{z2, x90, z1, x90, z0})
}

func (g *SingleQubit) Assemble(theta []float64, base int) ([]Record, error) {
	if err := checkArity(len(theta), 3, "SingleQubit"); err != nil {
		return nil, err
	}
	out := []Record{
		{Kind: "gate", Name: "Z", Params: []float64{theta[0] * 2 * math.Pi}, Qudits: []int{base}},
		{Kind: "gate", Name: "X", Params: []float64{math.Pi / 2}, Qudits: []int{base}},
		{Kind: "gate", Name: "Z", Params: []float64{theta[1]*2*math.Pi + math.Pi}, Qudits: []int{base}},
		{Kind: "gate", Name: "X", Params: []float64{math.Pi / 2}, Qudits: []int{base}},
		// +pi here vs -pi in Matrix: carried over from circuits.py's own
		// ZXZXZQubitStep, whose assembled record never matched its matrix.
		{Kind: "gate", Name: "Z", Params: []float64{theta[2]*2*math.Pi + math.Pi}, Qudits: []int{base}},
	}
	return []Record{{Kind: "block", Children: out}}, nil
}

func (g *SingleQubit) String() string { return "SingleQubit()" }

// PartialSingleQubit is the 2-parameter XZXZ variant (drops the trailing Z),
// supplemented from circuits.py's XZXZPartialQubitStep (see SPEC_FULL.md §3).
type PartialSingleQubit struct{}

func NewPartialSingleQubit() *PartialSingleQubit { return &PartialSingleQubit{} }

func (g *PartialSingleQubit) Arity() int { return 2 }
func (g *PartialSingleQubit) Width() int { return 1 }

func (g *PartialSingleQubit) Matrix(theta []float64) (*cmatrix.Matrix, error) {
	if err := checkArity(len(theta), 2, "PartialSingleQubit"); err != nil {
		return nil, err
	}
	x90 := rotX(math.Pi / 2)
	z0 := rotZ(theta[0]*2*math.Pi + math.Pi)
	z1 := rotZ(theta[1]*2*math.Pi - math.Pi)
	return cmatrix.MulChain([]*cmatrix.Matrix{x90, z0, x90, z1})
}

func (g *PartialSingleQubit) Assemble(theta []float64, base int) ([]Record, error) {
	if err := checkArity(len(theta), 2, "PartialSingleQubit"); err != nil {
		return nil, err
	}
	out := []Record{
		{Kind: "gate", Name: "X", Params: []float64{math.Pi / 2}, Qudits: []int{base}},
		{Kind: "gate", Name: "Z", Params: []float64{theta[0]*2*math.Pi + math.Pi}, Qudits: []int{base}},
		{Kind: "gate", Name: "X", Params: []float64{math.Pi / 2}, Qudits: []int{base}},
		{Kind: "gate", Name: "Z", Params: []float64{theta[1]*2*math.Pi + math.Pi}, Qudits: []int{base}},
	}
	return []Record{{Kind: "block", Children: out}}, nil
}

func (g *PartialSingleQubit) String() string { return "PartialSingleQubit()" }

// U3 is the Qiskit-style U3 gate (§4.1), 3 params, 1 qudit.
type U3 struct{}

func NewU3() *U3 { return &U3{} }

func (g *U3) Arity() int { return 3 }
func (g *U3) Width() int { return 1 }

func (g *U3) Matrix(theta []float64) (*cmatrix.Matrix, error) {
	if err := checkArity(len(theta), 3, "U3"); err != nil {
		return nil, err
	}
	ct := math.Cos(theta[0] * math.Pi)
	st := math.Sin(theta[0] * math.Pi)
	cp := math.Cos(theta[1] * 2 * math.Pi)
	sp := math.Sin(theta[1] * 2 * math.Pi)
	cl := math.Cos(theta[2] * 2 * math.Pi)
	sl := math.Sin(theta[2] * 2 * math.Pi)

	m := cmatrix.New(2)
	m.Set(0, 0, complex(ct, 0))
	m.Set(0, 1, complex(-st*cl, -st*sl))
	m.Set(1, 0, complex(st*cp, st*sp))
	m.Set(1, 1, complex(ct*(cl*cp-sl*sp), ct*(cl*sp+sl*cp)))
	return m, nil
}

func (g *U3) Assemble(theta []float64, base int) ([]Record, error) {
	if err := checkArity(len(theta), 3, "U3"); err != nil {
		return nil, err
	}
	params := []float64{theta[0] * 2 * math.Pi, theta[1] * 2 * math.Pi, theta[2] * 2 * math.Pi}
	return []Record{{Kind: "gate", Name: "qiskit-u3", Params: params, Qudits: []int{base}}}, nil
}

func (g *U3) String() string { return "U3()" }
