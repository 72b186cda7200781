// Package blueprint serializes a gate.Node circuit tree to and from a
// self-describing, version-tagged JSON structure, independent of any
// parameter vector. This is what internal/checkpoint persists for the
// frontier and best-so-far circuits (§4.8): structural choices only (gate
// kind, fixed matrices, CPIPhase seeds, remap positions), never theta, since
// theta is solved fresh per node and carried alongside as a plain
// []float64 (the frontier entry's theta_seed).
//
// JSON, rather than gob, matches the teacher's own wire-format convention
// (types.go's Proof/Measurement/StateMetadata all carry `json:"..."` tags).
package blueprint

import (
	"encoding/json"
	"fmt"

	"github.com/hydraresearch/qsynth/internal/circuit"
	"github.com/hydraresearch/qsynth/internal/cmatrix"
	"github.com/hydraresearch/qsynth/internal/gate"
)

// Version is bumped whenever the blueprint schema changes incompatibly.
const Version = 1

// Node is the tagged-variant wire representation of a gate.Node.
type Node struct {
	Version    int        `json:"version,omitempty"`
	Kind       string     `json:"kind"`
	D          int        `json:"d,omitempty"`
	Width      int        `json:"width,omitempty"`
	Label      string     `json:"label,omitempty"`
	MatrixReal [][]float64 `json:"matrix_real,omitempty"`
	MatrixImag [][]float64 `json:"matrix_imag,omitempty"`
	N          int        `json:"n,omitempty"`
	Control    int        `json:"control,omitempty"`
	Target     int        `json:"target,omitempty"`
	Seed       []byte     `json:"seed,omitempty"`
	Flipped    bool       `json:"flipped,omitempty"`
	TotalDits  int        `json:"total_dits,omitempty"`
	Dim        int        `json:"dim,omitempty"`
	Positions  []int      `json:"positions,omitempty"`
	Children   []Node     `json:"children,omitempty"`
}

// Encode converts a gate.Node tree to its wire representation.
func Encode(n gate.Node) (Node, error) {
	switch v := n.(type) {
	case *gate.Identity:
		return Node{Kind: "identity", D: v.D}, nil
	case *gate.Constant:
		return Node{Kind: "constant", Label: v.Label, Width: v.W, MatrixReal: realParts(v.U), MatrixImag: imagParts(v.U)}, nil
	case *gate.SingleQubit:
		return Node{Kind: "single_qubit"}, nil
	case *gate.PartialSingleQubit:
		return Node{Kind: "partial_single_qubit"}, nil
	case *gate.U3:
		return Node{Kind: "u3"}, nil
	case *gate.Qutrit:
		return Node{Kind: "qutrit"}, nil
	case *gate.CNOT:
		return Node{Kind: "cnot"}, nil
	case *gate.CNOTRoot:
		return Node{Kind: "cnot_root"}, nil
	case *gate.CSUM:
		return Node{Kind: "csum"}, nil
	case *gate.CPI:
		return Node{Kind: "cpi"}, nil
	case *gate.CPIPhase:
		return Node{Kind: "cpi_phase", Seed: v.Seed}, nil
	case *gate.CRZ:
		return Node{Kind: "crz"}, nil
	case *gate.NonadjacentCNOT:
		return Node{Kind: "nonadjacent_cnot", N: v.N, Control: v.Control, Target: v.Target}, nil
	case *gate.Controlled:
		inner, err := Encode(v.Inner)
		if err != nil {
			return Node{}, err
		}
		return Node{Kind: "controlled", Flipped: v.Flipped, Children: []Node{inner}}, nil
	case *gate.Invert:
		inner, err := Encode(v.Inner)
		if err != nil {
			return Node{}, err
		}
		return Node{Kind: "invert", Children: []Node{inner}}, nil
	case *gate.Remap:
		inner, err := Encode(v.Inner)
		if err != nil {
			return Node{}, err
		}
		return Node{Kind: "remap", TotalDits: v.TotalDits, Dim: v.D, Positions: v.Positions, Children: []Node{inner}}, nil
	case *circuit.Product:
		children, err := encodeAll(v.Children)
		if err != nil {
			return Node{}, err
		}
		return Node{Kind: "product", Children: children}, nil
	case *circuit.Kronecker:
		children, err := encodeAll(v.Children)
		if err != nil {
			return Node{}, err
		}
		return Node{Kind: "kronecker", Children: children}, nil
	default:
		return Node{}, fmt.Errorf("blueprint: unsupported node type %T", n)
	}
}

func encodeAll(children []gate.Node) ([]Node, error) {
	out := make([]Node, len(children))
	for i, c := range children {
		n, err := Encode(c)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

// Decode reconstructs a gate.Node tree from its wire representation.
func Decode(n Node) (gate.Node, error) {
	switch n.Kind {
	case "identity":
		return gate.NewIdentity(n.D), nil
	case "constant":
		u, err := matrixFromParts(n.MatrixReal, n.MatrixImag)
		if err != nil {
			return nil, err
		}
		return gate.NewConstant(u, n.Label, n.Width), nil
	case "single_qubit":
		return gate.NewSingleQubit(), nil
	case "partial_single_qubit":
		return gate.NewPartialSingleQubit(), nil
	case "u3":
		return gate.NewU3(), nil
	case "qutrit":
		return gate.NewQutrit(), nil
	case "cnot":
		return gate.NewCNOT(), nil
	case "cnot_root":
		return gate.NewCNOTRoot(), nil
	case "csum":
		return gate.NewCSUM(), nil
	case "cpi":
		return gate.NewCPI(), nil
	case "cpi_phase":
		return gate.NewCPIPhaseFromSeed(n.Seed), nil
	case "crz":
		return gate.NewCRZ(), nil
	case "nonadjacent_cnot":
		return gate.NewNonadjacentCNOT(n.N, n.Control, n.Target), nil
	case "controlled":
		if len(n.Children) != 1 {
			return nil, fmt.Errorf("blueprint: controlled requires exactly one child")
		}
		inner, err := Decode(n.Children[0])
		if err != nil {
			return nil, err
		}
		return gate.NewControlled(inner, n.Flipped), nil
	case "invert":
		if len(n.Children) != 1 {
			return nil, fmt.Errorf("blueprint: invert requires exactly one child")
		}
		inner, err := Decode(n.Children[0])
		if err != nil {
			return nil, err
		}
		return gate.NewInvert(inner), nil
	case "remap":
		if len(n.Children) != 1 {
			return nil, fmt.Errorf("blueprint: remap requires exactly one child")
		}
		inner, err := Decode(n.Children[0])
		if err != nil {
			return nil, err
		}
		return gate.NewRemap(inner, n.TotalDits, n.Dim, n.Positions)
	case "product":
		children, err := decodeAll(n.Children)
		if err != nil {
			return nil, err
		}
		return circuit.NewProduct(children...)
	case "kronecker":
		children, err := decodeAll(n.Children)
		if err != nil {
			return nil, err
		}
		return circuit.NewKronecker(children...), nil
	default:
		return nil, fmt.Errorf("blueprint: unknown kind %q", n.Kind)
	}
}

func decodeAll(nodes []Node) ([]gate.Node, error) {
	out := make([]gate.Node, len(nodes))
	for i, n := range nodes {
		c, err := Decode(n)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

func realParts(m *cmatrix.Matrix) [][]float64 {
	out := make([][]float64, m.Dim)
	for i := 0; i < m.Dim; i++ {
		out[i] = make([]float64, m.Dim)
		for j := 0; j < m.Dim; j++ {
			out[i][j] = real(m.At(i, j))
		}
	}
	return out
}

func imagParts(m *cmatrix.Matrix) [][]float64 {
	out := make([][]float64, m.Dim)
	for i := 0; i < m.Dim; i++ {
		out[i] = make([]float64, m.Dim)
		for j := 0; j < m.Dim; j++ {
			out[i][j] = imag(m.At(i, j))
		}
	}
	return out
}

func matrixFromParts(re, im [][]float64) (*cmatrix.Matrix, error) {
	if len(re) != len(im) {
		return nil, fmt.Errorf("blueprint: mismatched real/imag matrix dimensions")
	}
	dim := len(re)
	m := cmatrix.New(dim)
	for i := 0; i < dim; i++ {
		if len(re[i]) != dim || len(im[i]) != dim {
			return nil, fmt.Errorf("blueprint: non-square matrix row %d", i)
		}
		for j := 0; j < dim; j++ {
			m.Set(i, j, complex(re[i][j], im[i][j]))
		}
	}
	return m, nil
}

// MarshalJSON and UnmarshalJSON aren't needed on Node beyond struct tags;
// these helpers exist so callers don't need to think about json directly.

// ToJSON serializes a Node with the version stamp set.
func ToJSON(n Node) ([]byte, error) {
	n.Version = Version
	return json.Marshal(n)
}

// FromJSON parses a Node, rejecting an unknown future version.
func FromJSON(data []byte) (Node, error) {
	var n Node
	if err := json.Unmarshal(data, &n); err != nil {
		return Node{}, fmt.Errorf("blueprint: %w", err)
	}
	if n.Version > Version {
		return Node{}, fmt.Errorf("blueprint: unsupported version %d (max %d)", n.Version, Version)
	}
	return n, nil
}
