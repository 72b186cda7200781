// Package circuit implements the compositional nodes of §4.2: Product
// (sequential composition) and Kronecker (parallel composition), plus the
// thin evaluator of §4.3. Primitive leaves live in package gate; Product and
// Kronecker are themselves gate.Node values so circuits nest arbitrarily
// (§9: "a tree of gate primitives").
//
// Adapted from original_source/search_compiler/circuits.py's ProductStep and
// KroneckerStep: children are owned by value in a tree (never a DAG, per
// Design Notes §9), and appending returns a fresh node rather than mutating
// the receiver.
package circuit

import (
	"fmt"
	"strings"

	"github.com/hydraresearch/qsynth/internal/cmatrix"
	"github.com/hydraresearch/qsynth/internal/gate"
)

// Product sequentially composes its children: V = s1(theta1) . s2(theta2) . ... .
// Every child must share the same Width (§3 invariant).
type Product struct {
	Children []gate.Node
}

// NewProduct builds a Product node from an ordered list of children. All
// children must report the same Width.
func NewProduct(children ...gate.Node) (*Product, error) {
	if err := checkEqualWidths(children); err != nil {
		return nil, err
	}
	return &Product{Children: append([]gate.Node(nil), children...)}, nil
}

func checkEqualWidths(children []gate.Node) error {
	if len(children) == 0 {
		return nil
	}
	w := children[0].Width()
	for _, c := range children[1:] {
		if c.Width() != w {
			return fmt.Errorf("circuit: Product requires equal child widths, got %d and %d", w, c.Width())
		}
	}
	return nil
}

func (p *Product) Arity() int {
	total := 0
	for _, c := range p.Children {
		total += c.Arity()
	}
	return total
}

func (p *Product) Width() int {
	if len(p.Children) == 0 {
		return 0
	}
	return p.Children[0].Width()
}

// slices splits theta into one slice per child, in declaration order,
// non-overlapping, per the Data Model's parameter-slot invariant.
func slices(children []gate.Node, theta []float64) ([][]float64, error) {
	out := make([][]float64, len(children))
	idx := 0
	for i, c := range children {
		n := c.Arity()
		if idx+n > len(theta) {
			return nil, fmt.Errorf("circuit: parameter slice overrun: need %d more of %d at child %d", n, len(theta)-idx, i)
		}
		out[i] = theta[idx : idx+n]
		idx += n
	}
	if idx != len(theta) {
		return nil, fmt.Errorf("circuit: arity mismatch: consumed %d of %d parameters", idx, len(theta))
	}
	return out, nil
}

func (p *Product) Matrix(theta []float64) (*cmatrix.Matrix, error) {
	if len(p.Children) == 0 {
		return nil, fmt.Errorf("circuit: Product has no children")
	}
	parts, err := slices(p.Children, theta)
	if err != nil {
		return nil, err
	}
	matrices := make([]*cmatrix.Matrix, len(p.Children))
	for i, c := range p.Children {
		m, err := c.Matrix(parts[i])
		if err != nil {
			return nil, err
		}
		matrices[i] = m
	}
	return cmatrix.MulChain(matrices)
}

func (p *Product) Assemble(theta []float64, base int) ([]gate.Record, error) {
	parts, err := slices(p.Children, theta)
	if err != nil {
		return nil, err
	}
	var out []gate.Record
	for i, c := range p.Children {
		recs, err := c.Assemble(parts[i], base)
		if err != nil {
			return nil, err
		}
		out = append(out, recs...)
	}
	return out, nil
}

// Appending returns a new Product with the given children appended; the
// receiver is not mutated (§4.2's immutable builder).
func (p *Product) Appending(children ...gate.Node) (*Product, error) {
	combined := append(append([]gate.Node(nil), p.Children...), children...)
	return NewProduct(combined...)
}

func (p *Product) String() string {
	parts := make([]string, len(p.Children))
	for i, c := range p.Children {
		parts[i] = c.String()
	}
	return fmt.Sprintf("Product(%s)", strings.Join(parts, ", "))
}

// Kronecker composes its children side by side: V = s1(theta1) (x) s2(theta2) (x) ...
type Kronecker struct {
	Children []gate.Node
}

// NewKronecker builds a Kronecker node from an ordered list of children.
func NewKronecker(children ...gate.Node) *Kronecker {
	return &Kronecker{Children: append([]gate.Node(nil), children...)}
}

func (k *Kronecker) Arity() int {
	total := 0
	for _, c := range k.Children {
		total += c.Arity()
	}
	return total
}

func (k *Kronecker) Width() int {
	total := 0
	for _, c := range k.Children {
		total += c.Width()
	}
	return total
}

func (k *Kronecker) Matrix(theta []float64) (*cmatrix.Matrix, error) {
	if len(k.Children) == 0 {
		return nil, fmt.Errorf("circuit: Kronecker has no children")
	}
	parts, err := slices(k.Children, theta)
	if err != nil {
		return nil, err
	}
	matrices := make([]*cmatrix.Matrix, len(k.Children))
	for i, c := range k.Children {
		m, err := c.Matrix(parts[i])
		if err != nil {
			return nil, err
		}
		matrices[i] = m
	}
	return cmatrix.KronChain(matrices)
}

func (k *Kronecker) Assemble(theta []float64, base int) ([]gate.Record, error) {
	parts, err := slices(k.Children, theta)
	if err != nil {
		return nil, err
	}
	var out []gate.Record
	i := base
	for idx, c := range k.Children {
		recs, err := c.Assemble(parts[idx], i)
		if err != nil {
			return nil, err
		}
		out = append(out, recs...)
		i += c.Width()
	}
	return []gate.Record{{Kind: "block", Children: out}}, nil
}

// Appending returns a new Kronecker with the given children appended.
func (k *Kronecker) Appending(children ...gate.Node) *Kronecker {
	combined := append(append([]gate.Node(nil), k.Children...), children...)
	return NewKronecker(combined...)
}

func (k *Kronecker) String() string {
	parts := make([]string, len(k.Children))
	for i, c := range k.Children {
		parts[i] = c.String()
	}
	return fmt.Sprintf("Kronecker(%s)", strings.Join(parts, ", "))
}
