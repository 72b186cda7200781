package gate

import (
	"fmt"

	"github.com/hydraresearch/qsynth/internal/cmatrix"
)

// Controlled wraps an inner node U into a block-diagonal embedding twice its
// dimension: the identity block and U's block, with the active block chosen
// by Flipped (§4.1). Generalizes circuits.py's CUStep to any inner Node
// rather than just a fixed matrix.
type Controlled struct {
	Inner   Node
	Flipped bool
}

func NewControlled(inner Node, flipped bool) *Controlled {
	return &Controlled{Inner: inner, Flipped: flipped}
}

func (g *Controlled) Arity() int { return g.Inner.Arity() }
func (g *Controlled) Width() int { return g.Inner.Width() + 1 }

func (g *Controlled) Matrix(theta []float64) (*cmatrix.Matrix, error) {
	u, err := g.Inner.Matrix(theta)
	if err != nil {
		return nil, err
	}
	n := u.Dim
	out := cmatrix.New(2 * n)
	id := cmatrix.Identity(n)
	top, bot := id, u
	if g.Flipped {
		top, bot = u, id
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.Set(i, j, top.At(i, j))
			out.Set(n+i, n+j, bot.At(i, j))
		}
	}
	return out, nil
}

func (g *Controlled) Assemble(theta []float64, base int) ([]Record, error) {
	inner, err := g.Inner.Assemble(theta, base+1)
	if err != nil {
		return nil, err
	}
	first, second := base, base+1
	if g.Flipped {
		first, second = base+1, base
	}
	return []Record{{Kind: "block", Children: append([]Record{
		{Kind: "gate", Name: "CONTROL", Qudits: []int{first, second}},
	}, inner...)}}, nil
}

func (g *Controlled) String() string {
	return fmt.Sprintf("Controlled(%s, flipped=%v)", g.Inner, g.Flipped)
}

// Invert wraps a step with its conjugate transpose (§4.1).
type Invert struct {
	Inner Node
}

func NewInvert(inner Node) *Invert { return &Invert{Inner: inner} }

func (g *Invert) Arity() int { return g.Inner.Arity() }
func (g *Invert) Width() int { return g.Inner.Width() }

func (g *Invert) Matrix(theta []float64) (*cmatrix.Matrix, error) {
	u, err := g.Inner.Matrix(theta)
	if err != nil {
		return nil, err
	}
	return u.Dagger(), nil
}

func (g *Invert) Assemble(theta []float64, base int) ([]Record, error) {
	inner, err := g.Inner.Assemble(theta, base)
	if err != nil {
		return nil, err
	}
	return []Record{{Kind: "block", Name: "REVERSE", Children: inner}}, nil
}

func (g *Invert) String() string { return fmt.Sprintf("Invert(%s)", g.Inner) }

// Remap places a multi-qudit step onto a chosen subset of physical qudits
// within a wider n-qudit register (§4.1), generalizing circuits.py's
// RemapStep (source/target swap-matrix construction) and NonadjacentCNOT's
// bit-permutation trick to arbitrary qudit dimension d and arbitrary inner
// step width.
type Remap struct {
	Inner     Node
	TotalDits int
	D         int
	Positions []int // Positions[k] = physical qudit that Inner's local qudit k maps to
}

// NewRemap builds a Remap wrapper. positions must have length inner.Width()
// and contain distinct values in [0, totalDits).
func NewRemap(inner Node, totalDits, d int, positions []int) (*Remap, error) {
	if len(positions) != inner.Width() {
		return nil, fmt.Errorf("gate: Remap positions length %d != inner width %d", len(positions), inner.Width())
	}
	seen := make(map[int]bool, len(positions))
	for _, p := range positions {
		if p < 0 || p >= totalDits || seen[p] {
			return nil, fmt.Errorf("gate: Remap invalid or duplicate position %d", p)
		}
		seen[p] = true
	}
	return &Remap{Inner: inner, TotalDits: totalDits, D: d, Positions: append([]int(nil), positions...)}, nil
}

func (g *Remap) Arity() int { return g.Inner.Arity() }
func (g *Remap) Width() int { return g.TotalDits }

func toDigits(x, d, n int) []int {
	ds := make([]int, n)
	for i := n - 1; i >= 0; i-- {
		ds[i] = x % d
		x /= d
	}
	return ds
}

func fromDigits(ds []int, d int) int {
	x := 0
	for _, dig := range ds {
		x = x*d + dig
	}
	return x
}

func pow(base, exp int) int {
	out := 1
	for i := 0; i < exp; i++ {
		out *= base
	}
	return out
}

func (g *Remap) Matrix(theta []float64) (*cmatrix.Matrix, error) {
	inner, err := g.Inner.Matrix(theta)
	if err != nil {
		return nil, err
	}
	d, n, w := g.D, g.TotalDits, g.Inner.Width()
	dim := pow(d, n)
	localDim := pow(d, w)
	if inner.Dim != localDim {
		return nil, fmt.Errorf("gate: Remap inner matrix dim %d != d^width %d", inner.Dim, localDim)
	}
	out := cmatrix.New(dim)
	for basis := 0; basis < dim; basis++ {
		ds := toDigits(basis, d, n)
		localDigits := make([]int, w)
		for k, pos := range g.Positions {
			localDigits[k] = ds[pos]
		}
		localIndex := fromDigits(localDigits, d)
		for localPrime := 0; localPrime < localDim; localPrime++ {
			val := inner.At(localPrime, localIndex)
			if val == 0 {
				continue
			}
			newDigits := append([]int(nil), ds...)
			primeDigits := toDigits(localPrime, d, w)
			for k, pos := range g.Positions {
				newDigits[pos] = primeDigits[k]
			}
			newBasis := fromDigits(newDigits, d)
			out.Set(newBasis, basis, val)
		}
	}
	return out, nil
}

func (g *Remap) Assemble(theta []float64, base int) ([]Record, error) {
	innerRecords, err := g.Inner.Assemble(theta, 0)
	if err != nil {
		return nil, err
	}
	remapQudits := make([]int, len(g.Positions))
	for i, p := range g.Positions {
		remapQudits[i] = base + p
	}
	return []Record{{Kind: "block", Name: fmt.Sprintf("REMAP%v", remapQudits), Children: innerRecords}}, nil
}

func (g *Remap) String() string {
	return fmt.Sprintf("Remap(%s, positions=%v)", g.Inner, g.Positions)
}
