// Package cmatrix implements dense complex matrix algebra for circuit
// composition: matrix product, Kronecker product, conjugate transpose, and
// a Frobenius-norm distance. The distance the synthesizer optimizes against
// is evalfunc's trace distance, not the one defined here.
package cmatrix

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Matrix is a dense D x D complex matrix stored row-major.
type Matrix struct {
	Dim  int
	Data []complex128
}

// New allocates a zeroed dim x dim matrix.
func New(dim int) *Matrix {
	return &Matrix{Dim: dim, Data: make([]complex128, dim*dim)}
}

// Identity returns the dim x dim identity matrix.
func Identity(dim int) *Matrix {
	m := New(dim)
	for i := 0; i < dim; i++ {
		m.Set(i, i, 1)
	}
	return m
}

// At returns the element at (row, col).
func (m *Matrix) At(row, col int) complex128 {
	return m.Data[row*m.Dim+col]
}

// Set assigns the element at (row, col).
func (m *Matrix) Set(row, col int, v complex128) {
	m.Data[row*m.Dim+col] = v
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	out := New(m.Dim)
	copy(out.Data, m.Data)
	return out
}

// Dagger returns the conjugate transpose.
func (m *Matrix) Dagger() *Matrix {
	out := New(m.Dim)
	for i := 0; i < m.Dim; i++ {
		for j := 0; j < m.Dim; j++ {
			out.Set(j, i, cmplx.Conj(m.At(i, j)))
		}
	}
	return out
}

// Mul returns m * other (standard matrix product).
func (m *Matrix) Mul(other *Matrix) (*Matrix, error) {
	if m.Dim != other.Dim {
		return nil, fmt.Errorf("cmatrix: Mul dimension mismatch %d != %d", m.Dim, other.Dim)
	}
	n := m.Dim
	out := New(n)
	for i := 0; i < n; i++ {
		for k := 0; k < n; k++ {
			a := m.At(i, k)
			if a == 0 {
				continue
			}
			for j := 0; j < n; j++ {
				out.Data[i*n+j] += a * other.At(k, j)
			}
		}
	}
	return out, nil
}

// MulChain left-multiplies a sequence of matrices in left-to-right order:
// ms[0] * ms[1] * ... * ms[k-1]. Used by Product nodes (§4.2: "left
// multiplication order = the repository's convention").
func MulChain(ms []*Matrix) (*Matrix, error) {
	if len(ms) == 0 {
		return nil, fmt.Errorf("cmatrix: MulChain requires at least one matrix")
	}
	out := ms[0]
	for _, next := range ms[1:] {
		var err error
		out, err = out.Mul(next)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Kron returns the Kronecker (tensor) product m (x) other.
func Kron(m, other *Matrix) *Matrix {
	na, nb := m.Dim, other.Dim
	n := na * nb
	out := New(n)
	for i := 0; i < na; i++ {
		for j := 0; j < na; j++ {
			a := m.At(i, j)
			if a == 0 {
				continue
			}
			for p := 0; p < nb; p++ {
				for q := 0; q < nb; q++ {
					out.Set(i*nb+p, j*nb+q, a*other.At(p, q))
				}
			}
		}
	}
	return out
}

// KronChain iterates Kron left to right over a sequence of matrices.
func KronChain(ms []*Matrix) (*Matrix, error) {
	if len(ms) == 0 {
		return nil, fmt.Errorf("cmatrix: KronChain requires at least one matrix")
	}
	out := ms[0]
	for _, next := range ms[1:] {
		out = Kron(out, next)
	}
	return out, nil
}

// Trace returns the sum of the diagonal elements.
func (m *Matrix) Trace() complex128 {
	var sum complex128
	for i := 0; i < m.Dim; i++ {
		sum += m.At(i, i)
	}
	return sum
}

// FrobeniusDist returns ||a - b||_F, the Frobenius-norm distance.
func FrobeniusDist(a, b *Matrix) float64 {
	var sum float64
	for i := range a.Data {
		d := a.Data[i] - b.Data[i]
		sum += real(d)*real(d) + imag(d)*imag(d)
	}
	return math.Sqrt(sum)
}

// IsUnitary reports whether m * m^dagger approximates the identity within eps.
// Used only by tests (§8 "Matrix unitarity" property); gate primitives are
// otherwise trusted to produce unitary output per the Data Model invariants.
func (m *Matrix) IsUnitary(eps float64) bool {
	prod, err := m.Mul(m.Dagger())
	if err != nil {
		return false
	}
	id := Identity(m.Dim)
	return FrobeniusDist(prod, id) < eps
}
