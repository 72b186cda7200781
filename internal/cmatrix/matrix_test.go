package cmatrix

import (
	"math"
	"testing"
)

func TestIdentityIsUnitary(t *testing.T) {
	id := Identity(4)
	if !id.IsUnitary(1e-9) {
		t.Fatalf("Identity(4) should be unitary")
	}
}

func TestMulAssociativity(t *testing.T) {
	a := Identity(2)
	a.Set(0, 1, complex(0.3, 0.1))
	b := Identity(2)
	b.Set(1, 0, complex(-0.2, 0.4))
	c := Identity(2)
	c.Set(0, 0, complex(0.9, -0.1))

	left, err := MulChain([]*Matrix{a, b, c})
	if err != nil {
		t.Fatalf("MulChain: %v", err)
	}

	ab, err := a.Mul(b)
	if err != nil {
		t.Fatalf("a.Mul(b): %v", err)
	}
	abThenC, err := ab.Mul(c)
	if err != nil {
		t.Fatalf("(a.b).Mul(c): %v", err)
	}

	if FrobeniusDist(left, abThenC) > 1e-9 {
		t.Fatalf("MulChain not associative with pairwise Mul: dist=%g", FrobeniusDist(left, abThenC))
	}
}

func TestKronDimension(t *testing.T) {
	a := Identity(2)
	b := Identity(3)
	k := Kron(a, b)
	if k.Dim != 6 {
		t.Fatalf("Kron(2,3) dim = %d, want 6", k.Dim)
	}
}

func TestKronAssociativity(t *testing.T) {
	a, b, c := Identity(2), Identity(2), Identity(2)
	a.Set(0, 1, complex(0.1, 0))
	b.Set(1, 0, complex(0.2, 0))
	c.Set(0, 0, complex(0.3, 0))

	left, err := KronChain([]*Matrix{a, b, c})
	if err != nil {
		t.Fatalf("KronChain: %v", err)
	}
	abThenC := Kron(Kron(a, b), c)
	if FrobeniusDist(left, abThenC) > 1e-9 {
		t.Fatalf("Kron not associative: dist=%g", FrobeniusDist(left, abThenC))
	}
}

func TestDaggerInvolution(t *testing.T) {
	m := New(2)
	m.Set(0, 0, complex(1, 2))
	m.Set(0, 1, complex(-1, 0.5))
	m.Set(1, 0, complex(0, -3))
	m.Set(1, 1, complex(2, 2))

	back := m.Dagger().Dagger()
	if FrobeniusDist(m, back) > 1e-12 {
		t.Fatalf("Dagger should be an involution, dist=%g", FrobeniusDist(m, back))
	}
}

func TestFrobeniusDistZeroForEqualMatrices(t *testing.T) {
	a := Identity(3)
	b := Identity(3)
	if d := FrobeniusDist(a, b); d != 0 {
		t.Fatalf("FrobeniusDist of equal matrices = %g, want 0", d)
	}
}

func TestTrace(t *testing.T) {
	m := Identity(5)
	if real(m.Trace()) != 5 || math.Abs(imag(m.Trace())) > 1e-12 {
		t.Fatalf("Trace(Identity(5)) = %v, want 5", m.Trace())
	}
}
