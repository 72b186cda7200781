package blueprint

import (
	"testing"

	"github.com/hydraresearch/qsynth/internal/circuit"
	"github.com/hydraresearch/qsynth/internal/cmatrix"
	"github.com/hydraresearch/qsynth/internal/gate"
)

func roundTrip(t *testing.T, n gate.Node) gate.Node {
	t.Helper()
	enc, err := Encode(n)
	if err != nil {
		t.Fatalf("Encode(%s): %v", n, err)
	}
	data, err := ToJSON(enc)
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	back, err := FromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	decoded, err := Decode(back)
	if err != nil {
		t.Fatalf("Decode(%s): %v", n, err)
	}
	return decoded
}

func assertSameMatrix(t *testing.T, a, b gate.Node, theta []float64) {
	t.Helper()
	ma, err := a.Matrix(theta)
	if err != nil {
		t.Fatalf("original Matrix: %v", err)
	}
	mb, err := b.Matrix(theta)
	if err != nil {
		t.Fatalf("round-tripped Matrix: %v", err)
	}
	if cmatrix.FrobeniusDist(ma, mb) > 1e-12 {
		t.Fatalf("round trip changed the matrix: dist=%g", cmatrix.FrobeniusDist(ma, mb))
	}
}

func TestRoundTripPrimitives(t *testing.T) {
	cases := []struct {
		name  string
		node  gate.Node
		theta []float64
	}{
		{"identity", gate.NewIdentity(3), nil},
		{"single_qubit", gate.NewSingleQubit(), []float64{0.1, 0.2, 0.3}},
		{"partial_single_qubit", gate.NewPartialSingleQubit(), []float64{0.4, 0.5}},
		{"u3", gate.NewU3(), []float64{0.1, 0.2, 0.3}},
		{"qutrit", gate.NewQutrit(), []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8}},
		{"cnot", gate.NewCNOT(), nil},
		{"cnot_root", gate.NewCNOTRoot(), nil},
		{"csum", gate.NewCSUM(), nil},
		{"cpi", gate.NewCPI(), nil},
		{"cpi_phase", gate.NewCPIPhaseFromSeed([]byte("blueprint-roundtrip-seed-000000")), nil},
		{"crz", gate.NewCRZ(), []float64{0.3}},
		{"nonadjacent_cnot", gate.NewNonadjacentCNOT(3, 0, 2), nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			decoded := roundTrip(t, tc.node)
			assertSameMatrix(t, tc.node, decoded, tc.theta)
		})
	}
}

func TestRoundTripConstant(t *testing.T) {
	u := cmatrix.Identity(2)
	u.Set(0, 1, complex(0.5, -0.5))
	c := gate.NewConstant(u, "custom", 1)
	decoded := roundTrip(t, c)
	assertSameMatrix(t, c, decoded, nil)
}

func TestRoundTripWrappers(t *testing.T) {
	inner := gate.NewSingleQubit()
	controlled := gate.NewControlled(inner, true)
	decoded := roundTrip(t, controlled)
	assertSameMatrix(t, controlled, decoded, []float64{0.1, 0.2, 0.3})

	inv := gate.NewInvert(gate.NewCNOT())
	decodedInv := roundTrip(t, inv)
	assertSameMatrix(t, inv, decodedInv, nil)

	remap, err := gate.NewRemap(gate.NewCNOT(), 3, 2, []int{2, 0})
	if err != nil {
		t.Fatalf("NewRemap: %v", err)
	}
	decodedRemap := roundTrip(t, remap)
	assertSameMatrix(t, remap, decodedRemap, nil)
}

func TestRoundTripComposites(t *testing.T) {
	prod, err := circuit.NewProduct(gate.NewSingleQubit(), gate.NewSingleQubit())
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	decoded := roundTrip(t, prod)
	assertSameMatrix(t, prod, decoded, []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6})

	kron := circuit.NewKronecker(gate.NewSingleQubit(), gate.NewIdentity(2))
	decodedKron := roundTrip(t, kron)
	assertSameMatrix(t, kron, decodedKron, []float64{0.1, 0.2, 0.3})
}

func TestDecodeRejectsUnknownKind(t *testing.T) {
	if _, err := Decode(Node{Kind: "not-a-real-gate"}); err == nil {
		t.Fatalf("expected an error decoding an unknown kind")
	}
}

func TestFromJSONRejectsFutureVersion(t *testing.T) {
	data := []byte(`{"version":99,"kind":"identity","d":2}`)
	if _, err := FromJSON(data); err == nil {
		t.Fatalf("expected an error for an unsupported future version")
	}
}
