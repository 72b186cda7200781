package synth

import (
	"container/heap"
	"testing"

	"github.com/hydraresearch/qsynth/internal/circuit"
	"github.com/hydraresearch/qsynth/internal/gate"
)

func sampleCircuit(t *testing.T) *circuit.Product {
	t.Helper()
	p, err := circuit.NewProduct(gate.NewIdentity(2))
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	return p
}

func TestFrontierPopsLowestPriorityFirst(t *testing.T) {
	fh := newFrontierHeap()
	c := sampleCircuit(t)
	heap.Push(fh, &FrontierEntry{Priority: 3, Tiebreaker: 1, Circuit: c})
	heap.Push(fh, &FrontierEntry{Priority: 1, Tiebreaker: 2, Circuit: c})
	heap.Push(fh, &FrontierEntry{Priority: 2, Tiebreaker: 3, Circuit: c})

	var order []float64
	for fh.Len() > 0 {
		order = append(order, heap.Pop(fh).(*FrontierEntry).Priority)
	}
	want := []float64{1, 2, 3}
	for i, p := range want {
		if order[i] != p {
			t.Fatalf("pop order = %v, want %v", order, want)
		}
	}
}

func TestFrontierTiebreaksOnEqualPriority(t *testing.T) {
	fh := newFrontierHeap()
	c := sampleCircuit(t)
	heap.Push(fh, &FrontierEntry{Priority: 1, Tiebreaker: 5, Circuit: c})
	heap.Push(fh, &FrontierEntry{Priority: 1, Tiebreaker: 2, Circuit: c})
	heap.Push(fh, &FrontierEntry{Priority: 1, Tiebreaker: 9, Circuit: c})

	var order []int64
	for fh.Len() > 0 {
		order = append(order, heap.Pop(fh).(*FrontierEntry).Tiebreaker)
	}
	want := []int64{2, 5, 9}
	for i, tb := range want {
		if order[i] != tb {
			t.Fatalf("tiebreak pop order = %v, want %v", order, want)
		}
	}
}

func TestFrontierLenReflectsPushAndPop(t *testing.T) {
	fh := newFrontierHeap()
	c := sampleCircuit(t)
	if fh.Len() != 0 {
		t.Fatalf("a freshly built heap should be empty, got Len()=%d", fh.Len())
	}
	heap.Push(fh, &FrontierEntry{Priority: 1, Circuit: c})
	heap.Push(fh, &FrontierEntry{Priority: 2, Circuit: c})
	if fh.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", fh.Len())
	}
	heap.Pop(fh)
	if fh.Len() != 1 {
		t.Fatalf("Len() after one Pop = %d, want 1", fh.Len())
	}
}
