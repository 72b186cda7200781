package synth

import (
	"github.com/hydraresearch/qsynth/internal/circuit"
)

// FrontierEntry is one candidate awaiting expansion (§3 "Frontier entry").
// Circuit is always a *circuit.Product: the root and every expanded child is
// built by appending a search-layer gate onto a Product (§4.6).
type FrontierEntry struct {
	Priority   float64
	Tiebreaker int64
	Depth      int
	Distance   float64
	ThetaSeed  []float64
	Circuit    *circuit.Product
}

// frontierHeap is a container/heap.Interface min-heap ordered by the
// lexicographic (Priority, Tiebreaker) tuple (§9 "Heap and tiebreaking": "Do
// not rely on stable comparison of circuit payloads — route ties through
// the counter.").
type frontierHeap []*FrontierEntry

func newFrontierHeap() *frontierHeap {
	h := make(frontierHeap, 0)
	return &h
}

func (h frontierHeap) Len() int { return len(h) }

func (h frontierHeap) Less(i, j int) bool {
	if h[i].Priority != h[j].Priority {
		return h[i].Priority < h[j].Priority
	}
	return h[i].Tiebreaker < h[j].Tiebreaker
}

func (h frontierHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *frontierHeap) Push(x interface{}) {
	*h = append(*h, x.(*FrontierEntry))
}

func (h *frontierHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}
