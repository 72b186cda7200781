// Package gateset defines the pluggable gate-set catalog contract (§6) and a
// concrete default implementation so cmd/qsynth is runnable without a caller
// supplying its own. No example repo carries a gate-set catalog; this is
// built directly from spec.md §6 ("gateset: object exposing d, initial_layer(n),
// search_layers(n)").
package gateset

import (
	"github.com/hydraresearch/qsynth/internal/gate"
)

// SearchLayer is one branch of the search: the gate to append and its
// additive depth cost (§4.5, §8: "weight is the additive depth cost of the
// search layer that produced this child").
type SearchLayer struct {
	Gate   gate.Node
	Weight int
}

// Gateset is the external collaborator the core search driver consumes
// (§1 "Out of scope... The gate-set catalog").
type Gateset interface {
	// D is the qudit dimension this gateset operates over.
	D() int
	// InitialLayer returns the starting circuit layer for an n-qudit
	// target.
	InitialLayer(n int) (gate.Node, error)
	// SearchLayers returns the branching factor: each entry is a gate to
	// append plus its depth weight. An empty result means "no branching"
	// (§7's GatesetHasNoBranching).
	SearchLayers(n int) ([]SearchLayer, error)
}
