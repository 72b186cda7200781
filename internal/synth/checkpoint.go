package synth

import (
	"container/heap"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hydraresearch/qsynth/internal/blueprint"
	"github.com/hydraresearch/qsynth/internal/circuit"
)

// blobVersion is bumped whenever the checkpoint schema changes
// incompatibly (§6 "must be self-describing and version-tagged").
const blobVersion = 1

type frontierBlob struct {
	Priority   float64        `json:"priority"`
	Tiebreaker int64          `json:"tiebreaker"`
	Depth      int            `json:"depth"`
	Distance   float64        `json:"distance"`
	ThetaSeed  []float64      `json:"theta_seed,omitempty"`
	Circuit    blueprint.Node `json:"circuit"`
}

// blob is the checkpoint wire tuple of §4.8/§6: "(frontier, best_depth,
// best_distance, best_pair, tiebreaker, elapsed_seconds)".
type blob struct {
	Version        int            `json:"version"`
	Frontier       []frontierBlob `json:"frontier"`
	Tiebreak       int64          `json:"tiebreak"`
	BestDepth      int            `json:"best_depth"`
	BestDistance   float64        `json:"best_distance"`
	BestCircuit    blueprint.Node `json:"best_circuit"`
	BestTheta      []float64      `json:"best_theta,omitempty"`
	ElapsedSeconds float64        `json:"elapsed_seconds"`
}

func encodeState(st *state) ([]byte, error) {
	entries := *st.frontier
	fb := make([]frontierBlob, 0, len(entries))
	for _, e := range entries {
		cb, err := blueprint.Encode(e.Circuit)
		if err != nil {
			return nil, fmt.Errorf("synth: encoding frontier entry: %w", err)
		}
		fb = append(fb, frontierBlob{
			Priority:   e.Priority,
			Tiebreaker: e.Tiebreaker,
			Depth:      e.Depth,
			Distance:   e.Distance,
			ThetaSeed:  e.ThetaSeed,
			Circuit:    cb,
		})
	}
	bestBlueprint, err := blueprint.Encode(st.bestCircuit)
	if err != nil {
		return nil, fmt.Errorf("synth: encoding best circuit: %w", err)
	}
	b := blob{
		Version:        blobVersion,
		Frontier:       fb,
		Tiebreak:       st.tiebreak,
		BestDepth:      st.bestDepth,
		BestDistance:   st.bestDistance,
		BestCircuit:    bestBlueprint,
		BestTheta:      st.bestTheta,
		ElapsedSeconds: st.totalElapsed().Seconds(),
	}
	return json.Marshal(b)
}

func decodeState(data []byte) (*state, error) {
	var b blob
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("synth: %w", err)
	}
	if b.Version > blobVersion {
		return nil, fmt.Errorf("synth: unsupported checkpoint version %d (max %d)", b.Version, blobVersion)
	}

	fh := newFrontierHeap()
	for _, fe := range b.Frontier {
		n, err := blueprint.Decode(fe.Circuit)
		if err != nil {
			return nil, fmt.Errorf("synth: decoding frontier entry: %w", err)
		}
		prod, ok := n.(*circuit.Product)
		if !ok {
			return nil, fmt.Errorf("synth: checkpointed frontier entry is not a Product circuit")
		}
		heap.Push(fh, &FrontierEntry{
			Priority:   fe.Priority,
			Tiebreaker: fe.Tiebreaker,
			Depth:      fe.Depth,
			Distance:   fe.Distance,
			ThetaSeed:  fe.ThetaSeed,
			Circuit:    prod,
		})
	}

	bestNode, err := blueprint.Decode(b.BestCircuit)
	if err != nil {
		return nil, fmt.Errorf("synth: decoding best circuit: %w", err)
	}
	bestProd, ok := bestNode.(*circuit.Product)
	if !ok {
		return nil, fmt.Errorf("synth: checkpointed best circuit is not a Product circuit")
	}

	return &state{
		frontier:     fh,
		tiebreak:     b.Tiebreak,
		bestDepth:    b.BestDepth,
		bestDistance: b.BestDistance,
		bestCircuit:  bestProd,
		bestTheta:    b.BestTheta,
		elapsed:      time.Duration(b.ElapsedSeconds * float64(time.Second)),
		start:        time.Now(),
	}, nil
}
