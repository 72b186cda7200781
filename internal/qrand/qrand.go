// Package qrand provides a quantum-safe random stream used to seed
// nondeterministic gate parameters (notably gate.CPIPhase's random diagonal,
// §4.1) in a way that records its seed for reproducibility.
//
// Adapted from the teacher's quantum_safe_random.go (QuantumSafeRandom),
// trimmed to the byte/float stream CPIPhase needs.
package qrand

import (
	"crypto/rand"
	"fmt"
	"math"

	"go.dedis.ch/kyber/v3/xof/blake2xb"
)

// Stream is a seeded, reproducible random stream. Two Streams built from the
// same seed produce identical output, which is what makes a CPIPhase gate's
// "nondeterministic seed" reproducible once recorded (§4.1).
type Stream struct {
	seed   []byte
	stream interface{ Read([]byte) (int, error) }
}

// NewSeed generates a fresh cryptographically secure 32-byte seed.
func NewSeed() ([]byte, error) {
	seed := make([]byte, 32)
	if _, err := rand.Read(seed); err != nil {
		return nil, fmt.Errorf("qrand: failed to generate seed: %w", err)
	}
	return seed, nil
}

// NewStream builds a deterministic random stream from an explicit seed.
func NewStream(seed []byte) *Stream {
	cp := append([]byte(nil), seed...)
	return &Stream{seed: cp, stream: blake2xb.New(cp)}
}

// Seed returns the seed this stream was constructed from, so the caller can
// persist it (e.g. on a checkpointed CPIPhase gate) for later replay.
func (s *Stream) Seed() []byte { return append([]byte(nil), s.seed...) }

// Float64 returns the next pseudo-random value in [0, 1).
func (s *Stream) Float64() float64 {
	var buf [8]byte
	_, _ = s.stream.Read(buf[:])
	u := uint64(0)
	for _, b := range buf {
		u = u<<8 | uint64(b)
	}
	// 53 significant bits, matching math/rand's Float64 precision.
	return float64(u>>11) / float64(uint64(1)<<53)
}

// Phase returns a random phase angle in [0, 2*pi).
func (s *Stream) Phase() float64 {
	return s.Float64() * 2 * math.Pi
}
