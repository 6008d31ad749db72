// Package random provides the seeded pseudo-random stream used by every
// layout pass.
//
// A [Stream] wraps a PCG generator from math/rand/v2, so a given seed yields
// the same sequence on every platform and Go release that keeps PCG stable.
// Streams are never shared between independent layouts: callers derive a
// per-component seed with [Derive] and open a fresh stream for it.
//
//	s := random.New(random.Derive(root, random.OffsetLattice))
//	w := s.Uniform(100, 300)
package random

import "math/rand/v2"

// Seed offsets for sub-layouts that draw from their own streams.
const (
	OffsetLattice uint64 = 972959
	OffsetUV      uint64 = 7919
)

// Stream is a deterministic source of uniform draws.
// It is not safe for concurrent use.
type Stream struct {
	rng  *rand.Rand
	seed uint64
}

// New returns a stream seeded with seed.
func New(seed uint64) *Stream {
	return &Stream{
		rng:  rand.New(rand.NewPCG(seed, seed^0xdeadbeef)),
		seed: seed,
	}
}

// Derive returns the seed for a sub-component: root plus offset.
// Addition wraps on overflow.
func Derive(root, offset uint64) uint64 {
	return root + offset
}

// Seed returns the seed the stream was created with.
func (s *Stream) Seed() uint64 {
	return s.seed
}

// Uniform returns a float in [low, high]. Inverted bounds are swapped and
// equal bounds return low. A draw is consumed either way so that the
// sequence position never depends on the range.
func (s *Stream) Uniform(low, high float64) float64 {
	if low > high {
		low, high = high, low
	}
	f := s.rng.Float64()
	return low + f*(high-low)
}

// IntRange returns an int in [low, high], both inclusive.
// Inverted bounds are swapped.
func (s *Stream) IntRange(low, high int) int {
	if low > high {
		low, high = high, low
	}
	return low + s.rng.IntN(high-low+1)
}
