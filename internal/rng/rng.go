// Package rng provides the seeded random source shared by every game system.
package rng

import "math/rand"

// Source is the random source consumed by generation, AI, and combat.
// All game randomness flows through a single Source so that a seed and an
// intent sequence fully determine a run.
type Source interface {
	// Intn returns a value in [0, n). n must be positive.
	Intn(n int) int
	// Range returns a value in [lo, hi], inclusive on both ends.
	Range(lo, hi int) int
	// Chance returns true with probability pct/100.
	Chance(pct int) bool
	// Int63 returns a non-negative 63-bit value, used to derive child seeds.
	Int63() int64
}

// Rand is the default Source backed by math/rand.
type Rand struct {
	seed int64
	r    *rand.Rand
}

// New creates a Source seeded with seed. Every seed, 0 included, yields the
// same sequence on every run.
func New(seed int64) *Rand {
	return &Rand{
		seed: seed,
		r:    rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed this source was created with.
func (s *Rand) Seed() int64 { return s.seed }

// Intn returns a value in [0, n).
func (s *Rand) Intn(n int) int {
	if n <= 1 {
		return 0
	}
	return s.r.Intn(n)
}

// Range returns a value in [lo, hi].
func (s *Rand) Range(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + s.Intn(hi-lo+1)
}

// Chance returns true with probability pct/100.
func (s *Rand) Chance(pct int) bool {
	return s.Intn(100) < pct
}

// Int63 returns a non-negative 63-bit value.
func (s *Rand) Int63() int64 {
	return s.r.Int63()
}

// Fixed is a Source that always returns the same offset from the low end.
// It is meant for tests that need a predictable roll.
type Fixed struct {
	// Offset is added to the midpoint of Range; Intn returns it clamped to [0, n).
	Offset int
}

// Intn returns Offset clamped to [0, n).
func (f Fixed) Intn(n int) int {
	switch {
	case n <= 1 || f.Offset < 0:
		return 0
	case f.Offset >= n:
		return n - 1
	default:
		return f.Offset
	}
}

// Range returns the midpoint of [lo, hi] plus Offset, clamped to the range.
func (f Fixed) Range(lo, hi int) int {
	v := lo + (hi-lo)/2 + f.Offset
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Chance is true when Offset is below pct.
func (f Fixed) Chance(pct int) bool {
	return f.Offset < pct
}

// Int63 returns Offset as a non-negative value.
func (f Fixed) Int63() int64 {
	if f.Offset < 0 {
		return int64(-f.Offset)
	}
	return int64(f.Offset)
}

var (
	_ Source = (*Rand)(nil)
	_ Source = Fixed{}
)
