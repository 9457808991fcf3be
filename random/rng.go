// Package random holds the two sources of randomness used by world generation:
// a seeded linear congruential generator for order-dependent draws and a pure
// spatial hash for position-dependent ones.
package random

import (
	"fmt"
	"math"
)

// LCG constants. Saved encounters are reproduced from their seed, so these
// values must never change.
const (
	Multiplier = 1103515245
	Increment  = 12345
	Mask       = 0x7fffffff // 2^31-1; the state lives in 31 bits

	period = Mask + 1
)

// RNG is a linear congruential generator. It is not safe for concurrent use:
// every call advances the internal state.
type RNG struct {
	state int64
}

// NewRNG creates a generator from a non-negative seed. Only the low 31 bits of
// the seed are kept. A negative seed is a programming error and panics.
func NewRNG(seed int64) *RNG {
	if seed < 0 {
		panic(fmt.Sprintf("random: negative seed %d", seed))
	}
	return &RNG{state: seed & Mask}
}

// DeriveSeed offsets a seed for a separate stream. The sum wraps into the
// non-negative range, so any valid seed yields a valid derived seed.
func DeriveSeed(seed, offset int64) int64 {
	return (seed + offset) & math.MaxInt64
}

// step advances the state with 64-bit arithmetic masked back to 31 bits, which
// matches the wraparound of 32-bit signed arithmetic followed by & Mask.
func (r *RNG) step() int64 {
	r.state = (r.state*Multiplier + Increment) & Mask
	return r.state
}

// Next returns a float in [0,1)
func (r *RNG) Next() float64 {
	return float64(r.step()) / period
}

// NextInt returns an integer in [min, max], both bounds inclusive
func (r *RNG) NextInt(min, max int) int {
	if max < min {
		min, max = max, min
	}
	return min + int(r.Next()*float64(max-min+1))
}

// NextBool returns true with the given probability
func (r *RNG) NextBool(probability float64) bool {
	return r.Next() < probability
}

// Chance is NextBool with an even probability
func (r *RNG) Chance() bool {
	return r.NextBool(0.5)
}

// Pick returns a uniformly chosen index into a collection of length n
func (r *RNG) Pick(n int) int {
	if n <= 0 {
		return 0
	}
	return r.NextInt(0, n-1)
}

// Shuffle returns a Fisher-Yates permutation of items drawn from r. The input
// slice is left untouched.
func Shuffle[T any](r *RNG, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := r.NextInt(0, i)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
