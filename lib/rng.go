package lib

/* rng.go contains the deterministic random number generator used by the
bench driver and by tests. */

import (
	"math"
)

var (
	xorshiftMaxUint = float64(math.MaxUint32)
)

// RNG is an xorshift random number generator. It is the same as gotetra's
// xorshiftGenerator. It is not thread safe.
type RNG struct {
	w, x, y, z uint32
}

// NewRNG initializes an RNG with a given seed.
func NewRNG(seed uint64) *RNG {
	return &RNG{ uint32(seed), 123456789, 362436069, 521288629 }
}

// Uniform generates a single random number in the range [0, 1).
func (gen *RNG) Uniform() float64 {
	t := gen.x ^ (gen.x << 11)
	gen.x, gen.y, gen.z = gen.y, gen.z, gen.w
	gen.w = gen.w ^ (gen.w >> 19) ^ (t ^ (t >> 8))
	res := float64(math.MaxUint32 - gen.w) / xorshiftMaxUint
	if res == 1.0 { return gen.Uniform() }
	return res
}

// Intn generates a single random integer in the range [0, n).
func (gen *RNG) Intn(n int) int {
	return int(gen.Uniform() * float64(n))
}

// UniqueIndices generates nm distinct random integers in the range [0, n)
// using a partial Fisher-Yates shuffle. It is how the bench driver and tests
// fabricate mover lists.
func (gen *RNG) UniqueIndices(n, nm int) []int32 {
	idx := make([]int32, n)
	for i := range idx { idx[i] = int32(i) }

	for i := 0; i < nm; i++ {
		j := i + gen.Intn(n - i)
		idx[i], idx[j] = idx[j], idx[i]
	}

	return idx[:nm]
}
