package seed

import (
	"gostream/adapters/bitgen"
)

// Per-family factories for simple, non-parallel use. Each returns a generator
// seeded through Derive; use the sources in internal/source to obtain
// independent streams.

// Splitmix64 starts a splitmix64 generator directly at s; it is the
// expansion generator and is not itself expanded.
func Splitmix64(s uint64) *bitgen.Splitmix64 {
	return New(bitgen.Splitmix64Family, s)
}

func Xorshift1024Star(s uint64) *bitgen.Xorshift1024Star {
	return New(bitgen.Xorshift1024StarFamily, s)
}

func Xorshift128Plus(s uint64) *bitgen.Xorshift128Plus {
	return New(bitgen.Xorshift128PlusFamily, s)
}

func Xoroshiro128Plus(s uint64) *bitgen.Xoroshiro128Plus {
	return New(bitgen.Xoroshiro128PlusFamily, s)
}

func Xoshiro256StarStar(s uint64) *bitgen.Xoshiro256StarStar {
	return New(bitgen.Xoshiro256StarStarFamily, s)
}

func Xoshiro256Plus(s uint64) *bitgen.Xoshiro256Plus {
	return New(bitgen.Xoshiro256PlusFamily, s)
}

func Xoshiro256StarStarBatch(s uint64) *bitgen.Xoshiro256StarStarBatch {
	return New(bitgen.Xoshiro256StarStarBatchFamily, s)
}

func Xoshiro256PlusBatch(s uint64) *bitgen.Xoshiro256PlusBatch {
	return New(bitgen.Xoshiro256PlusBatchFamily, s)
}
