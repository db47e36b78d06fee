// Package seed turns seeds into complete generator states.
//
// # Derivation
//
// A seed is expanded through a Splitmix64 generator: starting from the seed,
// exactly StateWords successive outputs are drawn and packed into the target
// family's state. Identical seeds always give identical states.
//
// Splitmix64 is the expansion generator, so a Splitmix64 state is the seed
// itself and no extra step is taken. New(bitgen.Splitmix64Family, s) runs the
// same sequence as bitgen.NewSplitmix64(s).
//
// # Degenerate states
//
// Splitmix64 output is a bijection of its internal counter, so two
// consecutive outputs are never equal. A derived state of two or more words
// therefore can never be all zero, and Derive does not need to check for it.
// States supplied from outside go through generator.Family.CheckState.
package seed

import (
	"gostream/adapters/bitgen"
	"gostream/domain/generator"
	"gostream/internal/random"
)

// Expand draws n words from a Splitmix64 generator started at seed.
func Expand(seed uint64, n int) []uint64 {
	sm := bitgen.NewSplitmix64(seed)
	words := make([]uint64, n)
	for i := range words {
		words[i] = sm.Next()
	}
	return words
}

// Derive returns the state of fam derived from seed.
func Derive[S comparable, G generator.Stateful[S]](fam generator.Family[S, G], seed uint64) S {
	if fam.SeedIsState {
		return fam.FromWords([]uint64{seed})
	}
	return fam.FromWords(Expand(seed, fam.StateWords))
}

// DeriveDefault derives a state from a non-deterministic seed and reports the
// seed so the run can be reproduced.
func DeriveDefault[S comparable, G generator.Stateful[S]](fam generator.Family[S, G]) (S, uint64, error) {
	var zero S
	s, err := random.NewSeed()
	if err != nil {
		return zero, 0, err
	}
	return Derive(fam, s), s, nil
}

// New builds a ready-to-use generator of fam from a single seed word.
func New[S comparable, G generator.Stateful[S]](fam generator.Family[S, G], seed uint64) G {
	return fam.New(Derive(fam, seed))
}

// NewDefault builds a generator of fam from a non-deterministic seed.
func NewDefault[S comparable, G generator.Stateful[S]](fam generator.Family[S, G]) (G, error) {
	state, _, err := DeriveDefault(fam)
	if err != nil {
		var zero G
		return zero, err
	}
	return fam.New(state), nil
}

// FromState builds a generator of fam from a complete, externally supplied
// state, rejecting states the family cannot run from.
func FromState[S comparable, G generator.Stateful[S]](fam generator.Family[S, G], state S) (G, error) {
	if err := fam.CheckState(state); err != nil {
		var zero G
		return zero, err
	}
	return fam.New(state), nil
}
