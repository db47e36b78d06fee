// Package generator defines the contract every bit generator family fulfils.
//
// A generator is a deterministic state machine producing fixed-width words.
// Families that can advance their state by a large fixed stride in constant
// time additionally implement Jumper; the stream splitting policies that rely
// on jump-ahead bound their type parameters by JumpStateful, so combining them
// with a family that cannot jump fails to compile.
package generator

import (
	"gostream/internal/errors"
)

// SamplerWordBits is the word width the typed sampling layer is built for.
const SamplerWordBits = 64

// Generator produces the next word and advances its state.
type Generator interface {
	Next() uint64
}

// Jumper is a generator that can jump ahead.
type Jumper interface {
	Generator
	Jump()
}

// Stateful is a generator whose state can be snapshotted. Resuming a fresh
// generator from the returned state reproduces the same future sequence.
type Stateful[S comparable] interface {
	Generator
	State() S
}

// JumpStateful is required by sequence splitting.
type JumpStateful[S comparable] interface {
	Stateful[S]
	Jump()
}

// Family describes one generator family: its declared capabilities and how to
// build an instance from a fully specified state.
type Family[S comparable, G Stateful[S]] struct {
	Name       string
	WordBits   int
	StateWords int
	Jumpable   bool
	// ZeroInvalid marks families whose recurrence is stuck at the all-zero state.
	ZeroInvalid bool
	// SeedIsState marks the expansion family itself: a seed word is already a
	// complete state and is used as is.
	SeedIsState bool

	// New constructs a generator from a complete state. It never validates;
	// callers holding untrusted state go through CheckState first.
	New func(S) G
	// FromWords packs exactly StateWords words into a state.
	FromWords func([]uint64) S
}

// Validate rejects family declarations the typed sampler cannot serve.
func (f Family[S, G]) Validate() error {
	if f.New == nil || f.FromWords == nil {
		return errors.ConfigInvalid(f.Name + ": family is missing its constructors")
	}
	if f.StateWords <= 0 {
		return errors.ConfigInvalid(f.Name + ": state must hold at least one word")
	}
	if f.SeedIsState && f.StateWords != 1 {
		return errors.ConfigInvalid(f.Name + ": a seed word can only stand in for a one-word state")
	}
	if f.WordBits != SamplerWordBits {
		return errors.WidthUnsupported(f.Name, f.WordBits)
	}
	return nil
}

// CheckState rejects the all-zero state for families that declare it invalid.
func (f Family[S, G]) CheckState(state S) error {
	var zero S
	if f.ZeroInvalid && state == zero {
		return errors.DegenerateState(f.Name)
	}
	return nil
}

// StateFromWords validates the word count of an externally supplied state
// before packing it.
func (f Family[S, G]) StateFromWords(words []uint64) (S, error) {
	var zero S
	if len(words) != f.StateWords {
		return zero, errors.Newf(errors.CodeInvalidInput,
			"%s: state needs %d words, got %d", f.Name, f.StateWords, len(words))
	}
	state := f.FromWords(words)
	if err := f.CheckState(state); err != nil {
		return zero, err
	}
	return state, nil
}

// Descriptor is the type-erased view of a family used by registries and
// configuration, where the concrete state type is not known statically.
type Descriptor struct {
	Name       string
	WordBits   int
	StateWords int
	Jumpable   bool
}

// Describe returns the capability declaration of the family.
func (f Family[S, G]) Describe() Descriptor {
	return Descriptor{
		Name:       f.Name,
		WordBits:   f.WordBits,
		StateWords: f.StateWords,
		Jumpable:   f.Jumpable,
	}
}
