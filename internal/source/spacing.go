package source

import (
	"gostream/adapters/bitgen"
	"gostream/domain/generator"
	"gostream/internal/errors"
	"gostream/internal/random"
	"gostream/internal/sampler"
	"gostream/internal/seed"
)

// Spacing separates streams by reseeding. It keeps a Splitmix64 expansion
// generator and one cached seed word, initState, from which the stream's
// generator state is derived.
//
// Streams from Spacing are independent only in probability: distinct seed
// words give unrelated states, but nothing rules out two streams overlapping.
// With 64-bit seed words and large-period families the chance is negligible.
type Spacing[S comparable, G generator.Stateful[S]] struct {
	fam          generator.Family[S, G]
	perservative bool
	seedgen      bitgen.Splitmix64
	initState    uint64
}

var _ Source = (*Spacing[[4]uint64, *bitgen.Xoshiro256StarStar])(nil)

// NewSpacing creates a spacing source from a seed. The seed is also the full
// native state of the expansion generator, so there is no separate
// constructor taking a state.
func NewSpacing[S comparable, G generator.Stateful[S]](fam generator.Family[S, G], s uint64, perservative bool) (*Spacing[S, G], error) {
	if err := fam.Validate(); err != nil {
		return nil, errors.Wrap(err, "spacing source")
	}
	return newSpacing(fam, s, perservative), nil
}

// NewSpacingDefault creates a spacing source from a non-deterministic seed and
// returns the seed used.
func NewSpacingDefault[S comparable, G generator.Stateful[S]](fam generator.Family[S, G], perservative bool) (*Spacing[S, G], uint64, error) {
	s, err := random.NewSeed()
	if err != nil {
		return nil, 0, errors.Wrap(err, "spacing source seed")
	}
	sp, err := NewSpacing(fam, s, perservative)
	return sp, s, err
}

func newSpacing[S comparable, G generator.Stateful[S]](fam generator.Family[S, G], s uint64, perservative bool) *Spacing[S, G] {
	sp := &Spacing[S, G]{
		fam:          fam,
		perservative: perservative,
		seedgen:      bitgen.Splitmix64(s),
	}
	sp.initState = sp.seedgen.Next()
	return sp
}

// Impl returns a generator of the family at the stream's current state.
func (sp *Spacing[S, G]) Impl() G {
	return seed.New(sp.fam, sp.initState)
}

func (sp *Spacing[S, G]) Generator() *sampler.Sampler {
	return sampler.New(sp.Impl())
}

// Split derives a child. A non-perservative source first draws a new
// initState, which also changes its own stream.
func (sp *Spacing[S, G]) Split() *Spacing[S, G] {
	if !sp.perservative {
		sp.initState = sp.seedgen.Next()
	}
	return newSpacing(sp.fam, sp.initState, sp.perservative)
}

func (sp *Spacing[S, G]) NewSource() Source {
	return sp.Split()
}

func (sp *Spacing[S, G]) Perservative() bool {
	return sp.perservative
}

func (sp *Spacing[S, G]) Family() generator.Descriptor {
	return sp.fam.Describe()
}

// InitState is the seed word the current stream is derived from.
func (sp *Spacing[S, G]) InitState() uint64 {
	return sp.initState
}

// Clone returns an independent copy; both copies evolve identically.
func (sp *Spacing[S, G]) Clone() *Spacing[S, G] {
	c := *sp
	return &c
}
