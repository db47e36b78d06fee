package source

import (
	"strings"

	"gostream/adapters/bitgen"
	"gostream/domain/generator"
	"gostream/internal/errors"
	"gostream/internal/random"
)

// Policy names accepted by Open.
const (
	PolicySpacing   = "spacing"
	PolicySplitting = "splitting"
)

// Options selects a source at runtime, where family and policy come from
// configuration rather than from the type system.
type Options struct {
	Family       string
	Policy       string
	Perservative bool
	// Seed is optional; nil draws a non-deterministic seed.
	Seed *uint64
}

// Open builds the source described by opts and returns it together with the
// seed it was built from.
func Open(opts Options) (Source, uint64, error) {
	family := strings.ToLower(strings.TrimSpace(opts.Family))
	if _, ok := bitgen.Lookup(family); !ok {
		return nil, 0, errors.Newf(errors.CodeConfigInvalid, "unknown generator family %q", opts.Family)
	}

	s, err := resolveSeed(opts.Seed)
	if err != nil {
		return nil, 0, err
	}

	var src Source
	switch strings.ToLower(strings.TrimSpace(opts.Policy)) {
	case PolicySpacing:
		src, err = openSpacing(family, s, opts.Perservative)
	case PolicySplitting:
		src, err = openSplitting(family, s, opts.Perservative)
	default:
		return nil, 0, errors.Newf(errors.CodeConfigInvalid, "unknown source policy %q", opts.Policy)
	}
	if err != nil {
		return nil, 0, err
	}
	return src, s, nil
}

func resolveSeed(s *uint64) (uint64, error) {
	if s != nil {
		return *s, nil
	}
	v, err := random.NewSeed()
	if err != nil {
		return 0, errors.Wrap(err, "source seed")
	}
	return v, nil
}

func openSpacing(family string, s uint64, perservative bool) (Source, error) {
	switch family {
	case bitgen.NameSplitmix64:
		return spacing(bitgen.Splitmix64Family, s, perservative)
	case bitgen.NameXorshift1024Star:
		return spacing(bitgen.Xorshift1024StarFamily, s, perservative)
	case bitgen.NameXorshift128Plus:
		return spacing(bitgen.Xorshift128PlusFamily, s, perservative)
	case bitgen.NameXoroshiro128Plus:
		return spacing(bitgen.Xoroshiro128PlusFamily, s, perservative)
	case bitgen.NameXoshiro256StarStar:
		return spacing(bitgen.Xoshiro256StarStarFamily, s, perservative)
	case bitgen.NameXoshiro256Plus:
		return spacing(bitgen.Xoshiro256PlusFamily, s, perservative)
	case bitgen.NameXoshiro256StarStarBatch:
		return spacing(bitgen.Xoshiro256StarStarBatchFamily, s, perservative)
	case bitgen.NameXoshiro256PlusBatch:
		return spacing(bitgen.Xoshiro256PlusBatchFamily, s, perservative)
	}
	return nil, errors.Newf(errors.CodeConfigInvalid, "unknown generator family %q", family)
}

func openSplitting(family string, s uint64, perservative bool) (Source, error) {
	switch family {
	case bitgen.NameSplitmix64:
		return nil, errors.ConfigInvalid(family + ": sequence splitting requires a family with jump-ahead")
	case bitgen.NameXorshift1024Star:
		return splitting(bitgen.Xorshift1024StarFamily, s, perservative)
	case bitgen.NameXorshift128Plus:
		return splitting(bitgen.Xorshift128PlusFamily, s, perservative)
	case bitgen.NameXoroshiro128Plus:
		return splitting(bitgen.Xoroshiro128PlusFamily, s, perservative)
	case bitgen.NameXoshiro256StarStar:
		return splitting(bitgen.Xoshiro256StarStarFamily, s, perservative)
	case bitgen.NameXoshiro256Plus:
		return splitting(bitgen.Xoshiro256PlusFamily, s, perservative)
	case bitgen.NameXoshiro256StarStarBatch:
		return splitting(bitgen.Xoshiro256StarStarBatchFamily, s, perservative)
	case bitgen.NameXoshiro256PlusBatch:
		return splitting(bitgen.Xoshiro256PlusBatchFamily, s, perservative)
	}
	return nil, errors.Newf(errors.CodeConfigInvalid, "unknown generator family %q", family)
}

// spacing and splitting return the Source interface so a failed constructor
// yields a nil interface rather than a typed nil pointer.
func spacing[S comparable, G generator.Stateful[S]](fam generator.Family[S, G], s uint64, perservative bool) (Source, error) {
	sp, err := NewSpacing(fam, s, perservative)
	if err != nil {
		return nil, err
	}
	return sp, nil
}

func splitting[S comparable, G generator.JumpStateful[S]](fam generator.Family[S, G], s uint64, perservative bool) (Source, error) {
	ss, err := NewSequenceSplitting(fam, s, perservative)
	if err != nil {
		return nil, err
	}
	return ss, nil
}
