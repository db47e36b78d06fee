package rng

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"gostream/internal"
	"gostream/internal/errors"
	"gostream/internal/sampler"
	"gostream/internal/source"
	"gostream/ports"
)

// StreamAdapter implements ports.RNGPort on top of stream sources. Every
// named stream is the root stream of a source whose seed combines the name
// hashes with the caller's seed.
type StreamAdapter struct {
	family       string
	policy       string
	perservative bool
	logger       *internal.Logger
}

var _ ports.RNGPort = (*StreamAdapter)(nil)

// NewStreamAdapter creates an adapter for the given family and policy. The
// combination is validated once, up front.
func NewStreamAdapter(family, policy string, perservative bool, logger *internal.Logger) (*StreamAdapter, error) {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	a := &StreamAdapter{
		family:       family,
		policy:       policy,
		perservative: perservative,
		logger:       logger.Named("rng"),
	}
	if _, err := a.sampler(0); err != nil {
		return nil, errors.Wrap(err, "rng adapter")
	}
	return a, nil
}

// SeededStream creates a deterministic random number generator for a named operation
func (a *StreamAdapter) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	word := uint64(seed) ^ hashString(name)
	a.logger.Trace("stream %q seed=%d word=%#x", name, seed, word)
	return a.rand(word)
}

// Stream creates a deterministic RNG stream for a run/stage/key triple
func (a *StreamAdapter) Stream(ctx context.Context, key ports.StreamKey, baseSeed int64) (*rand.Rand, error) {
	s, err := a.Sampler(ctx, key, baseSeed)
	if err != nil {
		return nil, err
	}
	return a.wrap(s), nil
}

// Sampler returns the stream for key with typed extraction
func (a *StreamAdapter) Sampler(ctx context.Context, key ports.StreamKey, baseSeed int64) (*sampler.Sampler, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	word := keyWord(key, baseSeed)
	a.logger.Trace("stream run=%s stage=%s key=%s word=%#x", key.RunID, key.Stage, key.Key, word)
	return a.sampler(word)
}

// ValidateSeed checks that the first draws of a named stream match expected
func (a *StreamAdapter) ValidateSeed(ctx context.Context, name string, seed int64, expected []float64) error {
	r, err := a.SeededStream(ctx, name, seed)
	if err != nil {
		return err
	}
	for i, want := range expected {
		got := r.Float64()
		if math.Abs(got-want) > 1e-12 {
			return errors.ValidationError(fmt.Sprintf(
				"stream %q seed %d: draw %d = %v, expected %v", name, seed, i, got, want))
		}
	}
	return nil
}

func (a *StreamAdapter) rand(word uint64) (*rand.Rand, error) {
	s, err := a.sampler(word)
	if err != nil {
		return nil, err
	}
	return a.wrap(s), nil
}

func (a *StreamAdapter) wrap(s *sampler.Sampler) *rand.Rand {
	return rand.New(&randSource{s: s, reseed: a.sampler})
}

func (a *StreamAdapter) sampler(word uint64) (*sampler.Sampler, error) {
	src, _, err := source.Open(source.Options{
		Family:       a.family,
		Policy:       a.policy,
		Perservative: a.perservative,
		Seed:         &word,
	})
	if err != nil {
		return nil, err
	}
	return src.Generator(), nil
}

// randSource adapts a Sampler to math/rand. Seed restarts the stream from a
// new seed word with the adapter's family and policy.
type randSource struct {
	s      *sampler.Sampler
	reseed func(uint64) (*sampler.Sampler, error)
}

var _ rand.Source64 = (*randSource)(nil)

func (r *randSource) Int63() int64   { return r.s.Int63() }
func (r *randSource) Uint64() uint64 { return r.s.Uint64() }

func (r *randSource) Seed(seed int64) {
	s, err := r.reseed(uint64(seed))
	if err != nil {
		// The configuration was validated when the adapter was built.
		panic(err)
	}
	r.s = s
}

// keyWord folds the non-empty parts of key into the base seed
func keyWord(key ports.StreamKey, baseSeed int64) uint64 {
	word := uint64(baseSeed)
	for _, part := range []string{key.RunID, key.Stage, key.Key} {
		if part != "" {
			word = word*31 + hashString(part)
		}
	}
	return word
}

// hashString is djb2 widened to 64 bits
func hashString(s string) uint64 {
	var hash uint64 = 5381
	for _, c := range s {
		hash = ((hash << 5) + hash) + uint64(c)
	}
	return hash
}
