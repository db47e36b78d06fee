// Package source implements stream sources: objects that hand out samplers
// for their current stream and derive new, independent child streams.
//
// # Perservative sources
//
// A perservative source returns a sampler over the same stored state from
// every Generator call until a split changes that state. A non-perservative
// source advances its stored state when it splits, so its own samplers change
// after each NewSource call.
//
// # Ownership
//
// Sources, samplers and generators are single-owner. To spread work over
// several goroutines, split once per worker before the workers start and hand
// each worker its own source.
package source

import (
	"gostream/domain/generator"
	"gostream/internal/sampler"
)

// Source is the policy contract shared by every splitting strategy.
type Source interface {
	// Generator returns a fresh sampler for the current stream.
	Generator() *sampler.Sampler
	// NewSource derives a child stream. Depending on the policy the receiver
	// may move as a side effect.
	NewSource() Source
	// Perservative reports whether Generator is stable across calls that do
	// not split.
	Perservative() bool
	// Family describes the generator family behind the stream.
	Family() generator.Descriptor
}

// TreeIndexer is implemented by sources that occupy a position in the
// implicit binary tree of streams.
type TreeIndexer interface {
	Index() uint64
}
