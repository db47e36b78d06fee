package ports

import (
	"context"
	"math/rand"

	"gostream/internal/sampler"
)

// StreamKey names one stream of a run. Empty fields are not part of the name,
// so {RunID: "r"} and {RunID: "r", Stage: ""} select the same stream.
type StreamKey struct {
	RunID string
	Stage string
	Key   string
}

// RNGPort hands out named, reproducible streams. The same name and seed give
// the same stream in every process; different names give unrelated streams.
type RNGPort interface {
	// SeededStream returns the stream for a single name as a math/rand generator.
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)

	// Stream returns the stream for a run/stage/key triple as a math/rand generator.
	Stream(ctx context.Context, key StreamKey, baseSeed int64) (*rand.Rand, error)

	// Sampler returns the same stream as Stream with typed extraction.
	Sampler(ctx context.Context, key StreamKey, baseSeed int64) (*sampler.Sampler, error)

	// ValidateSeed checks the first Float64 draws of a named stream against expected.
	ValidateSeed(ctx context.Context, name string, seed int64, expected []float64) error
}
