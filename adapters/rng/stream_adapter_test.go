package rng

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gostream/internal"
	"gostream/internal/errors"
	"gostream/ports"
)

func newAdapter(t *testing.T) *StreamAdapter {
	t.Helper()
	a, err := NewStreamAdapter("xoshiro256starstar", "splitting", true, internal.NewLogger(internal.LogLevelError))
	require.NoError(t, err)
	return a
}

func TestNewStreamAdapterRejectsBadConfig(t *testing.T) {
	_, err := NewStreamAdapter("splitmix64", "splitting", true, nil)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))

	_, err = NewStreamAdapter("nope", "spacing", true, nil)
	assert.Error(t, err)
}

func TestSeededStreamIsDeterministic(t *testing.T) {
	a := newAdapter(t)
	ctx := context.Background()

	r1, err := a.SeededStream(ctx, "permutation", 42)
	require.NoError(t, err)
	r2, err := a.SeededStream(ctx, "permutation", 42)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		require.Equal(t, r1.Int63(), r2.Int63())
	}

	other, err := a.SeededStream(ctx, "bootstrap", 42)
	require.NoError(t, err)
	fresh, err := a.SeededStream(ctx, "permutation", 42)
	require.NoError(t, err)
	assert.NotEqual(t, fresh.Uint64(), other.Uint64())
}

func TestStreamTriples(t *testing.T) {
	a := newAdapter(t)
	ctx := context.Background()

	first := func(run, stage, key string) uint64 {
		r, err := a.Stream(ctx, ports.StreamKey{RunID: run, Stage: stage, Key: key}, 7)
		require.NoError(t, err)
		return r.Uint64()
	}

	assert.Equal(t, first("run-1", "sweep", "x"), first("run-1", "sweep", "x"))
	assert.NotEqual(t, first("run-1", "sweep", "x"), first("run-1", "sweep", "y"))
	assert.NotEqual(t, first("run-1", "sweep", "x"), first("run-2", "sweep", "x"))
	// Empty parts are skipped, not hashed.
	assert.Equal(t, first("run-1", "", ""), first("run-1", "", ""))
	assert.Equal(t, keyWord(ports.StreamKey{RunID: "r"}, 7), keyWord(ports.StreamKey{RunID: "r", Stage: ""}, 7))
	assert.Equal(t, uint64(7), keyWord(ports.StreamKey{}, 7))
}

func TestSamplerMatchesStream(t *testing.T) {
	a := newAdapter(t)
	ctx := context.Background()
	key := ports.StreamKey{RunID: "run-9", Stage: "bootstrap", Key: "b"}

	s, err := a.Sampler(ctx, key, 5)
	require.NoError(t, err)
	r, err := a.Stream(ctx, key, 5)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		require.Equal(t, s.Uint64(), r.Uint64())
	}
}

func TestValidateSeed(t *testing.T) {
	a := newAdapter(t)
	ctx := context.Background()

	r, err := a.SeededStream(ctx, "check", 3)
	require.NoError(t, err)
	expected := []float64{r.Float64(), r.Float64(), r.Float64()}

	assert.NoError(t, a.ValidateSeed(ctx, "check", 3, expected))

	expected[1] += 0.25
	err = a.ValidateSeed(ctx, "check", 3, expected)
	assert.Equal(t, errors.CodeValidationError, errors.GetCode(err))
	assert.Contains(t, err.Error(), `stream "check" seed 3: draw 1`)
}

func TestCancelledContext(t *testing.T) {
	a := newAdapter(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.SeededStream(ctx, "x", 1)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = a.Stream(ctx, ports.StreamKey{RunID: "r", Stage: "s", Key: "k"}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReseed(t *testing.T) {
	a := newAdapter(t)
	r, err := a.SeededStream(context.Background(), "x", 1)
	require.NoError(t, err)

	r.Seed(123)
	first := r.Uint64()
	r.Seed(123)
	assert.Equal(t, first, r.Uint64())
}

func TestHashString(t *testing.T) {
	assert.Equal(t, uint64(5381), hashString(""))
	assert.Equal(t, uint64(5381*33+'a'), hashString("a"))
	assert.NotEqual(t, hashString("ab"), hashString("ba"))
}
