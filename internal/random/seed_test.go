package random

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gostream/internal/errors"
)

func withEntropy(t *testing.T, r io.Reader) {
	t.Helper()
	prev := entropy
	entropy = r
	t.Cleanup(func() { entropy = prev })
}

func TestNewSeedReadsLittleEndian(t *testing.T) {
	withEntropy(t, bytes.NewReader([]byte{1, 0, 0, 0, 0, 0, 0, 0x80, 0xff}))

	s, err := NewSeed()
	require.NoError(t, err)
	assert.Equal(t, uint64(0x8000000000000001), s)
}

func TestNewSeedShortRead(t *testing.T) {
	withEntropy(t, bytes.NewReader([]byte{1, 2, 3}))

	_, err := NewSeed()
	require.Error(t, err)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t, errors.CodeInternalError, errors.GetCode(err))
	assert.Panics(t, func() { MustSeed() })
}

func TestNewSeedFromSystem(t *testing.T) {
	a, err := NewSeed()
	require.NoError(t, err)
	b := MustSeed()
	assert.NotEqual(t, a, b)
}
