// Package random draws the seed word for sources and generators that are
// opened without one. Callers report the drawn seed back to the user so an
// unseeded run can be replayed.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"io"

	"gostream/internal/errors"
)

// entropy is swapped in tests.
var entropy io.Reader = crand.Reader

func readWord(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, errors.Wrap(err, "draw seed word")
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// NewSeed returns a fresh seed word from the operating system.
func NewSeed() (uint64, error) {
	return readWord(entropy)
}

// MustSeed panics when the operating system has no entropy to give.
func MustSeed() uint64 {
	s, err := NewSeed()
	if err != nil {
		panic(err)
	}
	return s
}
