// Package sampler extracts typed values from a bit generator.
//
// # Extraction rules
//
// Every extraction consumes exactly one generator word.
//
//   - Integers of any width keep the low-order bits of the word (the Go
//     conversion from uint64 to the narrower type). The same rule applies to
//     every width and signedness.
//   - Floats divide the word by the largest 64-bit value in the requested
//     precision. The result lies in [0, 1] and reaches 1 only through rounding
//     of words close to the maximum.
//   - Ranged integers reduce with a modulus and are biased toward the low end
//     of the range when its width does not divide 2^64. Signed values are
//     reduced by magnitude. Callers needing unbiased ranges must reject and
//     redraw themselves.
//
// A Sampler is not safe for concurrent use.
package sampler

import (
	"math"
	randv2 "math/rand/v2"
	"unsafe"

	"gostream/domain/generator"
)

// Signed is the set of signed integer types.
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is the set of unsigned integer types.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Integer is the set of integer types.
type Integer interface {
	Signed | Unsigned
}

// Float is the set of floating point types.
type Float interface {
	~float32 | ~float64
}

// Number is every type the sampler can produce.
type Number interface {
	Integer | Float
}

// batcher is implemented by generators that fill buffers natively.
type batcher interface {
	NextBatch(dst []uint64)
}

// Sampler wraps one generator and adds typed extraction on top of it.
type Sampler struct {
	g generator.Generator
}

var _ randv2.Source = (*Sampler)(nil)

// New wraps g. The sampler takes ownership of g.
func New(g generator.Generator) *Sampler {
	return &Sampler{g: g}
}

// Generator returns the wrapped generator, e.g. to jump it.
func (s *Sampler) Generator() generator.Generator {
	return s.g
}

// Next returns the next raw word.
func (s *Sampler) Next() uint64 {
	return s.g.Next()
}

// Words fills dst with raw words, using the generator's batch path when it
// has one.
func (s *Sampler) Words(dst []uint64) {
	if b, ok := s.g.(batcher); ok {
		b.NextBatch(dst)
		return
	}
	for i := range dst {
		dst[i] = s.g.Next()
	}
}

func (s *Sampler) Int() int         { return int(s.g.Next()) }
func (s *Sampler) Uint() uint       { return uint(s.g.Next()) }
func (s *Sampler) Int8() int8       { return int8(s.g.Next()) }
func (s *Sampler) Int16() int16     { return int16(s.g.Next()) }
func (s *Sampler) Int32() int32     { return int32(s.g.Next()) }
func (s *Sampler) Int64() int64     { return int64(s.g.Next()) }
func (s *Sampler) Uint8() uint8     { return uint8(s.g.Next()) }
func (s *Sampler) Uint16() uint16   { return uint16(s.g.Next()) }
func (s *Sampler) Uint32() uint32   { return uint32(s.g.Next()) }
func (s *Sampler) Uint64() uint64   { return s.g.Next() }
func (s *Sampler) Float32() float32 { return float32(s.g.Next()) / float32(math.MaxUint64) }
func (s *Sampler) Float64() float64 { return float64(s.g.Next()) / float64(math.MaxUint64) }

// Int63 returns a non-negative 63-bit value from the high bits of one word,
// as math/rand sources do.
func (s *Sampler) Int63() int64 {
	return int64(s.g.Next() >> 1)
}

// Rand draws one value of type T following the package extraction rules.
func Rand[T Number](s *Sampler) T {
	if isFloat[T]() {
		var zero T
		if unsafe.Sizeof(zero) == 4 {
			return T(s.Float32())
		}
		return T(s.Float64())
	}
	return T(s.g.Next())
}

// Ranger returns the reduction that maps a raw draw of T into [start, end).
// Integer ranges with end <= start panic.
func Ranger[T Number](start, end T) func(T) T {
	switch {
	case isFloat[T]():
		return func(u T) T { return start + u*(end-start) }
	case !(start < end):
		panic("sampler: empty integer range")
	case isSigned[T]():
		width := uint64(int64(end)) - uint64(int64(start))
		return func(a T) T {
			return T(int64(start) + int64(magnitude(int64(a))%width))
		}
	default:
		width := uint64(end - start)
		return func(a T) T { return start + T(uint64(a)%width) }
	}
}

// RandRange draws one value in [start, end).
func RandRange[T Number](s *Sampler, start, end T) T {
	return Ranger(start, end)(Rand[T](s))
}

func magnitude(a int64) uint64 {
	if a < 0 {
		return uint64(-(a + 1)) + 1
	}
	return uint64(a)
}

func isFloat[T Number]() bool {
	one := T(1)
	return one/2 != 0
}

func isSigned[T Number]() bool {
	var zero T
	return zero-1 < zero
}
