package sampler

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gostream/adapters/bitgen"
)

// fixed replays a list of words.
type fixed struct {
	words []uint64
	i     int
}

func (f *fixed) Next() uint64 {
	w := f.words[f.i%len(f.words)]
	f.i++
	return w
}

func newSampler(seed uint64) *Sampler {
	state := [4]uint64{}
	sm := bitgen.NewSplitmix64(seed)
	for i := range state {
		state[i] = sm.Next()
	}
	return New(bitgen.NewXoshiro256StarStar(state))
}

func TestIntegersKeepLowBits(t *testing.T) {
	const word = 0xfedcba9876543210
	s := New(&fixed{words: []uint64{word}})

	assert.Equal(t, uint8(0x10), s.Uint8())
	assert.Equal(t, uint16(0x3210), s.Uint16())
	assert.Equal(t, uint32(0x76543210), s.Uint32())
	assert.Equal(t, uint64(word), s.Uint64())
	assert.Equal(t, int8(0x10), s.Int8())
	assert.Equal(t, int16(0x3210), s.Int16())
	assert.Equal(t, int32(0x76543210), s.Int32())

	var w uint64 = word
	assert.Equal(t, int64(w), s.Int64())
	assert.Equal(t, int64(w), Rand[int64](s))
	assert.Equal(t, uint16(0x3210), Rand[uint16](s))
}

func TestSignedTruncation(t *testing.T) {
	s := New(&fixed{words: []uint64{0x80, 0xffff}})
	assert.Equal(t, int8(-128), s.Int8())
	assert.Equal(t, int16(-1), s.Int16())
}

func TestFloats(t *testing.T) {
	s := New(&fixed{words: []uint64{0, math.MaxUint64, 1 << 63}})

	assert.Equal(t, 0.0, s.Float64())
	assert.Equal(t, 1.0, s.Float64())
	assert.InDelta(t, 0.5, s.Float64(), 1e-15)

	assert.Equal(t, float32(0), Rand[float32](s))
	assert.Equal(t, float32(1), Rand[float32](s))
	assert.InDelta(t, 0.5, float64(Rand[float32](s)), 1e-6)
}

func TestFloatsInUnitInterval(t *testing.T) {
	s := newSampler(1)
	for i := 0; i < 10000; i++ {
		f := s.Float64()
		require.GreaterOrEqual(t, f, 0.0)
		require.LessOrEqual(t, f, 1.0)
		g := s.Float32()
		require.GreaterOrEqual(t, g, float32(0))
		require.LessOrEqual(t, g, float32(1))
	}
}

func TestInt63(t *testing.T) {
	s := New(&fixed{words: []uint64{math.MaxUint64, 2}})
	assert.Equal(t, int64(math.MaxInt64), s.Int63())
	assert.Equal(t, int64(1), s.Int63())
}

func TestRandRangeBounds(t *testing.T) {
	s := newSampler(2024)
	const n = 5000

	t.Run("int", func(t *testing.T) {
		for i := 0; i < n; i++ {
			v := RandRange(s, -10, 10)
			require.GreaterOrEqual(t, v, -10)
			require.Less(t, v, 10)
		}
	})
	t.Run("int8 full range", func(t *testing.T) {
		for i := 0; i < n; i++ {
			v := RandRange[int8](s, math.MinInt8, math.MaxInt8)
			require.Less(t, v, int8(math.MaxInt8))
		}
	})
	t.Run("uint8", func(t *testing.T) {
		for i := 0; i < n; i++ {
			v := RandRange[uint8](s, 200, 210)
			require.GreaterOrEqual(t, v, uint8(200))
			require.Less(t, v, uint8(210))
		}
	})
	t.Run("int64 extremes", func(t *testing.T) {
		for i := 0; i < n; i++ {
			v := RandRange[int64](s, math.MinInt64, math.MaxInt64)
			require.Less(t, v, int64(math.MaxInt64))
		}
	})
	t.Run("negative int64", func(t *testing.T) {
		for i := 0; i < n; i++ {
			v := RandRange[int64](s, -1000, -990)
			require.GreaterOrEqual(t, v, int64(-1000))
			require.Less(t, v, int64(-990))
		}
	})
	t.Run("float64", func(t *testing.T) {
		for i := 0; i < n; i++ {
			v := RandRange(s, 2.5, 3.5)
			require.GreaterOrEqual(t, v, 2.5)
			require.LessOrEqual(t, v, 3.5)
		}
	})
}

func TestRandRangeHitsEveryValue(t *testing.T) {
	s := newSampler(3)
	seen := map[int]bool{}
	for i := 0; i < 2000; i++ {
		seen[RandRange(s, -3, 4)] = true
	}
	assert.Len(t, seen, 7)
}

func TestRangerSignedReduction(t *testing.T) {
	r := Ranger[int64](10, 13)
	assert.Equal(t, int64(10), r(0))
	assert.Equal(t, int64(11), r(1))
	assert.Equal(t, int64(11), r(-1))
	assert.Equal(t, int64(12), r(-2))
	// |MinInt64| = 2^63 = 2 mod 3
	assert.Equal(t, int64(12), r(math.MinInt64))
}

func TestRangerEmptyRangePanics(t *testing.T) {
	assert.Panics(t, func() { Ranger(5, 5) })
	assert.Panics(t, func() { Ranger[uint](9, 3) })
	assert.NotPanics(t, func() { Ranger(1.0, 1.0) })
}

func TestWordsUsesBatchPath(t *testing.T) {
	state := [4]uint64{5, 6, 7, 8}
	batch := New(bitgen.NewXoshiro256PlusBatch(state))
	scalar := New(bitgen.NewXoshiro256Plus(state))

	a := make([]uint64, 100)
	b := make([]uint64, 100)
	batch.Words(a)
	scalar.Words(b)
	assert.Equal(t, b, a)
}

func TestGeneratorAccessor(t *testing.T) {
	g := bitgen.NewSplitmix64(1)
	assert.Same(t, g, New(g).Generator())
}
