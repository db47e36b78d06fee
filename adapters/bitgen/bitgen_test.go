package bitgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draw(g interface{ Next() uint64 }, n int) []uint64 {
	out := make([]uint64, n)
	for i := range out {
		out[i] = g.Next()
	}
	return out
}

func TestReferenceOutputs(t *testing.T) {
	var xs1024 [16]uint64
	for i := range xs1024 {
		xs1024[i] = uint64(i + 1)
	}

	tests := []struct {
		name     string
		gen      interface{ Next() uint64 }
		expected []uint64
	}{
		{"splitmix64 seed 0", NewSplitmix64(0),
			[]uint64{0xe220a8397b1dcdaf, 0x6e789e6aa1b965f4, 0x06c45d188009454f, 0xf88bb8a8724c81ec}},
		{"splitmix64 seed 1234567", NewSplitmix64(1234567),
			[]uint64{0x599ed017fb08fc85, 0x2c73f08458540fa5, 0x883ebce5a3f27c77, 0x3fbef740e9177b3f}},
		{"xoshiro256**", NewXoshiro256StarStar([4]uint64{1, 2, 3, 4}),
			[]uint64{11520, 0, 1509978240, 1215971899390074240}},
		{"xoshiro256+", NewXoshiro256Plus([4]uint64{1, 2, 3, 4}),
			[]uint64{5, 211106232532999, 211106635186183, 9223759065350669058}},
		{"xoshiro256** batch", NewXoshiro256StarStarBatch([4]uint64{1, 2, 3, 4}),
			[]uint64{11520, 0, 1509978240, 1215971899390074240}},
		{"xoshiro256+ batch", NewXoshiro256PlusBatch([4]uint64{1, 2, 3, 4}),
			[]uint64{5, 211106232532999, 211106635186183, 9223759065350669058}},
		{"xoroshiro128+", NewXoroshiro128Plus([2]uint64{1, 2}),
			[]uint64{3, 412333834243, 2360170716294286339, 9295852285959843169}},
		{"xorshift128+", NewXorshift128Plus([2]uint64{1, 2}),
			[]uint64{3, 8388645, 33816707, 70368778527840}},
		{"xorshift1024*", NewXorshift1024Star(xs1024),
			[]uint64{13859315694294268191, 660744553483990740, 478363890149751658, 15363185464596488753}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, draw(tt.gen, len(tt.expected)))
		})
	}
}

func TestSplitmix64AcceptsZeroState(t *testing.T) {
	g := NewSplitmix64(0)
	assert.Equal(t, uint64(0), g.State())
	assert.NotZero(t, g.Next())
	assert.Equal(t, uint64(0x9e3779b97f4a7c15), g.State())
}

func TestBatchMatchesScalar(t *testing.T) {
	state := [4]uint64{0x0123456789abcdef, 0xfedcba9876543210, 0xdeadbeefcafebabe, 0x0f0f0f0f0f0f0f0f}

	t.Run("xoshiro256**", func(t *testing.T) {
		scalar := NewXoshiro256StarStar(state)
		batch := NewXoshiro256StarStarBatch(state)
		buf := make([]uint64, 1000)
		batch.NextBatch(buf)
		assert.Equal(t, draw(scalar, len(buf)), buf)
		assert.Equal(t, scalar.State(), batch.State())
	})

	t.Run("xoshiro256+", func(t *testing.T) {
		scalar := NewXoshiro256Plus(state)
		batch := NewXoshiro256PlusBatch(state)
		buf := make([]uint64, 1000)
		batch.NextBatch(buf)
		assert.Equal(t, draw(scalar, len(buf)), buf)
		assert.Equal(t, scalar.State(), batch.State())
	})

	t.Run("jump", func(t *testing.T) {
		scalar := NewXoshiro256StarStar(state)
		batch := NewXoshiro256StarStarBatch(state)
		scalar.Jump()
		batch.Jump()
		assert.Equal(t, scalar.State(), batch.State())
		assert.Equal(t, draw(scalar, 16), draw(batch, 16))
	})
}

type jumper interface {
	Next() uint64
	Jump()
}

func TestJumpIsDeterministic(t *testing.T) {
	var s16 [16]uint64
	for i := range s16 {
		s16[i] = uint64(i)*0x9e3779b97f4a7c15 + 1
	}
	s2 := [2]uint64{0x1234, 0x5678}
	s4 := [4]uint64{1, 2, 3, 4}

	tests := []struct {
		name string
		make func() jumper
	}{
		{"xorshift1024*", func() jumper { return NewXorshift1024Star(s16) }},
		{"xorshift128+", func() jumper { return NewXorshift128Plus(s2) }},
		{"xoroshiro128+", func() jumper { return NewXoroshiro128Plus(s2) }},
		{"xoshiro256**", func() jumper { return NewXoshiro256StarStar(s4) }},
		{"xoshiro256+", func() jumper { return NewXoshiro256Plus(s4) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plain := draw(tt.make(), 8)

			a, b := tt.make(), tt.make()
			a.Jump()
			b.Jump()
			jumped := draw(a, 8)
			assert.Equal(t, jumped, draw(b, 8))
			assert.NotEqual(t, plain, jumped)

			// Jumping twice lands somewhere else again.
			c := tt.make()
			c.Jump()
			c.Jump()
			assert.NotEqual(t, jumped, draw(c, 8))
		})
	}
}

func TestXorshift1024StarStateIsCanonical(t *testing.T) {
	var state [16]uint64
	for i := range state {
		state[i] = uint64(i+1) * 0x2545f4914f6cdd1d
	}

	for _, advance := range []int{0, 1, 5, 16, 37} {
		g := NewXorshift1024Star(state)
		draw(g, advance)

		resumed := NewXorshift1024Star(g.State())
		assert.Equal(t, draw(g, 40), draw(resumed, 40), "after %d draws", advance)
	}

	// Jumping with the cursor away from zero must agree with jumping the
	// canonical snapshot.
	g := NewXorshift1024Star(state)
	draw(g, 7)
	resumed := NewXorshift1024Star(g.State())
	g.Jump()
	resumed.Jump()
	assert.Equal(t, g.State(), resumed.State())
}

func TestStateRoundTrip(t *testing.T) {
	t.Run("xoroshiro128+", func(t *testing.T) {
		g := NewXoroshiro128Plus([2]uint64{9, 10})
		draw(g, 3)
		assert.Equal(t, draw(NewXoroshiro128Plus(g.State()), 10), draw(g, 10))
	})
	t.Run("xorshift128+", func(t *testing.T) {
		g := NewXorshift128Plus([2]uint64{9, 10})
		draw(g, 3)
		assert.Equal(t, draw(NewXorshift128Plus(g.State()), 10), draw(g, 10))
	})
	t.Run("xoshiro256+ batch", func(t *testing.T) {
		g := NewXoshiro256PlusBatch([4]uint64{9, 10, 11, 12})
		draw(g, 3)
		assert.Equal(t, draw(NewXoshiro256PlusBatch(g.State()), 10), draw(g, 10))
	})
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name       string
		lookup     string
		expectOK   bool
		stateWords int
		jumpable   bool
	}{
		{"splitmix64", "splitmix64", true, 1, false},
		{"upper case", "XORSHIFT1024STAR", true, 16, true},
		{"padded", "  xoroshiro128plus ", true, 2, true},
		{"batch", "xoshiro256starstar-batch", true, 4, true},
		{"unknown", "mt19937", false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := Lookup(tt.lookup)
			require.Equal(t, tt.expectOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, 64, d.WordBits)
			assert.Equal(t, tt.stateWords, d.StateWords)
			assert.Equal(t, tt.jumpable, d.Jumpable)
		})
	}
}

func TestNames(t *testing.T) {
	names := Names()
	assert.Len(t, names, 8)
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, NameXoshiro256PlusBatch)
}

func TestFamiliesValidate(t *testing.T) {
	assert.NoError(t, Splitmix64Family.Validate())
	assert.NoError(t, Xorshift1024StarFamily.Validate())
	assert.NoError(t, Xorshift128PlusFamily.Validate())
	assert.NoError(t, Xoroshiro128PlusFamily.Validate())
	assert.NoError(t, Xoshiro256StarStarFamily.Validate())
	assert.NoError(t, Xoshiro256PlusFamily.Validate())
	assert.NoError(t, Xoshiro256StarStarBatchFamily.Validate())
	assert.NoError(t, Xoshiro256PlusBatchFamily.Validate())
}
