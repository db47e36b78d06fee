package bitgen

import "math/bits"

// Xoroshiro128Plus is xoroshiro128+ 1.0 (a=24, b=16, c=37) with a 2^64 jump.
type Xoroshiro128Plus struct {
	s [2]uint64
}

var xoroshiro128Jump = [2]uint64{0xdf900294d8f554a5, 0x170865df4b3201fc}

func NewXoroshiro128Plus(state [2]uint64) *Xoroshiro128Plus {
	return &Xoroshiro128Plus{s: state}
}

func (g *Xoroshiro128Plus) Next() uint64 {
	s0 := g.s[0]
	s1 := g.s[1]
	result := s0 + s1

	s1 ^= s0
	g.s[0] = bits.RotateLeft64(s0, 24) ^ s1 ^ (s1 << 16)
	g.s[1] = bits.RotateLeft64(s1, 37)

	return result
}

func (g *Xoroshiro128Plus) State() [2]uint64 {
	return g.s
}

// Jump is equivalent to 2^64 calls to Next.
func (g *Xoroshiro128Plus) Jump() {
	var s0, s1 uint64
	for _, word := range xoroshiro128Jump {
		for b := 0; b < 64; b++ {
			if word&(uint64(1)<<b) != 0 {
				s0 ^= g.s[0]
				s1 ^= g.s[1]
			}
			g.Next()
		}
	}
	g.s = [2]uint64{s0, s1}
}
