package bitgen

import "math/bits"

// xoshiro256 holds the linear engine shared by xoshiro256** and xoshiro256+.
// The two families differ only in how the output word is scrambled.
type xoshiro256 [4]uint64

var xoshiro256Jump = [4]uint64{0x180ec6d33cfd0aba, 0xd5a61266f0c9392c, 0xa9582618e03fc9aa, 0x39abdc4529b1661c}

func (s *xoshiro256) advance() {
	t := s[1] << 17

	s[2] ^= s[0]
	s[3] ^= s[1]
	s[1] ^= s[2]
	s[0] ^= s[3]

	s[2] ^= t

	s[3] = bits.RotateLeft64(s[3], 45)
}

// jump is equivalent to 2^128 calls to advance.
func (s *xoshiro256) jump() {
	var acc xoshiro256
	for _, word := range xoshiro256Jump {
		for b := 0; b < 64; b++ {
			if word&(uint64(1)<<b) != 0 {
				acc[0] ^= s[0]
				acc[1] ^= s[1]
				acc[2] ^= s[2]
				acc[3] ^= s[3]
			}
			s.advance()
		}
	}
	*s = acc
}

// Xoshiro256StarStar is xoshiro256** 1.0, the all-purpose 4-word family.
type Xoshiro256StarStar struct {
	s xoshiro256
}

func NewXoshiro256StarStar(state [4]uint64) *Xoshiro256StarStar {
	return &Xoshiro256StarStar{s: state}
}

func (g *Xoshiro256StarStar) Next() uint64 {
	result := bits.RotateLeft64(g.s[1]*5, 7) * 9
	g.s.advance()
	return result
}

func (g *Xoshiro256StarStar) State() [4]uint64 {
	return g.s
}

// Jump is equivalent to 2^128 calls to Next.
func (g *Xoshiro256StarStar) Jump() {
	g.s.jump()
}

// Xoshiro256Plus is xoshiro256+ 1.0. Its lowest three bits have low linear
// complexity; prefer the upper bits, e.g. through Float64.
type Xoshiro256Plus struct {
	s xoshiro256
}

func NewXoshiro256Plus(state [4]uint64) *Xoshiro256Plus {
	return &Xoshiro256Plus{s: state}
}

func (g *Xoshiro256Plus) Next() uint64 {
	result := g.s[0] + g.s[3]
	g.s.advance()
	return result
}

func (g *Xoshiro256Plus) State() [4]uint64 {
	return g.s
}

// Jump is equivalent to 2^128 calls to Next.
func (g *Xoshiro256Plus) Jump() {
	g.s.jump()
}
