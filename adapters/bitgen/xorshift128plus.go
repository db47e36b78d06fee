package bitgen

// Xorshift128Plus is xorshift128+ with a 2-word state and a 2^64 jump.
type Xorshift128Plus struct {
	s [2]uint64
}

var xorshift128Jump = [2]uint64{0x8a5cd789635d2dff, 0x121fd2155c472f96}

func NewXorshift128Plus(state [2]uint64) *Xorshift128Plus {
	return &Xorshift128Plus{s: state}
}

func (g *Xorshift128Plus) Next() uint64 {
	s1 := g.s[0]
	s0 := g.s[1]
	result := s0 + s1
	g.s[0] = s0
	s1 ^= s1 << 23
	g.s[1] = s1 ^ s0 ^ (s1 >> 18) ^ (s0 >> 5)
	return result
}

func (g *Xorshift128Plus) State() [2]uint64 {
	return g.s
}

// Jump is equivalent to 2^64 calls to Next.
func (g *Xorshift128Plus) Jump() {
	var s0, s1 uint64
	for _, word := range xorshift128Jump {
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
