package bitgen

// Xorshift1024Star is xorshift1024* with a 16-word state and a 2^512 jump.
//
// The generator keeps a rotating cursor into its state array. State() reports
// the words starting at the cursor, so a generator rebuilt from that snapshot
// starts with its cursor at zero and produces the same sequence.
type Xorshift1024Star struct {
	s [16]uint64
	p int
}

const xorshift1024Mul = 1181783497276652981

var xorshift1024Jump = [16]uint64{
	0x84242f96eca9c41d, 0xa3c65b8776f96855, 0x5b34a39f070b5837, 0x4489affce4f31a1e,
	0x2ffeeb0a48316f40, 0xdc2d9891fe68c022, 0x3659132bb12fea70, 0xaac17d8efa43cab8,
	0xc4cb815590989b13, 0x5ee975283d71c93b, 0x691548c86c1bd540, 0x7910c41d10a1e6a5,
	0x0b5fc64563b3e2a8, 0x047f7684e9fc949d, 0xb99181f2d8f685ca, 0x284600e3f30e38c3,
}

func NewXorshift1024Star(state [16]uint64) *Xorshift1024Star {
	return &Xorshift1024Star{s: state}
}

func (g *Xorshift1024Star) Next() uint64 {
	s0 := g.s[g.p]
	g.p = (g.p + 1) & 15
	s1 := g.s[g.p]
	s1 ^= s1 << 31
	g.s[g.p] = s1 ^ s0 ^ (s1 >> 11) ^ (s0 >> 30)
	return g.s[g.p] * xorshift1024Mul
}

func (g *Xorshift1024Star) State() [16]uint64 {
	var out [16]uint64
	for j := range out {
		out[j] = g.s[(j+g.p)&15]
	}
	return out
}

// Jump is equivalent to 2^512 calls to Next.
func (g *Xorshift1024Star) Jump() {
	var t [16]uint64
	for _, word := range xorshift1024Jump {
		for b := 0; b < 64; b++ {
			if word&(uint64(1)<<b) != 0 {
				for j := range t {
					t[j] ^= g.s[(j+g.p)&15]
				}
			}
			g.Next()
		}
	}
	for j := range t {
		g.s[(j+g.p)&15] = t[j]
	}
}
