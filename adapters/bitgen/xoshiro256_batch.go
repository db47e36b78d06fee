package bitgen

import "math/bits"

// lane is a pair of words updated together, the unit a two-wide vector
// register would hold.
type lane [2]uint64

func (a lane) xor(b lane) lane {
	return lane{a[0] ^ b[0], a[1] ^ b[1]}
}

func (a lane) swap() lane {
	return lane{a[1], a[0]}
}

// xoshiro256Lanes is the xoshiro256 engine laid out as two lanes,
// lo = (s0, s1) and hi = (s2, s3). It is bit-identical to xoshiro256.
type xoshiro256Lanes struct {
	lo, hi lane
}

func newXoshiro256Lanes(state [4]uint64) xoshiro256Lanes {
	return xoshiro256Lanes{lo: lane{state[0], state[1]}, hi: lane{state[2], state[3]}}
}

func (x *xoshiro256Lanes) state() [4]uint64 {
	return [4]uint64{x.lo[0], x.lo[1], x.hi[0], x.hi[1]}
}

func (x *xoshiro256Lanes) advance() {
	t := x.lo[1] << 17

	// (s2^s0, s3^s1) is the new upper lane; the lower lane follows from it
	// with the halves crossed over.
	hi := x.hi.xor(x.lo)
	x.lo = x.lo.swap().xor(hi).swap()
	x.hi = hi

	x.hi[0] ^= t
	x.hi[1] = bits.RotateLeft64(x.hi[1], 45)
}

func (x *xoshiro256Lanes) jump() {
	var lo, hi lane
	for _, word := range xoshiro256Jump {
		for b := 0; b < 64; b++ {
			if word&(uint64(1)<<b) != 0 {
				lo = lo.xor(x.lo)
				hi = hi.xor(x.hi)
			}
			x.advance()
		}
	}
	x.lo, x.hi = lo, hi
}

// Xoshiro256StarStarBatch computes xoshiro256** in lane form and can fill a
// whole buffer per call. Its output equals Xoshiro256StarStar from the same
// state.
type Xoshiro256StarStarBatch struct {
	x xoshiro256Lanes
}

func NewXoshiro256StarStarBatch(state [4]uint64) *Xoshiro256StarStarBatch {
	return &Xoshiro256StarStarBatch{x: newXoshiro256Lanes(state)}
}

func (g *Xoshiro256StarStarBatch) Next() uint64 {
	result := bits.RotateLeft64(g.x.lo[1]*5, 7) * 9
	g.x.advance()
	return result
}

// NextBatch fills dst with consecutive outputs.
func (g *Xoshiro256StarStarBatch) NextBatch(dst []uint64) {
	for i := range dst {
		dst[i] = bits.RotateLeft64(g.x.lo[1]*5, 7) * 9
		g.x.advance()
	}
}

func (g *Xoshiro256StarStarBatch) State() [4]uint64 {
	return g.x.state()
}

func (g *Xoshiro256StarStarBatch) Jump() {
	g.x.jump()
}

// Xoshiro256PlusBatch is the lane form of Xoshiro256Plus.
type Xoshiro256PlusBatch struct {
	x xoshiro256Lanes
}

func NewXoshiro256PlusBatch(state [4]uint64) *Xoshiro256PlusBatch {
	return &Xoshiro256PlusBatch{x: newXoshiro256Lanes(state)}
}

func (g *Xoshiro256PlusBatch) Next() uint64 {
	result := g.x.lo[0] + g.x.hi[1]
	g.x.advance()
	return result
}

// NextBatch fills dst with consecutive outputs.
func (g *Xoshiro256PlusBatch) NextBatch(dst []uint64) {
	for i := range dst {
		dst[i] = g.x.lo[0] + g.x.hi[1]
		g.x.advance()
	}
}

func (g *Xoshiro256PlusBatch) State() [4]uint64 {
	return g.x.state()
}

func (g *Xoshiro256PlusBatch) Jump() {
	g.x.jump()
}
