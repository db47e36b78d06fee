package bitgen

// Splitmix64 is the fixed-increment generator used for seed expansion. Any
// 64-bit value, zero included, is a valid state. It cannot jump.
//
// See http://xoroshiro.di.unimi.it/splitmix64.c
type Splitmix64 uint64

const (
	splitmixIncrement = 0x9e3779b97f4a7c15
	splitmixMul1      = 0xbf58476d1ce4e5b9
	splitmixMul2      = 0x94d049bb133111eb
)

// NewSplitmix64 starts a splitmix64 generator at state x.
func NewSplitmix64(x uint64) *Splitmix64 {
	s := Splitmix64(x)
	return &s
}

func (s *Splitmix64) Next() uint64 {
	*s += splitmixIncrement
	z := uint64(*s)
	z = (z ^ (z >> 30)) * splitmixMul1
	z = (z ^ (z >> 27)) * splitmixMul2
	return z ^ (z >> 31)
}

func (s *Splitmix64) State() uint64 {
	return uint64(*s)
}
