package bitgen

import (
	"sort"
	"strings"

	"gostream/domain/generator"
)

// Family names accepted by Lookup and configuration.
const (
	NameSplitmix64              = "splitmix64"
	NameXorshift1024Star        = "xorshift1024star"
	NameXorshift128Plus         = "xorshift128plus"
	NameXoroshiro128Plus        = "xoroshiro128plus"
	NameXoshiro256StarStar      = "xoshiro256starstar"
	NameXoshiro256Plus          = "xoshiro256plus"
	NameXoshiro256StarStarBatch = "xoshiro256starstar-batch"
	NameXoshiro256PlusBatch     = "xoshiro256plus-batch"
)

var Splitmix64Family = generator.Family[uint64, *Splitmix64]{
	Name:        NameSplitmix64,
	WordBits:    64,
	StateWords:  1,
	SeedIsState: true,
	New:         NewSplitmix64,
	FromWords:   func(w []uint64) uint64 { return w[0] },
}

var Xorshift1024StarFamily = generator.Family[[16]uint64, *Xorshift1024Star]{
	Name:        NameXorshift1024Star,
	WordBits:    64,
	StateWords:  16,
	Jumpable:    true,
	ZeroInvalid: true,
	New:         NewXorshift1024Star,
	FromWords:   func(w []uint64) [16]uint64 { return [16]uint64(w) },
}

var Xorshift128PlusFamily = generator.Family[[2]uint64, *Xorshift128Plus]{
	Name:        NameXorshift128Plus,
	WordBits:    64,
	StateWords:  2,
	Jumpable:    true,
	ZeroInvalid: true,
	New:         NewXorshift128Plus,
	FromWords:   words2,
}

var Xoroshiro128PlusFamily = generator.Family[[2]uint64, *Xoroshiro128Plus]{
	Name:        NameXoroshiro128Plus,
	WordBits:    64,
	StateWords:  2,
	Jumpable:    true,
	ZeroInvalid: true,
	New:         NewXoroshiro128Plus,
	FromWords:   words2,
}

var Xoshiro256StarStarFamily = generator.Family[[4]uint64, *Xoshiro256StarStar]{
	Name:        NameXoshiro256StarStar,
	WordBits:    64,
	StateWords:  4,
	Jumpable:    true,
	ZeroInvalid: true,
	New:         NewXoshiro256StarStar,
	FromWords:   words4,
}

var Xoshiro256PlusFamily = generator.Family[[4]uint64, *Xoshiro256Plus]{
	Name:        NameXoshiro256Plus,
	WordBits:    64,
	StateWords:  4,
	Jumpable:    true,
	ZeroInvalid: true,
	New:         NewXoshiro256Plus,
	FromWords:   words4,
}

var Xoshiro256StarStarBatchFamily = generator.Family[[4]uint64, *Xoshiro256StarStarBatch]{
	Name:        NameXoshiro256StarStarBatch,
	WordBits:    64,
	StateWords:  4,
	Jumpable:    true,
	ZeroInvalid: true,
	New:         NewXoshiro256StarStarBatch,
	FromWords:   words4,
}

var Xoshiro256PlusBatchFamily = generator.Family[[4]uint64, *Xoshiro256PlusBatch]{
	Name:        NameXoshiro256PlusBatch,
	WordBits:    64,
	StateWords:  4,
	Jumpable:    true,
	ZeroInvalid: true,
	New:         NewXoshiro256PlusBatch,
	FromWords:   words4,
}

func words2(w []uint64) [2]uint64 { return [2]uint64(w) }

func words4(w []uint64) [4]uint64 { return [4]uint64(w) }

var registry = map[string]generator.Descriptor{
	NameSplitmix64:              Splitmix64Family.Describe(),
	NameXorshift1024Star:        Xorshift1024StarFamily.Describe(),
	NameXorshift128Plus:         Xorshift128PlusFamily.Describe(),
	NameXoroshiro128Plus:        Xoroshiro128PlusFamily.Describe(),
	NameXoshiro256StarStar:      Xoshiro256StarStarFamily.Describe(),
	NameXoshiro256Plus:          Xoshiro256PlusFamily.Describe(),
	NameXoshiro256StarStarBatch: Xoshiro256StarStarBatchFamily.Describe(),
	NameXoshiro256PlusBatch:     Xoshiro256PlusBatchFamily.Describe(),
}

// Lookup returns the capability declaration of a family by name. Names are
// case-insensitive.
func Lookup(name string) (generator.Descriptor, bool) {
	d, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	return d, ok
}

// Names lists the registered families in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
