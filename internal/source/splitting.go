package source

import (
	"gostream/adapters/bitgen"
	"gostream/domain/generator"
	"gostream/internal/errors"
	"gostream/internal/random"
	"gostream/internal/sampler"
	"gostream/internal/seed"
)

// MaxIndex is the largest tree index that can still be split.
const MaxIndex = uint64(1) << 62

// ErrTreeExhausted is the panic value of a split past MaxIndex.
var ErrTreeExhausted = errors.New(errors.CodeInvalidInput, "sequence splitting: tree index exhausted")

// SequenceSplitting separates streams by jumping ahead. Streams form an
// implicit binary tree rooted at index 1; the children of index i are 2i and
// 2i+1.
//
// Reaching the left child of the node at index i takes exactly i jumps from
// that node, and the right child one more:
//
//	depth 0:        1
//	depth 1:    2       3        1 -> 2: 1 jump    1 -> 3: 2 jumps
//	depth 2:  4   5   6   7      2 -> 4: 2 jumps   2 -> 5: 3 jumps
//	                             3 -> 6: 3 jumps   3 -> 7: 4 jumps
//
// Split moves the receiver to its left child and returns the right child, so
// one split consumes two tree positions. The indexing must not change: it
// decides which jump offsets are reachable and with them the non-overlap of
// streams.
//
// A perservative source also keeps the state it was created with and always
// samples from it; a non-perservative source samples from its moving state.
type SequenceSplitting[S comparable, G generator.JumpStateful[S]] struct {
	fam          generator.Family[S, G]
	perservative bool
	initState    S
	state        S
	index        uint64
}

var _ Source = (*SequenceSplitting[[4]uint64, *bitgen.Xoshiro256StarStar])(nil)
var _ TreeIndexer = (*SequenceSplitting[[4]uint64, *bitgen.Xoshiro256StarStar])(nil)

// NewSequenceSplitting creates the root of a stream tree from a seed.
func NewSequenceSplitting[S comparable, G generator.JumpStateful[S]](fam generator.Family[S, G], s uint64, perservative bool) (*SequenceSplitting[S, G], error) {
	if err := checkJumpFamily(fam); err != nil {
		return nil, err
	}
	root := seed.Derive(fam, bitgen.NewSplitmix64(s).Next())
	return newSequenceSplitting(fam, root, 1, perservative), nil
}

// NewSequenceSplittingDefault creates a tree root from a non-deterministic
// seed and returns the seed used.
func NewSequenceSplittingDefault[S comparable, G generator.JumpStateful[S]](fam generator.Family[S, G], perservative bool) (*SequenceSplitting[S, G], uint64, error) {
	s, err := random.NewSeed()
	if err != nil {
		return nil, 0, errors.Wrap(err, "sequence splitting seed")
	}
	ss, err := NewSequenceSplitting(fam, s, perservative)
	return ss, s, err
}

// NewSequenceSplittingFromState creates a tree root from a complete native
// state. The all-zero state is rejected.
func NewSequenceSplittingFromState[S comparable, G generator.JumpStateful[S]](fam generator.Family[S, G], state S, perservative bool) (*SequenceSplitting[S, G], error) {
	if err := checkJumpFamily(fam); err != nil {
		return nil, err
	}
	if err := fam.CheckState(state); err != nil {
		return nil, errors.Wrap(err, "sequence splitting state")
	}
	return newSequenceSplitting(fam, state, 1, perservative), nil
}

// NewSequenceSplittingFromWords is NewSequenceSplittingFromState for states
// held as a word slice, e.g. read from configuration.
func NewSequenceSplittingFromWords[S comparable, G generator.JumpStateful[S]](fam generator.Family[S, G], words []uint64, perservative bool) (*SequenceSplitting[S, G], error) {
	state, err := fam.StateFromWords(words)
	if err != nil {
		return nil, errors.Wrap(err, "sequence splitting state")
	}
	return NewSequenceSplittingFromState(fam, state, perservative)
}

func checkJumpFamily[S comparable, G generator.JumpStateful[S]](fam generator.Family[S, G]) error {
	if err := fam.Validate(); err != nil {
		return errors.Wrap(err, "sequence splitting")
	}
	if !fam.Jumpable {
		return errors.ConfigInvalid(fam.Name + ": sequence splitting requires a family with jump-ahead")
	}
	return nil
}

func newSequenceSplitting[S comparable, G generator.JumpStateful[S]](fam generator.Family[S, G], state S, index uint64, perservative bool) *SequenceSplitting[S, G] {
	return &SequenceSplitting[S, G]{
		fam:          fam,
		perservative: perservative,
		initState:    state,
		state:        state,
		index:        index,
	}
}

// Impl returns a generator at the state the source samples from.
func (ss *SequenceSplitting[S, G]) Impl() G {
	if ss.perservative {
		return ss.fam.New(ss.initState)
	}
	return ss.fam.New(ss.state)
}

func (ss *SequenceSplitting[S, G]) Generator() *sampler.Sampler {
	return sampler.New(ss.Impl())
}

// Split moves the receiver to its left child (index 2i) and returns the right
// child (index 2i+1). It panics with ErrTreeExhausted past MaxIndex.
func (ss *SequenceSplitting[S, G]) Split() *SequenceSplitting[S, G] {
	if ss.index > MaxIndex {
		panic(ErrTreeExhausted)
	}
	g := ss.fam.New(ss.state)
	for i := uint64(0); i < ss.index; i++ {
		g.Jump()
	}
	ss.state = g.State()
	ss.index *= 2

	g.Jump()
	return newSequenceSplitting(ss.fam, g.State(), ss.index+1, ss.perservative)
}

func (ss *SequenceSplitting[S, G]) NewSource() Source {
	return ss.Split()
}

func (ss *SequenceSplitting[S, G]) Perservative() bool {
	return ss.perservative
}

func (ss *SequenceSplitting[S, G]) Family() generator.Descriptor {
	return ss.fam.Describe()
}

// Index is the source's current position in the stream tree.
func (ss *SequenceSplitting[S, G]) Index() uint64 {
	return ss.index
}

// State is the moving state the next split starts from.
func (ss *SequenceSplitting[S, G]) State() S {
	return ss.state
}

// InitState is the state the source was created with.
func (ss *SequenceSplitting[S, G]) InitState() S {
	return ss.initState
}

// Clone returns an independent copy at the same tree position.
func (ss *SequenceSplitting[S, G]) Clone() *SequenceSplitting[S, G] {
	c := *ss
	return &c
}
