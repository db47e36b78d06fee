package sampler

import (
	"container/list"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
)

func listPointers(l *list.List) iter.Seq[*int32] {
	return func(yield func(*int32) bool) {
		for e := l.Front(); e != nil; e = e.Next() {
			if !yield(e.Value.(*int32)) {
				return
			}
		}
	}
}

func TestFillIsContainerIndependent(t *testing.T) {
	const n = 64

	var array [n]int32
	Fill(newSampler(11), array[:])

	heap := make([]int32, n)
	Fill(newSampler(11), heap)

	partial := make([]int32, n+10)
	FillN(newSampler(11), partial, n)

	viaSeq := make([]int32, n)
	FillSeq(newSampler(11), Pointers(viaSeq))

	l := list.New()
	for i := 0; i < n; i++ {
		l.PushBack(new(int32))
	}
	FillSeq(newSampler(11), listPointers(l))
	linked := make([]int32, 0, n)
	for e := l.Front(); e != nil; e = e.Next() {
		linked = append(linked, *e.Value.(*int32))
	}

	assert.Equal(t, array[:], heap)
	assert.Equal(t, heap, partial[:n])
	assert.Equal(t, make([]int32, 10), partial[n:])
	assert.Equal(t, heap, viaSeq)
	assert.Equal(t, heap, linked)
	assert.Equal(t, heap, Slice[int32](newSampler(11), n))
	assert.Equal(t, heap, Append(newSampler(11), []int32(nil), n))
}

func TestFillWordsFastPath(t *testing.T) {
	words := make([]uint64, 32)
	Fill(newSampler(5), words)

	s := newSampler(5)
	for i, w := range words {
		assert.Equal(t, s.Next(), w, "word %d", i)
	}
}

func TestFillFunc(t *testing.T) {
	const n = 200
	double := func(v float64) float64 { return 2 * v }

	out := make([]float64, n)
	FillFunc(newSampler(8), out, double)

	plain := Slice[float64](newSampler(8), n)
	for i := range out {
		assert.Equal(t, 2*plain[i], out[i])
	}

	assert.Equal(t, out, SliceFunc(newSampler(8), n, double))

	partial := make([]float64, n)
	FillNFunc(newSampler(8), partial, n/2, double)
	assert.Equal(t, out[:n/2], partial[:n/2])

	viaSeq := make([]float64, n)
	FillSeqFunc(newSampler(8), Pointers(viaSeq), double)
	assert.Equal(t, out, viaSeq)
}

func TestFillFuncWithRanger(t *testing.T) {
	dice := SliceFunc(newSampler(6), 1000, Ranger(1, 7))
	for _, d := range dice {
		assert.True(t, d >= 1 && d < 7, "roll %d", d)
	}
}

func TestFillNPanicsPastLength(t *testing.T) {
	assert.Panics(t, func() { FillN(newSampler(1), make([]int, 3), 4) })
}

func TestPointersStopsEarly(t *testing.T) {
	values := []int{1, 2, 3, 4}
	visited := 0
	for p := range Pointers(values) {
		visited++
		if *p == 2 {
			break
		}
	}
	assert.Equal(t, 2, visited)
}
