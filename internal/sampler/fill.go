package sampler

import "iter"

// Bulk fills always walk their destination front to back, one word per slot,
// so fills from equal generator states are identical whatever the container.

// Fill sets every element of dst.
func Fill[T Number](s *Sampler, dst []T) {
	if words, ok := any(dst).([]uint64); ok {
		s.Words(words)
		return
	}
	for i := range dst {
		dst[i] = Rand[T](s)
	}
}

// FillFunc sets every element of dst to fn applied to a fresh draw.
func FillFunc[T Number](s *Sampler, dst []T, fn func(T) T) {
	for i := range dst {
		dst[i] = fn(Rand[T](s))
	}
}

// FillN sets the first n elements of dst. It panics if n > len(dst).
func FillN[T Number](s *Sampler, dst []T, n int) {
	Fill(s, dst[:n])
}

// FillNFunc is FillN with a transform.
func FillNFunc[T Number](s *Sampler, dst []T, n int, fn func(T) T) {
	FillFunc(s, dst[:n], fn)
}

// FillSeq sets every element yielded by seq, in iteration order.
func FillSeq[T Number](s *Sampler, seq iter.Seq[*T]) {
	for p := range seq {
		*p = Rand[T](s)
	}
}

// FillSeqFunc is FillSeq with a transform.
func FillSeqFunc[T Number](s *Sampler, seq iter.Seq[*T], fn func(T) T) {
	for p := range seq {
		*p = fn(Rand[T](s))
	}
}

// Slice returns n fresh draws.
func Slice[T Number](s *Sampler, n int) []T {
	out := make([]T, n)
	Fill(s, out)
	return out
}

// SliceFunc returns n transformed draws.
func SliceFunc[T Number](s *Sampler, n int, fn func(T) T) []T {
	out := make([]T, n)
	FillFunc(s, out, fn)
	return out
}

// Append appends n fresh draws to dst.
func Append[T Number](s *Sampler, dst []T, n int) []T {
	for i := 0; i < n; i++ {
		dst = append(dst, Rand[T](s))
	}
	return dst
}

// Pointers yields a pointer to each element of dst in order. It adapts any
// slice-backed container to FillSeq.
func Pointers[T any](dst []T) iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for i := range dst {
			if !yield(&dst[i]) {
				return
			}
		}
	}
}
