package merge

import (
	"iter"

	"github.com/navijation/njheap/heap"
)

type muxEntry[T any] struct {
	current      T
	streamNumber int
	next         func() (T, error, bool)
}

// Sorted merges sequences that are each sorted by comparator into one sorted sequence.
// Equal values are yielded in the order of the sequences that produced them.
func Sorted[T any](comparator heap.Comparator[T], seqs ...iter.Seq[T]) iter.Seq[T] {
	seqs2 := make([]iter.Seq2[T, error], 0, len(seqs))
	for _, seq := range seqs {
		seqs2 = append(seqs2, func(yield func(T, error) bool) {
			for item := range seq {
				if !yield(item, nil) {
					return
				}
			}
		})
	}

	return func(yield func(T) bool) {
		// sources above never fail, so neither does the merge
		for item := range SortedErr(comparator, seqs2...) {
			if !yield(item) {
				return
			}
		}
	}
}

// SortedErr is like Sorted, but over sources that can fail. The first source error ends
// the merge and is yielded alongside a zero value.
func SortedErr[T any](comparator heap.Comparator[T], seqs ...iter.Seq2[T, error]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		if len(seqs) == 0 {
			return
		}

		// pick lower values first, and upon ties pick the earlier streams first
		mux, err := heap.New(len(seqs), func(a, b muxEntry[T]) int {
			if c := comparator(a.current, b.current); c != 0 {
				return c
			}
			return a.streamNumber - b.streamNumber
		})
		if err != nil {
			yield(zero, err)
			return
		}

		for streamNumber, seq := range seqs {
			next, stop := iter.Pull2(seq)
			defer stop()

			current, err, exists := next()
			if err != nil {
				yield(zero, err)
				return
			}
			if !exists {
				continue
			}

			// one entry per stream, so this cannot exceed the capacity
			if err := mux.Insert(muxEntry[T]{
				current:      current,
				streamNumber: streamNumber,
				next:         next,
			}); err != nil {
				yield(zero, err)
				return
			}
		}

		for mux.Size() > 0 {
			entry, _ := mux.PeekMin().Unpack()
			if !yield(entry.current, nil) {
				return
			}

			current, err, exists := entry.next()
			if err != nil {
				yield(zero, err)
				return
			}
			if exists {
				mux.ReplaceMin(muxEntry[T]{
					current:      current,
					streamNumber: entry.streamNumber,
					next:         entry.next,
				})
			} else {
				mux.ExtractMin()
			}
		}
	}
}
