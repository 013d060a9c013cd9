package workload

import (
	"cmp"
	"math"
	"math/rand/v2"

	"github.com/navijation/njheap/heap"
	"github.com/pkg/errors"
)

var ErrInvalidArgs = errors.New("invalid workload arguments")

type Args struct {
	// number of keys generated for each phase
	Count int
	Seed  uint64
	// keys are drawn from [0, KeyRange); zero means the full non-negative int range
	KeyRange int
}

type Report struct {
	Extracted int
	// number of times a drained key was smaller than the one before it
	Inversions int
	// smallest key the heap should have produced first
	ExpectedMin int
	First       int
	Last        int
}

func (me Report) Ok() bool {
	return me.Inversions == 0 && (me.Extracted == 0 || me.First == me.ExpectedMin)
}

// Drain inserts Count random keys one at a time, then extracts them all.
func Drain(args Args) (out Report, err error) {
	keys, err := newKeyGenerator(args)
	if err != nil {
		return out, err
	}

	h, err := heap.New(args.Count, cmp.Compare[int])
	if err != nil {
		return out, err
	}
	defer h.Destroy()

	out.ExpectedMin = math.MaxInt
	for range args.Count {
		key := keys.next()
		out.ExpectedMin = min(out.ExpectedMin, key)

		if err := h.Insert(key); err != nil {
			return out, errors.Wrap(err, "failed to insert key")
		}
	}

	return drainInto(h, out), nil
}

// TopK bulk-builds a heap of Count random keys and then streams Count more keys past it,
// keeping the Count largest keys seen by replacing the root whenever a larger key arrives.
func TopK(args Args) (out Report, err error) {
	keys, err := newKeyGenerator(args)
	if err != nil {
		return out, err
	}

	h, err := heap.New(args.Count, cmp.Compare[int])
	if err != nil {
		return out, err
	}
	defer h.Destroy()

	initial := make([]int, args.Count)
	for i := range initial {
		initial[i] = keys.next()
	}
	if err := h.Build(initial...); err != nil {
		return out, errors.Wrap(err, "failed to build heap")
	}

	for range args.Count {
		key := keys.next()
		if root, _ := h.PeekMin().Unpack(); key > root {
			h.ReplaceMin(key)
		}
	}

	// the survivors are exactly what ForEach sees; their minimum should come out first
	out.ExpectedMin = math.MaxInt
	h.ForEach(func(key int) {
		out.ExpectedMin = min(out.ExpectedMin, key)
	})

	return drainInto(h, out), nil
}

func drainInto(h *heap.MinHeap[int], out Report) Report {
	var prev int
	for {
		key, exists := h.ExtractMin().Unpack()
		if !exists {
			break
		}

		if out.Extracted == 0 {
			out.First = key
		} else if key < prev {
			out.Inversions++
		}
		out.Last = key
		out.Extracted++
		prev = key
	}
	return out
}

type keyGenerator struct {
	rng      *rand.Rand
	keyRange int
}

func newKeyGenerator(args Args) (keyGenerator, error) {
	if args.Count <= 0 {
		return keyGenerator{}, errors.Wrapf(ErrInvalidArgs, "count must be positive, got %d", args.Count)
	}
	if args.KeyRange < 0 {
		return keyGenerator{}, errors.Wrapf(ErrInvalidArgs, "key range must not be negative, got %d", args.KeyRange)
	}

	return keyGenerator{
		rng:      rand.New(rand.NewPCG(args.Seed, args.Seed)),
		keyRange: args.KeyRange,
	}, nil
}

func (me *keyGenerator) next() int {
	if me.keyRange == 0 {
		return me.rng.Int()
	}
	return me.rng.IntN(me.keyRange)
}
