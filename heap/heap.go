package heap

import (
	"iter"

	"github.com/navijation/njheap/util"
	"github.com/pkg/errors"
)

var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrCapacityExceeded = errors.New("heap capacity exceeded")
	ErrDestroyed        = errors.New("heap has been destroyed")
)

// Comparator returns a negative number when a orders before b, zero when they are equal,
// and a positive number when a orders after b.
type Comparator[T any] func(a, b T) int

// MinHeap is a binary min-heap stored implicitly in a fixed-size slice. The children of
// slot i live at 2i+1 and 2i+2, and its parent at (i-1)/2.
//
// The heap only reorders the values it is given; it never copies what they point to, so
// callers that store pointers remain responsible for whatever cleanup those need (ForEach
// visits every live value for that purpose).
//
// A MinHeap is not safe for concurrent use.
type MinHeap[T any] struct {
	capacity   int
	size       int
	storage    []T
	comparator Comparator[T]
}

func New[T any](capacity int, comparator Comparator[T]) (*MinHeap[T], error) {
	if capacity <= 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "capacity must be positive, got %d", capacity)
	}
	if comparator == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "comparator is required")
	}

	return &MinHeap[T]{
		capacity:   capacity,
		storage:    make([]T, capacity),
		comparator: comparator,
	}, nil
}

func (me *MinHeap[T]) Size() int {
	return me.size
}

func (me *MinHeap[T]) Capacity() int {
	return me.capacity
}

func (me *MinHeap[T]) PeekMin() util.Optional[T] {
	if me.size == 0 {
		return util.None[T]()
	}
	return util.Some(me.storage[0])
}

// Insert adds value to the heap, or returns ErrCapacityExceeded and leaves the heap
// untouched if it is full.
func (me *MinHeap[T]) Insert(value T) error {
	if me.storage == nil {
		return ErrDestroyed
	}
	if me.size == me.capacity {
		return errors.Wrapf(ErrCapacityExceeded, "heap is full at %d entries", me.capacity)
	}

	// move parents down into the hole instead of swapping, then write value once
	hole := me.size
	for hole > 0 {
		parent := (hole - 1) / 2
		if me.comparator(value, me.storage[parent]) >= 0 {
			break
		}
		me.storage[hole] = me.storage[parent]
		hole = parent
	}
	me.storage[hole] = value
	me.size++

	return nil
}

// ExtractMin removes and returns the minimum, or an empty result if the heap is empty.
func (me *MinHeap[T]) ExtractMin() util.Optional[T] {
	if me.size == 0 {
		return util.None[T]()
	}

	out := me.storage[0]
	me.size--

	var zero T
	if me.size > 0 {
		me.storage[0] = me.storage[me.size]
		me.storage[me.size] = zero
		me.down(0)
	} else {
		me.storage[0] = zero
	}

	return util.Some(out)
}

// Build replaces the contents of the heap with items and restores the heap ordering in
// linear time.
func (me *MinHeap[T]) Build(items ...T) error {
	if me.storage == nil {
		return ErrDestroyed
	}
	if len(items) > me.capacity {
		return errors.Wrapf(
			ErrInvalidArgument, "cannot build %d entries into heap of capacity %d",
			len(items), me.capacity,
		)
	}

	n := copy(me.storage, items)
	clear(me.storage[n:])
	me.size = n

	// every subtree below i is already a heap by the time i is fixed
	for i := me.size/2 - 1; i >= 0; i-- {
		me.down(i)
	}

	return nil
}

// HeapifyDown restores the heap ordering at index, assuming both of its subtrees are
// already ordered. It is meant to follow a direct write made with Set.
func (me *MinHeap[T]) HeapifyDown(index int) error {
	if err := me.checkIndex(index); err != nil {
		return err
	}
	me.down(index)
	return nil
}

// Set overwrites the value at index without restoring the heap ordering.
func (me *MinHeap[T]) Set(index int, value T) error {
	if err := me.checkIndex(index); err != nil {
		return err
	}
	me.storage[index] = value
	return nil
}

// ReplaceMin swaps the minimum for value and restores the ordering, which costs a single
// sift-down instead of an ExtractMin followed by an Insert.
func (me *MinHeap[T]) ReplaceMin(value T) util.Optional[T] {
	if me.size == 0 {
		return util.None[T]()
	}

	out := me.storage[0]
	me.storage[0] = value
	me.down(0)

	return util.Some(out)
}

// ForEach calls visitor on every live value in storage order, which is not sorted order.
func (me *MinHeap[T]) ForEach(visitor func(T)) {
	for i := range me.size {
		visitor(me.storage[i])
	}
}

func (me *MinHeap[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := range me.size {
			if !yield(me.storage[i]) {
				return
			}
		}
	}
}

// Destroy drops the heap's storage and leaves it with no capacity. Values are left to the
// caller.
func (me *MinHeap[T]) Destroy() {
	me.storage = nil
	me.capacity = 0
	me.size = 0
}

func (me *MinHeap[T]) checkIndex(index int) error {
	if index < 0 || index >= me.size {
		return errors.Wrapf(ErrInvalidArgument, "index %d out of range [0, %d)", index, me.size)
	}
	return nil
}

// down sifts the value at i toward the leaves until neither child is smaller.
func (me *MinHeap[T]) down(i int) {
	for {
		left := 2*i + 1
		if left >= me.size || left < 0 { // left < 0 after int overflow
			return
		}

		smallest := i
		if me.comparator(me.storage[smallest], me.storage[left]) > 0 {
			smallest = left
		}
		if right := left + 1; right < me.size &&
			me.comparator(me.storage[smallest], me.storage[right]) > 0 {
			smallest = right
		}
		if smallest == i {
			return
		}

		me.storage[i], me.storage[smallest] = me.storage[smallest], me.storage[i]
		i = smallest
	}
}
