package circularbuffer

// CircularBuffer is a fixed-capacity double-ended queue backed by a single
// slice allocated in New. Elements can be pushed and popped at both ends in
// O(1). When the buffer is full, a push at one end evicts the element at the
// opposite end, so the newest data always survives.
//
// A CircularBuffer is not safe for concurrent use. Wrap it in a mutex, or use
// Queue, when it is shared between goroutines.
type CircularBuffer[T any] struct {
	data []T
	// start is the physical index of the logical front.
	start int
	// size is the number of live elements, starting at start and wrapping
	// around the end of data.
	size int
	// gen changes on every mutation so outstanding Drains can detect that
	// the slots they read from may have been reused.
	gen uint64
	// parked and parkedLen locate the free slots holding elements removed
	// by Drain that have not been yielded yet.
	parked    int
	parkedLen int
}

// New creates an empty CircularBuffer that holds at most capacity elements.
// If the provided capacity is less than 1, it defaults to 1.
func New[T any](capacity int) *CircularBuffer[T] {
	if capacity <= 0 {
		capacity = 1
	}
	return &CircularBuffer[T]{
		data: make([]T, capacity),
	}
}

// NewFromSlice creates a CircularBuffer with the given capacity and extends
// it with items, so only the last capacity items are kept.
func NewFromSlice[T any](capacity int, items []T) *CircularBuffer[T] {
	cb := New[T](capacity)
	cb.Extend(items)
	return cb
}

// Len returns the number of elements in the buffer.
func (cb *CircularBuffer[T]) Len() int {
	return cb.size
}

// Cap returns the fixed capacity of the buffer.
func (cb *CircularBuffer[T]) Cap() int {
	return len(cb.data)
}

// IsEmpty reports whether the buffer holds no elements.
func (cb *CircularBuffer[T]) IsEmpty() bool {
	return cb.size == 0
}

// IsFull reports whether the buffer holds Cap elements.
func (cb *CircularBuffer[T]) IsFull() bool {
	return cb.size == len(cb.data)
}

// phys maps a logical offset in [-Cap, 2*Cap) to a physical index.
func (cb *CircularBuffer[T]) phys(i int) int {
	p := cb.start + i
	if p >= len(cb.data) {
		return p - len(cb.data)
	}
	if p < 0 {
		return p + len(cb.data)
	}
	return p
}

// invalidate marks the start of a mutation. It ends any outstanding Drain
// and zeroes the elements that Drain left unyielded.
func (cb *CircularBuffer[T]) invalidate() {
	cb.gen++
	cb.dropParked()
}

// dropParked zeroes the parked run.
func (cb *CircularBuffer[T]) dropParked() {
	var zero T
	for ; cb.parkedLen > 0; cb.parkedLen-- {
		cb.data[cb.parked] = zero
		cb.parked++
		if cb.parked == len(cb.data) {
			cb.parked = 0
		}
	}
}

// PushBack appends item at the back. If the buffer is full, the front
// element is evicted to make room and returned with ok set to true.
func (cb *CircularBuffer[T]) PushBack(item T) (evicted T, ok bool) {
	cb.invalidate()
	if cb.IsFull() {
		evicted = cb.data[cb.start]
		cb.data[cb.start] = item
		cb.start = cb.phys(1)
		return evicted, true
	}
	cb.data[cb.phys(cb.size)] = item
	cb.size++
	return evicted, false
}

// PushFront prepends item at the front. If the buffer is full, the back
// element is evicted to make room and returned with ok set to true.
func (cb *CircularBuffer[T]) PushFront(item T) (evicted T, ok bool) {
	cb.invalidate()
	cb.start = cb.phys(-1)
	if cb.IsFull() {
		// The slot before the old front held the back element.
		evicted = cb.data[cb.start]
		cb.data[cb.start] = item
		return evicted, true
	}
	cb.data[cb.start] = item
	cb.size++
	return evicted, false
}

// TryPushBack appends item at the back, or returns ErrFull and leaves the
// buffer untouched if there is no room.
func (cb *CircularBuffer[T]) TryPushBack(item T) error {
	if cb.IsFull() {
		return ErrFull
	}
	cb.PushBack(item)
	return nil
}

// TryPushFront prepends item at the front, or returns ErrFull and leaves the
// buffer untouched if there is no room.
func (cb *CircularBuffer[T]) TryPushFront(item T) error {
	if cb.IsFull() {
		return ErrFull
	}
	cb.PushFront(item)
	return nil
}

// PopFront removes and returns the front element.
func (cb *CircularBuffer[T]) PopFront() (T, error) {
	var zero T
	if cb.size == 0 {
		return zero, ErrEmpty
	}
	cb.invalidate()
	item := cb.data[cb.start]
	cb.data[cb.start] = zero
	cb.start = cb.phys(1)
	cb.size--
	return item, nil
}

// PopBack removes and returns the back element.
func (cb *CircularBuffer[T]) PopBack() (T, error) {
	var zero T
	if cb.size == 0 {
		return zero, ErrEmpty
	}
	cb.invalidate()
	p := cb.phys(cb.size - 1)
	item := cb.data[p]
	cb.data[p] = zero
	cb.size--
	return item, nil
}

// Front returns the front element without removing it.
func (cb *CircularBuffer[T]) Front() (T, error) {
	if cb.size == 0 {
		var zero T
		return zero, ErrEmpty
	}
	return cb.data[cb.start], nil
}

// Back returns the back element without removing it.
func (cb *CircularBuffer[T]) Back() (T, error) {
	if cb.size == 0 {
		var zero T
		return zero, ErrEmpty
	}
	return cb.data[cb.phys(cb.size-1)], nil
}

// Get returns the element at logical index i, where 0 is the front.
func (cb *CircularBuffer[T]) Get(i int) (T, error) {
	if i < 0 || i >= cb.size {
		var zero T
		return zero, &IndexError{Index: i, Len: cb.size}
	}
	return cb.data[cb.phys(i)], nil
}

// Set replaces the element at logical index i.
func (cb *CircularBuffer[T]) Set(i int, item T) error {
	if i < 0 || i >= cb.size {
		return &IndexError{Index: i, Len: cb.size}
	}
	cb.invalidate()
	cb.data[cb.phys(i)] = item
	return nil
}

// Swap exchanges the elements at logical indexes i and j.
func (cb *CircularBuffer[T]) Swap(i, j int) error {
	if i < 0 || i >= cb.size {
		return &IndexError{Index: i, Len: cb.size}
	}
	if j < 0 || j >= cb.size {
		return &IndexError{Index: j, Len: cb.size}
	}
	cb.invalidate()
	pi, pj := cb.phys(i), cb.phys(j)
	cb.data[pi], cb.data[pj] = cb.data[pj], cb.data[pi]
	return nil
}
