package circularbuffer

// Extend appends items at the back, in order. The result is the same as
// calling PushBack for each item: once the buffer is full every further item
// evicts the front element. When len(items) >= Cap only the last Cap items
// are kept and the earlier ones are never written.
func (cb *CircularBuffer[T]) Extend(items []T) {
	if len(items) == 0 {
		return
	}
	cb.invalidate()
	n := len(cb.data)
	if len(items) >= n {
		copy(cb.data, items[len(items)-n:])
		cb.start = 0
		cb.size = n
		return
	}
	// Every slot freed here is overwritten by the copy below.
	if over := cb.size + len(items) - n; over > 0 {
		cb.start = cb.phys(over)
		cb.size -= over
	}
	at := cb.phys(cb.size)
	k := copy(cb.data[at:], items)
	copy(cb.data, items[k:])
	cb.size += len(items)
}

// ExtendFront prepends items at the front, keeping their order, so the
// buffer reads items followed by its previous contents. It matches calling
// PushFront for items in reverse order: once the buffer is full the back
// element is evicted. When len(items) >= Cap only the first Cap items are
// kept.
func (cb *CircularBuffer[T]) ExtendFront(items []T) {
	if len(items) == 0 {
		return
	}
	cb.invalidate()
	n := len(cb.data)
	if len(items) >= n {
		copy(cb.data, items[:n])
		cb.start = 0
		cb.size = n
		return
	}
	if over := cb.size + len(items) - n; over > 0 {
		cb.size -= over
	}
	cb.start = cb.phys(-len(items))
	k := copy(cb.data[cb.start:], items)
	copy(cb.data, items[k:])
	cb.size += len(items)
}

// TruncateFront drops elements from the front until at most n remain.
// It does nothing if n >= Len.
func (cb *CircularBuffer[T]) TruncateFront(n int) {
	if n < 0 {
		n = 0
	}
	if n >= cb.size {
		return
	}
	cb.invalidate()
	drop := cb.size - n
	cb.zeroRange(0, drop)
	cb.start = cb.phys(drop)
	cb.size = n
}

// TruncateBack drops elements from the back until at most n remain.
// It does nothing if n >= Len.
func (cb *CircularBuffer[T]) TruncateBack(n int) {
	if n < 0 {
		n = 0
	}
	if n >= cb.size {
		return
	}
	cb.invalidate()
	cb.zeroRange(n, cb.size)
	cb.size = n
}

// Clear removes all elements. The capacity is unchanged.
func (cb *CircularBuffer[T]) Clear() {
	cb.invalidate()
	cb.zeroRange(0, cb.size)
	cb.start = 0
	cb.size = 0
}

// Fill sets every live element to item.
func (cb *CircularBuffer[T]) Fill(item T) {
	cb.invalidate()
	a, b := cb.segments(0, cb.size)
	for i := range a {
		a[i] = item
	}
	for i := range b {
		b[i] = item
	}
}

// zeroRange zeroes the slots of logical range [lo, hi).
func (cb *CircularBuffer[T]) zeroRange(lo, hi int) {
	a, b := cb.segments(lo, hi)
	clear(a)
	clear(b)
}
