package circularbuffer

import "iter"

// Drain yields the elements removed by CircularBuffer.Drain, in their
// original order. Each element is yielded at most once; a Drain cannot be
// restarted.
//
// The removed elements are parked in the buffer's free slots until they are
// yielded, so a Drain is only usable until the next mutation of the buffer.
// That mutation zeroes the elements not yet yielded, and Next then reports
// that the Drain is exhausted.
type Drain[T any] struct {
	cb  *CircularBuffer[T]
	gen uint64
}

// Drain removes the elements in logical range [lo, hi) and closes the gap,
// returning a Drain over the removed elements. The buffer is unchanged if the
// range is invalid.
//
// Drain does not allocate storage for the removed elements: whichever side
// of the gap is shorter is rotated past the removed run, which leaves the run
// in slots outside the live range.
func (cb *CircularBuffer[T]) Drain(lo, hi int) (*Drain[T], error) {
	if lo < 0 || lo > hi || hi > cb.size {
		return nil, &RangeError{Lo: lo, Hi: hi, Len: cb.size}
	}
	cb.invalidate()
	d := &Drain[T]{cb: cb, gen: cb.gen}
	k := hi - lo
	if k == 0 {
		return d, nil
	}
	if lo < cb.size-hi {
		// [0,lo) [lo,hi) becomes [lo,hi) [0,lo); the run now sits at the
		// front and the start skips past it.
		cb.rotateLeft(0, hi, lo)
		cb.parked = cb.start
		cb.start = cb.phys(k)
	} else {
		// [lo,hi) [hi,size) becomes [hi,size) [lo,hi); the run now sits
		// at the back and is cut off by the new size.
		cb.rotateLeft(lo, cb.size, k)
		cb.parked = cb.phys(cb.size - k)
	}
	cb.size -= k
	cb.parkedLen = k
	return d, nil
}

// Remove removes and returns the element at logical index i, shifting the
// shorter side of the buffer to close the gap.
func (cb *CircularBuffer[T]) Remove(i int) (T, error) {
	if i < 0 || i >= cb.size {
		var zero T
		return zero, &IndexError{Index: i, Len: cb.size}
	}
	d, err := cb.Drain(i, i+1)
	if err != nil {
		var zero T
		return zero, err
	}
	item, _ := d.Next()
	return item, nil
}

// Len returns the number of elements the Drain has left to yield.
func (d *Drain[T]) Len() int {
	if d.stale() {
		return 0
	}
	return d.cb.parkedLen
}

// Next returns the next removed element. ok is false once every element has
// been yielded, or when the buffer has been mutated since the Drain was
// created.
func (d *Drain[T]) Next() (item T, ok bool) {
	cb := d.cb
	if d.stale() || cb.parkedLen == 0 {
		return item, false
	}
	item = cb.data[cb.parked]
	var zero T
	cb.data[cb.parked] = zero
	cb.parked++
	if cb.parked == len(cb.data) {
		cb.parked = 0
	}
	cb.parkedLen--
	return item, true
}

// All returns an iterator that consumes the Drain.
func (d *Drain[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			item, ok := d.Next()
			if !ok || !yield(item) {
				return
			}
		}
	}
}

// Close drops the elements that have not been yielded yet.
func (d *Drain[T]) Close() {
	if !d.stale() {
		d.cb.dropParked()
	}
}

func (d *Drain[T]) stale() bool {
	return d.gen != d.cb.gen
}

// rotateLeft rotates logical range [lo, hi) left by m positions.
func (cb *CircularBuffer[T]) rotateLeft(lo, hi, m int) {
	if m == 0 || m == hi-lo {
		return
	}
	cb.reverse(lo, lo+m)
	cb.reverse(lo+m, hi)
	cb.reverse(lo, hi)
}

// reverse reverses logical range [lo, hi) in place.
func (cb *CircularBuffer[T]) reverse(lo, hi int) {
	for i, j := lo, hi-1; i < j; i, j = i+1, j-1 {
		pi, pj := cb.phys(i), cb.phys(j)
		cb.data[pi], cb.data[pj] = cb.data[pj], cb.data[pi]
	}
}
