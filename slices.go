package circularbuffer

import (
	"iter"
	"slices"
)

// AsSlices returns the contents of the buffer as two slices such that front
// followed by back is the logical sequence, front first. back is empty unless
// the contents wrap around the end of the underlying storage.
//
// Both slices alias the buffer's storage: elements may be modified through
// them, and they are valid only until the next call that mutates the buffer.
// Use ToSlice for a copy that can be retained.
func (cb *CircularBuffer[T]) AsSlices() (front, back []T) {
	return cb.segments(0, cb.size)
}

// MakeContiguous rearranges the storage so that the contents no longer wrap
// and returns them as a single slice. The slice follows the same aliasing
// rules as AsSlices.
func (cb *CircularBuffer[T]) MakeContiguous() []T {
	if cb.start+cb.size > len(cb.data) {
		cb.invalidate()
		// Rotating the whole storage moves free slots along with the
		// contents, so they stay zeroed.
		slices.Reverse(cb.data[:cb.start])
		slices.Reverse(cb.data[cb.start:])
		slices.Reverse(cb.data)
		cb.start = 0
	}
	front, _ := cb.segments(0, cb.size)
	return front
}

// ToSlice returns a copy of the contents, front to back.
func (cb *CircularBuffer[T]) ToSlice() []T {
	return cb.AppendTo(make([]T, 0, cb.size))
}

// AppendTo appends the contents, front to back, to dst and returns the
// extended slice.
func (cb *CircularBuffer[T]) AppendTo(dst []T) []T {
	front, back := cb.AsSlices()
	dst = append(dst, front...)
	return append(dst, back...)
}

// All returns an iterator over logical index and element pairs, front to
// back. The buffer must not be mutated during iteration.
func (cb *CircularBuffer[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < cb.size; i++ {
			if !yield(i, cb.data[cb.phys(i)]) {
				return
			}
		}
	}
}

// Backward is like All but iterates from back to front.
func (cb *CircularBuffer[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := cb.size - 1; i >= 0; i-- {
			if !yield(i, cb.data[cb.phys(i)]) {
				return
			}
		}
	}
}

// segments returns the physical slices holding logical range [lo, hi),
// with 0 <= lo <= hi <= Len. Capacities are clipped so appending to a
// returned slice never writes into the buffer.
func (cb *CircularBuffer[T]) segments(lo, hi int) (a, b []T) {
	if lo == hi {
		return nil, nil
	}
	p := cb.phys(lo)
	end := p + hi - lo
	if end <= len(cb.data) {
		return cb.data[p:end:end], nil
	}
	end -= len(cb.data)
	return cb.data[p:], cb.data[:end:end]
}
