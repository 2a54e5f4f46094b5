/*
Package circularbuffer provides a generic, fixed-capacity circular buffer.

A CircularBuffer is a double-ended queue stored in a single slice that is
allocated once, when the buffer is created. Elements can be pushed and popped
at both ends in constant time, and the contents can be viewed as at most two
slices without copying.

Usage:

Create a buffer of a specific type and capacity:

	cb := circularbuffer.New[int](3)

Push at either end:

	cb.PushBack(1)
	cb.PushBack(2)
	cb.PushFront(0) // [0 1 2]

Overwrite on Overflow:

When the buffer is full, a push at one end evicts the element at the other
end. The newest data always survives and a push never fails. The evicted
element is returned to the caller:

	evicted, ok := cb.PushBack(3) // [1 2 3], evicted == 0, ok == true

Callers that would rather reject new data when the buffer is full use
TryPushBack and TryPushFront, which return ErrFull instead of evicting.

Extend and ExtendFront add many elements at once and behave exactly like the
corresponding sequence of single pushes.

Errors:

Operations that can fail report it through a returned error and leave the
buffer unchanged. PopFront, PopBack, Front and Back return ErrEmpty. Get, Set,
Swap and Remove return an *IndexError, and Drain returns a *RangeError. Both
match their sentinel with errors.Is:

	if _, err := cb.Get(10); errors.Is(err, circularbuffer.ErrIndexOutOfRange) {
		// ...
	}

Slice Views:

AsSlices returns the contents as a front and a back slice. Read front first,
then back. The back slice is only non-empty when the contents wrap around the
end of the storage:

	front, back := cb.AsSlices()
	n := copy(dst, front)
	n += copy(dst[n:], back)

The slices alias the buffer's storage and are only valid until the next call
that mutates the buffer. Use ToSlice or AppendTo to get a copy.

Draining:

Drain removes a logical range and returns the removed elements lazily:

	d, err := cb.Drain(1, 3)
	if err != nil {
		return err
	}
	for v := range d.All() {
		fmt.Println(v)
	}

Like the slice views, a Drain must be consumed (or closed) before the buffer
is mutated again.

Concurrency:

A CircularBuffer is not safe for concurrent use. Queue wraps one in a
background goroutine that serializes access through channels, and is designed
for concurrent producer-consumer scenarios:

	q, err := circularbuffer.NewQueue[string](10)
	if err != nil {
		return err
	}
	defer q.Stop() // Clean up the background goroutine when done.

	go q.Add("hello")
	item := q.Get() // blocks until an item is available

Types stored in a Queue that require cleanup (e.g., to release file handles or
network connections) can implement the Cleanable interface. Cleanup() is called
automatically when an item is evicted or when Stop() is called on the queue.

The ringio subpackage turns a CircularBuffer[byte] into an io.Reader and
io.Writer.
*/
package circularbuffer
