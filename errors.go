package circularbuffer

import (
	"errors"
	"fmt"
)

var (
	// ErrEmpty is returned when an element is requested from an empty buffer.
	ErrEmpty = errors.New("circularbuffer: buffer is empty")

	// ErrFull is returned by the TryPush methods when the buffer is at capacity.
	// The regular Push methods never return it; they evict instead.
	ErrFull = errors.New("circularbuffer: buffer is full")

	// ErrIndexOutOfRange is matched by every *IndexError.
	ErrIndexOutOfRange = errors.New("circularbuffer: index out of range")

	// ErrInvalidRange is matched by every *RangeError.
	ErrInvalidRange = errors.New("circularbuffer: invalid range")

	// ErrStopped is returned by Queue operations after Stop has been called.
	ErrStopped = errors.New("circularbuffer: queue stopped")
)

// IndexError reports a logical index outside [0, Len).
type IndexError struct {
	Index int
	Len   int
}

// Error formats the index and the length it was checked against.
func (e *IndexError) Error() string {
	return fmt.Sprintf("circularbuffer: index %d out of range with length %d", e.Index, e.Len)
}

// Is reports whether target is ErrIndexOutOfRange.
func (e *IndexError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}

// RangeError reports a logical range [Lo, Hi) that is reversed or extends
// past Len.
type RangeError struct {
	Lo  int
	Hi  int
	Len int
}

// Error formats the range and the length it was checked against.
func (e *RangeError) Error() string {
	return fmt.Sprintf("circularbuffer: range [%d:%d] out of bounds with length %d", e.Lo, e.Hi, e.Len)
}

// Is reports whether target is ErrInvalidRange.
func (e *RangeError) Is(target error) bool {
	return target == ErrInvalidRange
}
