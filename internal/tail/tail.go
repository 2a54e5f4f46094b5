// Package tail keeps the end of a stream in bounded memory.
package tail

import (
	"bufio"
	"io"

	"github.com/pkg/errors"

	circularbuffer "github.com/jonoton/go-circularbuffer"
	"github.com/jonoton/go-circularbuffer/ringio"
)

const (
	// MaxLineSize is the longest line Lines accepts.
	MaxLineSize = 1024 * 1024

	// MaxLines is the largest count Lines accepts. The ring is allocated
	// up front, so the count bounds memory use.
	MaxLines = 1 << 20

	// MaxBytes is the largest count Bytes accepts.
	MaxBytes = 64 << 20
)

// ErrCountTooLarge is returned when a count exceeds MaxLines or MaxBytes.
var ErrCountTooLarge = errors.New("tail: count too large")

// Lines reads r to the end and returns its last n lines without their line
// terminators. Only n lines are held in memory at any time.
func Lines(r io.Reader, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}
	if n > MaxLines {
		return nil, errors.Wrapf(ErrCountTooLarge, "%d lines", n)
	}
	lines := circularbuffer.New[string](n)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	for scanner.Scan() {
		lines.PushBack(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "scan lines")
	}
	return lines.ToSlice(), nil
}

// Bytes reads r to the end and returns its last n bytes.
func Bytes(r io.Reader, n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}
	if n > MaxBytes {
		return nil, errors.Wrapf(ErrCountTooLarge, "%d bytes", n)
	}
	buf := ringio.New(n)
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, errors.Wrap(err, "read bytes")
	}
	return buf.Bytes(), nil
}
