// Package ringio adapts a byte CircularBuffer to the io interfaces.
//
// Writes never fail and never block: when more bytes are written than the
// buffer can hold, the oldest bytes are overwritten, so the buffer always
// keeps the most recent Cap bytes. Reads consume bytes from the front.
package ringio

import (
	"io"

	"github.com/pkg/errors"

	circularbuffer "github.com/jonoton/go-circularbuffer"
)

// maxReadChunk bounds the scratch space used by ReadFrom.
const maxReadChunk = 32 * 1024

var (
	_ io.ReadWriter   = (*Buffer)(nil)
	_ io.ByteReader   = (*Buffer)(nil)
	_ io.ByteWriter   = (*Buffer)(nil)
	_ io.StringWriter = (*Buffer)(nil)
	_ io.WriterTo     = (*Buffer)(nil)
	_ io.ReaderFrom   = (*Buffer)(nil)
)

// Buffer is a fixed-size byte stream. The zero value is not usable; create
// one with New or Wrap. Like the CircularBuffer it wraps, a Buffer is not
// safe for concurrent use.
type Buffer struct {
	cb *circularbuffer.CircularBuffer[byte]
}

// New creates an empty Buffer that holds at most capacity bytes.
func New(capacity int) *Buffer {
	return &Buffer{cb: circularbuffer.New[byte](capacity)}
}

// Wrap returns a Buffer that reads and writes cb.
func Wrap(cb *circularbuffer.CircularBuffer[byte]) *Buffer {
	return &Buffer{cb: cb}
}

// Unwrap returns the underlying CircularBuffer.
func (b *Buffer) Unwrap() *circularbuffer.CircularBuffer[byte] {
	return b.cb
}

// Len returns the number of unread bytes.
func (b *Buffer) Len() int { return b.cb.Len() }

// Cap returns the capacity of the buffer.
func (b *Buffer) Cap() int { return b.cb.Cap() }

// Reset discards all unread bytes.
func (b *Buffer) Reset() { b.cb.Clear() }

// Write appends p, overwriting the oldest bytes if p does not fit.
// It always returns len(p), nil.
func (b *Buffer) Write(p []byte) (int, error) {
	b.cb.Extend(p)
	return len(p), nil
}

// WriteByte appends c, overwriting the oldest byte if the buffer is full.
func (b *Buffer) WriteByte(c byte) error {
	b.cb.PushBack(c)
	return nil
}

// WriteString appends s like Write.
func (b *Buffer) WriteString(s string) (int, error) {
	n := len(s)
	if over := len(s) - b.cb.Cap(); over > 0 {
		s = s[over:]
	}
	for i := 0; i < len(s); i++ {
		b.cb.PushBack(s[i])
	}
	return n, nil
}

// Flush does nothing. Written bytes are immediately readable.
func (b *Buffer) Flush() error {
	return nil
}

// Read consumes up to len(p) bytes from the front of the buffer. If the
// buffer is empty and len(p) > 0, it returns io.EOF.
func (b *Buffer) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if b.cb.IsEmpty() {
		return 0, io.EOF
	}
	front, back := b.cb.AsSlices()
	n := copy(p, front)
	n += copy(p[n:], back)
	b.cb.TruncateFront(b.cb.Len() - n)
	return n, nil
}

// ReadByte consumes and returns the byte at the front of the buffer.
func (b *Buffer) ReadByte() (byte, error) {
	c, err := b.cb.PopFront()
	if err != nil {
		return 0, io.EOF
	}
	return c, nil
}

// Chunk returns the longest contiguous run of unread bytes at the front of
// the buffer without consuming it. It is empty only when the buffer is. The
// slice aliases the buffer and is valid until the next mutation.
func (b *Buffer) Chunk() []byte {
	front, back := b.cb.AsSlices()
	if len(front) > 0 {
		return front
	}
	return back
}

// Discard consumes the next n bytes, or all of them if fewer than n are
// buffered, and returns the number of bytes discarded.
func (b *Buffer) Discard(n int) int {
	n = min(n, b.cb.Len())
	if n <= 0 {
		return 0
	}
	d, err := b.cb.Drain(0, n)
	if err != nil {
		return 0
	}
	d.Close()
	return n
}

// WriteTo writes the unread bytes to w until the buffer is empty or w
// returns an error. Bytes accepted by w are consumed.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for !b.cb.IsEmpty() {
		chunk := b.Chunk()
		n, err := w.Write(chunk)
		if n < 0 || n > len(chunk) {
			return total, errors.Errorf("ringio: invalid write count %d for %d bytes", n, len(chunk))
		}
		b.cb.TruncateFront(b.cb.Len() - n)
		total += int64(n)
		if err != nil {
			return total, errors.Wrap(err, "ringio: write to destination")
		}
		if n != len(chunk) {
			return total, io.ErrShortWrite
		}
	}
	return total, nil
}

// ReadFrom reads from r until io.EOF, keeping only the most recent Cap bytes.
// It returns the total number of bytes read from r.
func (b *Buffer) ReadFrom(r io.Reader) (int64, error) {
	scratch := make([]byte, min(b.cb.Cap(), maxReadChunk))
	var total int64
	for {
		n, err := r.Read(scratch)
		if n > 0 {
			b.cb.Extend(scratch[:n])
			total += int64(n)
		}
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, errors.Wrap(err, "ringio: read from source")
		}
	}
}

// Bytes returns a copy of the unread bytes without consuming them.
func (b *Buffer) Bytes() []byte {
	return b.cb.ToSlice()
}

// String returns the unread bytes as a string without consuming them.
func (b *Buffer) String() string {
	return string(b.Bytes())
}
