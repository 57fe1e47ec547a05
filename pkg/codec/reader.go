package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"
)

// Reader is a forward-only cursor over a borrowed byte region.
type Reader struct {
	buf []byte
	off int
}

// NewReader creates a reader positioned at the start of buf
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// NeededPadding returns how many bytes round length up to a 4-byte boundary
func NeededPadding(length int) int {
	return (4 - length%4) % 4
}

// Len returns the number of unread bytes
func (r *Reader) Len() int {
	return len(r.buf) - r.off
}

// Offset returns the number of bytes consumed so far
func (r *Reader) Offset() int {
	return r.off
}

// Remaining returns the unread bytes without consuming them
func (r *Reader) Remaining() []byte {
	return r.buf[r.off:]
}

func (r *Reader) need(n int) error {
	if n < 0 || r.Len() < n {
		return &TruncatedError{Offset: r.off, Need: n, Have: r.Len()}
	}
	return nil
}

// Take consumes exactly n bytes and returns them. The slice aliases the
// underlying buffer.
func (r *Reader) Take(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	b := r.buf[r.off : r.off+n : r.off+n]
	r.off += n
	return b, nil
}

// Skip discards exactly n bytes
func (r *Reader) Skip(n int) error {
	if err := r.need(n); err != nil {
		return err
	}
	r.off += n
	return nil
}

// Sub consumes n bytes and returns a new Reader confined to them
func (r *Reader) Sub(n int) (*Reader, error) {
	b, err := r.Take(n)
	if err != nil {
		return nil, err
	}
	return NewReader(b), nil
}

// Expect consumes len(lit) bytes and requires them to equal lit
func (r *Reader) Expect(lit []byte) error {
	if r.Len() < len(lit) || !bytes.Equal(r.buf[r.off:r.off+len(lit)], lit) {
		return fmt.Errorf("%w: expected tag %q at offset %d", ErrUnsupportedFormat, lit, r.off)
	}
	r.off += len(lit)
	return nil
}

// Uint16 reads a little-endian uint16
func (r *Reader) Uint16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(r.buf[r.off:])
	r.off += 2
	return v, nil
}

// Uint32 reads a little-endian uint32
func (r *Reader) Uint32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v, nil
}

// PeekUint32 returns the next little-endian uint32 without consuming it.
// It exists for record slicing only; every other read advances the cursor.
func (r *Reader) PeekUint32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(r.buf[r.off:]), nil
}

// Int32 reads a little-endian int32
func (r *Reader) Int32() (int32, error) {
	v, err := r.Uint32()
	return int32(v), err
}

// Float32 reads a little-endian IEEE-754 float32
func (r *Reader) Float32() (float32, error) {
	v, err := r.Uint32()
	return math.Float32frombits(v), err
}

// LBytes reads a length-prefixed text buffer and its alignment padding.
// The payload must be valid UTF-8; the returned slice aliases the input.
func (r *Reader) LBytes() ([]byte, error) {
	start := r.off
	n, err := r.Uint16()
	if err != nil {
		return nil, err
	}
	b, err := r.Take(int(n))
	if err != nil {
		return nil, err
	}
	// The padding covers the 2-byte length as well as the payload.
	if err := r.Skip(NeededPadding(int(n) + 2)); err != nil {
		return nil, err
	}
	if !utf8.Valid(b) {
		return nil, fmt.Errorf("%w: string at offset %d", ErrInvalidEncoding, start)
	}
	return b, nil
}

// LString reads a length-prefixed UTF-8 string and its alignment padding
func (r *Reader) LString() (string, error) {
	b, err := r.LBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}
