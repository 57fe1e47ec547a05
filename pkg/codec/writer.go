package codec

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Writer builds little-endian byte regions in the same layout Reader consumes.
// It is used to produce fixtures and re-encode archive members.
type Writer struct {
	buf []byte
}

// NewWriter creates an empty writer
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the encoded bytes
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written
func (w *Writer) Len() int {
	return len(w.buf)
}

// Raw appends b unchanged
func (w *Writer) Raw(b []byte) *Writer {
	w.buf = append(w.buf, b...)
	return w
}

// Uint16 appends a little-endian uint16
func (w *Writer) Uint16(v uint16) *Writer {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
	return w
}

// Uint32 appends a little-endian uint32
func (w *Writer) Uint32(v uint32) *Writer {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
	return w
}

// Int32 appends a little-endian int32
func (w *Writer) Int32(v int32) *Writer {
	return w.Uint32(uint32(v))
}

// Float32 appends a little-endian float32
func (w *Writer) Float32(v float32) *Writer {
	return w.Uint32(math.Float32bits(v))
}

// Pad appends n zero bytes
func (w *Writer) Pad(n int) *Writer {
	w.buf = append(w.buf, make([]byte, n)...)
	return w
}

// LString appends a length-prefixed string followed by its alignment padding
func (w *Writer) LString(s string) *Writer {
	if len(s) > math.MaxUint16 {
		panic(fmt.Sprintf("string too long for length prefix: %d", len(s)))
	}
	w.Uint16(uint16(len(s)))
	w.buf = append(w.buf, s...)
	return w.Pad(NeededPadding(len(s) + 2))
}

// Framed appends a 4-byte length followed by the bytes produced by fn
func (w *Writer) Framed(fn func(w *Writer)) *Writer {
	inner := NewWriter()
	fn(inner)
	w.Uint32(uint32(inner.Len()))
	return w.Raw(inner.Bytes())
}
