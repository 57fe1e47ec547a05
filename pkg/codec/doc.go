// Package codec provides the primitive little-endian reader and writer used by
// the Parse7 bin decoder, the pigg archive reader and the message store parser.
//
// # Primitives
//
// All multi-byte values are little-endian. The reader exposes:
//
//	Uint16, Uint32, Int32, Float32   fixed-width scalars
//	Take(n), Skip(n)                 exact byte spans (borrowed, never copied)
//	Sub(n)                           isolate n bytes as an independent Reader
//	PeekUint32                       the only non-consuming read
//	LString, LBytes                  length-prefixed strings
//
// # Length-prefixed strings
//
// An inline string is laid out as:
//
//	[Length(2)][Bytes(Length)][Padding(0-3)]
//
// The padding rounds the whole field, including the 2-byte length, up to the
// next 4-byte boundary:
//
//	NeededPadding(n) = (4 - n%4) % 4
//
// so "AB" occupies 4 bytes with no padding and "A" occupies 3 bytes plus one
// pad byte. LString requires the bytes to be valid UTF-8.
//
// # Error Handling
//
// Every short read fails with a *TruncatedError, which matches ErrTruncated
// with errors.Is. The remaining sentinels (ErrUnsupportedFormat,
// ErrInvalidEncoding, ErrStringNotFound, ErrUnknownVariant, ErrTrailingData,
// ErrUnsupportedType) are shared by the packages that build on this one so
// callers can classify failures without importing each of them.
//
// # Thread Safety
//
// A Reader is a cursor and must not be shared between goroutines. Readers
// created with Sub are independent of their parent and of each other, so
// isolated regions can be decoded concurrently.
package codec
