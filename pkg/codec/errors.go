package codec

import (
	"errors"
	"fmt"
	"strings"
)

// Errors
var (
	ErrTruncated         = errors.New("truncated input")
	ErrInvalidEncoding   = errors.New("invalid utf-8 encoding")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrStringNotFound    = errors.New("string not found in pool")
	ErrUnknownVariant    = errors.New("unknown variant")
	ErrTrailingData      = errors.New("unexpected data at end of input")
	ErrUnsupportedType   = errors.New("unsupported type")
)

// TruncatedError reports a read that needed more bytes than were left.
type TruncatedError struct {
	Offset int // Offset of the read within the reader's region
	Need   int
	Have   int
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("truncated input at offset %d: need %d bytes, have %d", e.Offset, e.Need, e.Have)
}

func (e *TruncatedError) Unwrap() error { return ErrTruncated }

// StringNotFoundError reports an external string reference with no pool entry.
type StringNotFoundError struct {
	Index uint32
}

func (e *StringNotFoundError) Error() string {
	return fmt.Sprintf("string not found in pool: offset %d", e.Index)
}

func (e *StringNotFoundError) Unwrap() error { return ErrStringNotFound }

// UnknownVariantError reports a tagged-union ordinal outside the declared variants.
type UnknownVariantError struct {
	Type    string
	Ordinal uint32
	Count   int
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("unknown variant %d for %s (%d declared)", e.Ordinal, e.Type, e.Count)
}

func (e *UnknownVariantError) Unwrap() error { return ErrUnknownVariant }

// FieldError attaches the path of the failing member to a decode error.
type FieldError struct {
	Path []string
	Err  error
}

// WrapField prefixes name to the path of err, creating a FieldError if needed.
func WrapField(name string, err error) error {
	if fe, ok := err.(*FieldError); ok {
		fe.Path = append([]string{name}, fe.Path...)
		return fe
	}
	return &FieldError{Path: []string{name}, Err: err}
}

func (e *FieldError) Error() string {
	var sb strings.Builder
	for i, seg := range e.Path {
		if i > 0 && !strings.HasPrefix(seg, "[") {
			sb.WriteByte('.')
		}
		sb.WriteString(seg)
	}
	return sb.String() + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error { return e.Err }
