package parse7

import (
	"errors"

	"github.com/ssargent/cohbin/pkg/codec"
)

// Errors
var (
	ErrUnsupportedFormat = codec.ErrUnsupportedFormat
	ErrTruncated         = codec.ErrTruncated
	ErrInvalidEncoding   = codec.ErrInvalidEncoding
	ErrStringNotFound    = codec.ErrStringNotFound
	ErrUnknownVariant    = codec.ErrUnknownVariant
	ErrTrailingData      = codec.ErrTrailingData
	ErrNotRecord         = errors.New("type is not a record")
	ErrTooLarge          = errors.New("input exceeds maximum size")
)

// Diagnostic kinds
const (
	KindDecodeFailed  = "decode-failed"
	KindTrailingBytes = "trailing-bytes"
)

// Diagnostic describes a record that failed to decode, or a soft problem
// found while decoding one.
type Diagnostic struct {
	Index   int    `json:"index" yaml:"index"`
	Kind    string `json:"kind" yaml:"kind"`
	Message string `json:"message" yaml:"message"`
	Err     error  `json:"-" yaml:"-"`
}

func (d Diagnostic) String() string {
	return d.Kind + ": " + d.Message
}
