// Package pool builds the offset-keyed string table that precedes the binary
// section of a bin file.
//
// The arena is a run of null-terminated strings. Each string is keyed by the
// offset of its first byte relative to the start of the arena, which is the
// value records store in place of the text:
//
//	"Alpha\0Beta\0Gamma\0"  ->  0:"Alpha"  6:"Beta"  11:"Gamma"
//
// Strings are decoded permissively: each maximal invalid UTF-8 subsequence is
// replaced with U+FFFD rather than failing the file. A Pool is immutable once
// built and may be shared by concurrent readers.
package pool

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/ssargent/cohbin/pkg/codec"
)

// Pool maps arena offsets to decoded strings
type Pool struct {
	strings map[uint32]string
	size    int
}

// Build parses arena into a Pool. The last string must be terminated; an
// unterminated tail means the arena is corrupt.
func Build(arena []byte) (*Pool, error) {
	p := &Pool{
		strings: make(map[uint32]string),
		size:    len(arena),
	}

	offset := 0
	for offset < len(arena) {
		end := bytes.IndexByte(arena[offset:], 0)
		if end < 0 {
			return nil, fmt.Errorf("unterminated string at pool offset %d: %w", offset,
				&codec.TruncatedError{Offset: len(arena), Need: 1, Have: 0})
		}
		run := arena[offset : offset+end]
		p.strings[uint32(offset)] = codec.Lossy(run)
		offset += end + 1
	}

	return p, nil
}

// Lookup returns the string starting at offset
func (p *Pool) Lookup(offset uint32) (string, bool) {
	s, ok := p.strings[offset]
	return s, ok
}

// Len returns the number of strings in the pool
func (p *Pool) Len() int {
	return len(p.strings)
}

// Size returns the arena size in bytes
func (p *Pool) Size() int {
	return p.size
}

// Offsets returns every key in ascending order
func (p *Pool) Offsets() []uint32 {
	offsets := make([]uint32, 0, len(p.strings))
	for off := range p.strings {
		offsets = append(offsets, off)
	}
	sort.Slice(offsets, func(i, j int) bool { return offsets[i] < offsets[j] })
	return offsets
}
