// Package messages reads the message store that maps display-string keys to
// their text.
//
// Only the parts needed to resolve keys are interpreted. Variable strings are
// read past and dropped; attributes are kept raw.
package messages

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ssargent/cohbin/pkg/codec"
	"github.com/ssargent/cohbin/pkg/pool"
)

// Version is the only supported message store version
const Version = 20090521

// Errors
var (
	ErrUnsupportedVersion = errors.New("unsupported message store version")
	ErrNotFound           = errors.New("message not found")
)

// Entry is one key of the store
type Entry struct {
	Key          string   `json:"key" yaml:"key"`
	Message      string   `json:"message" yaml:"message"`
	MessageIndex uint32   `json:"message_index" yaml:"message_index"`
	HelpIndex    uint32   `json:"help_index" yaml:"help_index"`
	Attributes   []uint32 `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// Store resolves message keys. It is immutable once parsed and safe for
// concurrent use.
type Store struct {
	entries map[string]*Entry
}

// Parse reads a message store
func Parse(data []byte) (*Store, error) {
	r := codec.NewReader(data)

	version, err := r.Uint32()
	if err != nil {
		return nil, fmt.Errorf("reading version: %w", err)
	}
	if version != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	messages, err := readStrings(r)
	if err != nil {
		return nil, fmt.Errorf("reading messages: %w", err)
	}
	if _, err := readStrings(r); err != nil {
		return nil, fmt.Errorf("reading variables: %w", err)
	}

	// The stash count is advisory; entries run to the end of the input.
	if _, err := r.Uint32(); err != nil {
		return nil, fmt.Errorf("reading stash count: %w", err)
	}

	s := &Store{entries: make(map[string]*Entry)}
	for r.Len() > 0 {
		e, err := readEntry(r)
		if err != nil {
			return nil, fmt.Errorf("reading stash entry %d: %w", len(s.entries), err)
		}
		if int(e.MessageIndex) >= len(messages) {
			return nil, fmt.Errorf("%s: message index %d out of range (%d messages)", e.Key, e.MessageIndex, len(messages))
		}
		e.Message = messages[e.MessageIndex]
		s.entries[e.Key] = e
	}
	return s, nil
}

// readStrings reads a count, a byte size and that many bytes of NUL
// terminated strings. The list keeps no alignment.
func readStrings(r *codec.Reader) ([]string, error) {
	if _, err := r.Uint32(); err != nil {
		return nil, err
	}
	size, err := r.Uint32()
	if err != nil {
		return nil, err
	}
	arena, err := r.Take(int(size))
	if err != nil {
		return nil, err
	}

	p, err := pool.Build(arena)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, p.Len())
	for _, off := range p.Offsets() {
		s, _ := p.Lookup(off)
		out = append(out, s)
	}
	return out, nil
}

func readEntry(r *codec.Reader) (*Entry, error) {
	keyLen, err := r.Uint32()
	if err != nil {
		return nil, err
	}
	key, err := r.Take(int(keyLen))
	if err != nil {
		return nil, err
	}

	e := &Entry{Key: codec.Lossy(key)}
	if e.MessageIndex, err = r.Uint32(); err != nil {
		return nil, err
	}
	if e.HelpIndex, err = r.Uint32(); err != nil {
		return nil, err
	}
	count, err := r.Uint32()
	if err != nil {
		return nil, err
	}
	if int(count) > r.Len()/4 {
		return nil, &codec.TruncatedError{Offset: r.Offset(), Need: int(count) * 4, Have: r.Len()}
	}
	if count > 0 {
		e.Attributes = make([]uint32, count)
		for i := range e.Attributes {
			if e.Attributes[i], err = r.Uint32(); err != nil {
				return nil, err
			}
		}
	}
	return e, nil
}

// Resolve returns the text for key
func (s *Store) Resolve(key string) (string, error) {
	e, ok := s.entries[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return e.Message, nil
}

// Entry returns the full entry for key
func (s *Store) Entry(key string) (Entry, bool) {
	e, ok := s.entries[key]
	if !ok {
		return Entry{}, false
	}
	return *e, true
}

// Len returns the number of keys
func (s *Store) Len() int {
	return len(s.entries)
}

// Keys returns every key, sorted
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
