// Package storage keeps decoded records exported from bin files. Records are
// stored as JSON under their kind and a KSUID, so a kind lists in export
// order.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"
)

// ErrNotFound is returned when no record is stored under a key
var ErrNotFound = errors.New("record not found")

const sep = '/'

// Record is one stored export
type Record struct {
	ID   ksuid.KSUID `json:"id"`
	Kind string      `json:"kind"`
	Data []byte      `json:"data"`
}

// ExportStore is a pebble-backed record store
type ExportStore struct {
	db *pebble.DB
}

// NewExportStore opens or creates a store at path
func NewExportStore(path string) (*ExportStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open export store: %w", err)
	}
	return &ExportStore{db: db}, nil
}

func prefix(kind string) []byte {
	return append([]byte(kind), sep)
}

func key(kind string, id ksuid.KSUID) []byte {
	return append(prefix(kind), id.Bytes()...)
}

func validKind(kind string) error {
	if kind == "" || strings.ContainsRune(kind, sep) {
		return fmt.Errorf("invalid kind %q", kind)
	}
	return nil
}

// Create stores data under a new id
func (s *ExportStore) Create(kind string, data []byte) (ksuid.KSUID, error) {
	if err := validKind(kind); err != nil {
		return ksuid.Nil, err
	}
	id := ksuid.New()
	if err := s.db.Set(key(kind, id), data, pebble.NoSync); err != nil {
		return ksuid.Nil, err
	}
	return id, nil
}

// CreateBatch stores every item under new ids in one atomic write. The ids
// share a seed, so List returns the items in the order given.
func (s *ExportStore) CreateBatch(kind string, items [][]byte) ([]ksuid.KSUID, error) {
	if err := validKind(kind); err != nil {
		return nil, err
	}

	b := s.db.NewBatch()
	defer b.Close()

	seq := ksuid.Sequence{Seed: ksuid.New()}
	ids := make([]ksuid.KSUID, len(items))
	for i, data := range items {
		id, err := seq.Next()
		if err != nil {
			return nil, fmt.Errorf("failed to allocate id %d: %w", i, err)
		}
		ids[i] = id
		if err := b.Set(key(kind, id), data, nil); err != nil {
			return nil, err
		}
	}
	if err := b.Commit(pebble.Sync); err != nil {
		return nil, fmt.Errorf("failed to commit export batch: %w", err)
	}
	return ids, nil
}

// Read returns the record stored under kind and id
func (s *ExportStore) Read(kind string, id ksuid.KSUID) ([]byte, error) {
	data, closer, err := s.db.Get(key(kind, id))
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, kind, id)
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	return bytes.Clone(data), nil
}

// Update replaces the record stored under kind and id
func (s *ExportStore) Update(kind string, id ksuid.KSUID, data []byte) error {
	if err := validKind(kind); err != nil {
		return err
	}
	return s.db.Set(key(kind, id), data, pebble.NoSync)
}

// Delete removes the record stored under kind and id
func (s *ExportStore) Delete(kind string, id ksuid.KSUID) error {
	return s.db.Delete(key(kind, id), pebble.NoSync)
}

// List returns up to limit records of kind in id order. A limit of zero
// returns them all.
func (s *ExportStore) List(kind string, limit int) ([]Record, error) {
	p := prefix(kind)
	upper := append(bytes.Clone(p[:len(p)-1]), sep+1)

	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: p,
		UpperBound: upper,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate over %s: %w", kind, err)
	}
	defer iter.Close()

	var out []Record
	for iter.First(); iter.Valid(); iter.Next() {
		id, err := ksuid.FromBytes(iter.Key()[len(p):])
		if err != nil {
			return nil, fmt.Errorf("corrupt key %q: %w", iter.Key(), err)
		}
		out = append(out, Record{ID: id, Kind: kind, Data: bytes.Clone(iter.Value())})
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, iter.Error()
}

// Close flushes and closes the store
func (s *ExportStore) Close() error {
	return s.db.Close()
}
