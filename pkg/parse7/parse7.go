package parse7

import (
	"fmt"
	"reflect"
	"time"

	"github.com/ssargent/cohbin/pkg/codec"
	"github.com/ssargent/cohbin/pkg/pool"
	"github.com/ssargent/cohbin/pkg/shape"
	"golang.org/x/sync/errgroup"
)

const (
	// Magic opens every bin file
	Magic = "CrypticS"
	// Signature is the only supported encoding
	Signature = "Parse7"
)

// Header describes a bin file's framing
type Header struct {
	Checksum    uint32 `json:"checksum" yaml:"checksum"` // Not verified
	Signature   string `json:"signature" yaml:"signature"`
	PoolSize    uint32 `json:"pool_size" yaml:"pool_size"`
	Strings     int    `json:"strings" yaml:"strings"`
	SectionSize uint32 `json:"section_size" yaml:"section_size"` // Advisory, not verified
	RecordCount uint32 `json:"record_count" yaml:"record_count"`
}

// Result holds the records that decoded successfully, in file order, and a
// diagnostic for every record that did not.
type Result[T any] struct {
	Records  []T          `json:"records" yaml:"records"`
	Failures []Diagnostic `json:"failures,omitempty" yaml:"failures,omitempty"`
	Warnings []Diagnostic `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// Source supplies file contents by name, e.g. from an archive
type Source interface {
	Bytes(name string) ([]byte, error)
}

// file is a bin file whose header and pool have been read
type file struct {
	header Header
	pool   *pool.Pool
	r      *codec.Reader
}

func openFile(data []byte) (*file, error) {
	r := codec.NewReader(data)

	if err := r.Expect([]byte(Magic)); err != nil {
		return nil, err
	}

	f := &file{r: r}
	var err error
	if f.header.Checksum, err = r.Uint32(); err != nil {
		return nil, fmt.Errorf("reading checksum: %w", err)
	}

	sig, err := r.LString()
	if err != nil {
		return nil, fmt.Errorf("%w: reading signature: %w", codec.ErrUnsupportedFormat, err)
	}
	if sig != Signature {
		return nil, fmt.Errorf("%w: signature %q, want %q", codec.ErrUnsupportedFormat, sig, Signature)
	}
	f.header.Signature = sig

	if f.header.PoolSize, err = r.Uint32(); err != nil {
		return nil, fmt.Errorf("reading pool size: %w", err)
	}
	arena, err := r.Take(int(f.header.PoolSize))
	if err != nil {
		return nil, fmt.Errorf("reading string pool: %w", err)
	}
	if f.pool, err = pool.Build(arena); err != nil {
		return nil, fmt.Errorf("building string pool: %w", err)
	}
	f.header.Strings = f.pool.Len()
	if err := r.Skip(codec.NeededPadding(int(f.header.PoolSize))); err != nil {
		return nil, fmt.Errorf("reading pool padding: %w", err)
	}

	if f.header.SectionSize, err = r.Uint32(); err != nil {
		return nil, fmt.Errorf("reading section size: %w", err)
	}
	if f.header.RecordCount, err = r.Uint32(); err != nil {
		return nil, fmt.Errorf("reading record count: %w", err)
	}

	return f, nil
}

// slices cuts the binary section into one byte range per record. Each range
// keeps its own length prefix so the record decoder can frame it again.
func (f *file) slices() ([][]byte, error) {
	count := int(f.header.RecordCount)
	if count > f.r.Len()/4 {
		return nil, fmt.Errorf("record count %d: %w", count,
			&codec.TruncatedError{Offset: f.r.Offset(), Need: count * 4, Have: f.r.Len()})
	}

	records := make([][]byte, count)
	for i := range records {
		length, err := f.r.PeekUint32()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if records[i], err = f.r.Take(int(length) + 4); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}

	if f.r.Len() != 0 {
		return nil, fmt.Errorf("%w: %d bytes after record %d", codec.ErrTrailingData, f.r.Len(), count)
	}
	return records, nil
}

// ReadHeader reads a file's framing without decoding any record
func ReadHeader(data []byte) (*Header, error) {
	f, err := openFile(data)
	if err != nil {
		return nil, err
	}
	return &f.header, nil
}

// ReadStrings returns a file's string pool
func ReadStrings(data []byte) (*pool.Pool, error) {
	f, err := openFile(data)
	if err != nil {
		return nil, err
	}
	return f.pool, nil
}

// Decode decodes every record of a bin file as a T. T must be a struct with a
// record shape.
func Decode[T any](data []byte, opts ...Option) (*Result[T], error) {
	o := newOptions(opts)
	start := time.Now()

	res, err := decode[T](data, o)
	if o.observer != nil {
		if res != nil {
			o.observer.ObserveFile(len(res.Records), len(res.Failures), time.Since(start), nil)
		} else {
			o.observer.ObserveFile(0, 0, time.Since(start), err)
		}
	}
	if err != nil {
		o.logger.Error().Err(err).Msg("failed to decode file")
		return nil, err
	}

	o.logger.Debug().
		Int("records", len(res.Records)).
		Int("failures", len(res.Failures)).
		Int("warnings", len(res.Warnings)).
		Dur("elapsed", time.Since(start)).
		Msg("decoded file")
	return res, nil
}

// DecodeFile fetches name from src and decodes it
func DecodeFile[T any](src Source, name string, opts ...Option) (*Result[T], error) {
	data, err := src.Bytes(name)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	opts = append([]Option{WithName(name)}, opts...)
	res, err := Decode[T](data, opts...)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return res, nil
}

type slot[T any] struct {
	value    T
	failure  *Diagnostic
	warnings []Diagnostic
}

func decode[T any](data []byte, o *options) (*Result[T], error) {
	s, err := shape.For[T]()
	if err != nil {
		return nil, err
	}
	if s.Kind != shape.Record {
		return nil, fmt.Errorf("%w: %s", ErrNotRecord, s)
	}
	if o.maxSize > 0 && len(data) > o.maxSize {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, len(data), o.maxSize)
	}

	f, err := openFile(data)
	if err != nil {
		return nil, err
	}
	records, err := f.slices()
	if err != nil {
		return nil, err
	}

	slots := make([]slot[T], len(records))
	if o.workers < 2 || len(records) < 2 {
		for i, rec := range records {
			slots[i] = decodeOne[T](f.pool, s, i, rec, o)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(o.workers)
		for i, rec := range records {
			i, rec := i, rec
			g.Go(func() error {
				slots[i] = decodeOne[T](f.pool, s, i, rec, o)
				return nil
			})
		}
		_ = g.Wait()
	}

	res := &Result[T]{Records: make([]T, 0, len(slots))}
	for i := range slots {
		res.Warnings = append(res.Warnings, slots[i].warnings...)
		if slots[i].failure != nil {
			res.Failures = append(res.Failures, *slots[i].failure)
			continue
		}
		res.Records = append(res.Records, slots[i].value)
	}
	return res, nil
}

func decodeOne[T any](p *pool.Pool, s *shape.Shape, index int, rec []byte, o *options) slot[T] {
	d := &decoder{pool: p, logger: o.logger, index: index}
	v := reflect.New(s.Type)

	err := d.decode(codec.NewReader(rec), s, v.Elem())

	if o.observer != nil {
		o.observer.ObserveRecord(err == nil)
		for range d.warnings {
			o.observer.ObserveWarning()
		}
	}

	out := slot[T]{warnings: d.warnings}
	if err != nil {
		o.logger.Warn().Int("index", index).Err(err).Msg("failed to decode record")
		out.failure = &Diagnostic{Index: index, Kind: KindDecodeFailed, Message: err.Error(), Err: err}
		return out
	}
	out.value = *(v.Interface().(*T))
	return out
}
