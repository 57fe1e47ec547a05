package objects

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/ssargent/cohbin/pkg/parse7"
)

// ErrUnknownKind is returned when no schema is registered under a name
var ErrUnknownKind = errors.New("unknown kind")

// Kind ties a bin file to the record schema it holds
type Kind struct {
	Name   string `json:"name" yaml:"name"`
	Entry  string `json:"entry" yaml:"entry"` // Default archive entry
	Record string `json:"record" yaml:"record"`

	decode func(data []byte, opts ...parse7.Option) (*Decoded, error)
}

// Decode decodes data as a file of this kind
func (k Kind) Decode(data []byte, opts ...parse7.Option) (*Decoded, error) {
	return k.decode(data, opts...)
}

// Decoded is the result of decoding a file without naming its record type
type Decoded struct {
	Kind     string              `json:"kind" yaml:"kind"`
	Records  any                 `json:"records" yaml:"records"` // []T for the kind's record type
	Failures []parse7.Diagnostic `json:"failures" yaml:"failures"`
	Warnings []parse7.Diagnostic `json:"warnings" yaml:"warnings"`

	count int
	at    func(i int) any
}

// Len returns the number of decoded records
func (d *Decoded) Len() int {
	return d.count
}

// Each calls fn with a pointer to each record, stopping at the first error
func (d *Decoded) Each(fn func(i int, record any) error) error {
	for i := 0; i < d.count; i++ {
		if err := fn(i, d.at(i)); err != nil {
			return err
		}
	}
	return nil
}

// ResolveStrings resolves display strings on every record that has them
func (d *Decoded) ResolveStrings(r Resolver) error {
	return d.Each(func(i int, record any) error {
		sr, ok := record.(StringResolver)
		if !ok {
			return nil
		}
		if err := sr.ResolveStrings(r); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		return nil
	})
}

// MarshalRecords encodes each record as its own JSON document
func (d *Decoded) MarshalRecords() ([][]byte, error) {
	out := make([][]byte, 0, d.count)
	err := d.Each(func(i int, record any) error {
		b, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, b)
		return nil
	})
	return out, err
}

func register[T any](name, entry string) Kind {
	var zero T
	return Kind{
		Name:   name,
		Entry:  entry,
		Record: fmt.Sprintf("%T", zero),
		decode: func(data []byte, opts ...parse7.Option) (*Decoded, error) {
			res, err := parse7.Decode[T](data, opts...)
			if err != nil {
				return nil, err
			}
			return &Decoded{
				Kind:     name,
				Records:  res.Records,
				Failures: res.Failures,
				Warnings: res.Warnings,
				count:    len(res.Records),
				at:       func(i int) any { return &res.Records[i] },
			}, nil
		},
	}
}

var kinds = map[string]Kind{}

func init() {
	for _, k := range []Kind{
		register[Class]("classes", "bin/classes.bin"),
		register[Class]("villain_classes", "bin/villain_classes.bin"),
		register[PowerCategory]("power_categories", "bin/powercats.bin"),
		register[Powerset]("powersets", "bin/powersets.bin"),
		register[Power]("powers", "bin/powers.bin"),
		register[BoostSet]("boost_sets", "bin/boostsets.bin"),
	} {
		kinds[k.Name] = k
	}
}

// Kinds returns every registered kind, sorted by name
func Kinds() []Kind {
	out := make([]Kind, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup returns the kind registered under name
func Lookup(name string) (Kind, error) {
	k, ok := kinds[name]
	if !ok {
		return Kind{}, fmt.Errorf("%w: %s", ErrUnknownKind, name)
	}
	return k, nil
}
