package parse7

import (
	"bytes"
	"fmt"
	"reflect"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/ssargent/cohbin/pkg/codec"
	"github.com/ssargent/cohbin/pkg/pool"
	"github.com/ssargent/cohbin/pkg/shape"
)

// decoder turns one record's bytes into a value. It is not safe for
// concurrent use; each record gets its own.
type decoder struct {
	pool     *pool.Pool
	logger   zerolog.Logger
	index    int
	warnings []Diagnostic
}

func (d *decoder) decode(r *codec.Reader, s *shape.Shape, v reflect.Value) error {
	switch s.Kind {
	case shape.Bool:
		w, err := r.Uint32()
		if err != nil {
			return err
		}
		v.SetBool(w != 0)

	case shape.Int:
		w, err := r.Uint32()
		if err != nil {
			return err
		}
		v.SetInt(narrowInt(w, v.Type().Bits()))

	case shape.Uint:
		w, err := r.Uint32()
		if err != nil {
			return err
		}
		v.SetUint(narrowUint(w, v.Type().Bits()))

	case shape.Float32:
		f, err := r.Float32()
		if err != nil {
			return err
		}
		v.SetFloat(float64(f))

	case shape.String:
		idx, err := r.Uint32()
		if err != nil {
			return err
		}
		str, ok := d.pool.Lookup(idx)
		if !ok {
			return &codec.StringNotFoundError{Index: idx}
		}
		v.SetString(str)

	case shape.Text:
		str, err := r.LString()
		if err != nil {
			return err
		}
		v.SetString(str)

	case shape.Bytes:
		b, err := r.LBytes()
		if err != nil {
			return err
		}
		// Copy so the value outlives the (possibly memory-mapped) input.
		v.SetBytes(bytes.Clone(b))

	case shape.Option:
		return d.decodeOption(r, s, v)

	case shape.Sequence:
		return d.decodeSequence(r, s, v)

	case shape.Tuple:
		return d.decodeTuple(r, s, v)

	case shape.Record:
		return d.decodeRecord(r, s, v)

	case shape.UnionKind:
		return d.decodeUnion(r, s, v)

	default:
		return fmt.Errorf("%w: %s", codec.ErrUnsupportedType, s)
	}

	return nil
}

func narrowInt(w uint32, bits int) int64 {
	switch bits {
	case 8:
		return int64(int8(w))
	case 16:
		return int64(int16(w))
	}
	return int64(int32(w))
}

func narrowUint(w uint32, bits int) uint64 {
	switch bits {
	case 8:
		return uint64(uint8(w))
	case 16:
		return uint64(uint16(w))
	}
	return uint64(w)
}

// decodeOption reads a presence flag. Only zero versus nonzero is meaningful.
func (d *decoder) decodeOption(r *codec.Reader, s *shape.Shape, v reflect.Value) error {
	flag, err := r.Uint32()
	if err != nil {
		return err
	}
	if flag == 0 {
		v.Set(reflect.Zero(v.Type()))
		return nil
	}

	p := reflect.New(s.Elem.Type)
	if err := d.decode(r, s.Elem, p.Elem()); err != nil {
		return err
	}
	v.Set(p)
	return nil
}

func (d *decoder) decodeSequence(r *codec.Reader, s *shape.Shape, v reflect.Value) error {
	count, err := r.Uint32()
	if err != nil {
		return err
	}

	// Reject counts the remaining bytes cannot hold before allocating for them.
	minSize := uint64(max(s.Elem.MinSize(), 1))
	if uint64(count)*minSize > uint64(r.Len()) {
		return &codec.TruncatedError{Offset: r.Offset(), Need: int(min(uint64(count)*minSize, 1<<31-1)), Have: r.Len()}
	}

	n := int(count)
	seq := reflect.MakeSlice(v.Type(), n, n)
	for i := 0; i < n; i++ {
		if err := d.decode(r, s.Elem, seq.Index(i)); err != nil {
			return codec.WrapField("["+strconv.Itoa(i)+"]", err)
		}
	}
	v.Set(seq)
	return nil
}

// decodeTuple reads a fixed number of components; the arity comes from the
// shape, not the wire.
func (d *decoder) decodeTuple(r *codec.Reader, s *shape.Shape, v reflect.Value) error {
	if s.Elem != nil {
		for i := 0; i < s.Len; i++ {
			if err := d.decode(r, s.Elem, v.Index(i)); err != nil {
				return codec.WrapField("["+strconv.Itoa(i)+"]", err)
			}
		}
		return nil
	}
	return d.decodeFields(r, s, v)
}

func (d *decoder) decodeFields(r *codec.Reader, s *shape.Shape, v reflect.Value) error {
	for _, f := range s.Fields {
		if err := d.decode(r, f.Shape, v.FieldByIndex(f.Index)); err != nil {
			return codec.WrapField(f.Name, err)
		}
	}
	return nil
}

// decodeRecord confines the fields to the record's declared length. Bytes the
// shape does not account for are skipped, and reported unless the shape is
// known to be partial.
func (d *decoder) decodeRecord(r *codec.Reader, s *shape.Shape, v reflect.Value) error {
	length, err := r.Uint32()
	if err != nil {
		return err
	}
	sub, err := r.Sub(int(length))
	if err != nil {
		return err
	}

	if err := d.decodeFields(sub, s, v); err != nil {
		return err
	}

	if extra := sub.Len(); extra > 0 && !s.Partial {
		msg := fmt.Sprintf("%s had %d extra bytes at the end", s.Name, extra)
		d.warnings = append(d.warnings, Diagnostic{Index: d.index, Kind: KindTrailingBytes, Message: msg})
		d.logger.Warn().
			Int("record", d.index).
			Str("type", s.Name).
			Int("extra", extra).
			Hex("bytes", sub.Remaining()).
			Msg("record has trailing bytes")
	}
	return nil
}

func (d *decoder) decodeUnion(r *codec.Reader, s *shape.Shape, v reflect.Value) error {
	ordinal, err := r.Uint32()
	if err != nil {
		return err
	}
	if uint64(ordinal) >= uint64(len(s.Variants)) {
		return &codec.UnknownVariantError{Type: s.Name, Ordinal: ordinal, Count: len(s.Variants)}
	}

	variant := s.Variants[ordinal]
	u := shape.Union{Ordinal: ordinal, Name: variant.Name}
	if variant.Payload != nil {
		pv := reflect.New(variant.Payload.Type).Elem()
		if err := d.decode(r, variant.Payload, pv); err != nil {
			return codec.WrapField(variant.Name, err)
		}
		u.Value = pv.Interface()
	}
	v.FieldByIndex(s.UnionIndex).Set(reflect.ValueOf(u))
	return nil
}
