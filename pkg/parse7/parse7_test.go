package parse7

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/ssargent/cohbin/pkg/codec"
	"github.com/ssargent/cohbin/pkg/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name  string
	Level int32
	Small uint8
	Boost *uint32
	Tags  []string
}

type stub struct {
	ID uint32
}

func (stub) PartialShape() {}

type grant struct {
	Power string
	Count uint32
}

type reward struct {
	shape.Union
}

func (reward) Variants() []shape.Alt {
	return []shape.Alt{
		shape.Unit("Nothing"),
		shape.Payload[grant]("Grant"),
	}
}

type prize struct {
	Reward reward
}

// builder assembles a bin file around a string pool and a list of records
type builder struct {
	signature string
	strings   []string
	records   []func(w *codec.Writer)
	trailer   []byte
}

func newBuilder(strings ...string) *builder {
	return &builder{signature: Signature, strings: strings}
}

// offset returns the pool offset of strings[i]
func (b *builder) offset(i int) uint32 {
	off := 0
	for _, s := range b.strings[:i] {
		off += len(s) + 1
	}
	return uint32(off)
}

func (b *builder) record(fn func(w *codec.Writer)) *builder {
	b.records = append(b.records, fn)
	return b
}

func (b *builder) bytes() []byte {
	var arena []byte
	for _, s := range b.strings {
		arena = append(arena, s...)
		arena = append(arena, 0)
	}

	body := codec.NewWriter()
	for _, fn := range b.records {
		body.Framed(fn)
	}

	w := codec.NewWriter()
	w.Raw([]byte(Magic)).
		Uint32(0xDEADBEEF).
		LString(b.signature).
		Uint32(uint32(len(arena))).
		Raw(arena).
		Pad(codec.NeededPadding(len(arena))).
		Uint32(uint32(body.Len() + 4)).
		Uint32(uint32(len(b.records))).
		Raw(body.Bytes()).
		Raw(b.trailer)
	return w.Bytes()
}

func (b *builder) item(name uint32, level int32) *builder {
	return b.record(func(w *codec.Writer) {
		w.Uint32(name).Int32(level).Uint32(1).Uint32(0).Uint32(0)
	})
}

func TestDecode_Records(t *testing.T) {
	b := newBuilder("Alpha", "Beta", "Gamma")
	b.record(func(w *codec.Writer) {
		w.Uint32(b.offset(1)).
			Int32(-7).
			Uint32(0x141).
			Uint32(1).Uint32(42).
			Uint32(2).Uint32(b.offset(0)).Uint32(b.offset(2))
	})

	res, err := Decode[item](b.bytes())
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Empty(t, res.Failures)
	assert.Empty(t, res.Warnings)

	got := res.Records[0]
	assert.Equal(t, "Beta", got.Name)
	assert.Equal(t, int32(-7), got.Level)
	assert.Equal(t, uint8(0x41), got.Small, "scalars narrow silently")
	require.NotNil(t, got.Boost)
	assert.Equal(t, uint32(42), *got.Boost)
	assert.Equal(t, []string{"Alpha", "Gamma"}, got.Tags)
}

func TestDecode_PresenceFlags(t *testing.T) {
	tests := []struct {
		name    string
		flag    uint32
		present bool
	}{
		{"absent", 0, false},
		{"present", 1, true},
		{"any nonzero", 0xFF, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBuilder("Alpha")
			b.record(func(w *codec.Writer) {
				w.Uint32(0).Int32(0).Uint32(0).Uint32(tt.flag)
				if tt.flag != 0 {
					w.Uint32(9)
				}
				w.Uint32(0)
			})

			res, err := Decode[item](b.bytes())
			require.NoError(t, err)
			require.Len(t, res.Records, 1)
			if !tt.present {
				assert.Nil(t, res.Records[0].Boost)
				return
			}
			require.NotNil(t, res.Records[0].Boost)
			assert.Equal(t, uint32(9), *res.Records[0].Boost)
			assert.Empty(t, res.Warnings)
		})
	}
}

func TestDecode_FaultIsolation(t *testing.T) {
	b := newBuilder("Alpha", "Beta")
	b.item(b.offset(0), 1).
		item(99, 2).
		item(b.offset(1), 3)

	var logs bytes.Buffer
	res, err := Decode[item](b.bytes(), WithLogger(zerolog.New(&logs)))
	require.NoError(t, err)

	require.Len(t, res.Records, 2)
	assert.Equal(t, "Alpha", res.Records[0].Name)
	assert.Equal(t, "Beta", res.Records[1].Name)

	require.Len(t, res.Failures, 1)
	failure := res.Failures[0]
	assert.Equal(t, 1, failure.Index)
	assert.Equal(t, KindDecodeFailed, failure.Kind)
	assert.ErrorIs(t, failure.Err, ErrStringNotFound)
	assert.Contains(t, failure.Message, "Name")

	var notFound *codec.StringNotFoundError
	require.True(t, errors.As(failure.Err, &notFound))
	assert.Equal(t, uint32(99), notFound.Index)

	assert.Contains(t, logs.String(), "failed to decode record")
}

func TestDecode_TruncatedRecordIsolated(t *testing.T) {
	for _, workers := range []int{1, 4} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			names := []string{"Alpha", "Beta", "Gamma", "Delta"}
			clean := newBuilder(names...)
			corrupt := newBuilder(names...)
			for i := range names {
				clean.item(clean.offset(i), int32(i))
				if i == 2 {
					// Level is the last complete field; the presence flag is missing.
					corrupt.record(func(w *codec.Writer) {
						w.Uint32(corrupt.offset(2)).Int32(2).Uint32(1)
					})
					continue
				}
				corrupt.item(corrupt.offset(i), int32(i))
			}

			want, err := Decode[item](clean.bytes(), WithWorkers(workers))
			require.NoError(t, err)
			require.Len(t, want.Records, 4)
			require.Empty(t, want.Failures)

			got, err := Decode[item](corrupt.bytes(), WithWorkers(workers))
			require.NoError(t, err)

			require.Len(t, got.Failures, 1)
			assert.Equal(t, 2, got.Failures[0].Index)
			assert.ErrorIs(t, got.Failures[0].Err, ErrTruncated)
			assert.Empty(t, got.Warnings)

			expected := append(append([]item{}, want.Records[:2]...), want.Records[3:]...)
			assert.Equal(t, expected, got.Records)
		})
	}
}

type blob struct {
	Data []byte
}

func TestDecode_ByteBufferEncoding(t *testing.T) {
	b := newBuilder()
	b.record(func(w *codec.Writer) { w.Uint16(2).Raw([]byte{0xFF, 0xFE}) })
	b.record(func(w *codec.Writer) { w.LString("ok") })

	res, err := Decode[blob](b.bytes())
	require.NoError(t, err)

	require.Len(t, res.Records, 1)
	assert.Equal(t, []byte("ok"), res.Records[0].Data)

	require.Len(t, res.Failures, 1)
	assert.Equal(t, 0, res.Failures[0].Index)
	assert.ErrorIs(t, res.Failures[0].Err, ErrInvalidEncoding)
}

func TestDecode_UnsupportedSignature(t *testing.T) {
	b := newBuilder("Alpha").item(0, 1)
	b.signature = "Parse9"

	res, err := Decode[item](b.bytes())
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "Parse9")
}

func TestDecode_BadMagic(t *testing.T) {
	data := newBuilder().bytes()
	copy(data, "CrypticX")

	_, err := Decode[item](data)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestDecode_TrailingFields(t *testing.T) {
	b := newBuilder("Alpha")
	b.record(func(w *codec.Writer) {
		w.Uint32(0).Int32(5).Uint32(0).Uint32(0).Uint32(0).Uint32(0xCAFE)
	})

	var logs bytes.Buffer
	res, err := Decode[item](b.bytes(), WithLogger(zerolog.New(&logs)))
	require.NoError(t, err)

	require.Len(t, res.Records, 1, "a trailing-byte warning does not drop the record")
	assert.Equal(t, int32(5), res.Records[0].Level)

	require.Len(t, res.Warnings, 1)
	assert.Equal(t, 0, res.Warnings[0].Index)
	assert.Equal(t, KindTrailingBytes, res.Warnings[0].Kind)
	assert.Equal(t, "item had 4 extra bytes at the end", res.Warnings[0].Message)
	assert.Contains(t, logs.String(), "record has trailing bytes")
}

func TestDecode_PartialShapeSuppressesWarning(t *testing.T) {
	b := newBuilder()
	b.record(func(w *codec.Writer) {
		w.Uint32(7).Uint32(1).Uint32(2).Uint32(3)
	})

	res, err := Decode[stub](b.bytes())
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, uint32(7), res.Records[0].ID)
	assert.Empty(t, res.Warnings)
}

func TestDecode_Union(t *testing.T) {
	b := newBuilder("Build_Up")
	b.record(func(w *codec.Writer) { w.Uint32(0) })
	b.record(func(w *codec.Writer) {
		w.Uint32(1).Framed(func(w *codec.Writer) {
			w.Uint32(b.offset(0)).Uint32(3)
		})
	})
	b.record(func(w *codec.Writer) { w.Uint32(2) })

	res, err := Decode[prize](b.bytes())
	require.NoError(t, err)

	require.Len(t, res.Records, 2)
	assert.True(t, res.Records[0].Reward.Is("Nothing"))
	assert.Nil(t, res.Records[0].Reward.Value)

	assert.True(t, res.Records[1].Reward.Is("Grant"))
	assert.Equal(t, uint32(1), res.Records[1].Reward.Ordinal)
	assert.Equal(t, grant{Power: "Build_Up", Count: 3}, res.Records[1].Reward.Value)

	require.Len(t, res.Failures, 1)
	assert.Equal(t, 2, res.Failures[0].Index)
	assert.ErrorIs(t, res.Failures[0].Err, ErrUnknownVariant)
}

func TestDecode_TruncatedRecord(t *testing.T) {
	b := newBuilder("Alpha")
	b.record(func(w *codec.Writer) { w.Uint32(0) })
	data := b.bytes()

	res, err := Decode[item](data)
	require.NoError(t, err, "a short record fails alone")
	require.Len(t, res.Failures, 1)
	assert.ErrorIs(t, res.Failures[0].Err, ErrTruncated)

	_, err = Decode[item](data[:len(data)-2])
	assert.ErrorIs(t, err, ErrTruncated, "a record running past the file is fatal")
}

func TestDecode_TrailingFileData(t *testing.T) {
	b := newBuilder("Alpha").item(0, 1)
	b.trailer = []byte{1, 2, 3, 4}

	_, err := Decode[item](b.bytes())
	assert.ErrorIs(t, err, ErrTrailingData)
}

func TestDecode_NotRecord(t *testing.T) {
	_, err := Decode[int32](newBuilder().bytes())
	assert.ErrorIs(t, err, ErrNotRecord)
}

func TestDecode_MaxSize(t *testing.T) {
	data := newBuilder("Alpha").item(0, 1).bytes()

	_, err := Decode[item](data, WithMaxSize(len(data)-1))
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = Decode[item](data, WithMaxSize(len(data)))
	assert.NoError(t, err)
}

func TestDecode_WorkersPreserveOrder(t *testing.T) {
	names := make([]string, 64)
	for i := range names {
		names[i] = fmt.Sprintf("Power_%02d", i)
	}
	b := newBuilder(names...)
	for i := range names {
		if i%10 == 3 {
			b.item(0xFFFF, int32(i))
			continue
		}
		b.item(b.offset(i), int32(i))
	}
	data := b.bytes()

	sequential, err := Decode[item](data)
	require.NoError(t, err)
	parallel, err := Decode[item](data, WithWorkers(8))
	require.NoError(t, err)

	assert.Equal(t, sequential, parallel)
	for i := 1; i < len(parallel.Records); i++ {
		assert.Less(t, parallel.Records[i-1].Level, parallel.Records[i].Level)
	}
	require.Len(t, parallel.Failures, 7)
	for i, f := range parallel.Failures {
		assert.Equal(t, i*10+3, f.Index)
	}
}

type countingObserver struct {
	mu       sync.Mutex
	ok       int
	failed   int
	warnings int
	files    int
	err      error
}

func (o *countingObserver) ObserveRecord(ok bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if ok {
		o.ok++
	} else {
		o.failed++
	}
}

func (o *countingObserver) ObserveWarning() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.warnings++
}

func (o *countingObserver) ObserveFile(records, failures int, elapsed time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.files++
	o.err = err
}

func TestDecode_Observer(t *testing.T) {
	b := newBuilder("Alpha").item(0, 1).item(77, 2)
	b.record(func(w *codec.Writer) {
		w.Uint32(0).Int32(3).Uint32(0).Uint32(0).Uint32(0).Uint32(0)
	})

	obs := &countingObserver{}
	_, err := Decode[item](b.bytes(), WithObserver(obs), WithWorkers(2))
	require.NoError(t, err)

	assert.Equal(t, 2, obs.ok)
	assert.Equal(t, 1, obs.failed)
	assert.Equal(t, 1, obs.warnings)
	assert.Equal(t, 1, obs.files)
	assert.NoError(t, obs.err)

	_, err = Decode[item]([]byte("nope"), WithObserver(obs))
	require.Error(t, err)
	assert.Equal(t, 2, obs.files)
	assert.Error(t, obs.err)
}

func TestReadHeader(t *testing.T) {
	b := newBuilder("Alpha", "Beta").item(0, 1).item(6, 2)

	h, err := ReadHeader(b.bytes())
	require.NoError(t, err)
	assert.Equal(t, uint32(0xDEADBEEF), h.Checksum)
	assert.Equal(t, Signature, h.Signature)
	assert.Equal(t, uint32(11), h.PoolSize)
	assert.Equal(t, 2, h.Strings)
	assert.Equal(t, uint32(2), h.RecordCount)

	p, err := ReadStrings(b.bytes())
	require.NoError(t, err)
	s, ok := p.Lookup(6)
	require.True(t, ok)
	assert.Equal(t, "Beta", s)
}

type mapSource map[string][]byte

func (m mapSource) Bytes(name string) ([]byte, error) {
	data, ok := m[name]
	if !ok {
		return nil, errors.New("no such file")
	}
	return data, nil
}

func TestDecodeFile(t *testing.T) {
	src := mapSource{"bin/items.bin": newBuilder("Alpha").item(0, 4).bytes()}

	res, err := DecodeFile[item](src, "bin/items.bin")
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "Alpha", res.Records[0].Name)

	_, err = DecodeFile[item](src, "bin/missing.bin")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bin/missing.bin")
}
