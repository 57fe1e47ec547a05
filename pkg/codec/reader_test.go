package codec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeededPadding(t *testing.T) {
	testCases := []struct {
		length int
		want   int
	}{
		{0, 0},
		{1, 3},
		{2, 2},
		{3, 1},
		{4, 0},
		{5, 3},
		{17, 3},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, NeededPadding(tc.length), "length %d", tc.length)
	}
}

func TestReader_Scalars(t *testing.T) {
	data := NewWriter().
		Uint16(0xBEEF).
		Uint32(0xDEADBEEF).
		Int32(-42).
		Float32(1.5).
		Bytes()

	r := NewReader(data)

	u16, err := r.Uint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0xBEEF), u16)

	u32, err := r.Uint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xDEADBEEF), u32)

	i32, err := r.Int32()
	require.NoError(t, err)
	assert.Equal(t, int32(-42), i32)

	f32, err := r.Float32()
	require.NoError(t, err)
	assert.Equal(t, float32(1.5), f32)

	assert.Equal(t, 0, r.Len())
	assert.Equal(t, len(data), r.Offset())
}

func TestReader_Truncated(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02, 0x03})

	_, err := r.Uint32()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTruncated))

	var te *TruncatedError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, 0, te.Offset)
	assert.Equal(t, 4, te.Need)
	assert.Equal(t, 3, te.Have)

	// A failed read does not move the cursor.
	assert.Equal(t, 3, r.Len())

	_, err = r.Take(4)
	assert.ErrorIs(t, err, ErrTruncated)
	assert.ErrorIs(t, r.Skip(-1), ErrTruncated)
}

func TestReader_PeekDoesNotConsume(t *testing.T) {
	r := NewReader(NewWriter().Uint32(7).Uint32(9).Bytes())

	v, err := r.PeekUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(7), v)
	assert.Equal(t, 0, r.Offset())

	v, err = r.Uint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(7), v)
	assert.Equal(t, 4, r.Offset())
}

func TestReader_LString(t *testing.T) {
	testCases := []struct {
		name     string
		value    string
		consumed int
	}{
		{name: "empty", value: "", consumed: 4},
		{name: "one byte pads to four", value: "A", consumed: 4},
		{name: "two bytes need no padding", value: "AB", consumed: 4},
		{name: "three bytes", value: "ABC", consumed: 8},
		{name: "signature", value: "Parse7", consumed: 8},
		{name: "unicode", value: "héros", consumed: 8},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			data := NewWriter().LString(tc.value).Uint32(0xCAFEBABE).Bytes()
			r := NewReader(data)

			s, err := r.LString()
			require.NoError(t, err)
			assert.Equal(t, tc.value, s)
			assert.Equal(t, tc.consumed, r.Offset())

			next, err := r.Uint32()
			require.NoError(t, err)
			assert.Equal(t, uint32(0xCAFEBABE), next)
		})
	}
}

func TestReader_LStringPaddingLayout(t *testing.T) {
	// "A": 2 length bytes + 1 byte + 1 pad byte.
	r := NewReader([]byte{0x01, 0x00, 'A', 0xEE, 0x05, 0x00, 0x00, 0x00})
	s, err := r.LString()
	require.NoError(t, err)
	assert.Equal(t, "A", s)
	assert.Equal(t, 4, r.Offset())

	// "AB": 2 length bytes + 2 bytes, no padding.
	r = NewReader([]byte{0x02, 0x00, 'A', 'B', 0x05, 0x00, 0x00, 0x00})
	s, err = r.LString()
	require.NoError(t, err)
	assert.Equal(t, "AB", s)
	assert.Equal(t, 4, r.Offset())
}

func TestReader_LStringErrors(t *testing.T) {
	t.Run("invalid utf-8", func(t *testing.T) {
		r := NewReader([]byte{0x02, 0x00, 0xFF, 0xFE})
		_, err := r.LString()
		assert.ErrorIs(t, err, ErrInvalidEncoding)
	})

	t.Run("byte buffers are validated too", func(t *testing.T) {
		r := NewReader([]byte{0x02, 0x00, 0xFF, 0xFE})
		_, err := r.LBytes()
		assert.ErrorIs(t, err, ErrInvalidEncoding)
	})

	t.Run("missing payload", func(t *testing.T) {
		r := NewReader([]byte{0x09, 0x00, 'A'})
		_, err := r.LString()
		assert.ErrorIs(t, err, ErrTruncated)
	})

	t.Run("missing padding", func(t *testing.T) {
		r := NewReader([]byte{0x01, 0x00, 'A'})
		_, err := r.LString()
		assert.ErrorIs(t, err, ErrTruncated)
	})
}

func TestReader_Sub(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4, 5, 6})
	sub, err := r.Sub(4)
	require.NoError(t, err)

	assert.Equal(t, 4, sub.Len())
	assert.Equal(t, 2, r.Len())

	_, err = sub.Take(5)
	assert.ErrorIs(t, err, ErrTruncated)

	b, err := sub.Take(4)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, b)

	b, err = r.Take(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{5, 6}, b)
}

func TestReader_Expect(t *testing.T) {
	r := NewReader([]byte("CrypticS\x01"))
	require.NoError(t, r.Expect([]byte("CrypticS")))
	assert.Equal(t, 8, r.Offset())

	r = NewReader([]byte("Cryptic"))
	assert.ErrorIs(t, r.Expect([]byte("CrypticS")), ErrUnsupportedFormat)
	assert.Equal(t, 0, r.Offset())
}

func TestWrapField(t *testing.T) {
	inner := &StringNotFoundError{Index: 12}
	err := WrapField("name", inner)
	err = WrapField("[2]", err)
	err = WrapField("effects", err)
	err = WrapField("Power", err)

	assert.Equal(t, "Power.effects[2].name: string not found in pool: offset 12", err.Error())
	assert.ErrorIs(t, err, ErrStringNotFound)

	var snf *StringNotFoundError
	require.ErrorAs(t, err, &snf)
	assert.Equal(t, uint32(12), snf.Index)
}

func TestLossy(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"valid", []byte("Café"), "Café"},
		{"one replacement per bad byte", []byte("a\xff\xffb"), "a\uFFFD\uFFFDb"},
		{"truncated sequence is one subpart", []byte("a\xe2\x82b"), "a\uFFFDb"},
		{"truncated at end", []byte("ab\xe2\x82"), "ab\uFFFD"},
		{"surrogate", []byte("\xed\xa0\x80"), "\uFFFD\uFFFD\uFFFD"},
		{"overlong", []byte("\xc0\xaf"), "\uFFFD\uFFFD"},
		{"four byte truncated", []byte("\xf0\x9f\x98x"), "\uFFFDx"},
		{"stray continuation", []byte("\x80\x80A"), "\uFFFD\uFFFDA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Lossy(tt.in))
		})
	}
}
