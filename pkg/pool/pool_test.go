package pool

import (
	"testing"

	"github.com/ssargent/cohbin/pkg/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Offsets(t *testing.T) {
	p, err := Build([]byte("Alpha\x00Beta\x00Gamma\x00"))
	require.NoError(t, err)

	assert.Equal(t, 3, p.Len())
	assert.Equal(t, 17, p.Size())
	assert.Equal(t, []uint32{0, 6, 11}, p.Offsets())

	testCases := []struct {
		offset uint32
		want   string
	}{
		{0, "Alpha"},
		{6, "Beta"},
		{11, "Gamma"},
	}
	for _, tc := range testCases {
		s, ok := p.Lookup(tc.offset)
		assert.True(t, ok, "offset %d", tc.offset)
		assert.Equal(t, tc.want, s)
	}

	// Offsets inside a string are not keys.
	_, ok := p.Lookup(1)
	assert.False(t, ok)
}

func TestBuild_EmptyStrings(t *testing.T) {
	p, err := Build([]byte("\x00A\x00\x00"))
	require.NoError(t, err)

	s, ok := p.Lookup(0)
	require.True(t, ok)
	assert.Equal(t, "", s)

	s, ok = p.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, "A", s)

	s, ok = p.Lookup(3)
	require.True(t, ok)
	assert.Equal(t, "", s)
}

func TestBuild_EmptyArena(t *testing.T) {
	p, err := Build(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Len())
	assert.Empty(t, p.Offsets())
}

func TestBuild_Lossy(t *testing.T) {
	p, err := Build([]byte("ab\xffcd\x00ok\x00"))
	require.NoError(t, err)

	s, ok := p.Lookup(0)
	require.True(t, ok)
	assert.Equal(t, "ab\uFFFDcd", s)

	s, ok = p.Lookup(6)
	require.True(t, ok)
	assert.Equal(t, "ok", s)
}

func TestBuild_LossyPerSubpart(t *testing.T) {
	p, err := Build([]byte("a\xff\xffb\x00"))
	require.NoError(t, err)

	s, ok := p.Lookup(0)
	require.True(t, ok)
	assert.Equal(t, "a\uFFFD\uFFFDb", s)
}

func TestBuild_Unterminated(t *testing.T) {
	_, err := Build([]byte("Alpha\x00Beta"))
	require.Error(t, err)
	assert.ErrorIs(t, err, codec.ErrTruncated)
	assert.Contains(t, err.Error(), "pool offset 6")
}
