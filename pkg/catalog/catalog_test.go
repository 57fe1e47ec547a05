package catalog

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/ssargent/cohbin/pkg/catalog/catalogtest"
	"github.com/ssargent/cohbin/pkg/config"
	"github.com/ssargent/cohbin/pkg/messages"
	"github.com/ssargent/cohbin/pkg/metrics"
	"github.com/ssargent/cohbin/pkg/objects"
	"github.com/ssargent/cohbin/pkg/pigg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalog(t *testing.T, archive Archive) (*Catalog, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	cfg := config.DefaultConfig()
	cfg.Decode.Workers = 2
	return New(archive, Options{Config: cfg, Logger: zerolog.Nop(), Metrics: metrics.New(reg)}), reg
}

func TestDecode(t *testing.T) {
	c, reg := newCatalog(t, catalogtest.NewArchive())

	decoded, err := c.Decode("power_categories", false)
	require.NoError(t, err)

	records := decoded.Records.([]objects.PowerCategory)
	require.Len(t, records, 2)
	assert.Equal(t, "Blaster_Ranged", records[0].Name)
	assert.Equal(t, "P1001", records[0].DisplayName)
	assert.Equal(t, []string{"Blaster_Support.Fire_Manipulation"}, records[1].Powersets)

	require.Len(t, decoded.Failures, 1)
	assert.Equal(t, 2, decoded.Failures[0].Index)

	// One series per status
	n, err := testutil.GatherAndCount(reg, "cohbin_decode_records_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestDecode_Resolve(t *testing.T) {
	c, _ := newCatalog(t, catalogtest.NewArchive())

	decoded, err := c.Decode("power_categories", true)
	require.NoError(t, err)

	records := decoded.Records.([]objects.PowerCategory)
	assert.Equal(t, "Blaster Primary", records[0].DisplayName)
	assert.Equal(t, "Ranged damage sets", records[0].DisplayHelp)
	assert.Equal(t, "Blaster Secondary", records[1].DisplayName)
	assert.Empty(t, records[1].DisplayHelp)
}

func TestDecode_Errors(t *testing.T) {
	c, _ := newCatalog(t, catalogtest.NewArchive())

	_, err := c.Decode("enhancements", false)
	assert.ErrorIs(t, err, objects.ErrUnknownKind)

	_, err = c.Decode("powers", false)
	assert.ErrorIs(t, err, pigg.ErrNotFound)
}

func TestDecode_EntryOverride(t *testing.T) {
	archive := catalogtest.NewArchive()
	archive["bin/i24/powercats.bin"] = archive[catalogtest.PowerCategoriesEntry]
	delete(archive, catalogtest.PowerCategoriesEntry)

	cfg := config.DefaultConfig()
	cfg.Entries = map[string]string{"power_categories": "bin/i24/powercats.bin"}
	c := New(archive, Options{Config: cfg, Logger: zerolog.Nop()})

	decoded, err := c.Decode("power_categories", false)
	require.NoError(t, err)
	assert.Equal(t, 2, decoded.Len())

	for _, k := range c.Kinds() {
		if k.Name == "power_categories" {
			assert.Equal(t, "bin/i24/powercats.bin", k.Entry)
		}
	}
}

func TestMessages(t *testing.T) {
	c, _ := newCatalog(t, catalogtest.NewArchive())

	e, err := c.Message("P1003")
	require.NoError(t, err)
	assert.Equal(t, "Ranged", e.Message)

	_, err = c.Message("P9999")
	assert.ErrorIs(t, err, messages.ErrNotFound)
}

func TestMessages_SeparateSource(t *testing.T) {
	main := catalogtest.Archive{catalogtest.PowerCategoriesEntry: catalogtest.PowerCategories()}
	texts := catalogtest.Archive{catalogtest.MessagesEntry: catalogtest.MessageStore(catalogtest.Messages)}

	c := New(main, Options{Logger: zerolog.Nop(), Messages: texts})
	e, err := c.Message("P2001")
	require.NoError(t, err)
	assert.Equal(t, "Blaster Secondary", e.Message)
}

func TestMessages_Missing(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.MessagesEntry = ""
	c := New(catalogtest.NewArchive(), Options{Config: cfg, Logger: zerolog.Nop()})

	_, err := c.Decode("power_categories", true)
	assert.True(t, errors.Is(err, ErrNoMessages))
}

func TestDecodeBytes(t *testing.T) {
	c, _ := newCatalog(t, nil)

	decoded, err := c.DecodeBytes("power_categories", "powercats.bin", catalogtest.PowerCategories(), false)
	require.NoError(t, err)
	assert.Equal(t, 2, decoded.Len())
	assert.Empty(t, c.Files())

	_, err = c.DecodeBytes("power_categories", "junk.bin", []byte("not a bin file"), false)
	assert.Error(t, err)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	raw := catalogtest.PowerCategories()

	plain := filepath.Join(dir, "powercats.bin")
	require.NoError(t, os.WriteFile(plain, raw, 0o644))

	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	packed := enc.EncodeAll(raw, nil)
	require.NoError(t, enc.Close())
	compressed := filepath.Join(dir, "powercats.bin.zst")
	require.NoError(t, os.WriteFile(compressed, packed, 0o644))

	got, err := ReadFile(plain)
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	got, err = ReadFile(compressed)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(raw, got))

	_, err = ReadFile(filepath.Join(dir, "missing.bin"))
	assert.Error(t, err)
}

func TestCatalog_PiggArchive(t *testing.T) {
	path, err := catalogtest.NewArchive().WriteFile(t.TempDir())
	require.NoError(t, err)

	a, err := pigg.Open(path)
	require.NoError(t, err)

	c := New(a, Options{Logger: zerolog.Nop()})
	assert.Len(t, c.Files(), 2)

	decoded, err := c.Decode("power_categories", true)
	require.NoError(t, err)
	assert.Equal(t, "Blaster Primary", decoded.Records.([]objects.PowerCategory)[0].DisplayName)

	require.NoError(t, c.Close())
}
