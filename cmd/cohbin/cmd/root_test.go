package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/ssargent/cohbin/pkg/api"
	"github.com/ssargent/cohbin/pkg/catalog/catalogtest"
	"github.com/ssargent/cohbin/pkg/config"
	"github.com/ssargent/cohbin/pkg/di"
	"github.com/ssargent/cohbin/pkg/objects"
	"github.com/ssargent/cohbin/pkg/pigg"
	"github.com/ssargent/cohbin/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores every flag to its default so runs don't leak into
// each other
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// setup isolates HOME, installs a fresh container and writes the fixture
// archive
func setup(t *testing.T) (archive string, c *di.Container) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	c = di.NewContainer(zerolog.Nop())
	SetContainer(c)
	t.Cleanup(func() { SetContainer(nil) })

	archive, err := catalogtest.NewArchive().WriteFile(t.TempDir())
	require.NoError(t, err)
	return archive, c
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestInitCommand(t *testing.T) {
	setup(t)
	configPath := filepath.Join(t.TempDir(), "cohbin.yaml")

	out, _, err := run(t, "init", "--config", configPath, "--archive", "./game/bin.pigg")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration written to "+configPath)

	cfg, err := config.LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, "./game/bin.pigg", cfg.Archive)
	assert.Empty(t, cfg.Security.APIKey)

	_, _, err = run(t, "init", "--config", configPath)
	assert.ErrorContains(t, err, "already exists")

	out, _, err = run(t, "init", "--config", configPath, "--force", "--api-key")
	require.NoError(t, err)
	assert.Contains(t, out, "API key: ")

	cfg, err = config.LoadConfig(configPath)
	require.NoError(t, err)
	assert.Len(t, cfg.Security.APIKey, 64)
}

func TestMissingExplicitConfig(t *testing.T) {
	archive, _ := setup(t)

	_, _, err := run(t, "files", "--archive", archive, "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "does not exist")
}

func TestConfigFile(t *testing.T) {
	archive, _ := setup(t)
	configPath := filepath.Join(t.TempDir(), "cohbin.yaml")

	cfg := config.DefaultConfig()
	cfg.Archive = archive
	require.NoError(t, config.SaveConfig(cfg, configPath))

	out, _, err := run(t, "files", "--config", configPath)
	require.NoError(t, err)
	assert.Contains(t, out, catalogtest.PowerCategoriesEntry)
}

func TestFilesCommand(t *testing.T) {
	archive, _ := setup(t)

	out, _, err := run(t, "files", "--archive", archive)
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, catalogtest.PowerCategoriesEntry)
	assert.Contains(t, out, catalogtest.MessagesEntry)

	out, _, err = run(t, "files", "--archive", archive, "--format", "json")
	require.NoError(t, err)
	var entries []pigg.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	assert.Len(t, entries, 2)

	_, _, err = run(t, "files", "--archive", filepath.Join(t.TempDir(), "missing.pigg"))
	assert.ErrorContains(t, err, "failed to open archive")
}

func TestExtractCommand(t *testing.T) {
	archive, _ := setup(t)
	out := filepath.Join(t.TempDir(), "nested", "powercats.bin")

	_, _, err := run(t, "extract", catalogtest.PowerCategoriesEntry, "--archive", archive, "-o", out)
	require.NoError(t, err)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, catalogtest.PowerCategories(), got)

	stdout, _, err := run(t, "extract", catalogtest.PowerCategoriesEntry, "--archive", archive)
	require.NoError(t, err)
	assert.Equal(t, string(catalogtest.PowerCategories()), stdout)

	_, _, err = run(t, "extract", "bin/powers.bin", "--archive", archive)
	assert.ErrorIs(t, err, pigg.ErrNotFound)
}

func TestInfoCommand(t *testing.T) {
	archive, _ := setup(t)

	out, _, err := run(t, "info", catalogtest.PowerCategoriesEntry, "--archive", archive)
	require.NoError(t, err)
	assert.Contains(t, out, "Parse7")
	assert.Contains(t, out, "Records:")

	path := filepath.Join(t.TempDir(), "powercats.bin")
	require.NoError(t, os.WriteFile(path, catalogtest.PowerCategories(), 0o644))

	out, _, err = run(t, "info", "--file", path, "--format", "json")
	require.NoError(t, err)
	var h struct {
		Signature   string `json:"signature"`
		Strings     int    `json:"strings"`
		RecordCount int    `json:"record_count"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &h))
	assert.Equal(t, "Parse7", h.Signature)
	assert.Equal(t, 10, h.Strings)
	assert.Equal(t, 3, h.RecordCount)

	_, _, err = run(t, "info")
	assert.ErrorContains(t, err, "--file is required")
}

func TestStringsCommand(t *testing.T) {
	archive, _ := setup(t)

	out, _, err := run(t, "strings", catalogtest.PowerCategoriesEntry, "--archive", archive)
	require.NoError(t, err)
	assert.Contains(t, out, `"Blaster_Ranged"`)
	assert.Contains(t, out, `""`)

	out, _, err = run(t, "strings", catalogtest.PowerCategoriesEntry, "--archive", archive, "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "text: defs/powercats.def")
}

func TestDecodeCommand(t *testing.T) {
	archive, _ := setup(t)

	out, stderr, err := run(t, "decode", "power_categories", "--archive", archive, "--resolve")
	require.NoError(t, err)

	var records []objects.PowerCategory
	require.NoError(t, json.Unmarshal([]byte(out), &records))
	require.Len(t, records, 2)
	assert.Equal(t, "Blaster Primary", records[0].DisplayName)
	assert.Equal(t, "Ranged", records[0].DisplayShortHelp)
	assert.Contains(t, stderr, "record 2:")

	_, _, err = run(t, "decode", "enhancements", "--archive", archive)
	assert.ErrorIs(t, err, objects.ErrUnknownKind)

	_, _, err = run(t, "decode", "power_categories", "--archive", archive, "--format", "xml")
	assert.ErrorContains(t, err, "unsupported format")
}

func TestDecodeCommand_File(t *testing.T) {
	setup(t)
	dir := t.TempDir()

	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	path := filepath.Join(dir, "powercats.bin.zst")
	require.NoError(t, os.WriteFile(path, enc.EncodeAll(catalogtest.PowerCategories(), nil), 0o644))
	require.NoError(t, enc.Close())

	metricsFile := filepath.Join(dir, "cohbin.prom")
	out, _, err := run(t, "decode", "power_categories",
		"--file", path,
		"--format", "yaml",
		"--workers", "2",
		"--metrics-file", metricsFile,
	)
	require.NoError(t, err)
	assert.Contains(t, out, "name: Blaster_Ranged")
	assert.Contains(t, out, "display_name: P1001")

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `cohbin_decode_records_total{kind="power_categories",status="success"} 2`)
}

func TestMessageCommand(t *testing.T) {
	archive, _ := setup(t)

	out, _, err := run(t, "message", "P1001", "P2001", "--archive", archive)
	require.NoError(t, err)
	assert.Equal(t, "P1001\tBlaster Primary\nP2001\tBlaster Secondary\n", out)

	out, _, err = run(t, "message", "P1003", "--archive", archive, "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, `"message": "Ranged"`)

	_, _, err = run(t, "message", "P404", "--archive", archive)
	assert.Error(t, err)
}

func TestExportCommand(t *testing.T) {
	archive, _ := setup(t)
	dataDir := filepath.Join(t.TempDir(), "exports")

	out, _, err := run(t, "export", "power_categories", "--archive", archive, "--data-dir", dataDir, "--resolve")
	require.NoError(t, err)
	ids := strings.Fields(out)
	require.Len(t, ids, 2)

	store, err := storage.NewExportStore(dataDir)
	require.NoError(t, err)
	defer store.Close()

	records, err := store.List("power_categories", 0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, ids[0], records[0].ID.String())
	assert.Contains(t, string(records[0].Data), `"display_name":"Blaster Primary"`)
}

func TestPackCommand(t *testing.T) {
	setup(t)
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "bin"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(src, "bin", "powercats.bin"), catalogtest.PowerCategories(), 0o644))
	out := filepath.Join(t.TempDir(), "packed.pigg")

	_, _, err := run(t, "pack", src, "-o", out)
	require.NoError(t, err)

	stdout, _, err := run(t, "decode", "power_categories", "--archive", out)
	require.NoError(t, err)
	var records []objects.PowerCategory
	require.NoError(t, json.Unmarshal([]byte(stdout), &records))
	assert.Len(t, records, 2)
}

type recordingStarter struct {
	config  api.ServerConfig
	files   int
	exports bool
}

func (s *recordingStarter) StartServer(ctx context.Context, c api.Catalog, e api.ExportStore, cfg api.ServerConfig) error {
	s.config = cfg
	s.files = len(c.Files())
	s.exports = e != nil
	return nil
}

type recordingFactory struct{ starter *recordingStarter }

func (f recordingFactory) CreateServerStarter() api.ServerStarter { return f.starter }

func TestServeCommand(t *testing.T) {
	archive, c := setup(t)
	starter := &recordingStarter{}
	c.SetServerFactory(recordingFactory{starter: starter})

	_, _, err := run(t, "serve", "--archive", archive,
		"--port", "9100",
		"--bind", "0.0.0.0",
		"--api-key", "secret",
		"--data-dir", filepath.Join(t.TempDir(), "data"),
	)
	require.NoError(t, err)
	assert.Equal(t, api.ServerConfig{Port: 9100, Bind: "0.0.0.0", APIKey: "secret"}, starter.config)
	assert.Equal(t, 2, starter.files)
	assert.True(t, starter.exports)

	_, _, err = run(t, "serve", "--archive", archive, "--no-exports")
	require.NoError(t, err)
	assert.False(t, starter.exports)

	_, _, err = run(t, "serve", "--archive", archive, "--port", "0")
	assert.ErrorContains(t, err, "invalid port")
}
