// Package catalog decodes bin files out of an archive by kind. It is the
// service layer shared by the CLI and the REST API.
package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog"
	"github.com/ssargent/cohbin/pkg/config"
	"github.com/ssargent/cohbin/pkg/messages"
	"github.com/ssargent/cohbin/pkg/metrics"
	"github.com/ssargent/cohbin/pkg/objects"
	"github.com/ssargent/cohbin/pkg/parse7"
	"github.com/ssargent/cohbin/pkg/pigg"
)

// ErrNoMessages is returned when strings must be resolved but no message
// store is reachable
var ErrNoMessages = errors.New("no message store configured")

// Archive supplies entries by name
type Archive interface {
	parse7.Source
	Files() []pigg.Entry
}

// Options configures a Catalog
type Options struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Metrics  *metrics.Metrics
	Messages parse7.Source // Archive holding the message store; defaults to the main archive
}

// Catalog decodes kinds from an archive. It is safe for concurrent use.
type Catalog struct {
	archive     Archive
	msgSrc      parse7.Source
	ownMessages bool
	cfg         *config.Config
	logger      zerolog.Logger
	metrics     *metrics.Metrics

	mu       sync.Mutex
	messages *messages.Store
}

// New returns a catalog over archive
func New(archive Archive, opts Options) *Catalog {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	msgSrc := opts.Messages
	if msgSrc == nil && archive != nil {
		msgSrc = archive
	}
	return &Catalog{
		archive:     archive,
		msgSrc:      msgSrc,
		ownMessages: opts.Messages != nil,
		cfg:         cfg,
		logger:      opts.Logger,
		metrics:     opts.Metrics,
	}
}

// Files lists the archive's entries
func (c *Catalog) Files() []pigg.Entry {
	if c.archive == nil {
		return nil
	}
	return c.archive.Files()
}

// Kinds lists the decodable kinds with the entry each is read from
func (c *Catalog) Kinds() []objects.Kind {
	kinds := objects.Kinds()
	for i := range kinds {
		kinds[i].Entry = c.cfg.EntryFor(kinds[i].Name, kinds[i].Entry)
	}
	return kinds
}

// Entry returns the raw bytes of an archive entry
func (c *Catalog) Entry(name string) ([]byte, error) {
	if c.archive == nil {
		return nil, fmt.Errorf("%w: no archive open", pigg.ErrNotFound)
	}
	return c.archive.Bytes(name)
}

// Decode reads the kind's entry from the archive and decodes it
func (c *Catalog) Decode(kind string, resolve bool) (*objects.Decoded, error) {
	k, err := objects.Lookup(kind)
	if err != nil {
		return nil, err
	}
	entry := c.cfg.EntryFor(kind, k.Entry)

	data, err := c.Entry(entry)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", entry, err)
	}
	return c.decode(k, entry, data, resolve)
}

// DecodeBytes decodes data as a file of kind
func (c *Catalog) DecodeBytes(kind, name string, data []byte, resolve bool) (*objects.Decoded, error) {
	k, err := objects.Lookup(kind)
	if err != nil {
		return nil, err
	}
	return c.decode(k, name, data, resolve)
}

func (c *Catalog) decode(k objects.Kind, name string, data []byte, resolve bool) (*objects.Decoded, error) {
	opts := []parse7.Option{
		parse7.WithLogger(c.logger.With().Str("kind", k.Name).Logger()),
		parse7.WithName(name),
		parse7.WithWorkers(c.cfg.Decode.Workers),
		parse7.WithMaxSize(c.cfg.Decode.MaxFileSize),
	}
	if c.metrics != nil {
		opts = append(opts, parse7.WithObserver(c.metrics.Observer(k.Name)))
	}

	decoded, err := k.Decode(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}

	c.logger.Info().
		Str("kind", k.Name).
		Str("file", name).
		Int("records", decoded.Len()).
		Int("failures", len(decoded.Failures)).
		Int("warnings", len(decoded.Warnings)).
		Msg("decoded bin file")

	if resolve {
		store, err := c.Messages()
		if err != nil {
			return nil, err
		}
		if err := decoded.ResolveStrings(store); err != nil {
			return nil, fmt.Errorf("resolving %s: %w", name, err)
		}
	}
	return decoded, nil
}

// Messages loads the message store on first use
func (c *Catalog) Messages() (*messages.Store, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.messages != nil {
		return c.messages, nil
	}
	if c.msgSrc == nil || c.cfg.MessagesEntry == "" {
		return nil, ErrNoMessages
	}

	data, err := c.msgSrc.Bytes(c.cfg.MessagesEntry)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", c.cfg.MessagesEntry, err)
	}
	store, err := messages.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", c.cfg.MessagesEntry, err)
	}

	c.logger.Debug().Int("keys", store.Len()).Msg("loaded message store")
	c.messages = store
	return store, nil
}

// Message returns the message entry for key
func (c *Catalog) Message(key string) (messages.Entry, error) {
	store, err := c.Messages()
	if err != nil {
		return messages.Entry{}, err
	}
	e, ok := store.Entry(key)
	if !ok {
		return messages.Entry{}, fmt.Errorf("%w: %s", messages.ErrNotFound, key)
	}
	return e, nil
}

var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// ReadFile reads a loose bin file, decompressing it when it is a zstd frame
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Decompress(data)
}

// Decompress returns data unchanged unless it starts with a zstd frame
func Decompress(data []byte) ([]byte, error) {
	if !bytes.HasPrefix(data, zstdMagic) {
		return data, nil
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress zstd input: %w", err)
	}
	return out, nil
}

// Close releases the archives if they hold resources
func (c *Catalog) Close() error {
	var errs []error
	if cl, ok := c.archive.(io.Closer); ok {
		errs = append(errs, cl.Close())
	}
	if cl, ok := c.msgSrc.(io.Closer); ok && c.ownMessages {
		errs = append(errs, cl.Close())
	}
	return errors.Join(errs...)
}
