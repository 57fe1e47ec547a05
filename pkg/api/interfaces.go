// Package api provides interfaces for dependency injection
package api

import (
	"context"

	"github.com/segmentio/ksuid"
	"github.com/ssargent/cohbin/pkg/messages"
	"github.com/ssargent/cohbin/pkg/objects"
	"github.com/ssargent/cohbin/pkg/pigg"
	"github.com/ssargent/cohbin/pkg/storage"
)

// Catalog decodes bin files out of the open archive
type Catalog interface {
	// Files lists the archive entries
	Files() []pigg.Entry

	// Kinds lists the decodable kinds and the entries they read
	Kinds() []objects.Kind

	// Decode decodes a kind, optionally resolving display strings
	Decode(kind string, resolve bool) (*objects.Decoded, error)

	// Message looks up one message key
	Message(key string) (messages.Entry, error)
}

// ExportStore persists decoded files as JSON documents
type ExportStore interface {
	CreateBatch(kind string, items [][]byte) ([]ksuid.KSUID, error)
	Read(kind string, id ksuid.KSUID) ([]byte, error)
	Delete(kind string, id ksuid.KSUID) error
	List(kind string, limit int) ([]storage.Record, error)
}

// ServerStarter defines the interface for starting the API server
type ServerStarter interface {
	// StartServer serves until ctx is cancelled. exports may be nil.
	StartServer(ctx context.Context, catalog Catalog, exports ExportStore, config ServerConfig) error
}

// ServerFactory creates server instances
type ServerFactory interface {
	// CreateServerStarter creates a server starter
	CreateServerStarter() ServerStarter
}
