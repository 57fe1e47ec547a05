// Package di provides dependency injection container
package di

import (
	"github.com/rs/zerolog"
	"github.com/ssargent/cohbin/pkg/api" //nolint:depguard
	"github.com/ssargent/cohbin/pkg/catalog"
	"github.com/ssargent/cohbin/pkg/pigg"
	"github.com/ssargent/cohbin/pkg/storage"
)

// ArchiveOpener opens an archive by path
type ArchiveOpener func(path string) (catalog.Archive, error)

// ExportStoreOpener opens the export store under a data directory
type ExportStoreOpener func(dir string) (*storage.ExportStore, error)

// Container holds all the dependencies for the application
type Container struct {
	archiveOpener     ArchiveOpener
	exportStoreOpener ExportStoreOpener
	serverFactory     api.ServerFactory
}

// NewContainer creates a new dependency injection container
func NewContainer(logger zerolog.Logger) *Container {
	return &Container{
		archiveOpener: func(path string) (catalog.Archive, error) {
			a, err := pigg.Open(path)
			if err != nil {
				return nil, err
			}
			return a, nil
		},
		exportStoreOpener: storage.NewExportStore,
		serverFactory:     api.NewServerFactory(logger),
	}
}

// GetArchiveOpener returns the archive opener
func (c *Container) GetArchiveOpener() ArchiveOpener {
	return c.archiveOpener
}

// GetExportStoreOpener returns the export store opener
func (c *Container) GetExportStoreOpener() ExportStoreOpener {
	return c.exportStoreOpener
}

// GetServerFactory returns the server factory
func (c *Container) GetServerFactory() api.ServerFactory {
	return c.serverFactory
}

// SetArchiveOpener allows overriding the archive opener (for testing)
func (c *Container) SetArchiveOpener(opener ArchiveOpener) {
	c.archiveOpener = opener
}

// SetExportStoreOpener allows overriding the export store opener (for testing)
func (c *Container) SetExportStoreOpener(opener ExportStoreOpener) {
	c.exportStoreOpener = opener
}

// SetServerFactory allows overriding the server factory (for testing)
func (c *Container) SetServerFactory(factory api.ServerFactory) {
	c.serverFactory = factory
}
