// Package lifecycle declares the contracts of olydash I/O components.
// Implementations live in internal/io* packages.
package lifecycle

import (
	"context"

	"github.com/olydash/olydash/pkg/table"
)

// Loader reads raw entity files into typed tables.
type Loader interface {
	// Load reads the raw entity with the given name. Columns are matched by
	// name, values are normalized and duplicate rows are dropped.
	Load(ctx context.Context, entity string) (*table.Table, error)
}

// Store persists derived tables.
type Store interface {
	// Save replaces the stored table atomically.
	Save(ctx context.Context, t *table.Table) error

	// Load reads a stored table and decodes it with its derived schema.
	Load(ctx context.Context, name string) (*table.Table, error)

	// Remove deletes a stored table. Removing a missing table is not an
	// error.
	Remove(ctx context.Context, name string) error
}
