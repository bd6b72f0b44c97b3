// Package iostore persists derived tables as CSV files, in a SQLite
// database, or both.
package iostore

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/olydash/olydash/internal/iofs"
	"github.com/olydash/olydash/pkg/config"
	"github.com/olydash/olydash/pkg/lifecycle"
	"github.com/olydash/olydash/pkg/table"
)

// MultiStore fans writes out to several stores and reads from the first
// one.
type MultiStore struct {
	stores []lifecycle.Store
	closer func() error
}

// Open creates stores for the configured output format. The output
// directory is created when missing. Close must be called when done.
func Open(ctx context.Context, cfg *config.Config) (*MultiStore, error) {
	if err := iofs.EnsureOutputDir(cfg); err != nil {
		return nil, err
	}

	res := MultiStore{closer: func() error { return nil }}
	if cfg.Data.Format != config.FormatSQLite {
		res.stores = append(res.stores, NewCSV(cfg.OutputDir()))
	}
	if cfg.Data.Format != config.FormatCSV {
		path := filepath.Join(cfg.OutputDir(), cfg.Data.SQLiteFile)
		db, err := OpenSQLite(ctx, path)
		if err != nil {
			return nil, err
		}
		res.stores = append(res.stores, db)
		res.closer = db.Close
	}
	return &res, nil
}

// Close releases the SQLite database if one is open.
func (m *MultiStore) Close() error {
	if m.closer == nil {
		return nil
	}
	return m.closer()
}

// Save saves the table into every store.
func (m *MultiStore) Save(ctx context.Context, t *table.Table) error {
	for _, s := range m.stores {
		if err := s.Save(ctx, t); err != nil {
			return err
		}
	}
	return nil
}

// Load reads the table from the first store.
func (m *MultiStore) Load(ctx context.Context, name string) (*table.Table, error) {
	if len(m.stores) == 0 {
		return nil, TableNotFoundError(name, "empty store")
	}
	return m.stores[0].Load(ctx, name)
}

// Remove deletes the table from every store.
func (m *MultiStore) Remove(ctx context.Context, name string) error {
	var errs []error
	for _, s := range m.stores {
		if err := s.Remove(ctx, name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
