package lifecycle

import (
	"context"

	"github.com/olydash/olydash/pkg/config"
)

// SchemaManager defines the interface for database schema management.
// It uses GORM AutoMigrate for the bookkeeping models of published runs.
// Schema management is idempotent - safe to run multiple times.
type SchemaManager interface {
	// Migrate creates or updates bookkeeping tables using GORM AutoMigrate.
	Migrate(ctx context.Context, cfg *config.Config) error
}
