// Package db defines the contract for PostgreSQL connections used by the
// publisher.
package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/olydash/olydash/pkg/config"
)

// Operator manages a connection pool and a few table-level operations.
// Components that need bulk inserts (CopyFrom) or transactions use
// Pool() directly.
type Operator interface {
	// Connect establishes a connection pool to the database.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection pool.
	Close() error

	// Pool returns the underlying pgxpool.Pool.
	Pool() *pgxpool.Pool

	// TableExists checks if a table exists in the public schema.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// Tables lists tables of the public schema in alphabetical order.
	Tables(ctx context.Context) ([]string, error)

	// DropTable drops a table if it exists.
	DropTable(ctx context.Context, tableName string) error
}
