// Package ioschema implements the SchemaManager interface. It migrates
// bookkeeping tables of published data with GORM AutoMigrate.
package ioschema

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/olydash/olydash/pkg/config"
	"github.com/olydash/olydash/pkg/db"
	"github.com/olydash/olydash/pkg/schema"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Manager implements the lifecycle.SchemaManager interface
// using GORM AutoMigrate.
type Manager struct {
	operator db.Operator
}

// NewManager creates a new Manager.
func NewManager(op db.Operator) *Manager {
	return &Manager{operator: op}
}

// Migrate creates or updates bookkeeping tables. Derived tables are not
// touched, the publisher recreates them on every run.
func (m *Manager) Migrate(
	ctx context.Context,
	cfg *config.Config,
) error {
	if m.operator == nil || m.operator.Pool() == nil {
		return NotConnectedError()
	}

	sqlDB := stdlib.OpenDBFromPool(m.operator.Pool())
	defer sqlDB.Close()

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		return GORMConnectionError(err)
	}

	if err := schema.Migrate(gormDB.WithContext(ctx)); err != nil {
		return MigrateSchemaError(err)
	}

	slog.Info("Bookkeeping schema is up to date",
		"database", cfg.Database.Database)
	return nil
}
