// Package schema provides PostgreSQL models and DDL for published
// olydash tables.
//
// Bookkeeping tables (pipeline_runs, published_tables) are gorm models
// migrated with AutoMigrate. Derived tables have a dynamic layout, their
// DDL is generated from entity schemas.
package schema

import (
	"time"

	"github.com/google/uuid"
)

// Run statuses.
const (
	RunRunning = "running"
	RunOK      = "ok"
	RunFailed  = "failed"
)

// PipelineRun records one publish run.
type PipelineRun struct {
	// ID is a random UUID assigned when the run starts.
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	// Version of olydash that published the data.
	Version string `gorm:"type:varchar(50)"`

	StartedAt  time.Time `gorm:"not null"`
	FinishedAt *time.Time

	// Status is one of RunRunning, RunOK, RunFailed.
	Status string `gorm:"type:varchar(20);not null;index"`

	// TablesCount is the number of tables published by the run.
	TablesCount int

	// RowsCount is the total number of published rows.
	RowsCount int64

	Tables []PublishedTable `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE"`
}

// PublishedTable records one derived table copied by a run.
type PublishedTable struct {
	ID uint `gorm:"primaryKey"`

	RunID uuid.UUID `gorm:"type:uuid;not null;index"`

	// Name of the derived table.
	Name string `gorm:"type:varchar(100);not null;index"`

	// Rows is the number of copied rows.
	Rows int

	PublishedAt time.Time `gorm:"not null"`
}
