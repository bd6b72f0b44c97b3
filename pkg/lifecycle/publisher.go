package lifecycle

import (
	"context"

	"github.com/olydash/olydash/pkg/table"
)

// Publisher copies derived tables into PostgreSQL.
type Publisher interface {
	// Publish recreates every given table in the database and bulk-loads
	// its rows. It returns the id of the recorded run.
	Publish(ctx context.Context, tables []*table.Table) (string, error)
}

// ImageFetcher resolves athlete portraits.
type ImageFetcher interface {
	// Fetch returns the athlete_images table for the given athletes.
	// A failed lookup falls back for that athlete only.
	Fetch(ctx context.Context, athletes *table.Table) (*table.Table, error)
}
