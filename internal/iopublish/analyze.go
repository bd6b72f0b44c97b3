package iopublish

import (
	"context"
	"log/slog"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/jackc/pgx/v5"
	"github.com/olydash/olydash/pkg/table"
)

// vacuumAnalyze refreshes planner statistics of published tables.
// VACUUM cannot run inside a transaction, so it runs after every table
// is committed. Failures are logged, published data stays valid.
func (p *Publisher) vacuumAnalyze(ctx context.Context, tables []*table.Table) {
	start := time.Now()
	for _, t := range tables {
		q := "VACUUM ANALYZE " + pgx.Identifier{t.Name}.Sanitize()
		if _, err := p.operator.Pool().Exec(ctx, q); err != nil {
			slog.Warn("Cannot run VACUUM ANALYZE", "table", t.Name, "error", err)
		}
	}
	slog.Info("VACUUM ANALYZE completed",
		"tables", len(tables),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
}
