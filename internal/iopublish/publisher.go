// Package iopublish copies derived tables into PostgreSQL.
//
// Every table is dropped and recreated inside its own transaction, then
// bulk-loaded with COPY. A table is either fully replaced or left as it
// was. Each run is recorded in pipeline_runs, and every copied table in
// published_tables.
package iopublish

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnuuid"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	app "github.com/olydash/olydash/pkg"
	"github.com/olydash/olydash/pkg/config"
	"github.com/olydash/olydash/pkg/db"
	"github.com/olydash/olydash/pkg/entity"
	"github.com/olydash/olydash/pkg/schema"
	"github.com/olydash/olydash/pkg/table"
)

// Publisher implements lifecycle.Publisher.
type Publisher struct {
	operator  db.Operator
	batchSize int
	quiet     bool
}

// Option configures a Publisher.
type Option func(*Publisher)

// OptQuiet hides the progress bar.
func OptQuiet(b bool) Option {
	return func(p *Publisher) {
		p.quiet = b
	}
}

// New creates a Publisher that uses a connected operator.
func New(cfg *config.Config, op db.Operator, opts ...Option) *Publisher {
	res := &Publisher{
		operator:  op,
		batchSize: max(cfg.Database.BatchSize, 1),
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Publish copies tables and returns the id of the run. Bookkeeping tables
// must exist already (see ioschema.Manager). When a table fails, the
// run is marked as failed and tables published before it stay in place.
func (p *Publisher) Publish(
	ctx context.Context,
	tables []*table.Table,
) (string, error) {
	if p.operator == nil || p.operator.Pool() == nil {
		return "", NotConnectedError()
	}
	start := time.Now()
	runID := uuid.New()

	if err := p.startRun(ctx, runID, start); err != nil {
		return "", err
	}

	var total int
	for _, t := range tables {
		total += t.Len()
	}
	bar := p.progressBar(total)
	defer bar.Finish()

	var rows int64
	for _, t := range tables {
		n, err := p.publishTable(ctx, runID, t, bar)
		if err != nil {
			_ = p.finishRun(ctx, runID, schema.RunFailed, 0, 0)
			return runID.String(), err
		}
		rows += int64(n)
		slog.Info("Published table",
			"table", t.Name, "rows", humanize.Comma(int64(n)))
	}

	if err := p.finishRun(ctx, runID, schema.RunOK, len(tables), rows); err != nil {
		return runID.String(), err
	}
	p.vacuumAnalyze(ctx, tables)

	dur := time.Since(start).Seconds()
	slog.Info("Publish complete",
		"run_id", runID.String(),
		"tables", len(tables),
		"rows", rows,
		"duration", gnfmt.TimeString(dur),
	)
	gn.Info(`Published <em>%d</em> tables, %s rows
		Run id: <em>%s</em>
		Elapsed time: <em>%s</em>
`,
		len(tables),
		humanize.Comma(rows),
		runID.String(),
		gnfmt.TimeString(dur),
	)
	return runID.String(), nil
}

func (p *Publisher) startRun(
	ctx context.Context,
	runID uuid.UUID,
	start time.Time,
) error {
	q := `INSERT INTO pipeline_runs
	(id, version, started_at, status, tables_count, rows_count)
	VALUES ($1, $2, $3, $4, 0, 0)`
	_, err := p.operator.Pool().Exec(ctx, q,
		runID.String(), app.Version, start, schema.RunRunning)
	if err != nil {
		return RunRecordError(runID.String(), err)
	}
	return nil
}

func (p *Publisher) finishRun(
	ctx context.Context,
	runID uuid.UUID,
	status string,
	tables int,
	rows int64,
) error {
	// a failed run is recorded even when ctx was canceled
	ctx = context.WithoutCancel(ctx)
	q := `UPDATE pipeline_runs
	SET finished_at = $2, status = $3, tables_count = $4, rows_count = $5
	WHERE id = $1`
	_, err := p.operator.Pool().Exec(ctx, q,
		runID.String(), time.Now(), status, tables, rows)
	if err != nil {
		err = RunRecordError(runID.String(), err)
		slog.Error("Cannot finish run record", "error", err)
		return err
	}
	return nil
}

// publishTable replaces one table in a single transaction.
func (p *Publisher) publishTable(
	ctx context.Context,
	runID uuid.UUID,
	t *table.Table,
	bar *pb.ProgressBar,
) (int, error) {
	s := schemaOf(t.Name)
	ident := pgx.Identifier{t.Name}

	tx, err := p.operator.Pool().Begin(ctx)
	if err != nil {
		return 0, CreateTableError(t.Name, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	q := "DROP TABLE IF EXISTS " + ident.Sanitize() + " CASCADE"
	if _, err = tx.Exec(ctx, q); err != nil {
		return 0, CreateTableError(t.Name, err)
	}
	if _, err = tx.Exec(ctx, schema.TableDDL(s, t.Columns)); err != nil {
		return 0, CreateTableError(t.Name, err)
	}

	columns := append([]string{schema.IDColumn}, t.Columns...)
	types := make([]table.Type, len(t.Columns))
	for i, c := range t.Columns {
		types[i] = s.TypeOf(c)
	}

	var count int
	for lo := 0; lo < t.Len(); lo += p.batchSize {
		hi := min(lo+p.batchSize, t.Len())
		batch := make([][]any, 0, hi-lo)
		for _, r := range t.Rows[lo:hi] {
			batch = append(batch, record(t, s, types, r))
		}
		n, err := tx.CopyFrom(ctx, ident, columns, pgx.CopyFromRows(batch))
		if err != nil {
			return 0, CopyError(t.Name, err)
		}
		count += int(n)
		bar.Add(len(batch))
	}

	for _, idx := range schema.IndexDDL(s) {
		if _, err = tx.Exec(ctx, idx); err != nil {
			return 0, CreateTableError(t.Name, err)
		}
	}

	q = `INSERT INTO published_tables (run_id, name, rows, published_at)
	VALUES ($1, $2, $3, $4)`
	if _, err = tx.Exec(ctx, q, runID.String(), t.Name, count, time.Now()); err != nil {
		return 0, RunRecordError(runID.String(), err)
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, CopyError(t.Name, err)
	}
	return count, nil
}

func (p *Publisher) progressBar(total int) *pb.ProgressBar {
	bar := pb.Full.New(total)
	bar.Set("prefix", "Publishing rows: ")
	bar.Set(pb.CleanOnFinish, true)
	if p.quiet {
		bar.SetWriter(io.Discard)
	}
	return bar.Start()
}

// schemaOf finds the schema of a table. Unknown tables get an empty
// schema, so all their columns are published as TEXT.
func schemaOf(name string) entity.Schema {
	if s, ok := entity.Derived(name); ok {
		return s
	}
	if s, ok := entity.Raw(name); ok {
		return s
	}
	return entity.Schema{Name: name}
}

// record converts a row to COPY values, the deterministic id goes first.
func record(
	t *table.Table,
	s entity.Schema,
	types []table.Type,
	r table.Row,
) []any {
	res := make([]any, 0, len(t.Columns)+1)
	res = append(res, rowID(t, s, r))
	for i, c := range t.Columns {
		res = append(res, cellValue(r[c], types[i]))
	}
	return res
}

// rowID is a UUID v5 of the table name and key values. Tables without a
// key use all columns.
func rowID(t *table.Table, s entity.Schema, r table.Row) string {
	key := s.Key
	if len(key) == 0 {
		key = t.Columns
	}
	parts := make([]string, 0, len(key)+1)
	parts = append(parts, t.Name)
	for _, k := range key {
		parts = append(parts, table.Format(r[k]))
	}
	return gnuuid.New(strings.Join(parts, "|")).String()
}

// cellValue converts a cell to a value pgx can encode for a column of the
// given type. Values that do not fit the column become NULL, except for
// TEXT columns that take the canonical text form.
func cellValue(v any, typ table.Type) any {
	switch x := v.(type) {
	case nil:
		return nil
	case table.StringSet:
		if typ == table.Set {
			return []string(x)
		}
	case table.Malformed:
		if typ == table.String {
			return x.Raw
		}
		return nil
	case int:
		switch typ {
		case table.Int:
			return int64(x)
		case table.Float:
			return float64(x)
		}
	case float64:
		if typ == table.Float {
			return x
		}
	case time.Time:
		if typ == table.Time {
			return x
		}
	case string:
		if typ == table.String {
			return x
		}
	}
	if typ == table.String {
		return table.Format(v)
	}
	return nil
}

// Summary renders published table names with row counts.
func Summary(tables []*table.Table) string {
	var sb strings.Builder
	for _, t := range tables {
		fmt.Fprintf(&sb, "%s: %s rows\n", t.Name, humanize.Comma(int64(t.Len())))
	}
	return sb.String()
}
