package iostore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/olydash/olydash/pkg/table"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGo)
)

// SQLiteStore keeps derived tables in one SQLite database, one SQL table
// per derived table.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens or creates the database file.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, LoadError("sqlite", path, err)
	}
	// SQLite allows one writer, builders save concurrently.
	db.SetMaxOpenConns(1)

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, LoadError("sqlite", path, err)
	}
	return &SQLiteStore{db: db, path: path}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save replaces the SQL table in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, t *table.Table) error {
	if err := s.save(ctx, t); err != nil {
		return SaveError(t.Name, s.path, err)
	}
	return nil
}

func (s *SQLiteStore) save(ctx context.Context, t *table.Table) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	name := quote(t.Name)
	if _, err = tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+name); err != nil {
		return fmt.Errorf("drop: %w", err)
	}

	defs := make([]string, len(t.Columns))
	cols := make([]string, len(t.Columns))
	marks := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = quote(c)
		defs[i] = cols[i] + " " + sqlType(columnType(t.Name, c))
		marks[i] = "?"
	}
	q := fmt.Sprintf("CREATE TABLE %s (%s)", name, strings.Join(defs, ", "))
	if _, err = tx.ExecContext(ctx, q); err != nil {
		return fmt.Errorf("create: %w", err)
	}

	q = fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		name, strings.Join(cols, ", "), strings.Join(marks, ", "))
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	args := make([]any, len(t.Columns))
	for _, r := range t.Rows {
		for i, c := range t.Columns {
			args[i] = sqlValue(r[c])
		}
		if _, err = stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert: %w", err)
		}
	}
	return tx.Commit()
}

// Load reads the SQL table back in insertion order.
func (s *SQLiteStore) Load(ctx context.Context, name string) (*table.Table, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?",
		name,
	).Scan(&n)
	if err != nil {
		return nil, LoadError(name, s.path, err)
	}
	if n == 0 {
		return nil, TableNotFoundError(name, s.path)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT * FROM "+quote(name)+" ORDER BY rowid")
	if err != nil {
		return nil, LoadError(name, s.path, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, LoadError(name, s.path, err)
	}
	res := table.New(name, cols...)

	vals := make([]sql.NullString, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err = rows.Scan(ptrs...); err != nil {
			return nil, LoadError(name, s.path, err)
		}
		row := make(table.Row, len(cols))
		for i, c := range cols {
			if !vals[i].Valid {
				row[c] = nil
				continue
			}
			row[c] = decode(name, c, vals[i].String)
		}
		res.Append(row)
	}
	if err = rows.Err(); err != nil {
		return nil, LoadError(name, s.path, err)
	}
	return res, nil
}

// Remove drops the SQL table.
func (s *SQLiteStore) Remove(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+quote(name))
	if err != nil {
		return RemoveError(name, s.path, err)
	}
	return nil
}

func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

func sqlType(t table.Type) string {
	switch t {
	case table.Int:
		return "INTEGER"
	case table.Float:
		return "REAL"
	default:
		return "TEXT"
	}
}

func sqlValue(v any) any {
	switch v := v.(type) {
	case nil:
		return nil
	case int:
		return int64(v)
	case float64:
		return v
	default:
		return table.Format(v)
	}
}
