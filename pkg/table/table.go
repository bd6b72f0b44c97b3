// Package table provides the in-memory tabular model shared by the loader,
// the enrichment engine, the filter engine and the aggregation helpers.
//
// A Table is an ordered list of columns and an ordered list of rows. Each
// Row maps a column name to a typed value. Supported value types are:
//
//   - string
//   - int
//   - float64
//   - time.Time
//   - StringSet (multi-valued cells)
//   - Malformed (a cell that could not be decoded)
//   - nil (unknown value)
//
// Tables are treated as immutable once built. Functions that narrow or
// derive tables return new Table values and never modify their inputs.
package table

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Row maps column names to typed values.
type Row map[string]any

// Table is a named, ordered collection of rows.
type Table struct {
	// Name identifies the table, for example "athletes" or
	// "medal_totals_enriched".
	Name string

	// Columns keeps column order for output.
	Columns []string

	// Rows keeps row order for output.
	Rows []Row
}

// New creates an empty table with the given columns.
func New(name string, columns ...string) *Table {
	return &Table{Name: name, Columns: slices.Clone(columns)}
}

// Len returns the number of rows. A nil table has zero rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// HasColumn reports if a column is declared by the table.
func (t *Table) HasColumn(col string) bool {
	if t == nil {
		return false
	}
	return slices.Contains(t.Columns, col)
}

// Require returns an error listing the columns missing from the table.
func (t *Table) Require(cols ...string) error {
	var missing []string
	for _, c := range cols {
		if !t.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		name := "<nil>"
		if t != nil {
			name = t.Name
		}
		return fmt.Errorf("table %s misses columns: %s",
			name, strings.Join(missing, ", "))
	}
	return nil
}

// Append adds a row to the table.
func (t *Table) Append(r Row) {
	t.Rows = append(t.Rows, r)
}

// Subset returns a new table with the rows at the given indices.
// Rows are shared with the receiver, so callers must not modify them.
func (t *Table) Subset(idx []int) *Table {
	res := &Table{
		Name:    t.Name,
		Columns: slices.Clone(t.Columns),
		Rows:    make([]Row, 0, len(idx)),
	}
	for _, i := range idx {
		res.Rows = append(res.Rows, t.Rows[i])
	}
	return res
}

// Copy returns a copy of the row that can be modified safely.
func (r Row) Copy() Row {
	res := make(Row, len(r)+8)
	for k, v := range r {
		res[k] = v
	}
	return res
}

// IsNull reports if the cell is absent or unknown.
func (r Row) IsNull(col string) bool {
	v, ok := r[col]
	return !ok || v == nil
}

// String returns a text rendering of the cell, or an empty string for
// unknown values. Malformed cells return their raw text.
func (r Row) String(col string) string {
	v, ok := r[col]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return Format(v)
}

// Int returns the cell as an int. Float cells are truncated toward zero.
func (r Row) Int(col string) (int, bool) {
	switch v := r[col].(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// IntOr returns the cell as an int or the default value.
func (r Row) IntOr(col string, def int) int {
	if i, ok := r.Int(col); ok {
		return i
	}
	return def
}

// Float returns the cell as a float64.
func (r Row) Float(col string) (float64, bool) {
	switch v := r[col].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

// Time returns the cell as time.Time.
func (r Row) Time(col string) (time.Time, bool) {
	v, ok := r[col].(time.Time)
	return v, ok
}

// Set returns the cell as a StringSet. Single string cells are returned
// as one-element sets. Malformed and unknown cells return false.
func (r Row) Set(col string) (StringSet, bool) {
	switch v := r[col].(type) {
	case StringSet:
		return v, true
	case string:
		return NewStringSet(v), true
	default:
		return nil, false
	}
}
