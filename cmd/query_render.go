package cmd

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/gnames/gnfmt"
	"github.com/jedib0t/go-pretty/v6/table"
	oltable "github.com/olydash/olydash/pkg/table"
)

func render(w io.Writer, t *oltable.Table, format string) error {
	switch format {
	case "json":
		return renderJSON(w, t)
	case "csv":
		return renderCSV(w, t)
	default:
		return renderTable(w, t)
	}
}

func renderTable(w io.Writer, t *oltable.Table) error {
	if t.Len() == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)

	header := make(table.Row, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	tw.AppendHeader(header)

	for _, r := range t.Rows {
		row := make(table.Row, len(t.Columns))
		for i, c := range t.Columns {
			row[i] = oltable.Format(r[c])
		}
		tw.AppendRow(row)
	}

	tw.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", t.Len())
	return nil
}

func renderJSON(w io.Writer, t *oltable.Table) error {
	rows := make([]map[string]any, t.Len())
	for i, r := range t.Rows {
		row := make(map[string]any, len(t.Columns))
		for _, c := range t.Columns {
			row[c] = jsonValue(r[c])
		}
		rows[i] = row
	}

	enc := gnfmt.GNjson{Pretty: true}
	data, err := enc.Encode(rows)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// jsonValue keeps numbers and lists native, other values use their
// canonical text form.
func jsonValue(v any) any {
	switch v := v.(type) {
	case nil, int, string:
		return v
	case float64:
		if oltable.Format(v) == "" {
			return nil
		}
		return v
	case oltable.StringSet:
		return []string(v)
	default:
		return oltable.Format(v)
	}
}

func renderCSV(w io.Writer, t *oltable.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}
	rec := make([]string, len(t.Columns))
	for _, r := range t.Rows {
		for i, c := range t.Columns {
			rec[i] = oltable.Format(r[c])
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
