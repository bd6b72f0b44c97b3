// Package ioload reads raw entity CSV files into typed tables.
package ioload

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/olydash/olydash/pkg/config"
	"github.com/olydash/olydash/pkg/datasets"
	"github.com/olydash/olydash/pkg/entity"
	"github.com/olydash/olydash/pkg/table"
	"github.com/zeebo/xxh3"
)

// ctxCheckRows is how often the context is checked while reading rows.
const ctxCheckRows = 1_000

// Loader finds raw files through the datasets manifest and decodes them
// with entity schemas.
type Loader struct {
	inputDir string
	manifest *datasets.Manifest
	exclude  map[string]struct{}
}

// Stats describes what happened to rows of one file.
type Stats struct {
	Rows       int
	Duplicates int
	Excluded   int
}

// New creates a Loader for the input directory of cfg. A nil manifest
// means default file names.
func New(cfg *config.Config, m *datasets.Manifest) *Loader {
	if m == nil {
		m = datasets.Default()
	}
	res := Loader{
		inputDir: cfg.InputDir(),
		manifest: m,
		exclude:  make(map[string]struct{}),
	}
	for _, noc := range cfg.Games.ExcludeNOCs {
		res.exclude[noc] = struct{}{}
	}
	return &res
}

// Load reads the raw entity with the given name.
func (l *Loader) Load(ctx context.Context, name string) (*table.Table, error) {
	s, ok := entity.Raw(name)
	if !ok {
		return nil, fmt.Errorf("unknown entity %q", name)
	}

	path, err := l.Path(name)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, ReadError(path, err)
	}
	defer f.Close()

	res, stats, err := l.Read(ctx, f, s, path)
	if err != nil {
		return nil, err
	}

	slog.Info("Loaded entity",
		"entity", name,
		"file", path,
		"rows", stats.Rows,
		"duplicates", stats.Duplicates,
		"excluded", stats.Excluded,
	)
	return res, nil
}

// Path returns the first existing candidate file of the entity.
func (l *Loader) Path(name string) (string, error) {
	files := l.manifest.Files(name)
	for _, f := range files {
		path := filepath.Join(l.inputDir, f)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", ReadError(path, err)
		}
	}
	return "", FileNotFoundError(name, l.inputDir, files)
}

// Read decodes CSV data of one entity. The src argument is used in
// errors and logs only.
func (l *Loader) Read(
	ctx context.Context,
	r io.Reader,
	s entity.Schema,
	src string,
) (*table.Table, Stats, error) {
	var stats Stats

	rd := csv.NewReader(r)
	rd.FieldsPerRecord = -1
	rd.LazyQuotes = true

	header, err := rd.Read()
	if errors.Is(err, io.EOF) {
		return nil, stats, SchemaError(s.Name, src, s.Required)
	}
	if err != nil {
		return nil, stats, ReadError(src, err)
	}

	cols, pos := columns(stripBOM(header), s.Aliases)
	var missing []string
	for _, c := range s.Required {
		if !slices.Contains(cols, c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, stats, SchemaError(s.Name, src, missing)
	}

	n := newNormalizer(s)
	d := newDeduper(s.Key, cols)
	res := table.New(s.Name, cols...)

	for i := 0; ; i++ {
		if i%ctxCheckRows == 0 {
			if err = ctx.Err(); err != nil {
				return nil, stats, err
			}
		}

		rec, err := rd.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, stats, ReadError(src, err)
		}

		row := make(table.Row, len(cols))
		for j, c := range cols {
			k := pos[j]
			if k >= len(rec) {
				row[c] = nil
				continue
			}
			row[c] = n.value(c, rec[k])
		}

		if l.excluded(s, row) {
			stats.Excluded++
			continue
		}
		if d.seen(row) {
			stats.Duplicates++
			continue
		}
		res.Append(row)
	}

	stats.Rows = res.Len()
	return res, stats, nil
}

func (l *Loader) excluded(s entity.Schema, row table.Row) bool {
	if len(l.exclude) == 0 || s.Roles.Country == "" {
		return false
	}
	_, ok := l.exclude[row.String(s.Roles.Country)]
	return ok
}

// columns returns canonical column names and the position of each in the
// CSV record. A repeated column keeps its first position.
func columns(header []string, aliases map[string]string) ([]string, []int) {
	var cols []string
	var pos []int
	for i, h := range header {
		name := headerName(h)
		if a, ok := aliases[name]; ok {
			name = a
		}
		if name == "" || slices.Contains(cols, name) {
			continue
		}
		cols = append(cols, name)
		pos = append(pos, i)
	}
	return cols, pos
}

// deduper keeps the first row of every key. Rows with an empty key
// are always kept. Without key columns the whole row is the key, and
// rows are compared by xxh3 fingerprints.
type deduper struct {
	key    []string
	keys   map[string]struct{}
	hashes map[uint64]struct{}
}

func newDeduper(key, cols []string) *deduper {
	res := deduper{key: key}
	if len(key) == 0 {
		res.key = cols
		res.hashes = make(map[uint64]struct{})
	} else {
		res.keys = make(map[string]struct{})
	}
	return &res
}

func (d *deduper) seen(row table.Row) bool {
	parts := make([]string, len(d.key))
	empty := true
	for i, c := range d.key {
		parts[i] = table.Format(row[c])
		if parts[i] != "" {
			empty = false
		}
	}
	if empty {
		return false
	}
	k := strings.Join(parts, "\x1f")

	if d.hashes != nil {
		h := xxh3.HashString(k)
		if _, ok := d.hashes[h]; ok {
			return true
		}
		d.hashes[h] = struct{}{}
		return false
	}

	if _, ok := d.keys[k]; ok {
		return true
	}
	d.keys[k] = struct{}{}
	return false
}
