package iostore

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/olydash/olydash/pkg/table"
)

// CSVStore keeps every derived table in its own CSV file.
type CSVStore struct {
	dir string
}

// NewCSV creates a CSV store in an existing directory.
func NewCSV(dir string) *CSVStore {
	return &CSVStore{dir: dir}
}

// Path returns the file of a table.
func (s *CSVStore) Path(name string) string {
	return filepath.Join(s.dir, name+".csv")
}

// Save writes the table to a temporary file and renames it over the old
// one, so readers never see a partial file.
func (s *CSVStore) Save(ctx context.Context, t *table.Table) error {
	path := s.Path(t.Name)
	f, err := os.CreateTemp(s.dir, t.Name+".*.tmp")
	if err != nil {
		return SaveError(t.Name, s.dir, err)
	}
	tmp := f.Name()

	err = writeCSV(ctx, f, t)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmp, path)
	}
	if err != nil {
		_ = os.Remove(tmp)
		return SaveError(t.Name, path, err)
	}
	return nil
}

func writeCSV(ctx context.Context, w io.Writer, t *table.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Columns); err != nil {
		return err
	}

	rec := make([]string, len(t.Columns))
	for i, r := range t.Rows {
		if i%1_000 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		for j, c := range t.Columns {
			rec[j] = table.Format(r[c])
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Load reads a table back and decodes cells with schema types.
func (s *CSVStore) Load(ctx context.Context, name string) (*table.Table, error) {
	path := s.Path(name)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, TableNotFoundError(name, s.dir)
	}
	if err != nil {
		return nil, LoadError(name, path, err)
	}
	defer f.Close()

	res, err := readCSV(ctx, f, name)
	if err != nil {
		return nil, LoadError(name, path, err)
	}
	return res, nil
}

func readCSV(ctx context.Context, r io.Reader, name string) (*table.Table, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, err
	}
	res := table.New(name, header...)

	for i := 0; ; i++ {
		if i%1_000 == 0 {
			if err = ctx.Err(); err != nil {
				return nil, err
			}
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make(table.Row, len(header))
		for j, c := range header {
			row[c] = decode(name, c, rec[j])
		}
		res.Append(row)
	}
	return res, nil
}

// Remove deletes the file of a table.
func (s *CSVStore) Remove(_ context.Context, name string) error {
	path := s.Path(name)
	err := os.Remove(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return RemoveError(name, path, err)
	}
	return nil
}
