package ioload

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/gnames/gn"
	"github.com/olydash/olydash/pkg/errcode"
)

// FileNotFoundError is returned when none of the candidate files of an
// entity exists in the input directory.
func FileNotFoundError(entity, dir string, files []string) error {
	msg := `Cannot find a file for <em>%s</em>

<em>Input directory:</em> %s
<em>Tried:</em> %s

<em>How to fix:</em>
  1. Point <em>data.input_dir</em> to the directory with raw CSV files
  2. Edit datasets.yaml to list the actual file name`

	vars := []any{entity, dir, strings.Join(files, ", ")}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.LoadFileNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: no file for entity %s in %s",
			fn, entity, dir),
	}
}

// ReadError is returned when a raw file cannot be opened or parsed as CSV.
func ReadError(path string, err error) error {
	msg := "Cannot read <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.LoadReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn, path, err),
	}
}

// SchemaError is returned when required columns are missing from a file.
func SchemaError(entity, path string, missing []string) error {
	msg := `File <em>%s</em> does not fit entity <em>%s</em>

<em>Missing columns:</em> %s`

	cols := strings.Join(missing, ", ")
	vars := []any{path, entity, cols}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.LoadSchemaError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %s misses columns %s",
			fn, entity, cols),
	}
}
