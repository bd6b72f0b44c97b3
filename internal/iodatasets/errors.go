package iodatasets

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/olydash/olydash/pkg/errcode"
)

// ReadError is returned when datasets.yaml exists but cannot be read.
func ReadError(path string, err error) error {
	msg := "Cannot read datasets manifest <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.DatasetsReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read manifest: %w", fn, err),
	}
}

// ParseError is returned for invalid datasets.yaml content.
func ParseError(path string, err error) error {
	msg := `Cannot load datasets manifest

<em>Manifest file:</em> %s

<em>Possible causes:</em>
  - Invalid YAML format
  - File names pointing outside of the input directory

<em>How to fix:</em>
  1. Validate YAML syntax
  2. Remove the file to restore defaults: <em>rm %s</em>`

	vars := []any{path, path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.DatasetsParseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: invalid manifest: %w", fn, err),
	}
}
