package iostore

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/olydash/olydash/pkg/errcode"
)

// SaveError is returned when a derived table cannot be persisted.
func SaveError(name, where string, err error) error {
	msg := "Cannot save table <em>%s</em> to %s"
	vars := []any{name, where}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.StoreSaveError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot save %s: %w", fn, name, err),
	}
}

// LoadError is returned when a stored table cannot be decoded.
func LoadError(name, where string, err error) error {
	msg := "Cannot load table <em>%s</em> from %s"
	vars := []any{name, where}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.StoreLoadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot load %s: %w", fn, name, err),
	}
}

// RemoveError is returned when a stale table cannot be deleted.
func RemoveError(name, where string, err error) error {
	msg := "Cannot remove table <em>%s</em> from %s"
	vars := []any{name, where}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.StoreRemoveError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot remove %s: %w", fn, name, err),
	}
}

// TableNotFoundError is returned when a table was never stored.
func TableNotFoundError(name, where string) error {
	msg := `Table <em>%s</em> is not found in %s

<em>How to fix:</em>
  Run <em>olydash enrich</em> to build derived tables`

	vars := []any{name, where}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.StoreTableNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: table %s not found in %s", fn, name, where),
	}
}
