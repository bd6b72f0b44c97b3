package iopublish

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/olydash/olydash/pkg/errcode"
)

// NotConnectedError is returned when Publish runs before the operator
// connected.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Publish attempted without database connection",
		Err:  errors.New("not connected to database"),
	}
}

// CreateTableError is returned when a published table cannot be
// recreated.
func CreateTableError(name string, err error) error {
	msg := `Cannot recreate table <em>%s</em> in PostgreSQL

<em>How to fix:</em>
  1. Check database user has CREATE and DROP permissions
  2. Make sure no other session locks the table`
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.PublishCreateTableError,
		Msg:  msg,
		Vars: []any{name},
		Err:  fmt.Errorf("from %s: cannot create %s: %w", fn, name, err),
	}
}

// CopyError is returned when rows cannot be copied into a table.
func CopyError(name string, err error) error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.PublishCopyError,
		Msg:  "Cannot copy rows of <em>%s</em> to PostgreSQL",
		Vars: []any{name},
		Err:  fmt.Errorf("from %s: cannot copy %s: %w", fn, name, err),
	}
}

// RunRecordError is returned when bookkeeping rows cannot be written.
func RunRecordError(runID string, err error) error {
	msg := `Cannot record publish run <em>%s</em>

<em>How to fix:</em>
  Bookkeeping tables might be missing, run publish with migration enabled`
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.PublishRunRecordError,
		Msg:  msg,
		Vars: []any{runID},
		Err:  fmt.Errorf("from %s: cannot record run %s: %w", fn, runID, err),
	}
}
