package iopipeline

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/gnames/gn"
	"github.com/olydash/olydash/pkg/errcode"
)

// InputMissingError is recorded for a derived table that did not run
// because one of its inputs failed.
func InputMissingError(table, input string) error {
	msg := "Table <em>%s</em> is skipped, input <em>%s</em> is unavailable"
	vars := []any{table, input}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.EnrichInputMissingError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %s needs missing input %s", fn, table, input),
	}
}

// SchemaError wraps an enrichment failure caused by missing columns.
func SchemaError(table string, err error) error {
	msg := "Cannot build <em>%s</em>: %s"
	vars := []any{table, err.Error()}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.EnrichSchemaError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot build %s: %w", fn, table, err),
	}
}

// PartialFailureError is returned when some derived tables failed.
func PartialFailureError(failed []string, total int) error {
	msg := `Built <em>%d</em> of %d tables

<em>Failed:</em> %s

See the log file for details.`

	names := strings.Join(failed, ", ")
	vars := []any{total - len(failed), total, names}
	return &gn.Error{
		Code: errcode.PipelinePartialFailureError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%d of %d tables failed: %s", len(failed), total, names),
	}
}

// AllTablesFailedError is returned when no derived table was built.
func AllTablesFailedError(count int) error {
	msg := `Failed number of tables: <em>%d</em>`

	vars := []any{count}

	plural := "s"
	if count == 1 {
		plural = ""
	}

	return &gn.Error{
		Code: errcode.PipelineAllTablesFailedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%d table%s failed to build", count, plural),
	}
}
