package cmd

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/olydash/olydash/pkg/errcode"
)

// UnknownTableError is returned when query names a table olydash does
// not build.
func UnknownTableError(name string, known []string) error {
	msg := `Unknown table <em>%s</em>

<em>Available tables:</em>
  %s`
	return &gn.Error{
		Code: errcode.QueryUnknownTableError,
		Msg:  msg,
		Vars: []any{name, strings.Join(known, "\n  ")},
		Err:  fmt.Errorf("unknown table %q", name),
	}
}

// AggregationError is returned for invalid grouping flags.
func AggregationError(reason string) error {
	return &gn.Error{
		Code: errcode.QueryAggregationError,
		Msg:  "Cannot aggregate: %s",
		Vars: []any{reason},
		Err:  fmt.Errorf("invalid aggregation: %s", reason),
	}
}
