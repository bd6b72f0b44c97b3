package iometrics

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/olydash/olydash/pkg/errcode"
)

// PushError is returned when the Pushgateway rejects metrics.
func PushError(url string, err error) error {
	msg := "Cannot push metrics to <em>%s</em>"
	vars := []any{url}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.MetricsPushError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: push failed: %w", fn, err),
	}
}
