package ioimages

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/olydash/olydash/pkg/errcode"
)

// RequestError is recorded when the portrait API cannot be reached.
func RequestError(title string, err error) error {
	msg := "Cannot fetch portrait of <em>%s</em>"
	vars := []any{title}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.ImagesRequestError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: request for %s failed: %w", fn, title, err),
	}
}

// DecodeError is recorded for an unexpected API response.
func DecodeError(title string, err error) error {
	msg := "Cannot decode portrait response for <em>%s</em>"
	vars := []any{title}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc).Name()
	return &gn.Error{
		Code: errcode.ImagesDecodeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: bad response for %s: %w", fn, title, err),
	}
}
