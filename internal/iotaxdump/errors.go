package iotaxdump

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/taxdb/pkg/errcode"
)

// ReadError is returned when a taxdump file cannot be opened or read.
func ReadError(path string, err error) error {
	msg := "Cannot read <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ParseReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read %s: %w", fn, path, err),
	}
}

// MalformedRecordError is returned when a taxdump row has fewer
// pipe-delimited columns than the format requires. The whole parse
// fails, no partial result is returned.
func MalformedRecordError(path string, line int, content string) error {
	msg := `Malformed record in <em>%s</em>

<em>Line:</em> %d
<em>Content:</em> %q`
	vars := []any{path, line, content}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ParseMalformedRecordError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: malformed record at %s:%d",
			fn, path, line),
	}
}
