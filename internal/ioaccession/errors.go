package ioaccession

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/taxdb/pkg/errcode"
)

// ConfigurationError is returned when no accession file was given,
// neither as an argument nor through configuration.
func ConfigurationError() error {
	msg := "No accession2taxid file was provided"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PathNotSetError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: accession file path is not set", fn),
	}
}

// OpenError is returned when the accession file cannot be opened or
// its gzip envelope is broken.
func OpenError(path string, err error) error {
	msg := "Cannot open <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ParseReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot open %s: %w", fn, path, err),
	}
}

// ReadError is returned when reading the accession stream fails
// mid-file.
func ReadError(path string, err error) error {
	msg := "Reading <em>%s</em> failed"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ParseReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: read of %s failed: %w", fn, path, err),
	}
}

// MalformedRecordError is returned when a row has fewer columns than
// the accession2taxid format requires. The whole stream fails; no
// partial batch after the bad line is emitted.
func MalformedRecordError(path string, line int, content string) error {
	msg := `Malformed record in <em>%s</em>

<em>Line:</em> %d
<em>Content:</em> %q

Expected at least 3 tab-delimited columns
(accession, accession.version, taxid).`
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
