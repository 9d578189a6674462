package iofile

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/taxdb/pkg/errcode"
)

// ConfigurationError is returned when no input file was provided at
// all, neither through configuration nor as an argument.
func ConfigurationError() error {
	msg := "No input file was provided"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PathNotSetError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: input file path is not set", fn),
	}
}

// NotFoundError is returned when the path does not exist.
func NotFoundError(path string) error {
	msg := "File <em>%s</em> does not exist"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PathNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %s does not exist", fn, path),
	}
}

// InvalidInputError is returned when the path exists but is not a
// regular file.
func InvalidInputError(path string) error {
	msg := "<em>%s</em> is not a file"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PathNotRegularError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %s is not a regular file", fn, path),
	}
}

// StatError is returned when the path cannot be inspected for
// reasons other than absence, usually permissions.
func StatError(path string, err error) error {
	msg := "Cannot check <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot stat %s: %w", fn, path, err),
	}
}

// ChecksumSidecarError is returned when the md5 sidecar file cannot
// be read or parsed.
func ChecksumSidecarError(path string, err error) error {
	msg := "Cannot read md5 sidecar for <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ChecksumSidecarError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot read md5 sidecar of %s: %w",
			fn, path, err),
	}
}

// ChecksumMismatchError is returned when the computed md5 of a file
// differs from its sidecar value.
func ChecksumMismatchError(path, want, got string) error {
	msg := `Checksum mismatch for <em>%s</em>

<em>Expected:</em> %s
<em>Computed:</em> %s

The download is probably corrupt or truncated, fetch the file again.`
	vars := []any{path, want, got}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ChecksumMismatchError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: md5 mismatch for %s: want %s, got %s",
			fn, path, want, got),
	}
}
