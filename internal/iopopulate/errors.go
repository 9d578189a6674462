package iopopulate

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/taxdb/pkg/errcode"
)

// TaxaError wraps a failure of the taxa import phase.
func TaxaError(err error) error {
	msg := "Taxa import failed"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PopulateTaxaError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: taxa import failed: %w", fn, err),
	}
}

// AccessionsError wraps a failure while processing one accession
// file.
func AccessionsError(file string, err error) error {
	msg := "Import of <em>%s</em> failed"
	vars := []any{file}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PopulateAccessionsError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: accession import of %s failed: %w",
			fn, file, err),
	}
}

// AllFilesFailedError is returned when every accession file failed to
// import.
func AllFilesFailedError(count int) error {
	msg := "All %d accession files failed to import"
	vars := []any{count}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PopulateAccessionsError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: all %d files failed", fn, count),
	}
}

// MetadataError wraps a failure to record import run metadata.
func MetadataError(err error) error {
	msg := "Cannot record import metadata"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.PopulateMetadataError,
		Msg:  msg,
		Err: fmt.Errorf("from %s: cannot record import run: %w",
			fn, err),
	}
}
