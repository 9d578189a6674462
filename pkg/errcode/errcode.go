package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File precondition errors
	PathNotSetError
	PathNotFoundError
	PathNotRegularError
	ChecksumMismatchError
	ChecksumSidecarError

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBExecError
	DBQueryError
	DBInsertError
	DBTableCheckError
	DBDropTableError
	DBEmptyDatabaseError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError

	// Parsing errors
	ParseReadError
	ParseMalformedRecordError
	ParseCanonicalError

	// Populate errors
	PopulateTaxaError
	PopulateAccessionsError
	PopulateMetadataError
)
