// Package iofile provides precondition checks for dump files before
// any parse operation touches them. This is an impure I/O package.
package iofile

import (
	"os"
)

// Validate makes sure path points at something the parsers can read.
// It fails with a typed error when the path is empty, does not exist,
// or is not a regular file. It has no side effects beyond the check
// itself.
func Validate(path string) error {
	if path == "" {
		return ConfigurationError()
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return NotFoundError(path)
	}
	if err != nil {
		return StatError(path, err)
	}
	if !info.Mode().IsRegular() {
		return InvalidInputError(path)
	}
	return nil
}
