// Package taxdb provides version metadata for the application.
package taxdb

var (
	// Version of the application, set by the build flags.
	Version = "v0.1.0"

	// Build timestamp, set by the build flags.
	Build = "n/a"
)
