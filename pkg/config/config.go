// Package config provides configuration management for taxdb.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via
// gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml >
// defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Database: dialect, host, port, user, password, database, ssl_mode,
//     file, batch_size
//   - Import: chunk_size
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Import.NodesFile, NamesFile, AccessionFiles, FastMode, SkipVerify,
//     WithCanonical (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use TAXDB_ prefix with underscores for nesting:
//
//	TAXDB_DATABASE_HOST=localhost
//	TAXDB_DATABASE_PORT=5432
//	TAXDB_LOG_LEVEL=info
//	TAXDB_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete taxdb configuration.
type Config struct {
	// Database contains destination store connection settings.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	// Import contains settings for the taxa and accessions commands.
	Import ImportConfig `mapstructure:"import" yaml:"import"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers used for
	// scientific name parsing. Defaults to the number of available
	// threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories
	// reside. It must be set by CLI during init, there is no default
	// value for it.
	HomeDir string
}

// DatabaseConfig contains destination store connection parameters.
type DatabaseConfig struct {
	// Dialect selects the destination store. Valid values:
	// "postgres", "sqlite".
	Dialect string `mapstructure:"dialect" yaml:"dialect"`

	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// File is the SQLite database file path. Only used when Dialect
	// is "sqlite".
	File string `mapstructure:"file" yaml:"file"`

	// BatchSize defines the number of taxa records inserted per bulk
	// operation. Larger batches are faster but use more memory.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// ImportConfig contains settings for the taxa and accessions commands.
type ImportConfig struct {
	// NodesFile is the path to nodes.dmp from the NCBI taxdump
	// archive. Runtime-only, set via CLI flag.
	NodesFile string `mapstructure:"nodes_file" yaml:"nodes_file"`

	// NamesFile is the path to names.dmp from the NCBI taxdump
	// archive. Runtime-only, set via CLI flag.
	NamesFile string `mapstructure:"names_file" yaml:"names_file"`

	// AccessionFiles are paths to accession2taxid files, gzipped or
	// plain. Runtime-only, set via CLI arguments.
	AccessionFiles []string `mapstructure:"accession_files" yaml:"accession_files"`

	// ChunkSize is the number of accession records gathered before a
	// batch is handed to the store for insertion.
	ChunkSize int `mapstructure:"chunk_size" yaml:"chunk_size"`

	// FastMode disables per-row duplicate tracking for accessions.
	// Faster, but a file containing the same accession twice inserts
	// it twice into the batch stream.
	FastMode bool `mapstructure:"fast_mode" yaml:"fast_mode"`

	// SkipVerify disables md5 sidecar verification of accession
	// files.
	SkipVerify bool `mapstructure:"skip_verify" yaml:"skip_verify"`

	// WithCanonical enables gnparser canonical form extraction for
	// scientific names. Uses pointer to distinguish between unset
	// (nil, treated as true) and explicit false.
	WithCanonical *bool `mapstructure:"with_canonical" yaml:"with_canonical"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Database: DatabaseConfig{
			Dialect:   "postgres",
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "taxdb",
			SSLMode:   "disable",
			File:      "taxdb.sqlite",
			BatchSize: 10_000,
		},
		Import: ImportConfig{
			ChunkSize: 500,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}

// CanonicalEnabled reports whether canonical name extraction is on.
// Unset means enabled.
func (c *Config) CanonicalEnabled() bool {
	return c.Import.WithCanonical == nil || *c.Import.WithCanonical
}
