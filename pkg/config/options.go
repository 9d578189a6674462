package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatabaseDialect selects the destination store.
// Valid values: "postgres", "sqlite".
func OptDatabaseDialect(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.Dialect", s) {
			c.Database.Dialect = s
		}
	}
}

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptDatabaseFile sets the SQLite database file path.
// Only relevant when the dialect is "sqlite".
func OptDatabaseFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database File", s) {
			c.Database.File = s
		}
	}
}

// OptDatabaseBatchSize sets the number of taxa records inserted per
// bulk operation.
func OptDatabaseBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Database.BatchSize = i
		}
	}
}

// OptImportNodesFile sets the path to nodes.dmp.
// Runtime-only field - not in ToOptions().
func OptImportNodesFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Nodes File", s) {
			c.Import.NodesFile = s
		}
	}
}

// OptImportNamesFile sets the path to names.dmp.
// Runtime-only field - not in ToOptions().
func OptImportNamesFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Names File", s) {
			c.Import.NamesFile = s
		}
	}
}

// OptImportAccessionFiles sets the accession2taxid file paths.
// Runtime-only field - not in ToOptions().
func OptImportAccessionFiles(ss []string) Option {
	return func(c *Config) {
		if len(ss) > 0 {
			c.Import.AccessionFiles = ss
		}
	}
}

// OptImportChunkSize sets the accession batch size.
func OptImportChunkSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Chunk Size", i) {
			c.Import.ChunkSize = i
		}
	}
}

// OptImportFastMode disables per-row duplicate tracking for
// accessions. Runtime-only field - not in ToOptions().
func OptImportFastMode(b bool) Option {
	return func(c *Config) {
		c.Import.FastMode = b
	}
}

// OptImportSkipVerify disables md5 sidecar verification of accession
// files. Runtime-only field - not in ToOptions().
func OptImportSkipVerify(b bool) Option {
	return func(c *Config) {
		c.Import.SkipVerify = b
	}
}

// OptImportWithCanonical sets whether scientific names are run
// through gnparser for canonical form extraction.
// Uses pointer to distinguish between unset (nil) and false.
// Runtime-only field - not in ToOptions().
func OptImportWithCanonical(b *bool) Option {
	return func(c *Config) {
		if b != nil {
			c.Import.WithCanonical = b
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for name
// parsing. Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log
// locations. Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
