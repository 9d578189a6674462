package db

import (
	"context"

	"github.com/gnames/taxdb/pkg/config"
	"github.com/gnames/taxdb/pkg/taxdb"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the narrow gateway the dump parsers depend on. It answers
// membership questions against the destination database and nothing
// else, so parsers can be tested with an in-memory double.
type Store interface {
	// KnownTaxIDs returns the set of taxonomic ids already present
	// in the taxa table.
	KnownTaxIDs(ctx context.Context) (map[string]struct{}, error)

	// AccessionExists reports whether an accession record is already
	// persisted.
	AccessionExists(ctx context.Context, accession string) (bool, error)
}

// Operator defines the interface for destination store operations.
// It provides connection lifecycle management, the Store gateway used
// by parsers, and the bulk-insert operations used by the populator.
//
// Design rationale:
// - Keeps interface minimal to avoid bloat with mixed semantics
// - Pool() enables the Postgres schema manager to run GORM AutoMigrate
//   and lets components use CopyFrom for bulk inserts; it returns nil
//   for the SQLite backend, which manages schema through Exec instead
type Operator interface {
	Store

	// Connect establishes a connection to the database.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection.
	Close() error

	// Pool returns the underlying pgxpool.Pool, or nil when the
	// backend is not PostgreSQL.
	Pool() *pgxpool.Pool

	// Exec runs a single SQL statement. Used for DDL.
	Exec(ctx context.Context, query string) error

	// HasTables checks if the database has any tables.
	// Used to determine if schema creation should prompt for
	// confirmation.
	HasTables(ctx context.Context) (bool, error)

	// DropAllTables drops all tables owned by taxdb.
	// Used during schema initialization when overwriting existing
	// data.
	DropAllTables(ctx context.Context) error

	// InsertTaxa bulk-inserts merged taxonomy records and returns
	// the number of rows written.
	InsertTaxa(ctx context.Context, taxa []taxdb.TaxonNode) (int64, error)

	// InsertAccessions bulk-inserts one batch of accession records
	// and returns the number of rows written. Rows whose accession
	// already exists are ignored.
	InsertAccessions(
		ctx context.Context, recs []taxdb.AccessionRecord,
	) (int64, error)

	// InsertImportRun records metadata about a finished import
	// phase.
	InsertImportRun(ctx context.Context, run taxdb.ImportRun) error
}
