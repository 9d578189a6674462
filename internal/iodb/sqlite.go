package iodb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gnames/taxdb/pkg/config"
	"github.com/gnames/taxdb/pkg/db"
	"github.com/gnames/taxdb/pkg/schema"
	"github.com/gnames/taxdb/pkg/taxdb"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "modernc.org/sqlite" // pure Go SQLite driver (no CGo)
)

// sqliteInsertRows keeps multi-row INSERT statements under SQLite's
// bound-parameter limit.
const sqliteInsertRows = 100

// sqliteOperator implements db.Operator on a local SQLite file, the
// lightweight alternative to a PostgreSQL server.
type sqliteOperator struct {
	db   *sql.DB
	file string
}

// NewSQLiteOperator creates a new SQLite operator (without
// connecting).
func NewSQLiteOperator() db.Operator {
	return &sqliteOperator{}
}

// NewOperator picks the operator matching the configured dialect.
func NewOperator(cfg *config.DatabaseConfig) db.Operator {
	if cfg.Dialect == "sqlite" {
		return NewSQLiteOperator()
	}
	return NewPgxOperator()
}

// Connect opens (and creates, when absent) the SQLite database file.
func (s *sqliteOperator) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	sdb, err := sql.Open("sqlite", cfg.File)
	if err != nil {
		return SQLiteConnectionError(cfg.File, err)
	}
	if err = sdb.PingContext(ctx); err != nil {
		_ = sdb.Close()
		return SQLiteConnectionError(cfg.File, err)
	}
	s.db = sdb
	s.file = cfg.File
	return nil
}

// Close closes the database handle.
func (s *sqliteOperator) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Pool returns nil: there is no pgx pool behind SQLite. Schema
// management goes through Exec instead.
func (s *sqliteOperator) Pool() *pgxpool.Pool {
	return nil
}

// Exec runs a single SQL statement.
func (s *sqliteOperator) Exec(ctx context.Context, query string) error {
	if s.db == nil {
		return NotConnectedError()
	}
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return ExecError(query, err)
	}
	return nil
}

// HasTables checks if any taxdb table exists in the file.
func (s *sqliteOperator) HasTables(ctx context.Context) (bool, error) {
	if s.db == nil {
		return false, NotConnectedError()
	}

	query := `
		SELECT count(*) FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
	`
	var count int
	err := s.db.QueryRowContext(ctx, query).Scan(&count)
	if err != nil {
		return false, TableCheckError(err)
	}
	return count > 0, nil
}

// DropAllTables drops all taxdb tables.
func (s *sqliteOperator) DropAllTables(ctx context.Context) error {
	if s.db == nil {
		return NotConnectedError()
	}
	for _, table := range schema.Tables() {
		query := fmt.Sprintf("DROP TABLE IF EXISTS %s", table)
		if _, err := s.db.ExecContext(ctx, query); err != nil {
			return DropTableError(table, err)
		}
	}
	return nil
}

// KnownTaxIDs returns the set of taxonomic ids already present in
// the taxa table.
func (s *sqliteOperator) KnownTaxIDs(
	ctx context.Context,
) (map[string]struct{}, error) {
	if s.db == nil {
		return nil, NotConnectedError()
	}

	rows, err := s.db.QueryContext(ctx, "SELECT tax_id FROM taxa")
	if err != nil {
		return nil, QueryError("taxa", err)
	}
	defer rows.Close()

	res := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, QueryError("taxa", err)
		}
		res[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, QueryError("taxa", err)
	}
	return res, nil
}

// AccessionExists reports whether an accession record is already
// persisted.
func (s *sqliteOperator) AccessionExists(
	ctx context.Context,
	accession string,
) (bool, error) {
	if s.db == nil {
		return false, NotConnectedError()
	}

	query := `
		SELECT EXISTS (
			SELECT 1 FROM accessions WHERE accession = ?
		)
	`
	var exists bool
	err := s.db.QueryRowContext(ctx, query, accession).Scan(&exists)
	if err != nil {
		return false, QueryError("accessions", err)
	}
	return exists, nil
}

// InsertTaxa bulk-inserts taxa inside one transaction, multi-row
// INSERTs chunked to stay under the parameter limit.
func (s *sqliteOperator) InsertTaxa(
	ctx context.Context,
	taxa []taxdb.TaxonNode,
) (int64, error) {
	if s.db == nil {
		return 0, NotConnectedError()
	}
	if len(taxa) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, InsertError("taxa", err)
	}
	defer tx.Rollback()

	var total int64
	for start := 0; start < len(taxa); start += sqliteInsertRows {
		end := min(start+sqliteInsertRows, len(taxa))
		chunk := taxa[start:end]

		valueStrings := make([]string, 0, len(chunk))
		valueArgs := make([]any, 0, len(chunk)*6)
		for _, n := range chunk {
			valueStrings = append(valueStrings, "(?, ?, ?, ?, ?, ?)")
			valueArgs = append(valueArgs,
				n.TaxID, n.ParentTaxID, n.Rank, n.Name, n.Canonical,
				n.NameID,
			)
		}

		query := fmt.Sprintf(
			`INSERT OR IGNORE INTO taxa
				(tax_id, parent_tax_id, rank, name, canonical, name_id)
			 VALUES %s`,
			strings.Join(valueStrings, ", "),
		)
		result, err := tx.ExecContext(ctx, query, valueArgs...)
		if err != nil {
			return 0, InsertError("taxa", err)
		}
		n, _ := result.RowsAffected()
		total += n
	}

	if err = tx.Commit(); err != nil {
		return 0, InsertError("taxa", err)
	}
	return total, nil
}

// InsertAccessions inserts one batch of accession records with
// INSERT OR IGNORE, matching the Postgres ON CONFLICT semantics.
func (s *sqliteOperator) InsertAccessions(
	ctx context.Context,
	recs []taxdb.AccessionRecord,
) (int64, error) {
	if s.db == nil {
		return 0, NotConnectedError()
	}
	if len(recs) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, InsertError("accessions", err)
	}
	defer tx.Rollback()

	var total int64
	for start := 0; start < len(recs); start += sqliteInsertRows {
		end := min(start+sqliteInsertRows, len(recs))
		chunk := recs[start:end]

		valueStrings := make([]string, 0, len(chunk))
		valueArgs := make([]any, 0, len(chunk)*2)
		for _, rec := range chunk {
			valueStrings = append(valueStrings, "(?, ?)")
			valueArgs = append(valueArgs, rec.Accession, rec.TaxID)
		}

		query := fmt.Sprintf(
			`INSERT OR IGNORE INTO accessions (accession, tax_id)
			 VALUES %s`,
			strings.Join(valueStrings, ", "),
		)
		result, err := tx.ExecContext(ctx, query, valueArgs...)
		if err != nil {
			return 0, InsertError("accessions", err)
		}
		n, _ := result.RowsAffected()
		total += n
	}

	if err = tx.Commit(); err != nil {
		return 0, InsertError("accessions", err)
	}
	return total, nil
}

// InsertImportRun records metadata about a finished import phase.
func (s *sqliteOperator) InsertImportRun(
	ctx context.Context,
	run taxdb.ImportRun,
) error {
	if s.db == nil {
		return NotConnectedError()
	}

	query := `
		INSERT INTO import_runs
			(id, kind, input_file, record_count, started_at,
			 duration_sec)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := s.db.ExecContext(ctx, query,
		run.ID, run.Kind, run.InputFile, run.RecordCount,
		run.StartedAt, run.DurationSec,
	)
	if err != nil {
		return InsertError("import_runs", err)
	}
	return nil
}
