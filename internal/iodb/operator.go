// Package iodb implements the destination store operators. The
// Postgres operator uses pgxpool and CopyFrom for bulk inserts, the
// SQLite operator uses database/sql with the pure-Go driver. Both
// implement contracts defined in pkg/db.
package iodb

import (
	"context"
	"fmt"
	"strings"

	"github.com/gnames/taxdb/pkg/config"
	"github.com/gnames/taxdb/pkg/db"
	"github.com/gnames/taxdb/pkg/schema"
	"github.com/gnames/taxdb/pkg/taxdb"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxOperator implements db.Operator using pgxpool for connection
// pooling.
type pgxOperator struct {
	pool *pgxpool.Pool
}

// NewPgxOperator creates a new PostgreSQL operator (without
// connecting).
func NewPgxOperator() db.Operator {
	return &pgxOperator{}
}

// Connect establishes a connection pool to PostgreSQL.
func (p *pgxOperator) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
		cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	p.pool = pool
	return nil
}

// Close releases all database connections.
func (p *pgxOperator) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

// Pool returns the underlying pgxpool.Pool for schema management and
// advanced operations.
func (p *pgxOperator) Pool() *pgxpool.Pool {
	return p.pool
}

// Exec runs a single SQL statement.
func (p *pgxOperator) Exec(ctx context.Context, query string) error {
	if p.pool == nil {
		return NotConnectedError()
	}
	if _, err := p.pool.Exec(ctx, query); err != nil {
		return ExecError(query, err)
	}
	return nil
}

// HasTables checks if the database has any tables in the public
// schema.
func (p *pgxOperator) HasTables(ctx context.Context) (bool, error) {
	if p.pool == nil {
		return false, NotConnectedError()
	}

	query := `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = 'public'
		)
	`
	var exists bool
	err := p.pool.QueryRow(ctx, query).Scan(&exists)
	if err != nil {
		return false, TableCheckError(err)
	}
	return exists, nil
}

// DropAllTables drops all taxdb tables.
func (p *pgxOperator) DropAllTables(ctx context.Context) error {
	if p.pool == nil {
		return NotConnectedError()
	}
	for _, table := range schema.Tables() {
		query := fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)
		if _, err := p.pool.Exec(ctx, query); err != nil {
			return DropTableError(table, err)
		}
	}
	return nil
}

// KnownTaxIDs returns the set of taxonomic ids already present in the
// taxa table.
func (p *pgxOperator) KnownTaxIDs(
	ctx context.Context,
) (map[string]struct{}, error) {
	if p.pool == nil {
		return nil, NotConnectedError()
	}

	rows, err := p.pool.Query(ctx, "SELECT tax_id FROM taxa")
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
func (p *pgxOperator) AccessionExists(
	ctx context.Context,
	accession string,
) (bool, error) {
	if p.pool == nil {
		return false, NotConnectedError()
	}

	query := `
		SELECT EXISTS (
			SELECT 1 FROM accessions WHERE accession = $1
		)
	`
	var exists bool
	err := p.pool.QueryRow(ctx, query, accession).Scan(&exists)
	if err != nil {
		return false, QueryError("accessions", err)
	}
	return exists, nil
}

// InsertTaxa bulk-inserts taxa using CopyFrom, significantly faster
// than parameterized INSERTs for large batches. The parser's known-id
// filter guarantees no primary key conflicts.
func (p *pgxOperator) InsertTaxa(
	ctx context.Context,
	taxa []taxdb.TaxonNode,
) (int64, error) {
	if p.pool == nil {
		return 0, NotConnectedError()
	}
	if len(taxa) == 0 {
		return 0, nil
	}

	columns := []string{
		"tax_id", "parent_tax_id", "rank", "name", "canonical",
		"name_id",
	}
	src := pgx.CopyFromSlice(len(taxa), func(i int) ([]any, error) {
		n := taxa[i]
		return []any{
			n.TaxID, n.ParentTaxID, n.Rank, n.Name, n.Canonical,
			n.NameID,
		}, nil
	})

	count, err := p.pool.CopyFrom(
		ctx, pgx.Identifier{"taxa"}, columns, src,
	)
	if err != nil {
		return 0, InsertError("taxa", err)
	}
	return count, nil
}

// InsertAccessions inserts one batch of accession records with
// ON CONFLICT DO NOTHING, so rows whose accession already exists in
// the store are ignored rather than failing the batch.
func (p *pgxOperator) InsertAccessions(
	ctx context.Context,
	recs []taxdb.AccessionRecord,
) (int64, error) {
	if p.pool == nil {
		return 0, NotConnectedError()
	}
	if len(recs) == 0 {
		return 0, nil
	}

	valueStrings := make([]string, 0, len(recs))
	valueArgs := make([]any, 0, len(recs)*2)
	argIdx := 1
	for _, rec := range recs {
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d, $%d)", argIdx, argIdx+1))
		valueArgs = append(valueArgs, rec.Accession, rec.TaxID)
		argIdx += 2
	}

	query := fmt.Sprintf(
		`INSERT INTO accessions (accession, tax_id) VALUES %s
		 ON CONFLICT (accession) DO NOTHING`,
		strings.Join(valueStrings, ", "),
	)

	result, err := p.pool.Exec(ctx, query, valueArgs...)
	if err != nil {
		return 0, InsertError("accessions", err)
	}
	return result.RowsAffected(), nil
}

// InsertImportRun records metadata about a finished import phase.
func (p *pgxOperator) InsertImportRun(
	ctx context.Context,
	run taxdb.ImportRun,
) error {
	if p.pool == nil {
		return NotConnectedError()
	}

	query := `
		INSERT INTO import_runs
			(id, kind, input_file, record_count, started_at,
			 duration_sec)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := p.pool.Exec(ctx, query,
		run.ID, run.Kind, run.InputFile, run.RecordCount,
		run.StartedAt, run.DurationSec,
	)
	if err != nil {
		return InsertError("import_runs", err)
	}
	return nil
}
