package iodb

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/gnames/taxdb/pkg/config"
	"github.com/gnames/taxdb/pkg/schema"
	"github.com/gnames/taxdb/pkg/taxdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func connectSQLite(t *testing.T) *sqliteOperator {
	t.Helper()
	ctx := context.Background()
	cfg := &config.DatabaseConfig{
		Dialect: "sqlite",
		File:    filepath.Join(t.TempDir(), "taxdb-test.sqlite"),
	}

	op := NewOperator(cfg)
	require.NoError(t, op.Connect(ctx, cfg))
	t.Cleanup(func() { _ = op.Close() })

	for _, ddl := range schema.SQLiteDDL() {
		require.NoError(t, op.Exec(ctx, ddl))
	}
	return op.(*sqliteOperator)
}

func TestNewOperator_DialectSelection(t *testing.T) {
	op := NewOperator(&config.DatabaseConfig{Dialect: "sqlite"})
	_, ok := op.(*sqliteOperator)
	assert.True(t, ok)

	op = NewOperator(&config.DatabaseConfig{Dialect: "postgres"})
	_, ok = op.(*pgxOperator)
	assert.True(t, ok)
}

func TestSQLite_HasTables(t *testing.T) {
	ctx := context.Background()
	op := connectSQLite(t)

	has, err := op.HasTables(ctx)
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, op.DropAllTables(ctx))
	has, err = op.HasTables(ctx)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestSQLite_TaxaRoundTrip(t *testing.T) {
	ctx := context.Background()
	op := connectSQLite(t)

	taxa := []taxdb.TaxonNode{
		{
			TaxID: "9606", ParentTaxID: "9605", Rank: "species",
			Name: "Homo sapiens", Canonical: "Homo sapiens",
		},
		{
			TaxID: "9605", ParentTaxID: "9604", Rank: "genus",
			Name: "Homo", Canonical: "Homo",
		},
	}

	n, err := op.InsertTaxa(ctx, taxa)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	known, err := op.KnownTaxIDs(ctx)
	require.NoError(t, err)
	assert.Contains(t, known, "9606")
	assert.Contains(t, known, "9605")
	assert.NotContains(t, known, "9604")

	// Re-inserting the same taxa is a no-op.
	n, err = op.InsertTaxa(ctx, taxa)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSQLite_AccessionsRoundTrip(t *testing.T) {
	ctx := context.Background()
	op := connectSQLite(t)

	recs := []taxdb.AccessionRecord{
		{Accession: "A1", TaxID: "9606"},
		{Accession: "A2", TaxID: "9605"},
	}

	n, err := op.InsertAccessions(ctx, recs)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	exists, err := op.AccessionExists(ctx, "A1")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = op.AccessionExists(ctx, "Z9")
	require.NoError(t, err)
	assert.False(t, exists)

	// A batch that repeats a persisted accession only inserts the
	// new rows.
	n, err = op.InsertAccessions(ctx, []taxdb.AccessionRecord{
		{Accession: "A1", TaxID: "9606"},
		{Accession: "A3", TaxID: "9606"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestSQLite_LargeBatchChunking(t *testing.T) {
	ctx := context.Background()
	op := connectSQLite(t)

	// More rows than one multi-row INSERT holds.
	recs := make([]taxdb.AccessionRecord, 0, sqliteInsertRows*2+7)
	for i := range cap(recs) {
		recs = append(recs, taxdb.AccessionRecord{
			Accession: "ACC" + string(rune('A'+i%26)) +
				string(rune('A'+(i/26)%26)) + string(rune('A'+i/676)),
			TaxID: "9606",
		})
	}

	_, err := op.InsertAccessions(ctx, recs)
	require.NoError(t, err)
}

func TestSQLite_ImportRun(t *testing.T) {
	ctx := context.Background()
	op := connectSQLite(t)

	run := taxdb.ImportRun{
		ID:          "8b5a64a8-0000-4000-8000-6a4f7f1d0001",
		Kind:        "taxa",
		InputFile:   "nodes.dmp",
		RecordCount: 42,
		StartedAt:   time.Now(),
		DurationSec: 1.5,
	}
	require.NoError(t, op.InsertImportRun(ctx, run))
}

func TestSQLite_NotConnected(t *testing.T) {
	ctx := context.Background()
	op := NewSQLiteOperator()

	_, err := op.KnownTaxIDs(ctx)
	require.Error(t, err)

	_, err = op.InsertTaxa(ctx, nil)
	require.Error(t, err)
}
