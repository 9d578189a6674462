package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestTableNames verifies explicit table names, GORM pluralization
// would get "taxa" wrong.
func TestTableNames(t *testing.T) {
	assert.Equal(t, "taxa", Taxon{}.TableName())
	assert.Equal(t, "accessions", Accession{}.TableName())
	assert.Equal(t, "import_runs", ImportRun{}.TableName())
}

// TestTables verifies the drop list covers every model table.
func TestTables(t *testing.T) {
	tables := Tables()
	assert.ElementsMatch(t,
		[]string{"taxa", "accessions", "import_runs"},
		tables,
	)
}

// TestSQLiteDDL verifies the SQLite statements stay in sync with the
// model tables.
func TestSQLiteDDL(t *testing.T) {
	ddl := strings.Join(SQLiteDDL(), "\n")

	for _, table := range Tables() {
		assert.Contains(t, ddl,
			"CREATE TABLE IF NOT EXISTS "+table,
			"DDL should create table %s", table)
	}

	// Idempotency guard on every statement.
	for _, stmt := range SQLiteDDL() {
		assert.Contains(t, stmt, "IF NOT EXISTS")
	}

	assert.Contains(t, ddl, "accession VARCHAR(40) UNIQUE",
		"accessions must be unique for INSERT OR IGNORE semantics")
}
