// Package schema provides database schema models for taxdb.
// Postgres schema is created through GORM AutoMigrate; the SQLite
// backend uses the DDL statements from SQLiteDDL.
package schema

import (
	"time"

	"gorm.io/gorm"
)

// Taxon is one node of the NCBI taxonomy tree merged with its
// scientific name.
type Taxon struct {
	// TaxID is the NCBI taxonomic identifier.
	TaxID string `gorm:"column:tax_id;type:varchar(16);primaryKey"`

	// ParentTaxID points to the parent node of the taxonomy tree.
	ParentTaxID string `gorm:"column:parent_tax_id;type:varchar(16);index"`

	// Rank is the lineage level (species, genus, family...).
	Rank string `gorm:"column:rank;type:varchar(50)"`

	// Name is the scientific name from names.dmp.
	Name string `gorm:"column:name;type:varchar(255);index"`

	// Canonical is the gnparser canonical simple form of Name.
	Canonical string `gorm:"column:canonical;type:varchar(255)"`

	// NameID is a deterministic UUID v5 of Name, compatible with
	// other GlobalNames services.
	NameID string `gorm:"column:name_id;type:varchar(36)"`
}

// TableName sets the table name, "taxons" would be wrong.
func (Taxon) TableName() string { return "taxa" }

// Accession maps a sequence accession to its taxon.
type Accession struct {
	ID        uint   `gorm:"column:id;primaryKey;autoIncrement"`
	Accession string `gorm:"column:accession;type:varchar(40);uniqueIndex"`
	TaxID     string `gorm:"column:tax_id;type:varchar(16);index"`
}

// TableName sets the table name.
func (Accession) TableName() string { return "accessions" }

// ImportRun records metadata about one finished import phase.
type ImportRun struct {
	ID          string    `gorm:"column:id;type:varchar(36);primaryKey"`
	Kind        string    `gorm:"column:kind;type:varchar(20)"`
	InputFile   string    `gorm:"column:input_file;type:varchar(255)"`
	RecordCount int64     `gorm:"column:record_count"`
	StartedAt   time.Time `gorm:"column:started_at"`
	DurationSec float64   `gorm:"column:duration_sec"`
}

// TableName sets the table name.
func (ImportRun) TableName() string { return "import_runs" }

// Migrate runs GORM AutoMigrate for all taxdb models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Taxon{},
		&Accession{},
		&ImportRun{},
	)
}

// Tables lists all table names owned by taxdb, used by
// DropAllTables.
func Tables() []string {
	return []string{"taxa", "accessions", "import_runs"}
}

// SQLiteDDL returns the statements that create the taxdb schema on
// SQLite. Kept equivalent to the GORM models above.
func SQLiteDDL() []string {
	return []string{
		`CREATE TABLE IF NOT EXISTS taxa (
			tax_id VARCHAR(16) PRIMARY KEY,
			parent_tax_id VARCHAR(16),
			rank VARCHAR(50),
			name VARCHAR(255),
			canonical VARCHAR(255),
			name_id VARCHAR(36)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_taxa_parent_tax_id
			ON taxa (parent_tax_id)`,
		`CREATE INDEX IF NOT EXISTS idx_taxa_name ON taxa (name)`,
		`CREATE TABLE IF NOT EXISTS accessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			accession VARCHAR(40) UNIQUE,
			tax_id VARCHAR(16)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_accessions_tax_id
			ON accessions (tax_id)`,
		`CREATE TABLE IF NOT EXISTS import_runs (
			id VARCHAR(36) PRIMARY KEY,
			kind VARCHAR(20),
			input_file VARCHAR(255),
			record_count BIGINT,
			started_at TIMESTAMP,
			duration_sec REAL
		)`,
	}
}
