// Package taxdb provides domain entities and lifecycle contracts for
// building an NCBI taxonomy database from taxdump and accession2taxid
// dump files.
package taxdb

import (
	"context"
	"time"
)

// TaxonNode is one merged record from nodes.dmp and names.dmp.
// Identity is TaxID. Parent and rank come from the nodes file, the
// name comes from the matching "scientific name" row of the names
// file.
type TaxonNode struct {
	// TaxID is the NCBI taxonomic identifier.
	TaxID string

	// ParentTaxID is the taxonomic identifier of the parent node.
	ParentTaxID string

	// Rank is the lineage level of the node (species, genus etc).
	Rank string

	// Name is the scientific name of the taxon.
	Name string

	// Canonical is the canonical simple form of Name produced by
	// gnparser. Empty when the name could not be parsed.
	Canonical string

	// NameID is a deterministic UUID v5 generated from Name.
	NameID string
}

// AccessionRecord links a sequence accession to its taxonomic
// identifier. Identity is Accession.
type AccessionRecord struct {
	Accession string
	TaxID     string
}

// ImportRun records metadata about one completed import phase.
type ImportRun struct {
	// ID is a random UUID assigned when the phase finishes.
	ID string

	// Kind is "taxa" or "accessions".
	Kind string

	// InputFile is the dump file the records came from.
	InputFile string

	// RecordCount is the number of records inserted by the phase.
	RecordCount int64

	// StartedAt is when the phase began.
	StartedAt time.Time

	// DurationSec is the wall-clock duration of the phase.
	DurationSec float64
}

// Populator defines the interface for importing NCBI dump files into
// the database. Both phases are idempotent against an already
// populated store: records whose identifiers are present are filtered
// out before insertion.
type Populator interface {
	// PopulateTaxa parses nodes.dmp and names.dmp and bulk-inserts
	// the merged taxa.
	PopulateTaxa(ctx context.Context) error

	// PopulateAccessions streams accession2taxid files and
	// bulk-inserts accession records in batches.
	PopulateAccessions(ctx context.Context) error
}

// SchemaManager defines the interface for database schema management.
// Schema management is idempotent - safe to run multiple times.
type SchemaManager interface {
	// Create creates the database schema.
	Create(ctx context.Context) error
}
