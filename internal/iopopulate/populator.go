// Package iopopulate implements the Populator interface for importing
// NCBI taxonomy dump files into the destination store. This is an
// impure I/O package that drives the dump parsers and performs bulk
// inserts.
package iopopulate

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/taxdb/internal/iotaxdump"
	"github.com/gnames/taxdb/pkg/config"
	"github.com/gnames/taxdb/pkg/db"
	"github.com/gnames/taxdb/pkg/taxdb"
	"github.com/google/uuid"
)

// populator implements the taxdb.Populator interface.
type populator struct {
	cfg      *config.Config
	operator db.Operator
}

// New creates a new Populator.
func New(cfg *config.Config, op db.Operator) taxdb.Populator {
	return &populator{cfg: cfg, operator: op}
}

// PopulateTaxa parses nodes.dmp and names.dmp and bulk-inserts the
// merged taxa.
func (p *populator) PopulateTaxa(ctx context.Context) error {
	startTime := time.Now()
	slog.Info("Starting taxa import",
		"nodes", p.cfg.Import.NodesFile,
		"names", p.cfg.Import.NamesFile,
	)

	gn.Info("(1/3) Parsing <em>%s</em> and <em>%s</em>",
		filepath.Base(p.cfg.Import.NodesFile),
		filepath.Base(p.cfg.Import.NamesFile),
	)
	parser := iotaxdump.New(p.cfg, p.operator)
	taxa, err := parser.Parse(ctx, "", "")
	if err != nil {
		return TaxaError(err)
	}
	gn.Info("<em>Parsed %s new taxa</em>",
		humanize.Comma(int64(len(taxa))))

	gn.Info("(2/3) Importing taxa")
	inserted, err := p.insertTaxa(ctx, taxa)
	if err != nil {
		return TaxaError(err)
	}

	gn.Info("(3/3) Recording import metadata")
	run := taxdb.ImportRun{
		ID:          uuid.NewString(),
		Kind:        "taxa",
		InputFile:   p.cfg.Import.NodesFile,
		RecordCount: inserted,
		StartedAt:   startTime,
		DurationSec: time.Since(startTime).Seconds(),
	}
	if err = p.operator.InsertImportRun(ctx, run); err != nil {
		return MetadataError(err)
	}

	dur := time.Since(startTime)
	slog.Info("Taxa import complete",
		"inserted", inserted,
		"duration", gnfmt.TimeString(dur.Seconds()),
	)
	gn.Info("Imported %s taxa in <em>%s</em>",
		humanize.Comma(inserted),
		gnfmt.TimeString(dur.Seconds()),
	)
	return nil
}
