// Package ioaccession implements the streaming parser for NCBI
// accession2taxid mapping files. This is an impure I/O package: it
// reads multi-gigabyte (usually gzipped) dumps line by line and emits
// fixed-size batches of accession records without ever holding the
// whole file in memory.
package ioaccession

import (
	"bufio"
	"context"
	"errors"
	"strings"

	"github.com/gnames/taxdb/internal/iofile"
	"github.com/gnames/taxdb/pkg/config"
	"github.com/gnames/taxdb/pkg/db"
	"github.com/gnames/taxdb/pkg/taxdb"
)

// ErrStop can be returned from a BatchFunc to abandon the stream
// early. Stream then returns nil after closing the input.
var ErrStop = errors.New("stop accession stream")

// BatchFunc receives one batch of accession records. Every batch has
// exactly the configured chunk size except possibly the last one.
// Returning an error aborts the stream; returning ErrStop abandons it
// without error.
type BatchFunc func(batch []taxdb.AccessionRecord) error

// Parser streams accession2taxid files. Zero value is not usable,
// create it with New.
type Parser struct {
	store     db.Store
	accPath   string
	chunkSize int
	fast      bool
}

// New creates an accession2taxid parser. The store provides the
// known-taxid filter and the accession existence lookup; defaults for
// path, chunk size and fast mode come from cfg.
func New(cfg *config.Config, store db.Store) *Parser {
	chunk := cfg.Import.ChunkSize
	if chunk <= 0 {
		chunk = 500
	}
	var path string
	if len(cfg.Import.AccessionFiles) > 0 {
		path = cfg.Import.AccessionFiles[0]
	}
	return &Parser{
		store:     store,
		accPath:   path,
		chunkSize: chunk,
		fast:      cfg.Import.FastMode,
	}
}

// SetAccessionFile sets the default accession file for subsequent
// Stream calls. The path is validated before the mutation happens.
func (p *Parser) SetAccessionFile(path string) error {
	if path == "" {
		return iofile.ConfigurationError()
	}
	if err := iofile.Validate(path); err != nil {
		return err
	}
	p.accPath = path
	return nil
}

// Stream parses an accession2taxid file and hands batches of records
// to emit. An empty path or non-positive chunk falls back to the
// parser defaults. The first line of the input is a header and is
// always discarded, whatever it contains.
//
// Rows whose taxonomic id is unknown to the store are skipped: there
// is no taxon to link them to. In the default mode each accession is
// also checked against the store and against the accessions already
// seen during this pass; a same-pass duplicate is skipped, but a row
// that merely exists in the store is still emitted and left for the
// store's insert to ignore. Fast mode drops all per-row bookkeeping
// and emits every surviving row.
//
// A row with fewer than three tab-delimited columns aborts the stream
// with a malformed-record error carrying the line number. The input
// handle is closed on every exit path.
func (p *Parser) Stream(
	ctx context.Context,
	path string,
	chunk int,
	emit BatchFunc,
) error {
	if path == "" {
		path = p.accPath
	}
	if path == "" {
		return ConfigurationError()
	}
	if chunk <= 0 {
		chunk = p.chunkSize
	}
	if err := iofile.Validate(path); err != nil {
		return err
	}

	known, err := p.store.KnownTaxIDs(ctx)
	if err != nil {
		return err
	}

	var seen map[string]struct{}
	if !p.fast {
		seen = make(map[string]struct{})
	}

	r, err := openReader(path)
	if err != nil {
		return OpenError(path, err)
	}
	defer r.Close()

	sc := bufio.NewScanner(r)
	// Accession rows are short, but give the scanner room anyway.
	buf := make([]byte, 64*1024)
	sc.Buffer(buf, 1024*1024)

	batch := make([]taxdb.AccessionRecord, 0, chunk)
	lineNum := 0
	header := true

	for sc.Scan() {
		lineNum++
		if header {
			header = false
			continue
		}
		line := sc.Text()
		if line == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			return MalformedRecordError(path, lineNum, line)
		}
		acc, taxID := fields[0], fields[2]

		if _, ok := known[taxID]; !ok {
			continue
		}

		if !p.fast {
			if _, ok := seen[acc]; ok {
				continue
			}
			exists, err := p.store.AccessionExists(ctx, acc)
			if err != nil {
				return err
			}
			// The existence check feeds only the seen-set; an
			// already-persisted accession is still emitted, the
			// store's insert ignores it.
			if !exists {
				seen[acc] = struct{}{}
			}
		}

		batch = append(batch, taxdb.AccessionRecord{
			Accession: acc,
			TaxID:     taxID,
		})

		if len(batch) == chunk {
			if err = p.flush(ctx, batch, emit); err != nil {
				if errors.Is(err, ErrStop) {
					return nil
				}
				return err
			}
			batch = make([]taxdb.AccessionRecord, 0, chunk)
		}
	}
	if err = sc.Err(); err != nil {
		return ReadError(path, err)
	}

	if len(batch) > 0 {
		if err = p.flush(ctx, batch, emit); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			return err
		}
	}
	return nil
}

func (p *Parser) flush(
	ctx context.Context,
	batch []taxdb.AccessionRecord,
	emit BatchFunc,
) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	return emit(batch)
}
