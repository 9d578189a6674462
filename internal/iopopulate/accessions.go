package iopopulate

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/taxdb/internal/ioaccession"
	"github.com/gnames/taxdb/internal/iofile"
	"github.com/gnames/taxdb/pkg/taxdb"
	"github.com/google/uuid"
)

// progressEvery is the row interval for logging progress of
// long-running accession imports.
const progressEvery = 100_000

// PopulateAccessions streams accession2taxid files and bulk-inserts
// accession records batch by batch. A failing file is reported and
// skipped; the run fails only when every file failed.
func (p *populator) PopulateAccessions(ctx context.Context) error {
	files := p.cfg.Import.AccessionFiles
	if len(files) == 0 {
		return ioaccession.ConfigurationError()
	}

	startTime := time.Now()
	parser := ioaccession.New(p.cfg, p.operator)

	successCount := 0
	errorCount := 0
	var totalInserted int64

	for i, file := range files {
		fileStart := time.Now()

		fmt.Println()
		fmt.Println(strings.Repeat("─", 60))
		gn.Info("Accession file [%d/%d]: %s",
			i+1, len(files), filepath.Base(file))
		fmt.Println(strings.Repeat("─", 60))

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		inserted, err := p.processAccessionFile(ctx, parser, file)
		if err != nil {
			errorCount++
			slog.Error("Failed to process accession file",
				"file", file,
				"error", err,
			)
			continue
		}

		successCount++
		totalInserted += inserted
		slog.Info("Accession file processed",
			"file", file,
			"inserted", inserted,
			"duration", gnfmt.TimeString(time.Since(fileStart).Seconds()),
		)
		gn.Info("<em>Inserted %s accessions in %s</em>",
			humanize.Comma(inserted),
			gnfmt.TimeString(time.Since(fileStart).Seconds()),
		)
	}

	totalDuration := time.Since(startTime)
	slog.Info("Accession import complete",
		"success", successCount,
		"errors", errorCount,
		"inserted", totalInserted,
		"duration", gnfmt.TimeString(totalDuration.Seconds()),
	)
	gn.Info(`Accession import complete
Files succeeded: %d, failed: %d.
Inserted %s records in <em>%s</em>`,
		successCount,
		errorCount,
		humanize.Comma(totalInserted),
		gnfmt.TimeString(totalDuration.Seconds()),
	)

	if errorCount > 0 && successCount == 0 {
		return AllFilesFailedError(errorCount)
	}
	return nil
}

// processAccessionFile verifies and streams one accession2taxid file,
// inserting each emitted batch into the store.
func (p *populator) processAccessionFile(
	ctx context.Context,
	parser *ioaccession.Parser,
	file string,
) (int64, error) {
	if !p.cfg.Import.SkipVerify {
		if iofile.HasSidecar(file) {
			gn.Info("Verifying md5 checksum of <em>%s</em>",
				filepath.Base(file))
			if err := iofile.VerifyMD5(file); err != nil {
				return 0, err
			}
		} else {
			slog.Warn("No md5 sidecar found, skipping verification",
				"file", file)
		}
	}

	startTime := time.Now()
	var inserted, processed int64

	err := parser.Stream(ctx, file, p.cfg.Import.ChunkSize,
		func(batch []taxdb.AccessionRecord) error {
			n, err := p.operator.InsertAccessions(ctx, batch)
			if err != nil {
				return err
			}
			inserted += n
			processed += int64(len(batch))
			if processed%progressEvery < int64(len(batch)) {
				slog.Info("Accession import progress",
					"file", filepath.Base(file),
					"processed", processed,
					"inserted", inserted,
				)
			}
			return nil
		})
	if err != nil {
		return 0, AccessionsError(file, err)
	}

	run := taxdb.ImportRun{
		ID:          uuid.NewString(),
		Kind:        "accessions",
		InputFile:   file,
		RecordCount: inserted,
		StartedAt:   startTime,
		DurationSec: time.Since(startTime).Seconds(),
	}
	if err = p.operator.InsertImportRun(ctx, run); err != nil {
		return 0, MetadataError(err)
	}

	return inserted, nil
}
