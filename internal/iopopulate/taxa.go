package iopopulate

import (
	"context"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/taxdb/pkg/taxdb"
)

// insertTaxa hands the merged taxa to the store in BatchSize chunks.
// Chunking bounds per-transaction memory and lock duration at the
// destination.
func (p *populator) insertTaxa(
	ctx context.Context,
	taxa []taxdb.TaxonNode,
) (int64, error) {
	if len(taxa) == 0 {
		return 0, nil
	}
	batchSize := p.cfg.Database.BatchSize
	if batchSize <= 0 {
		batchSize = 10_000
	}

	bar := pb.Full.Start(len(taxa))
	bar.Set("prefix", "Importing taxa: ")
	bar.Set(pb.CleanOnFinish, true)
	defer bar.Finish()

	var total int64
	for start := 0; start < len(taxa); start += batchSize {
		select {
		case <-ctx.Done():
			return total, ctx.Err()
		default:
		}

		end := min(start+batchSize, len(taxa))
		batch := taxa[start:end]

		n, err := p.operator.InsertTaxa(ctx, batch)
		if err != nil {
			return total, err
		}
		total += n
		bar.Add(len(batch))
	}

	return total, nil
}
