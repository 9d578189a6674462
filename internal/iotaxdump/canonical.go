package iotaxdump

import (
	"context"

	"github.com/gnames/gnparser"
	"github.com/gnames/taxdb/pkg/taxdb"
	"golang.org/x/sync/errgroup"
)

// addCanonicals runs the scientific names through gnparser and stores
// the canonical simple form on each node. Parsing is CPU-bound, so it
// is spread over jobsNum workers; each worker owns its parser
// instance because gnparser is not safe for concurrent use.
//
// Unparseable names (viruses, placeholders like "environmental
// samples") keep an empty canonical, that is not an error.
func (p *Parser) addCanonicals(
	ctx context.Context,
	nodes []taxdb.TaxonNode,
) error {
	jobs := p.jobsNum
	if jobs < 1 {
		jobs = 1
	}

	chIn := make(chan int)
	g, ctx := errgroup.WithContext(ctx)

	for range jobs {
		g.Go(func() error {
			cfg := gnparser.NewConfig()
			parser := gnparser.New(cfg)
			for i := range chIn {
				parsed := parser.ParseName(nodes[i].Name)
				if parsed.Parsed {
					nodes[i].Canonical = parsed.Canonical.Simple
				}
			}
			return nil
		})
	}

	g.Go(func() error {
		defer close(chIn)
		for i := range nodes {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case chIn <- i:
			}
		}
		return nil
	})

	return g.Wait()
}
