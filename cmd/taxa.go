/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"

	"github.com/gnames/gn"
	"github.com/gnames/taxdb/internal/iopopulate"
	"github.com/gnames/taxdb/pkg/config"
	"github.com/spf13/cobra"
)

// getTaxaCmd returns the 'populate taxa' command.
func getTaxaCmd() *cobra.Command {
	var (
		nodesFile   string
		namesFile   string
		noCanonical bool
		jobsNumber  int
	)

	taxaCmd := &cobra.Command{
		Use:   "taxa",
		Short: "Import taxa from nodes.dmp and names.dmp",
		Long: `Import the NCBI taxonomy tree into the taxa table.

Records from nodes.dmp and names.dmp are joined by taxonomic id; only
the scientific name of each taxon is kept. Nodes without a scientific
name are dropped. Taxonomic ids already present in the taxa table are
skipped, so re-running the command after a partial import is safe.

By default each scientific name is also parsed with gnparser and its
canonical form is stored. Use --no-canonical to skip parsing.

Examples:
  taxdb populate taxa --nodes nodes.dmp --names names.dmp
  taxdb populate taxa --nodes nodes.dmp --names names.dmp --no-canonical`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runTaxa(cmd, nodesFile, namesFile,
				noCanonical, jobsNumber)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	taxaCmd.Flags().StringVarP(&nodesFile, "nodes", "n", "",
		"path to nodes.dmp (required)")
	taxaCmd.Flags().StringVarP(&namesFile, "names", "m", "",
		"path to names.dmp (required)")
	taxaCmd.Flags().BoolVar(&noCanonical, "no-canonical", false,
		"skip canonical form extraction with gnparser")
	taxaCmd.Flags().IntVarP(&jobsNumber, "jobs", "j", 0,
		"number of workers for name parsing (default: CPU threads)")

	_ = taxaCmd.MarkFlagRequired("nodes")
	_ = taxaCmd.MarkFlagRequired("names")

	return taxaCmd
}

func runTaxa(
	cmd *cobra.Command,
	nodesFile, namesFile string,
	noCanonical bool,
	jobsNumber int,
) error {
	ctx := context.Background()

	// Build options from explicitly set flags
	taxaOpts := []config.Option{
		config.OptImportNodesFile(nodesFile),
		config.OptImportNamesFile(namesFile),
	}

	if cmd.Flags().Changed("no-canonical") {
		withCanonical := !noCanonical
		taxaOpts = append(
			taxaOpts,
			config.OptImportWithCanonical(&withCanonical),
		)
	}

	if cmd.Flags().Changed("jobs") {
		taxaOpts = append(taxaOpts, config.OptJobsNumber(jobsNumber))
	}

	cfg.Update(taxaOpts)

	op, err := connectForPopulate(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	populator := iopopulate.New(cfg, op)

	if err := populator.PopulateTaxa(ctx); err != nil {
		return err
	}

	gn.Info(`Next steps:
	 - Run '<em>taxdb populate accessions</em>' to map accessions to taxa
`)

	return nil
}
