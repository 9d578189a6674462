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

// getAccessionsCmd returns the 'populate accessions' command.
func getAccessionsCmd() *cobra.Command {
	var (
		chunkSize  int
		fastMode   bool
		skipVerify bool
	)

	accessionsCmd := &cobra.Command{
		Use:   "accessions file...",
		Short: "Import accession2taxid mapping files",
		Long: `Map sequence accessions to taxonomic ids.

Each file is an NCBI accession2taxid dump, gzipped or plain text. Rows
whose taxonomic id is absent from the taxa table are skipped, so
'populate taxa' must run first. Records are streamed and inserted in
batches; multi-gigabyte files never load into memory whole.

When an .md5 sidecar file sits next to an input file its checksum is
verified before the import. Use --skip-verify to turn this off.

Fast mode skips per-accession duplicate checks against the store. Use
it for a fresh database where the accession tables are still empty.

Examples:
  taxdb populate accessions nucl_gb.accession2taxid.gz
  taxdb populate accessions --fast nucl_gb.accession2taxid.gz
  taxdb populate accessions -c 1000 nucl_*.accession2taxid.gz`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runAccessions(cmd, args, chunkSize,
				fastMode, skipVerify)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	accessionsCmd.Flags().IntVarP(&chunkSize, "chunk-size", "c", 0,
		"number of records per insert batch (default: 500)")
	accessionsCmd.Flags().BoolVarP(&fastMode, "fast", "f", false,
		"skip duplicate checks against the store")
	accessionsCmd.Flags().BoolVar(&skipVerify, "skip-verify", false,
		"skip md5 checksum verification")

	return accessionsCmd
}

func runAccessions(
	cmd *cobra.Command,
	files []string,
	chunkSize int,
	fastMode, skipVerify bool,
) error {
	ctx := context.Background()

	accOpts := []config.Option{
		config.OptImportAccessionFiles(files),
	}

	if cmd.Flags().Changed("chunk-size") {
		accOpts = append(accOpts, config.OptImportChunkSize(chunkSize))
	}

	if cmd.Flags().Changed("fast") {
		accOpts = append(accOpts, config.OptImportFastMode(fastMode))
	}

	if cmd.Flags().Changed("skip-verify") {
		accOpts = append(accOpts, config.OptImportSkipVerify(skipVerify))
	}

	cfg.Update(accOpts)

	op, err := connectForPopulate(ctx)
	if err != nil {
		return err
	}
	defer op.Close()

	populator := iopopulate.New(cfg, op)

	return populator.PopulateAccessions(ctx)
}
