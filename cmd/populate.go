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
	"errors"

	"github.com/gnames/gn"
	"github.com/gnames/taxdb/internal/iodb"
	"github.com/gnames/taxdb/pkg/db"
	"github.com/gnames/taxdb/pkg/errcode"
	"github.com/spf13/cobra"
)

// getPopulateCmd returns the populate command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getPopulateCmd() *cobra.Command {
	populateCmd := &cobra.Command{
		Use:   "populate",
		Short: "Populate database with NCBI taxonomy data",
		Long: `Import NCBI taxonomy data into the destination store.

The taxonomy dump comes in two parts, imported by two subcommands:

  taxa        merged content of nodes.dmp and names.dmp
  accessions  accession to taxonomic-id mapping files

Accessions reference taxa, so 'populate taxa' must run first.

Examples:
  taxdb populate taxa --nodes nodes.dmp --names names.dmp
  taxdb populate accessions nucl_gb.accession2taxid.gz`,
		Aliases: []string{"add"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	populateCmd.AddCommand(getTaxaCmd())
	populateCmd.AddCommand(getAccessionsCmd())

	return populateCmd
}

// connectForPopulate connects an operator and verifies the schema is in
// place. Callers own the returned operator and must close it.
func connectForPopulate(ctx context.Context) (db.Operator, error) {
	op := iodb.NewOperator(&cfg.Database)
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return nil, err
	}

	if cfg.Database.Dialect == "sqlite" {
		gn.Info("Connected to database: <em>%s</em>",
			cfg.Database.File)
	} else {
		gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
			cfg.Database.User, cfg.Database.Host,
			cfg.Database.Port, cfg.Database.Database)
	}

	hasTables, err := op.HasTables(ctx)
	if err != nil {
		op.Close()
		return nil, err
	}

	if !hasTables {
		op.Close()
		return nil, &gn.Error{
			Code: errcode.DBEmptyDatabaseError,
			Msg: `<err>Database appears to be empty.</err>
   Run <em>'taxdb create'</em> first to initialize the schema.`,
			Err: errors.New("cannot insert data into empty database"),
		}
	}

	return op, nil
}
