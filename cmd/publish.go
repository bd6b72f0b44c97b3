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
	"fmt"
	"os"
	"os/signal"

	"github.com/gnames/gn"
	"github.com/olydash/olydash/internal/iodb"
	"github.com/olydash/olydash/internal/iopublish"
	"github.com/olydash/olydash/internal/ioschema"
	"github.com/olydash/olydash/internal/iostore"
	"github.com/olydash/olydash/pkg/config"
	"github.com/olydash/olydash/pkg/entity"
	"github.com/olydash/olydash/pkg/errcode"
	"github.com/olydash/olydash/pkg/table"
	"github.com/spf13/cobra"
)

// getPublishCmd returns the publish command.
func getPublishCmd() *cobra.Command {
	var (
		names     []string
		batchSize int
		dryRun    bool
	)

	publishCmd := &cobra.Command{
		Use:   "publish",
		Short: "Copy derived tables to PostgreSQL",
		Long: `Copy derived tables built by 'olydash enrich' into PostgreSQL.

This command:
  1. Connects to PostgreSQL using the database section of config.yaml
  2. Creates or updates bookkeeping tables (pipeline_runs,
     published_tables)
  3. Recreates every derived table and bulk-loads its rows
  4. Records the run with a unique run id

Every row gets a deterministic UUID id built from its key columns, so
ids stay the same between runs.

Examples:
  olydash publish
  olydash publish -t medal_totals_enriched,continent_summary
  olydash publish --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("batch-size") {
				cfg.Update([]config.Option{config.OptDatabaseBatchSize(batchSize)})
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			err := runPublish(ctx, cmd, cfg, names, dryRun)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	publishCmd.Flags().StringSliceVarP(&names, "tables", "t", nil,
		"derived tables to publish (default all)")
	publishCmd.Flags().IntVarP(&batchSize, "batch-size", "b", 0,
		"rows per COPY batch")
	publishCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false,
		"show what would be published without connecting")

	return publishCmd
}

func runPublish(
	ctx context.Context,
	cmd *cobra.Command,
	cfg *config.Config,
	names []string,
	dryRun bool,
) error {
	if len(names) == 0 {
		names = entity.DerivedNames()
	}
	for _, name := range names {
		if _, ok := entity.Derived(name); !ok {
			return UnknownTableError(name, entity.DerivedNames())
		}
	}

	tables, err := loadTables(ctx, cfg, names)
	if err != nil {
		return err
	}
	if len(tables) == 0 {
		gn.Warn("No derived tables found, run <em>olydash enrich</em> first")
		return nil
	}

	if dryRun {
		fmt.Fprint(cmd.OutOrStdout(), iopublish.Summary(tables))
		return nil
	}

	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		return err
	}
	defer op.Close()

	gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)

	if err = ioschema.NewManager(op).Migrate(ctx, cfg); err != nil {
		return err
	}

	_, err = iopublish.New(cfg, op).Publish(ctx, tables)
	return err
}

// loadTables reads stored derived tables. Tables that were never built
// are skipped with a warning.
func loadTables(
	ctx context.Context,
	cfg *config.Config,
	names []string,
) ([]*table.Table, error) {
	store, err := iostore.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	var res []*table.Table
	for _, name := range names {
		t, err := store.Load(ctx, name)
		if err != nil {
			var gnErr *gn.Error
			if errors.As(err, &gnErr) &&
				gnErr.Code == errcode.StoreTableNotFoundError {
				gn.Warn("Table <em>%s</em> is not built yet, skipping", name)
				continue
			}
			return nil, err
		}
		res = append(res, t)
	}
	return res, nil
}
