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
	"os"
	"os/signal"

	"github.com/gnames/gn"
	"github.com/olydash/olydash/internal/iodatasets"
	"github.com/olydash/olydash/internal/ioload"
	"github.com/olydash/olydash/internal/iometrics"
	"github.com/olydash/olydash/internal/iopipeline"
	"github.com/olydash/olydash/internal/iostore"
	"github.com/olydash/olydash/pkg/config"
	"github.com/olydash/olydash/pkg/errcode"
	"github.com/spf13/cobra"
)

// getEnrichCmd returns the enrich command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getEnrichCmd() *cobra.Command {
	var (
		inputDir    string
		outputDir   string
		format      string
		excludeNOCs []string
		refDate     string
	)

	enrichCmd := &cobra.Command{
		Use:   "enrich",
		Short: "Build derived tables from raw CSV files",
		Long: `Load raw Olympic Games CSV files and build enriched tables.

This command:
  1. Reads datasets.yaml to find raw files of every entity
  2. Loads and normalizes raw files concurrently
  3. Builds derived tables (athletes_enriched, medal_totals_enriched,
     continent_summary, ...) in dependency order
  4. Saves derived tables as CSV, SQLite or both

A missing raw file only affects tables that depend on it, other
tables are still built. Stale outputs of failed tables are removed.

Examples:
  olydash enrich
  olydash enrich -i ~/olympics/paris2024 -o ~/olympics/derived
  olydash enrich --format both --exclude-noc AIN`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var enrichOpts []config.Option
			if cmd.Flags().Changed("input-dir") {
				enrichOpts = append(enrichOpts, config.OptDataInputDir(inputDir))
			}
			if cmd.Flags().Changed("output-dir") {
				enrichOpts = append(enrichOpts, config.OptDataOutputDir(outputDir))
			}
			if cmd.Flags().Changed("format") {
				enrichOpts = append(enrichOpts, config.OptDataFormat(format))
			}
			if cmd.Flags().Changed("exclude-noc") {
				enrichOpts = append(enrichOpts,
					config.OptGamesExcludeNOCs(excludeNOCs))
			}
			if cmd.Flags().Changed("reference-date") {
				enrichOpts = append(enrichOpts,
					config.OptGamesReferenceDate(refDate))
			}
			cfg.Update(enrichOpts)

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			err := runEnrich(ctx, cfg)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	enrichCmd.Flags().StringVarP(&inputDir, "input-dir", "i", "",
		"directory with raw CSV files")
	enrichCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "",
		"directory for derived tables")
	enrichCmd.Flags().StringVarP(&format, "format", "f", "",
		"output format: csv, sqlite or both")
	enrichCmd.Flags().StringSliceVarP(&excludeNOCs, "exclude-noc", "x", nil,
		"NOC codes to drop from every entity")
	enrichCmd.Flags().StringVarP(&refDate, "reference-date", "d", "",
		"date ages are computed at, YYYY-MM-DD")

	return enrichCmd
}

func runEnrich(ctx context.Context, cfg *config.Config) error {
	manifest, err := iodatasets.New(cfg).Load()
	if err != nil {
		return err
	}

	store, err := iostore.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	loader := ioload.New(cfg, manifest)
	rec := iometrics.New(cfg)

	res, err := iopipeline.New(cfg, loader, store, rec).Run(ctx)
	if err == nil {
		return nil
	}

	// partial failure still produced usable tables
	var gnErr *gn.Error
	if res != nil && errors.As(err, &gnErr) &&
		gnErr.Code == errcode.PipelinePartialFailureError {
		for _, name := range res.Failed() {
			gn.Warn("Table <em>%s</em> was not built: %v", name, res.Errors[name])
		}
	}
	return err
}
