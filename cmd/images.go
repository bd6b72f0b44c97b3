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
	"os"
	"os/signal"

	"github.com/gnames/gn"
	"github.com/olydash/olydash/internal/ioimages"
	"github.com/olydash/olydash/internal/iostore"
	"github.com/olydash/olydash/pkg/config"
	"github.com/olydash/olydash/pkg/entity"
	"github.com/olydash/olydash/pkg/filter"
	"github.com/spf13/cobra"
)

// getImagesCmd returns the images command.
func getImagesCmd() *cobra.Command {
	var (
		workers   int
		countries []string
		quiet     bool
	)

	imagesCmd := &cobra.Command{
		Use:   "images",
		Short: "Resolve athlete portraits from Wikipedia",
		Long: `Look up portrait URLs of athletes in the Wikipedia pageimages API
and save them as the athlete_images derived table.

Lookups run on a bounded pool of workers. An athlete without a portrait,
or whose lookup failed or timed out, gets the fallback image URL.

Examples:
  olydash images
  olydash images -w 16
  olydash images -c FRA,JPN`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("workers") {
				cfg.Update([]config.Option{config.OptImagesWorkers(workers)})
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			err := runImages(ctx, cfg, countries, quiet)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	imagesCmd.Flags().IntVarP(&workers, "workers", "w", 0,
		"number of concurrent lookups")
	imagesCmd.Flags().StringSliceVarP(&countries, "country", "c", nil,
		"only athletes of these NOC codes")
	imagesCmd.Flags().BoolVarP(&quiet, "quiet", "q", false,
		"hide the progress bar")

	return imagesCmd
}

func runImages(
	ctx context.Context,
	cfg *config.Config,
	countries []string,
	quiet bool,
) error {
	store, err := iostore.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	athletes, err := store.Load(ctx, entity.AthletesEnriched)
	if err != nil {
		return err
	}
	if len(countries) > 0 {
		athletes = filter.Apply(athletes, filter.New(filter.OptCountries(countries...)))
	}

	f := ioimages.New(cfg, ioimages.OptQuiet(quiet))
	res, err := f.Fetch(ctx, athletes)
	if err != nil {
		return err
	}

	if err = store.Save(ctx, res); err != nil {
		return err
	}
	gn.Info("Saved <em>%d</em> portraits to <em>%s</em>", res.Len(), cfg.OutputDir())
	return nil
}
