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
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/gnames/gn"
	"github.com/olydash/olydash/internal/iostore"
	"github.com/olydash/olydash/pkg/aggregate"
	"github.com/olydash/olydash/pkg/config"
	"github.com/olydash/olydash/pkg/enrich"
	"github.com/olydash/olydash/pkg/entity"
	"github.com/olydash/olydash/pkg/filter"
	"github.com/olydash/olydash/pkg/lifecycle"
	"github.com/olydash/olydash/pkg/table"
	"github.com/spf13/cobra"
)

// queryFlags keeps values of query flags.
type queryFlags struct {
	countries  []string
	continents []string
	sports     []string
	medals     []string
	gender     string
	age        string
	venue      string

	groupBy     string
	measure     string
	aggregation string
	top         int

	output string
	limit  int
}

// getQueryCmd returns the query command.
func getQueryCmd() *cobra.Command {
	var qf queryFlags

	queryCmd := &cobra.Command{
		Use:   "query TABLE",
		Short: "Filter, group and print a derived table",
		Long: `Read a derived table built by 'olydash enrich', narrow it with
filters and print it, optionally grouped and aggregated.

Filters combine with AND, values of one filter combine with OR. A filter
that does not apply to the table (for example --venue on medal totals)
is ignored.

Examples:
  olydash query medal_totals_enriched -c USA,CHN,FRA
  olydash query athletes_enriched --continent Europe -g F --age 18-25
  olydash query medals_enriched -m Gold -b country_code -a count -n 10
  olydash query athletes_enriched -b continent --measure height -a avg -O json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(entity.DerivedNames(), "\n"))
				return nil
			}
			err := runQuery(cmd.Context(), cmd.OutOrStdout(), cfg, args[0], qf)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	f := queryCmd.Flags()
	f.StringSliceVarP(&qf.countries, "country", "c", nil, "NOC codes")
	f.StringSliceVar(&qf.continents, "continent", nil, "continent names")
	f.StringSliceVarP(&qf.sports, "sport", "s", nil, "sports or disciplines")
	f.StringSliceVarP(&qf.medals, "medal", "m", nil, "Gold, Silver or Bronze")
	f.StringVarP(&qf.gender, "gender", "g", "", "Male, Female or Mixed")
	f.StringVar(&qf.age, "age", "", "inclusive age range, for example 18-25")
	f.StringVar(&qf.venue, "venue", "", "venue name")

	f.StringVarP(&qf.groupBy, "group-by", "b", "", "column to group by")
	f.StringVar(&qf.measure, "measure", "", "numeric column to aggregate")
	f.StringVarP(&qf.aggregation, "agg", "a", aggregate.AggCount,
		"aggregation: count, sum, avg, max or min")
	f.IntVarP(&qf.top, "top", "n", 0, "keep only N largest groups")

	f.StringVarP(&qf.output, "output", "O", "pretty",
		"output format: pretty, json or csv")
	f.IntVarP(&qf.limit, "limit", "l", 0, "print at most N rows")

	return queryCmd
}

func runQuery(
	ctx context.Context,
	w io.Writer,
	cfg *config.Config,
	name string,
	qf queryFlags,
) error {
	if _, ok := entity.Derived(name); !ok {
		return UnknownTableError(name, entity.DerivedNames())
	}

	spec, err := qf.spec()
	if err != nil {
		return err
	}

	store, err := iostore.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	t, err := store.Load(ctx, name)
	if err != nil {
		return err
	}

	if name == entity.MedalTotalsEnriched && needsMedals(spec) {
		t, err = totalsFromMedals(ctx, store, t, spec)
		if err != nil {
			return err
		}
	}

	res := filter.Apply(t, spec)
	slog.Info("Query",
		"table", name,
		"filter", spec.String(),
		"rows", res.Len(),
		"total", t.Len(),
	)

	if qf.groupBy != "" {
		res, err = qf.group(res)
		if err != nil {
			return err
		}
	}

	if qf.limit > 0 && res.Len() > qf.limit {
		idx := make([]int, qf.limit)
		for i := range idx {
			idx[i] = i
		}
		res = res.Subset(idx)
	}

	return render(w, res, qf.output)
}

// needsMedals reports if spec has dimensions that only medal records
// carry.
func needsMedals(spec filter.Spec) bool {
	return len(spec.Sports()) > 0 || len(spec.MedalTypes()) > 0 ||
		slices.Contains(spec.Invalid(), filter.DimMedals)
}

// totalsFromMedals recomputes national medal totals from the medals that
// pass spec. Stored totals have no sport or medal type columns, so these
// dimensions can only be applied to individual medals.
func totalsFromMedals(
	ctx context.Context,
	store lifecycle.Store,
	totals *table.Table,
	spec filter.Spec,
) (*table.Table, error) {
	medals, err := store.Load(ctx, entity.MedalsEnriched)
	if err != nil {
		return nil, err
	}

	e := enrich.New()
	counts, err := e.MedalTotalsFromMedals(filter.Apply(medals, spec))
	if err != nil {
		return nil, AggregationError(err.Error())
	}
	res, err := e.EnrichMedalTotals(counts, nocsOf(totals))
	if err != nil {
		return nil, AggregationError(err.Error())
	}

	slog.Info("Medal totals recomputed from medals",
		"filter", spec.String(),
		"countries", res.Len(),
	)
	return res, nil
}

// nocsOf extracts NOC names from stored medal totals, so recomputed
// totals keep country names of countries missing in medal records.
func nocsOf(totals *table.Table) *table.Table {
	res := table.New(entity.NOCs, "code", "country", "country_long")
	for _, r := range totals.Rows {
		res.Append(table.Row{
			"code":         r["country_code"],
			"country":      r["country"],
			"country_long": r["country_long"],
		})
	}
	return res
}

// spec converts filter flags to a filter.Spec.
func (qf queryFlags) spec() (filter.Spec, error) {
	var opts []filter.Option
	if len(qf.countries) > 0 {
		opts = append(opts, filter.OptCountries(qf.countries...))
	}
	if len(qf.continents) > 0 {
		opts = append(opts, filter.OptContinents(qf.continents...))
	}
	if len(qf.sports) > 0 {
		opts = append(opts, filter.OptSports(qf.sports...))
	}
	if len(qf.medals) > 0 {
		opts = append(opts, filter.OptMedalTypes(qf.medals...))
	}
	if qf.gender != "" {
		opts = append(opts, filter.OptGender(qf.gender))
	}
	if qf.age != "" {
		lo, hi, err := parseAgeRange(qf.age)
		if err != nil {
			return filter.Spec{}, err
		}
		opts = append(opts, filter.OptAgeRange(lo, hi))
	}
	if qf.venue != "" {
		opts = append(opts, filter.OptVenue(qf.venue))
	}
	return filter.New(opts...), nil
}

// group aggregates t into a two-column table.
func (qf queryFlags) group(t *table.Table) (*table.Table, error) {
	aggs := []string{
		aggregate.AggCount, aggregate.AggSum, aggregate.AggAvg,
		aggregate.AggMax, aggregate.AggMin,
	}
	if !slices.Contains(aggs, qf.aggregation) {
		return nil, AggregationError(
			fmt.Sprintf("unknown aggregation %q", qf.aggregation))
	}
	if !t.HasColumn(qf.groupBy) {
		return nil, AggregationError(
			fmt.Sprintf("table %s has no column %q", t.Name, qf.groupBy))
	}
	if qf.aggregation != aggregate.AggCount {
		if qf.measure == "" {
			return nil, AggregationError(
				fmt.Sprintf("%s needs --measure", qf.aggregation))
		}
		if !t.HasColumn(qf.measure) {
			return nil, AggregationError(
				fmt.Sprintf("table %s has no column %q", t.Name, qf.measure))
		}
	}

	groups := aggregate.GroupAndAggregate(
		t, qf.groupBy, qf.measure, qf.aggregation, qf.top,
	)
	slog.Debug("Groups", "groups", aggregate.Describe(groups))

	valueCol := qf.aggregation
	if qf.measure != "" && qf.aggregation != aggregate.AggCount {
		valueCol = qf.aggregation + "_" + qf.measure
	}
	return aggregate.ToTable(t.Name, qf.groupBy, valueCol, groups), nil
}

// parseAgeRange reads "18-25" or a single age "21".
func parseAgeRange(s string) (int, int, error) {
	lo, hi, found := strings.Cut(strings.TrimSpace(s), "-")
	if !found {
		hi = lo
	}
	from, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid age range %q: %w", s, err)
	}
	to, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid age range %q: %w", s, err)
	}
	return from, to, nil
}

