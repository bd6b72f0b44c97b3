// Package aggregate summarizes tables for the presentation layer.
//
// All functions accept empty tables. Measures skip unknown and
// non-numeric cells, so an average over zero known values reports
// ok == false instead of failing.
package aggregate

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/olydash/olydash/pkg/table"
)

// Unknown is the group key of rows with an empty grouping value.
const Unknown = "Unknown"

// Aggregation kinds understood by GroupAndAggregate.
const (
	AggCount = "count"
	AggSum   = "sum"
	AggAvg   = "avg"
	AggMax   = "max"
	AggMin   = "min"
)

// Group is a set of rows sharing a key, with an aggregated value.
type Group struct {
	Key   string
	Count int
	Value float64
	Rows  *table.Table
}

// Count returns the number of rows.
func Count(t *table.Table) int {
	return t.Len()
}

// Sum adds numeric values of a column.
func Sum(t *table.Table, col string) float64 {
	var res float64
	if t == nil {
		return res
	}
	for _, r := range t.Rows {
		if v, ok := r.Float(col); ok {
			res += v
		}
	}
	return res
}

// Mean averages numeric values of a column. It returns false when the
// column has no known values.
func Mean(t *table.Table, col string) (float64, bool) {
	var sum float64
	var n int
	if t == nil {
		return 0, false
	}
	for _, r := range t.Rows {
		if v, ok := r.Float(col); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// Max returns the largest numeric value of a column.
func Max(t *table.Table, col string) (float64, bool) {
	return extreme(t, col, func(a, b float64) bool { return a > b })
}

// Min returns the smallest numeric value of a column.
func Min(t *table.Table, col string) (float64, bool) {
	return extreme(t, col, func(a, b float64) bool { return a < b })
}

func extreme(
	t *table.Table,
	col string,
	better func(a, b float64) bool,
) (float64, bool) {
	res := math.NaN()
	found := false
	if t == nil {
		return 0, false
	}
	for _, r := range t.Rows {
		v, ok := r.Float(col)
		if !ok {
			continue
		}
		if !found || better(v, res) {
			res = v
			found = true
		}
	}
	if !found {
		return 0, false
	}
	return res, true
}

// CountDistinct counts distinct known values of a column. Members of
// multi-valued cells count individually.
func CountDistinct(t *table.Table, col string) int {
	seen := make(map[string]struct{})
	if t == nil {
		return 0
	}
	for _, r := range t.Rows {
		for _, k := range keys(r, col) {
			if k != Unknown {
				seen[k] = struct{}{}
			}
		}
	}
	return len(seen)
}

// GroupBy splits rows by the value of a column, keeping first-seen order.
// A row with a multi-valued cell joins the group of every member. Rows
// with an empty or malformed value go to the Unknown group.
func GroupBy(t *table.Table, col string) []Group {
	if t.Len() == 0 {
		return nil
	}
	idx := make(map[string][]int)
	var order []string
	for i, r := range t.Rows {
		for _, k := range keys(r, col) {
			if _, ok := idx[k]; !ok {
				order = append(order, k)
			}
			idx[k] = append(idx[k], i)
		}
	}
	res := make([]Group, 0, len(order))
	for _, k := range order {
		sub := t.Subset(idx[k])
		res = append(res, Group{Key: k, Count: sub.Len(), Rows: sub})
	}
	return res
}

// CountBy counts rows per value of a column, largest first.
func CountBy(t *table.Table, col string) []Group {
	return GroupAndAggregate(t, col, "", AggCount, 0)
}

// SumBy sums a measure per value of a column, largest first.
func SumBy(t *table.Table, by, measure string) []Group {
	return GroupAndAggregate(t, by, measure, AggSum, 0)
}

// GroupAndAggregate runs group, aggregate, sort and limit. Groups are
// sorted by value descending, then by key. A limit of zero keeps all
// groups.
func GroupAndAggregate(
	t *table.Table,
	by string,
	measure string,
	aggregation string,
	limit int,
) []Group {
	groups := GroupBy(t, by)
	for i := range groups {
		aggregateGroup(&groups[i], measure, aggregation)
	}
	SortGroups(groups)
	return TopN(groups, limit)
}

func aggregateGroup(g *Group, measure, aggregation string) {
	switch aggregation {
	case AggCount:
		g.Value = float64(g.Count)
	case AggAvg:
		g.Value, _ = Mean(g.Rows, measure)
	case AggMax:
		g.Value, _ = Max(g.Rows, measure)
	case AggMin:
		g.Value, _ = Min(g.Rows, measure)
	default:
		g.Value = Sum(g.Rows, measure)
	}
}

// SortGroups orders groups by value descending, then key ascending.
func SortGroups(groups []Group) {
	slices.SortStableFunc(groups, func(a, b Group) int {
		switch {
		case a.Value > b.Value:
			return -1
		case a.Value < b.Value:
			return 1
		}
		return strings.Compare(a.Key, b.Key)
	})
}

// TopN returns the first n groups. Non-positive n returns all groups.
func TopN(groups []Group, n int) []Group {
	if n <= 0 || len(groups) <= n {
		return groups
	}
	return groups[:n]
}

// ToTable converts groups to a two-column table.
func ToTable(name, keyCol, valueCol string, groups []Group) *table.Table {
	res := table.New(name, keyCol, valueCol)
	for _, g := range groups {
		var v any = g.Value
		if g.Value == math.Trunc(g.Value) && math.Abs(g.Value) < 1e15 {
			v = int(g.Value)
		}
		res.Append(table.Row{keyCol: g.Key, valueCol: v})
	}
	return res
}

func keys(r table.Row, col string) []string {
	switch v := r[col].(type) {
	case table.StringSet:
		if len(v) == 0 {
			return []string{Unknown}
		}
		return v
	case nil, table.Malformed:
		return []string{Unknown}
	default:
		s := strings.TrimSpace(r.String(col))
		if s == "" {
			return []string{Unknown}
		}
		return []string{s}
	}
}

// Percent returns part as a percentage of whole rounded to the given
// number of decimals. A zero whole gives 0.
func Percent(part, whole float64, decimals int) float64 {
	if whole == 0 {
		return 0
	}
	return Round(part/whole*100, decimals)
}

// Round rounds half away from zero to the given number of decimals.
func Round(v float64, decimals int) float64 {
	p := math.Pow10(decimals)
	res := math.Round(v*p) / p
	if res == 0 {
		return 0
	}
	return res
}

// Ratio divides a by b rounded to decimals, 0 when b is 0.
func Ratio(a, b float64, decimals int) float64 {
	if b == 0 {
		return 0
	}
	return Round(a/b, decimals)
}

// Describe renders groups for logs.
func Describe(groups []Group) string {
	parts := make([]string, len(groups))
	for i, g := range groups {
		parts[i] = fmt.Sprintf("%s=%s", g.Key, table.Format(g.Value))
	}
	return strings.Join(parts, ", ")
}
