package enrich

import (
	"cmp"
	"slices"

	"github.com/olydash/olydash/pkg/aggregate"
	"github.com/olydash/olydash/pkg/entity"
	"github.com/olydash/olydash/pkg/table"
)

// EnrichMedals adds geography, athlete attributes and medal flags to
// medal records. Row count and order are preserved.
func (e *Enricher) EnrichMedals(
	medals, nocs, athletes *table.Table,
) (*table.Table, error) {
	if err := require(medals, "medal_type", "country_code"); err != nil {
		return nil, err
	}
	if err := require(nocs, "code", "country"); err != nil {
		return nil, err
	}
	if err := require(athletes, "code"); err != nil {
		return nil, err
	}

	nocIdx := index(nocs, "code")
	athIdx := index(athletes, "code")

	res := output(entity.MedalsEnriched)
	for _, m := range medals.Rows {
		r := project(m, res.Columns)
		cc := m.String("country_code")
		geo(r, cc)
		fillCountry(r, nocIdx, cc)

		if a, ok := athIdx[m.String("code")]; ok {
			r["age"] = ageValue(a["birth_date"], e.gamesDate)
			r["height"] = a["height"]
			r["weight"] = a["weight"]
			r["birth_place"] = a["birth_place"]
		}
		medalFlags(r, m.String("medal_type"))
		res.Append(r)
	}
	return res, nil
}

// EnrichMedalTotals recomputes totals and adds geography, ratios, the
// quality score and dense ranks.
func (e *Enricher) EnrichMedalTotals(
	totals, nocs *table.Table,
) (*table.Table, error) {
	err := require(totals, "country_code", "gold", "silver", "bronze")
	if err != nil {
		return nil, err
	}
	if err = require(nocs, "code", "country"); err != nil {
		return nil, err
	}

	nocIdx := index(nocs, "code")
	res := output(entity.MedalTotalsEnriched)
	for _, t := range totals.Rows {
		r := project(t, res.Columns)
		cc := t.String("country_code")
		geo(r, cc)
		fillCountry(r, nocIdx, cc)

		g, s, b := t.IntOr("gold", 0), t.IntOr("silver", 0), t.IntOr("bronze", 0)
		total := g + s + b
		r["gold"], r["silver"], r["bronze"], r["total"] = g, s, b, total
		r["gold_ratio"] = aggregate.Ratio(float64(g), float64(total), 3)
		r["silver_ratio"] = aggregate.Ratio(float64(s), float64(total), 3)
		r["bronze_ratio"] = aggregate.Ratio(float64(b), float64(total), 3)
		r["medal_quality_score"] = qualityScore(g, s, b)
		res.Append(r)
	}

	denseRank(res.Rows, "rank", "total", "gold", "silver")
	denseRank(res.Rows, "rank_by_gold", "gold", "silver", "bronze")
	denseRank(res.Rows, "rank_by_quality", "medal_quality_score")

	slices.SortStableFunc(res.Rows, func(a, b table.Row) int {
		if c := cmp.Compare(a.IntOr("rank", 0), b.IntOr("rank", 0)); c != 0 {
			return c
		}
		return cmp.Compare(a.String("country_code"), b.String("country_code"))
	})
	return res, nil
}

// MedalTotalsFromMedals rebuilds per-country totals from medal records.
// Records with unrecognized medal types are skipped. The result has the
// raw medal totals shape and is sorted by country code.
func (e *Enricher) MedalTotalsFromMedals(
	medals *table.Table,
) (*table.Table, error) {
	if err := require(medals, "medal_type", "country_code"); err != nil {
		return nil, err
	}

	res := table.New(entity.MedalTotals,
		"country_code", "country", "country_long",
		"gold", "silver", "bronze", "total",
	)
	idx := make(map[string]table.Row)
	for _, m := range medals.Rows {
		mt, ok := entity.MedalType(m.String("medal_type"))
		cc := m.String("country_code")
		if !ok || cc == "" {
			continue
		}
		r, ok := idx[cc]
		if !ok {
			r = table.Row{
				"country_code": cc,
				"country":      m["country"],
				"country_long": m["country_long"],
				"gold":         0, "silver": 0, "bronze": 0, "total": 0,
			}
			idx[cc] = r
			res.Append(r)
		}
		col := medalColumns[mt]
		r[col] = r.IntOr(col, 0) + 1
		r["total"] = r.IntOr("total", 0) + 1
	}
	sortBy(res.Rows, "country_code")
	return res, nil
}

var medalColumns = map[string]string{
	entity.Gold:   "gold",
	entity.Silver: "silver",
	entity.Bronze: "bronze",
}

func qualityScore(g, s, b int) int {
	return 3*g + 2*s + b
}

// denseRank writes to col the dense rank of each row ordered by the
// given int columns, descending. Equal keys share a rank.
func denseRank(rows []table.Row, col string, by ...string) {
	idx := make([]int, len(rows))
	for i := range idx {
		idx[i] = i
	}
	compare := func(a, b table.Row) int {
		for _, c := range by {
			if res := cmp.Compare(b.IntOr(c, 0), a.IntOr(c, 0)); res != 0 {
				return res
			}
		}
		return 0
	}
	slices.SortStableFunc(idx, func(i, j int) int {
		return compare(rows[i], rows[j])
	})

	rank := 0
	for n, i := range idx {
		if n == 0 || compare(rows[idx[n-1]], rows[i]) != 0 {
			rank++
		}
		rows[i][col] = rank
	}
}
