package enrich

import (
	"cmp"
	"slices"
	"strings"

	"github.com/olydash/olydash/pkg/aggregate"
	"github.com/olydash/olydash/pkg/entity"
	"github.com/olydash/olydash/pkg/resolver"
	"github.com/olydash/olydash/pkg/table"
)

// Gender distribution categories.
const (
	CategoryOverall   = "Overall"
	CategoryContinent = "Continent"
	CategoryCountry   = "Country"
	CategorySport     = "Sport"
)

type medalCount struct {
	gold, silver, bronze int
}

func (m *medalCount) add(medalType string) bool {
	mt, ok := entity.MedalType(medalType)
	if !ok {
		return false
	}
	switch mt {
	case entity.Gold:
		m.gold++
	case entity.Silver:
		m.silver++
	case entity.Bronze:
		m.bronze++
	}
	return true
}

func (m medalCount) total() int {
	return m.gold + m.silver + m.bronze
}

// byTotalDesc orders rows by an int column descending, then by a string
// column ascending.
func byTotalDesc(rows []table.Row, total, key string) {
	slices.SortStableFunc(rows, func(a, b table.Row) int {
		if c := cmp.Compare(b.IntOr(total, 0), a.IntOr(total, 0)); c != 0 {
			return c
		}
		return strings.Compare(a.String(key), b.String(key))
	})
}

// ContinentSummary totals medals per continent from enriched medal
// totals.
func (e *Enricher) ContinentSummary(
	totals *table.Table,
) (*table.Table, error) {
	err := require(totals, "country_code", "continent", "gold", "silver", "bronze")
	if err != nil {
		return nil, err
	}

	type acc struct {
		medals    medalCount
		countries map[string]struct{}
	}
	var order []string
	accs := make(map[string]*acc)
	for _, t := range totals.Rows {
		cont := orUnknown(t.String("continent"))
		a, ok := accs[cont]
		if !ok {
			a = &acc{countries: make(map[string]struct{})}
			accs[cont] = a
			order = append(order, cont)
		}
		a.medals.gold += t.IntOr("gold", 0)
		a.medals.silver += t.IntOr("silver", 0)
		a.medals.bronze += t.IntOr("bronze", 0)
		if cc := t.String("country_code"); cc != "" {
			a.countries[cc] = struct{}{}
		}
	}

	res := output(entity.ContinentSummary)
	for _, cont := range order {
		a := accs[cont]
		total := a.medals.total()
		res.Append(table.Row{
			"continent":     cont,
			"gold":          a.medals.gold,
			"silver":        a.medals.silver,
			"bronze":        a.medals.bronze,
			"total":         total,
			"num_countries": len(a.countries),
			"gold_ratio": aggregate.Ratio(
				float64(a.medals.gold), float64(total), 3),
			"avg_medals_per_country": aggregate.Ratio(
				float64(total), float64(len(a.countries)), 2),
		})
	}
	byTotalDesc(res.Rows, "total", "continent")
	return res, nil
}

// SportSummary counts disciplines, events, medalling athletes and medals
// per sport. A team medal counts once however many members received it.
func (e *Enricher) SportSummary(
	medalists, events *table.Table,
) (*table.Table, error) {
	err := require(medalists, "sport", "discipline", "event", "medal_type")
	if err != nil {
		return nil, err
	}
	if err = require(events, "sport", "event"); err != nil {
		return nil, err
	}

	type acc struct {
		disciplines map[string]struct{}
		events      map[string]struct{}
		athletes    map[string]struct{}
		medals      map[string]struct{}
		counts      medalCount
	}
	accs := make(map[string]*acc)
	get := func(sport string) *acc {
		a, ok := accs[sport]
		if !ok {
			a = &acc{
				disciplines: make(map[string]struct{}),
				events:      make(map[string]struct{}),
				athletes:    make(map[string]struct{}),
				medals:      make(map[string]struct{}),
			}
			accs[sport] = a
		}
		return a
	}

	for _, ev := range events.Rows {
		a := get(orUnknown(ev.String("sport")))
		if name := ev.String("event"); name != "" {
			a.events[name] = struct{}{}
		}
	}

	for _, m := range medalists.Rows {
		a := get(orUnknown(m.String("sport")))
		if d := m.String("discipline"); d != "" {
			a.disciplines[d] = struct{}{}
		}
		if id := athleteID(m); id != "" {
			a.athletes[id] = struct{}{}
		}
		winner := m.String("code_team")
		if winner == "" {
			winner = athleteID(m)
		}
		medal := strings.Join([]string{
			m.String("discipline"), m.String("event"),
			m.String("medal_type"), winner,
		}, "|")
		if _, ok := a.medals[medal]; ok {
			continue
		}
		if a.counts.add(m.String("medal_type")) {
			a.medals[medal] = struct{}{}
		}
	}

	res := output(entity.SportSummary)
	for sport, a := range accs {
		res.Append(table.Row{
			"sport":           sport,
			"num_disciplines": len(a.disciplines),
			"num_events":      len(a.events),
			"num_athletes":    len(a.athletes),
			"gold":            a.counts.gold,
			"silver":          a.counts.silver,
			"bronze":          a.counts.bronze,
			"total_medals":    a.counts.total(),
		})
	}
	sortBy(res.Rows, "sport")
	byTotalDesc(res.Rows, "total_medals", "sport")
	return res, nil
}

func athleteID(m table.Row) string {
	if code := m.String("code_athlete"); code != "" {
		return code
	}
	if name := m.String("name"); name != "" {
		return "name:" + name
	}
	return ""
}

// AthleteMedalsSummary ranks medalling athletes by medal count, then by
// quality score, then by name.
func (e *Enricher) AthleteMedalsSummary(
	medalists, athletes *table.Table,
) (*table.Table, error) {
	if err := require(medalists, "name", "medal_type"); err != nil {
		return nil, err
	}
	if err := require(athletes, "code"); err != nil {
		return nil, err
	}
	athIdx := index(athletes, "code")

	type acc struct {
		first       table.Row
		disciplines []string
		counts      medalCount
	}
	var order []string
	accs := make(map[string]*acc)
	for _, m := range medalists.Rows {
		id := athleteID(m)
		if id == "" {
			continue
		}
		a, ok := accs[id]
		if !ok {
			a = &acc{first: m}
			accs[id] = a
			order = append(order, id)
		}
		if a.counts.add(m.String("medal_type")) {
			if d := m.String("discipline"); d != "" {
				a.disciplines = append(a.disciplines, d)
			}
		}
	}

	res := output(entity.AthleteMedalsSummary)
	for _, id := range order {
		a := accs[id]
		if a.counts.total() == 0 {
			continue
		}
		m := a.first
		code := m.String("code_athlete")
		r := table.Row{
			"athlete_code":        m["code_athlete"],
			"name":                m["name"],
			"country_code":        m["country_code"],
			"country":             m["country"],
			"continent":           m["continent"],
			"gender":              m["gender"],
			"disciplines":         table.NewStringSet(a.disciplines...),
			"age":                 m["age_at_medal"],
			"gold":                a.counts.gold,
			"silver":              a.counts.silver,
			"bronze":              a.counts.bronze,
			"total_medals":        a.counts.total(),
			"medal_quality_score": qualityScore(
				a.counts.gold, a.counts.silver, a.counts.bronze),
		}
		if ath, ok := athIdx[code]; ok {
			if ds, ok := ath.Set("disciplines"); ok && len(ds) > 0 {
				r["disciplines"] = ds
			}
			if !ath.IsNull("age") {
				r["age"] = ath["age"]
			}
		}
		if r.IsNull("continent") {
			r["continent"] = resolver.ContinentOf(m.String("country_code"))
		}
		res.Append(r)
	}

	slices.SortStableFunc(res.Rows, func(a, b table.Row) int {
		for _, c := range []string{"total_medals", "medal_quality_score"} {
			if n := cmp.Compare(b.IntOr(c, 0), a.IntOr(c, 0)); n != 0 {
				return n
			}
		}
		if c := strings.Compare(a.String("name"), b.String("name")); c != 0 {
			return c
		}
		return strings.Compare(a.String("athlete_code"), b.String("athlete_code"))
	})
	for i, r := range res.Rows {
		r["rank"] = i + 1
	}
	return res, nil
}

// GenderDistribution counts athletes per gender overall, per continent,
// per top country and per discipline.
func (e *Enricher) GenderDistribution(
	athletes *table.Table,
) (*table.Table, error) {
	if err := require(athletes, "gender", "country_code"); err != nil {
		return nil, err
	}

	type bucket struct {
		total   int
		genders map[string]int
	}
	cats := map[string]map[string]*bucket{
		CategoryOverall:   {},
		CategoryContinent: {},
		CategoryCountry:   {},
		CategorySport:     {},
	}
	count := func(cat, sub, gender string) {
		b, ok := cats[cat][sub]
		if !ok {
			b = &bucket{genders: make(map[string]int)}
			cats[cat][sub] = b
		}
		b.total++
		b.genders[gender]++
	}

	for _, a := range athletes.Rows {
		g, ok := entity.Gender(a.String("gender"))
		if !ok {
			g = resolver.Unknown
		}
		cc := a.String("country_code")
		cont := a.String("continent")
		if cont == "" {
			cont = resolver.ContinentOf(cc)
		}
		count(CategoryOverall, "All", g)
		count(CategoryContinent, cont, g)
		count(CategoryCountry, orUnknown(cc), g)
		if ds, ok := a.Set("disciplines"); ok {
			for _, d := range ds {
				count(CategorySport, d, g)
			}
		}
	}

	countries := cats[CategoryCountry]
	codes := make([]string, 0, len(countries))
	for cc := range countries {
		codes = append(codes, cc)
	}
	slices.SortFunc(codes, func(a, b string) int {
		if c := cmp.Compare(countries[b].total, countries[a].total); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	if len(codes) > e.topCountries {
		for _, cc := range codes[e.topCountries:] {
			delete(countries, cc)
		}
	}

	res := output(entity.GenderDistribution)
	for _, cat := range []string{
		CategoryOverall, CategoryContinent, CategoryCountry, CategorySport,
	} {
		subs := make([]string, 0, len(cats[cat]))
		for sub := range cats[cat] {
			subs = append(subs, sub)
		}
		slices.Sort(subs)
		for _, sub := range subs {
			b := cats[cat][sub]
			genders := make([]string, 0, len(b.genders))
			for g := range b.genders {
				genders = append(genders, g)
			}
			slices.Sort(genders)
			for _, g := range genders {
				n := b.genders[g]
				res.Append(table.Row{
					"category":          cat,
					"subcategory":       sub,
					"gender":            g,
					"count":             n,
					"total_in_category": b.total,
					"percentage": aggregate.Percent(
						float64(n), float64(b.total), 2),
				})
			}
		}
	}
	return res, nil
}
