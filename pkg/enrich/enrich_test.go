package enrich_test

import (
	"testing"
	"time"

	"github.com/olydash/olydash/pkg/enrich"
	"github.com/olydash/olydash/pkg/entity"
	"github.com/olydash/olydash/pkg/resolver"
	"github.com/olydash/olydash/pkg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func build(name string, cols []string, rows ...table.Row) *table.Table {
	res := table.New(name, cols...)
	for _, r := range rows {
		res.Append(r)
	}
	return res
}

func nocs() *table.Table {
	return build(entity.NOCs, []string{"code", "country", "country_long"},
		table.Row{"code": "USA", "country": "United States",
			"country_long": "United States of America"},
		table.Row{"code": "FRA", "country": "France", "country_long": "France"},
		table.Row{"code": "KEN", "country": "Kenya", "country_long": nil},
	)
}

func athletes() *table.Table {
	return build(entity.Athletes,
		[]string{"code", "name", "gender", "country_code", "country",
			"birth_date", "disciplines", "coach"},
		table.Row{"code": "3", "name": "Runner C", "gender": "Female",
			"country_code": "USA", "birth_date": date(1999, 1, 1),
			"disciplines": table.NewStringSet("Athletics")},
		table.Row{"code": "1", "name": "Judoka A", "gender": "Male",
			"country_code": "FRA", "birth_date": date(2000, 7, 26),
			"disciplines": table.NewStringSet("Judo"), "coach": "DUPONT Jean"},
		table.Row{"code": "2", "name": "Runner B", "gender": "Female",
			"country_code": "KEN", "birth_date": nil,
			"disciplines": table.NewStringSet("Athletics")},
	)
}

func teams() *table.Table {
	return build(entity.Teams,
		[]string{"code", "team", "country_code", "athletes_codes",
			"coaches_codes", "coaches"},
		table.Row{"code": "T1", "team": "Kenya Relay", "country_code": "KEN",
			"athletes_codes": table.NewStringSet("2", "4"),
			"coaches_codes":  table.NewStringSet("C1", "C9"),
			"coaches":        table.NewStringSet("Ignored Name")},
	)
}

func coaches() *table.Table {
	return build(entity.Coaches, []string{"code", "name", "country_code"},
		table.Row{"code": "C1", "name": "KIPRONO Paul", "country_code": "KEN"},
	)
}

func totals() *table.Table {
	return build(entity.MedalTotals,
		[]string{"country_code", "country", "gold", "silver", "bronze", "total"},
		table.Row{"country_code": "KEN", "country": "Kenya",
			"gold": 1, "silver": 1, "bronze": 0, "total": 2},
		table.Row{"country_code": "USA", "country": "United States",
			"gold": 10, "silver": 5, "bronze": 3, "total": 99},
		table.Row{"country_code": "FRA", "country": "France",
			"gold": 5, "silver": 6, "bronze": 6, "total": 17},
	)
}

func medalists() *table.Table {
	return build(entity.Medalists,
		[]string{"medal_date", "medal_type", "name", "gender", "country_code",
			"discipline", "event", "code_athlete", "code_team", "birth_date"},
		table.Row{"medal_date": date(2024, 7, 30), "medal_type": "Gold",
			"name": "Judoka A", "gender": "Male", "country_code": "FRA",
			"discipline": "Judo", "event": "Men -73 kg", "code_athlete": "1",
			"birth_date": date(2000, 7, 26)},
		table.Row{"medal_date": date(2024, 8, 10), "medal_type": "Silver Medal",
			"name": "Runner B", "gender": "Female", "country_code": "KEN",
			"discipline": "Athletics", "event": "4 x 400m Relay Mixed",
			"code_athlete": "2", "code_team": "T1"},
		table.Row{"medal_date": date(2024, 8, 10), "medal_type": "Silver",
			"name": "Runner D", "gender": "Male", "country_code": "KEN",
			"discipline": "Athletics", "event": "4 x 400m Relay Mixed",
			"code_athlete": "4", "code_team": "T1"},
	)
}

func events() *table.Table {
	return build(entity.Events, []string{"event", "sport", "sport_code"},
		table.Row{"event": "Men -73 kg", "sport": "Judo", "sport_code": "JUD"},
		table.Row{"event": "4 x 400m Relay Mixed", "sport": "Athletics",
			"sport_code": "ATH"},
	)
}

func schedules() *table.Table {
	clock := func(d, h, m int) time.Time {
		return time.Date(2024, 7, d, h, m, 0, 0, time.UTC)
	}
	return build(entity.Schedules,
		[]string{"start_date", "end_date", "discipline", "event", "venue",
			"phase", "gender", "status"},
		table.Row{"start_date": clock(30, 10, 0), "end_date": clock(30, 11, 30),
			"discipline": "Judo", "event": "Men -73 kg",
			"venue": "Champ de Mars Arena", "phase": "Final", "gender": "M"},
		table.Row{"start_date": clock(29, 9, 0), "end_date": clock(29, 12, 30),
			"discipline": "Judo", "event": "Men -73 kg",
			"venue": "Champ de Mars Arena", "phase": "Round 1", "gender": "M"},
		table.Row{"start_date": clock(29, 9, 0), "end_date": nil,
			"discipline": "Wrestling", "event": "Men 74 kg",
			"venue": "Champ de Mars Arena"},
	)
}

func venues() *table.Table {
	return build(entity.Venues,
		[]string{"venue", "sports", "date_start", "date_end",
			"latitude", "longitude"},
		table.Row{"venue": "Stade de France",
			"sports": table.NewStringSet("Athletics", "Rugby Sevens"),
			"date_start": date(2024, 8, 1), "date_end": date(2024, 8, 11),
			"latitude": 48.9, "longitude": 2.4},
		table.Row{"venue": "Champ de Mars Arena",
			"sports":     table.NewStringSet("Judo", "Wrestling"),
			"date_start": date(2024, 7, 27), "date_end": date(2024, 8, 11)},
		table.Row{"venue": "Mystery Hall"},
	)
}

func TestEnrichMedalTotals(t *testing.T) {
	e := enrich.New()
	res, err := e.EnrichMedalTotals(totals(), nocs())
	require.Nil(t, err)
	require.Equal(t, 3, res.Len())
	s, _ := entity.Derived(entity.MedalTotalsEnriched)
	assert.Equal(t, s.ColumnNames(), res.Columns)

	tests := []struct {
		code     string
		rank     int
		total    int
		ratio    float64
		quality  int
		cont     string
		iso3     string
		longName string
	}{
		{"USA", 1, 18, 0.556, 43, resolver.NorthAmerica, "USA",
			"United States of America"},
		{"FRA", 2, 17, 0.294, 33, resolver.Europe, "FRA", "France"},
		{"KEN", 3, 2, 0.5, 5, resolver.Africa, "KEN", "Kenya"},
	}
	for i, v := range tests {
		r := res.Rows[i]
		assert.Equal(t, v.code, r.String("country_code"))
		assert.Equal(t, v.rank, r["rank"], v.code)
		assert.Equal(t, v.total, r["total"], v.code)
		assert.Equal(t, v.ratio, r["gold_ratio"], v.code)
		assert.Equal(t, v.quality, r["medal_quality_score"], v.code)
		assert.Equal(t, v.cont, r["continent"], v.code)
		assert.Equal(t, v.iso3, r["iso3"], v.code)
		assert.Equal(t, v.longName, r["country_long"], v.code)
		assert.Equal(t, r.IntOr("total", -1),
			r.IntOr("gold", 0)+r.IntOr("silver", 0)+r.IntOr("bronze", 0))
	}
	assert.Equal(t, 2, res.Rows[1]["rank_by_gold"])
	assert.Equal(t, 1, res.Rows[0]["rank_by_quality"])
}

func TestDenseRankTies(t *testing.T) {
	tbl := build(entity.MedalTotals,
		[]string{"country_code", "gold", "silver", "bronze"},
		table.Row{"country_code": "BBB", "gold": 1, "silver": 0, "bronze": 0},
		table.Row{"country_code": "AAA", "gold": 1, "silver": 0, "bronze": 0},
		table.Row{"country_code": "CCC", "gold": 0, "silver": 1, "bronze": 0},
		table.Row{"country_code": "DDD", "gold": 0, "silver": 0, "bronze": 0},
	)
	res, err := enrich.New().EnrichMedalTotals(tbl, nocs())
	require.Nil(t, err)
	var codes []string
	var ranks []any
	for _, r := range res.Rows {
		codes = append(codes, r.String("country_code"))
		ranks = append(ranks, r["rank"])
	}
	assert.Equal(t, []string{"AAA", "BBB", "CCC", "DDD"}, codes)
	assert.Equal(t, []any{1, 1, 2, 3}, ranks)
	assert.Equal(t, 0.0, res.Rows[3]["gold_ratio"])
	assert.Equal(t, resolver.Unknown, res.Rows[0]["continent"])
}

func TestEnrichAthletes(t *testing.T) {
	e := enrich.New()
	res, err := e.EnrichAthletes(athletes(), nocs(), teams(), coaches())
	require.Nil(t, err)
	require.Equal(t, 3, res.Len())
	assert.NotContains(t, res.Columns, "total_medals")

	byCode := make(map[string]table.Row)
	for _, r := range res.Rows {
		byCode[r.String("code")] = r
	}
	assert.Equal(t, "1", res.Rows[0].String("code"))

	a := byCode["1"]
	assert.Equal(t, "DUPONT Jean", a["all_coaches"])
	assert.Equal(t, enrich.CoachDirect, a["coach_source"])
	assert.Equal(t, 24, a["age"])
	assert.Equal(t, resolver.Europe, a["continent"])
	assert.Equal(t, "France", a["country"])

	b := byCode["2"]
	assert.Equal(t, "KIPRONO Paul", b["all_coaches"])
	assert.Equal(t, enrich.CoachTeam, b["coach_source"])
	assert.Equal(t, "Kenya Relay", b["team_name"])
	assert.Equal(t, table.NewStringSet("KIPRONO Paul"), b["team_coaches"])
	assert.Nil(t, b["age"])
	assert.Equal(t, "Kenya", b["country_long"])

	c := byCode["3"]
	assert.Equal(t, enrich.NoCoach, c["all_coaches"])
	assert.Equal(t, enrich.CoachNone, c["coach_source"])
	assert.Nil(t, c["team_name"])
	assert.Equal(t, 26, c["age"])

	tallied, err := e.WithMedalTally(res, medalists())
	require.Nil(t, err)
	s, _ := entity.Derived(entity.AthletesEnriched)
	assert.Equal(t, s.ColumnNames(), tallied.Columns)
	assert.Equal(t, 1, tallied.Rows[0]["gold"])
	assert.Equal(t, 1, tallied.Rows[1]["silver"])
	assert.Equal(t, 0, tallied.Rows[2]["total_medals"])
	assert.Nil(t, res.Rows[0]["gold"], "input must stay untouched")
}

func TestWithMedalTallyNoMedalists(t *testing.T) {
	e := enrich.New()
	res, err := e.EnrichAthletes(athletes(), nocs(), teams(), coaches())
	require.Nil(t, err)

	tallied, err := e.WithMedalTally(res, nil)
	require.Nil(t, err)
	require.Equal(t, 3, tallied.Len())
	for _, r := range tallied.Rows {
		assert.Equal(t, 0, r["gold"])
		assert.Equal(t, 0, r["total_medals"])
	}
}

func TestTeamCoachNamesFallback(t *testing.T) {
	tm := teams()
	tm.Rows[0]["coaches_codes"] = nil
	res, err := enrich.New().EnrichAthletes(athletes(), nocs(), tm, coaches())
	require.Nil(t, err)
	assert.Equal(t, "Ignored Name", res.Rows[1]["all_coaches"])
	assert.Equal(t, enrich.CoachTeam, res.Rows[1]["coach_source"])
}

func TestEnrichMedals(t *testing.T) {
	medals := build(entity.Medals,
		[]string{"medal_type", "name", "country_code", "discipline", "event",
			"code"},
		table.Row{"medal_type": "Gold", "name": "Judoka A",
			"country_code": "FRA", "discipline": "Judo", "event": "Men -73 kg",
			"code": "1"},
		table.Row{"medal_type": "Bronze", "name": "Someone",
			"country_code": "XYZ", "discipline": "Judo", "event": "Men -73 kg",
			"code": "999"},
	)
	ath, err := enrich.New().EnrichAthletes(
		athletes(), nocs(), teams(), coaches())
	require.Nil(t, err)

	res, err := enrich.New().EnrichMedals(medals, nocs(), ath)
	require.Nil(t, err)
	require.Equal(t, 2, res.Len())

	gold := res.Rows[0]
	assert.Equal(t, 24, gold["age"])
	assert.Equal(t, 1, gold["medal_rank"])
	assert.Equal(t, 1, gold["is_gold"])
	assert.Equal(t, 0, gold["is_bronze"])
	assert.Equal(t, resolver.Europe, gold["continent"])

	bronze := res.Rows[1]
	assert.Equal(t, resolver.Unknown, bronze["continent"])
	assert.Equal(t, resolver.Unknown, bronze["iso3"])
	assert.Nil(t, bronze["age"])
	assert.Equal(t, 3, bronze["medal_rank"])
}

func TestMedalTotalsFromMedals(t *testing.T) {
	e := enrich.New()
	res, err := e.MedalTotalsFromMedals(medalists())
	require.Nil(t, err)
	require.Equal(t, 2, res.Len())
	assert.Equal(t, "FRA", res.Rows[0]["country_code"])
	assert.Equal(t, 1, res.Rows[0]["gold"])
	assert.Equal(t, 2, res.Rows[1]["silver"])
	assert.Equal(t, 2, res.Rows[1]["total"])

	enriched, err := e.EnrichMedalTotals(res, nocs())
	require.Nil(t, err)
	assert.Equal(t, "KEN", enriched.Rows[0]["country_code"])
}

func TestEnrichEvents(t *testing.T) {
	res, err := enrich.New().EnrichEvents(events(), schedules(), venues())
	require.Nil(t, err)
	require.Equal(t, 2, res.Len())

	relay := res.Rows[0]
	assert.Equal(t, "Athletics", relay["sport"])
	assert.Nil(t, relay["start_date"])
	assert.Nil(t, relay["latitude"])

	judo := res.Rows[1]
	assert.Equal(t, "Round 1", judo["phase"])
	assert.Equal(t, "Monday", judo["day_of_week"])
	assert.Equal(t, 3.5, judo["duration_hours"])
	assert.Equal(t, 9, judo["start_hour"])
	assert.Equal(t, 29, judo["start_day"])
	assert.Equal(t, 7, judo["start_month"])
	assert.Equal(t, 48.8556, judo["latitude"])
	assert.Equal(t, date(2024, 7, 27), judo["venue_date_start"])
}

func TestEnrichVenues(t *testing.T) {
	res, err := enrich.New().EnrichVenues(venues(), schedules())
	require.Nil(t, err)
	require.Equal(t, 3, res.Len())

	tests := []struct {
		venue    string
		source   string
		lat      float64
		events   int
		duration any
	}{
		{"Champ de Mars Arena", enrich.CoordinatesLookup, 48.8556, 2, 16},
		{"Mystery Hall", enrich.CoordinatesDefault, resolver.ParisCentre.Lat,
			0, nil},
		{"Stade de France", enrich.CoordinatesData, 48.9, 0, 11},
	}
	for i, v := range tests {
		r := res.Rows[i]
		assert.Equal(t, v.venue, r["venue"])
		assert.Equal(t, v.source, r["coordinates_source"], v.venue)
		assert.Equal(t, v.lat, r["latitude"], v.venue)
		assert.Equal(t, v.events, r["event_count"], v.venue)
		assert.Equal(t, v.duration, r["duration_days"], v.venue)
	}
}

func TestEnrichMedalists(t *testing.T) {
	res, err := enrich.New().EnrichMedalists(medalists(), nocs(), events())
	require.Nil(t, err)
	require.Equal(t, 3, res.Len())
	assert.Equal(t, "Judo", res.Rows[0]["sport"])
	assert.Equal(t, "JUD", res.Rows[0]["sport_code"])
	assert.Equal(t, 24, res.Rows[0]["age_at_medal"])
	assert.Equal(t, entity.Silver, res.Rows[1]["medal_type"])
	assert.Equal(t, 2, res.Rows[1]["medal_rank"])
	assert.Nil(t, res.Rows[1]["age_at_medal"])
	assert.NotContains(t, res.Rows[0], "is_gold")
}

func TestSummaries(t *testing.T) {
	e := enrich.New()
	mt, err := e.EnrichMedalTotals(totals(), nocs())
	require.Nil(t, err)
	cs, err := e.ContinentSummary(mt)
	require.Nil(t, err)
	require.Equal(t, 3, cs.Len())
	assert.Equal(t, resolver.NorthAmerica, cs.Rows[0]["continent"])
	assert.Equal(t, 18, cs.Rows[0]["total"])
	assert.Equal(t, 18.0, cs.Rows[0]["avg_medals_per_country"])
	assert.Equal(t, 0.5, cs.Rows[2]["gold_ratio"])

	med, err := e.EnrichMedalists(medalists(), nocs(), events())
	require.Nil(t, err)
	ev, err := e.EnrichEvents(events(), schedules(), venues())
	require.Nil(t, err)

	ss, err := e.SportSummary(med, ev)
	require.Nil(t, err)
	require.Equal(t, 2, ss.Len())
	assert.Equal(t, "Athletics", ss.Rows[0]["sport"])
	assert.Equal(t, 1, ss.Rows[0]["total_medals"], "team medal counts once")
	assert.Equal(t, 2, ss.Rows[0]["num_athletes"])
	assert.Equal(t, 1, ss.Rows[1]["gold"])

	ath, err := e.EnrichAthletes(athletes(), nocs(), teams(), coaches())
	require.Nil(t, err)
	as, err := e.AthleteMedalsSummary(med, ath)
	require.Nil(t, err)
	require.Equal(t, 3, as.Len())
	assert.Equal(t, "Judoka A", as.Rows[0]["name"])
	assert.Equal(t, 1, as.Rows[0]["rank"])
	assert.Equal(t, 3, as.Rows[0]["medal_quality_score"])
	assert.Equal(t, 24, as.Rows[0]["age"])
	assert.Equal(t, "Runner B", as.Rows[1]["name"])
	assert.Equal(t, 3, as.Rows[2]["rank"])
}

func TestGenderDistribution(t *testing.T) {
	e := enrich.New(enrich.OptTopCountries(2))
	ath, err := e.EnrichAthletes(athletes(), nocs(), teams(), coaches())
	require.Nil(t, err)
	res, err := e.GenderDistribution(ath)
	require.Nil(t, err)

	find := func(cat, sub, gender string) table.Row {
		for _, r := range res.Rows {
			if r["category"] == cat && r["subcategory"] == sub &&
				r["gender"] == gender {
				return r
			}
		}
		return nil
	}
	female := find(enrich.CategoryOverall, "All", entity.Female)
	require.NotNil(t, female)
	assert.Equal(t, 2, female["count"])
	assert.Equal(t, 3, female["total_in_category"])
	assert.Equal(t, 66.67, female["percentage"])

	assert.NotNil(t, find(enrich.CategoryCountry, "FRA", entity.Male))
	assert.NotNil(t, find(enrich.CategoryCountry, "KEN", entity.Female))
	assert.Nil(t, find(enrich.CategoryCountry, "USA", entity.Female))

	athl := find(enrich.CategorySport, "Athletics", entity.Female)
	require.NotNil(t, athl)
	assert.Equal(t, 100.0, athl["percentage"])
	assert.Equal(t, enrich.CategoryOverall, res.Rows[0]["category"])
}

func TestSchemaErrors(t *testing.T) {
	e := enrich.New()
	bad := table.New(entity.Athletes, "code", "name")
	_, err := e.EnrichAthletes(bad, nocs(), teams(), coaches())
	assert.ErrorIs(t, err, enrich.ErrSchema)
	assert.Contains(t, err.Error(), "country_code")

	_, err = e.EnrichMedalTotals(table.New(entity.MedalTotals, "gold"), nocs())
	assert.ErrorIs(t, err, enrich.ErrSchema)

	_, err = e.ContinentSummary(nil)
	assert.ErrorIs(t, err, enrich.ErrSchema)
}

func TestDeterministic(t *testing.T) {
	run := func() []*table.Table {
		e := enrich.New(enrich.OptGamesDate(enrich.DefaultGamesDate))
		ath, err := e.EnrichAthletes(athletes(), nocs(), teams(), coaches())
		require.Nil(t, err)
		med, err := e.EnrichMedalists(medalists(), nocs(), events())
		require.Nil(t, err)
		ev, err := e.EnrichEvents(events(), schedules(), venues())
		require.Nil(t, err)
		ss, err := e.SportSummary(med, ev)
		require.Nil(t, err)
		gd, err := e.GenderDistribution(ath)
		require.Nil(t, err)
		vn, err := e.EnrichVenues(venues(), schedules())
		require.Nil(t, err)
		return []*table.Table{ath, med, ev, ss, gd, vn}
	}
	assert.Equal(t, run(), run())
}
