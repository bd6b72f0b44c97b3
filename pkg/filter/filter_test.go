package filter_test

import (
	"testing"

	"github.com/olydash/olydash/pkg/entity"
	"github.com/olydash/olydash/pkg/filter"
	"github.com/olydash/olydash/pkg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func athletes() *table.Table {
	t := table.New(entity.AthletesEnriched,
		"code", "name", "gender", "country_code", "continent",
		"disciplines", "age")
	t.Append(table.Row{
		"code": "1", "name": "A", "gender": "Male", "country_code": "FRA",
		"continent": "Europe", "age": 22,
		"disciplines": table.NewStringSet("Judo", "Wrestling"),
	})
	t.Append(table.Row{
		"code": "2", "name": "B", "gender": "Female", "country_code": "KEN",
		"continent": "Africa", "age": 30,
		"disciplines": table.NewStringSet("Athletics"),
	})
	t.Append(table.Row{
		"code": "3", "name": "C", "gender": "Female", "country_code": "USA",
		"continent": "North America", "age": nil,
		"disciplines": table.Malformed{Raw: "['Judo"},
	})
	t.Append(table.Row{
		"code": "4", "name": "D", "gender": "Male", "country_code": "EOR",
		"continent": nil, "age": 19,
		"disciplines": table.NewStringSet("Fencing"),
	})
	return t
}

func codes(t *table.Table) []string {
	res := make([]string, 0, t.Len())
	for _, r := range t.Rows {
		res = append(res, r.String("code"))
	}
	return res
}

func TestApplyIdentity(t *testing.T) {
	tbl := athletes()
	res := filter.Apply(tbl, filter.New())
	assert.Same(t, tbl, res)

	res = filter.Apply(tbl, filter.New(filter.OptCountries(" ")))
	assert.Same(t, tbl, res)
}

func TestApply(t *testing.T) {
	tests := []struct {
		msg  string
		spec filter.Spec
		res  []string
	}{
		{"countries", filter.New(filter.OptCountries("fra", "KEN")),
			[]string{"1", "2"}},
		{"continents from column", filter.New(filter.OptContinents("europe")),
			[]string{"1"}},
		{"continent falls back to resolver",
			filter.New(filter.OptContinents("Multiple")), []string{"4"}},
		{"sport in multi-valued set", filter.New(filter.OptSports("Judo")),
			[]string{"1"}},
		{"sport outside set", filter.New(filter.OptSports("Fencing")),
			[]string{"4"}},
		{"sports use OR", filter.New(filter.OptSports("wrestling", "athletics")),
			[]string{"1", "2"}},
		{"gender", filter.New(filter.OptGender("W")), []string{"2", "3"}},
		{"age excludes unknown", filter.New(filter.OptAgeRange(18, 25)),
			[]string{"1", "4"}},
		{"age reversed bounds", filter.New(filter.OptAgeRange(35, 25)),
			[]string{"2"}},
		{"dimensions use AND", filter.New(
			filter.OptGender("Female"), filter.OptCountries("USA", "KEN"),
			filter.OptAgeRange(0, 100)), []string{"2"}},
		{"medal types ignored without column",
			filter.New(filter.OptMedalTypes("Gold")),
			[]string{"1", "2", "3", "4"}},
		{"venue ignored without column", filter.New(filter.OptVenue("Bercy Arena")),
			[]string{"1", "2", "3", "4"}},
		{"empty result", filter.New(filter.OptCountries("JPN")), []string{}},
	}

	for _, v := range tests {
		res := filter.Apply(athletes(), v.spec)
		require.NotNil(t, res, v.msg)
		assert.Equal(t, v.res, codes(res), v.msg)
	}
}

func TestApplyIdempotent(t *testing.T) {
	specs := []filter.Spec{
		filter.New(),
		filter.New(filter.OptSports("Judo", "Athletics")),
		filter.New(filter.OptGender("Male"), filter.OptAgeRange(18, 25)),
		filter.New(filter.OptContinents("Africa", "Europe")),
	}
	for _, s := range specs {
		once := filter.Apply(athletes(), s)
		twice := filter.Apply(once, s)
		assert.Equal(t, once, twice, s.String())
	}
}

func TestApplyDoesNotMutate(t *testing.T) {
	tbl := athletes()
	before := codes(tbl)
	res := filter.Apply(tbl, filter.New(filter.OptCountries("FRA")))
	assert.Equal(t, 1, res.Len())
	assert.Equal(t, before, codes(tbl))
	assert.Equal(t, tbl.Columns, res.Columns)
}

func TestApplyMedals(t *testing.T) {
	tbl := table.New(entity.MedalsEnriched,
		"medal_type", "country_code", "discipline", "gender", "age")
	tbl.Append(table.Row{"medal_type": "Gold", "country_code": "FRA",
		"discipline": "Judo", "gender": "M", "age": 24})
	tbl.Append(table.Row{"medal_type": "Silver Medal", "country_code": "JPN",
		"discipline": "Judo", "gender": "W", "age": 27})
	tbl.Append(table.Row{"medal_type": "Bronze", "country_code": "FRA",
		"discipline": "Fencing", "gender": "X", "age": nil})

	res := filter.Apply(tbl, filter.New(filter.OptMedalTypes("gold", "SILVER")))
	assert.Equal(t, 2, res.Len())

	res = filter.Apply(tbl, filter.New(filter.OptGender("Mixed")))
	require.Equal(t, 1, res.Len())
	assert.Equal(t, "Fencing", res.Rows[0].String("discipline"))

	res = filter.Apply(tbl, filter.New(filter.OptContinents("Asia")))
	require.Equal(t, 1, res.Len())
	assert.Equal(t, "JPN", res.Rows[0].String("country_code"))
}

func TestApplyInvalidValues(t *testing.T) {
	medals := table.New(entity.MedalsEnriched, "medal_type", "country_code")
	medals.Append(table.Row{"medal_type": "Gold", "country_code": "FRA"})
	medals.Append(table.Row{"medal_type": "Bronze", "country_code": "JPN"})

	tests := []struct {
		msg    string
		spec   filter.Spec
		medals int
		rows   []string
	}{
		{"platinum", filter.New(filter.OptMedalTypes("Platinum")),
			0, []string{"1", "2", "3", "4"}},
		{"platinum and gold", filter.New(filter.OptMedalTypes("Platinum", "gold")),
			1, []string{"1", "2", "3", "4"}},
		{"gender", filter.New(filter.OptGender("Other")),
			2, []string{}},
		{"age", filter.New(filter.OptAgeRange(-5, 20)),
			2, []string{}},
		{"fixed later",
			filter.New(filter.OptGender("Other"), filter.OptGender("F")),
			2, []string{"2", "3"}},
		{"cleared", filter.New(filter.OptGender("Other"), filter.OptGender("")),
			2, []string{"1", "2", "3", "4"}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.medals, filter.Apply(medals, tt.spec).Len(), tt.msg)
		assert.Equal(t, tt.rows, codes(filter.Apply(athletes(), tt.spec)),
			tt.msg)
	}

	s := filter.New(filter.OptMedalTypes("Platinum"))
	assert.False(t, s.IsEmpty())
	assert.Empty(t, s.MedalTypes())
	assert.Equal(t, "medals=invalid", s.String())
	assert.Empty(t, filter.New(filter.OptMedalTypes(" ")).Invalid())
}

func TestApplyUnknownTable(t *testing.T) {
	tbl := table.New("custom", "venue", "sport", "noc")
	tbl.Append(table.Row{"venue": "Bercy Arena", "sport": "Basketball", "noc": "USA"})
	tbl.Append(table.Row{"venue": "Grand Palais", "sport": "Fencing", "noc": "FRA"})

	res := filter.Apply(tbl, filter.New(filter.OptVenue("bercy arena")))
	require.Equal(t, 1, res.Len())
	assert.Equal(t, "Basketball", res.Rows[0].String("sport"))

	res = filter.Apply(tbl, filter.New(filter.OptCountries("FRA"),
		filter.OptSports("fencing")))
	require.Equal(t, 1, res.Len())
}

func TestSpec(t *testing.T) {
	s := filter.New(
		filter.OptCountries("usa", "FRA"),
		filter.OptMedalTypes("Gold Medal", "Platinum"),
		filter.OptGender("unknown"),
		filter.OptAgeRange(-1, 20),
	)
	assert.Equal(t, []string{"FRA", "USA"}, s.Countries())
	assert.Equal(t, []string{"Gold"}, s.MedalTypes())
	assert.Equal(t, "", s.Gender())
	_, ok := s.AgeRange()
	assert.False(t, ok)
	assert.Equal(t, []string{filter.DimAge, filter.DimGender}, s.Invalid())
	assert.Equal(t,
		"countries=FRA,USA; medals=Gold; age=invalid; gender=invalid",
		s.String())

	s2 := s.With(filter.OptCountries("KEN"), filter.OptVenue("Invalides"))
	assert.Equal(t, []string{"FRA", "KEN", "USA"}, s2.Countries())
	assert.Equal(t, []string{"FRA", "USA"}, s.Countries())
	assert.Equal(t, "Invalides", s2.Venue())

	assert.True(t, filter.New().IsEmpty())
	assert.Equal(t, "none", filter.New().String())
}
