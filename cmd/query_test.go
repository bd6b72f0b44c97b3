package cmd

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/gn"
	"github.com/olydash/olydash/internal/iostore"
	"github.com/olydash/olydash/pkg/config"
	"github.com/olydash/olydash/pkg/entity"
	"github.com/olydash/olydash/pkg/errcode"
	"github.com/olydash/olydash/pkg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queryConfig(t *testing.T) *config.Config {
	dir := filepath.Join(t.TempDir(), "derived")
	c := config.New()
	c.Update([]config.Option{
		config.OptDataOutputDir(dir),
		config.OptDataFormat(config.FormatCSV),
	})

	tbl := table.New(entity.MedalTotalsEnriched,
		"country_code", "gold", "silver", "bronze", "total", "continent")
	for _, r := range []table.Row{
		{"country_code": "USA", "gold": 40, "silver": 44, "bronze": 42,
			"total": 126, "continent": "North America"},
		{"country_code": "CHN", "gold": 40, "silver": 27, "bronze": 24,
			"total": 91, "continent": "Asia"},
		{"country_code": "FRA", "gold": 16, "silver": 26, "bronze": 22,
			"total": 64, "continent": "Europe"},
		{"country_code": "GBR", "gold": 14, "silver": 22, "bronze": 29,
			"total": 65, "continent": "Europe"},
	} {
		tbl.Append(r)
	}

	store, err := iostore.Open(context.Background(), c)
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), tbl))
	require.NoError(t, store.Close())
	return c
}

func TestRunQueryFilter(t *testing.T) {
	c := queryConfig(t)
	var buf bytes.Buffer
	qf := queryFlags{continents: []string{"europe"}, output: "csv"}

	err := runQuery(context.Background(), &buf, c, entity.MedalTotalsEnriched, qf)
	require.NoError(t, err)
	assert.Equal(t,
		"country_code,gold,silver,bronze,total,continent\n"+
			"FRA,16,26,22,64,Europe\n"+
			"GBR,14,22,29,65,Europe\n",
		buf.String())
}

func saveMedals(t *testing.T, c *config.Config) {
	tbl := table.New(entity.MedalsEnriched,
		"medal_type", "discipline", "gender", "country_code", "country",
		"country_long")
	for _, r := range []table.Row{
		{"medal_type": "Gold Medal", "discipline": "Judo", "gender": "Male",
			"country_code": "FRA", "country": "France",
			"country_long": "France"},
		{"medal_type": "Gold Medal", "discipline": "Judo", "gender": "Female",
			"country_code": "USA", "country": "United States",
			"country_long": "United States of America"},
		{"medal_type": "Silver Medal", "discipline": "Swimming",
			"gender": "Female", "country_code": "USA",
			"country": "United States",
			"country_long": "United States of America"},
	} {
		tbl.Append(r)
	}

	store, err := iostore.Open(context.Background(), c)
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), tbl))
	require.NoError(t, store.Close())
}

func TestRunQueryTotalsFromMedals(t *testing.T) {
	c := queryConfig(t)
	saveMedals(t, c)

	tests := []struct {
		msg  string
		qf   queryFlags
		rows []string
	}{
		{"sport",
			queryFlags{sports: []string{"judo"}},
			[]string{
				"FRA,France,France,1,0,0,1,Europe,",
				"USA,United States,United States of America,1,0,0,1,North America,",
			}},
		{"medal type",
			queryFlags{medals: []string{"Silver"}},
			[]string{
				"USA,United States,United States of America,0,1,0,1,North America,",
			}},
		{"sport and country",
			queryFlags{sports: []string{"Judo"}, countries: []string{"FRA"}},
			[]string{"FRA,France,France,1,0,0,1,Europe,"}},
		{"sport and gender",
			queryFlags{sports: []string{"Judo"}, gender: "Female"},
			[]string{
				"USA,United States,United States of America,1,0,0,1,North America,",
			}},
		{"no match",
			queryFlags{sports: []string{"Fencing"}},
			nil},
		{"unsupported medal",
			queryFlags{medals: []string{"Platinum"}},
			nil},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		tt.qf.output = "csv"
		err := runQuery(context.Background(), &buf, c,
			entity.MedalTotalsEnriched, tt.qf)
		require.NoError(t, err, tt.msg)

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		assert.True(t, strings.HasPrefix(lines[0], "country_code,country,"), tt.msg)
		require.Len(t, lines, len(tt.rows)+1, tt.msg)
		for i, row := range tt.rows {
			assert.True(t, strings.HasPrefix(lines[i+1], row),
				"%s: %s", tt.msg, lines[i+1])
		}
	}
}

func TestRunQueryTotalsWithoutMedals(t *testing.T) {
	c := queryConfig(t)
	var buf bytes.Buffer
	qf := queryFlags{sports: []string{"Judo"}, output: "csv"}

	err := runQuery(context.Background(), &buf, c, entity.MedalTotalsEnriched, qf)
	require.Error(t, err)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.StoreTableNotFoundError, gnErr.Code)
}

func TestRunQueryGroup(t *testing.T) {
	c := queryConfig(t)
	var buf bytes.Buffer
	qf := queryFlags{
		groupBy:     "continent",
		measure:     "gold",
		aggregation: "sum",
		top:         2,
		output:      "csv",
	}

	err := runQuery(context.Background(), &buf, c, entity.MedalTotalsEnriched, qf)
	require.NoError(t, err)
	assert.Equal(t,
		"continent,sum_gold\nAsia,40\nNorth America,40\n",
		buf.String())
}

func TestRunQueryErrors(t *testing.T) {
	c := queryConfig(t)

	tests := []struct {
		msg  string
		name string
		qf   queryFlags
		code gn.ErrorCode
	}{
		{"unknown table", "podiums", queryFlags{},
			errcode.QueryUnknownTableError},
		{"bad aggregation", entity.MedalTotalsEnriched,
			queryFlags{groupBy: "continent", aggregation: "median"},
			errcode.QueryAggregationError},
		{"bad group column", entity.MedalTotalsEnriched,
			queryFlags{groupBy: "sport", aggregation: "count"},
			errcode.QueryAggregationError},
		{"no measure", entity.MedalTotalsEnriched,
			queryFlags{groupBy: "continent", aggregation: "avg"},
			errcode.QueryAggregationError},
		{"not built", entity.VenuesEnriched, queryFlags{},
			errcode.StoreTableNotFoundError},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		err := runQuery(context.Background(), &buf, c, tt.name, tt.qf)
		require.Error(t, err, tt.msg)
		var gnErr *gn.Error
		require.True(t, errors.As(err, &gnErr), tt.msg)
		assert.Equal(t, tt.code, gnErr.Code, tt.msg)
	}
}

func TestRunQueryEmpty(t *testing.T) {
	c := queryConfig(t)
	var buf bytes.Buffer
	qf := queryFlags{countries: []string{"ZZZ"}, output: "pretty"}

	err := runQuery(context.Background(), &buf, c, entity.MedalTotalsEnriched, qf)
	require.NoError(t, err)
	assert.Equal(t, "(0 rows)\n", buf.String())
}

func TestRender(t *testing.T) {
	tbl := table.New("t", "name", "score", "sports")
	tbl.Append(table.Row{
		"name": "Riner", "score": 1.5,
		"sports": table.NewStringSet("Judo"),
	})
	tbl.Append(table.Row{"name": "Lopez", "score": nil, "sports": nil})

	var buf bytes.Buffer
	require.NoError(t, render(&buf, tbl, "pretty"))
	out := buf.String()
	assert.Contains(t, out, "Riner")
	assert.Contains(t, out, "['Judo']")
	assert.True(t, strings.HasSuffix(out, "(2 rows)\n"))

	buf.Reset()
	require.NoError(t, render(&buf, tbl, "json"))
	out = buf.String()
	assert.Contains(t, out, `"score": 1.5`)
	assert.Contains(t, out, `"sports": null`)
	assert.Contains(t, out, `"Judo"`)
}

func TestParseAgeRange(t *testing.T) {
	tests := []struct {
		in       string
		from, to int
		err      bool
	}{
		{"18-25", 18, 25, false},
		{" 30 - 20 ", 30, 20, false},
		{"21", 21, 21, false},
		{"x-3", 0, 0, true},
		{"", 0, 0, true},
	}
	for _, v := range tests {
		from, to, err := parseAgeRange(v.in)
		if v.err {
			assert.Error(t, err, v.in)
			continue
		}
		require.NoError(t, err, v.in)
		assert.Equal(t, v.from, from, v.in)
		assert.Equal(t, v.to, to, v.in)
	}
}
