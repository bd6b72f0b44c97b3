package aggregate_test

import (
	"testing"

	"github.com/olydash/olydash/pkg/aggregate"
	"github.com/olydash/olydash/pkg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func medals() *table.Table {
	t := table.New("medals", "country_code", "medal_type", "age", "disciplines")
	rows := []table.Row{
		{"country_code": "USA", "medal_type": "Gold", "age": 24,
			"disciplines": table.NewStringSet("Swimming")},
		{"country_code": "USA", "medal_type": "Silver", "age": 30,
			"disciplines": table.NewStringSet("Swimming", "Diving")},
		{"country_code": "FRA", "medal_type": "Gold", "age": nil,
			"disciplines": table.NewStringSet("Judo")},
		{"country_code": "KEN", "medal_type": "Bronze", "age": "n/a",
			"disciplines": table.Malformed{Raw: "["}},
		{"country_code": nil, "medal_type": "Gold", "age": 18,
			"disciplines": table.NewStringSet("Judo")},
	}
	for _, r := range rows {
		t.Append(r)
	}
	return t
}

func TestMeasures(t *testing.T) {
	tbl := medals()
	assert.Equal(t, 5, aggregate.Count(tbl))
	assert.Equal(t, 72.0, aggregate.Sum(tbl, "age"))

	mean, ok := aggregate.Mean(tbl, "age")
	assert.True(t, ok)
	assert.Equal(t, 24.0, mean)

	mx, ok := aggregate.Max(tbl, "age")
	assert.True(t, ok)
	assert.Equal(t, 30.0, mx)
	mn, ok := aggregate.Min(tbl, "age")
	assert.True(t, ok)
	assert.Equal(t, 18.0, mn)

	assert.Equal(t, 3, aggregate.CountDistinct(tbl, "country_code"))
	assert.Equal(t, 3, aggregate.CountDistinct(tbl, "disciplines"))
}

func TestEmptyTable(t *testing.T) {
	empty := table.New("medals", "age")
	assert.Equal(t, 0, aggregate.Count(empty))
	assert.Equal(t, 0.0, aggregate.Sum(empty, "age"))
	_, ok := aggregate.Mean(empty, "age")
	assert.False(t, ok)
	_, ok = aggregate.Max(nil, "age")
	assert.False(t, ok)
	assert.Empty(t, aggregate.CountBy(empty, "age"))
	assert.Equal(t, 0, aggregate.CountDistinct(nil, "age"))
}

func TestCountBy(t *testing.T) {
	res := aggregate.CountBy(medals(), "medal_type")
	require.Len(t, res, 3)
	assert.Equal(t, "Gold", res[0].Key)
	assert.Equal(t, 3.0, res[0].Value)
	assert.Equal(t, "Bronze", res[1].Key)
	assert.Equal(t, "Silver", res[2].Key)

	res = aggregate.CountBy(medals(), "country_code")
	require.Len(t, res, 4)
	assert.Equal(t, "USA", res[0].Key)
	assert.Equal(t, aggregate.Unknown, res[3].Key)

	res = aggregate.CountBy(medals(), "disciplines")
	assert.Equal(t, "Judo=2, Swimming=2, Diving=1, Unknown=1",
		aggregate.Describe(res))
}

func TestSumByTopN(t *testing.T) {
	res := aggregate.SumBy(medals(), "country_code", "age")
	require.Len(t, res, 4)
	assert.Equal(t, "USA", res[0].Key)
	assert.Equal(t, 54.0, res[0].Value)

	top := aggregate.TopN(res, 2)
	assert.Len(t, top, 2)
	assert.Len(t, aggregate.TopN(res, 0), 4)

	avg := aggregate.GroupAndAggregate(medals(), "country_code", "age",
		aggregate.AggAvg, 1)
	require.Len(t, avg, 1)
	assert.Equal(t, "USA", avg[0].Key)
	assert.Equal(t, 27.0, avg[0].Value)

	tbl := aggregate.ToTable("top", "country_code", "age", top)
	assert.Equal(t, []string{"country_code", "age"}, tbl.Columns)
	assert.Equal(t, 54, tbl.Rows[0]["age"])
}

func TestRounding(t *testing.T) {
	assert.Equal(t, 0.556, aggregate.Ratio(10, 18, 3))
	assert.Equal(t, 0.294, aggregate.Ratio(5, 17, 3))
	assert.Equal(t, 0.0, aggregate.Ratio(5, 0, 3))
	assert.Equal(t, 33.33, aggregate.Percent(1, 3, 2))
	assert.Equal(t, 0.0, aggregate.Percent(1, 0, 2))
}
