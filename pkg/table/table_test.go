package table_test

import (
	"testing"
	"time"

	"github.com/olydash/olydash/pkg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStringSet(t *testing.T) {
	tests := []struct {
		msg   string
		input string
		res   table.StringSet
		err   bool
	}{
		{"python list", "['Judo', 'Wrestling']", table.StringSet{"Judo", "Wrestling"}, false},
		{"json list", `["Wrestling","Judo"]`, table.StringSet{"Judo", "Wrestling"}, false},
		{"semicolon", "A1;B2; C3", table.StringSet{"A1", "B2", "C3"}, false},
		{"comma", "Judo, Wrestling", table.StringSet{"Judo", "Wrestling"}, false},
		{"single", "Judo", table.StringSet{"Judo"}, false},
		{"empty", "", table.StringSet{}, false},
		{"empty list", "[]", table.StringSet{}, false},
		{"duplicates", "['Judo', 'Judo']", table.StringSet{"Judo"}, false},
		{"escaped quote", `['Teahupo\'o']`, table.StringSet{"Teahupo'o"}, false},
		{"unterminated quote", "['Judo, 'Wrestling'", nil, true},
		{"missing bracket", "['Judo'", nil, true},
		{"bare item in list", "[Judo]", nil, true},
		{"missing comma", "['Judo' 'Wrestling']", nil, true},
	}

	for _, v := range tests {
		res, err := table.ParseStringSet(v.input)
		if v.err {
			assert.ErrorIs(t, err, table.ErrMalformedSet, v.msg)
			continue
		}
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestStringSetString(t *testing.T) {
	s := table.NewStringSet("Wrestling", "Judo", " ")
	assert.Equal(t, "['Judo', 'Wrestling']", s.String())
	assert.True(t, s.Contains("Judo"))
	assert.False(t, s.Contains("judo"))

	back, err := table.ParseStringSet(s.String())
	require.NoError(t, err)
	assert.Equal(t, s, back)
}

func TestParseAndFormat(t *testing.T) {
	tests := []struct {
		msg  string
		raw  string
		typ  table.Type
		val  any
		text string
	}{
		{"int", "42", table.Int, 42, "42"},
		{"int from float", "42.0", table.Int, 42, "42"},
		{"bad int", "n/a", table.Int, nil, ""},
		{"float", "1.85", table.Float, 1.85, "1.85"},
		{"zero float", "0.0", table.Float, 0.0, "0"},
		{"date", "1993-02-24", table.Time,
			time.Date(1993, 2, 24, 0, 0, 0, 0, time.UTC), "1993-02-24"},
		{"bad date", "someday", table.Time, nil, ""},
		{"set", "['Judo']", table.Set, table.StringSet{"Judo"}, "['Judo']"},
		{"malformed set", "['Judo", table.Set,
			table.Malformed{Raw: "['Judo"}, "['Judo"},
		{"string", " Paris ", table.String, "Paris", "Paris"},
		{"empty", "", table.String, nil, ""},
	}

	for _, v := range tests {
		val := table.Parse(v.raw, v.typ)
		assert.Equal(t, v.val, val, v.msg)
		assert.Equal(t, v.text, table.Format(val), v.msg)
	}
}

func TestFormatTimeWithClock(t *testing.T) {
	loc := time.FixedZone("CEST", 2*3600)
	ts := time.Date(2024, 7, 27, 9, 30, 0, 0, loc)
	s := table.Format(ts)
	assert.Equal(t, "2024-07-27T09:30:00+02:00", s)

	back, err := table.ParseTime(s)
	require.NoError(t, err)
	assert.True(t, ts.Equal(back))
}

func TestRowAccessors(t *testing.T) {
	r := table.Row{
		"name":   "Teddy Riner",
		"age":    35,
		"height": 204.0,
		"disc":   table.StringSet{"Judo"},
		"bad":    table.Malformed{Raw: "['"},
		"noc":    nil,
	}

	assert.Equal(t, "Teddy Riner", r.String("name"))
	assert.Equal(t, "35", r.String("age"))
	assert.Equal(t, "", r.String("noc"))
	assert.True(t, r.IsNull("noc"))
	assert.True(t, r.IsNull("missing"))

	age, ok := r.Int("age")
	assert.True(t, ok)
	assert.Equal(t, 35, age)
	_, ok = r.Int("name")
	assert.False(t, ok)
	assert.Equal(t, 7, r.IntOr("missing", 7))

	h, ok := r.Float("height")
	assert.True(t, ok)
	assert.Equal(t, 204.0, h)

	set, ok := r.Set("disc")
	assert.True(t, ok)
	assert.Equal(t, table.StringSet{"Judo"}, set)
	_, ok = r.Set("bad")
	assert.False(t, ok)
	set, ok = r.Set("name")
	assert.True(t, ok)
	assert.Equal(t, table.StringSet{"Teddy Riner"}, set)
}

func TestTableBasics(t *testing.T) {
	tbl := table.New("nocs", "code", "country")
	tbl.Append(table.Row{"code": "FRA", "country": "France"})
	tbl.Append(table.Row{"code": "KEN", "country": "Kenya"})
	tbl.Append(table.Row{"code": "USA", "country": "United States"})

	assert.Equal(t, 3, tbl.Len())
	assert.True(t, tbl.HasColumn("code"))
	assert.False(t, tbl.HasColumn("continent"))
	assert.NoError(t, tbl.Require("code", "country"))
	assert.Error(t, tbl.Require("code", "continent"))

	sub := tbl.Subset([]int{2, 0})
	assert.Equal(t, 2, sub.Len())
	assert.Equal(t, "USA", sub.Rows[0].String("code"))
	assert.Equal(t, 3, tbl.Len())

	var empty *table.Table
	assert.Equal(t, 0, empty.Len())
	assert.False(t, empty.HasColumn("code"))
}
