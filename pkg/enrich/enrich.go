// Package enrich joins raw entity tables and derives analysis-ready
// tables.
//
// Builders are pure functions of their inputs: they never modify input
// tables and produce identical output for identical input. A builder
// returns an error only when an input misses a required column; missing
// references (unknown NOC, athlete without a coach) are resolved to
// explicit markers instead.
package enrich

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/olydash/olydash/pkg/entity"
	"github.com/olydash/olydash/pkg/resolver"
	"github.com/olydash/olydash/pkg/table"
)

// ErrSchema is wrapped by errors about inputs with missing columns.
var ErrSchema = errors.New("schema mismatch")

// NoCoach marks athletes without a direct or team-linked coach.
const NoCoach = "none"

// Coach sources.
const (
	CoachDirect = "direct"
	CoachTeam   = "team"
	CoachNone   = "none"
)

// DefaultGamesDate is the opening ceremony of Paris 2024. Athlete ages
// are computed at this date.
var DefaultGamesDate = time.Date(2024, 7, 26, 0, 0, 0, 0, time.UTC)

// DefaultTopCountries limits the Country category of the gender
// distribution.
const DefaultTopCountries = 30

// Enricher builds derived tables.
type Enricher struct {
	gamesDate    time.Time
	topCountries int
}

// Option configures an Enricher.
type Option func(*Enricher)

// OptGamesDate sets the reference date for athlete ages.
func OptGamesDate(t time.Time) Option {
	return func(e *Enricher) {
		if !t.IsZero() {
			e.gamesDate = t
		}
	}
}

// OptTopCountries sets how many countries the gender distribution
// reports.
func OptTopCountries(n int) Option {
	return func(e *Enricher) {
		if n > 0 {
			e.topCountries = n
		}
	}
}

// New creates an Enricher.
func New(opts ...Option) *Enricher {
	res := &Enricher{
		gamesDate:    DefaultGamesDate,
		topCountries: DefaultTopCountries,
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// GamesDate returns the reference date for ages.
func (e *Enricher) GamesDate() time.Time {
	return e.gamesDate
}

func require(t *table.Table, cols ...string) error {
	if t == nil {
		return fmt.Errorf("%w: input table is missing", ErrSchema)
	}
	if err := t.Require(cols...); err != nil {
		return fmt.Errorf("%w: %w", ErrSchema, err)
	}
	return nil
}

// output creates an empty derived table with columns in schema order,
// leaving out the skipped columns.
func output(name string, skip ...string) *table.Table {
	s, _ := entity.Derived(name)
	var cols []string
	for _, c := range s.ColumnNames() {
		if !slices.Contains(skip, c) {
			cols = append(cols, c)
		}
	}
	return table.New(name, cols...)
}

// project copies declared columns from a source row. Columns the source
// does not have become nil.
func project(src table.Row, cols []string) table.Row {
	res := make(table.Row, len(cols))
	for _, c := range cols {
		res[c] = src[c]
	}
	return res
}

// index maps a key column to the first row having it.
func index(t *table.Table, col string) map[string]table.Row {
	res := make(map[string]table.Row, t.Len())
	if t == nil {
		return res
	}
	for _, r := range t.Rows {
		k := r.String(col)
		if k == "" {
			continue
		}
		if _, ok := res[k]; !ok {
			res[k] = r
		}
	}
	return res
}

// geo sets continent and iso3 of a row from its country code.
func geo(r table.Row, code string) {
	r["continent"] = resolver.ContinentOf(code)
	r["iso3"] = resolver.ISO3Of(code)
}

// fillCountry fills missing display names from the NOC table.
func fillCountry(r table.Row, nocs map[string]table.Row, code string) {
	noc, ok := nocs[code]
	if !ok {
		return
	}
	if r.IsNull("country") {
		r["country"] = noc["country"]
	}
	if r.IsNull("country_long") {
		if !noc.IsNull("country_long") {
			r["country_long"] = noc["country_long"]
		} else {
			r["country_long"] = noc["country"]
		}
	}
}

// ageAt returns full-day age in years rounded half to even, the way
// the dashboards computed it.
func ageAt(birth, ref time.Time) (int, bool) {
	if birth.IsZero() || ref.IsZero() || birth.After(ref) {
		return 0, false
	}
	days := math.Floor(ref.Sub(birth).Hours() / 24)
	return int(math.RoundToEven(days / 365.25)), true
}

func ageValue(birth any, ref time.Time) any {
	b, ok := birth.(time.Time)
	if !ok {
		return nil
	}
	if age, ok := ageAt(b, ref); ok {
		return age
	}
	return nil
}

// medalRank canonicalizes the medal type and sets medal_rank.
func medalRank(r table.Row, medalType string) string {
	mt, ok := entity.MedalType(medalType)
	if ok {
		r["medal_type"] = mt
	}
	if rank := entity.MedalRank(mt); rank > 0 {
		r["medal_rank"] = rank
	} else {
		r["medal_rank"] = nil
	}
	return mt
}

// medalFlags is medalRank plus the is_gold, is_silver and is_bronze
// indicators.
func medalFlags(r table.Row, medalType string) {
	mt := medalRank(r, medalType)
	r["is_gold"] = boolInt(mt == entity.Gold)
	r["is_silver"] = boolInt(mt == entity.Silver)
	r["is_bronze"] = boolInt(mt == entity.Bronze)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return resolver.Unknown
	}
	return s
}

func sortBy(rows []table.Row, cols ...string) {
	slices.SortStableFunc(rows, func(a, b table.Row) int {
		for _, c := range cols {
			if res := strings.Compare(a.String(c), b.String(c)); res != 0 {
				return res
			}
		}
		return 0
	})
}

func lowerKey(parts ...string) string {
	for i := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(parts[i]))
	}
	return strings.Join(parts, "|")
}
