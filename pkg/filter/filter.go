package filter

import (
	"strings"

	"github.com/olydash/olydash/pkg/entity"
	"github.com/olydash/olydash/pkg/resolver"
	"github.com/olydash/olydash/pkg/table"
)

type predicate func(table.Row) bool

// Apply returns the rows of t that satisfy every active constraint of s.
// An empty Spec returns t itself. Malformed multi-valued cells and unknown
// values never match an active constraint. A dimension given only
// unsupported values, such as medal type "Platinum", matches no row of a
// table that has its column.
func Apply(t *table.Table, s Spec) *table.Table {
	if t == nil || s.IsEmpty() {
		return t
	}
	return ApplyWithRoles(t, s, RolesFor(t))
}

// ApplyWithRoles is Apply with explicit column roles, for tables that are
// not described in the entity package.
func ApplyWithRoles(
	t *table.Table,
	s Spec,
	roles entity.Roles,
) *table.Table {
	if t == nil || s.IsEmpty() {
		return t
	}
	preds := s.predicates(t, roles)

	idx := make([]int, 0, len(t.Rows))
	for i, r := range t.Rows {
		if matchAll(r, preds) {
			idx = append(idx, i)
		}
	}
	return t.Subset(idx)
}

// RolesFor returns filter roles of a table. Known tables use their entity
// schema; others get roles guessed from common column names.
func RolesFor(t *table.Table) entity.Roles {
	if r, ok := entity.RolesOf(t.Name); ok {
		return r
	}
	var res entity.Roles
	res.Country = firstColumn(t, "country_code", "noc")
	res.Continent = firstColumn(t, "continent")
	for _, c := range []string{"sport", "discipline", "disciplines", "sports"} {
		if t.HasColumn(c) {
			res.Sports = append(res.Sports, c)
		}
	}
	res.MedalType = firstColumn(t, "medal_type")
	res.Gender = firstColumn(t, "gender")
	res.Age = firstColumn(t, "age", "age_at_medal")
	res.Venue = firstColumn(t, "venue")
	return res
}

func (s Spec) predicates(t *table.Table, roles entity.Roles) []predicate {
	var res []predicate
	has := func(col string) bool {
		return col != "" && t.HasColumn(col)
	}

	if len(s.countries) > 0 && has(roles.Country) {
		col := roles.Country
		res = append(res, func(r table.Row) bool {
			_, ok := s.countries[strings.ToUpper(r.String(col))]
			return ok
		})
	}

	if len(s.continents) > 0 {
		contCol, countryCol := "", ""
		if has(roles.Continent) {
			contCol = roles.Continent
		}
		if has(roles.Country) {
			countryCol = roles.Country
		}
		if contCol != "" || countryCol != "" {
			res = append(res, func(r table.Row) bool {
				c := continentOf(r, contCol, countryCol)
				_, ok := s.continents[strings.ToLower(c)]
				return ok
			})
		}
	}

	if len(s.sports) > 0 {
		var cols []string
		for _, c := range roles.Sports {
			if has(c) {
				cols = append(cols, c)
			}
		}
		if len(cols) > 0 {
			res = append(res, func(r table.Row) bool {
				for _, c := range cols {
					if matchSport(r[c], s.sports) {
						return true
					}
				}
				return false
			})
		}
	}

	// an invalid dimension has no values, so its predicate matches nothing
	if (len(s.medalTypes) > 0 || s.isInvalid(DimMedals)) &&
		has(roles.MedalType) {
		col := roles.MedalType
		res = append(res, func(r table.Row) bool {
			mt, ok := entity.MedalType(r.String(col))
			if !ok {
				return false
			}
			_, ok = s.medalTypes[mt]
			return ok
		})
	}

	if (s.gender != "" || s.isInvalid(DimGender)) && has(roles.Gender) {
		col := roles.Gender
		res = append(res, func(r table.Row) bool {
			g, ok := entity.Gender(r.String(col))
			return ok && g == s.gender
		})
	}

	if s.isInvalid(DimAge) && has(roles.Age) {
		res = append(res, func(table.Row) bool { return false })
	}

	if s.ageRange != nil && has(roles.Age) {
		col := roles.Age
		lo, hi := float64(s.ageRange.Min), float64(s.ageRange.Max)
		res = append(res, func(r table.Row) bool {
			age, ok := r.Float(col)
			return ok && age >= lo && age <= hi
		})
	}

	if s.venue != "" && has(roles.Venue) {
		col := roles.Venue
		res = append(res, func(r table.Row) bool {
			return strings.EqualFold(strings.TrimSpace(r.String(col)), s.venue)
		})
	}

	return res
}

func continentOf(r table.Row, contCol, countryCol string) string {
	if contCol != "" {
		if c := r.String(contCol); c != "" {
			return c
		}
	}
	if countryCol != "" {
		return resolver.ContinentOf(r.String(countryCol))
	}
	return resolver.Unknown
}

func matchSport(v any, sports map[string]struct{}) bool {
	switch v := v.(type) {
	case string:
		_, ok := sports[strings.ToLower(strings.TrimSpace(v))]
		return ok
	case table.StringSet:
		return v.Intersects(sports)
	default:
		return false
	}
}

func matchAll(r table.Row, preds []predicate) bool {
	for _, p := range preds {
		if !p(r) {
			return false
		}
	}
	return true
}

func firstColumn(t *table.Table, cols ...string) string {
	for _, c := range cols {
		if t.HasColumn(c) {
			return c
		}
	}
	return ""
}
