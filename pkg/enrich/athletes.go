package enrich

import (
	"strings"

	"github.com/olydash/olydash/pkg/entity"
	"github.com/olydash/olydash/pkg/table"
)

var tallyColumns = []string{"gold", "silver", "bronze", "total_medals"}

// teamLink is the team an athlete belongs to.
type teamLink struct {
	name    string
	coaches table.StringSet
}

// EnrichAthletes joins athletes with NOCs, teams and coaches. Medal
// tally columns are added later by WithMedalTally.
func (e *Enricher) EnrichAthletes(
	athletes, nocs, teams, coaches *table.Table,
) (*table.Table, error) {
	if err := require(athletes, "code", "name", "country_code"); err != nil {
		return nil, err
	}
	if err := require(nocs, "code", "country"); err != nil {
		return nil, err
	}
	if err := require(teams, "code", "team"); err != nil {
		return nil, err
	}
	if err := require(coaches, "code", "name"); err != nil {
		return nil, err
	}

	nocIdx := index(nocs, "code")
	links := teamLinks(teams, coaches)

	res := output(entity.AthletesEnriched, tallyColumns...)
	for _, a := range athletes.Rows {
		r := project(a, res.Columns)
		code := a.String("code")
		cc := a.String("country_code")

		geo(r, cc)
		fillCountry(r, nocIdx, cc)
		r["age"] = ageValue(a["birth_date"], e.gamesDate)

		link, hasTeam := links[code]
		if hasTeam {
			r["team_name"] = link.name
			if len(link.coaches) > 0 {
				r["team_coaches"] = link.coaches
			}
		}

		switch coach := strings.TrimSpace(a.String("coach")); {
		case coach != "":
			r["all_coaches"] = coach
			r["coach_source"] = CoachDirect
		case hasTeam && len(link.coaches) > 0:
			r["all_coaches"] = strings.Join(link.coaches, ", ")
			r["coach_source"] = CoachTeam
		default:
			r["all_coaches"] = NoCoach
			r["coach_source"] = CoachNone
		}
		res.Append(r)
	}
	sortBy(res.Rows, "code")
	return res, nil
}

// teamLinks maps athlete codes to the first team listing them.
func teamLinks(teams, coaches *table.Table) map[string]teamLink {
	coachNames := make(map[string]string, coaches.Len())
	for _, c := range coaches.Rows {
		code, name := c.String("code"), c.String("name")
		if code != "" && name != "" {
			if _, ok := coachNames[code]; !ok {
				coachNames[code] = name
			}
		}
	}

	res := make(map[string]teamLink)
	for _, t := range teams.Rows {
		members, ok := t.Set("athletes_codes")
		if !ok || len(members) == 0 {
			continue
		}
		link := teamLink{name: t.String("team")}

		var names []string
		if codes, ok := t.Set("coaches_codes"); ok {
			for _, c := range codes {
				if n, ok := coachNames[c]; ok {
					names = append(names, n)
				}
			}
		}
		if len(names) == 0 {
			if cs, ok := t.Set("coaches"); ok {
				names = cs
			}
		}
		link.coaches = table.NewStringSet(names...)

		for _, m := range members {
			if _, ok := res[m]; !ok {
				res[m] = link
			}
		}
	}
	return res
}

// WithMedalTally adds per-athlete medal counts from the medalists table.
// Athletes without medals get zeros. A nil medalists table gives zeros to
// every athlete.
func (e *Enricher) WithMedalTally(
	athletes, medalists *table.Table,
) (*table.Table, error) {
	if err := require(athletes, "code"); err != nil {
		return nil, err
	}
	if medalists == nil {
		medalists = table.New(entity.Medalists, "code_athlete", "medal_type")
	}
	if err := require(medalists, "code_athlete", "medal_type"); err != nil {
		return nil, err
	}

	type tally struct{ gold, silver, bronze int }
	counts := make(map[string]*tally)
	for _, m := range medalists.Rows {
		code := m.String("code_athlete")
		mt, ok := entity.MedalType(m.String("medal_type"))
		if code == "" || !ok {
			continue
		}
		c, ok := counts[code]
		if !ok {
			c = &tally{}
			counts[code] = c
		}
		switch mt {
		case entity.Gold:
			c.gold++
		case entity.Silver:
			c.silver++
		case entity.Bronze:
			c.bronze++
		}
	}

	res := table.New(athletes.Name, athletes.Columns...)
	for _, c := range tallyColumns {
		if !res.HasColumn(c) {
			res.Columns = append(res.Columns, c)
		}
	}
	for _, a := range athletes.Rows {
		r := a.Copy()
		var t tally
		if c, ok := counts[a.String("code")]; ok {
			t = *c
		}
		r["gold"] = t.gold
		r["silver"] = t.silver
		r["bronze"] = t.bronze
		r["total_medals"] = t.gold + t.silver + t.bronze
		res.Append(r)
	}
	return res, nil
}
