package enrich

import (
	"github.com/olydash/olydash/pkg/entity"
	"github.com/olydash/olydash/pkg/table"
)

// EnrichMedalists adds geography, the sport of the event, age at the
// medal date and the medal rank. Row count and order are preserved.
func (e *Enricher) EnrichMedalists(
	medalists, nocs, events *table.Table,
) (*table.Table, error) {
	err := require(medalists, "medal_type", "country_code", "event", "discipline")
	if err != nil {
		return nil, err
	}
	if err = require(nocs, "code", "country"); err != nil {
		return nil, err
	}
	if err = require(events, "event", "sport"); err != nil {
		return nil, err
	}

	nocIdx := index(nocs, "code")
	bySport := make(map[string]table.Row)
	byEvent := make(map[string]table.Row)
	for _, ev := range events.Rows {
		name := ev.String("event")
		if k := lowerKey(name, ev.String("sport")); bySport[k] == nil {
			bySport[k] = ev
		}
		if k := lowerKey(name); byEvent[k] == nil {
			byEvent[k] = ev
		}
	}

	res := output(entity.MedalistsEnriched)
	for _, m := range medalists.Rows {
		r := project(m, res.Columns)
		cc := m.String("country_code")
		geo(r, cc)
		fillCountry(r, nocIdx, cc)

		name, discipline := m.String("event"), m.String("discipline")
		ev, ok := bySport[lowerKey(name, discipline)]
		if !ok {
			ev, ok = byEvent[lowerKey(name)]
		}
		if ok {
			r["sport"] = ev["sport"]
			r["sport_code"] = ev["sport_code"]
		} else if discipline != "" {
			r["sport"] = discipline
		}

		ref := e.gamesDate
		if d, ok := m.Time("medal_date"); ok {
			ref = d
		}
		r["age_at_medal"] = ageValue(m["birth_date"], ref)
		medalRank(r, m.String("medal_type"))
		res.Append(r)
	}
	return res, nil
}
