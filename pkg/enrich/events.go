package enrich

import (
	"math"
	"time"

	"github.com/olydash/olydash/pkg/aggregate"
	"github.com/olydash/olydash/pkg/entity"
	"github.com/olydash/olydash/pkg/resolver"
	"github.com/olydash/olydash/pkg/table"
)

// Coordinate sources of enriched venues.
const (
	CoordinatesData    = "data"
	CoordinatesLookup  = "lookup"
	CoordinatesDefault = "default"
)

var scheduleColumns = []string{
	"discipline", "phase", "gender", "status", "venue",
	"start_date", "end_date",
}

// EnrichEvents attaches the earliest schedule entry and venue metadata
// to every event. Events without a schedule keep nil timing.
func (e *Enricher) EnrichEvents(
	events, schedules, venues *table.Table,
) (*table.Table, error) {
	if err := require(events, "event", "sport"); err != nil {
		return nil, err
	}
	if err := require(schedules, "event", "start_date"); err != nil {
		return nil, err
	}
	if err := require(venues, "venue"); err != nil {
		return nil, err
	}

	bySport, byEvent := earliestSchedules(schedules)
	venueIdx := index(venues, "venue")

	res := output(entity.EventsEnriched)
	for _, ev := range events.Rows {
		r := project(ev, res.Columns)
		name := ev.String("event")

		s, ok := bySport[lowerKey(name, ev.String("sport"))]
		if !ok {
			s, ok = byEvent[lowerKey(name)]
		}
		if ok {
			for _, c := range scheduleColumns {
				r[c] = s[c]
			}
			timing(r)
		}

		if venue := r.String("venue"); venue != "" {
			v, known := venueIdx[venue]
			if !known {
				v = table.Row{"venue": venue}
			}
			c, _ := coordinates(v)
			r["latitude"], r["longitude"] = c.Lat, c.Lon
			r["venue_date_start"] = v["date_start"]
			r["venue_date_end"] = v["date_end"]
		}
		res.Append(r)
	}
	sortBy(res.Rows, "sport", "event")
	return res, nil
}

// earliestSchedules indexes the earliest schedule row per event, keyed
// by event and discipline and by event alone.
func earliestSchedules(
	schedules *table.Table,
) (bySport, byEvent map[string]table.Row) {
	bySport = make(map[string]table.Row)
	byEvent = make(map[string]table.Row)
	keep := func(idx map[string]table.Row, k string, r table.Row) {
		old, ok := idx[k]
		if !ok || earlier(r, old) {
			idx[k] = r
		}
	}
	for _, s := range schedules.Rows {
		name := s.String("event")
		if name == "" {
			continue
		}
		keep(bySport, lowerKey(name, s.String("discipline")), s)
		keep(byEvent, lowerKey(name), s)
	}
	return bySport, byEvent
}

// earlier reports if a starts before b. Unknown starts come last.
func earlier(a, b table.Row) bool {
	ta, okA := a.Time("start_date")
	tb, okB := b.Time("start_date")
	switch {
	case !okA:
		return false
	case !okB:
		return true
	default:
		return ta.Before(tb)
	}
}

func timing(r table.Row) {
	start, ok := r.Time("start_date")
	if !ok {
		return
	}
	r["day_of_week"] = start.Weekday().String()
	r["start_day"] = start.Day()
	r["start_month"] = int(start.Month())
	r["start_hour"] = start.Hour()
	if end, ok := r.Time("end_date"); ok && !end.Before(start) {
		r["duration_hours"] = aggregate.Round(end.Sub(start).Hours(), 2)
	}
}

// EnrichVenues resolves venue coordinates and adds event counts and the
// inclusive span in days.
func (e *Enricher) EnrichVenues(
	venues, schedules *table.Table,
) (*table.Table, error) {
	if err := require(venues, "venue"); err != nil {
		return nil, err
	}
	if err := require(schedules, "venue", "event"); err != nil {
		return nil, err
	}

	events := make(map[string]map[string]struct{})
	for _, s := range schedules.Rows {
		venue := s.String("venue")
		if venue == "" {
			continue
		}
		if _, ok := events[venue]; !ok {
			events[venue] = make(map[string]struct{})
		}
		events[venue][lowerKey(s.String("discipline"), s.String("event"))] =
			struct{}{}
	}

	res := output(entity.VenuesEnriched)
	for _, v := range venues.Rows {
		r := project(v, res.Columns)
		c, src := coordinates(v)
		r["latitude"], r["longitude"] = c.Lat, c.Lon
		r["coordinates_source"] = src
		r["event_count"] = len(events[v.String("venue")])
		r["duration_days"] = spanDays(v)
		res.Append(r)
	}
	sortBy(res.Rows, "venue")
	return res, nil
}

// coordinates returns the position of a venue from its own data, the
// compiled-in venue list, or the Paris centre.
func coordinates(v table.Row) (resolver.Coordinates, string) {
	lat, okLat := v.Float("latitude")
	lon, okLon := v.Float("longitude")
	if okLat && okLon && !math.IsNaN(lat) && !math.IsNaN(lon) {
		return resolver.Coordinates{Lat: lat, Lon: lon}, CoordinatesData
	}
	if c, ok := resolver.VenueCoordinates(v.String("venue")); ok {
		return c, CoordinatesLookup
	}
	return resolver.ParisCentre, CoordinatesDefault
}

func spanDays(v table.Row) any {
	start, okS := v.Time("date_start")
	end, okE := v.Time("date_end")
	if !okS || !okE || end.Before(start) {
		return nil
	}
	day := func(t time.Time) time.Time {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	return int(day(end).Sub(day(start)).Hours()/24) + 1
}
