package entity

import "github.com/olydash/olydash/pkg/table"

var rawOrder = []string{
	NOCs, Athletes, Coaches, Teams, Events, Schedules, Venues,
	Medals, Medalists, MedalTotals,
}

var rawSchemas = map[string]Schema{
	Athletes: {
		Name:     Athletes,
		Files:    []string{"athletes.csv"},
		Required: []string{"code", "name", "gender", "country_code"},
		Columns: []Column{
			{"birth_date", table.Time},
			{"height", table.Float},
			{"weight", table.Float},
			{"disciplines", table.Set},
			{"events", table.Set},
		},
		Aliases: map[string]string{"noc": "country_code"},
		Key:     []string{"code"},
		Roles: Roles{
			Country: "country_code",
			Sports:  []string{"disciplines"},
			Gender:  "gender",
		},
	},
	Medals: {
		Name:  Medals,
		Files: []string{"medals.csv"},
		Required: []string{
			"medal_type", "name", "country_code", "discipline", "event",
		},
		Columns: []Column{
			{"medal_date", table.Time},
			{"medal_code", table.Int},
		},
		Aliases: map[string]string{"noc": "country_code"},
		Roles: Roles{
			Country:   "country_code",
			Sports:    []string{"discipline"},
			MedalType: "medal_type",
			Gender:    "gender",
		},
	},
	MedalTotals: {
		Name:     MedalTotals,
		Files:    []string{"medals_total.csv", "medal_totals.csv"},
		Required: []string{"country_code", "gold", "silver", "bronze"},
		Columns: []Column{
			{"gold", table.Int},
			{"silver", table.Int},
			{"bronze", table.Int},
			{"total", table.Int},
		},
		Aliases: map[string]string{
			"gold_medal":   "gold",
			"silver_medal": "silver",
			"bronze_medal": "bronze",
			"noc":          "country_code",
		},
		Key:   []string{"country_code"},
		Roles: Roles{Country: "country_code"},
	},
	Medalists: {
		Name:  Medalists,
		Files: []string{"medallists.csv", "medalists.csv"},
		Required: []string{
			"medal_type", "name", "country_code", "discipline", "event",
		},
		Columns: []Column{
			{"medal_date", table.Time},
			{"birth_date", table.Time},
			{"medal_code", table.Int},
		},
		Aliases: map[string]string{"noc": "country_code"},
		Roles: Roles{
			Country:   "country_code",
			Sports:    []string{"discipline"},
			MedalType: "medal_type",
			Gender:    "gender",
		},
	},
	Events: {
		Name:     Events,
		Files:    []string{"events.csv"},
		Required: []string{"event", "sport"},
		Key:      []string{"event", "sport"},
		Roles:    Roles{Sports: []string{"sport"}},
	},
	NOCs: {
		Name:     NOCs,
		Files:    []string{"nocs.csv"},
		Required: []string{"code", "country"},
		Key:      []string{"code"},
		Roles:    Roles{Country: "code"},
	},
	Schedules: {
		Name:     Schedules,
		Files:    []string{"schedules.csv", "schedule.csv"},
		Required: []string{"start_date", "discipline", "event", "venue"},
		Columns: []Column{
			{"start_date", table.Time},
			{"end_date", table.Time},
		},
		Roles: Roles{
			Sports: []string{"discipline"},
			Gender: "gender",
			Venue:  "venue",
		},
	},
	Teams: {
		Name:     Teams,
		Files:    []string{"teams.csv"},
		Required: []string{"code", "team", "country_code"},
		Columns: []Column{
			{"athletes", table.Set},
			{"coaches", table.Set},
			{"athletes_codes", table.Set},
			{"coaches_codes", table.Set},
			{"num_athletes", table.Int},
			{"num_coaches", table.Int},
		},
		Aliases: map[string]string{"noc": "country_code"},
		Key:     []string{"code"},
		Roles: Roles{
			Country: "country_code",
			Sports:  []string{"discipline"},
			Gender:  "team_gender",
		},
	},
	Coaches: {
		Name:     Coaches,
		Files:    []string{"coaches.csv"},
		Required: []string{"code", "name", "country_code"},
		Columns: []Column{
			{"birth_date", table.Time},
			{"disciplines", table.Set},
			{"events", table.Set},
		},
		Aliases: map[string]string{"noc": "country_code"},
		Key:     []string{"code"},
		Roles: Roles{
			Country: "country_code",
			Sports:  []string{"disciplines"},
			Gender:  "gender",
		},
	},
	Venues: {
		Name:     Venues,
		Files:    []string{"venues.csv"},
		Required: []string{"venue"},
		Columns: []Column{
			{"sports", table.Set},
			{"date_start", table.Time},
			{"date_end", table.Time},
			{"latitude", table.Float},
			{"longitude", table.Float},
		},
		Key: []string{"venue"},
		Roles: Roles{
			Sports: []string{"sports"},
			Venue:  "venue",
		},
	},
}

var derivedOrder = []string{
	AthletesEnriched, MedalsEnriched, MedalTotalsEnriched, EventsEnriched,
	VenuesEnriched, MedalistsEnriched, ContinentSummary, SportSummary,
	AthleteMedalsSummary, GenderDistribution, AthleteImages,
}

var derivedSchemas = map[string]Schema{
	AthletesEnriched: {
		Name: AthletesEnriched,
		Columns: []Column{
			{"code", table.String},
			{"name", table.String},
			{"name_short", table.String},
			{"gender", table.String},
			{"function", table.String},
			{"country_code", table.String},
			{"country", table.String},
			{"country_long", table.String},
			{"nationality_code", table.String},
			{"height", table.Float},
			{"weight", table.Float},
			{"disciplines", table.Set},
			{"events", table.Set},
			{"birth_date", table.Time},
			{"birth_place", table.String},
			{"birth_country", table.String},
			{"coach", table.String},
			{"continent", table.String},
			{"iso3", table.String},
			{"age", table.Int},
			{"team_name", table.String},
			{"team_coaches", table.Set},
			{"all_coaches", table.String},
			{"coach_source", table.String},
			{"gold", table.Int},
			{"silver", table.Int},
			{"bronze", table.Int},
			{"total_medals", table.Int},
		},
		Key: []string{"code"},
		Roles: Roles{
			Country:   "country_code",
			Continent: "continent",
			Sports:    []string{"disciplines"},
			Gender:    "gender",
			Age:       "age",
		},
	},
	MedalsEnriched: {
		Name: MedalsEnriched,
		Columns: []Column{
			{"medal_type", table.String},
			{"medal_code", table.Int},
			{"medal_date", table.Time},
			{"name", table.String},
			{"gender", table.String},
			{"discipline", table.String},
			{"event", table.String},
			{"event_type", table.String},
			{"code", table.String},
			{"country_code", table.String},
			{"country", table.String},
			{"country_long", table.String},
			{"continent", table.String},
			{"iso3", table.String},
			{"age", table.Int},
			{"height", table.Float},
			{"weight", table.Float},
			{"birth_place", table.String},
			{"medal_rank", table.Int},
			{"is_gold", table.Int},
			{"is_silver", table.Int},
			{"is_bronze", table.Int},
		},
		Roles: Roles{
			Country:   "country_code",
			Continent: "continent",
			Sports:    []string{"discipline"},
			MedalType: "medal_type",
			Gender:    "gender",
			Age:       "age",
		},
	},
	MedalTotalsEnriched: {
		Name: MedalTotalsEnriched,
		Columns: []Column{
			{"country_code", table.String},
			{"country", table.String},
			{"country_long", table.String},
			{"gold", table.Int},
			{"silver", table.Int},
			{"bronze", table.Int},
			{"total", table.Int},
			{"continent", table.String},
			{"iso3", table.String},
			{"gold_ratio", table.Float},
			{"silver_ratio", table.Float},
			{"bronze_ratio", table.Float},
			{"medal_quality_score", table.Int},
			{"rank", table.Int},
			{"rank_by_gold", table.Int},
			{"rank_by_quality", table.Int},
		},
		Key: []string{"country_code"},
		Roles: Roles{
			Country:   "country_code",
			Continent: "continent",
		},
	},
	EventsEnriched: {
		Name: EventsEnriched,
		Columns: []Column{
			{"event", table.String},
			{"tag", table.String},
			{"sport", table.String},
			{"sport_code", table.String},
			{"sport_url", table.String},
			{"discipline", table.String},
			{"phase", table.String},
			{"gender", table.String},
			{"status", table.String},
			{"venue", table.String},
			{"start_date", table.Time},
			{"end_date", table.Time},
			{"day_of_week", table.String},
			{"duration_hours", table.Float},
			{"start_day", table.Int},
			{"start_month", table.Int},
			{"start_hour", table.Int},
			{"latitude", table.Float},
			{"longitude", table.Float},
			{"venue_date_start", table.Time},
			{"venue_date_end", table.Time},
		},
		Key: []string{"event", "sport"},
		Roles: Roles{
			Sports: []string{"sport", "discipline"},
			Gender: "gender",
			Venue:  "venue",
		},
	},
	VenuesEnriched: {
		Name: VenuesEnriched,
		Columns: []Column{
			{"venue", table.String},
			{"sports", table.Set},
			{"tag", table.String},
			{"url", table.String},
			{"date_start", table.Time},
			{"date_end", table.Time},
			{"latitude", table.Float},
			{"longitude", table.Float},
			{"coordinates_source", table.String},
			{"event_count", table.Int},
			{"duration_days", table.Int},
		},
		Key: []string{"venue"},
		Roles: Roles{
			Sports: []string{"sports"},
			Venue:  "venue",
		},
	},
	MedalistsEnriched: {
		Name: MedalistsEnriched,
		Columns: []Column{
			{"medal_date", table.Time},
			{"medal_type", table.String},
			{"medal_code", table.Int},
			{"name", table.String},
			{"gender", table.String},
			{"country_code", table.String},
			{"country", table.String},
			{"country_long", table.String},
			{"team", table.String},
			{"team_gender", table.String},
			{"discipline", table.String},
			{"event", table.String},
			{"event_type", table.String},
			{"birth_date", table.Time},
			{"code_athlete", table.String},
			{"code_team", table.String},
			{"continent", table.String},
			{"iso3", table.String},
			{"sport", table.String},
			{"sport_code", table.String},
			{"age_at_medal", table.Int},
			{"medal_rank", table.Int},
		},
		Roles: Roles{
			Country:   "country_code",
			Continent: "continent",
			Sports:    []string{"sport", "discipline"},
			MedalType: "medal_type",
			Gender:    "gender",
			Age:       "age_at_medal",
		},
	},
	ContinentSummary: {
		Name: ContinentSummary,
		Columns: []Column{
			{"continent", table.String},
			{"gold", table.Int},
			{"silver", table.Int},
			{"bronze", table.Int},
			{"total", table.Int},
			{"num_countries", table.Int},
			{"gold_ratio", table.Float},
			{"avg_medals_per_country", table.Float},
		},
		Key:   []string{"continent"},
		Roles: Roles{Continent: "continent"},
	},
	SportSummary: {
		Name: SportSummary,
		Columns: []Column{
			{"sport", table.String},
			{"num_disciplines", table.Int},
			{"num_events", table.Int},
			{"num_athletes", table.Int},
			{"gold", table.Int},
			{"silver", table.Int},
			{"bronze", table.Int},
			{"total_medals", table.Int},
		},
		Key:   []string{"sport"},
		Roles: Roles{Sports: []string{"sport"}},
	},
	AthleteMedalsSummary: {
		Name: AthleteMedalsSummary,
		Columns: []Column{
			{"rank", table.Int},
			{"athlete_code", table.String},
			{"name", table.String},
			{"country_code", table.String},
			{"country", table.String},
			{"continent", table.String},
			{"gender", table.String},
			{"disciplines", table.Set},
			{"age", table.Int},
			{"gold", table.Int},
			{"silver", table.Int},
			{"bronze", table.Int},
			{"total_medals", table.Int},
			{"medal_quality_score", table.Int},
		},
		Key: []string{"athlete_code", "name"},
		Roles: Roles{
			Country:   "country_code",
			Continent: "continent",
			Sports:    []string{"disciplines"},
			Gender:    "gender",
			Age:       "age",
		},
	},
	GenderDistribution: {
		Name: GenderDistribution,
		Columns: []Column{
			{"category", table.String},
			{"subcategory", table.String},
			{"gender", table.String},
			{"count", table.Int},
			{"total_in_category", table.Int},
			{"percentage", table.Float},
		},
		Key:   []string{"category", "subcategory", "gender"},
		Roles: Roles{Gender: "gender"},
	},
	AthleteImages: {
		Name: AthleteImages,
		Columns: []Column{
			{"code", table.String},
			{"name", table.String},
			{"image_url", table.String},
			{"source", table.String},
		},
		Key: []string{"code"},
	},
}
