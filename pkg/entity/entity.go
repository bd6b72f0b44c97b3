// Package entity documents the column schemas of raw and derived tables.
//
// The loader matches raw columns by name, so every schema lists required
// columns, typed columns and header aliases. Derived schemas fix the
// column order of enrichment outputs and tell the stores how to decode
// persisted files.
package entity

import (
	"slices"

	"github.com/olydash/olydash/pkg/table"
)

// Raw entity names.
const (
	Athletes    = "athletes"
	Medals      = "medals"
	MedalTotals = "medal_totals"
	Medalists   = "medalists"
	Events      = "events"
	NOCs        = "nocs"
	Schedules   = "schedules"
	Teams       = "teams"
	Coaches     = "coaches"
	Venues      = "venues"
)

// Derived table names.
const (
	AthletesEnriched     = "athletes_enriched"
	MedalsEnriched       = "medals_enriched"
	MedalTotalsEnriched  = "medal_totals_enriched"
	EventsEnriched       = "events_enriched"
	VenuesEnriched       = "venues_enriched"
	MedalistsEnriched    = "medalists_enriched"
	ContinentSummary     = "continent_summary"
	SportSummary         = "sport_summary"
	AthleteMedalsSummary = "athlete_medals_summary"
	GenderDistribution   = "gender_distribution"
	AthleteImages        = "athlete_images"
)

// Column describes one typed column.
type Column struct {
	Name string
	Type table.Type
}

// Roles names the columns the filter engine uses for each dimension.
// An empty role means the table has no such dimension.
type Roles struct {
	Country   string
	Continent string
	// Sports lists every sport-like column. A row matches the sports
	// dimension when any of them matches.
	Sports    []string
	MedalType string
	Gender    string
	Age       string
	Venue     string
}

// Schema describes a table.
type Schema struct {
	// Name of the entity or derived table.
	Name string

	// Files are candidate file names of a raw entity, first found wins.
	Files []string

	// Required columns must be present after alias resolution.
	Required []string

	// Columns lists typed columns. For derived tables it also fixes the
	// output order. Raw columns not listed here are kept as strings.
	Columns []Column

	// Aliases map normalized header names to canonical column names.
	Aliases map[string]string

	// Key columns identify a row for deduplication and row ids. An empty
	// key means the whole row is the key.
	Key []string

	// Roles used by the filter engine.
	Roles Roles
}

// TypeOf returns the declared type of a column, String by default.
func (s Schema) TypeOf(col string) table.Type {
	for _, c := range s.Columns {
		if c.Name == col {
			return c.Type
		}
	}
	return table.String
}

// ColumnNames returns declared column names in order.
func (s Schema) ColumnNames() []string {
	res := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		res[i] = c.Name
	}
	return res
}

// Raw returns the schema of a raw entity.
func Raw(name string) (Schema, bool) {
	s, ok := rawSchemas[name]
	return s, ok
}

// RawNames returns raw entity names in load order.
func RawNames() []string {
	return slices.Clone(rawOrder)
}

// Derived returns the schema of a derived table.
func Derived(name string) (Schema, bool) {
	s, ok := derivedSchemas[name]
	return s, ok
}

// DerivedNames returns derived table names in a fixed order.
func DerivedNames() []string {
	return slices.Clone(derivedOrder)
}

// RolesOf returns filter roles for a known table name.
func RolesOf(name string) (Roles, bool) {
	if s, ok := derivedSchemas[name]; ok {
		return s.Roles, true
	}
	if s, ok := rawSchemas[name]; ok {
		return s.Roles, true
	}
	return Roles{}, false
}
