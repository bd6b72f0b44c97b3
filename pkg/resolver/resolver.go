// Package resolver maps NOC codes to continents and ISO-3 country codes.
//
// The lookup data is compiled in and never modified, so the package is
// safe for concurrent use without synchronization. Unknown codes are not
// errors: they resolve to the Unknown marker so callers can report or
// exclude them.
package resolver

import (
	"maps"
	"slices"
	"strings"
)

// Unknown marks a code that could not be resolved.
const Unknown = "Unknown"

// Continent names.
const (
	Africa       = "Africa"
	Asia         = "Asia"
	Europe       = "Europe"
	NorthAmerica = "North America"
	SouthAmerica = "South America"
	Oceania      = "Oceania"
	// Multiple is used for delegations that gather athletes from many
	// countries, such as the Refugee Olympic Team.
	Multiple = "Multiple"
)

// Record holds geographic metadata of a NOC.
type Record struct {
	Continent string
	ISO3      string
}

// Coordinates of a venue.
type Coordinates struct {
	Lat, Lon float64
}

// ParisCentre is used when a venue has no known coordinates.
var ParisCentre = Coordinates{48.8566, 2.3522}

// Lookup returns the record of a NOC code.
func Lookup(code string) (Record, bool) {
	r, ok := roster[normalize(code)]
	return r, ok
}

// ContinentOf returns the continent of a NOC code or Unknown.
func ContinentOf(code string) string {
	if r, ok := Lookup(code); ok {
		return r.Continent
	}
	return Unknown
}

// ISO3Of returns the ISO 3166-1 alpha-3 code of a NOC code or Unknown.
func ISO3Of(code string) string {
	if r, ok := Lookup(code); ok {
		return r.ISO3
	}
	return Unknown
}

// Codes returns all known NOC codes sorted.
func Codes() []string {
	return slices.Sorted(maps.Keys(roster))
}

// Continents returns continent names in display order.
func Continents() []string {
	return []string{
		Africa, Asia, Europe, NorthAmerica, SouthAmerica, Oceania, Multiple,
	}
}

// VenueCoordinates returns known coordinates of a venue by name.
func VenueCoordinates(venue string) (Coordinates, bool) {
	c, ok := venues[strings.TrimSpace(venue)]
	return c, ok
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
