package iopipeline

import (
	"github.com/olydash/olydash/pkg/enrich"
	"github.com/olydash/olydash/pkg/entity"
	"github.com/olydash/olydash/pkg/table"
)

// builder produces one derived table from named inputs. Inputs are raw
// entities or other derived tables. A failed optional input is left out
// of the inputSet instead of failing the builder.
type builder struct {
	name     string
	inputs   []string
	optional []string
	build    func(e *enrich.Enricher, in inputSet) (*table.Table, error)
}

// inputSet gives builders read-only access to tables by name.
type inputSet map[string]*table.Table

// builders lists every derived table with its dependencies.
var builders = []builder{
	{
		name: entity.AthletesEnriched,
		inputs: []string{
			entity.Athletes, entity.NOCs, entity.Teams, entity.Coaches,
		},
		optional: []string{entity.Medalists},
		build: func(e *enrich.Enricher, in inputSet) (*table.Table, error) {
			res, err := e.EnrichAthletes(in[entity.Athletes], in[entity.NOCs],
				in[entity.Teams], in[entity.Coaches])
			if err != nil {
				return nil, err
			}
			// without medalists every athlete gets zero medals
			return e.WithMedalTally(res, in[entity.Medalists])
		},
	},
	{
		name:   entity.MedalsEnriched,
		inputs: []string{entity.Medals, entity.NOCs, entity.Athletes},
		build: func(e *enrich.Enricher, in inputSet) (*table.Table, error) {
			return e.EnrichMedals(in[entity.Medals], in[entity.NOCs],
				in[entity.Athletes])
		},
	},
	{
		name:   entity.MedalTotalsEnriched,
		inputs: []string{entity.MedalTotals, entity.NOCs},
		build: func(e *enrich.Enricher, in inputSet) (*table.Table, error) {
			return e.EnrichMedalTotals(in[entity.MedalTotals], in[entity.NOCs])
		},
	},
	{
		name:   entity.EventsEnriched,
		inputs: []string{entity.Events, entity.Schedules, entity.Venues},
		build: func(e *enrich.Enricher, in inputSet) (*table.Table, error) {
			return e.EnrichEvents(in[entity.Events], in[entity.Schedules],
				in[entity.Venues])
		},
	},
	{
		name:   entity.VenuesEnriched,
		inputs: []string{entity.Venues, entity.Schedules},
		build: func(e *enrich.Enricher, in inputSet) (*table.Table, error) {
			return e.EnrichVenues(in[entity.Venues], in[entity.Schedules])
		},
	},
	{
		name:   entity.MedalistsEnriched,
		inputs: []string{entity.Medalists, entity.NOCs, entity.Events},
		build: func(e *enrich.Enricher, in inputSet) (*table.Table, error) {
			return e.EnrichMedalists(in[entity.Medalists], in[entity.NOCs],
				in[entity.Events])
		},
	},
	{
		name:   entity.ContinentSummary,
		inputs: []string{entity.MedalTotalsEnriched},
		build: func(e *enrich.Enricher, in inputSet) (*table.Table, error) {
			return e.ContinentSummary(in[entity.MedalTotalsEnriched])
		},
	},
	{
		name:   entity.SportSummary,
		inputs: []string{entity.MedalistsEnriched, entity.EventsEnriched},
		build: func(e *enrich.Enricher, in inputSet) (*table.Table, error) {
			return e.SportSummary(in[entity.MedalistsEnriched],
				in[entity.EventsEnriched])
		},
	},
	{
		name:   entity.AthleteMedalsSummary,
		inputs: []string{entity.MedalistsEnriched, entity.AthletesEnriched},
		build: func(e *enrich.Enricher, in inputSet) (*table.Table, error) {
			return e.AthleteMedalsSummary(in[entity.MedalistsEnriched],
				in[entity.AthletesEnriched])
		},
	},
	{
		name:   entity.GenderDistribution,
		inputs: []string{entity.AthletesEnriched},
		build: func(e *enrich.Enricher, in inputSet) (*table.Table, error) {
			return e.GenderDistribution(in[entity.AthletesEnriched])
		},
	},
}

// Tables returns names of tables the pipeline builds, in build order.
func Tables() []string {
	res := make([]string, len(builders))
	for i, b := range builders {
		res[i] = b.name
	}
	return res
}
