// Package filter narrows tables by countries, continents, sports, medals,
// gender, age and venue.
//
// A Spec is built once with New and functional options, then passed to
// Apply for every table that has to be narrowed. Dimensions combine with
// AND, values inside a dimension combine with OR. A dimension that the
// target table has no column for is ignored for that table.
//
// Unsupported values are dropped with a warning. A medal, gender or age
// dimension left with no supported value is kept as invalid and matches
// no row, so a typo never widens the result to the whole table.
//
// Apply is pure: it never modifies its input and allocates a new table
// per call, so it can run concurrently from many goroutines.
package filter

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
	"github.com/olydash/olydash/pkg/entity"
)

// AgeRange is an inclusive age interval.
type AgeRange struct {
	Min, Max int
}

// Dimensions that validate their values.
const (
	DimMedals = "medals"
	DimGender = "gender"
	DimAge    = "age"
)

// Spec is an immutable set of filter constraints. The zero value has no
// constraints.
type Spec struct {
	countries  map[string]struct{}
	continents map[string]struct{}
	sports     map[string]struct{}
	medalTypes map[string]struct{}
	gender     string
	ageRange   *AgeRange
	venue      string

	// invalid dimensions got only unsupported values
	invalid map[string]struct{}
}

// Option sets one dimension of a Spec.
type Option func(*Spec)

// New creates a Spec from options. Invalid values are ignored with a
// warning.
func New(opts ...Option) Spec {
	var res Spec
	for _, opt := range opts {
		opt(&res)
	}
	return res
}

// With returns a copy of the Spec with more options applied. The receiver
// is not modified.
func (s Spec) With(opts ...Option) Spec {
	res := s.clone()
	for _, opt := range opts {
		opt(&res)
	}
	return res
}

// OptCountries restricts rows to NOC codes.
func OptCountries(codes ...string) Option {
	return func(s *Spec) {
		s.countries = addAll(s.countries, codes, strings.ToUpper)
	}
}

// OptContinents restricts rows to continents.
func OptContinents(names ...string) Option {
	return func(s *Spec) {
		s.continents = addAll(s.continents, names, strings.ToLower)
	}
}

// OptSports restricts rows to sports or disciplines.
func OptSports(names ...string) Option {
	return func(s *Spec) {
		s.sports = addAll(s.sports, names, strings.ToLower)
	}
}

// OptMedalTypes restricts medal rows to Gold, Silver or Bronze.
func OptMedalTypes(types ...string) Option {
	return func(s *Spec) {
		var given int
		var valid []string
		for _, t := range types {
			if t = strings.TrimSpace(t); t == "" {
				continue
			}
			given++
			mt, ok := entity.MedalType(t)
			if !ok {
				gn.Warn("Medal type <em>%s</em> is not supported, ignoring", t)
				continue
			}
			valid = append(valid, mt)
		}
		s.medalTypes = addAll(s.medalTypes, valid, nil)
		s.setInvalid(DimMedals, len(s.medalTypes) == 0 && given > 0)
	}
}

// OptGender restricts rows to Male, Female or Mixed. An empty value
// removes the constraint.
func OptGender(g string) Option {
	return func(s *Spec) {
		if strings.TrimSpace(g) == "" {
			s.gender = ""
			s.setInvalid(DimGender, false)
			return
		}
		res, ok := entity.Gender(g)
		if !ok {
			gn.Warn("Gender <em>%s</em> is not supported, ignoring", g)
			s.gender = ""
			s.setInvalid(DimGender, true)
			return
		}
		s.gender = res
		s.setInvalid(DimGender, false)
	}
}

// OptAgeRange keeps rows with a known age inside [from, to]. Reversed
// bounds are swapped.
func OptAgeRange(from, to int) Option {
	return func(s *Spec) {
		if from < 0 || to < 0 {
			gn.Warn("Age range <em>%d-%d</em> has negative bounds, ignoring",
				from, to)
			s.ageRange = nil
			s.setInvalid(DimAge, true)
			return
		}
		if from > to {
			from, to = to, from
		}
		s.ageRange = &AgeRange{Min: from, Max: to}
		s.setInvalid(DimAge, false)
	}
}

// OptVenue restricts rows to one venue.
func OptVenue(v string) Option {
	return func(s *Spec) {
		s.venue = strings.TrimSpace(v)
	}
}

// IsEmpty reports if the Spec has no active constraint.
func (s Spec) IsEmpty() bool {
	return len(s.countries) == 0 && len(s.continents) == 0 &&
		len(s.sports) == 0 && len(s.medalTypes) == 0 &&
		s.gender == "" && s.ageRange == nil && s.venue == "" &&
		len(s.invalid) == 0
}

// Invalid returns sorted names of dimensions that match no row because
// all their values were unsupported.
func (s Spec) Invalid() []string { return sortedKeys(s.invalid) }

func (s Spec) isInvalid(dim string) bool {
	_, ok := s.invalid[dim]
	return ok
}

func (s *Spec) setInvalid(dim string, invalid bool) {
	if !invalid {
		delete(s.invalid, dim)
		return
	}
	if s.invalid == nil {
		s.invalid = make(map[string]struct{})
	}
	s.invalid[dim] = struct{}{}
}

// Countries returns selected NOC codes sorted.
func (s Spec) Countries() []string { return sortedKeys(s.countries) }

// Continents returns selected continents in lower case, sorted.
func (s Spec) Continents() []string { return sortedKeys(s.continents) }

// Sports returns selected sports in lower case, sorted.
func (s Spec) Sports() []string { return sortedKeys(s.sports) }

// MedalTypes returns selected medal types sorted.
func (s Spec) MedalTypes() []string { return sortedKeys(s.medalTypes) }

// Gender returns the selected gender or an empty string.
func (s Spec) Gender() string { return s.gender }

// AgeRange returns the selected age range.
func (s Spec) AgeRange() (AgeRange, bool) {
	if s.ageRange == nil {
		return AgeRange{}, false
	}
	return *s.ageRange, true
}

// Venue returns the selected venue or an empty string.
func (s Spec) Venue() string { return s.venue }

// String describes active constraints in a stable order.
func (s Spec) String() string {
	var parts []string
	add := func(name string, vals []string) {
		if len(vals) > 0 {
			parts = append(parts, name+"="+strings.Join(vals, ","))
		}
	}
	add("countries", s.Countries())
	add("continents", s.Continents())
	add("sports", s.Sports())
	add("medals", s.MedalTypes())
	if s.gender != "" {
		parts = append(parts, "gender="+s.gender)
	}
	if s.ageRange != nil {
		parts = append(parts,
			fmt.Sprintf("age=%d-%d", s.ageRange.Min, s.ageRange.Max))
	}
	if s.venue != "" {
		parts = append(parts, "venue="+s.venue)
	}
	for _, dim := range s.Invalid() {
		parts = append(parts, dim+"=invalid")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "; ")
}

func (s Spec) clone() Spec {
	res := s
	res.countries = maps.Clone(s.countries)
	res.continents = maps.Clone(s.continents)
	res.sports = maps.Clone(s.sports)
	res.medalTypes = maps.Clone(s.medalTypes)
	res.invalid = maps.Clone(s.invalid)
	if s.ageRange != nil {
		ar := *s.ageRange
		res.ageRange = &ar
	}
	return res
}

func addAll(
	m map[string]struct{},
	vals []string,
	norm func(string) string,
) map[string]struct{} {
	for _, v := range vals {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if norm != nil {
			v = norm(v)
		}
		if m == nil {
			m = make(map[string]struct{})
		}
		m[v] = struct{}{}
	}
	return m
}

func sortedKeys(m map[string]struct{}) []string {
	return slices.Sorted(maps.Keys(m))
}
