package ioload

import (
	"strings"
	"unicode"

	"github.com/olydash/olydash/pkg/entity"
	"github.com/olydash/olydash/pkg/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const utf8BOM = "\uFEFF"

// placeholders are cell values meaning "unknown".
var placeholders = map[string]struct{}{
	"n/a":  {},
	"na":   {},
	"nan":  {},
	"none": {},
	"null": {},
}

// stripBOM removes a UTF-8 BOM from the first header cell if present.
func stripBOM(headers []string) []string {
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], utf8BOM)
	}
	return headers
}

// headerName converts header text to a column name:
//  1. trim and lowercase
//  2. strip accents (NFD → remove Mn → NFC)
//  3. spaces and dashes become underscores
func headerName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	if res, _, err := transform.String(t, s); err == nil {
		s = res
	}
	s = strings.Join(strings.Fields(s), "_")
	return strings.ReplaceAll(s, "-", "_")
}

// normalizer converts raw cells of one entity into typed values.
// It is not safe for concurrent use, because the title caser keeps state.
type normalizer struct {
	schema entity.Schema
	gender map[string]struct{}
	title  cases.Caser
}

func newNormalizer(s entity.Schema) *normalizer {
	res := normalizer{
		schema: s,
		gender: map[string]struct{}{"gender": {}},
		title:  cases.Title(language.English),
	}
	if s.Roles.Gender != "" {
		res.gender[s.Roles.Gender] = struct{}{}
	}
	return &res
}

// value returns the typed value of a cell.
func (n *normalizer) value(col, raw string) any {
	raw = strings.TrimSpace(norm.NFC.String(raw))
	if raw == "" {
		return nil
	}
	if _, ok := placeholders[strings.ToLower(raw)]; ok {
		return nil
	}

	switch {
	case col == "medal_type":
		if mt, ok := entity.MedalType(raw); ok {
			return mt
		}
		return n.title.String(strings.ToLower(raw))
	case col == n.schema.Roles.Country:
		return strings.ToUpper(raw)
	}
	if _, ok := n.gender[col]; ok {
		if g, ok := entity.Gender(raw); ok {
			return g
		}
		return raw
	}
	return table.Parse(raw, n.schema.TypeOf(col))
}
