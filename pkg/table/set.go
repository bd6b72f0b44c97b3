package table

import (
	"errors"
	"slices"
	"strings"
)

// StringSet is a sorted set of distinct strings. It models multi-valued
// columns such as an athlete's disciplines.
type StringSet []string

// Malformed marks a cell that could not be decoded. It keeps the raw text
// so the value can be written back, but it never matches a filter.
type Malformed struct {
	Raw string
}

// ErrMalformedSet is returned when a multi-valued cell cannot be decoded.
var ErrMalformedSet = errors.New("malformed list encoding")

// NewStringSet creates a set from the given values. Empty values are
// dropped, duplicates collapse.
func NewStringSet(vals ...string) StringSet {
	res := make(StringSet, 0, len(vals))
	for _, v := range vals {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		res = append(res, v)
	}
	slices.Sort(res)
	return slices.Compact(res)
}

// Contains reports if the set has the value.
func (s StringSet) Contains(v string) bool {
	_, ok := slices.BinarySearch(s, v)
	return ok
}

// Intersects reports if at least one member is in the lower-cased index.
func (s StringSet) Intersects(lowered map[string]struct{}) bool {
	for _, v := range s {
		if _, ok := lowered[strings.ToLower(v)]; ok {
			return true
		}
	}
	return false
}

// String renders the set in the list encoding used by the datasets,
// for example ['Judo', 'Wrestling'].
func (s StringSet) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range s {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('\'')
		b.WriteString(strings.ReplaceAll(v, "'", "\\'"))
		b.WriteByte('\'')
	}
	b.WriteByte(']')
	return b.String()
}

// ParseStringSet decodes a multi-valued cell. Supported encodings:
//
//	['Judo', 'Wrestling']
//	["Judo","Wrestling"]
//	Judo;Wrestling
//	Judo, Wrestling
//
// An empty string decodes to an empty set.
func ParseStringSet(s string) (StringSet, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return StringSet{}, nil
	}
	if strings.HasPrefix(s, "[") || strings.HasSuffix(s, "]") {
		return parseBracketed(s)
	}
	sep := ","
	if strings.Contains(s, ";") {
		sep = ";"
	}
	return NewStringSet(strings.Split(s, sep)...), nil
}

func parseBracketed(s string) (StringSet, error) {
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") || len(s) < 2 {
		return nil, ErrMalformedSet
	}
	body := strings.TrimSpace(s[1 : len(s)-1])
	var vals []string
	for len(body) > 0 {
		q := body[0]
		if q != '\'' && q != '"' {
			return nil, ErrMalformedSet
		}
		var b strings.Builder
		i := 1
		closed := false
		for i < len(body) {
			c := body[i]
			if c == '\\' && i+1 < len(body) {
				b.WriteByte(body[i+1])
				i += 2
				continue
			}
			if c == q {
				closed = true
				i++
				break
			}
			b.WriteByte(c)
			i++
		}
		if !closed {
			return nil, ErrMalformedSet
		}
		vals = append(vals, b.String())
		body = strings.TrimSpace(body[i:])
		if body == "" {
			break
		}
		if body[0] != ',' {
			return nil, ErrMalformedSet
		}
		body = strings.TrimSpace(body[1:])
	}
	return NewStringSet(vals...), nil
}
