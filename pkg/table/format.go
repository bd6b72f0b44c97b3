package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Type is the logical type of a column.
type Type int

const (
	String Type = iota
	Int
	Float
	Time
	Set
)

var typeNames = []string{"string", "int", "float", "time", "set"}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

const (
	dateLayout = "2006-01-02"
)

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05-07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	dateLayout,
	"02/01/2006",
}

// Format renders a value canonically. The same value always renders to
// the same text, which keeps derived files byte-identical between runs.
func Format(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ""
		}
		if v == 0 {
			return "0"
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			return "1"
		}
		return "0"
	case time.Time:
		return FormatTime(v)
	case StringSet:
		return v.String()
	case Malformed:
		return v.Raw
	default:
		return fmt.Sprint(v)
	}
}

// FormatTime renders dates without a clock as YYYY-MM-DD and everything
// else as RFC 3339.
func FormatTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 &&
		t.Nanosecond() == 0 && t.Location() == time.UTC {
		return t.Format(dateLayout)
	}
	return t.Format(time.RFC3339)
}

// ParseTime accepts the date and timestamp layouts found in the datasets.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, l := range timeLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse time %q", s)
}

// Parse converts raw text to a value of the given type. Unparseable
// numbers and dates become nil. Undecodable sets become Malformed.
// An empty string is always nil.
func Parse(raw string, typ Type) any {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	switch typ {
	case Int:
		if i, err := strconv.Atoi(raw); err == nil {
			return i
		}
		if f, err := strconv.ParseFloat(raw, 64); err == nil &&
			!math.IsNaN(f) && !math.IsInf(f, 0) {
			return int(f)
		}
		return nil
	case Float:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
		return f
	case Time:
		t, err := ParseTime(raw)
		if err != nil {
			return nil
		}
		return t
	case Set:
		s, err := ParseStringSet(raw)
		if err != nil {
			return Malformed{Raw: raw}
		}
		return s
	default:
		return raw
	}
}
