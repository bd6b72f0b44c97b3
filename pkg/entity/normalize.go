package entity

import "strings"

// Canonical gender values.
const (
	Male   = "Male"
	Female = "Female"
	Mixed  = "Mixed"
)

// Canonical medal types.
const (
	Gold   = "Gold"
	Silver = "Silver"
	Bronze = "Bronze"
)

var genders = map[string]string{
	"m": Male, "male": Male, "men": Male, "man": Male,
	"w": Female, "f": Female, "female": Female, "women": Female, "woman": Female,
	"x": Mixed, "o": Mixed, "mixed": Mixed, "open": Mixed,
}

var medalTypes = map[string]string{
	"gold": Gold, "gold medal": Gold, "g": Gold, "1": Gold,
	"silver": Silver, "silver medal": Silver, "s": Silver, "2": Silver,
	"bronze": Bronze, "bronze medal": Bronze, "b": Bronze, "3": Bronze,
}

// Gender returns the canonical gender for codes such as M, W, X, Men or
// Women.
func Gender(s string) (string, bool) {
	res, ok := genders[strings.ToLower(strings.TrimSpace(s))]
	return res, ok
}

// MedalType returns the canonical medal type for values such as GOLD,
// "Gold Medal" or "gold".
func MedalType(s string) (string, bool) {
	res, ok := medalTypes[strings.ToLower(strings.TrimSpace(s))]
	return res, ok
}

// MedalRank returns 1 for Gold, 2 for Silver, 3 for Bronze and 0 otherwise.
func MedalRank(s string) int {
	mt, _ := MedalType(s)
	switch mt {
	case Gold:
		return 1
	case Silver:
		return 2
	case Bronze:
		return 3
	}
	return 0
}
