package config

import (
	"github.com/codyseavey/padguide/internal/models"
)

// PrefixTables holds the static lookup tables used to derive nickname prefixes.
// A value is built once at startup and never mutated afterwards.
type PrefixTables struct {
	AttrShort map[models.Attribute][]string
	AttrLong  map[models.Attribute][]string
	Series    map[int][]string // series id -> collab prefixes
}

// DefaultPrefixTables returns the built-in attribute and collab tables.
func DefaultPrefixTables() PrefixTables {
	return PrefixTables{
		AttrShort: map[models.Attribute][]string{
			models.AttributeFire:    {"r"},
			models.AttributeWater:   {"b"},
			models.AttributeWood:    {"g"},
			models.AttributeLight:   {"l"},
			models.AttributeDark:    {"d"},
			models.AttributeUnknown: {"h"},
			models.AttributeNil:     {"x"},
		},
		AttrLong: map[models.Attribute][]string{
			models.AttributeFire:    {"red", "fire"},
			models.AttributeWater:   {"blue", "water"},
			models.AttributeWood:    {"green", "wood"},
			models.AttributeLight:   {"light"},
			models.AttributeDark:    {"dark"},
			models.AttributeUnknown: {"unknown"},
			models.AttributeNil:     {"null", "none"},
		},
		Series: map[int][]string{
			130: {"halloween", "hw", "h"},
			136: {"xmas", "christmas", "x"},
			125: {"summer", "beach"},
			114: {"school", "academy", "gakuen"},
			139: {"new years", "ny"},
			149: {"wedding", "bride"},
			154: {"padr"},
			175: {"valentines", "vday", "v"},
			183: {"gh", "gungho"},
			117: {"gh", "gungho"},
		},
	}
}

// WithSeries returns a copy of t whose series table has extra merged over it.
// Entries in extra replace the built-in prefixes for the same series id.
func (t PrefixTables) WithSeries(extra map[int][]string) PrefixTables {
	if len(extra) == 0 {
		return t
	}
	series := make(map[int][]string, len(t.Series)+len(extra))
	for id, prefixes := range t.Series {
		series[id] = prefixes
	}
	for id, prefixes := range extra {
		series[id] = prefixes
	}
	t.Series = series
	return t
}
