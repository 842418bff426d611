// Package country canonicalizes free-text business locations.
package country

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// aliases maps lower-cased location spellings to canonical names. Keys
// are matched exactly first, then by bidirectional substring scan.
var aliases = map[string]string{
	"usa":                      "United States",
	"us":                       "United States",
	"u.s.":                     "United States",
	"u.s.a.":                   "United States",
	"united states":            "United States",
	"united states of america": "United States",
	"america":                  "United States",
	"uk":                       "United Kingdom",
	"u.k.":                     "United Kingdom",
	"united kingdom":           "United Kingdom",
	"great britain":            "United Kingdom",
	"england":                  "United Kingdom",
	"uae":                      "UAE",
	"united arab emirates":     "UAE",
	"ksa":                      "Saudi Arabia",
	"saudi":                    "Saudi Arabia",
	"saudi arabia":             "Saudi Arabia",
	"aus":                      "Australia",
	"australia":                "Australia",
	"nz":                       "New Zealand",
	"new zealand":              "New Zealand",
	"ca":                       "Canada",
	"canada":                   "Canada",
	"deutschland":              "Germany",
	"germany":                  "Germany",
	"holland":                  "Netherlands",
	"the netherlands":          "Netherlands",
	"netherlands":              "Netherlands",
	"india":                    "India",
	"singapore":                "Singapore",
	"hong kong":                "Hong Kong",
	"uruguay":                  "Uruguay",
}

// aliasOrder fixes the scan order for substring fallback so that the
// first-hit-wins rule is deterministic across processes. Longest keys
// first keeps "united states" ahead of "us" so short codes only win
// when nothing more specific is contained.
var aliasOrder = rebuildOrder()

var titleCaser = cases.Title(language.English)

// Normalize canonicalizes a free-text location string. Exact alias
// match first, then substring containment in either direction over the
// alias table (first hit wins), then a title-cased echo of the input.
// Multi-country strings resolve to whichever alias matches first.
func Normalize(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return ""
	}

	if canonical, ok := aliases[key]; ok {
		return canonical
	}

	for _, alias := range aliasOrder {
		if strings.Contains(key, alias) || strings.Contains(alias, key) {
			return aliases[alias]
		}
	}

	return titleCaser.String(key)
}

// Same reports whether two raw location strings normalize to the same
// canonical country, with a raw case-insensitive equality fallback.
func Same(a, b string) bool {
	if strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b)) {
		return true
	}
	return strings.EqualFold(Normalize(a), Normalize(b))
}
