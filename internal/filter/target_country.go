package filter

import (
	"encoding/json"
	"strings"

	"github.com/exitbase/listing-engine/internal/answer"
	"github.com/exitbase/listing-engine/internal/country"
	"github.com/exitbase/listing-engine/internal/model"
)

// countryShare is one structured audience-by-country record.
type countryShare struct {
	Country    string  `json:"country"`
	Percentage float64 `json:"percentage"`
}

// countryTerms locate audience-geography questions in the statistics
// and brand banks.
var countryTerms = []string{
	"target country",
	"audience",
	"visitors by country",
	"traffic by country",
	"customer location",
}

// matchesTargetCountry evaluates the advanced target-country clause.
// Absence of any geography data is not a mismatch: such listings pass.
// When data exists the listing needs a matching country at or above
// the percentage threshold.
func matchesTargetCountry(l model.Listing, target string, minPercentage float64) bool {
	raw, ok := answer.Resolve(l.Statistics, countryTerms...)
	if !ok {
		raw, ok = answer.Resolve(l.Brand, countryTerms...)
	}
	if !ok {
		return true
	}

	shares, freeText := parseCountryShares(raw)
	if len(shares) == 0 && freeText == "" {
		return true
	}

	for _, s := range shares {
		if country.Same(s.Country, target) && s.Percentage >= minPercentage {
			return true
		}
	}
	if freeText != "" {
		lower := strings.ToLower(freeText)
		if strings.Contains(lower, strings.ToLower(target)) ||
			strings.Contains(lower, strings.ToLower(country.Normalize(target))) {
			return true
		}
	}
	return false
}

// parseCountryShares interprets a geography answer. A JSON array of
// {country, percentage} records is structured data; a short bare value
// is a single country at 100%; anything else is free text matched by
// substring.
func parseCountryShares(a model.Answer) (shares []countryShare, freeText string) {
	for _, v := range a {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}

		if strings.HasPrefix(v, "[") {
			var parsed []countryShare
			if err := json.Unmarshal([]byte(v), &parsed); err == nil {
				shares = append(shares, parsed...)
				continue
			}
		}

		if looksLikeCountryName(v) {
			shares = append(shares, countryShare{Country: v, Percentage: 100})
			continue
		}

		freeText += v + "\n"
	}
	return shares, strings.TrimSpace(freeText)
}

// looksLikeCountryName accepts short values without sentence
// punctuation, the shape a bare country answer takes.
func looksLikeCountryName(v string) bool {
	if len(v) > 40 {
		return false
	}
	return !strings.ContainsAny(v, ".,;:\n")
}
