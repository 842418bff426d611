package filter

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/exitbase/listing-engine/internal/country"
	"github.com/exitbase/listing-engine/internal/model"
)

// Apply filters the catalog against the spec. Order is preserved and
// every derived value is recomputed from scratch: there is no cached
// current view. A listing survives only if all clauses pass.
func Apply(catalog []model.Listing, spec Spec, now time.Time) []model.Listing {
	out := make([]model.Listing, 0, len(catalog))
	for _, l := range catalog {
		if Matches(l, spec, now) {
			out = append(out, l)
		}
	}
	zap.L().Debug("filter: catalog evaluated",
		zap.Int("in", len(catalog)),
		zap.Int("out", len(out)),
	)
	return out
}

// Matches evaluates every clause for one listing, short-circuiting on
// the first failure.
func Matches(l model.Listing, spec Spec, now time.Time) bool {
	d := Derive(l, now)

	if !matchesSearch(d, spec.Search) {
		return false
	}
	if !matchesNiche(l, spec.Niche) {
		return false
	}
	if !matchesRevenueGenerating(d, spec.RevenueGenerating) {
		return false
	}
	if !spec.PriceRange.Contains(d.AskingPrice) {
		return false
	}
	if !matchesLocation(d, spec.BusinessLocation) {
		return false
	}

	adv := spec.Advanced
	if adv.TargetCountry != "" && adv.TargetCountry != "all" {
		if !matchesTargetCountry(l, adv.TargetCountry, adv.TargetCountryPercentage) {
			return false
		}
	}
	if !rangePasses(adv.AgeRange, DefaultAgeRange, d.BusinessAge) {
		return false
	}
	if !rangePasses(adv.MonthlyRevenue, DefaultMonthlyRevenue, d.Aggregate.AvgMonthlyRevenue) {
		return false
	}
	if !rangePasses(adv.MonthlyProfit, DefaultMonthlyProfit, d.Aggregate.AvgMonthlyNetProfit) {
		return false
	}
	if !rangePasses(adv.MonthlyPageviews, DefaultMonthlyPageviews, d.MonthlyPageviews) {
		return false
	}
	if !rangePasses(adv.RevenueMultiple, DefaultRevenueMultiple, d.Multiples.RevenueMultiple) {
		return false
	}
	if !rangePasses(adv.ProfitMultiple, DefaultProfitMultiple, d.Multiples.ProfitMultiple) {
		return false
	}

	return true
}

// rangePasses enforces an advanced range only when it differs from its
// declared full span. An inert range passes everything, including
// listings whose derived value is NaN for lack of data.
func rangePasses(r, full Range, v float64) bool {
	if r.Equals(full) {
		return true
	}
	return r.Contains(v)
}

// matchesSearch does a case-insensitive substring match against the
// derived display fields.
func matchesSearch(d Derived, search string) bool {
	search = strings.TrimSpace(search)
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	for _, field := range []string{d.BusinessName, d.CategoryName, d.Location} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func matchesNiche(l model.Listing, niche string) bool {
	if niche == "" || niche == "all" {
		return true
	}
	return l.HasCategory(niche)
}

func matchesRevenueGenerating(d Derived, mode string) bool {
	switch mode {
	case "yes":
		return d.Aggregate.AvgMonthlyRevenue > 0
	case "no":
		return d.Aggregate.AvgMonthlyRevenue == 0
	default:
		return true
	}
}

func matchesLocation(d Derived, wanted string) bool {
	if wanted == "" || wanted == "all" {
		return true
	}
	return country.Same(d.Location, wanted)
}
