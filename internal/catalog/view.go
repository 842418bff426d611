package catalog

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/exitbase/listing-engine/internal/country"
	"github.com/exitbase/listing-engine/internal/filter"
	"github.com/exitbase/listing-engine/internal/model"
)

// View is one catalog row augmented with the derived display fields
// the front end renders. Views are rebuilt on every fetch and never
// persisted.
type View struct {
	Listing          model.Listing `json:"listing"`
	BusinessName     string        `json:"businessName"`
	CategoryName     string        `json:"categoryName"`
	AskingPrice      float64       `json:"askingPrice"`
	PriceLabel       string        `json:"priceLabel"`
	Location         string        `json:"location"`
	AgeLabel         string        `json:"ageLabel"`
	MonthlyRevenue   float64       `json:"avgMonthlyRevenue"`
	MonthlyNetProfit float64       `json:"avgMonthlyNetProfit"`
	ProfitMultiple   string        `json:"profitMultiple"`
	RevenueMultiple  string        `json:"revenueMultiple"`
	MonthlyPageviews float64       `json:"monthlyPageviews"`
	ManagedByEx      bool          `json:"managedByEx"`
}

// PublishedOnly applies the status gate: only normalized-PUBLISH
// listings are eligible for the public catalog.
func PublishedOnly(listings []model.Listing) []model.Listing {
	out := make([]model.Listing, 0, len(listings))
	for _, l := range listings {
		if l.IsPublished() {
			out = append(out, l)
		}
	}
	return out
}

// BuildViews runs the full per-fetch computation: status gate, filter
// evaluation, then display derivation. Catalog order is preserved.
func BuildViews(listings []model.Listing, spec filter.Spec, now time.Time) []View {
	filtered := filter.Apply(PublishedOnly(listings), spec, now)
	views := make([]View, 0, len(filtered))
	for _, l := range filtered {
		views = append(views, buildView(l, now))
	}
	return views
}

func buildView(l model.Listing, now time.Time) View {
	d := filter.Derive(l, now)
	return View{
		Listing:          l,
		BusinessName:     d.BusinessName,
		CategoryName:     d.CategoryName,
		AskingPrice:      d.AskingPrice,
		PriceLabel:       FormatMoney(d.AskingPrice),
		Location:         country.Normalize(d.Location),
		AgeLabel:         FormatAge(d.BusinessAge),
		MonthlyRevenue:   d.Aggregate.AvgMonthlyRevenue,
		MonthlyNetProfit: d.Aggregate.AvgMonthlyNetProfit,
		ProfitMultiple:   d.Multiples.ProfitLabel(),
		RevenueMultiple:  d.Multiples.RevenueLabel(),
		MonthlyPageviews: d.MonthlyPageviews,
		ManagedByEx:      bool(l.ManagedByEx),
	}
}

// Page slices items to a fixed-size page, 1-based. Out-of-range pages
// return an empty slice. Pagination sits outside the predicate
// evaluator on purpose.
func Page[T any](items []T, page, size int) []T {
	if page < 1 || size < 1 {
		return []T{}
	}
	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// FormatMoney renders a dollar amount with thousands separators and no
// cents, e.g. "$24,000".
func FormatMoney(v float64) string {
	neg := v < 0
	n := int64(math.Round(math.Abs(v)))

	s := strconv.FormatInt(n, 10)
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)

	out := "$" + strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}

// FormatAge renders a business age in whole years. Unknown ages render
// as "Unknown".
func FormatAge(years float64) string {
	switch {
	case math.IsNaN(years):
		return "Unknown"
	case years < 1:
		return "< 1 year"
	case years == 1:
		return "1 year"
	default:
		return fmt.Sprintf("%.0f years", years)
	}
}
