// Package filter evaluates a multi-dimensional filter specification
// against a normalized listing catalog.
package filter

import "math"

// Range is a closed numeric interval.
type Range struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

// Contains reports whether v falls inside the interval, inclusive.
// NaN never passes.
func (r Range) Contains(v float64) bool {
	if math.IsNaN(v) {
		return false
	}
	return v >= r.Lo && v <= r.Hi
}

// Equals reports whether two ranges are identical.
func (r Range) Equals(other Range) bool {
	return r.Lo == other.Lo && r.Hi == other.Hi
}

// Declared full spans for the advanced range controls. A range filter
// left at its full span is inert, so listings lacking that data point
// stay visible instead of being dropped by a default-populated slider.
var (
	DefaultPriceRange       = Range{0, 10_000_000}
	DefaultAgeRange         = Range{0, 20}
	DefaultMonthlyRevenue   = Range{0, 50_000}
	DefaultMonthlyProfit    = Range{0, 50_000}
	DefaultMonthlyPageviews = Range{0, 1_000_000}
	DefaultRevenueMultiple  = Range{0, 50}
	DefaultProfitMultiple   = Range{0, 50}
)

// Advanced holds the advanced filter controls.
type Advanced struct {
	TargetCountry           string  `json:"targetCountry"`
	TargetCountryPercentage float64 `json:"targetCountryPercentage"`
	AgeRange                Range   `json:"ageRange"`
	MonthlyRevenue          Range   `json:"monthlyRevenue"`
	MonthlyProfit           Range   `json:"monthlyProfit"`
	MonthlyPageviews        Range   `json:"monthlyPageviews"`
	RevenueMultiple         Range   `json:"revenueMultiple"`
	ProfitMultiple          Range   `json:"profitMultiple"`
}

// Spec is the full filter specification. It is the engine's only
// external input shape.
type Spec struct {
	Search            string   `json:"search"`
	Niche             string   `json:"niche"`
	RevenueGenerating string   `json:"revenueGenerating"`
	PriceRange        Range    `json:"priceRange"`
	BusinessLocation  string   `json:"businessLocation"`
	Advanced          Advanced `json:"advanced"`
}

// DefaultSpec returns a specification with every control at its
// declared full span. Applying it excludes nothing beyond the status
// gate.
func DefaultSpec() Spec {
	return Spec{
		Niche:             "all",
		RevenueGenerating: "all",
		PriceRange:        DefaultPriceRange,
		BusinessLocation:  "all",
		Advanced: Advanced{
			TargetCountry:    "all",
			AgeRange:         DefaultAgeRange,
			MonthlyRevenue:   DefaultMonthlyRevenue,
			MonthlyProfit:    DefaultMonthlyProfit,
			MonthlyPageviews: DefaultMonthlyPageviews,
			RevenueMultiple:  DefaultRevenueMultiple,
			ProfitMultiple:   DefaultProfitMultiple,
		},
	}
}
