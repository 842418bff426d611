package filter

import (
	"math"
	"time"

	"github.com/exitbase/listing-engine/internal/answer"
	"github.com/exitbase/listing-engine/internal/finance"
	"github.com/exitbase/listing-engine/internal/model"
)

// pageviewYearlyThreshold is the cutoff above which a raw pageview
// figure is treated as a mis-entered yearly total and divided by 12.
const pageviewYearlyThreshold = 1_000_000

// Resolution tiers for the fields the evaluator needs. Order is
// load-bearing: each slice is one fallback tier.
var (
	businessNameTiers = [][]string{
		{"business name"},
		{"company name"},
	}
	askingPriceTiers = [][]string{
		{"listing price", "asking price"},
		{"price"},
	}
	locationTiers = [][]string{
		{"business location"},
		{"location", "country", "based in"},
	}
	pageviewTiers = [][]string{
		{"monthly pageviews", "monthly page views"},
		{"pageviews", "page views", "monthly visitors", "monthly traffic"},
	}
)

// Derived is the per-listing view the predicate evaluates. All fields
// are recomputed on every filter call and never persisted.
type Derived struct {
	BusinessName     string
	CategoryName     string
	AskingPrice      float64
	Location         string
	BusinessAge      float64
	Aggregate        finance.Aggregate
	Multiples        finance.Multiples
	MonthlyPageviews float64
}

// Derive computes the evaluator's view of one listing at the given
// reference time.
func Derive(l model.Listing, now time.Time) Derived {
	d := Derived{
		CategoryName: l.CategoryName(),
		BusinessName: businessName(l),
		Location:     answer.Text(l.Brand, locationTiers...),
		AskingPrice:  finance.ParseNumber(answer.Text(l.Advertisement, askingPriceTiers...)),
		BusinessAge:  businessAge(l.User.CreatedAt, now),
		Aggregate:    finance.Compute(l.Financials),
	}
	if d.Location == "" {
		d.Location = answer.Text(l.Advertisement, locationTiers...)
	}
	d.Multiples = d.Aggregate.Multiples(d.AskingPrice)
	d.MonthlyPageviews = monthlyPageviews(l.Statistics)
	return d
}

// businessName resolves the display name: brand bank tiers, then the
// first brand entry, then the listing title.
func businessName(l model.Listing) string {
	if a, ok := answer.ResolveTiers(l.Brand, businessNameTiers...); ok {
		return a.Text()
	}
	if a, ok := answer.First(l.Brand); ok {
		return a.Text()
	}
	return l.Title
}

// businessAge is the floor of years since the owning user's account
// was created, NaN when the timestamp is absent. The listing's own
// creation time is deliberately not used.
func businessAge(createdAt time.Time, now time.Time) float64 {
	if createdAt.IsZero() || createdAt.After(now) {
		return math.NaN()
	}
	years := now.Year() - createdAt.Year()
	if createdAt.AddDate(years, 0, 0).After(now) {
		years--
	}
	return float64(years)
}

// monthlyPageviews resolves traffic from the statistics bank. Raw
// values above one million are treated as mis-entered yearly totals.
func monthlyPageviews(statistics []model.QuestionAnswer) float64 {
	v := finance.ParseNumber(answer.Text(statistics, pageviewTiers...))
	if v > pageviewYearlyThreshold {
		v /= 12
	}
	return v
}
