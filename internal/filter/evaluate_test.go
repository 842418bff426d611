package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exitbase/listing-engine/internal/model"
)

var testNow = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

func qa(question, value string) model.QuestionAnswer {
	var a model.Answer
	if value != "" {
		a = model.Answer{value}
	}
	return model.QuestionAnswer{Question: question, Answer: a}
}

func publishedListing() model.Listing {
	return model.Listing{
		ID:     "l1",
		Status: "PUBLISH",
		Category: []model.Category{
			{Name: "SaaS"},
		},
		Brand: []model.QuestionAnswer{
			qa("Business Name", "Acme"),
			qa("Business Location", "USA"),
		},
		Advertisement: []model.QuestionAnswer{
			qa("Listing Price", "24000"),
		},
		Statistics: []model.QuestionAnswer{
			qa("Monthly Pageviews", "30000"),
		},
		Financials: []model.FinancialEntry{
			{Name: "Jan", Type: model.EntryMonthly, RevenueAmount: []byte(`1200`), NetProfit: []byte(`1000`)},
		},
		User: model.ListingUser{CreatedAt: testNow.AddDate(-3, -2, 0)},
	}
}

func TestApplyPreservesOrder(t *testing.T) {
	t.Parallel()

	a, b, c := publishedListing(), publishedListing(), publishedListing()
	a.ID, b.ID, c.ID = "a", "b", "c"

	out := Apply([]model.Listing{a, b, c}, DefaultSpec(), testNow)
	require.Len(t, out, 3)
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "b", out[1].ID)
	assert.Equal(t, "c", out[2].ID)
}

func TestSearchClause(t *testing.T) {
	t.Parallel()

	l := publishedListing()

	tests := []struct {
		name   string
		search string
		want   bool
	}{
		{"empty passes", "", true},
		{"business name match", "acme", true},
		{"category match", "saas", true},
		{"location match", "usa", true},
		{"no match", "bakery", false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			spec := DefaultSpec()
			spec.Search = tt.search
			assert.Equal(t, tt.want, Matches(l, spec, testNow))
		})
	}
}

func TestNicheClause(t *testing.T) {
	t.Parallel()

	l := publishedListing()

	spec := DefaultSpec()
	spec.Niche = "SaaS"
	assert.True(t, Matches(l, spec, testNow))

	spec.Niche = "Ecommerce"
	assert.False(t, Matches(l, spec, testNow))

	spec.Niche = "all"
	assert.True(t, Matches(l, spec, testNow))
}

func TestRevenueGeneratingClause(t *testing.T) {
	t.Parallel()

	generating := publishedListing()
	idle := publishedListing()
	idle.Financials = nil

	spec := DefaultSpec()
	spec.RevenueGenerating = "yes"
	assert.True(t, Matches(generating, spec, testNow))
	assert.False(t, Matches(idle, spec, testNow))

	spec.RevenueGenerating = "no"
	assert.False(t, Matches(generating, spec, testNow))
	assert.True(t, Matches(idle, spec, testNow))
}

func TestPriceClause(t *testing.T) {
	t.Parallel()

	l := publishedListing() // asking price 24000

	spec := DefaultSpec()
	spec.PriceRange = Range{20000, 30000}
	assert.True(t, Matches(l, spec, testNow))

	spec.PriceRange = Range{24000, 24000}
	assert.True(t, Matches(l, spec, testNow), "price bounds are inclusive")

	spec.PriceRange = Range{0, 10000}
	assert.False(t, Matches(l, spec, testNow))
}

func TestLocationClause(t *testing.T) {
	t.Parallel()

	l := publishedListing() // location "USA"

	spec := DefaultSpec()
	spec.BusinessLocation = "United States"
	assert.True(t, Matches(l, spec, testNow), "alias-normalized equality")

	spec.BusinessLocation = "usa"
	assert.True(t, Matches(l, spec, testNow), "raw equality fallback")

	spec.BusinessLocation = "Canada"
	assert.False(t, Matches(l, spec, testNow))
}

func TestAgeRangeDefaultIsInert(t *testing.T) {
	t.Parallel()

	// The default full span must not exclude anything, including a
	// listing whose business age is NaN for lack of a user timestamp.
	ageless := publishedListing()
	ageless.User = model.ListingUser{}

	spec := DefaultSpec()
	require.Equal(t, DefaultAgeRange, spec.Advanced.AgeRange)
	assert.True(t, Matches(ageless, spec, testNow))
}

func TestAgeRangeEnforced(t *testing.T) {
	t.Parallel()

	l := publishedListing() // ~3 years old

	spec := DefaultSpec()
	spec.Advanced.AgeRange = Range{2, 5}
	assert.True(t, Matches(l, spec, testNow))

	spec.Advanced.AgeRange = Range{5, 10}
	assert.False(t, Matches(l, spec, testNow))

	t.Run("NaN fails an enforced range", func(t *testing.T) {
		t.Parallel()
		ageless := publishedListing()
		ageless.User = model.ListingUser{}
		spec := DefaultSpec()
		spec.Advanced.AgeRange = Range{0, 10}
		assert.False(t, Matches(ageless, spec, testNow))
	})
}

func TestMonthlyRevenueRange(t *testing.T) {
	t.Parallel()

	l := publishedListing() // avg monthly revenue 1200

	spec := DefaultSpec()
	spec.Advanced.MonthlyRevenue = Range{1000, 2000}
	assert.True(t, Matches(l, spec, testNow))

	spec.Advanced.MonthlyRevenue = Range{5000, 10000}
	assert.False(t, Matches(l, spec, testNow))
}

func TestMultipleRanges(t *testing.T) {
	t.Parallel()

	// price 24000, annual profit 12000 -> profit multiple 2.0
	l := publishedListing()

	spec := DefaultSpec()
	spec.Advanced.ProfitMultiple = Range{1, 3}
	assert.True(t, Matches(l, spec, testNow))

	spec.Advanced.ProfitMultiple = Range{3, 10}
	assert.False(t, Matches(l, spec, testNow))

	t.Run("undefined multiple fails an enforced range", func(t *testing.T) {
		t.Parallel()
		noProfit := publishedListing()
		noProfit.Financials = nil
		spec := DefaultSpec()
		spec.Advanced.ProfitMultiple = Range{0, 10}
		assert.False(t, Matches(noProfit, spec, testNow))
	})
}

func TestPageviewsRange(t *testing.T) {
	t.Parallel()

	l := publishedListing() // 30000 monthly pageviews

	spec := DefaultSpec()
	spec.Advanced.MonthlyPageviews = Range{10000, 50000}
	assert.True(t, Matches(l, spec, testNow))

	t.Run("mis-entered yearly figure divided by 12", func(t *testing.T) {
		t.Parallel()
		yearly := publishedListing()
		yearly.Statistics = []model.QuestionAnswer{qa("Monthly Pageviews", "2400000")}
		spec := DefaultSpec()
		spec.Advanced.MonthlyPageviews = Range{100000, 300000}
		assert.True(t, Matches(yearly, spec, testNow))
	})
}

func TestTargetCountryClause(t *testing.T) {
	t.Parallel()

	structured := publishedListing()
	structured.Statistics = append(structured.Statistics,
		qa("Visitors by Country", `[{"country":"United States","percentage":60},{"country":"Canada","percentage":40}]`))

	bare := publishedListing()
	bare.Statistics = append(bare.Statistics, qa("Target Country", "United States"))

	freeText := publishedListing()
	freeText.Statistics = append(freeText.Statistics,
		qa("Audience", "Mostly professionals in the United States, some in Europe."))

	noData := publishedListing()

	spec := DefaultSpec()
	spec.Advanced.TargetCountry = "United States"
	spec.Advanced.TargetCountryPercentage = 50

	t.Run("structured data at or above threshold passes", func(t *testing.T) {
		t.Parallel()
		assert.True(t, Matches(structured, spec, testNow))
	})

	t.Run("structured data below threshold drops", func(t *testing.T) {
		t.Parallel()
		s := spec
		s.Advanced.TargetCountry = "Canada"
		s.Advanced.TargetCountryPercentage = 50
		assert.False(t, Matches(structured, s, testNow))
	})

	t.Run("bare country string counts as 100 percent", func(t *testing.T) {
		t.Parallel()
		s := spec
		s.Advanced.TargetCountryPercentage = 90
		assert.True(t, Matches(bare, s, testNow))
	})

	t.Run("free text substring match passes", func(t *testing.T) {
		t.Parallel()
		assert.True(t, Matches(freeText, spec, testNow))
	})

	t.Run("free text without the country drops", func(t *testing.T) {
		t.Parallel()
		s := spec
		s.Advanced.TargetCountry = "Japan"
		assert.False(t, Matches(freeText, s, testNow))
	})

	t.Run("absence of geography data passes", func(t *testing.T) {
		t.Parallel()
		assert.True(t, Matches(noData, spec, testNow))
	})

	t.Run("all disables the clause", func(t *testing.T) {
		t.Parallel()
		s := DefaultSpec()
		s.Advanced.TargetCountry = "all"
		assert.True(t, Matches(structured, s, testNow))
	})
}
