package catalog

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exitbase/listing-engine/internal/filter"
	"github.com/exitbase/listing-engine/internal/model"
)

var testNow = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

func TestPublishedOnly(t *testing.T) {
	t.Parallel()

	listings := []model.Listing{
		{ID: "a", Status: "PUBLISH"},
		{ID: "b", Status: "draft"},
		{ID: "c", Status: "Published"},
		{ID: "d", Status: "DELETED"},
		{ID: "e", Status: ""},
	}

	out := PublishedOnly(listings)
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].ID)
	assert.Equal(t, "c", out[1].ID)
}

func TestPage(t *testing.T) {
	t.Parallel()

	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, Page(items, 1, 2))
	assert.Equal(t, []int{3, 4}, Page(items, 2, 2))
	assert.Equal(t, []int{5}, Page(items, 3, 2))
	assert.Empty(t, Page(items, 4, 2))
	assert.Empty(t, Page(items, 0, 2))
	assert.Empty(t, Page(items, 1, 0))
}

func TestFormatMoney(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   float64
		want string
	}{
		{"small", 950, "$950"},
		{"thousands", 24000, "$24,000"},
		{"millions", 1234567, "$1,234,567"},
		{"zero", 0, "$0"},
		{"rounded", 999.6, "$1,000"},
		{"negative", -5000, "-$5,000"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FormatMoney(tt.in))
		})
	}
}

func TestFormatAge(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Unknown", FormatAge(math.NaN()))
	assert.Equal(t, "< 1 year", FormatAge(0))
	assert.Equal(t, "1 year", FormatAge(1))
	assert.Equal(t, "3 years", FormatAge(3))
}

// TestBuildViewsEndToEnd walks one listing through the status gate,
// the niche filter, the table-tier financial aggregation, and the
// display derivation.
func TestBuildViewsEndToEnd(t *testing.T) {
	t.Parallel()

	table := `{"rowLabels":["Gross Revenue","Cost of Goods"],` +
		`"columnLabels":[{"key":"2024","label":"2024"}],` +
		`"financialData":{"Gross Revenue":{"2024":"1200"},"Cost of Goods":{"2024":"200"}}}`

	listing := model.Listing{
		ID:     "l1",
		Status: "PUBLISH",
		Category: []model.Category{
			{Name: "SaaS"},
		},
		Brand: []model.QuestionAnswer{
			{Question: "Business Name", Answer: model.Answer{"Acme"}},
		},
		Advertisement: []model.QuestionAnswer{
			{Question: "Listing Price", Answer: model.Answer{"24000"}},
		},
		Financials: []model.FinancialEntry{
			{Name: model.FinancialTableSentinel, RevenueAmount: mustQuote(t, table)},
		},
		User: model.ListingUser{CreatedAt: testNow.AddDate(-2, 0, 0)},
	}
	drafted := listing
	drafted.ID = "l2"
	drafted.Status = "DRAFT"

	spec := filter.DefaultSpec()
	spec.Niche = "SaaS"

	views := BuildViews([]model.Listing{listing, drafted}, spec, testNow)
	require.Len(t, views, 1)

	v := views[0]
	assert.Equal(t, "Acme", v.BusinessName)
	assert.Equal(t, "SaaS", v.CategoryName)
	assert.InDelta(t, 1200, v.MonthlyRevenue, 1e-9)
	assert.InDelta(t, 1000, v.MonthlyNetProfit, 1e-9)
	assert.Equal(t, "2.0x Profit", v.ProfitMultiple)
	assert.Equal(t, "$24,000", v.PriceLabel)
	assert.Equal(t, "2 years", v.AgeLabel)
}

func mustQuote(t *testing.T, s string) []byte {
	t.Helper()
	b, err := json.Marshal(s)
	require.NoError(t, err)
	return b
}
