package finance

import (
	"fmt"
	"math"
)

// Placeholder labels shown when a multiple cannot be computed because
// the annualized denominator is not positive.
const (
	PlaceholderProfitMultiple  = "Multiple 1.5x Profit"
	PlaceholderRevenueMultiple = "0.5x Revenue"
)

// Multiples holds the valuation ratios derived from asking price and
// annualized financials. Value fields are NaN when undefined.
type Multiples struct {
	ProfitMultiple  float64 `json:"profitMultiple"`
	RevenueMultiple float64 `json:"revenueMultiple"`
}

// Compute derives profit and revenue multiples. Annualized figures are
// avg monthly * 12; a multiple is defined only when its denominator is
// strictly positive.
func (a Aggregate) Multiples(askingPrice float64) Multiples {
	m := Multiples{
		ProfitMultiple:  math.NaN(),
		RevenueMultiple: math.NaN(),
	}

	if annualProfit := a.AvgMonthlyNetProfit * 12; annualProfit > 0 {
		m.ProfitMultiple = askingPrice / annualProfit
	}
	if annualRevenue := a.AvgMonthlyRevenue * 12; annualRevenue > 0 {
		m.RevenueMultiple = askingPrice / annualRevenue
	}
	return m
}

// ProfitLabel formats the profit multiple to one decimal place, or the
// static placeholder when undefined.
func (m Multiples) ProfitLabel() string {
	if math.IsNaN(m.ProfitMultiple) {
		return PlaceholderProfitMultiple
	}
	return fmt.Sprintf("%.1fx Profit", m.ProfitMultiple)
}

// RevenueLabel formats the revenue multiple to one decimal place, or
// the static placeholder when undefined.
func (m Multiples) RevenueLabel() string {
	if math.IsNaN(m.RevenueMultiple) {
		return PlaceholderRevenueMultiple
	}
	return fmt.Sprintf("%.1fx Revenue", m.RevenueMultiple)
}
