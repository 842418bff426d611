// Package finance turns raw, inconsistent financial records into
// canonical average monthly revenue and profit figures, and derives
// valuation multiples from them.
package finance

import (
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/exitbase/listing-engine/internal/model"
)

// Aggregate is the canonical monthly view of a listing's financials.
type Aggregate struct {
	AvgMonthlyRevenue   float64 `json:"avgMonthlyRevenue"`
	AvgMonthlyNetProfit float64 `json:"avgMonthlyNetProfit"`
}

// IsZero reports whether both figures are exactly zero. A zero result
// from one source tier triggers fallback to the next, so a genuinely
// break-even table is indistinguishable from an absent one. That
// behavior is load-bearing upstream and is preserved here.
func (a Aggregate) IsZero() bool {
	return a.AvgMonthlyRevenue == 0 && a.AvgMonthlyNetProfit == 0
}

// Compute aggregates raw financial entries through strict priority
// tiers: pivot table, monthly entries, yearly entries, then untyped
// entries. Each tier short-circuits the rest unless it yields (0,0).
func Compute(entries []model.FinancialEntry) Aggregate {
	if agg := fromTable(entries); !agg.IsZero() {
		return agg
	}

	if agg, ok := fromTyped(entries, model.EntryMonthly); ok {
		return agg
	}

	if agg, ok := fromTyped(entries, model.EntryYearly); ok {
		agg.AvgMonthlyRevenue /= 12
		agg.AvgMonthlyNetProfit /= 12
		return agg
	}

	return fromUntyped(entries)
}

// fromTable extracts the sentinel entry's JSON pivot table. For each
// column, rows labeled "revenue" add to both accumulators and all
// other rows subtract from profit; per-column sums are then averaged
// across columns. A parse failure means the tier is absent, never an
// error.
func fromTable(entries []model.FinancialEntry) Aggregate {
	var table *model.FinancialTable
	for _, e := range entries {
		if !e.IsTable() {
			continue
		}
		payload := rawString(e.RevenueAmount)
		if payload == "" {
			continue
		}
		var t model.FinancialTable
		if err := json.Unmarshal([]byte(payload), &t); err != nil {
			zap.L().Warn("finance: malformed financial table, skipping",
				zap.Error(err),
			)
			continue
		}
		table = &t
		break
	}
	if table == nil || len(table.ColumnLabels) == 0 {
		return Aggregate{}
	}

	var revenueTotal, profitTotal float64
	for _, col := range table.ColumnLabels {
		for _, row := range table.RowLabels {
			cell := ParseNumber(table.FinancialData[row][col.Key])
			if strings.Contains(strings.ToLower(row), "revenue") {
				revenueTotal += cell
				profitTotal += cell
			} else {
				profitTotal -= cell
			}
		}
	}

	n := float64(len(table.ColumnLabels))
	return Aggregate{
		AvgMonthlyRevenue:   revenueTotal / n,
		AvgMonthlyNetProfit: profitTotal / n,
	}
}

// fromTyped averages entries of the given type. ok is false when no
// entry of that type exists.
func fromTyped(entries []model.FinancialEntry, typ model.EntryType) (Aggregate, bool) {
	var revenue, profit float64
	var n int
	for _, e := range entries {
		if e.IsTable() || e.Type != typ {
			continue
		}
		revenue += ParseAmount(e.RevenueAmount)
		profit += ParseAmount(e.NetProfit)
		n++
	}
	if n == 0 {
		return Aggregate{}, false
	}
	return Aggregate{
		AvgMonthlyRevenue:   revenue / float64(n),
		AvgMonthlyNetProfit: profit / float64(n),
	}, true
}

// fromUntyped averages all remaining non-sentinel entries regardless
// of type.
func fromUntyped(entries []model.FinancialEntry) Aggregate {
	var revenue, profit float64
	var n int
	for _, e := range entries {
		if e.IsTable() {
			continue
		}
		revenue += ParseAmount(e.RevenueAmount)
		profit += ParseAmount(e.NetProfit)
		n++
	}
	if n == 0 {
		return Aggregate{}
	}
	return Aggregate{
		AvgMonthlyRevenue:   revenue / float64(n),
		AvgMonthlyNetProfit: profit / float64(n),
	}
}

// rawString unwraps a RawMessage that holds a JSON string, returning
// its contents. Non-string payloads return "".
func rawString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
