package model

import "encoding/json"

// FinancialTableSentinel marks the FinancialEntry whose RevenueAmount
// field carries a JSON-encoded FinancialTable instead of a number.
const FinancialTableSentinel = "__FINANCIAL_TABLE__"

// EntryType distinguishes monthly from yearly financial entries.
type EntryType string

const (
	EntryMonthly EntryType = "monthly"
	EntryYearly  EntryType = "yearly"
)

// FinancialEntry is one raw financial record attached to a listing.
// RevenueAmount and NetProfit arrive as numbers or numeric strings.
type FinancialEntry struct {
	Name          string          `json:"name"`
	Type          EntryType       `json:"type,omitempty"`
	RevenueAmount json.RawMessage `json:"revenueAmount,omitempty"`
	NetProfit     json.RawMessage `json:"netProfit,omitempty"`
	AnnualCost    float64         `json:"annualCost,omitempty"`
}

// IsTable reports whether the entry is the pivot-table sentinel.
func (e FinancialEntry) IsTable() bool {
	return e.Name == FinancialTableSentinel
}

// ColumnLabel names one column of a FinancialTable.
type ColumnLabel struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// FinancialTable is the row/column financial breakdown stored inside
// the sentinel entry. FinancialData is keyed row label -> column key,
// with cell values as numeric strings.
type FinancialTable struct {
	RowLabels     []string                     `json:"rowLabels"`
	ColumnLabels  []ColumnLabel                `json:"columnLabels"`
	FinancialData map[string]map[string]string `json:"financialData"`
}
