package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthBucket holds the income inflow and expense outflow recorded in one
// calendar month. Buckets exist for every month of the requested range even
// when no activity fell in them.
type MonthBucket struct {
	Year    int             `json:"year"`
	Month   time.Month      `json:"month"`
	Inflow  decimal.Decimal `json:"inflow"`
	Outflow decimal.Decimal `json:"outflow"`
}

// CategoryTotal is one row of the expense category breakdown: an expense
// account's name with its summed debit total over the aggregation range.
type CategoryTotal struct {
	AccountName string          `json:"accountName"`
	Total       decimal.Decimal `json:"total"`
}

// AggregateResult is the derived summary the ledger aggregator produces from
// a collection of journal entries and a date range. It is computed on demand
// and never persisted.
type AggregateResult struct {
	TotalsByType      map[AccountType]decimal.Decimal `json:"totalsByType"`
	MonthlyBuckets    []MonthBucket                   `json:"monthlyBuckets"`
	CategoryBreakdown []CategoryTotal                 `json:"categoryBreakdown"`
	TotalRevenue      decimal.Decimal                 `json:"totalRevenue"`
	TotalExpenses     decimal.Decimal                 `json:"totalExpenses"`
	NetProfit         decimal.Decimal                 `json:"netProfit"`
	ProfitMargin      decimal.Decimal                 `json:"profitMargin"` // Percentage; exactly 0 when there is no revenue
}

// AccountBalance pairs an account with its full-history running balance,
// computed for the banking view with no date floor.
type AccountBalance struct {
	AccountID   string          `json:"accountID"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Balance     decimal.Decimal `json:"balance"`
}

// TransactionRow is the line-level projection served to the transaction list
// view: one journal line flattened together with its parent entry's fields.
type TransactionRow struct {
	EntryID     string          `json:"entryID"`
	LineID      string          `json:"lineID"`
	EntryDate   time.Time       `json:"entryDate"`
	Description string          `json:"description"`
	Reference   string          `json:"reference"`
	AccountID   string          `json:"accountID"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}
