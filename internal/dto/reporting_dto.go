package dto

import (
	"time"

	"github.com/pennyledger/pennyledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MonthBucketResponse represents one month of inflow and outflow totals.
type MonthBucketResponse struct {
	Year    int             `json:"year"`
	Month   int             `json:"month"`
	Inflow  decimal.Decimal `json:"inflow"`
	Outflow decimal.Decimal `json:"outflow"`
}

// CategoryTotalResponse represents an expense category with its period total.
type CategoryTotalResponse struct {
	AccountName string          `json:"accountName"`
	Total       decimal.Decimal `json:"total"`
}

// AccountBalanceResponse represents an account's running balance over full history.
type AccountBalanceResponse struct {
	AccountID   string             `json:"accountID"`
	AccountName string             `json:"accountName"`
	AccountType domain.AccountType `json:"accountType"`
	Balance     decimal.Decimal    `json:"balance"`
}

// DashboardResponse is the dashboard snapshot for a period.
type DashboardResponse struct {
	FromDate      string                   `json:"fromDate"`
	ToDate        string                   `json:"toDate"`
	TotalRevenue  decimal.Decimal          `json:"totalRevenue"`
	TotalExpenses decimal.Decimal          `json:"totalExpenses"`
	NetProfit     decimal.Decimal          `json:"netProfit"`
	ProfitMargin  decimal.Decimal          `json:"profitMargin"`
	Monthly       []MonthBucketResponse    `json:"monthly"`
	TopExpenses   []CategoryTotalResponse  `json:"topExpenses"`
	RecentEntries []EntryResponse          `json:"recentEntries"`
	Balances      []AccountBalanceResponse `json:"balances"`
	// BalancesDegraded is true when full-history balances could not be
	// computed; the rest of the snapshot is still valid.
	BalancesDegraded bool `json:"balancesDegraded,omitempty"`
}

// ReportResponse is the report snapshot for a period.
type ReportResponse struct {
	FromDate    string                              `json:"fromDate"`
	ToDate      string                              `json:"toDate"`
	Totals      map[domain.AccountType]decimal.Decimal `json:"totals"`
	Summary     ReportSummary                       `json:"summary"`
	Monthly     []MonthBucketResponse               `json:"monthly"`
	TopExpenses []CategoryTotalResponse             `json:"topExpenses"`
}

// ReportSummary holds the headline figures of a report snapshot.
type ReportSummary struct {
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetProfit     decimal.Decimal `json:"netProfit"`
	ProfitMargin  decimal.Decimal `json:"profitMargin"`
}

// TransactionStatusPosted is the only status a recorded line can have. The
// status field exists for the presentation layer; it is not stored.
const TransactionStatusPosted = "POSTED"

// TransactionRowResponse is one flattened journal line in a transaction listing.
type TransactionRowResponse struct {
	EntryID     string             `json:"entryID"`
	LineID      string             `json:"lineID"`
	EntryDate   time.Time          `json:"entryDate"`
	Description string             `json:"description"`
	Reference   string             `json:"reference,omitempty"`
	AccountID   string             `json:"accountID"`
	AccountName string             `json:"accountName"`
	AccountType domain.AccountType `json:"accountType"`
	Debit       decimal.Decimal    `json:"debit"`
	Credit      decimal.Decimal    `json:"credit"`
	Status      string             `json:"status"`
}

// ReportPeriodParams defines the reporting period query parameters. Absent
// bounds default to the current calendar year.
type ReportPeriodParams struct {
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
}

// TransactionListParams defines query parameters for the transaction listing.
// Search and Status are applied in memory over the resolved rows.
type TransactionListParams struct {
	Limit     int        `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string    `form:"nextToken"`
	Search    string     `form:"search"`
	Status    string     `form:"status"`
	From      *time.Time `form:"from" time_format:"2006-01-02"`
	To        *time.Time `form:"to" time_format:"2006-01-02"`
}

// TransactionListResponse wraps a page of flattened journal lines.
type TransactionListResponse struct {
	Transactions []TransactionRowResponse `json:"transactions"`
	NextToken    *string                  `json:"nextToken,omitempty"`
}

// ToMonthBucketResponses converts domain month buckets to DTOs.
func ToMonthBucketResponses(buckets []domain.MonthBucket) []MonthBucketResponse {
	res := make([]MonthBucketResponse, len(buckets))
	for i, b := range buckets {
		res[i] = MonthBucketResponse{
			Year:    b.Year,
			Month:   int(b.Month),
			Inflow:  b.Inflow,
			Outflow: b.Outflow,
		}
	}
	return res
}

// ToCategoryTotalResponses converts domain category totals to DTOs.
func ToCategoryTotalResponses(cats []domain.CategoryTotal) []CategoryTotalResponse {
	res := make([]CategoryTotalResponse, len(cats))
	for i, c := range cats {
		res[i] = CategoryTotalResponse{
			AccountName: c.AccountName,
			Total:       c.Total,
		}
	}
	return res
}

// ToAccountBalanceResponses converts domain account balances to DTOs.
func ToAccountBalanceResponses(balances []domain.AccountBalance) []AccountBalanceResponse {
	res := make([]AccountBalanceResponse, len(balances))
	for i, b := range balances {
		res[i] = AccountBalanceResponse{
			AccountID:   b.AccountID,
			AccountName: b.AccountName,
			AccountType: b.AccountType,
			Balance:     b.Balance,
		}
	}
	return res
}

// ToTransactionRowResponses converts domain transaction rows to DTOs.
func ToTransactionRowResponses(rows []domain.TransactionRow) []TransactionRowResponse {
	res := make([]TransactionRowResponse, len(rows))
	for i, r := range rows {
		res[i] = TransactionRowResponse{
			EntryID:     r.EntryID,
			LineID:      r.LineID,
			EntryDate:   r.EntryDate,
			Description: r.Description,
			Reference:   r.Reference,
			AccountID:   r.AccountID,
			AccountName: r.AccountName,
			AccountType: r.AccountType,
			Debit:       r.Debit,
			Credit:      r.Credit,
			Status:      TransactionStatusPosted,
		}
	}
	return res
}

// ToReportResponse converts an aggregate result to the report snapshot DTO.
func ToReportResponse(agg *domain.AggregateResult, from, to time.Time) ReportResponse {
	return ReportResponse{
		FromDate:    from.Format("2006-01-02"),
		ToDate:      to.Format("2006-01-02"),
		Totals:      agg.TotalsByType,
		Summary:     ReportSummary{
			TotalRevenue:  agg.TotalRevenue,
			TotalExpenses: agg.TotalExpenses,
			NetProfit:     agg.NetProfit,
			ProfitMargin:  agg.ProfitMargin,
		},
		Monthly:     ToMonthBucketResponses(agg.MonthlyBuckets),
		TopExpenses: ToCategoryTotalResponses(agg.CategoryBreakdown),
	}
}
