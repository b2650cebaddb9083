package ledger

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pennyledger/pennyledger_app/internal/core/domain"
)

// topCategoryCount bounds the expense category breakdown for display.
const topCategoryCount = 5

var oneHundred = decimal.NewFromInt(100)

// Aggregate scans the supplied entries, keeps those dated within [from, to]
// inclusive, and derives the period summary: totals by account type, monthly
// inflow/outflow buckets, the top expense categories, net profit and margin.
//
// Lines must carry their resolved AccountType (the recorder attaches it on
// listing). A line whose account was deactivated after recording still
// counts; deactivation never rewrites history. An empty input yields zeroed
// totals and an empty breakdown, not an error.
func Aggregate(entries []domain.JournalEntry, from, to time.Time) (domain.AggregateResult, error) {
	totals := map[domain.AccountType]decimal.Decimal{
		domain.Asset:     decimal.Zero,
		domain.Liability: decimal.Zero,
		domain.Equity:    decimal.Zero,
		domain.Income:    decimal.Zero,
		domain.Expense:   decimal.Zero,
	}
	buckets := newMonthBuckets(from, to)
	expenseTotals := map[string]decimal.Decimal{}

	for _, entry := range entries {
		if !dateInRange(entry.EntryDate, from, to) {
			continue
		}
		for _, line := range entry.Lines {
			delta, err := SignedDelta(line, line.AccountType)
			if err != nil {
				return domain.AggregateResult{}, fmt.Errorf("entry %s: %w", entry.EntryID, err)
			}
			totals[line.AccountType] = totals[line.AccountType].Add(delta)

			switch line.AccountType {
			case domain.Income:
				// Buckets track positive deltas only: a refund (debit to
				// income) reduces the period total but not the bar chart.
				if delta.IsPositive() {
					buckets.add(entry.EntryDate, delta, decimal.Zero)
				}
			case domain.Expense:
				if delta.IsPositive() {
					buckets.add(entry.EntryDate, decimal.Zero, delta)
				}
				expenseTotals[line.AccountName] = expenseTotals[line.AccountName].Add(line.Debit)
			}
		}
	}

	revenue := totals[domain.Income]
	expenses := totals[domain.Expense]
	netProfit := revenue.Sub(expenses)

	margin := decimal.Zero
	if revenue.IsPositive() {
		margin = netProfit.Div(revenue).Mul(oneHundred)
	}

	return domain.AggregateResult{
		TotalsByType:      totals,
		MonthlyBuckets:    buckets.slice(),
		CategoryBreakdown: topCategories(expenseTotals),
		TotalRevenue:      revenue,
		TotalExpenses:     expenses,
		NetProfit:         netProfit,
		ProfitMargin:      margin,
	}, nil
}

// AccountBalances computes the full-history running balance of every account
// touched by the supplied entries. There is no date floor: a running balance
// reflects everything ever recorded, which is what the banking view shows.
func AccountBalances(entries []domain.JournalEntry) ([]domain.AccountBalance, error) {
	byAccount := map[string]*domain.AccountBalance{}
	for _, entry := range entries {
		for _, line := range entry.Lines {
			delta, err := SignedDelta(line, line.AccountType)
			if err != nil {
				return nil, fmt.Errorf("entry %s: %w", entry.EntryID, err)
			}
			bal, ok := byAccount[line.AccountID]
			if !ok {
				bal = &domain.AccountBalance{
					AccountID:   line.AccountID,
					AccountName: line.AccountName,
					AccountType: line.AccountType,
					Balance:     decimal.Zero,
				}
				byAccount[line.AccountID] = bal
			}
			bal.Balance = bal.Balance.Add(delta)
		}
	}

	balances := make([]domain.AccountBalance, 0, len(byAccount))
	for _, bal := range byAccount {
		balances = append(balances, *bal)
	}
	sort.Slice(balances, func(i, j int) bool {
		return balances[i].AccountName < balances[j].AccountName
	})
	return balances, nil
}

// TransactionRows flattens entries into line-level rows for the transaction
// list view, preserving the entries' ordering.
func TransactionRows(entries []domain.JournalEntry) []domain.TransactionRow {
	rows := []domain.TransactionRow{}
	for _, entry := range entries {
		for _, line := range entry.Lines {
			rows = append(rows, domain.TransactionRow{
				EntryID:     entry.EntryID,
				LineID:      line.LineID,
				EntryDate:   entry.EntryDate,
				Description: entry.Description,
				Reference:   entry.Reference,
				AccountID:   line.AccountID,
				AccountName: line.AccountName,
				AccountType: line.AccountType,
				Debit:       line.Debit,
				Credit:      line.Credit,
			})
		}
	}
	return rows
}

// dateInRange compares at calendar-date granularity; the time-of-day portion
// of stored timestamps never affects membership in a reporting period.
func dateInRange(d, from, to time.Time) bool {
	day := toDate(d)
	return !day.Before(toDate(from)) && !day.After(toDate(to))
}

func toDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

type monthKey struct {
	year  int
	month time.Month
}

// monthBuckets pre-seeds one zeroed bucket per calendar month of the range so
// months without activity still appear in the output. A full-year range
// therefore always renders twelve buckets.
type monthBuckets struct {
	order   []monthKey
	buckets map[monthKey]*domain.MonthBucket
}

func newMonthBuckets(from, to time.Time) *monthBuckets {
	mb := &monthBuckets{buckets: map[monthKey]*domain.MonthBucket{}}
	cur := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cur.After(end) {
		key := monthKey{year: cur.Year(), month: cur.Month()}
		mb.order = append(mb.order, key)
		mb.buckets[key] = &domain.MonthBucket{
			Year:    key.year,
			Month:   key.month,
			Inflow:  decimal.Zero,
			Outflow: decimal.Zero,
		}
		cur = cur.AddDate(0, 1, 0)
	}
	return mb
}

func (mb *monthBuckets) add(date time.Time, inflow, outflow decimal.Decimal) {
	bucket, ok := mb.buckets[monthKey{year: date.Year(), month: date.Month()}]
	if !ok {
		// Entry already passed the range filter, so its month is seeded.
		return
	}
	bucket.Inflow = bucket.Inflow.Add(inflow)
	bucket.Outflow = bucket.Outflow.Add(outflow)
}

func (mb *monthBuckets) slice() []domain.MonthBucket {
	out := make([]domain.MonthBucket, len(mb.order))
	for i, key := range mb.order {
		out[i] = *mb.buckets[key]
	}
	return out
}

// topCategories sorts expense totals descending, breaking ties by ascending
// account name so equal totals render in a stable order, and keeps the top
// five for display.
func topCategories(totals map[string]decimal.Decimal) []domain.CategoryTotal {
	categories := make([]domain.CategoryTotal, 0, len(totals))
	for name, total := range totals {
		categories = append(categories, domain.CategoryTotal{AccountName: name, Total: total})
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Total.Equal(categories[j].Total) {
			return categories[i].AccountName < categories[j].AccountName
		}
		return categories[i].Total.GreaterThan(categories[j].Total)
	})
	if len(categories) > topCategoryCount {
		categories = categories[:topCategoryCount]
	}
	return categories
}
