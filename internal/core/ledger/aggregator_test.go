package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pennyledger/pennyledger_app/internal/core/domain"
	"github.com/pennyledger/pennyledger_app/internal/core/ledger"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// entry builds a balanced two-line entry: a debit against debitAcc and a
// matching credit against creditAcc.
func entry(id string, on time.Time, amount string, debitAcc, creditAcc domain.JournalLine) domain.JournalEntry {
	debitAcc.Debit = dec(amount)
	debitAcc.Credit = decimal.Zero
	creditAcc.Debit = decimal.Zero
	creditAcc.Credit = dec(amount)
	return domain.JournalEntry{
		EntryID:   id,
		EntryDate: on,
		Lines:     []domain.JournalLine{debitAcc, creditAcc},
	}
}

func incomeLine(id, name string) domain.JournalLine {
	return domain.JournalLine{AccountID: id, AccountName: name, AccountType: domain.Income}
}

func expenseLine(id, name string) domain.JournalLine {
	return domain.JournalLine{AccountID: id, AccountName: name, AccountType: domain.Expense}
}

func assetLine(id, name string) domain.JournalLine {
	return domain.JournalLine{AccountID: id, AccountName: name, AccountType: domain.Asset}
}

func TestAggregate_SignConventionRoundTrip(t *testing.T) {
	from, to := date(2025, time.January, 1), date(2025, time.December, 31)
	entries := []domain.JournalEntry{
		// Sale: debit cash 1000, credit sales revenue 1000.
		entry("e1", date(2025, time.March, 10), "1000.00", assetLine("cash", "Cash"), incomeLine("sales", "Sales Revenue")),
		// Rent: debit rent expense 400, credit cash 400.
		entry("e2", date(2025, time.April, 2), "400.00", expenseLine("rent", "Rent"), assetLine("cash", "Cash")),
	}

	result, err := ledger.Aggregate(entries, from, to)
	require.NoError(t, err)

	assert.True(t, dec("1000.00").Equal(result.TotalsByType[domain.Income]))
	assert.True(t, dec("400.00").Equal(result.TotalsByType[domain.Expense]))
	assert.True(t, dec("1000.00").Equal(result.TotalRevenue))
	assert.True(t, dec("400.00").Equal(result.TotalExpenses))
	assert.True(t, dec("600.00").Equal(result.NetProfit))
	assert.True(t, dec("60").Equal(result.ProfitMargin), "margin was %s", result.ProfitMargin)
	// Cash saw +1000 then -400; asset total reflects both.
	assert.True(t, dec("600.00").Equal(result.TotalsByType[domain.Asset]))
}

func TestAggregate_EmptyInputYieldsZeroes(t *testing.T) {
	result, err := ledger.Aggregate(nil, date(2025, time.January, 1), date(2025, time.December, 31))
	require.NoError(t, err)

	assert.True(t, result.TotalRevenue.IsZero())
	assert.True(t, result.TotalExpenses.IsZero())
	assert.True(t, result.NetProfit.IsZero())
	assert.True(t, result.ProfitMargin.IsZero())
	assert.Empty(t, result.CategoryBreakdown)
	// A full calendar year still renders all twelve months, zero-filled.
	require.Len(t, result.MonthlyBuckets, 12)
	for _, bucket := range result.MonthlyBuckets {
		assert.True(t, bucket.Inflow.IsZero())
		assert.True(t, bucket.Outflow.IsZero())
	}
}

func TestAggregate_DateRangeIsInclusiveAndExcludesOutsiders(t *testing.T) {
	from, to := date(2025, time.February, 1), date(2025, time.February, 28)
	entries := []domain.JournalEntry{
		entry("before", date(2025, time.January, 31), "10.00", assetLine("cash", "Cash"), incomeLine("sales", "Sales")),
		entry("first-day", date(2025, time.February, 1), "20.00", assetLine("cash", "Cash"), incomeLine("sales", "Sales")),
		entry("last-day", date(2025, time.February, 28), "30.00", assetLine("cash", "Cash"), incomeLine("sales", "Sales")),
		entry("after", date(2025, time.March, 1), "40.00", assetLine("cash", "Cash"), incomeLine("sales", "Sales")),
	}

	result, err := ledger.Aggregate(entries, from, to)
	require.NoError(t, err)

	assert.True(t, dec("50.00").Equal(result.TotalRevenue), "got %s", result.TotalRevenue)
	require.Len(t, result.MonthlyBuckets, 1)
	assert.True(t, dec("50.00").Equal(result.MonthlyBuckets[0].Inflow))
}

func TestAggregate_MonthlyBuckets(t *testing.T) {
	from, to := date(2025, time.January, 1), date(2025, time.December, 31)
	entries := []domain.JournalEntry{
		entry("jan", date(2025, time.January, 15), "500.00", assetLine("cash", "Cash"), incomeLine("sales", "Sales")),
		entry("mar-income", date(2025, time.March, 3), "250.00", assetLine("cash", "Cash"), incomeLine("sales", "Sales")),
		entry("mar-expense", date(2025, time.March, 20), "75.00", expenseLine("ads", "Advertising"), assetLine("cash", "Cash")),
	}

	result, err := ledger.Aggregate(entries, from, to)
	require.NoError(t, err)
	require.Len(t, result.MonthlyBuckets, 12)

	jan := result.MonthlyBuckets[0]
	assert.Equal(t, time.January, jan.Month)
	assert.True(t, dec("500.00").Equal(jan.Inflow))
	assert.True(t, jan.Outflow.IsZero())

	feb := result.MonthlyBuckets[1]
	assert.True(t, feb.Inflow.IsZero())
	assert.True(t, feb.Outflow.IsZero())

	mar := result.MonthlyBuckets[2]
	assert.True(t, dec("250.00").Equal(mar.Inflow))
	assert.True(t, dec("75.00").Equal(mar.Outflow))
}

func TestAggregate_RefundReducesTotalsButNotBuckets(t *testing.T) {
	from, to := date(2025, time.January, 1), date(2025, time.December, 31)
	entries := []domain.JournalEntry{
		entry("sale", date(2025, time.May, 1), "300.00", assetLine("cash", "Cash"), incomeLine("sales", "Sales")),
		// Refund: debit income, credit cash. Period total drops; the
		// inflow bucket keeps only positive deltas.
		entry("refund", date(2025, time.May, 9), "100.00", incomeLine("sales", "Sales"), assetLine("cash", "Cash")),
	}

	result, err := ledger.Aggregate(entries, from, to)
	require.NoError(t, err)

	assert.True(t, dec("200.00").Equal(result.TotalRevenue))
	assert.True(t, dec("300.00").Equal(result.MonthlyBuckets[4].Inflow))
}

func TestAggregate_CategoryBreakdownTopFiveWithTieBreak(t *testing.T) {
	from, to := date(2025, time.January, 1), date(2025, time.December, 31)
	on := date(2025, time.June, 1)
	entries := []domain.JournalEntry{
		entry("e1", on, "100.00", expenseLine("x1", "Zeta Consulting"), assetLine("cash", "Cash")),
		entry("e2", on, "100.00", expenseLine("x2", "Alpha Consulting"), assetLine("cash", "Cash")),
		entry("e3", on, "900.00", expenseLine("x3", "Rent"), assetLine("cash", "Cash")),
		entry("e4", on, "500.00", expenseLine("x4", "Payroll"), assetLine("cash", "Cash")),
		entry("e5", on, "300.00", expenseLine("x5", "Software"), assetLine("cash", "Cash")),
		entry("e6", on, "50.00", expenseLine("x6", "Snacks"), assetLine("cash", "Cash")),
	}

	result, err := ledger.Aggregate(entries, from, to)
	require.NoError(t, err)

	require.Len(t, result.CategoryBreakdown, 5, "six categories truncate to top five")
	names := make([]string, len(result.CategoryBreakdown))
	for i, c := range result.CategoryBreakdown {
		names[i] = c.AccountName
	}
	// Equal totals (100.00) order by ascending name: Alpha before Zeta.
	assert.Equal(t, []string{"Rent", "Payroll", "Software", "Alpha Consulting", "Zeta Consulting"}, names)
}

func TestAggregate_UnknownAccountTypeFails(t *testing.T) {
	bad := domain.JournalLine{AccountID: "a", AccountName: "A", AccountType: "BOGUS", Debit: dec("5.00")}
	entries := []domain.JournalEntry{{
		EntryID:   "e1",
		EntryDate: date(2025, time.July, 1),
		Lines:     []domain.JournalLine{bad},
	}}

	_, err := ledger.Aggregate(entries, date(2025, time.January, 1), date(2025, time.December, 31))
	assert.Error(t, err)
}

func TestAccountBalances_FullHistoryNoDateFloor(t *testing.T) {
	entries := []domain.JournalEntry{
		entry("old", date(2019, time.December, 1), "1000.00", assetLine("cash", "Cash"), incomeLine("sales", "Sales")),
		entry("new", date(2025, time.June, 1), "250.00", expenseLine("rent", "Rent"), assetLine("cash", "Cash")),
	}

	balances, err := ledger.AccountBalances(entries)
	require.NoError(t, err)
	require.Len(t, balances, 3)

	byID := map[string]domain.AccountBalance{}
	for _, b := range balances {
		byID[b.AccountID] = b
	}
	assert.True(t, dec("750.00").Equal(byID["cash"].Balance), "old activity still counts")
	assert.True(t, dec("1000.00").Equal(byID["sales"].Balance))
	assert.True(t, dec("250.00").Equal(byID["rent"].Balance))

	// Sorted by account name.
	assert.Equal(t, "Cash", balances[0].AccountName)
	assert.Equal(t, "Rent", balances[1].AccountName)
	assert.Equal(t, "Sales", balances[2].AccountName)
}

func TestTransactionRows_FlattensLinesWithEntryFields(t *testing.T) {
	e := entry("e1", date(2025, time.August, 4), "80.00", expenseLine("ads", "Advertising"), assetLine("cash", "Cash"))
	e.Description = "Campaign invoice"
	e.Reference = "INV-42"

	rows := ledger.TransactionRows([]domain.JournalEntry{e})
	require.Len(t, rows, 2)
	assert.Equal(t, "Campaign invoice", rows[0].Description)
	assert.Equal(t, "INV-42", rows[0].Reference)
	assert.Equal(t, "Advertising", rows[0].AccountName)
	assert.True(t, dec("80.00").Equal(rows[0].Debit))
	assert.True(t, dec("80.00").Equal(rows[1].Credit))
}
