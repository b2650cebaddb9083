package services

import "github.com/pennyledger/pennyledger_app/internal/core/domain"

// chartEntry is one account of the standard seeded chart. ParentCode refers
// to another entry of the same chart.
type chartEntry struct {
	Code        string
	Name        string
	Type        domain.AccountType
	ParentCode  string
	Description string
}

// defaultChart is the chart of accounts seeded into a fresh organization.
// Codes follow the usual small-business numbering: 1xxx assets, 2xxx
// liabilities, 3xxx equity, 4xxx income, 5xxx expenses.
var defaultChart = []chartEntry{
	{Code: "1000", Name: "Cash", Type: domain.Asset},
	{Code: "1100", Name: "Bank Account", Type: domain.Asset},
	{Code: "1200", Name: "Accounts Receivable", Type: domain.Asset},
	{Code: "1500", Name: "Equipment", Type: domain.Asset},

	{Code: "2000", Name: "Accounts Payable", Type: domain.Liability},
	{Code: "2100", Name: "Credit Card", Type: domain.Liability},
	{Code: "2200", Name: "Taxes Payable", Type: domain.Liability},

	{Code: "3000", Name: "Owner's Equity", Type: domain.Equity},
	{Code: "3900", Name: "Retained Earnings", Type: domain.Equity},

	{Code: "4000", Name: "Sales Revenue", Type: domain.Income},
	{Code: "4100", Name: "Service Revenue", Type: domain.Income},
	{Code: "4900", Name: "Other Income", Type: domain.Income},

	{Code: "5000", Name: "Rent", Type: domain.Expense},
	{Code: "5100", Name: "Payroll", Type: domain.Expense},
	{Code: "5200", Name: "Software & Subscriptions", Type: domain.Expense},
	{Code: "5300", Name: "Office Supplies", Type: domain.Expense},
	{Code: "5400", Name: "Utilities", Type: domain.Expense},
	{Code: "5500", Name: "Travel", Type: domain.Expense},
	{Code: "5600", Name: "Marketing", Type: domain.Expense},
	{Code: "5900", Name: "Miscellaneous", Type: domain.Expense},
}
