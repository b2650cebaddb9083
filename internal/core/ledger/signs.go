// Package ledger holds the pure computation core: the debit/credit sign
// convention, aggregation of journal entries into report figures, and chart
// of accounts tree assembly. Nothing in this package touches storage; callers
// hand it already-fetched, account-resolved data, which keeps every rule unit
// testable against fixtures.
package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/pennyledger/pennyledger_app/internal/core/domain"
)

// SignedDelta applies the accounting sign convention to a journal line and
// returns the signed effect on its account's balance.
//
// DEBIT to ASSET/EXPENSE -> positive (+)
// CREDIT to ASSET/EXPENSE -> negative (-)
// DEBIT to LIABILITY/EQUITY/INCOME -> negative (-)
// CREDIT to LIABILITY/EQUITY/INCOME -> positive (+)
//
// Every derived figure in the application flows through this one function;
// applying the convention anywhere else is a bug.
func SignedDelta(line domain.JournalLine, accountType domain.AccountType) (decimal.Decimal, error) {
	amount := line.Amount()
	isDebit := line.IsDebit()

	switch accountType {
	case domain.Asset, domain.Expense:
		if !isDebit {
			amount = amount.Neg()
		}
	case domain.Liability, domain.Equity, domain.Income:
		if isDebit {
			amount = amount.Neg()
		}
	default:
		return decimal.Zero, fmt.Errorf("unknown account type %q for account %s", accountType, line.AccountID)
	}
	return amount, nil
}
