package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry represents a single, balanced financial event composed of
// debit/credit lines. An entry and its lines are persisted as one atomic
// unit; an entry without lines must never be observable.
type JournalEntry struct {
	EntryID        string        `json:"entryID"`        // Primary Key (UUID)
	OrganizationID string        `json:"organizationID"` // FK -> organizations.organization_id (NON-NULL)
	EntryDate      time.Time     `json:"entryDate"`      // Calendar date the event occurred (no time component semantics)
	Description    string        `json:"description"`    // User description
	Reference      string        `json:"reference"`      // Optional external reference (invoice no., receipt id)
	Lines          []JournalLine `json:"lines,omitempty"`
	AuditFields
}

// JournalLine is a single debit or credit against one account. Exactly one
// of Debit/Credit is strictly positive; the other is exactly zero. Amounts
// are currency-scaled to two decimal places.
type JournalLine struct {
	LineID      string          `json:"lineID"`  // Primary Key (UUID)
	EntryID     string          `json:"entryID"` // FK -> journal_entries.entry_id (Not Null)
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"` // Optional per-line note

	// Resolved from the accounts relation when entries are listed, so
	// downstream consumers (aggregator, transaction list) never re-query.
	AccountName string      `json:"accountName,omitempty"`
	AccountType AccountType `json:"accountType,omitempty"`
}

// IsDebit reports whether the line carries a positive debit amount.
func (l JournalLine) IsDebit() bool {
	return l.Debit.IsPositive()
}

// Amount returns the line's magnitude regardless of direction.
func (l JournalLine) Amount() decimal.Decimal {
	if l.IsDebit() {
		return l.Debit
	}
	return l.Credit
}
