package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the row shape of the journal_entries table.
type JournalEntry struct {
	EntryID        string    `json:"entryID"`
	OrganizationID string    `json:"organizationID"`
	EntryDate      time.Time `json:"entryDate"`
	Description    string    `json:"description"`
	Reference      string    `json:"reference"` // Empty string when NULL in the DB
	AuditFields
}

// JournalLine is the row shape of the journal_lines table. AccountName and
// AccountType are populated by the joined listing query, not stored columns.
type JournalLine struct {
	LineID      string          `json:"lineID"`
	EntryID     string          `json:"entryID"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`

	AccountName string      `json:"accountName,omitempty"`
	AccountType AccountType `json:"accountType,omitempty"`
}
