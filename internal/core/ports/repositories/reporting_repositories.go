package repositories

import (
	"context"
	"time"

	"github.com/pennyledger/pennyledger_app/internal/core/domain"
)

// ReportingRepository defines read operations backing report generation
type ReportingRepository interface {
	// GetLedgerEntries retrieves every entry for an organization whose entry
	// date falls within [from, to], with lines attached and each line carrying
	// the joined account name and type. Aggregation happens in memory, so this
	// is deliberately unpaginated.
	GetLedgerEntries(ctx context.Context, organizationID string, from, to time.Time) ([]domain.JournalEntry, error)

	// GetAllLedgerEntries retrieves every entry for an organization regardless
	// of date. Running balances are computed over full history.
	GetAllLedgerEntries(ctx context.Context, organizationID string) ([]domain.JournalEntry, error)
}
