package repositories

import (
	"context"
	"time"

	"github.com/pennyledger/pennyledger_app/internal/core/domain"
)

// JournalEntryReader defines read operations for journal entry data
type JournalEntryReader interface {
	// FindEntryByID retrieves a specific journal entry by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntriesByOrganization retrieves a paginated list of entries for an
	// organization using token-based pagination, newest entry date first with
	// created_at as tiebreak. A nil from or to leaves that bound open.
	// It returns the entries, a token for the next page, and an error.
	ListEntriesByOrganization(ctx context.Context, organizationID string, from, to *time.Time, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// JournalLineReader defines read operations for journal line data
type JournalLineReader interface {
	// FindLinesByEntryID retrieves all lines for a single entry, each line
	// carrying the joined account name and type.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// FindLinesByEntryIDs retrieves lines for multiple entries, grouped by entry ID.
	FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error)
}

// JournalEntryWriter defines write operations for journal entry data
type JournalEntryWriter interface {
	// SaveEntry persists an entry and its lines within a single transaction.
	SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalEntryReader
	JournalLineReader
	JournalEntryWriter
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
