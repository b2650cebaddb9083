package services

import (
	"context"

	"github.com/pennyledger/pennyledger_app/internal/core/domain"
	"github.com/pennyledger/pennyledger_app/internal/dto"
)

// JournalReaderSvc defines read operations for journal entry data
type JournalReaderSvc interface {
	// GetEntryByID retrieves a specific journal entry with its lines.
	GetEntryByID(ctx context.Context, organizationID string, entryID string, requestingUserID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated list of entries in an organization.
	ListEntries(ctx context.Context, organizationID string, requestingUserID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// JournalWriterSvc defines write operations for journal entry data
type JournalWriterSvc interface {
	// RecordEntry validates and persists a new balanced journal entry with its lines.
	RecordEntry(ctx context.Context, organizationID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
