package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pennyledger/pennyledger_app/internal/apperrors"
	"github.com/pennyledger/pennyledger_app/internal/core/domain"
	portsrepo "github.com/pennyledger/pennyledger_app/internal/core/ports/repositories"
	portssvc "github.com/pennyledger/pennyledger_app/internal/core/ports/services"
	"github.com/pennyledger/pennyledger_app/internal/dto"
	"github.com/shopspring/decimal"
)

// journalService implements the JournalSvcFacade interface
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountReader
}

// JournalServiceOption is a functional option for configuring the journal service
type JournalServiceOption func(*journalService)

// WithJournalOrganizationAuthorizer adds organization authorizer dependency
func WithJournalOrganizationAuthorizer(authorizer portssvc.OrganizationAuthorizerSvc) JournalServiceOption {
	return func(s *journalService) {
		s.OrganizationAuthorizer = authorizer
	}
}

// NewJournalService creates a new journal service with the provided options
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountReader, options ...JournalServiceOption) portssvc.JournalSvcFacade {
	svc := &journalService{
		journalRepo: journalRepo,
		accountRepo: accountRepo,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure journalService implements the JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// RecordEntry validates a new journal entry and persists it with its lines as
// one transaction. Validation order: lines present, per-line debit-xor-credit
// and scale, account resolution, balance.
func (s *journalService) RecordEntry(ctx context.Context, organizationID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, organizationID, domain.RoleMember); err != nil {
		s.LogError(ctx, err, "User not authorized to record entry",
			slog.String("user_id", creatorUserID),
			slog.String("organization_id", organizationID))
		return nil, err
	}

	if len(req.Lines) == 0 {
		return nil, fmt.Errorf("entry has no lines: %w", apperrors.ErrInvalidLine)
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	accountIDs := make([]string, 0, len(req.Lines))
	for i, line := range req.Lines {
		if err := validateLineAmounts(line.Debit, line.Credit); err != nil {
			return nil, fmt.Errorf("line %d: %w", i, err)
		}
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
		accountIDs = append(accountIDs, line.AccountID)
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve accounts for entry",
			slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to resolve accounts: %w", err)
	}
	for i, line := range req.Lines {
		account, ok := accounts[line.AccountID]
		if !ok {
			return nil, fmt.Errorf("line %d references account %s: %w", i, line.AccountID, apperrors.ErrUnknownAccount)
		}
		if account.OrganizationID != organizationID {
			// Same response as missing, to obscure existence
			return nil, fmt.Errorf("line %d references account %s: %w", i, line.AccountID, apperrors.ErrUnknownAccount)
		}
		if !account.IsActive {
			return nil, fmt.Errorf("line %d references inactive account %s: %w", i, line.AccountID, apperrors.ErrUnknownAccount)
		}
	}

	if !totalDebit.Equal(totalCredit) {
		return nil, fmt.Errorf("debits %s != credits %s: %w", totalDebit, totalCredit, apperrors.ErrUnbalancedEntry)
	}

	now := time.Now()
	entry := domain.JournalEntry{
		EntryID:        uuid.NewString(),
		OrganizationID: organizationID,
		EntryDate:      req.EntryDate,
		Description:    req.Description,
		Reference:      req.Reference,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	lines := make([]domain.JournalLine, len(req.Lines))
	for i, line := range req.Lines {
		account := accounts[line.AccountID]
		lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     entry.EntryID,
			AccountID:   line.AccountID,
			Debit:       line.Debit,
			Credit:      line.Credit,
			Description: line.Description,
			AccountName: account.Name,
			AccountType: account.AccountType,
		}
	}

	if err := s.journalRepo.SaveEntry(ctx, entry, lines); err != nil {
		s.LogError(ctx, err, "Failed to save journal entry",
			slog.String("entry_id", entry.EntryID),
			slog.String("organization_id", organizationID))
		return nil, err
	}

	entry.Lines = lines
	s.LogInfo(ctx, "Journal entry recorded",
		slog.String("entry_id", entry.EntryID),
		slog.String("organization_id", organizationID),
		slog.Int("line_count", len(lines)))
	return &entry, nil
}

func (s *journalService) GetEntryByID(ctx context.Context, organizationID string, entryID string, requestingUserID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find entry by ID",
				slog.String("entry_id", entryID))
		}
		return nil, err
	}

	if entry.OrganizationID != organizationID {
		s.LogDebug(ctx, "Entry found but belongs to different organization",
			slog.String("entry_id", entryID),
			slog.String("entry_organization", entry.OrganizationID),
			slog.String("requested_organization", organizationID))
		// Return NotFound to obscure existence from other organizations
		return nil, apperrors.ErrNotFound
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch lines for entry",
			slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to fetch lines for entry %s: %w", entryID, err)
	}
	entry.Lines = lines

	s.LogDebug(ctx, "Entry retrieved successfully",
		slog.String("entry_id", entryID),
		slog.Int("line_count", len(lines)))
	return entry, nil
}

func (s *journalService) ListEntries(ctx context.Context, organizationID string, requestingUserID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	entries, nextToken, err := s.journalRepo.ListEntriesByOrganization(ctx, organizationID, params.From, params.To, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entries from repository",
			slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to retrieve entries: %w", err)
	}

	// Fetch lines in one batch for all entries when requested
	var linesMap map[string][]domain.JournalLine
	if params.IncludeLines && len(entries) > 0 {
		entryIDs := make([]string, len(entries))
		for i, entry := range entries {
			entryIDs[i] = entry.EntryID
		}
		linesMap, err = s.journalRepo.FindLinesByEntryIDs(ctx, entryIDs)
		if err != nil {
			s.LogError(ctx, err, "Failed to fetch lines for entries",
				slog.String("organization_id", organizationID))
			return nil, fmt.Errorf("failed to retrieve lines for entries: %w", err)
		}
	}

	responses := make([]dto.EntryResponse, len(entries))
	for i := range entries {
		if linesMap != nil {
			entries[i].Lines = linesMap[entries[i].EntryID]
		}
		responses[i] = dto.ToEntryResponse(&entries[i])
	}

	return &dto.ListEntriesResponse{Entries: responses, NextToken: nextToken}, nil
}

// validateLineAmounts enforces the debit-xor-credit rule at 2 decimal places.
func validateLineAmounts(debit, credit decimal.Decimal) error {
	if debit.IsNegative() || credit.IsNegative() {
		return fmt.Errorf("amounts must not be negative: %w", apperrors.ErrInvalidLine)
	}
	if debit.IsPositive() == credit.IsPositive() {
		return fmt.Errorf("exactly one of debit and credit must be positive: %w", apperrors.ErrInvalidLine)
	}
	if !debit.Equal(debit.Round(2)) || !credit.Equal(credit.Round(2)) {
		return fmt.Errorf("amounts are limited to 2 decimal places: %w", apperrors.ErrInvalidLine)
	}
	return nil
}
