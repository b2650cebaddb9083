package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pennyledger/pennyledger_app/internal/core/domain"
	"github.com/pennyledger/pennyledger_app/internal/core/ledger"
	portsrepo "github.com/pennyledger/pennyledger_app/internal/core/ports/repositories"
	portssvc "github.com/pennyledger/pennyledger_app/internal/core/ports/services"
	"github.com/pennyledger/pennyledger_app/internal/dto"
)

// recentEntryCount caps the recent entry strip on the dashboard.
const recentEntryCount = 5

// reportingService implements the ReportingSvc interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	journalRepo   portsrepo.JournalRepositoryFacade
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingOrganizationAuthorizer sets the organization authorizer for the reporting service.
func WithReportingOrganizationAuthorizer(authorizer portssvc.OrganizationAuthorizerSvc) ReportingServiceOption {
	return func(s *reportingService) {
		s.OrganizationAuthorizer = authorizer
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(reportingRepo portsrepo.ReportingRepository, journalRepo portsrepo.JournalRepositoryFacade, options ...ReportingServiceOption) portssvc.ReportingSvc {
	svc := &reportingService{
		reportingRepo: reportingRepo,
		journalRepo:   journalRepo,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingSvc interface
var _ portssvc.ReportingSvc = (*reportingService)(nil)

// GetDashboardSnapshot builds the dashboard view for a period. Account
// balances are best-effort: when full history cannot be fetched the snapshot
// carries an explicit degraded flag instead of failing outright.
func (s *reportingService) GetDashboardSnapshot(ctx context.Context, organizationID string, from, to time.Time, requestingUserID string) (*dto.DashboardResponse, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		s.LogError(ctx, err, "User not authorized to view dashboard",
			slog.String("user_id", requestingUserID),
			slog.String("organization_id", organizationID))
		return nil, err
	}

	entries, err := s.reportingRepo.GetLedgerEntries(ctx, organizationID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve ledger entries",
			slog.String("organization_id", organizationID),
			slog.String("from", from.Format("2006-01-02")),
			slog.String("to", to.Format("2006-01-02")))
		return nil, fmt.Errorf("failed to retrieve ledger entries: %w", err)
	}

	agg, err := ledger.Aggregate(entries, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate ledger entries",
			slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to aggregate ledger entries: %w", err)
	}

	resp := &dto.DashboardResponse{
		FromDate:      from.Format("2006-01-02"),
		ToDate:        to.Format("2006-01-02"),
		TotalRevenue:  agg.TotalRevenue,
		TotalExpenses: agg.TotalExpenses,
		NetProfit:     agg.NetProfit,
		ProfitMargin:  agg.ProfitMargin,
		Monthly:       dto.ToMonthBucketResponses(agg.MonthlyBuckets),
		TopExpenses:   dto.ToCategoryTotalResponses(agg.CategoryBreakdown),
		RecentEntries: recentEntries(entries, recentEntryCount),
	}

	// Balances run over full history, not the requested period
	allEntries, err := s.reportingRepo.GetAllLedgerEntries(ctx, organizationID)
	if err != nil {
		s.LogWarn(ctx, "Failed to retrieve full-history entries, serving dashboard without balances",
			"error", err,
			slog.String("organization_id", organizationID))
		resp.Balances = []dto.AccountBalanceResponse{}
		resp.BalancesDegraded = true
		return resp, nil
	}

	balances, err := ledger.AccountBalances(allEntries)
	if err != nil {
		s.LogWarn(ctx, "Failed to compute account balances, serving dashboard without balances",
			"error", err,
			slog.String("organization_id", organizationID))
		resp.Balances = []dto.AccountBalanceResponse{}
		resp.BalancesDegraded = true
		return resp, nil
	}

	resp.Balances = dto.ToAccountBalanceResponses(balances)

	s.LogInfo(ctx, "Dashboard snapshot generated",
		slog.String("organization_id", organizationID),
		slog.Int("entry_count", len(entries)))
	return resp, nil
}

// GetReportSnapshot builds the report view for a period, including totals by
// account type.
func (s *reportingService) GetReportSnapshot(ctx context.Context, organizationID string, from, to time.Time, requestingUserID string) (*dto.ReportResponse, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		s.LogError(ctx, err, "User not authorized to view report",
			slog.String("user_id", requestingUserID),
			slog.String("organization_id", organizationID))
		return nil, err
	}

	entries, err := s.reportingRepo.GetLedgerEntries(ctx, organizationID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve ledger entries",
			slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to retrieve ledger entries: %w", err)
	}

	agg, err := ledger.Aggregate(entries, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate ledger entries",
			slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to aggregate ledger entries: %w", err)
	}

	resp := dto.ToReportResponse(&agg, from, to)

	s.LogInfo(ctx, "Report snapshot generated",
		slog.String("organization_id", organizationID),
		slog.Int("entry_count", len(entries)))
	return &resp, nil
}

// GetTransactionList flattens a page of journal entries into line-level rows
// and applies the search and status filters in memory over the resolved
// projection.
func (s *reportingService) GetTransactionList(ctx context.Context, organizationID string, requestingUserID string, params dto.TransactionListParams) (*dto.TransactionListResponse, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	entries, nextToken, err := s.journalRepo.ListEntriesByOrganization(ctx, organizationID, params.From, params.To, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entries for transaction view",
			slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to retrieve entries: %w", err)
	}

	if len(entries) > 0 {
		entryIDs := make([]string, len(entries))
		for i, entry := range entries {
			entryIDs[i] = entry.EntryID
		}
		linesMap, err := s.journalRepo.FindLinesByEntryIDs(ctx, entryIDs)
		if err != nil {
			s.LogError(ctx, err, "Failed to fetch lines for transaction view",
				slog.String("organization_id", organizationID))
			return nil, fmt.Errorf("failed to retrieve lines: %w", err)
		}
		for i := range entries {
			entries[i].Lines = linesMap[entries[i].EntryID]
		}
	}

	rows := dto.ToTransactionRowResponses(ledger.TransactionRows(entries))
	rows = filterTransactionRows(rows, params.Search, params.Status)

	return &dto.TransactionListResponse{Transactions: rows, NextToken: nextToken}, nil
}

// recentEntries returns up to n newest entries by entry date as DTOs.
// Entries arrive ordered newest first from the repository.
func recentEntries(entries []domain.JournalEntry, n int) []dto.EntryResponse {
	if len(entries) < n {
		n = len(entries)
	}
	responses := make([]dto.EntryResponse, n)
	for i := 0; i < n; i++ {
		responses[i] = dto.ToEntryResponse(&entries[i])
	}
	return responses
}

// filterTransactionRows applies case-insensitive search over descriptions and
// account names, and the presentation-only status filter.
func filterTransactionRows(rows []dto.TransactionRowResponse, search, status string) []dto.TransactionRowResponse {
	if search == "" && status == "" {
		return rows
	}

	needle := strings.ToLower(search)
	filtered := make([]dto.TransactionRowResponse, 0, len(rows))
	for _, row := range rows {
		if status != "" && !strings.EqualFold(status, row.Status) {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(row.Description), needle) &&
			!strings.Contains(strings.ToLower(row.AccountName), needle) {
			continue
		}
		filtered = append(filtered, row)
	}
	return filtered
}
