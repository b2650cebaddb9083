package services

import (
	"context"
	"time"

	"github.com/pennyledger/pennyledger_app/internal/dto"
)

// ReportingSvc defines operations for generating financial snapshots
type ReportingSvc interface {
	// GetDashboardSnapshot builds the dashboard view for a period: headline
	// totals, monthly inflow/outflow buckets, top expense categories, and
	// full-history account balances.
	GetDashboardSnapshot(ctx context.Context, organizationID string, from, to time.Time, requestingUserID string) (*dto.DashboardResponse, error)

	// GetReportSnapshot builds the report view for a period.
	GetReportSnapshot(ctx context.Context, organizationID string, from, to time.Time, requestingUserID string) (*dto.ReportResponse, error)

	// GetTransactionList retrieves a paginated, flattened list of journal lines.
	GetTransactionList(ctx context.Context, organizationID string, requestingUserID string, params dto.TransactionListParams) (*dto.TransactionListResponse, error)
}
