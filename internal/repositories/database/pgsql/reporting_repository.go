package pgsql

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pennyledger/pennyledger_app/internal/core/domain"
	portsrepo "github.com/pennyledger/pennyledger_app/internal/core/ports/repositories"
	"github.com/pennyledger/pennyledger_app/internal/models"
	"github.com/pennyledger/pennyledger_app/internal/utils/mapping"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for aggregation reads.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxReportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// ledgerQuery selects entries joined with their lines and account details in
// one pass. Aggregation walks the full result set, so the query streams rows
// ordered by entry rather than paginating.
const ledgerQuery = `
	SELECT
		e.entry_id, e.organization_id, e.entry_date, e.description, e.reference,
		e.created_at, e.created_by, e.last_updated_at, e.last_updated_by,
		l.line_id, l.account_id, l.debit, l.credit, l.description,
		a.name, a.account_type
	FROM journal_entries e
	JOIN journal_lines l ON l.entry_id = e.entry_id
	JOIN accounts a ON a.account_id = l.account_id
	WHERE e.organization_id = $1
`

const ledgerOrder = ` ORDER BY e.entry_date DESC, e.created_at DESC, l.line_id;`

// GetLedgerEntries retrieves entries within [from, to] with lines attached.
func (r *PgxReportingRepository) GetLedgerEntries(ctx context.Context, organizationID string, from, to time.Time) ([]domain.JournalEntry, error) {
	query := ledgerQuery + ` AND e.entry_date >= $2 AND e.entry_date <= $3` + ledgerOrder
	return r.queryLedger(ctx, query, organizationID, from, to)
}

// GetAllLedgerEntries retrieves every entry for the organization with lines attached.
func (r *PgxReportingRepository) GetAllLedgerEntries(ctx context.Context, organizationID string) ([]domain.JournalEntry, error) {
	query := ledgerQuery + ledgerOrder
	return r.queryLedger(ctx, query, organizationID)
}

func (r *PgxReportingRepository) queryLedger(ctx context.Context, query string, args ...any) ([]domain.JournalEntry, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	entryIndex := make(map[string]int)

	for rows.Next() {
		var em models.JournalEntry
		var lm models.JournalLine
		var reference, lineDescription sql.NullString

		err := rows.Scan(
			&em.EntryID,
			&em.OrganizationID,
			&em.EntryDate,
			&em.Description,
			&reference,
			&em.CreatedAt,
			&em.CreatedBy,
			&em.LastUpdatedAt,
			&em.LastUpdatedBy,
			&lm.LineID,
			&lm.AccountID,
			&lm.Debit,
			&lm.Credit,
			&lineDescription,
			&lm.AccountName,
			&lm.AccountType,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger row: %w", err)
		}

		if reference.Valid {
			em.Reference = reference.String
		}
		if lineDescription.Valid {
			lm.Description = lineDescription.String
		}
		lm.EntryID = em.EntryID

		idx, ok := entryIndex[em.EntryID]
		if !ok {
			entries = append(entries, mapping.ToDomainJournalEntry(em))
			idx = len(entries) - 1
			entryIndex[em.EntryID] = idx
		}
		entries[idx].Lines = append(entries[idx].Lines, mapping.ToDomainJournalLine(lm))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger rows: %w", err)
	}

	return entries, nil
}
