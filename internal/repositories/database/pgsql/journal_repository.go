package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pennyledger/pennyledger_app/internal/apperrors"
	"github.com/pennyledger/pennyledger_app/internal/core/domain"
	portsrepo "github.com/pennyledger/pennyledger_app/internal/core/ports/repositories"
	"github.com/pennyledger/pennyledger_app/internal/models"
	"github.com/pennyledger/pennyledger_app/internal/utils/mapping"
	"github.com/pennyledger/pennyledger_app/internal/utils/pagination"
)

const entryColumns = `entry_id, organization_id, entry_date, description, reference, created_at, created_by, last_updated_at, last_updated_by`

// lineWithAccountColumns joins accounts so every line carries the account's
// display name and type.
const lineWithAccountColumns = `l.line_id, l.entry_id, l.account_id, l.debit, l.credit, l.description, a.name, a.account_type`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

func scanEntryRow(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	var reference sql.NullString

	err := row.Scan(
		&m.EntryID,
		&m.OrganizationID,
		&m.EntryDate,
		&m.Description,
		&reference,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.JournalEntry{}, err
	}

	if reference.Valid {
		m.Reference = reference.String
	}
	return m, nil
}

func scanLineRow(row pgx.Row) (models.JournalLine, error) {
	var m models.JournalLine
	var description sql.NullString

	err := row.Scan(
		&m.LineID,
		&m.EntryID,
		&m.AccountID,
		&m.Debit,
		&m.Credit,
		&description,
		&m.AccountName,
		&m.AccountType,
	)
	if err != nil {
		return models.JournalLine{}, err
	}

	if description.Valid {
		m.Description = description.String
	}
	return m, nil
}

// SaveEntry persists an entry and its lines atomically.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry, lines []domain.JournalLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelJournalEntry(entry)

	entryQuery := `
		INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`

	_, err = tx.Exec(ctx, entryQuery,
		m.EntryID,
		m.OrganizationID,
		m.EntryDate,
		m.Description,
		nullableString(m.Reference),
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("%w: entry %s already exists", apperrors.ErrDuplicate, m.EntryID)
		}
		return fmt.Errorf("failed to insert journal entry %s: %w", m.EntryID, err)
	}

	lineQuery := `
		INSERT INTO journal_lines (line_id, entry_id, account_id, debit, credit, description)
		VALUES ($1, $2, $3, $4, $5, $6);
	`

	batch := &pgx.Batch{}
	for _, line := range lines {
		lm := mapping.ToModelJournalLine(line)
		batch.Queue(lineQuery,
			lm.LineID,
			lm.EntryID,
			lm.AccountID,
			lm.Debit,
			lm.Credit,
			nullableString(lm.Description),
		)
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
				batchErr = fmt.Errorf("%w: line %s references an unknown account", apperrors.ErrConflict, lines[i].LineID)
			} else {
				batchErr = fmt.Errorf("failed to insert journal line %s: %w", lines[i].LineID, err)
			}
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close journal line batch: %w", err)
	}
	if batchErr != nil {
		return batchErr
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves an entry row by its ID. Lines are not attached.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE entry_id = $1;
	`

	m, err := scanEntryRow(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry by ID %s: %w", entryID, err)
	}

	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

// ListEntriesByOrganization retrieves a page of entries ordered by entry date
// descending with created_at as tiebreak. The next token points at the last
// entry of the returned page.
func (r *PgxJournalRepository) ListEntriesByOrganization(ctx context.Context, organizationID string, from, to *time.Time, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	query := `
		SELECT ` + entryColumns + `
		FROM journal_entries
		WHERE organization_id = $1
	`
	args := []any{organizationID}

	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND entry_date >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND entry_date <= $%d", len(args))
	}

	if nextToken != nil && *nextToken != "" {
		entryDate, createdAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, entryDate, createdAt)
		query += fmt.Sprintf(" AND (entry_date, created_at) < ($%d, $%d)", len(args)-1, len(args))
	}

	args = append(args, fetchLimit)
	query += fmt.Sprintf(" ORDER BY entry_date DESC, created_at DESC LIMIT $%d;", len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query journal entries for organization %s: %w", organizationID, err)
	}
	defer rows.Close()

	modelEntries := []models.JournalEntry{}
	for rows.Next() {
		m, err := scanEntryRow(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan journal entry row for organization %s: %w", organizationID, err)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating journal entry rows for organization %s: %w", organizationID, err)
	}

	var newNextToken *string
	if len(modelEntries) == fetchLimit {
		lastEntry := modelEntries[limit-1]
		tokenStr := pagination.EncodeToken(lastEntry.EntryDate, lastEntry.CreatedAt)
		newNextToken = &tokenStr
		modelEntries = modelEntries[:limit]
	}

	entries := make([]domain.JournalEntry, len(modelEntries))
	for i, m := range modelEntries {
		entries[i] = mapping.ToDomainJournalEntry(m)
	}

	return entries, newNextToken, nil
}

// FindLinesByEntryID retrieves the lines of one entry with account details attached.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `
		SELECT ` + lineWithAccountColumns + `
		FROM journal_lines l
		JOIN accounts a ON a.account_id = l.account_id
		WHERE l.entry_id = $1
		ORDER BY l.line_id;
	`

	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	modelLines := []models.JournalLine{}
	for rows.Next() {
		m, err := scanLineRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal line row for entry %s: %w", entryID, err)
		}
		modelLines = append(modelLines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal line rows for entry %s: %w", entryID, err)
	}

	return mapping.ToDomainJournalLineSlice(modelLines), nil
}

// FindLinesByEntryIDs retrieves lines for multiple entries in one round trip,
// grouped by entry ID.
func (r *PgxJournalRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error) {
	if len(entryIDs) == 0 {
		return map[string][]domain.JournalLine{}, nil
	}

	query := `
		SELECT ` + lineWithAccountColumns + `
		FROM journal_lines l
		JOIN accounts a ON a.account_id = l.account_id
		WHERE l.entry_id = ANY($1)
		ORDER BY l.entry_id, l.line_id;
	`

	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entries: %w", err)
	}
	defer rows.Close()

	linesMap := make(map[string][]domain.JournalLine)
	for rows.Next() {
		m, err := scanLineRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal line row during batch fetch: %w", err)
		}
		linesMap[m.EntryID] = append(linesMap[m.EntryID], mapping.ToDomainJournalLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal line rows during batch fetch: %w", err)
	}

	return linesMap, nil
}
