package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pennyledger/pennyledger_app/internal/apperrors"
	"github.com/pennyledger/pennyledger_app/internal/core/domain"
	portsrepo "github.com/pennyledger/pennyledger_app/internal/core/ports/repositories"
	"github.com/pennyledger/pennyledger_app/internal/models"
	"github.com/pennyledger/pennyledger_app/internal/utils/mapping"
)

type PgxOrganizationRepository struct {
	BaseRepository
}

// newPgxOrganizationRepository creates a new repository for organization data.
func newPgxOrganizationRepository(pool *pgxpool.Pool) portsrepo.OrganizationRepositoryWithTx {
	return &PgxOrganizationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxOrganizationRepository implements portsrepo.OrganizationRepositoryWithTx
var _ portsrepo.OrganizationRepositoryWithTx = (*PgxOrganizationRepository)(nil)

// SaveOrganization persists a new organization.
func (r *PgxOrganizationRepository) SaveOrganization(ctx context.Context, org domain.Organization) error {
	m := mapping.ToModelOrganization(org)

	query := `
		INSERT INTO organizations (organization_id, name, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6);
	`

	_, err := r.Pool.Exec(ctx, query,
		m.OrganizationID,
		m.Name,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return fmt.Errorf("%w: organization %s already exists", apperrors.ErrDuplicate, m.OrganizationID)
		}
		return fmt.Errorf("failed to save organization %s: %w", m.OrganizationID, err)
	}
	return nil
}

// SaveMember upserts a membership row, replacing the role on conflict so
// re-adding a user adjusts their access instead of failing.
func (r *PgxOrganizationRepository) SaveMember(ctx context.Context, member domain.OrganizationMember) error {
	m := mapping.ToModelOrganizationMember(member)

	query := `
		INSERT INTO organization_members (organization_id, user_id, role, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (organization_id, user_id)
		DO UPDATE SET role = EXCLUDED.role, last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by;
	`

	_, err := r.Pool.Exec(ctx, query,
		m.OrganizationID,
		m.UserID,
		m.Role,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return fmt.Errorf("%w: organization %s does not exist", apperrors.ErrNotFound, m.OrganizationID)
		}
		return fmt.Errorf("failed to save membership for user %s in organization %s: %w", m.UserID, m.OrganizationID, err)
	}
	return nil
}

// FindOrganizationByID retrieves an organization by its ID.
func (r *PgxOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	query := `
		SELECT organization_id, name, created_at, created_by, last_updated_at, last_updated_by
		FROM organizations
		WHERE organization_id = $1;
	`

	var m models.Organization
	err := r.Pool.QueryRow(ctx, query, organizationID).Scan(
		&m.OrganizationID,
		&m.Name,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find organization by ID %s: %w", organizationID, err)
	}

	org := mapping.ToDomainOrganization(m)
	return &org, nil
}

// FindMemberRole retrieves the role a user holds in an organization.
func (r *PgxOrganizationRepository) FindMemberRole(ctx context.Context, userID string, organizationID string) (*domain.OrganizationRole, error) {
	query := `
		SELECT role
		FROM organization_members
		WHERE user_id = $1 AND organization_id = $2;
	`

	var roleStr string
	err := r.Pool.QueryRow(ctx, query, userID, organizationID).Scan(&roleStr)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find member role for user %s in organization %s: %w", userID, organizationID, err)
	}

	role := domain.OrganizationRole(roleStr)
	return &role, nil
}
