package repositories

import (
	"context"

	"github.com/pennyledger/pennyledger_app/internal/core/domain"
)

// OrganizationReader defines read operations for organization data
type OrganizationReader interface {
	// FindOrganizationByID retrieves a specific organization by its ID.
	FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)

	// FindMemberRole retrieves the role a user holds in an organization.
	// Returns apperrors.ErrNotFound when the user is not a member.
	FindMemberRole(ctx context.Context, userID string, organizationID string) (*domain.OrganizationRole, error)
}

// OrganizationWriter defines write operations for organization data
type OrganizationWriter interface {
	// SaveOrganization persists a new organization.
	SaveOrganization(ctx context.Context, org domain.Organization) error

	// SaveMember persists a membership row linking a user to an organization.
	SaveMember(ctx context.Context, member domain.OrganizationMember) error
}

// OrganizationRepositoryFacade combines all organization-related repository interfaces
type OrganizationRepositoryFacade interface {
	OrganizationReader
	OrganizationWriter
}

// OrganizationRepositoryWithTx extends OrganizationRepositoryFacade with transaction capabilities
type OrganizationRepositoryWithTx interface {
	OrganizationRepositoryFacade
	TransactionManager
}
