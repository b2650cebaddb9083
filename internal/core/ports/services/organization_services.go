package services

import (
	"context"

	"github.com/pennyledger/pennyledger_app/internal/core/domain"
)

// OrganizationReaderSvc defines read operations for organization data
type OrganizationReaderSvc interface {
	// FindOrganizationByID retrieves a specific organization by its ID.
	FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)
}

// OrganizationWriterSvc defines write operations for organization data
type OrganizationWriterSvc interface {
	// CreateOrganization persists a new organization and enrolls the creator
	// as its admin.
	CreateOrganization(ctx context.Context, name string, creatorUserID string) (*domain.Organization, error)

	// AddUserToOrganization adds a user to an organization with a specific role.
	// Only organization admins may add members.
	AddUserToOrganization(ctx context.Context, addingUserID, targetUserID, organizationID string, role domain.OrganizationRole) error
}

// OrganizationAuthorizerSvc defines operations for organization authorization
type OrganizationAuthorizerSvc interface {
	// AuthorizeUserAction checks if a user holds at least the required role in
	// an organization. Returns apperrors.ErrForbidden otherwise.
	AuthorizeUserAction(ctx context.Context, userID, organizationID string, requiredRole domain.OrganizationRole) error
}

// OrganizationSvcFacade combines all organization-related service interfaces
type OrganizationSvcFacade interface {
	OrganizationReaderSvc
	OrganizationWriterSvc
	OrganizationAuthorizerSvc
}
