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
)

// organizationService implements the OrganizationSvcFacade interface
type organizationService struct {
	BaseService
	orgRepo portsrepo.OrganizationRepositoryFacade
}

// NewOrganizationService creates a new organization service
func NewOrganizationService(repo portsrepo.OrganizationRepositoryFacade) portssvc.OrganizationSvcFacade {
	return &organizationService{
		orgRepo: repo,
	}
}

// Ensure organizationService implements the OrganizationSvcFacade interface
var _ portssvc.OrganizationSvcFacade = (*organizationService)(nil)

func (s *organizationService) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	org, err := s.orgRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find organization by ID",
				slog.String("organization_id", organizationID))
		}
		return nil, err
	}
	return org, nil
}

func (s *organizationService) CreateOrganization(ctx context.Context, name string, creatorUserID string) (*domain.Organization, error) {
	now := time.Now()
	org := domain.Organization{
		OrganizationID: uuid.NewString(),
		Name:           name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.orgRepo.SaveOrganization(ctx, org); err != nil {
		s.LogError(ctx, err, "Failed to save organization",
			slog.String("organization_id", org.OrganizationID))
		return nil, err
	}

	// Enroll the creator as admin so the organization is usable immediately
	member := domain.OrganizationMember{
		OrganizationID: org.OrganizationID,
		UserID:         creatorUserID,
		Role:           domain.RoleAdmin,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.orgRepo.SaveMember(ctx, member); err != nil {
		s.LogError(ctx, err, "Failed to enroll creator as admin",
			slog.String("organization_id", org.OrganizationID),
			slog.String("user_id", creatorUserID))
		return nil, err
	}

	s.LogInfo(ctx, "Organization created successfully",
		slog.String("organization_id", org.OrganizationID))
	return &org, nil
}

func (s *organizationService) AddUserToOrganization(ctx context.Context, addingUserID, targetUserID, organizationID string, role domain.OrganizationRole) error {
	if err := s.AuthorizeUserAction(ctx, addingUserID, organizationID, domain.RoleAdmin); err != nil {
		s.LogError(ctx, err, "User not authorized to add members",
			slog.String("user_id", addingUserID),
			slog.String("organization_id", organizationID))
		return err
	}

	now := time.Now()
	member := domain.OrganizationMember{
		OrganizationID: organizationID,
		UserID:         targetUserID,
		Role:           role,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     addingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: addingUserID,
		},
	}

	if err := s.orgRepo.SaveMember(ctx, member); err != nil {
		s.LogError(ctx, err, "Failed to add user to organization",
			slog.String("organization_id", organizationID),
			slog.String("target_user_id", targetUserID))
		return err
	}

	s.LogInfo(ctx, "User added to organization",
		slog.String("organization_id", organizationID),
		slog.String("target_user_id", targetUserID),
		slog.String("role", string(role)))
	return nil
}

// AuthorizeUserAction checks if a user holds at least the required role in an
// organization. Non-members get ErrForbidden; so do members below the
// required role.
func (s *organizationService) AuthorizeUserAction(ctx context.Context, userID, organizationID string, requiredRole domain.OrganizationRole) error {
	role, err := s.orgRepo.FindMemberRole(ctx, userID, organizationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("user %s is not a member of organization %s: %w", userID, organizationID, apperrors.ErrForbidden)
		}
		s.LogError(ctx, err, "Failed to resolve membership role",
			slog.String("user_id", userID),
			slog.String("organization_id", organizationID))
		return err
	}

	if !role.CanActAs(requiredRole) {
		return fmt.Errorf("user %s holds role %s but %s is required: %w", userID, *role, requiredRole, apperrors.ErrForbidden)
	}

	return nil
}
