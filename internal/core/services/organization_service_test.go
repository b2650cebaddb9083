package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pennyledger/pennyledger_app/internal/apperrors"
	"github.com/pennyledger/pennyledger_app/internal/core/domain"
	"github.com/pennyledger/pennyledger_app/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAuthorizeUserAction_RoleRanking(t *testing.T) {
	tests := []struct {
		name     string
		held     domain.OrganizationRole
		required domain.OrganizationRole
		allowed  bool
	}{
		{"admin can act as member", domain.RoleAdmin, domain.RoleMember, true},
		{"admin can act as readonly", domain.RoleAdmin, domain.RoleReadOnly, true},
		{"member can act as readonly", domain.RoleMember, domain.RoleReadOnly, true},
		{"member cannot act as admin", domain.RoleMember, domain.RoleAdmin, false},
		{"readonly cannot act as member", domain.RoleReadOnly, domain.RoleMember, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := new(MockOrganizationRepository)
			svc := services.NewOrganizationService(repo)

			userID := uuid.NewString()
			orgID := uuid.NewString()
			held := tc.held
			repo.On("FindMemberRole", mock.Anything, userID, orgID).Return(&held, nil).Once()

			err := svc.AuthorizeUserAction(context.Background(), userID, orgID, tc.required)

			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, apperrors.ErrForbidden)
			}
		})
	}
}

func TestAuthorizeUserAction_NonMemberForbidden(t *testing.T) {
	repo := new(MockOrganizationRepository)
	svc := services.NewOrganizationService(repo)

	userID := uuid.NewString()
	orgID := uuid.NewString()
	repo.On("FindMemberRole", mock.Anything, userID, orgID).Return(nil, apperrors.ErrNotFound).Once()

	err := svc.AuthorizeUserAction(context.Background(), userID, orgID, domain.RoleReadOnly)

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestCreateOrganization_EnrollsCreatorAsAdmin(t *testing.T) {
	repo := new(MockOrganizationRepository)
	svc := services.NewOrganizationService(repo)

	creatorID := uuid.NewString()
	repo.On("SaveOrganization", mock.Anything, mock.AnythingOfType("domain.Organization")).Return(nil).Once()
	repo.On("SaveMember", mock.Anything, mock.MatchedBy(func(m domain.OrganizationMember) bool {
		return m.UserID == creatorID && m.Role == domain.RoleAdmin
	})).Return(nil).Once()

	org, err := svc.CreateOrganization(context.Background(), "Acme Books", creatorID)

	require.NoError(t, err)
	assert.Equal(t, "Acme Books", org.Name)
	assert.NotEmpty(t, org.OrganizationID)
	repo.AssertExpectations(t)
}
