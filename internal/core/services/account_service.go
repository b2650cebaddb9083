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
	"github.com/pennyledger/pennyledger_app/internal/core/ledger"
	portsrepo "github.com/pennyledger/pennyledger_app/internal/core/ports/repositories"
	portssvc "github.com/pennyledger/pennyledger_app/internal/core/ports/services"
	"github.com/pennyledger/pennyledger_app/internal/dto"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithOrganizationAuthorizer adds organization authorizer dependency
func WithOrganizationAuthorizer(authorizer portssvc.OrganizationAuthorizerSvc) AccountServiceOption {
	return func(s *accountService) {
		s.OrganizationAuthorizer = authorizer
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: repo,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, organizationID, domain.RoleMember); err != nil {
		s.LogError(ctx, err, "User not authorized to create account",
			slog.String("user_id", creatorUserID),
			slog.String("organization_id", organizationID))
		return nil, err
	}

	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("unrecognized account type %q: %w", req.AccountType, apperrors.ErrValidation)
	}

	parentID := ""
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		parentID = *req.ParentAccountID
		if err := s.validateParent(ctx, organizationID, parentID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		OrganizationID:  organizationID,
		Code:            req.Code,
		Name:            req.Name,
		AccountType:     req.AccountType,
		ParentAccountID: parentID,
		Description:     req.Description,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.LogDebug(ctx, "Account code collision",
				slog.String("code", req.Code),
				slog.String("organization_id", organizationID))
			return nil, fmt.Errorf("code %q: %w", req.Code, apperrors.ErrDuplicateCode)
		}
		s.LogError(ctx, err, "Failed to save account",
			slog.String("account_id", account.AccountID),
			slog.String("organization_id", organizationID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("organization_id", organizationID))
	return &account, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, organizationID string, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleMember); err != nil {
		s.LogError(ctx, err, "User not authorized to update account",
			slog.String("user_id", requestingUserID),
			slog.String("organization_id", organizationID))
		return nil, err
	}

	account, err := s.getOwnedAccount(ctx, organizationID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	if req.ParentAccountID != nil {
		newParentID := *req.ParentAccountID
		if newParentID != "" {
			if err := s.validateParent(ctx, organizationID, newParentID); err != nil {
				return nil, err
			}
			if err := s.checkReparentCycle(ctx, organizationID, accountID, newParentID); err != nil {
				return nil, err
			}
		}
		account.ParentAccountID = newParentID
	}

	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = requestingUserID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account",
			slog.String("account_id", accountID),
			slog.String("organization_id", organizationID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully",
		slog.String("account_id", accountID),
		slog.String("organization_id", organizationID))
	return account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, organizationID string, accountID string, requestingUserID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.getOwnedAccount(ctx, organizationID, accountID)
}

func (s *accountService) ListAccounts(ctx context.Context, organizationID string, requestingUserID string, params dto.ListAccountsParams) (*dto.ListAccountsResponse, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, organizationID, params.IncludeInactive)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts",
			slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to list accounts for organization %s: %w", organizationID, err)
	}

	return &dto.ListAccountsResponse{Accounts: dto.ToListAccountResponse(accounts)}, nil
}

func (s *accountService) GetAccountTree(ctx context.Context, organizationID string, requestingUserID string) ([]*domain.AccountNode, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, organizationID, true)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for tree",
			slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to list accounts for organization %s: %w", organizationID, err)
	}

	return ledger.BuildAccountTree(accounts), nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, organizationID string, accountID string, requestingUserID string) error {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleMember); err != nil {
		s.LogError(ctx, err, "User not authorized to deactivate account",
			slog.String("user_id", requestingUserID),
			slog.String("organization_id", organizationID))
		return err
	}

	account, err := s.getOwnedAccount(ctx, organizationID, accountID)
	if err != nil {
		return err
	}
	if !account.IsActive {
		// Deactivation is idempotent; repeating it is a no-op
		s.LogDebug(ctx, "Account already inactive",
			slog.String("account_id", accountID),
			slog.String("organization_id", organizationID))
		return nil
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, requestingUserID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account",
			slog.String("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account deactivated",
		slog.String("account_id", accountID),
		slog.String("organization_id", organizationID))
	return nil
}

func (s *accountService) DeleteAccount(ctx context.Context, organizationID string, accountID string, requestingUserID string) error {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleAdmin); err != nil {
		s.LogError(ctx, err, "User not authorized to delete account",
			slog.String("user_id", requestingUserID),
			slog.String("organization_id", organizationID))
		return err
	}

	if _, err := s.getOwnedAccount(ctx, organizationID, accountID); err != nil {
		return err
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			s.LogDebug(ctx, "Account delete blocked by recorded activity",
				slog.String("account_id", accountID))
			return fmt.Errorf("account %s: %w", accountID, apperrors.ErrAccountInUse)
		}
		s.LogError(ctx, err, "Failed to delete account",
			slog.String("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account deleted",
		slog.String("account_id", accountID),
		slog.String("organization_id", organizationID))
	return nil
}

// SeedDefaultChart creates the standard chart of accounts for an organization
// that has none yet. Seeding an organization that already has accounts is a
// no-op returning the existing chart.
func (s *accountService) SeedDefaultChart(ctx context.Context, organizationID string, requestingUserID string) ([]domain.Account, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleMember); err != nil {
		s.LogError(ctx, err, "User not authorized to seed default chart",
			slog.String("user_id", requestingUserID),
			slog.String("organization_id", organizationID))
		return nil, err
	}

	existing, err := s.accountRepo.ListAccounts(ctx, organizationID, true)
	if err != nil {
		s.LogError(ctx, err, "Failed to check for existing accounts",
			slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to check existing accounts: %w", err)
	}
	if len(existing) > 0 {
		s.LogDebug(ctx, "Organization already has accounts, skipping seed",
			slog.String("organization_id", organizationID),
			slog.Int("account_count", len(existing)))
		return existing, nil
	}

	now := time.Now()
	accounts := make([]domain.Account, len(defaultChart))
	idsByCode := make(map[string]string, len(defaultChart))
	for i, entry := range defaultChart {
		id := uuid.NewString()
		idsByCode[entry.Code] = id
		accounts[i] = domain.Account{
			AccountID:      id,
			OrganizationID: organizationID,
			Code:           entry.Code,
			Name:           entry.Name,
			AccountType:    entry.Type,
			Description:    entry.Description,
			IsActive:       true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     requestingUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: requestingUserID,
			},
		}
	}
	// Resolve parent codes to the freshly minted IDs
	for i, entry := range defaultChart {
		if entry.ParentCode != "" {
			accounts[i].ParentAccountID = idsByCode[entry.ParentCode]
		}
	}

	if err := s.accountRepo.SaveAccounts(ctx, accounts); err != nil {
		s.LogError(ctx, err, "Failed to seed default chart",
			slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to seed default chart: %w", err)
	}

	s.LogInfo(ctx, "Default chart seeded",
		slog.String("organization_id", organizationID),
		slog.Int("account_count", len(accounts)))
	return accounts, nil
}

// getOwnedAccount fetches an account and confirms it belongs to the expected
// organization. Cross-organization hits come back as not-found to obscure
// existence.
func (s *accountService) getOwnedAccount(ctx context.Context, organizationID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID",
				slog.String("account_id", accountID))
		}
		return nil, err
	}

	if account.OrganizationID != organizationID {
		s.LogDebug(ctx, "Account found but belongs to different organization",
			slog.String("account_id", accountID),
			slog.String("account_organization", account.OrganizationID),
			slog.String("requested_organization", organizationID))
		return nil, apperrors.ErrNotFound
	}

	return account, nil
}

// validateParent confirms a prospective parent exists, belongs to the same
// organization, and is active.
func (s *accountService) validateParent(ctx context.Context, organizationID string, parentID string) error {
	parent, err := s.accountRepo.FindAccountByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("parent account %s not found: %w", parentID, apperrors.ErrInvalidParent)
		}
		s.LogError(ctx, err, "Failed to find parent account",
			slog.String("parent_id", parentID))
		return err
	}
	if parent.OrganizationID != organizationID {
		return fmt.Errorf("parent account %s belongs to another organization: %w", parentID, apperrors.ErrInvalidParent)
	}
	if !parent.IsActive {
		return fmt.Errorf("parent account %s is inactive: %w", parentID, apperrors.ErrInvalidParent)
	}
	return nil
}

// checkReparentCycle rejects a reparenting that would make the hierarchy
// cyclic. The check runs over the full chart before any write.
func (s *accountService) checkReparentCycle(ctx context.Context, organizationID string, accountID string, newParentID string) error {
	accounts, err := s.accountRepo.ListAccounts(ctx, organizationID, true)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for cycle check",
			slog.String("organization_id", organizationID))
		return fmt.Errorf("failed to list accounts for cycle check: %w", err)
	}

	byID := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		byID[acc.AccountID] = acc
	}

	if ledger.WouldCreateCycle(byID, accountID, newParentID) {
		return fmt.Errorf("linking account %s under %s would create a cycle: %w", accountID, newParentID, apperrors.ErrInvalidParent)
	}
	return nil
}
