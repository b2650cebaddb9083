package services

import (
	"context"

	"github.com/pennyledger/pennyledger_app/internal/core/domain"
	"github.com/pennyledger/pennyledger_app/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its ID.
	GetAccountByID(ctx context.Context, organizationID string, accountID string, requestingUserID string) (*domain.Account, error)

	// ListAccounts retrieves the chart of accounts for an organization.
	ListAccounts(ctx context.Context, organizationID string, requestingUserID string, params dto.ListAccountsParams) (*dto.ListAccountsResponse, error)

	// GetAccountTree retrieves the chart of accounts arranged by parent linkage.
	GetAccountTree(ctx context.Context, organizationID string, requestingUserID string) ([]*domain.AccountNode, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// UpdateAccount updates an existing account's details, including reparenting.
	UpdateAccount(ctx context.Context, organizationID string, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive. Historical lines keep
	// counting toward reports; new entries may no longer use it.
	DeactivateAccount(ctx context.Context, organizationID string, accountID string, requestingUserID string) error

	// DeleteAccount permanently removes an account with no recorded activity.
	DeleteAccount(ctx context.Context, organizationID string, accountID string, requestingUserID string) error

	// SeedDefaultChart creates the default chart of accounts for an
	// organization. Seeding an already populated organization is a no-op.
	SeedDefaultChart(ctx context.Context, organizationID string, requestingUserID string) ([]domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
