package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pennyledger/pennyledger_app/internal/apperrors"
	"github.com/pennyledger/pennyledger_app/internal/core/domain"
	portssvc "github.com/pennyledger/pennyledger_app/internal/core/ports/services"
	"github.com/pennyledger/pennyledger_app/internal/core/services"
	"github.com/pennyledger/pennyledger_app/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockAuthorizer  *MockOrganizationAuthorizer
	service         portssvc.AccountSvcFacade
	organizationID  string
	userID          string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockAuthorizer = new(MockOrganizationAuthorizer)
	suite.service = services.NewAccountService(
		suite.mockAccountRepo,
		services.WithOrganizationAuthorizer(suite.mockAuthorizer),
	)

	suite.organizationID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *AccountServiceTestSuite) authorize() {
	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.organizationID, mock.Anything).Return(nil)
}

func (suite *AccountServiceTestSuite) account(code, name string, accType domain.AccountType, parentID string) domain.Account {
	return domain.Account{
		AccountID:       uuid.NewString(),
		OrganizationID:  suite.organizationID,
		Code:            code,
		Name:            name,
		AccountType:     accType,
		ParentAccountID: parentID,
		IsActive:        true,
	}
}

// --- CreateAccount ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "1300",
		Name:        "Petty Cash",
		AccountType: domain.Asset,
	}

	suite.authorize()
	suite.mockAccountRepo.On("SaveAccount", mock.Anything, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.organizationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.Equal(suite.organizationID, account.OrganizationID)
	suite.Equal("1300", account.Code)
	suite.True(account.IsActive)
	suite.Equal(suite.userID, account.CreatedBy)

	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "1000",
		Name:        "Cash Again",
		AccountType: domain.Asset,
	}

	suite.authorize()
	suite.mockAccountRepo.On("SaveAccount", mock.Anything, mock.AnythingOfType("domain.Account")).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateAccount(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicateCode)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentNotFound() {
	ctx := context.Background()
	parentID := uuid.NewString()
	req := dto.CreateAccountRequest{
		Code:            "1110",
		Name:            "Savings",
		AccountType:     domain.Asset,
		ParentAccountID: &parentID,
	}

	suite.authorize()
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, parentID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateAccount(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidParent)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentInAnotherOrganization() {
	ctx := context.Background()
	parent := suite.account("1100", "Bank Account", domain.Asset, "")
	parent.OrganizationID = uuid.NewString()

	req := dto.CreateAccountRequest{
		Code:            "1110",
		Name:            "Savings",
		AccountType:     domain.Asset,
		ParentAccountID: &parent.AccountID,
	}

	suite.authorize()
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, parent.AccountID).Return(&parent, nil).Once()

	_, err := suite.service.CreateAccount(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidParent)
}

// --- UpdateAccount ---

func (suite *AccountServiceTestSuite) TestUpdateAccount_ReparentCycleRejected() {
	ctx := context.Background()
	// parent -> child; moving parent under child closes a loop
	parent := suite.account("1100", "Bank Account", domain.Asset, "")
	child := suite.account("1110", "Savings", domain.Asset, parent.AccountID)

	req := dto.UpdateAccountRequest{ParentAccountID: &child.AccountID}

	suite.authorize()
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, parent.AccountID).Return(&parent, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, child.AccountID).Return(&child, nil).Once()
	suite.mockAccountRepo.On("ListAccounts", mock.Anything, suite.organizationID, true).Return([]domain.Account{parent, child}, nil).Once()

	_, err := suite.service.UpdateAccount(ctx, suite.organizationID, parent.AccountID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidParent)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_Rename() {
	ctx := context.Background()
	account := suite.account("5000", "Rent", domain.Expense, "")
	newName := "Office Rent"
	req := dto.UpdateAccountRequest{Name: &newName}

	suite.authorize()
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, account.AccountID).Return(&account, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", mock.Anything, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, suite.organizationID, account.AccountID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("Office Rent", updated.Name)
	suite.Equal(suite.userID, updated.LastUpdatedBy)
}

// --- GetAccountByID ---

func (suite *AccountServiceTestSuite) TestGetAccountByID_CrossOrganizationObscured() {
	ctx := context.Background()
	account := suite.account("1000", "Cash", domain.Asset, "")
	account.OrganizationID = uuid.NewString()

	suite.authorize()
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, account.AccountID).Return(&account, nil).Once()

	got, err := suite.service.GetAccountByID(ctx, suite.organizationID, account.AccountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(got)
}

// --- DeactivateAccount ---

func (suite *AccountServiceTestSuite) TestDeactivateAccount_Success() {
	ctx := context.Background()
	account := suite.account("5000", "Rent", domain.Expense, "")

	suite.authorize()
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, account.AccountID).Return(&account, nil).Once()
	suite.mockAccountRepo.On("DeactivateAccount", mock.Anything, account.AccountID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.organizationID, account.AccountID, suite.userID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_AlreadyInactiveIsNoOp() {
	ctx := context.Background()
	account := suite.account("5000", "Rent", domain.Expense, "")
	account.IsActive = false

	suite.authorize()
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, account.AccountID).Return(&account, nil).Once()

	err := suite.service.DeactivateAccount(ctx, suite.organizationID, account.AccountID, suite.userID)

	// Deactivating an existing account always succeeds, repeats included
	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeactivateAccount_NotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.authorize()
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, accountID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeactivateAccount(ctx, suite.organizationID, accountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- DeleteAccount ---

func (suite *AccountServiceTestSuite) TestDeleteAccount_InUse() {
	ctx := context.Background()
	account := suite.account("4000", "Sales Revenue", domain.Income, "")

	suite.authorize()
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, account.AccountID).Return(&account, nil).Once()
	suite.mockAccountRepo.On("DeleteAccount", mock.Anything, account.AccountID).Return(apperrors.ErrConflict).Once()

	err := suite.service.DeleteAccount(ctx, suite.organizationID, account.AccountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAccountInUse)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_Success() {
	ctx := context.Background()
	account := suite.account("5900", "Miscellaneous", domain.Expense, "")

	suite.authorize()
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, account.AccountID).Return(&account, nil).Once()
	suite.mockAccountRepo.On("DeleteAccount", mock.Anything, account.AccountID).Return(nil).Once()

	err := suite.service.DeleteAccount(ctx, suite.organizationID, account.AccountID, suite.userID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

// --- SeedDefaultChart ---

func (suite *AccountServiceTestSuite) TestSeedDefaultChart_SeedsEmptyOrganization() {
	ctx := context.Background()

	suite.authorize()
	suite.mockAccountRepo.On("ListAccounts", mock.Anything, suite.organizationID, true).Return([]domain.Account{}, nil).Once()
	suite.mockAccountRepo.On("SaveAccounts", mock.Anything, mock.AnythingOfType("[]domain.Account")).Return(nil).Once()

	accounts, err := suite.service.SeedDefaultChart(ctx, suite.organizationID, suite.userID)

	suite.Require().NoError(err)
	suite.NotEmpty(accounts)

	// At least one account of every type, all scoped to the organization
	seenTypes := make(map[domain.AccountType]bool)
	seenCodes := make(map[string]bool)
	for _, acc := range accounts {
		suite.Equal(suite.organizationID, acc.OrganizationID)
		suite.True(acc.IsActive)
		suite.False(seenCodes[acc.Code], "duplicate code %s", acc.Code)
		seenCodes[acc.Code] = true
		seenTypes[acc.AccountType] = true
	}
	suite.Len(seenTypes, 5)

	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestSeedDefaultChart_NoOpWhenChartExists() {
	ctx := context.Background()
	existing := []domain.Account{suite.account("1000", "Cash", domain.Asset, "")}

	suite.authorize()
	suite.mockAccountRepo.On("ListAccounts", mock.Anything, suite.organizationID, true).Return(existing, nil).Once()

	accounts, err := suite.service.SeedDefaultChart(ctx, suite.organizationID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(existing, accounts)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccounts", mock.Anything, mock.Anything)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
