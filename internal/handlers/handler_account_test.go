package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pennyledger/pennyledger_app/internal/apperrors"
	"github.com/pennyledger/pennyledger_app/internal/core/domain"
	portssvc "github.com/pennyledger/pennyledger_app/internal/core/ports/services"
	"github.com/pennyledger/pennyledger_app/internal/dto"
	"github.com/pennyledger/pennyledger_app/internal/handlers"
	"github.com/pennyledger/pennyledger_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountByID(ctx context.Context, organizationID string, accountID string, requestingUserID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, accountID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context, organizationID string, requestingUserID string, params dto.ListAccountsParams) (*dto.ListAccountsResponse, error) {
	args := m.Called(ctx, organizationID, requestingUserID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListAccountsResponse), args.Error(1)
}
func (m *MockAccountService) GetAccountTree(ctx context.Context, organizationID string, requestingUserID string) ([]*domain.AccountNode, error) {
	args := m.Called(ctx, organizationID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AccountNode), args.Error(1)
}
func (m *MockAccountService) UpdateAccount(ctx context.Context, organizationID string, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, accountID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) DeactivateAccount(ctx context.Context, organizationID string, accountID string, requestingUserID string) error {
	args := m.Called(ctx, organizationID, accountID, requestingUserID)
	return args.Error(0)
}
func (m *MockAccountService) DeleteAccount(ctx context.Context, organizationID string, accountID string, requestingUserID string) error {
	args := m.Called(ctx, organizationID, accountID, requestingUserID)
	return args.Error(0)
}
func (m *MockAccountService) SeedDefaultChart(ctx context.Context, organizationID string, requestingUserID string) ([]domain.Account, error) {
	args := m.Called(ctx, organizationID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) RecordEntry(ctx context.Context, organizationID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, organizationID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) GetEntryByID(ctx context.Context, organizationID string, entryID string, requestingUserID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, organizationID, entryID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) ListEntries(ctx context.Context, organizationID string, requestingUserID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	args := m.Called(ctx, organizationID, requestingUserID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListEntriesResponse), args.Error(1)
}

var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) GetDashboardSnapshot(ctx context.Context, organizationID string, from, to time.Time, requestingUserID string) (*dto.DashboardResponse, error) {
	args := m.Called(ctx, organizationID, from, to, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.DashboardResponse), args.Error(1)
}
func (m *MockReportingService) GetReportSnapshot(ctx context.Context, organizationID string, from, to time.Time, requestingUserID string) (*dto.ReportResponse, error) {
	args := m.Called(ctx, organizationID, from, to, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReportResponse), args.Error(1)
}
func (m *MockReportingService) GetTransactionList(ctx context.Context, organizationID string, requestingUserID string, params dto.TransactionListParams) (*dto.TransactionListResponse, error) {
	args := m.Called(ctx, organizationID, requestingUserID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TransactionListResponse), args.Error(1)
}

var _ portssvc.ReportingSvc = (*MockReportingService)(nil)

// --- Mock OrganizationService ---
type MockOrganizationService struct {
	mock.Mock
}

func (m *MockOrganizationService) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}
func (m *MockOrganizationService) CreateOrganization(ctx context.Context, name string, creatorUserID string) (*domain.Organization, error) {
	args := m.Called(ctx, name, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}
func (m *MockOrganizationService) AddUserToOrganization(ctx context.Context, addingUserID, targetUserID, organizationID string, role domain.OrganizationRole) error {
	args := m.Called(ctx, addingUserID, targetUserID, organizationID, role)
	return args.Error(0)
}
func (m *MockOrganizationService) AuthorizeUserAction(ctx context.Context, userID, organizationID string, requiredRole domain.OrganizationRole) error {
	args := m.Called(ctx, userID, organizationID, requiredRole)
	return args.Error(0)
}

var _ portssvc.OrganizationSvcFacade = (*MockOrganizationService)(nil)

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockAccountService *MockAccountService
	jwtSecret          string
}

// generateTestToken creates a signed JWT for testing.
func (suite *AccountHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "pennyledger-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockAccountService = new(MockAccountService)

	container := &portssvc.ServiceContainer{
		Account:      suite.mockAccountService,
		Journal:      new(MockJournalService),
		Reporting:    new(MockReportingService),
		Organization: new(MockOrganizationService),
	}

	handlers.RegisterRoutes(suite.router, &config.Config{JWTSecret: suite.jwtSecret}, container)
}

func (suite *AccountHandlerTestSuite) doRequest(method, url, userID string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	organizationID := uuid.NewString()
	userID := uuid.NewString()

	req := dto.CreateAccountRequest{
		Code:        "1300",
		Name:        "Petty Cash",
		AccountType: domain.Asset,
	}
	created := &domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: organizationID,
		Code:           "1300",
		Name:           "Petty Cash",
		AccountType:    domain.Asset,
		IsActive:       true,
	}

	suite.mockAccountService.On("CreateAccount",
		mock.Anything,
		organizationID,
		mock.MatchedBy(func(r dto.CreateAccountRequest) bool {
			return r.Code == req.Code && r.AccountType == req.AccountType
		}),
		userID,
	).Return(created, nil).Once()

	url := fmt.Sprintf("/api/v1/organizations/%s/accounts", organizationID)
	w := suite.doRequest(http.MethodPost, url, userID, req)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.AccountID, resp.AccountID)
	suite.Equal("1300", resp.Code)

	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_DuplicateCodeConflict() {
	organizationID := uuid.NewString()
	userID := uuid.NewString()

	req := dto.CreateAccountRequest{
		Code:        "1000",
		Name:        "Cash Again",
		AccountType: domain.Asset,
	}

	suite.mockAccountService.On("CreateAccount", mock.Anything, organizationID, mock.Anything, userID).
		Return(nil, apperrors.ErrDuplicateCode).Once()

	url := fmt.Sprintf("/api/v1/organizations/%s/accounts", organizationID)
	w := suite.doRequest(http.MethodPost, url, userID, req)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_InvalidAccountTypeRejectedByBinding() {
	organizationID := uuid.NewString()
	userID := uuid.NewString()

	body := map[string]any{
		"code":        "9000",
		"name":        "Mystery",
		"accountType": "GOODWILL",
	}

	url := fmt.Sprintf("/api/v1/organizations/%s/accounts", organizationID)
	w := suite.doRequest(http.MethodPost, url, userID, body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	organizationID := uuid.NewString()
	accountID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockAccountService.On("GetAccountByID", mock.Anything, organizationID, accountID, userID).
		Return(nil, apperrors.ErrNotFound).Once()

	url := fmt.Sprintf("/api/v1/organizations/%s/accounts/%s", organizationID, accountID)
	w := suite.doRequest(http.MethodGet, url, userID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *AccountHandlerTestSuite) TestListAccounts_Success() {
	organizationID := uuid.NewString()
	userID := uuid.NewString()

	expected := &dto.ListAccountsResponse{
		Accounts: []dto.AccountResponse{
			{AccountID: uuid.NewString(), Code: "1000", Name: "Cash", AccountType: domain.Asset, IsActive: true},
			{AccountID: uuid.NewString(), Code: "4000", Name: "Sales Revenue", AccountType: domain.Income, IsActive: true},
		},
	}

	suite.mockAccountService.On("ListAccounts",
		mock.Anything,
		organizationID,
		userID,
		mock.MatchedBy(func(p dto.ListAccountsParams) bool { return !p.IncludeInactive }),
	).Return(expected, nil).Once()

	url := fmt.Sprintf("/api/v1/organizations/%s/accounts", organizationID)
	w := suite.doRequest(http.MethodGet, url, userID, nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.ListAccountsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Accounts, 2)
	suite.Equal("1000", resp.Accounts[0].Code)
}

func (suite *AccountHandlerTestSuite) TestDeleteAccount_InUseConflict() {
	organizationID := uuid.NewString()
	accountID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockAccountService.On("DeleteAccount", mock.Anything, organizationID, accountID, userID).
		Return(apperrors.ErrAccountInUse).Once()

	url := fmt.Sprintf("/api/v1/organizations/%s/accounts/%s", organizationID, accountID)
	w := suite.doRequest(http.MethodDelete, url, userID, nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_MissingTokenUnauthorized() {
	organizationID := uuid.NewString()

	url := fmt.Sprintf("/api/v1/organizations/%s/accounts", organizationID)
	req, _ := http.NewRequest(http.MethodPost, url, bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

// --- Run Test Suite ---
func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
