package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arthaworks/ledgerengine/internal/apperrors"
	"github.com/arthaworks/ledgerengine/internal/core/domain"
	portssvc "github.com/arthaworks/ledgerengine/internal/core/ports/services"
	"github.com/arthaworks/ledgerengine/internal/dto"
	"github.com/arthaworks/ledgerengine/internal/handlers"
	"github.com/arthaworks/ledgerengine/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock services ---

type MockRegistryService struct {
	mock.Mock
}

func (m *MockRegistryService) RegisterAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockRegistryService) GetAccount(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockRegistryService) HasAccount(ctx context.Context, code string) bool {
	args := m.Called(ctx, code)
	return args.Bool(0)
}

func (m *MockRegistryService) RemoveAccount(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockRegistryService) GetAccountsByType(ctx context.Context, accountType domain.AccountType) []domain.Account {
	args := m.Called(ctx, accountType)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.Account)
}

func (m *MockRegistryService) GetAccountNormalBalance(ctx context.Context, code string) (domain.NormalBalance, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(domain.NormalBalance), args.Error(1)
}

func (m *MockRegistryService) Reset() {
	m.Called()
}

type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) CreateAndPersistTransaction(ctx context.Context, data domain.TransactionData, createdBy string) (*domain.Transaction, []domain.JournalEntry, error) {
	args := m.Called(ctx, data, createdBy)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Transaction), args.Get(1).([]domain.JournalEntry), args.Error(2)
}

func (m *MockJournalService) PostTransaction(ctx context.Context, transactionID string, postedBy string) error {
	args := m.Called(ctx, transactionID, postedBy)
	return args.Error(0)
}

func (m *MockJournalService) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, []domain.JournalEntry, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Transaction), args.Get(1).([]domain.JournalEntry), args.Error(2)
}

func (m *MockJournalService) ReconcileJournalEntry(ctx context.Context, entryID string, reconciliationID string, reconciledBy string) error {
	args := m.Called(ctx, entryID, reconciliationID, reconciledBy)
	return args.Error(0)
}

func (m *MockJournalService) UnreconcileJournalEntry(ctx context.Context, entryID string, updatedBy string) error {
	args := m.Called(ctx, entryID, updatedBy)
	return args.Error(0)
}

type MockEngineService struct {
	mock.Mock
}

func (m *MockEngineService) CreateTransaction(ctx context.Context, data domain.TransactionData) (*domain.TransactionData, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionData), args.Error(1)
}

type MockSuggesterService struct {
	mock.Mock
}

func (m *MockSuggesterService) SuggestCategory(ctx context.Context, req dto.SuggestionRequest) (*dto.CategorySuggestion, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CategorySuggestion), args.Error(1)
}

// --- Test Suite Setup ---

type AccountHandlerTestSuite struct {
	suite.Suite
	mockRegistry *MockRegistryService
	router       *gin.Engine
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockRegistry = new(MockRegistryService)

	container := &portssvc.ServiceContainer{
		Registry:  suite.mockRegistry,
		Journal:   new(MockJournalService),
		Engine:    new(MockEngineService),
		Suggester: new(MockSuggesterService),
	}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, &config.Config{}, container)
}

func serveJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	created := &domain.Account{
		AccountID:         "acc-1",
		Code:              "1000",
		Name:              "Cash",
		AccountType:       domain.Asset,
		NormalBalance:     domain.DebitNormal,
		CurrencyCode:      "IDR",
		Path:              "1000",
		IsActive:          true,
		AllowTransactions: true,
		CurrentBalance:    decimal.Zero,
	}
	suite.mockRegistry.On("RegisterAccount", mock.Anything, mock.AnythingOfType("domain.Account")).Return(created, nil).Once()

	rec := serveJSON(suite.router, http.MethodPost, "/api/v1/accounts", dto.CreateAccountRequest{
		Code:         "1000",
		Name:         "Cash",
		AccountType:  domain.Asset,
		CurrencyCode: "IDR",
	})

	suite.Equal(http.StatusCreated, rec.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
	suite.Equal("1000", resp.Code)
	suite.Equal(domain.DebitNormal, resp.NormalBalance)
	suite.mockRegistry.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_BindError() {
	rec := serveJSON(suite.router, http.MethodPost, "/api/v1/accounts", map[string]string{"name": "no code"})
	suite.Equal(http.StatusBadRequest, rec.Code)
	suite.mockRegistry.AssertNotCalled(suite.T(), "RegisterAccount", mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_Duplicate() {
	suite.mockRegistry.On("RegisterAccount", mock.Anything, mock.AnythingOfType("domain.Account")).
		Return(nil, apperrors.ErrDuplicate).Once()

	rec := serveJSON(suite.router, http.MethodPost, "/api/v1/accounts", dto.CreateAccountRequest{
		Code:         "1000",
		Name:         "Cash",
		AccountType:  domain.Asset,
		CurrencyCode: "IDR",
	})

	suite.Equal(http.StatusConflict, rec.Code)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	suite.mockRegistry.On("GetAccount", mock.Anything, "9999").Return(nil, apperrors.ErrNotFound).Once()

	rec := serveJSON(suite.router, http.MethodGet, "/api/v1/accounts/9999", nil)
	suite.Equal(http.StatusNotFound, rec.Code)
}

func (suite *AccountHandlerTestSuite) TestListAccountsByType_RequiresType() {
	rec := serveJSON(suite.router, http.MethodGet, "/api/v1/accounts", nil)
	suite.Equal(http.StatusBadRequest, rec.Code)
}

func (suite *AccountHandlerTestSuite) TestListAccountsByType() {
	suite.mockRegistry.On("GetAccountsByType", mock.Anything, domain.Asset).Return([]domain.Account{
		{Code: "1000", AccountType: domain.Asset},
	}, nil).Once()

	rec := serveJSON(suite.router, http.MethodGet, "/api/v1/accounts?type=ASSET", nil)
	suite.Equal(http.StatusOK, rec.Code)
}

func (suite *AccountHandlerTestSuite) TestDeleteAccount_SystemAccountRefused() {
	suite.mockRegistry.On("RemoveAccount", mock.Anything, "3000").Return(apperrors.ErrValidation).Once()

	rec := serveJSON(suite.router, http.MethodDelete, "/api/v1/accounts/3000", nil)
	suite.Equal(http.StatusBadRequest, rec.Code)
}

func TestAccountHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
