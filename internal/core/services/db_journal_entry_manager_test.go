package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/arthaworks/ledgerengine/internal/apperrors"
	"github.com/arthaworks/ledgerengine/internal/core/domain"
	"github.com/arthaworks/ledgerengine/internal/core/services"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAllAccounts(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByType(ctx context.Context, accountType domain.AccountType) ([]domain.Account, error) {
	args := m.Called(ctx, accountType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, code string, userID string, now time.Time) error {
	args := m.Called(ctx, code, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByCodesForUpdate(ctx context.Context, tx pgx.Tx, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, balanceChanges, userID, now)
	return args.Error(0)
}

// MockLedgerRepository is a mock type for the LedgerRepositoryFacade interface
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, entries []domain.JournalEntry) error {
	args := m.Called(ctx, txn, entries)
	return args.Error(0)
}

func (m *MockLedgerRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, updatedBy string, at time.Time) error {
	args := m.Called(ctx, transactionID, status, updatedBy, at)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) FindJournalEntriesByTransaction(ctx context.Context, transactionID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerRepository) DeleteJournalEntriesByTransaction(ctx context.Context, transactionID string) (int64, error) {
	args := m.Called(ctx, transactionID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) UpdateJournalEntryReconciliation(ctx context.Context, entryID string, reconciled bool, reconciliationID string, userID string, at time.Time) error {
	args := m.Called(ctx, entryID, reconciled, reconciliationID, userID, at)
	return args.Error(0)
}

func (m *MockLedgerRepository) PostTransaction(ctx context.Context, transactionID string, postedBy string, at time.Time) error {
	args := m.Called(ctx, transactionID, postedBy, at)
	return args.Error(0)
}

// --- Test Suite Setup ---

type DatabaseJournalEntryManagerTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockLedgerRepo  *MockLedgerRepository
	registry        *services.DatabaseAccountRegistry
	manager         *services.DatabaseJournalEntryManager
}

func (suite *DatabaseJournalEntryManagerTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.registry = services.NewDatabaseAccountRegistry(suite.mockAccountRepo)

	rates := services.NewStaticRateProvider(map[string]decimal.Decimal{
		"USD/IDR": decimal.NewFromInt(15500),
	})
	suite.manager = services.NewDatabaseJournalEntryManager(suite.mockLedgerRepo, suite.registry, rates, "IDR")
}

func account(code string, accountType domain.AccountType, normal domain.NormalBalance) *domain.Account {
	return &domain.Account{
		AccountID:         "id-" + code,
		Code:              code,
		Name:              "Account " + code,
		AccountType:       accountType,
		NormalBalance:     normal,
		CurrencyCode:      "IDR",
		IsActive:          true,
		AllowTransactions: true,
	}
}

func balancedData() domain.TransactionData {
	return domain.TransactionData{
		Description:     "cash sale",
		TransactionDate: time.Now(),
		CurrencyCode:    "IDR",
		Entries: []domain.TransactionEntry{
			{AccountCode: "1000", DebitAmount: decimal.NewFromInt(100)},
			{AccountCode: "4000", CreditAmount: decimal.NewFromInt(100)},
		},
	}
}

// --- Test Cases ---

func (suite *DatabaseJournalEntryManagerTestSuite) TestCreateAndPersist_Success() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, "1000").Return(account("1000", domain.Asset, domain.DebitNormal), nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, "4000").Return(account("4000", domain.Revenue, domain.CreditNormal), nil).Once()
	suite.mockLedgerRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("[]domain.JournalEntry")).Return(nil).Once()

	txn, entries, err := suite.manager.CreateAndPersistTransaction(ctx, balancedData(), "tester")

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Equal(domain.TransactionDraft, txn.Status)
	suite.NotEmpty(txn.TransactionID)
	suite.Require().Len(entries, 2)
	suite.Equal(txn.TransactionID, entries[0].TransactionID)
	suite.Equal(txn.TransactionID, entries[1].TransactionID)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *DatabaseJournalEntryManagerTestSuite) TestCreateAndPersist_UnbalancedFailsBeforeRepo() {
	ctx := context.Background()
	data := balancedData()
	data.Entries[1].CreditAmount = decimal.NewFromInt(60)

	_, _, err := suite.manager.CreateAndPersistTransaction(ctx, data, "tester")

	suite.Require().Error(err)
	ledgerErr, ok := apperrors.AsLedgerError(err)
	suite.Require().True(ok)
	suite.Equal(apperrors.KindDoubleEntry, ledgerErr.Kind)
	suite.NotEmpty(ledgerErr.Details)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DatabaseJournalEntryManagerTestSuite) TestCreateAndPersist_NonPostableAccount() {
	ctx := context.Background()
	summary := account("1000", domain.Asset, domain.DebitNormal)
	summary.AllowTransactions = false
	suite.mockAccountRepo.On("FindAccountByCode", ctx, "1000").Return(summary, nil).Once()

	_, _, err := suite.manager.CreateAndPersistTransaction(ctx, balancedData(), "tester")

	suite.Require().Error(err)
	ledgerErr, ok := apperrors.AsLedgerError(err)
	suite.Require().True(ok)
	suite.Equal(apperrors.KindAccountRegistry, ledgerErr.Kind)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DatabaseJournalEntryManagerTestSuite) TestPostTransaction_Draft() {
	ctx := context.Background()
	suite.mockLedgerRepo.On("FindTransactionByID", ctx, "txn-1").Return(&domain.Transaction{
		TransactionID: "txn-1",
		Status:        domain.TransactionDraft,
	}, nil).Once()
	suite.mockLedgerRepo.On("PostTransaction", ctx, "txn-1", "poster", mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockLedgerRepo.On("FindJournalEntriesByTransaction", ctx, "txn-1").Return([]domain.JournalEntry{
		{EntryID: "e1", AccountCode: "1000"},
		{EntryID: "e2", AccountCode: "4000"},
	}, nil).Once()

	err := suite.manager.PostTransaction(ctx, "txn-1", "poster")

	suite.Require().NoError(err)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *DatabaseJournalEntryManagerTestSuite) TestPostTransaction_AlreadyPosted() {
	ctx := context.Background()
	suite.mockLedgerRepo.On("FindTransactionByID", ctx, "txn-1").Return(&domain.Transaction{
		TransactionID: "txn-1",
		Status:        domain.TransactionPosted,
	}, nil).Once()

	err := suite.manager.PostTransaction(ctx, "txn-1", "poster")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "PostTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DatabaseJournalEntryManagerTestSuite) TestPostTransaction_NotFound() {
	ctx := context.Background()
	suite.mockLedgerRepo.On("FindTransactionByID", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	err := suite.manager.PostTransaction(ctx, "ghost", "poster")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *DatabaseJournalEntryManagerTestSuite) TestGetTransaction() {
	ctx := context.Background()
	suite.mockLedgerRepo.On("FindTransactionByID", ctx, "txn-1").Return(&domain.Transaction{TransactionID: "txn-1"}, nil).Once()
	suite.mockLedgerRepo.On("FindJournalEntriesByTransaction", ctx, "txn-1").Return([]domain.JournalEntry{{EntryID: "e1"}}, nil).Once()

	txn, entries, err := suite.manager.GetTransaction(ctx, "txn-1")

	suite.Require().NoError(err)
	suite.Equal("txn-1", txn.TransactionID)
	suite.Len(entries, 1)
}

func (suite *DatabaseJournalEntryManagerTestSuite) TestReconcileJournalEntry() {
	ctx := context.Background()
	suite.mockLedgerRepo.On("UpdateJournalEntryReconciliation", ctx, "e1", true, "stmt-1", "who", mock.AnythingOfType("time.Time")).Return(nil).Once()

	suite.Require().NoError(suite.manager.ReconcileJournalEntry(ctx, "e1", "stmt-1", "who"))
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *DatabaseJournalEntryManagerTestSuite) TestUnreconcileJournalEntry() {
	ctx := context.Background()
	suite.mockLedgerRepo.On("UpdateJournalEntryReconciliation", ctx, "e1", false, "", "who", mock.AnythingOfType("time.Time")).Return(nil).Once()

	suite.Require().NoError(suite.manager.UnreconcileJournalEntry(ctx, "e1", "who"))
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func TestDatabaseJournalEntryManagerTestSuite(t *testing.T) {
	suite.Run(t, new(DatabaseJournalEntryManagerTestSuite))
}
