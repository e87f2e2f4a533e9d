package services_test

import (
	"context"
	"testing"

	"github.com/arthaworks/ledgerengine/internal/apperrors"
	"github.com/arthaworks/ledgerengine/internal/core/domain"
	portssvc "github.com/arthaworks/ledgerengine/internal/core/ports/services"
	"github.com/arthaworks/ledgerengine/internal/core/services"
	"github.com/stretchr/testify/suite"
)

type AccountRegistryTestSuite struct {
	suite.Suite
	registry portssvc.AccountRegistrySvcFacade
}

func (suite *AccountRegistryTestSuite) SetupTest() {
	suite.registry = services.NewAccountRegistry()
}

func (suite *AccountRegistryTestSuite) register(code string, accountType domain.AccountType) *domain.Account {
	account, err := suite.registry.RegisterAccount(context.Background(), domain.Account{
		Code:         code,
		Name:         "Account " + code,
		AccountType:  accountType,
		CurrencyCode: "IDR",
	})
	suite.Require().NoError(err)
	return account
}

func (suite *AccountRegistryTestSuite) TestRegisterAccount_Defaults() {
	account := suite.register("1000", domain.Asset)

	suite.NotEmpty(account.AccountID)
	suite.Equal(domain.DebitNormal, account.NormalBalance)
	suite.True(account.IsActive)
	suite.True(account.CurrentBalance.IsZero())
	suite.Equal(0, account.Level)
	suite.Equal("1000", account.Path)
	suite.False(account.CreatedAt.IsZero())
}

func (suite *AccountRegistryTestSuite) TestRegisterAccount_NormalBalanceByType() {
	cases := map[domain.AccountType]domain.NormalBalance{
		domain.Asset:     domain.DebitNormal,
		domain.Expense:   domain.DebitNormal,
		domain.Liability: domain.CreditNormal,
		domain.Equity:    domain.CreditNormal,
		domain.Revenue:   domain.CreditNormal,
	}
	code := 'a'
	for accountType, want := range cases {
		account := suite.register(string(code), accountType)
		suite.Equal(want, account.NormalBalance, "type %s", accountType)
		code++
	}
}

func (suite *AccountRegistryTestSuite) TestRegisterAccount_RejectsDuplicateCode() {
	suite.register("1000", domain.Asset)

	_, err := suite.registry.RegisterAccount(context.Background(), domain.Account{
		Code:        "1000",
		Name:        "Another",
		AccountType: domain.Asset,
	})
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *AccountRegistryTestSuite) TestRegisterAccount_RejectsMismatchedNormalBalance() {
	_, err := suite.registry.RegisterAccount(context.Background(), domain.Account{
		Code:          "4000",
		Name:          "Sales",
		AccountType:   domain.Revenue,
		NormalBalance: domain.DebitNormal,
	})
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountRegistryTestSuite) TestRegisterAccount_RejectsUnknownType() {
	_, err := suite.registry.RegisterAccount(context.Background(), domain.Account{
		Code:        "9000",
		Name:        "Mystery",
		AccountType: domain.AccountType("CONTRA"),
	})
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountRegistryTestSuite) TestRegisterAccount_Hierarchy() {
	suite.register("1000", domain.Asset)

	child, err := suite.registry.RegisterAccount(context.Background(), domain.Account{
		Code:        "1100",
		Name:        "Bank",
		AccountType: domain.Asset,
		ParentCode:  "1000",
	})
	suite.Require().NoError(err)
	suite.Equal(1, child.Level)
	suite.Equal("1000/1100", child.Path)

	grandchild, err := suite.registry.RegisterAccount(context.Background(), domain.Account{
		Code:        "1110",
		Name:        "Operating Account",
		AccountType: domain.Asset,
		ParentCode:  "1100",
	})
	suite.Require().NoError(err)
	suite.Equal(2, grandchild.Level)
	suite.Equal("1000/1100/1110", grandchild.Path)
}

func (suite *AccountRegistryTestSuite) TestRegisterAccount_UnregisteredParent() {
	_, err := suite.registry.RegisterAccount(context.Background(), domain.Account{
		Code:        "1100",
		Name:        "Bank",
		AccountType: domain.Asset,
		ParentCode:  "1000",
	})
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *AccountRegistryTestSuite) TestGetAccount_NotFound() {
	_, err := suite.registry.GetAccount(context.Background(), "nope")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountRegistryTestSuite) TestHasAccount() {
	suite.False(suite.registry.HasAccount(context.Background(), "1000"))
	suite.register("1000", domain.Asset)
	suite.True(suite.registry.HasAccount(context.Background(), "1000"))
}

func (suite *AccountRegistryTestSuite) TestRemoveAccount() {
	suite.register("1000", domain.Asset)

	suite.Require().NoError(suite.registry.RemoveAccount(context.Background(), "1000"))
	suite.False(suite.registry.HasAccount(context.Background(), "1000"))
	suite.Empty(suite.registry.GetAccountsByType(context.Background(), domain.Asset))
}

func (suite *AccountRegistryTestSuite) TestRemoveAccount_RefusesSystemAccount() {
	_, err := suite.registry.RegisterAccount(context.Background(), domain.Account{
		Code:        "3000",
		Name:        "Retained Earnings",
		AccountType: domain.Equity,
		IsSystem:    true,
	})
	suite.Require().NoError(err)

	err = suite.registry.RemoveAccount(context.Background(), "3000")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.True(suite.registry.HasAccount(context.Background(), "3000"))
}

func (suite *AccountRegistryTestSuite) TestGetAccountsByType() {
	suite.register("1000", domain.Asset)
	suite.register("1100", domain.Asset)
	suite.register("4000", domain.Revenue)

	assets := suite.registry.GetAccountsByType(context.Background(), domain.Asset)
	suite.Len(assets, 2)
	suite.Len(suite.registry.GetAccountsByType(context.Background(), domain.Revenue), 1)
	suite.Empty(suite.registry.GetAccountsByType(context.Background(), domain.Expense))
}

func (suite *AccountRegistryTestSuite) TestGetAccountNormalBalance() {
	suite.register("5000", domain.Expense)

	nb, err := suite.registry.GetAccountNormalBalance(context.Background(), "5000")
	suite.Require().NoError(err)
	suite.Equal(domain.DebitNormal, nb)

	_, err = suite.registry.GetAccountNormalBalance(context.Background(), "none")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountRegistryTestSuite) TestReset() {
	suite.register("1000", domain.Asset)
	suite.registry.Reset()
	suite.False(suite.registry.HasAccount(context.Background(), "1000"))
	suite.Empty(suite.registry.GetAccountsByType(context.Background(), domain.Asset))
}

func TestAccountRegistryTestSuite(t *testing.T) {
	suite.Run(t, new(AccountRegistryTestSuite))
}
