package dto

import (
	"github.com/arthaworks/ledgerengine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest is the payload for registering a chart account.
type CreateAccountRequest struct {
	Code              string             `json:"code" binding:"required"`
	Name              string             `json:"name" binding:"required"`
	AccountType       domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	CurrencyCode      string             `json:"currencyCode" binding:"required,iso4217code"`
	ParentCode        string             `json:"parentCode,omitempty"`
	Description       string             `json:"description,omitempty"`
	IsSystem          bool               `json:"isSystem,omitempty"`
	AllowTransactions *bool              `json:"allowTransactions,omitempty"` // Defaults to true
}

// AccountResponse is the public shape of an account.
type AccountResponse struct {
	AccountID         string               `json:"accountID"`
	Code              string               `json:"code"`
	Name              string               `json:"name"`
	AccountType       domain.AccountType   `json:"accountType"`
	NormalBalance     domain.NormalBalance `json:"normalBalance"`
	CurrencyCode      string               `json:"currencyCode"`
	ParentCode        string               `json:"parentCode,omitempty"`
	Level             int                  `json:"level"`
	Path              string               `json:"path"`
	IsActive          bool                 `json:"isActive"`
	IsSystem          bool                 `json:"isSystem"`
	AllowTransactions bool                 `json:"allowTransactions"`
	CurrentBalance    decimal.Decimal      `json:"currentBalance"`
}

// ToAccountResponse converts a domain.Account to its response shape.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:         a.AccountID,
		Code:              a.Code,
		Name:              a.Name,
		AccountType:       a.AccountType,
		NormalBalance:     a.NormalBalance,
		CurrencyCode:      a.CurrencyCode,
		ParentCode:        a.ParentCode,
		Level:             a.Level,
		Path:              a.Path,
		IsActive:          a.IsActive,
		IsSystem:          a.IsSystem,
		AllowTransactions: a.AllowTransactions,
		CurrentBalance:    a.CurrentBalance,
	}
}

// ToAccountResponses converts a slice of accounts.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	out := make([]AccountResponse, len(accounts))
	for i := range accounts {
		out[i] = ToAccountResponse(&accounts[i])
	}
	return out
}
