package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// NormalBalance is the side on which an account type naturally increases.
type NormalBalance string

const (
	DebitNormal  NormalBalance = "DEBIT"
	CreditNormal NormalBalance = "CREDIT"
)

// NormalBalanceFor returns the fixed normal-balance side for an account type.
// ASSET and EXPENSE accounts increase on the debit side, everything else on
// the credit side.
func NormalBalanceFor(t AccountType) NormalBalance {
	switch t {
	case Asset, Expense:
		return DebitNormal
	default:
		return CreditNormal
	}
}

// Account represents one node of the chart of accounts.
// Code is the caller-facing key used by transaction entries; AccountID is the
// storage primary key.
type Account struct {
	AccountID         string          `json:"accountID"`
	Code              string          `json:"code"` // Unique within the chart
	Name              string          `json:"name"`
	AccountType       AccountType     `json:"accountType"`
	NormalBalance     NormalBalance   `json:"normalBalance"` // Must match NormalBalanceFor(AccountType)
	CurrencyCode      string          `json:"currencyCode"`
	ParentCode        string          `json:"parentCode"` // Empty for root accounts
	Level             int             `json:"level"`      // 0 for root accounts
	Path              string          `json:"path"`       // Slash-joined codes from root, e.g. "1000/1001"
	Description       string          `json:"description"`
	IsActive          bool            `json:"isActive"`
	IsSystem          bool            `json:"isSystem"`          // System accounts cannot be removed
	AllowTransactions bool            `json:"allowTransactions"` // Header accounts reject postings
	CurrentBalance    decimal.Decimal `json:"currentBalance"`
	AuditFields
}

// IsPostable reports whether journal entries may reference this account.
func (a Account) IsPostable() bool {
	return a.IsActive && a.AllowTransactions
}
