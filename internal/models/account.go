package models

import (
	"github.com/shopspring/decimal"
)

// Account is the database row shape of a chart-of-accounts entry.
type Account struct {
	AccountID         string          `db:"account_id"`
	Code              string          `db:"code"`
	Name              string          `db:"name"`
	AccountType       string          `db:"account_type"`
	NormalBalance     string          `db:"normal_balance"`
	CurrencyCode      string          `db:"currency_code"`
	ParentCode        string          `db:"parent_code"` // Nullable
	Level             int             `db:"level"`
	Path              string          `db:"path"`
	Description       string          `db:"description"`
	IsActive          bool            `db:"is_active"`
	IsSystem          bool            `db:"is_system"`
	AllowTransactions bool            `db:"allow_transactions"`
	CurrentBalance    decimal.Decimal `db:"current_balance"`
	AuditFields
}
