package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the database row shape of one ledger line.
type JournalEntry struct {
	EntryID          string          `db:"entry_id"`
	TransactionID    string          `db:"transaction_id"`
	LineNumber       int             `db:"line_number"`
	AccountCode      string          `db:"account_code"`
	Description      string          `db:"description"`
	DebitAmount      decimal.Decimal `db:"debit_amount"`
	CreditAmount     decimal.Decimal `db:"credit_amount"`
	CurrencyCode     string          `db:"currency_code"`
	ExchangeRate     decimal.Decimal `db:"exchange_rate"`
	BaseCurrency     string          `db:"base_currency"`
	BaseDebitAmount  decimal.Decimal `db:"base_debit_amount"`
	BaseCreditAmount decimal.Decimal `db:"base_credit_amount"`
	Status           string          `db:"status"`
	PostedAt         *time.Time      `db:"posted_at"`
	PostedBy         string          `db:"posted_by"`
	IsReconciled     bool            `db:"is_reconciled"`
	ReconciliationID string          `db:"reconciliation_id"`
	ReconciledAt     *time.Time      `db:"reconciled_at"`
	ReconciledBy     string          `db:"reconciled_by"`
	AuditFields
}
