package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates whether a journal entry has been posted to its account.
type EntryStatus string

const (
	EntryDraft  EntryStatus = "DRAFT"
	EntryPosted EntryStatus = "POSTED"
)

// JournalEntry is one postable debit-or-credit row expanded from a validated
// transaction. Base* fields carry the ledger base-currency equivalents.
type JournalEntry struct {
	EntryID          string          `json:"entryID"`
	TransactionID    string          `json:"transactionID"`
	LineNumber       int             `json:"lineNumber"` // 1-based, sequential per transaction
	AccountCode      string          `json:"accountCode"`
	Description      string          `json:"description,omitempty"`
	DebitAmount      decimal.Decimal `json:"debitAmount"`
	CreditAmount     decimal.Decimal `json:"creditAmount"`
	CurrencyCode     string          `json:"currencyCode"`
	ExchangeRate     decimal.Decimal `json:"exchangeRate"` // 1 when CurrencyCode == BaseCurrency
	BaseCurrency     string          `json:"baseCurrency"`
	BaseDebitAmount  decimal.Decimal `json:"baseDebitAmount"`
	BaseCreditAmount decimal.Decimal `json:"baseCreditAmount"`
	Status           EntryStatus     `json:"status"`
	PostedAt         *time.Time      `json:"postedAt,omitempty"`
	PostedBy         string          `json:"postedBy,omitempty"`
	IsReconciled     bool            `json:"isReconciled"`
	ReconciliationID string          `json:"reconciliationID,omitempty"`
	ReconciledAt     *time.Time      `json:"reconciledAt,omitempty"`
	ReconciledBy     string          `json:"reconciledBy,omitempty"`
	AuditFields
}

// JournalStatistics aggregates the state of a journal-entry store.
// TotalDebits and TotalCredits are in the ledger base currency, so a balanced
// store satisfies the trial-balance property TotalDebits == TotalCredits.
type JournalStatistics struct {
	TotalEntries      int                        `json:"totalEntries"`
	TotalTransactions int                        `json:"totalTransactions"`
	TotalDebits       decimal.Decimal            `json:"totalDebits"`
	TotalCredits      decimal.Decimal            `json:"totalCredits"`
	ReconciledCount   int                        `json:"reconciledCount"`
	UnreconciledCount int                        `json:"unreconciledCount"`
	EntriesByAccount  map[string]int             `json:"entriesByAccount"`
	EntriesByCurrency map[string]int             `json:"entriesByCurrency"`
	DebitsByCurrency  map[string]decimal.Decimal `json:"debitsByCurrency"`
}
