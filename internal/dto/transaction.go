package dto

import (
	"time"

	"github.com/arthaworks/ledgerengine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryRequest is one debit-or-credit line of a submission.
type CreateEntryRequest struct {
	AccountCode  string          `json:"accountCode" binding:"required"`
	Description  string          `json:"description,omitempty"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	CurrencyCode string          `json:"currencyCode,omitempty"`
}

// CreateTransactionRequest is the payload for submitting a transaction.
// Binding catches only shape problems; the engine's validator enumerates the
// double-entry defects.
type CreateTransactionRequest struct {
	Description     string               `json:"description" binding:"required"`
	TransactionDate time.Time            `json:"transactionDate" binding:"required"`
	CurrencyCode    string               `json:"currencyCode" binding:"required,iso4217code"`
	Reference       string               `json:"reference,omitempty"`
	Entries         []CreateEntryRequest `json:"entries" binding:"required,min=2,dive"`
}

// ToTransactionData converts the request into the engine's input shape.
func (r CreateTransactionRequest) ToTransactionData() domain.TransactionData {
	entries := make([]domain.TransactionEntry, len(r.Entries))
	for i, e := range r.Entries {
		entries[i] = domain.TransactionEntry{
			AccountCode:  e.AccountCode,
			Description:  e.Description,
			DebitAmount:  e.DebitAmount,
			CreditAmount: e.CreditAmount,
			CurrencyCode: e.CurrencyCode,
		}
	}
	return domain.TransactionData{
		Description:     r.Description,
		TransactionDate: r.TransactionDate,
		CurrencyCode:    r.CurrencyCode,
		Reference:       r.Reference,
		Entries:         entries,
	}
}

// ReconcileEntryRequest is the payload for reconciling a journal entry.
type ReconcileEntryRequest struct {
	ReconciliationID string `json:"reconciliationID" binding:"required"`
}

// TransactionResponse is the public shape of a persisted transaction.
type TransactionResponse struct {
	TransactionID   string                   `json:"transactionID"`
	Description     string                   `json:"description"`
	TransactionDate time.Time                `json:"transactionDate"`
	CurrencyCode    string                   `json:"currencyCode"`
	Reference       string                   `json:"reference,omitempty"`
	Status          domain.TransactionStatus `json:"status"`
	Entries         []JournalEntryResponse   `json:"entries,omitempty"`
}

// JournalEntryResponse is the public shape of one journal entry row.
type JournalEntryResponse struct {
	EntryID          string          `json:"entryID"`
	TransactionID    string          `json:"transactionID"`
	LineNumber       int             `json:"lineNumber"`
	AccountCode      string          `json:"accountCode"`
	DebitAmount      decimal.Decimal `json:"debitAmount"`
	CreditAmount     decimal.Decimal `json:"creditAmount"`
	CurrencyCode     string          `json:"currencyCode"`
	ExchangeRate     decimal.Decimal `json:"exchangeRate"`
	BaseCurrency     string          `json:"baseCurrency"`
	BaseDebitAmount  decimal.Decimal `json:"baseDebitAmount"`
	BaseCreditAmount decimal.Decimal `json:"baseCreditAmount"`
	Status           string          `json:"status"`
	IsReconciled     bool            `json:"isReconciled"`
	ReconciliationID string          `json:"reconciliationID,omitempty"`
}

// ToJournalEntryResponse converts one domain entry.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		EntryID:          e.EntryID,
		TransactionID:    e.TransactionID,
		LineNumber:       e.LineNumber,
		AccountCode:      e.AccountCode,
		DebitAmount:      e.DebitAmount,
		CreditAmount:     e.CreditAmount,
		CurrencyCode:     e.CurrencyCode,
		ExchangeRate:     e.ExchangeRate,
		BaseCurrency:     e.BaseCurrency,
		BaseDebitAmount:  e.BaseDebitAmount,
		BaseCreditAmount: e.BaseCreditAmount,
		Status:           string(e.Status),
		IsReconciled:     e.IsReconciled,
		ReconciliationID: e.ReconciliationID,
	}
}

// ToTransactionResponse converts a header with its entries.
func ToTransactionResponse(t *domain.Transaction, entries []domain.JournalEntry) TransactionResponse {
	resp := TransactionResponse{
		TransactionID:   t.TransactionID,
		Description:     t.Description,
		TransactionDate: t.TransactionDate,
		CurrencyCode:    t.CurrencyCode,
		Reference:       t.Reference,
		Status:          t.Status,
	}
	for i := range entries {
		resp.Entries = append(resp.Entries, ToJournalEntryResponse(&entries[i]))
	}
	return resp
}
