package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus indicates the lifecycle state of a transaction header.
type TransactionStatus string

const (
	TransactionDraft  TransactionStatus = "DRAFT"
	TransactionPosted TransactionStatus = "POSTED"
)

// TransactionEntry is one raw debit-or-credit line of a submission.
// Exactly one of DebitAmount/CreditAmount must be non-zero.
type TransactionEntry struct {
	AccountCode  string          `json:"accountCode"`
	Description  string          `json:"description,omitempty"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	CurrencyCode string          `json:"currencyCode,omitempty"` // Defaults to the transaction currency
}

// IsZero reports whether the entry carries no amount on either side.
func (e TransactionEntry) IsZero() bool {
	return e.DebitAmount.IsZero() && e.CreditAmount.IsZero()
}

// TransactionData is an ephemeral, caller-built submission. It is consumed
// exactly once: validated, then expanded into journal entries.
type TransactionData struct {
	Description     string             `json:"description"`
	TransactionDate time.Time          `json:"transactionDate"`
	CurrencyCode    string             `json:"currencyCode"`
	Reference       string             `json:"reference,omitempty"`
	Entries         []TransactionEntry `json:"entries"`
}

// NonZeroEntries returns the entries that carry an amount. Zero-amount lines
// are filtered before any double-entry arithmetic.
func (d TransactionData) NonZeroEntries() []TransactionEntry {
	out := make([]TransactionEntry, 0, len(d.Entries))
	for _, e := range d.Entries {
		if !e.IsZero() {
			out = append(out, e)
		}
	}
	return out
}

// Transaction is the persisted header row a set of journal entries belongs to.
type Transaction struct {
	TransactionID   string            `json:"transactionID"`
	Description     string            `json:"description"`
	TransactionDate time.Time         `json:"transactionDate"`
	CurrencyCode    string            `json:"currencyCode"`
	Reference       string            `json:"reference,omitempty"`
	Status          TransactionStatus `json:"status"`
	AuditFields
}
