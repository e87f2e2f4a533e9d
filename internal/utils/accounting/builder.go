package accounting

import (
	"time"

	"github.com/arthaworks/ledgerengine/internal/apperrors"
	"github.com/arthaworks/ledgerengine/internal/core/domain"
	"github.com/arthaworks/ledgerengine/internal/utils"
	"github.com/shopspring/decimal"
)

// TransactionBuilder assembles a balanced TransactionData fluently. It is a
// plain mutable value, safe for one logical caller at a time.
type TransactionBuilder struct {
	data domain.TransactionData
}

// NewTransactionBuilder returns an empty builder for the given currency.
func NewTransactionBuilder(currencyCode string) *TransactionBuilder {
	return &TransactionBuilder{
		data: domain.TransactionData{CurrencyCode: currencyCode},
	}
}

// SetDescription sets the transaction description.
func (b *TransactionBuilder) SetDescription(description string) *TransactionBuilder {
	b.data.Description = description
	return b
}

// SetDate sets the transaction date.
func (b *TransactionBuilder) SetDate(date time.Time) *TransactionBuilder {
	b.data.TransactionDate = date
	return b
}

// SetReference sets the external reference of the transaction.
func (b *TransactionBuilder) SetReference(reference string) *TransactionBuilder {
	b.data.Reference = reference
	return b
}

// Debit appends a debit line. The amount is rounded to 2 decimal places.
func (b *TransactionBuilder) Debit(accountCode string, amount decimal.Decimal, description ...string) *TransactionBuilder {
	b.data.Entries = append(b.data.Entries, domain.TransactionEntry{
		AccountCode: accountCode,
		DebitAmount: utils.RoundMoney(amount),
		Description: firstOrEmpty(description),
	})
	return b
}

// Credit appends a credit line. The amount is rounded to 2 decimal places.
func (b *TransactionBuilder) Credit(accountCode string, amount decimal.Decimal, description ...string) *TransactionBuilder {
	b.data.Entries = append(b.data.Entries, domain.TransactionEntry{
		AccountCode:  accountCode,
		CreditAmount: utils.RoundMoney(amount),
		Description:  firstOrEmpty(description),
	})
	return b
}

// Validate reports every defect in the current builder state without failing.
func (b *TransactionBuilder) Validate() []domain.ValidationError {
	return ValidateTransactionData(b.data)
}

// Build re-validates and returns the assembled transaction. Any
// balance-related defect fails the build with a double-entry LedgerError;
// header-only defects (missing description, date, currency) do not.
func (b *TransactionBuilder) Build() (domain.TransactionData, error) {
	errs := b.Validate()
	var blocking []domain.ValidationError
	for _, e := range errs {
		if _, ok := balanceRelatedCodes[e.Code]; ok {
			blocking = append(blocking, e)
		}
	}
	if len(blocking) > 0 {
		return domain.TransactionData{}, apperrors.NewDoubleEntryError("transaction entries do not satisfy double-entry rules", blocking)
	}
	return b.data, nil
}

// Reset clears all builder state for reuse, keeping the currency.
func (b *TransactionBuilder) Reset() *TransactionBuilder {
	b.data = domain.TransactionData{CurrencyCode: b.data.CurrencyCode}
	return b
}

func firstOrEmpty(ss []string) string {
	if len(ss) > 0 {
		return ss[0]
	}
	return ""
}
