package accounting

import (
	"fmt"

	"github.com/arthaworks/ledgerengine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the maximum absolute debit/credit mismatch accepted per
// transaction. Rounding of converted amounts can leave up to a cent of drift.
var BalanceTolerance = decimal.NewFromFloat(0.01)

// CalculateAccountBalance computes an account balance from its debit and
// credit totals, keyed by the account's normal-balance side. The account type
// is accepted for consistency checks against the fixed type mapping only.
func CalculateAccountBalance(accountType domain.AccountType, normalBalance domain.NormalBalance, totalDebits, totalCredits decimal.Decimal) decimal.Decimal {
	if normalBalance == domain.DebitNormal {
		return totalDebits.Sub(totalCredits)
	}
	return totalCredits.Sub(totalDebits)
}

// ValidateDoubleEntry checks a raw entry set against the double-entry rules.
// Every check runs, so a single call surfaces every defect; only the trivial
// empty-set case short-circuits.
func ValidateDoubleEntry(entries []domain.TransactionEntry) []domain.ValidationError {
	if len(entries) == 0 {
		return []domain.ValidationError{{
			Field:   "entries",
			Message: "transaction has no entries",
			Code:    domain.CodeNoEntries,
		}}
	}

	var errs []domain.ValidationError
	totalDebits := decimal.Zero
	totalCredits := decimal.Zero

	for i, entry := range entries {
		field := fmt.Sprintf("entries[%d]", i)

		if entry.AccountCode == "" {
			errs = append(errs, domain.ValidationError{
				Field:   field + ".accountCode",
				Message: "entry is missing an account reference",
				Code:    domain.CodeMissingAccountID,
			})
		}

		hasDebit := !entry.DebitAmount.IsZero()
		hasCredit := !entry.CreditAmount.IsZero()

		if hasDebit && hasCredit {
			errs = append(errs, domain.ValidationError{
				Field:   field,
				Message: "entry carries both a debit and a credit amount",
				Code:    domain.CodeBothDebitAndCredit,
			})
		}
		if !hasDebit && !hasCredit {
			errs = append(errs, domain.ValidationError{
				Field:   field,
				Message: "entry carries no amount",
				Code:    domain.CodeNoAmount,
			})
		}
		if entry.DebitAmount.IsNegative() {
			errs = append(errs, domain.ValidationError{
				Field:   field + ".debitAmount",
				Message: "debit amount must not be negative",
				Code:    domain.CodeNegativeDebit,
			})
		}
		if entry.CreditAmount.IsNegative() {
			errs = append(errs, domain.ValidationError{
				Field:   field + ".creditAmount",
				Message: "credit amount must not be negative",
				Code:    domain.CodeNegativeCredit,
			})
		}

		totalDebits = totalDebits.Add(entry.DebitAmount)
		totalCredits = totalCredits.Add(entry.CreditAmount)
	}

	if len(entries) < 2 {
		errs = append(errs, domain.ValidationError{
			Field:   "entries",
			Message: "double-entry transactions require at least two entries",
			Code:    domain.CodeInsufficientEntries,
		})
	}

	if totalDebits.Sub(totalCredits).Abs().GreaterThan(BalanceTolerance) {
		errs = append(errs, domain.ValidationError{
			Field:   "entries",
			Message: fmt.Sprintf("transaction is unbalanced: total debits %s, total credits %s", totalDebits.String(), totalCredits.String()),
			Code:    domain.CodeUnbalancedTransaction,
		})
	}

	return errs
}

// ValidateTransactionData checks a full submission: required header fields
// first, then the double-entry rules over the non-zero entries.
func ValidateTransactionData(data domain.TransactionData) []domain.ValidationError {
	var errs []domain.ValidationError

	if data.Description == "" {
		errs = append(errs, domain.ValidationError{
			Field:   "description",
			Message: "transaction description is required",
			Code:    domain.CodeMissingDescription,
		})
	}
	if data.TransactionDate.IsZero() {
		errs = append(errs, domain.ValidationError{
			Field:   "transactionDate",
			Message: "transaction date is required",
			Code:    domain.CodeMissingTransactionDate,
		})
	}
	if data.CurrencyCode == "" {
		errs = append(errs, domain.ValidationError{
			Field:   "currencyCode",
			Message: "transaction currency is required",
			Code:    domain.CodeMissingCurrency,
		})
	}

	errs = append(errs, ValidateDoubleEntry(data.NonZeroEntries())...)
	return errs
}

// balanceRelatedCodes are the codes that make a submission unpostable and
// therefore cause TransactionBuilder.Build to fail.
var balanceRelatedCodes = map[string]struct{}{
	domain.CodeUnbalancedTransaction: {},
	domain.CodeNoEntries:             {},
	domain.CodeInsufficientEntries:   {},
	domain.CodeBothDebitAndCredit:    {},
	domain.CodeNoAmount:              {},
	domain.CodeNegativeDebit:         {},
	domain.CodeNegativeCredit:        {},
}
