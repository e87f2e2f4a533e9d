package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/arthaworks/ledgerengine/internal/core/domain"
)

// ErrorKind tags a LedgerError so callers can switch exhaustively on it
// instead of matching concrete error types.
type ErrorKind string

const (
	KindDoubleEntry        ErrorKind = "DOUBLE_ENTRY"
	KindBalanceSheet       ErrorKind = "BALANCE_SHEET"
	KindAccountRegistry    ErrorKind = "ACCOUNT_REGISTRY"
	KindCurrencyConversion ErrorKind = "CURRENCY_CONVERSION"
	KindPeriodClosure      ErrorKind = "PERIOD_CLOSURE"
	KindFiscalYear         ErrorKind = "FISCAL_YEAR"
	KindCompliance         ErrorKind = "COMPLIANCE"
)

// LedgerError is an invariant violation detected by the engine itself.
// It is fatal to the current operation and expected to be mapped to a 4xx
// response at the service boundary.
type LedgerError struct {
	Kind       ErrorKind                `json:"kind"`
	Message    string                   `json:"message"`
	Code       string                   `json:"code"`
	StatusCode int                      `json:"statusCode"`
	Details    []domain.ValidationError `json:"details,omitempty"`
}

func (e *LedgerError) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("%s: %s (%d issue(s))", e.Code, e.Message, len(e.Details))
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewDoubleEntryError reports a violated double-entry invariant together with
// every structural defect found in the submission.
func NewDoubleEntryError(message string, details []domain.ValidationError) *LedgerError {
	return &LedgerError{
		Kind:       KindDoubleEntry,
		Message:    message,
		Code:       "DOUBLE_ENTRY_VIOLATION",
		StatusCode: http.StatusBadRequest,
		Details:    details,
	}
}

// NewBalanceSheetError reports a balance-sheet equation violation.
func NewBalanceSheetError(message string) *LedgerError {
	return &LedgerError{
		Kind:       KindBalanceSheet,
		Message:    message,
		Code:       "BALANCE_SHEET_VIOLATION",
		StatusCode: http.StatusUnprocessableEntity,
	}
}

// NewAccountRegistryError reports a chart-of-accounts violation, such as a
// posting against a non-postable account.
func NewAccountRegistryError(message string) *LedgerError {
	return &LedgerError{
		Kind:       KindAccountRegistry,
		Message:    message,
		Code:       "ACCOUNT_REGISTRY_ERROR",
		StatusCode: http.StatusBadRequest,
	}
}

// NewCurrencyConversionError reports a missing or unusable exchange rate.
func NewCurrencyConversionError(message string) *LedgerError {
	return &LedgerError{
		Kind:       KindCurrencyConversion,
		Message:    message,
		Code:       "CURRENCY_CONVERSION_ERROR",
		StatusCode: http.StatusUnprocessableEntity,
	}
}

// NewPeriodClosureError reports a posting into a closed accounting period.
func NewPeriodClosureError(message string) *LedgerError {
	return &LedgerError{
		Kind:       KindPeriodClosure,
		Message:    message,
		Code:       "PERIOD_CLOSED",
		StatusCode: http.StatusConflict,
	}
}

// NewFiscalYearError reports an operation outside the open fiscal year.
func NewFiscalYearError(message string) *LedgerError {
	return &LedgerError{
		Kind:       KindFiscalYear,
		Message:    message,
		Code:       "FISCAL_YEAR_ERROR",
		StatusCode: http.StatusConflict,
	}
}

// NewComplianceError reports a regulatory or policy violation.
func NewComplianceError(message string) *LedgerError {
	return &LedgerError{
		Kind:       KindCompliance,
		Message:    message,
		Code:       "COMPLIANCE_VIOLATION",
		StatusCode: http.StatusUnprocessableEntity,
	}
}

// AsLedgerError unwraps err into a *LedgerError if one is in its chain.
func AsLedgerError(err error) (*LedgerError, bool) {
	var le *LedgerError
	if errors.As(err, &le) {
		return le, true
	}
	return nil, false
}
