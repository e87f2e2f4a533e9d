package domain

import "time"

// Validation error codes form a fixed vocabulary. Handlers and the error
// recovery layer key off these strings, so they are part of the contract.
const (
	CodeUnbalancedTransaction  = "UNBALANCED_TRANSACTION"
	CodeNoEntries              = "NO_ENTRIES"
	CodeInsufficientEntries    = "INSUFFICIENT_ENTRIES"
	CodeBothDebitAndCredit     = "BOTH_DEBIT_AND_CREDIT"
	CodeNoAmount               = "NO_AMOUNT"
	CodeNegativeDebit          = "NEGATIVE_DEBIT"
	CodeNegativeCredit         = "NEGATIVE_CREDIT"
	CodeMissingAccountID       = "MISSING_ACCOUNT_ID"
	CodeMissingDescription     = "MISSING_DESCRIPTION"
	CodeMissingTransactionDate = "MISSING_TRANSACTION_DATE"
	CodeMissingCurrency        = "MISSING_CURRENCY"
	CodeAccountInactive        = "ACCOUNT_INACTIVE"
	CodeZeroAmount             = "ZERO_AMOUNT"
	CodeSingleEntry            = "SINGLE_ENTRY"
)

// ValidationError is one structural defect found in a submission.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// ErrorSeverity ranks enhanced errors. WARNING does not block an operation,
// ERROR and CRITICAL do.
type ErrorSeverity string

const (
	SeverityWarning  ErrorSeverity = "WARNING"
	SeverityError    ErrorSeverity = "ERROR"
	SeverityCritical ErrorSeverity = "CRITICAL"
)

// ErrorCategory groups enhanced errors for reporting.
type ErrorCategory string

const (
	CategoryValidation   ErrorCategory = "VALIDATION"
	CategoryBusinessRule ErrorCategory = "BUSINESS_RULE"
	CategoryCompliance   ErrorCategory = "COMPLIANCE"
	CategorySystem       ErrorCategory = "SYSTEM"
)

// EnhancedValidationError is a ValidationError enriched with severity,
// category and remediation suggestions. Instances are derived by the error
// recovery layer, never hand-authored.
type EnhancedValidationError struct {
	ValidationError
	Severity    ErrorSeverity     `json:"severity"`
	Category    ErrorCategory     `json:"category"`
	Suggestions []string          `json:"suggestions"`
	Timestamp   time.Time         `json:"timestamp"`
	Context     map[string]string `json:"context,omitempty"`
}
