package services

import (
	"strings"
	"time"

	"github.com/arthaworks/ledgerengine/internal/core/domain"
)

// AccountingErrorFactory builds enhanced validation errors with consistent
// severity and category defaults.
type AccountingErrorFactory struct{}

// NewAccountingErrorFactory creates the factory.
func NewAccountingErrorFactory() *AccountingErrorFactory {
	return &AccountingErrorFactory{}
}

// NewError builds an enhanced error with the default ERROR severity and
// VALIDATION category.
func (f *AccountingErrorFactory) NewError(field, message, code string) domain.EnhancedValidationError {
	return domain.EnhancedValidationError{
		ValidationError: domain.ValidationError{Field: field, Message: message, Code: code},
		Severity:        domain.SeverityError,
		Category:        domain.CategoryValidation,
		Timestamp:       time.Now().UTC(),
	}
}

// NewBusinessRuleError builds an ERROR severity finding in the BUSINESS_RULE
// category.
func (f *AccountingErrorFactory) NewBusinessRuleError(field, message, code string) domain.EnhancedValidationError {
	err := f.NewError(field, message, code)
	err.Category = domain.CategoryBusinessRule
	return err
}

// NewComplianceError builds a COMPLIANCE finding. Compliance findings are
// always CRITICAL.
func (f *AccountingErrorFactory) NewComplianceError(field, message, code string) domain.EnhancedValidationError {
	err := f.NewError(field, message, code)
	err.Category = domain.CategoryCompliance
	err.Severity = domain.SeverityCritical
	return err
}

// NewSystemError builds a SYSTEM finding. System findings are always CRITICAL.
func (f *AccountingErrorFactory) NewSystemError(field, message, code string) domain.EnhancedValidationError {
	err := f.NewError(field, message, code)
	err.Category = domain.CategorySystem
	err.Severity = domain.SeverityCritical
	return err
}

// ErrorRecoveryManager enriches plain validation errors with severity,
// category and actionable recovery suggestions.
type ErrorRecoveryManager struct {
	suggestions map[string][]string
}

// NewErrorRecoveryManager creates the manager with its built-in suggestion
// catalog.
func NewErrorRecoveryManager() *ErrorRecoveryManager {
	return &ErrorRecoveryManager{
		suggestions: map[string][]string{
			domain.CodeUnbalancedTransaction: {
				"Verify that total debits equal total credits",
				"Check for missing journal entry lines",
				"Review rounding on converted amounts",
			},
			domain.CodeNoEntries: {
				"Add at least two journal entry lines",
				"Check that the entry list was populated before submission",
			},
			domain.CodeInsufficientEntries: {
				"A double-entry transaction needs at least two lines",
				"Add the offsetting debit or credit line",
			},
			domain.CodeBothDebitAndCredit: {
				"Split the line into one debit line and one credit line",
				"Zero out the side that does not apply",
			},
			domain.CodeNoAmount: {
				"Set either a debit or a credit amount on the line",
				"Remove the line if it is not needed",
			},
			domain.CodeNegativeDebit: {
				"Debit amounts must be positive",
				"Use a credit line instead of a negative debit",
			},
			domain.CodeNegativeCredit: {
				"Credit amounts must be positive",
				"Use a debit line instead of a negative credit",
			},
			domain.CodeMissingAccountID: {
				"Select an account from the chart of accounts",
				"Register the account before posting to it",
			},
			domain.CodeAccountInactive: {
				"Reactivate the account or post to an active one",
				"Review why the account was deactivated",
			},
		},
	}
}

// SuggestRecovery returns the recovery suggestions for a code, falling back
// to generic guidance when the code is unknown.
func (m *ErrorRecoveryManager) SuggestRecovery(code string) []string {
	if suggestions, ok := m.suggestions[code]; ok {
		out := make([]string, len(suggestions))
		copy(out, suggestions)
		return out
	}
	return []string{
		"Review the transaction details for completeness",
		"Consult the chart of accounts for valid account codes",
		"Contact support if the problem persists",
	}
}

// EnhanceError derives severity and category from the error code and attaches
// recovery suggestions and a timestamp.
func (m *ErrorRecoveryManager) EnhanceError(err domain.ValidationError) domain.EnhancedValidationError {
	severity := domain.SeverityError
	switch {
	case err.Code == "BALANCE_SHEET_VIOLATION":
		severity = domain.SeverityCritical
	case strings.Contains(err.Code, "ROUNDING"):
		severity = domain.SeverityWarning
	}

	category := domain.CategoryValidation
	switch {
	case strings.Contains(err.Code, "COMPLIANCE"):
		category = domain.CategoryCompliance
	case strings.Contains(err.Code, "SYSTEM"):
		category = domain.CategorySystem
	case strings.Contains(err.Code, "BUSINESS_RULE"):
		category = domain.CategoryBusinessRule
	}

	return domain.EnhancedValidationError{
		ValidationError: err,
		Severity:        severity,
		Category:        category,
		Suggestions:     m.SuggestRecovery(err.Code),
		Timestamp:       time.Now().UTC(),
	}
}

// ErrorAggregator collects enhanced errors over the course of an operation
// and produces a summarized report.
type ErrorAggregator struct {
	issues []domain.EnhancedValidationError
}

// NewErrorAggregator creates an empty aggregator.
func NewErrorAggregator() *ErrorAggregator {
	return &ErrorAggregator{}
}

// Add records an issue.
func (a *ErrorAggregator) Add(err domain.EnhancedValidationError) {
	a.issues = append(a.issues, err)
}

// HasWarnings reports whether any WARNING severity issue was recorded.
func (a *ErrorAggregator) HasWarnings() bool {
	for _, issue := range a.issues {
		if issue.Severity == domain.SeverityWarning {
			return true
		}
	}
	return false
}

// HasErrors reports whether any ERROR or CRITICAL issue was recorded.
func (a *ErrorAggregator) HasErrors() bool {
	for _, issue := range a.issues {
		if issue.Severity == domain.SeverityError || issue.Severity == domain.SeverityCritical {
			return true
		}
	}
	return false
}

// GetCriticalErrors returns the CRITICAL issues only.
func (a *ErrorAggregator) GetCriticalErrors() []domain.EnhancedValidationError {
	var out []domain.EnhancedValidationError
	for _, issue := range a.issues {
		if issue.Severity == domain.SeverityCritical {
			out = append(out, issue)
		}
	}
	return out
}

// GetErrorsByCategory returns the issues of one category.
func (a *ErrorAggregator) GetErrorsByCategory(category domain.ErrorCategory) []domain.EnhancedValidationError {
	var out []domain.EnhancedValidationError
	for _, issue := range a.issues {
		if issue.Category == category {
			out = append(out, issue)
		}
	}
	return out
}

// GenerateReport summarizes everything recorded so far. Warnings are counted
// separately and do not contribute to the error total.
func (a *ErrorAggregator) GenerateReport() domain.ErrorReport {
	summary := domain.ErrorSummary{
		ByCategory: make(map[domain.ErrorCategory]int),
		BySeverity: make(map[domain.ErrorSeverity]int),
	}

	for _, issue := range a.issues {
		summary.ByCategory[issue.Category]++
		summary.BySeverity[issue.Severity]++
		switch issue.Severity {
		case domain.SeverityWarning:
			summary.TotalWarnings++
		case domain.SeverityCritical:
			summary.TotalErrors++
			summary.CriticalErrors++
		default:
			summary.TotalErrors++
		}
	}

	issues := make([]domain.EnhancedValidationError, len(a.issues))
	copy(issues, a.issues)
	return domain.ErrorReport{Summary: summary, Issues: issues}
}

// Clear discards all recorded issues.
func (a *ErrorAggregator) Clear() {
	a.issues = nil
}
