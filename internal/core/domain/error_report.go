package domain

// ErrorSummary holds the aggregate counts of an ErrorReport.
// TotalErrors counts ERROR and CRITICAL issues; TotalWarnings counts WARNING.
type ErrorSummary struct {
	TotalErrors    int                   `json:"totalErrors"`
	TotalWarnings  int                   `json:"totalWarnings"`
	CriticalErrors int                   `json:"criticalErrors"`
	ByCategory     map[ErrorCategory]int `json:"byCategory"`
	BySeverity     map[ErrorSeverity]int `json:"bySeverity"`
}

// ErrorReport is the operator-facing summary of everything an aggregator has
// collected.
type ErrorReport struct {
	Summary ErrorSummary              `json:"summary"`
	Issues  []EnhancedValidationError `json:"issues"`
}
