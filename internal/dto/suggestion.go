package dto

import "github.com/shopspring/decimal"

// SuggestionRequest is the advisory input to the category suggester.
type SuggestionRequest struct {
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount"`
}

// CategorySuggestion is the advisory output. Confidence is in [0, 1];
// callers must still run the submission through full validation.
type CategorySuggestion struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}
