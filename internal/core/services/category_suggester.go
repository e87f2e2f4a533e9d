package services

import (
	"context"
	"strings"

	portssvc "github.com/arthaworks/ledgerengine/internal/core/ports/services"
	"github.com/arthaworks/ledgerengine/internal/dto"
)

// keywordCategorySuggester classifies a transaction description by keyword
// lookup. It is deliberately simple; callers treat the result as a hint, not
// an instruction.
type keywordCategorySuggester struct {
	keywords map[string]string
}

// NewKeywordCategorySuggester builds the suggester with its default keyword
// catalog.
func NewKeywordCategorySuggester() portssvc.CategorySuggester {
	return &keywordCategorySuggester{
		keywords: map[string]string{
			"salary":      "Payroll",
			"payroll":     "Payroll",
			"gaji":        "Payroll",
			"rent":        "Rent",
			"sewa":        "Rent",
			"electricity": "Utilities",
			"listrik":     "Utilities",
			"water":       "Utilities",
			"internet":    "Utilities",
			"invoice":     "Sales",
			"sale":        "Sales",
			"penjualan":   "Sales",
			"purchase":    "Purchases",
			"pembelian":   "Purchases",
			"supplier":    "Purchases",
			"tax":         "Taxes",
			"pajak":       "Taxes",
			"bank fee":    "Bank Charges",
			"interest":    "Interest",
			"bunga":       "Interest",
			"transport":   "Travel",
			"travel":      "Travel",
		},
	}
}

var _ portssvc.CategorySuggester = (*keywordCategorySuggester)(nil)

func (s *keywordCategorySuggester) SuggestCategory(ctx context.Context, req dto.SuggestionRequest) (*dto.CategorySuggestion, error) {
	description := strings.ToLower(req.Description)

	for keyword, category := range s.keywords {
		if strings.Contains(description, keyword) {
			return &dto.CategorySuggestion{
				Category:   category,
				Confidence: 0.8,
				Reasoning:  "description matches keyword " + keyword,
			}, nil
		}
	}

	return &dto.CategorySuggestion{
		Category:   "Uncategorized",
		Confidence: 0.1,
		Reasoning:  "no keyword matched the description",
	}, nil
}
