package services

import (
	"context"

	"github.com/arthaworks/ledgerengine/internal/core/domain"
	"github.com/arthaworks/ledgerengine/internal/dto"
)

// AccountingEngineSvcFacade is the validating gate in front of the journal
// entry manager.
type AccountingEngineSvcFacade interface {
	// CreateTransaction validates a submission and returns it unchanged, or
	// fails with a double-entry LedgerError carrying every defect found.
	CreateTransaction(ctx context.Context, data domain.TransactionData) (*domain.TransactionData, error)
}

// CategorySuggester is the advisory AI boundary. Suggestions inform account
// selection only; they never substitute for validation.
type CategorySuggester interface {
	SuggestCategory(ctx context.Context, req dto.SuggestionRequest) (*dto.CategorySuggestion, error)
}
