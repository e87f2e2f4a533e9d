package services

import (
	"context"
	"log/slog"

	"github.com/arthaworks/ledgerengine/internal/apperrors"
	"github.com/arthaworks/ledgerengine/internal/core/domain"
	portssvc "github.com/arthaworks/ledgerengine/internal/core/ports/services"
	"github.com/arthaworks/ledgerengine/internal/middleware"
	"github.com/arthaworks/ledgerengine/internal/utils/accounting"
)

// accountingEngine is the validation gate in front of transaction creation.
// Nothing enters the ledger without passing the double-entry checks.
type accountingEngine struct {
	suggester portssvc.CategorySuggester
}

// NewAccountingEngine creates the engine. The suggester is optional; pass nil
// to disable category suggestions.
func NewAccountingEngine(suggester portssvc.CategorySuggester) portssvc.AccountingEngineSvcFacade {
	return &accountingEngine{suggester: suggester}
}

var _ portssvc.AccountingEngineSvcFacade = (*accountingEngine)(nil)

// CreateTransaction validates the submission and returns it untouched on
// success. Validation failures are reported as a single aggregated
// double-entry violation carrying every finding.
func (e *accountingEngine) CreateTransaction(ctx context.Context, data domain.TransactionData) (*domain.TransactionData, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if errs := accounting.ValidateTransactionData(data); len(errs) > 0 {
		logger.Warn("Transaction rejected by validation",
			slog.String("description", data.Description),
			slog.Int("violations", len(errs)))
		return nil, apperrors.NewDoubleEntryError("transaction validation failed", errs)
	}

	return &data, nil
}
