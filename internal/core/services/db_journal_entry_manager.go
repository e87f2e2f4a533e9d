package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/arthaworks/ledgerengine/internal/apperrors"
	"github.com/arthaworks/ledgerengine/internal/core/domain"
	portsrepo "github.com/arthaworks/ledgerengine/internal/core/ports/repositories"
	portssvc "github.com/arthaworks/ledgerengine/internal/core/ports/services"
	"github.com/arthaworks/ledgerengine/internal/middleware"
	"github.com/arthaworks/ledgerengine/internal/utils/accounting"
	"github.com/google/uuid"
)

// DatabaseJournalEntryManager persists transactions and their journal entries
// through the ledger repository. All multi-row writes happen inside a single
// database transaction owned by the repository layer.
type DatabaseJournalEntryManager struct {
	repo         portsrepo.LedgerRepositoryFacade
	registry     *DatabaseAccountRegistry
	rates        portsrepo.RateProvider
	baseCurrency string
}

// NewDatabaseJournalEntryManager wires the persisted journal entry manager.
func NewDatabaseJournalEntryManager(repo portsrepo.LedgerRepositoryFacade, registry *DatabaseAccountRegistry, rates portsrepo.RateProvider, baseCurrency string) *DatabaseJournalEntryManager {
	return &DatabaseJournalEntryManager{
		repo:         repo,
		registry:     registry,
		rates:        rates,
		baseCurrency: baseCurrency,
	}
}

var _ portssvc.PersistedJournalSvcFacade = (*DatabaseJournalEntryManager)(nil)

// CreateAndPersistTransaction validates the submission, expands it into
// journal entries and stores the header and rows atomically. The transaction
// is created in DRAFT status; balances move only when it is posted.
func (m *DatabaseJournalEntryManager) CreateAndPersistTransaction(ctx context.Context, data domain.TransactionData, createdBy string) (*domain.Transaction, []domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if errs := accounting.ValidateTransactionData(data); len(errs) > 0 {
		return nil, nil, apperrors.NewDoubleEntryError("transaction validation failed", errs)
	}

	transactionID := uuid.NewString()
	entries, err := expandJournalEntries(ctx, m.registry, m.rates, m.baseCurrency, transactionID, data, createdBy)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID:   transactionID,
		Description:     data.Description,
		TransactionDate: data.TransactionDate,
		CurrencyCode:    data.CurrencyCode,
		Reference:       data.Reference,
		Status:          domain.TransactionDraft,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     createdBy,
			LastUpdatedAt: now,
			LastUpdatedBy: createdBy,
		},
	}

	if err := m.repo.SaveTransaction(ctx, txn, entries); err != nil {
		logger.Error("Failed to persist transaction", slog.String("error", err.Error()))
		return nil, nil, fmt.Errorf("failed to persist transaction: %w", err)
	}

	logger.Info("Transaction persisted",
		slog.String("transaction_id", transactionID),
		slog.Int("entries", len(entries)))
	return &txn, entries, nil
}

// PostTransaction moves a DRAFT transaction to POSTED and applies the balance
// deltas of its journal entries. Posting an already posted transaction is a
// conflict.
func (m *DatabaseJournalEntryManager) PostTransaction(ctx context.Context, transactionID string, postedBy string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := m.repo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}
	if txn.Status != domain.TransactionDraft {
		return fmt.Errorf("%w: transaction %s is already %s", apperrors.ErrConflict, transactionID, txn.Status)
	}

	if err := m.repo.PostTransaction(ctx, transactionID, postedBy, time.Now().UTC()); err != nil {
		logger.Error("Failed to post transaction",
			slog.String("transaction_id", transactionID),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to post transaction %s: %w", transactionID, err)
	}

	// Posted balances changed in the database; drop the stale cached rows.
	entries, err := m.repo.FindJournalEntriesByTransaction(ctx, transactionID)
	if err == nil {
		for _, entry := range entries {
			m.registry.InvalidateAccount(entry.AccountCode)
		}
	}

	logger.Info("Transaction posted", slog.String("transaction_id", transactionID), slog.String("posted_by", postedBy))
	return nil
}

// GetTransaction loads a transaction header together with its journal entries.
func (m *DatabaseJournalEntryManager) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, []domain.JournalEntry, error) {
	txn, err := m.repo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, nil, err
	}
	entries, err := m.repo.FindJournalEntriesByTransaction(ctx, transactionID)
	if err != nil {
		return nil, nil, err
	}
	return txn, entries, nil
}

// ReconcileJournalEntry marks a persisted entry as matched against an external
// statement line.
func (m *DatabaseJournalEntryManager) ReconcileJournalEntry(ctx context.Context, entryID string, reconciliationID string, reconciledBy string) error {
	if err := m.repo.UpdateJournalEntryReconciliation(ctx, entryID, true, reconciliationID, reconciledBy, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to reconcile journal entry %s: %w", entryID, err)
	}
	return nil
}

// UnreconcileJournalEntry clears the reconciliation state of a persisted entry.
func (m *DatabaseJournalEntryManager) UnreconcileJournalEntry(ctx context.Context, entryID string, updatedBy string) error {
	if err := m.repo.UpdateJournalEntryReconciliation(ctx, entryID, false, "", updatedBy, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to unreconcile journal entry %s: %w", entryID, err)
	}
	return nil
}
