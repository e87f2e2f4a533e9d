package services

import (
	"context"

	"github.com/arthaworks/ledgerengine/internal/core/domain"
)

// JournalEntrySvcFacade manages the lifecycle of journal entries expanded
// from validated transactions.
type JournalEntrySvcFacade interface {
	// CreateJournalEntriesFromTransaction expands a validated submission into
	// per-account rows with base-currency equivalents and sequential line
	// numbers. Fails when a referenced account is unknown or not postable.
	CreateJournalEntriesFromTransaction(ctx context.Context, transactionID string, data domain.TransactionData, createdBy string) ([]domain.JournalEntry, error)

	// ValidateJournalEntries re-applies double-entry checks at the posted-row
	// level, including account activity.
	ValidateJournalEntries(ctx context.Context, entries []domain.JournalEntry) []domain.ValidationError

	// PostJournalEntries stamps posting metadata on the given entries.
	PostJournalEntries(ctx context.Context, entryIDs []string, postedBy string) ([]domain.JournalEntry, error)

	// ReconcileJournalEntry marks an entry as matched against an external
	// record. Returns nil, without error, for an unknown id.
	ReconcileJournalEntry(ctx context.Context, entryID string, reconciliationID string, reconciledBy string) *domain.JournalEntry

	// UnreconcileJournalEntry clears the reconciliation state. Returns nil,
	// without error, for an unknown id.
	UnreconcileJournalEntry(ctx context.Context, entryID string, updatedBy string) *domain.JournalEntry

	// GetJournalEntriesByTransaction lists the entries of one transaction.
	GetJournalEntriesByTransaction(ctx context.Context, transactionID string) []domain.JournalEntry

	// DeleteJournalEntriesByTransaction cascades and returns the removed count.
	DeleteJournalEntriesByTransaction(ctx context.Context, transactionID string) int

	// GetStatistics aggregates totals, reconciliation counts and per-account
	// and per-currency entry counts.
	GetStatistics(ctx context.Context) domain.JournalStatistics

	// Reset clears all state.
	Reset()
}

// PersistedJournalSvcFacade is implemented by the database-backed journal
// entry manager on top of JournalEntrySvcFacade semantics.
type PersistedJournalSvcFacade interface {
	// CreateAndPersistTransaction validates, persists the header and entry
	// rows atomically, and returns both.
	CreateAndPersistTransaction(ctx context.Context, data domain.TransactionData, createdBy string) (*domain.Transaction, []domain.JournalEntry, error)

	// PostTransaction applies balance deltas to the referenced accounts and
	// transitions the transaction to POSTED.
	PostTransaction(ctx context.Context, transactionID string, postedBy string) error

	// GetTransaction returns the persisted header with its entries.
	GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, []domain.JournalEntry, error)

	// ReconcileJournalEntry persists the reconciliation flag on one entry.
	ReconcileJournalEntry(ctx context.Context, entryID string, reconciliationID string, reconciledBy string) error

	// UnreconcileJournalEntry clears the persisted reconciliation flag.
	UnreconcileJournalEntry(ctx context.Context, entryID string, updatedBy string) error
}
