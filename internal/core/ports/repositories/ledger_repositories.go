package repositories

import (
	"context"
	"time"

	"github.com/arthaworks/ledgerengine/internal/core/domain"
)

// TransactionWriter persists transaction headers with their journal entries.
type TransactionWriter interface {
	// SaveTransaction inserts the header row and all journal-entry rows in
	// one database transaction, so a crash cannot leave a header without
	// entries.
	SaveTransaction(ctx context.Context, txn domain.Transaction, entries []domain.JournalEntry) error

	// UpdateTransactionStatus stamps a new lifecycle status on the header.
	UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, updatedBy string, at time.Time) error
}

// TransactionReader reads persisted transaction headers and entries.
type TransactionReader interface {
	// FindTransactionByID retrieves a header row.
	// Returns apperrors.ErrNotFound when unknown.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindJournalEntriesByTransaction retrieves every journal entry of a
	// transaction ordered by line number.
	FindJournalEntriesByTransaction(ctx context.Context, transactionID string) ([]domain.JournalEntry, error)
}

// EntryWriter mutates persisted journal entries.
type EntryWriter interface {
	// DeleteJournalEntriesByTransaction cascades a delete and reports how
	// many rows were removed.
	DeleteJournalEntriesByTransaction(ctx context.Context, transactionID string) (int64, error)

	// UpdateJournalEntryReconciliation toggles the reconciliation state of a
	// single entry.
	UpdateJournalEntryReconciliation(ctx context.Context, entryID string, reconciled bool, reconciliationID string, userID string, at time.Time) error
}

// TransactionPoster executes the posting sequence atomically.
type TransactionPoster interface {
	// PostTransaction loads the transaction's entries, locks the referenced
	// accounts, applies balance deltas and marks entries and header POSTED,
	// all inside one database transaction. This is the only balance-mutating
	// path outside account registration.
	PostTransaction(ctx context.Context, transactionID string, postedBy string, at time.Time) error
}

// LedgerRepositoryFacade combines all journal persistence interfaces.
type LedgerRepositoryFacade interface {
	TransactionWriter
	TransactionReader
	EntryWriter
	TransactionPoster
}
