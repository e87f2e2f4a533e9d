package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arthaworks/ledgerengine/internal/apperrors"
	"github.com/arthaworks/ledgerengine/internal/core/domain"
	portsrepo "github.com/arthaworks/ledgerengine/internal/core/ports/repositories"
	"github.com/arthaworks/ledgerengine/internal/models"
	"github.com/arthaworks/ledgerengine/internal/utils/accounting"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxLedgerRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxLedgerRepository creates a new repository for transaction and journal
// entry data.
func newPgxLedgerRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

func toModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		Description:     d.Description,
		TransactionDate: d.TransactionDate,
		CurrencyCode:    d.CurrencyCode,
		Reference:       d.Reference,
		Status:          string(d.Status),
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		Description:     m.Description,
		TransactionDate: m.TransactionDate,
		CurrencyCode:    m.CurrencyCode,
		Reference:       m.Reference,
		Status:          domain.TransactionStatus(m.Status),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

func toModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:          d.EntryID,
		TransactionID:    d.TransactionID,
		LineNumber:       d.LineNumber,
		AccountCode:      d.AccountCode,
		Description:      d.Description,
		DebitAmount:      d.DebitAmount,
		CreditAmount:     d.CreditAmount,
		CurrencyCode:     d.CurrencyCode,
		ExchangeRate:     d.ExchangeRate,
		BaseCurrency:     d.BaseCurrency,
		BaseDebitAmount:  d.BaseDebitAmount,
		BaseCreditAmount: d.BaseCreditAmount,
		Status:           string(d.Status),
		PostedAt:         d.PostedAt,
		PostedBy:         d.PostedBy,
		IsReconciled:     d.IsReconciled,
		ReconciliationID: d.ReconciliationID,
		ReconciledAt:     d.ReconciledAt,
		ReconciledBy:     d.ReconciledBy,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:          m.EntryID,
		TransactionID:    m.TransactionID,
		LineNumber:       m.LineNumber,
		AccountCode:      m.AccountCode,
		Description:      m.Description,
		DebitAmount:      m.DebitAmount,
		CreditAmount:     m.CreditAmount,
		CurrencyCode:     m.CurrencyCode,
		ExchangeRate:     m.ExchangeRate,
		BaseCurrency:     m.BaseCurrency,
		BaseDebitAmount:  m.BaseDebitAmount,
		BaseCreditAmount: m.BaseCreditAmount,
		Status:           domain.EntryStatus(m.Status),
		PostedAt:         m.PostedAt,
		PostedBy:         m.PostedBy,
		IsReconciled:     m.IsReconciled,
		ReconciliationID: m.ReconciliationID,
		ReconciledAt:     m.ReconciledAt,
		ReconciledBy:     m.ReconciledBy,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const journalEntryColumns = `
	entry_id, transaction_id, line_number, account_code, description,
	debit_amount, credit_amount, currency_code, exchange_rate,
	base_currency, base_debit_amount, base_credit_amount,
	status, posted_at, posted_by,
	is_reconciled, reconciliation_id, reconciled_at, reconciled_by,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanJournalEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID, &m.TransactionID, &m.LineNumber, &m.AccountCode, &m.Description,
		&m.DebitAmount, &m.CreditAmount, &m.CurrencyCode, &m.ExchangeRate,
		&m.BaseCurrency, &m.BaseDebitAmount, &m.BaseCreditAmount,
		&m.Status, &m.PostedAt, &m.PostedBy,
		&m.IsReconciled, &m.ReconciliationID, &m.ReconciledAt, &m.ReconciledBy,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// SaveTransaction inserts the header and every journal entry in one database
// transaction.
func (r *PgxLedgerRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, entries []domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	header := toModelTransaction(txn)
	headerQuery := `
		INSERT INTO transactions (
			transaction_id, description, transaction_date, currency_code,
			reference, status, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, headerQuery,
		header.TransactionID, header.Description, header.TransactionDate,
		header.CurrencyCode, header.Reference, header.Status,
		header.CreatedAt, header.CreatedBy, header.LastUpdatedAt, header.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", txn.TransactionID, err)
	}

	entryQuery := `
		INSERT INTO journal_entries (` + journalEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23);
	`
	batch := &pgx.Batch{}
	for _, entry := range entries {
		m := toModelJournalEntry(entry)
		batch.Queue(entryQuery,
			m.EntryID, m.TransactionID, m.LineNumber, m.AccountCode, m.Description,
			m.DebitAmount, m.CreditAmount, m.CurrencyCode, m.ExchangeRate,
			m.BaseCurrency, m.BaseDebitAmount, m.BaseCreditAmount,
			m.Status, m.PostedAt, m.PostedBy,
			m.IsReconciled, m.ReconciliationID, m.ReconciledAt, m.ReconciledBy,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
	}
	results := tx.SendBatch(ctx, batch)
	for range entries {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("failed to insert journal entries for %s: %w", txn.TransactionID, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to close journal entry batch: %w", err)
	}

	return r.Commit(ctx, tx)
}

// UpdateTransactionStatus stamps a new lifecycle status on the header.
func (r *PgxLedgerRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, status domain.TransactionStatus, updatedBy string, at time.Time) error {
	query := `
		UPDATE transactions
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, transactionID, string(status), at, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update transaction status %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	return nil
}

// FindTransactionByID retrieves a header row.
func (r *PgxLedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT transaction_id, description, transaction_date, currency_code,
		       reference, status, created_at, created_by, last_updated_at, last_updated_by
		FROM transactions WHERE transaction_id = $1;
	`
	var m models.Transaction
	err := r.Pool.QueryRow(ctx, query, transactionID).Scan(
		&m.TransactionID, &m.Description, &m.TransactionDate, &m.CurrencyCode,
		&m.Reference, &m.Status, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	txn := toDomainTransaction(m)
	return &txn, nil
}

// FindJournalEntriesByTransaction retrieves the entries of a transaction in
// line-number order.
func (r *PgxLedgerRepository) FindJournalEntriesByTransaction(ctx context.Context, transactionID string) ([]domain.JournalEntry, error) {
	query := `SELECT ` + journalEntryColumns + ` FROM journal_entries WHERE transaction_id = $1 ORDER BY line_number;`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries for %s: %w", transactionID, err)
	}
	defer rows.Close()

	var entries []domain.JournalEntry
	for rows.Next() {
		m, err := scanJournalEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		entries = append(entries, toDomainJournalEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading journal entry rows: %w", err)
	}
	return entries, nil
}

// DeleteJournalEntriesByTransaction cascades a delete over one transaction's
// entries and reports the removed count.
func (r *PgxLedgerRepository) DeleteJournalEntriesByTransaction(ctx context.Context, transactionID string) (int64, error) {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM journal_entries WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete journal entries for %s: %w", transactionID, err)
	}
	return tag.RowsAffected(), nil
}

// UpdateJournalEntryReconciliation toggles the reconciliation state of one
// entry.
func (r *PgxLedgerRepository) UpdateJournalEntryReconciliation(ctx context.Context, entryID string, reconciled bool, reconciliationID string, userID string, at time.Time) error {
	var reconciledAt *time.Time
	reconciledBy := ""
	if reconciled {
		reconciledAt = &at
		reconciledBy = userID
	}

	query := `
		UPDATE journal_entries
		SET is_reconciled = $2, reconciliation_id = $3, reconciled_at = $4,
		    reconciled_by = $5, last_updated_at = $6, last_updated_by = $7
		WHERE entry_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, entryID, reconciled, reconciliationID, reconciledAt, reconciledBy, at, userID)
	if err != nil {
		return fmt.Errorf("failed to update reconciliation for entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, entryID)
	}
	return nil
}

// PostTransaction marks the header and entries POSTED and applies balance
// deltas to the referenced accounts, all inside one database transaction with
// the accounts row-locked.
func (r *PgxLedgerRepository) PostTransaction(ctx context.Context, transactionID string, postedBy string, at time.Time) error {
	entries, err := r.FindJournalEntriesByTransaction(ctx, transactionID)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("%w: transaction %s has no journal entries", apperrors.ErrNotFound, transactionID)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	codes := make([]string, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if _, ok := seen[entry.AccountCode]; !ok {
			seen[entry.AccountCode] = struct{}{}
			codes = append(codes, entry.AccountCode)
		}
	}

	lockedAccounts, err := r.accountRepo.FindAccountsByCodesForUpdate(ctx, tx, codes)
	if err != nil {
		return fmt.Errorf("failed to lock accounts for posting: %w", err)
	}

	balanceChanges := make(map[string]decimal.Decimal, len(lockedAccounts))
	for _, entry := range entries {
		account := lockedAccounts[entry.AccountCode]
		delta := accounting.CalculateAccountBalance(account.AccountType, account.NormalBalance, entry.DebitAmount, entry.CreditAmount)
		current, ok := balanceChanges[entry.AccountCode]
		if !ok {
			current = decimal.Zero
		}
		balanceChanges[entry.AccountCode] = current.Add(delta)
	}

	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, postedBy, at); err != nil {
		return fmt.Errorf("failed to update account balances: %w", err)
	}

	entryUpdate := `
		UPDATE journal_entries
		SET status = $2, posted_at = $3, posted_by = $4, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1;
	`
	if _, err := tx.Exec(ctx, entryUpdate, transactionID, string(domain.EntryPosted), at, postedBy); err != nil {
		return fmt.Errorf("failed to mark journal entries posted for %s: %w", transactionID, err)
	}

	headerUpdate := `
		UPDATE transactions
		SET status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_id = $1;
	`
	if _, err := tx.Exec(ctx, headerUpdate, transactionID, string(domain.TransactionPosted), at, postedBy); err != nil {
		return fmt.Errorf("failed to mark transaction posted %s: %w", transactionID, err)
	}

	return r.Commit(ctx, tx)
}
