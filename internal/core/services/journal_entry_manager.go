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
	"github.com/arthaworks/ledgerengine/internal/utils"
	"github.com/arthaworks/ledgerengine/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// expandJournalEntries turns a validated submission into per-account journal
// entry rows: account resolution, base-currency conversion, sequential line
// numbers. Shared by the in-memory and database-backed managers so the two
// cannot drift.
func expandJournalEntries(ctx context.Context, registry portssvc.AccountRegistrySvcFacade, rates portsrepo.RateProvider, baseCurrency, transactionID string, data domain.TransactionData, createdBy string) ([]domain.JournalEntry, error) {
	now := time.Now().UTC()
	nonZero := data.NonZeroEntries()
	entries := make([]domain.JournalEntry, 0, len(nonZero))

	for i, line := range nonZero {
		account, err := registry.GetAccount(ctx, line.AccountCode)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve account %s: %w", line.AccountCode, err)
		}
		if !account.AllowTransactions {
			return nil, apperrors.NewAccountRegistryError(fmt.Sprintf("account %s (%s) does not accept transactions", account.Code, account.Name))
		}

		currency := line.CurrencyCode
		if currency == "" {
			currency = data.CurrencyCode
		}

		rate := decimal.NewFromInt(1)
		if currency != baseCurrency {
			rate, err = rates.GetRate(ctx, currency, baseCurrency)
			if err != nil {
				return nil, err
			}
			if rate.LessThanOrEqual(decimal.Zero) {
				return nil, apperrors.NewCurrencyConversionError(fmt.Sprintf("non-positive exchange rate %s for %s/%s", rate.String(), currency, baseCurrency))
			}
		}

		entries = append(entries, domain.JournalEntry{
			EntryID:          uuid.NewString(),
			TransactionID:    transactionID,
			LineNumber:       i + 1,
			AccountCode:      account.Code,
			Description:      line.Description,
			DebitAmount:      line.DebitAmount,
			CreditAmount:     line.CreditAmount,
			CurrencyCode:     currency,
			ExchangeRate:     rate,
			BaseCurrency:     baseCurrency,
			BaseDebitAmount:  utils.RoundMoney(line.DebitAmount.Mul(rate)),
			BaseCreditAmount: utils.RoundMoney(line.CreditAmount.Mul(rate)),
			Status:           domain.EntryDraft,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     createdBy,
				LastUpdatedAt: now,
				LastUpdatedBy: createdBy,
			},
		})
	}

	return entries, nil
}

// journalEntryManager keeps journal entries in memory, indexed by entry id,
// transaction id and account code. Single logical caller; no locking.
type journalEntryManager struct {
	registry      portssvc.AccountRegistrySvcFacade
	rates         portsrepo.RateProvider
	baseCurrency  string
	entries       map[string]*domain.JournalEntry
	byTransaction map[string][]string
	byAccount     map[string][]string
}

// NewJournalEntryManager creates an empty in-memory journal entry manager
// converting into the given base currency.
func NewJournalEntryManager(registry portssvc.AccountRegistrySvcFacade, rates portsrepo.RateProvider, baseCurrency string) portssvc.JournalEntrySvcFacade {
	return &journalEntryManager{
		registry:      registry,
		rates:         rates,
		baseCurrency:  baseCurrency,
		entries:       make(map[string]*domain.JournalEntry),
		byTransaction: make(map[string][]string),
		byAccount:     make(map[string][]string),
	}
}

var _ portssvc.JournalEntrySvcFacade = (*journalEntryManager)(nil)

// CreateJournalEntriesFromTransaction expands and indexes the rows of one
// transaction.
func (m *journalEntryManager) CreateJournalEntriesFromTransaction(ctx context.Context, transactionID string, data domain.TransactionData, createdBy string) ([]domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entries, err := expandJournalEntries(ctx, m.registry, m.rates, m.baseCurrency, transactionID, data, createdBy)
	if err != nil {
		return nil, err
	}

	for i := range entries {
		entry := entries[i]
		m.entries[entry.EntryID] = &entry
		m.byTransaction[transactionID] = append(m.byTransaction[transactionID], entry.EntryID)
		m.byAccount[entry.AccountCode] = append(m.byAccount[entry.AccountCode], entry.EntryID)
	}

	logger.Debug("Journal entries created", slog.String("transaction_id", transactionID), slog.Int("entries", len(entries)))
	return entries, nil
}

// ValidateJournalEntries re-applies double-entry checks at the posted-row
// level, consulting the registry for account activity.
func (m *journalEntryManager) ValidateJournalEntries(ctx context.Context, entries []domain.JournalEntry) []domain.ValidationError {
	if len(entries) == 0 {
		return []domain.ValidationError{{
			Field:   "entries",
			Message: "no journal entries to validate",
			Code:    domain.CodeNoEntries,
		}}
	}

	var errs []domain.ValidationError
	totalBaseDebits := decimal.Zero
	totalBaseCredits := decimal.Zero

	for i, entry := range entries {
		field := fmt.Sprintf("entries[%d]", i)

		hasDebit := !entry.DebitAmount.IsZero()
		hasCredit := !entry.CreditAmount.IsZero()
		if hasDebit && hasCredit {
			errs = append(errs, domain.ValidationError{
				Field:   field,
				Message: "journal entry carries both a debit and a credit amount",
				Code:    domain.CodeBothDebitAndCredit,
			})
		}
		if !hasDebit && !hasCredit {
			errs = append(errs, domain.ValidationError{
				Field:   field,
				Message: "journal entry carries no amount",
				Code:    domain.CodeZeroAmount,
			})
		}

		if entry.AccountCode == "" {
			errs = append(errs, domain.ValidationError{
				Field:   field + ".accountCode",
				Message: "journal entry is missing an account reference",
				Code:    domain.CodeMissingAccountID,
			})
		} else if account, err := m.registry.GetAccount(ctx, entry.AccountCode); err != nil {
			errs = append(errs, domain.ValidationError{
				Field:   field + ".accountCode",
				Message: fmt.Sprintf("account %s is not registered", entry.AccountCode),
				Code:    domain.CodeMissingAccountID,
			})
		} else if !account.IsActive {
			errs = append(errs, domain.ValidationError{
				Field:   field + ".accountCode",
				Message: fmt.Sprintf("account %s is inactive", entry.AccountCode),
				Code:    domain.CodeAccountInactive,
			})
		}

		totalBaseDebits = totalBaseDebits.Add(entry.BaseDebitAmount)
		totalBaseCredits = totalBaseCredits.Add(entry.BaseCreditAmount)
	}

	if len(entries) == 1 {
		errs = append(errs, domain.ValidationError{
			Field:   "entries",
			Message: "a transaction must post at least two journal entries",
			Code:    domain.CodeSingleEntry,
		})
	}

	if totalBaseDebits.Sub(totalBaseCredits).Abs().GreaterThan(accounting.BalanceTolerance) {
		errs = append(errs, domain.ValidationError{
			Field:   "entries",
			Message: fmt.Sprintf("journal entries are unbalanced: base debits %s, base credits %s", totalBaseDebits.String(), totalBaseCredits.String()),
			Code:    domain.CodeUnbalancedTransaction,
		})
	}

	return errs
}

// PostJournalEntries stamps posting metadata on the given entries.
func (m *journalEntryManager) PostJournalEntries(ctx context.Context, entryIDs []string, postedBy string) ([]domain.JournalEntry, error) {
	now := time.Now().UTC()
	posted := make([]domain.JournalEntry, 0, len(entryIDs))

	for _, id := range entryIDs {
		entry, ok := m.entries[id]
		if !ok {
			return nil, fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, id)
		}
		entry.Status = domain.EntryPosted
		entry.PostedAt = &now
		entry.PostedBy = postedBy
		entry.LastUpdatedAt = now
		entry.LastUpdatedBy = postedBy
		posted = append(posted, *entry)
	}
	return posted, nil
}

// ReconcileJournalEntry marks an entry as matched. Unknown ids yield nil.
func (m *journalEntryManager) ReconcileJournalEntry(ctx context.Context, entryID string, reconciliationID string, reconciledBy string) *domain.JournalEntry {
	entry, ok := m.entries[entryID]
	if !ok {
		return nil
	}

	now := time.Now().UTC()
	entry.IsReconciled = true
	entry.ReconciliationID = reconciliationID
	entry.ReconciledAt = &now
	entry.ReconciledBy = reconciledBy
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = reconciledBy

	out := *entry
	return &out
}

// UnreconcileJournalEntry clears the reconciliation state. Unknown ids yield nil.
func (m *journalEntryManager) UnreconcileJournalEntry(ctx context.Context, entryID string, updatedBy string) *domain.JournalEntry {
	entry, ok := m.entries[entryID]
	if !ok {
		return nil
	}

	now := time.Now().UTC()
	entry.IsReconciled = false
	entry.ReconciliationID = ""
	entry.ReconciledAt = nil
	entry.ReconciledBy = ""
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = updatedBy

	out := *entry
	return &out
}

// GetJournalEntriesByTransaction lists the entries of one transaction in
// line-number order.
func (m *journalEntryManager) GetJournalEntriesByTransaction(ctx context.Context, transactionID string) []domain.JournalEntry {
	ids := m.byTransaction[transactionID]
	entries := make([]domain.JournalEntry, 0, len(ids))
	for _, id := range ids {
		if entry, ok := m.entries[id]; ok {
			entries = append(entries, *entry)
		}
	}
	return entries
}

// DeleteJournalEntriesByTransaction cascades and returns the removed count.
func (m *journalEntryManager) DeleteJournalEntriesByTransaction(ctx context.Context, transactionID string) int {
	ids := m.byTransaction[transactionID]
	removed := 0

	for _, id := range ids {
		entry, ok := m.entries[id]
		if !ok {
			continue
		}
		delete(m.entries, id)
		m.byAccount[entry.AccountCode] = removeString(m.byAccount[entry.AccountCode], id)
		removed++
	}
	delete(m.byTransaction, transactionID)
	return removed
}

// GetStatistics aggregates the state of the store. Totals are in the base
// currency, so a balanced store reports equal debit and credit totals.
func (m *journalEntryManager) GetStatistics(ctx context.Context) domain.JournalStatistics {
	stats := domain.JournalStatistics{
		TotalDebits:       decimal.Zero,
		TotalCredits:      decimal.Zero,
		EntriesByAccount:  make(map[string]int),
		EntriesByCurrency: make(map[string]int),
		DebitsByCurrency:  make(map[string]decimal.Decimal),
	}

	for _, entry := range m.entries {
		stats.TotalEntries++
		stats.TotalDebits = stats.TotalDebits.Add(entry.BaseDebitAmount)
		stats.TotalCredits = stats.TotalCredits.Add(entry.BaseCreditAmount)
		if entry.IsReconciled {
			stats.ReconciledCount++
		} else {
			stats.UnreconciledCount++
		}
		stats.EntriesByAccount[entry.AccountCode]++
		stats.EntriesByCurrency[entry.CurrencyCode]++
		current, ok := stats.DebitsByCurrency[entry.CurrencyCode]
		if !ok {
			current = decimal.Zero
		}
		stats.DebitsByCurrency[entry.CurrencyCode] = current.Add(entry.DebitAmount)
	}
	stats.TotalTransactions = len(m.byTransaction)
	return stats
}

// Reset clears all state.
func (m *journalEntryManager) Reset() {
	m.entries = make(map[string]*domain.JournalEntry)
	m.byTransaction = make(map[string][]string)
	m.byAccount = make(map[string][]string)
}

func removeString(ss []string, target string) []string {
	out := ss[:0]
	for _, s := range ss {
		if s != target {
			out = append(out, s)
		}
	}
	return out
}
