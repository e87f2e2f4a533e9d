package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/arthaworks/ledgerengine/internal/apperrors"
	"github.com/arthaworks/ledgerengine/internal/core/domain"
	portsrepo "github.com/arthaworks/ledgerengine/internal/core/ports/repositories"
	portssvc "github.com/arthaworks/ledgerengine/internal/core/ports/services"
	"github.com/arthaworks/ledgerengine/internal/middleware"
)

// DatabaseAccountRegistry is the persisted chart of accounts. It keeps the
// same contract as the in-memory registry but writes through the account
// repository and serves reads cache-aside.
type DatabaseAccountRegistry struct {
	repo   portsrepo.AccountRepositoryFacade
	byCode map[string]domain.Account
	byType map[domain.AccountType]map[string]struct{}
}

// NewDatabaseAccountRegistry creates a registry backed by the given
// repository, with an empty cache. Call LoadAccountsFromDatabase to hydrate.
func NewDatabaseAccountRegistry(repo portsrepo.AccountRepositoryFacade) *DatabaseAccountRegistry {
	return &DatabaseAccountRegistry{
		repo:   repo,
		byCode: make(map[string]domain.Account),
		byType: make(map[domain.AccountType]map[string]struct{}),
	}
}

var _ portssvc.AccountRegistrySvcFacade = (*DatabaseAccountRegistry)(nil)

// LoadAccountsFromDatabase bulk-hydrates the cache from the persisted chart.
func (r *DatabaseAccountRegistry) LoadAccountsFromDatabase(ctx context.Context) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := r.repo.FindAllAccounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load chart of accounts: %w", err)
	}

	r.Reset()
	for _, account := range accounts {
		r.cache(account)
	}

	logger.Info("Chart of accounts hydrated", slog.Int("accounts", len(accounts)))
	return nil
}

func (r *DatabaseAccountRegistry) cache(account domain.Account) {
	r.byCode[account.Code] = account
	if r.byType[account.AccountType] == nil {
		r.byType[account.AccountType] = make(map[string]struct{})
	}
	r.byType[account.AccountType][account.Code] = struct{}{}
}

func (r *DatabaseAccountRegistry) evict(account domain.Account) {
	delete(r.byCode, account.Code)
	if codes, ok := r.byType[account.AccountType]; ok {
		delete(codes, account.Code)
	}
}

// RegisterAccount persists a new account and caches it on success.
func (r *DatabaseAccountRegistry) RegisterAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, exists := r.byCode[account.Code]; exists {
		return nil, fmt.Errorf("%w: account code %s is already registered", apperrors.ErrDuplicate, account.Code)
	}

	var parent *domain.Account
	if account.ParentCode != "" {
		p, err := r.GetAccount(ctx, account.ParentCode)
		if err != nil {
			return nil, fmt.Errorf("%w: parent account %s is not registered", apperrors.ErrValidation, account.ParentCode)
		}
		parent = p
	}

	normalized, err := normalizeNewAccount(account, parent, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := r.repo.SaveAccount(ctx, normalized); err != nil {
		logger.Error("Failed to persist account", slog.String("code", normalized.Code), slog.String("error", err.Error()))
		return nil, err
	}

	r.cache(normalized)
	logger.Info("Account registered", slog.String("code", normalized.Code), slog.String("type", string(normalized.AccountType)))
	return &normalized, nil
}

// GetAccount serves from cache, falling back to the repository and caching
// the result.
func (r *DatabaseAccountRegistry) GetAccount(ctx context.Context, code string) (*domain.Account, error) {
	if account, ok := r.byCode[code]; ok {
		return &account, nil
	}

	account, err := r.repo.FindAccountByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	r.cache(*account)
	return account, nil
}

// HasAccount reports whether a code exists in the cache or the store.
func (r *DatabaseAccountRegistry) HasAccount(ctx context.Context, code string) bool {
	if _, ok := r.byCode[code]; ok {
		return true
	}
	_, err := r.GetAccount(ctx, code)
	return err == nil
}

// RemoveAccount deletes a non-system account from the store and the cache.
func (r *DatabaseAccountRegistry) RemoveAccount(ctx context.Context, code string) error {
	account, err := r.GetAccount(ctx, code)
	if err != nil {
		return err
	}
	if account.IsSystem {
		return fmt.Errorf("%w: account %s is a system account and cannot be removed", apperrors.ErrValidation, code)
	}

	if err := r.repo.DeleteAccount(ctx, code); err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to delete account %s: %w", code, err)
	}
	r.evict(*account)
	return nil
}

// GetAccountsByType lists accounts of one type from the store, falling back
// to the cache when the store is unavailable.
func (r *DatabaseAccountRegistry) GetAccountsByType(ctx context.Context, accountType domain.AccountType) []domain.Account {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := r.repo.FindAccountsByType(ctx, accountType)
	if err != nil {
		logger.Warn("Falling back to cached accounts", slog.String("type", string(accountType)), slog.String("error", err.Error()))
		cached := make([]domain.Account, 0, len(r.byType[accountType]))
		for code := range r.byType[accountType] {
			cached = append(cached, r.byCode[code])
		}
		return cached
	}

	for _, account := range accounts {
		r.cache(account)
	}
	return accounts
}

// GetAccountNormalBalance returns the registered normal-balance side.
func (r *DatabaseAccountRegistry) GetAccountNormalBalance(ctx context.Context, code string) (domain.NormalBalance, error) {
	account, err := r.GetAccount(ctx, code)
	if err != nil {
		return "", err
	}
	return account.NormalBalance, nil
}

// Reset clears the cache only; persisted accounts are untouched.
func (r *DatabaseAccountRegistry) Reset() {
	r.byCode = make(map[string]domain.Account)
	r.byType = make(map[domain.AccountType]map[string]struct{})
}

// InvalidateAccount drops one account from the cache, forcing the next read
// through the repository. The posting path mutates balances in the database,
// so its callers invalidate affected accounts.
func (r *DatabaseAccountRegistry) InvalidateAccount(code string) {
	if account, ok := r.byCode[code]; ok {
		r.evict(account)
	}
}
