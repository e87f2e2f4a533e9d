package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/arthaworks/ledgerengine/internal/apperrors"
	"github.com/arthaworks/ledgerengine/internal/core/domain"
	portssvc "github.com/arthaworks/ledgerengine/internal/core/ports/services"
	"github.com/arthaworks/ledgerengine/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// accountRegistry is the in-memory chart of accounts: code→Account with a
// secondary type index. Single logical caller; no internal locking.
type accountRegistry struct {
	byCode map[string]domain.Account
	byType map[domain.AccountType]map[string]struct{}
}

// NewAccountRegistry creates an empty in-memory account registry.
func NewAccountRegistry() portssvc.AccountRegistrySvcFacade {
	return &accountRegistry{
		byCode: make(map[string]domain.Account),
		byType: make(map[domain.AccountType]map[string]struct{}),
	}
}

var _ portssvc.AccountRegistrySvcFacade = (*accountRegistry)(nil)

// normalizeNewAccount applies registration defaults and checks the fixed
// type→normal-balance mapping. Shared with the database-backed registry so
// the two variants cannot drift.
func normalizeNewAccount(account domain.Account, parent *domain.Account, now time.Time) (domain.Account, error) {
	if account.Code == "" {
		return domain.Account{}, fmt.Errorf("%w: account code is required", apperrors.ErrValidation)
	}
	switch account.AccountType {
	case domain.Asset, domain.Liability, domain.Equity, domain.Revenue, domain.Expense:
	default:
		return domain.Account{}, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, account.AccountType)
	}

	expected := domain.NormalBalanceFor(account.AccountType)
	if account.NormalBalance == "" {
		account.NormalBalance = expected
	} else if account.NormalBalance != expected {
		return domain.Account{}, fmt.Errorf("%w: normal balance %s does not match account type %s", apperrors.ErrValidation, account.NormalBalance, account.AccountType)
	}

	if account.AccountID == "" {
		account.AccountID = uuid.NewString()
	}
	if parent != nil {
		account.Level = parent.Level + 1
		account.Path = parent.Path + "/" + account.Code
	} else {
		account.Level = 0
		account.Path = account.Code
	}
	account.IsActive = true
	account.CurrentBalance = decimal.Zero
	account.CreatedAt = now
	account.LastUpdatedAt = now
	return account, nil
}

// RegisterAccount adds an account to the chart. Duplicate codes are rejected
// rather than overwritten.
func (r *accountRegistry) RegisterAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, exists := r.byCode[account.Code]; exists {
		return nil, fmt.Errorf("%w: account code %s is already registered", apperrors.ErrDuplicate, account.Code)
	}

	var parent *domain.Account
	if account.ParentCode != "" {
		p, ok := r.byCode[account.ParentCode]
		if !ok {
			return nil, fmt.Errorf("%w: parent account %s is not registered", apperrors.ErrValidation, account.ParentCode)
		}
		parent = &p
	}

	normalized, err := normalizeNewAccount(account, parent, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	r.byCode[normalized.Code] = normalized
	if r.byType[normalized.AccountType] == nil {
		r.byType[normalized.AccountType] = make(map[string]struct{})
	}
	r.byType[normalized.AccountType][normalized.Code] = struct{}{}

	logger.Debug("Account registered", slog.String("code", normalized.Code), slog.String("type", string(normalized.AccountType)))
	return &normalized, nil
}

// GetAccount retrieves an account by code.
func (r *accountRegistry) GetAccount(ctx context.Context, code string) (*domain.Account, error) {
	account, ok := r.byCode[code]
	if !ok {
		return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, code)
	}
	return &account, nil
}

// HasAccount reports whether a code is registered.
func (r *accountRegistry) HasAccount(ctx context.Context, code string) bool {
	_, ok := r.byCode[code]
	return ok
}

// RemoveAccount deletes an account. System accounts are refused.
func (r *accountRegistry) RemoveAccount(ctx context.Context, code string) error {
	account, ok := r.byCode[code]
	if !ok {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, code)
	}
	if account.IsSystem {
		return fmt.Errorf("%w: account %s is a system account and cannot be removed", apperrors.ErrValidation, code)
	}

	delete(r.byCode, code)
	if codes, ok := r.byType[account.AccountType]; ok {
		delete(codes, code)
	}
	return nil
}

// GetAccountsByType lists all accounts of one type.
func (r *accountRegistry) GetAccountsByType(ctx context.Context, accountType domain.AccountType) []domain.Account {
	codes := r.byType[accountType]
	accounts := make([]domain.Account, 0, len(codes))
	for code := range codes {
		accounts = append(accounts, r.byCode[code])
	}
	return accounts
}

// GetAccountNormalBalance returns the registered normal-balance side.
func (r *accountRegistry) GetAccountNormalBalance(ctx context.Context, code string) (domain.NormalBalance, error) {
	account, err := r.GetAccount(ctx, code)
	if err != nil {
		return "", err
	}
	return account.NormalBalance, nil
}

// Reset clears all registry state.
func (r *accountRegistry) Reset() {
	r.byCode = make(map[string]domain.Account)
	r.byType = make(map[domain.AccountType]map[string]struct{})
}
