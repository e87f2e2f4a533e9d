package services

import (
	"context"

	"github.com/arthaworks/ledgerengine/internal/core/domain"
)

// AccountRegistrySvcFacade is the chart-of-accounts contract shared by the
// in-memory registry and the database-backed variant, so callers cannot drift
// between the two.
type AccountRegistrySvcFacade interface {
	// RegisterAccount adds an account to the chart. Duplicate codes are
	// rejected with apperrors.ErrDuplicate; a normal balance inconsistent
	// with the account type is rejected with apperrors.ErrValidation.
	RegisterAccount(ctx context.Context, account domain.Account) (*domain.Account, error)

	// GetAccount retrieves an account by code, apperrors.ErrNotFound if absent.
	GetAccount(ctx context.Context, code string) (*domain.Account, error)

	// HasAccount reports whether a code is registered.
	HasAccount(ctx context.Context, code string) bool

	// RemoveAccount deletes a non-system account. System accounts are
	// refused with apperrors.ErrValidation.
	RemoveAccount(ctx context.Context, code string) error

	// GetAccountsByType lists all accounts of one type.
	GetAccountsByType(ctx context.Context, accountType domain.AccountType) []domain.Account

	// GetAccountNormalBalance returns the registered normal-balance side.
	GetAccountNormalBalance(ctx context.Context, code string) (domain.NormalBalance, error)

	// Reset clears all registry state.
	Reset()
}
