package repositories

import (
	"context"
	"time"

	"github.com/arthaworks/ledgerengine/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations over the persisted chart of accounts.
type AccountReader interface {
	// FindAccountByCode retrieves a single account by its chart code.
	// Returns apperrors.ErrNotFound when the code is unknown.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAllAccounts retrieves the full chart of accounts, used to hydrate
	// the registry cache at startup.
	FindAllAccounts(ctx context.Context) ([]domain.Account, error)

	// FindAccountsByType retrieves every account of the given type.
	FindAccountsByType(ctx context.Context, accountType domain.AccountType) ([]domain.Account, error)
}

// AccountWriter defines write operations over the persisted chart of accounts.
type AccountWriter interface {
	// SaveAccount inserts a new account. Returns apperrors.ErrDuplicate when
	// the code is already taken.
	SaveAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount flips is_active off without removing history.
	DeactivateAccount(ctx context.Context, code string, userID string, now time.Time) error

	// DeleteAccount removes an account row. Callers are responsible for
	// refusing system accounts before reaching this method.
	DeleteAccount(ctx context.Context, code string) error
}

// AccountLocker defines the in-transaction operations the posting path needs.
type AccountLocker interface {
	// FindAccountsByCodesForUpdate loads and row-locks accounts inside tx.
	// Fails with apperrors.ErrNotFound if any code is missing.
	FindAccountsByCodesForUpdate(ctx context.Context, tx pgx.Tx, codes []string) (map[string]domain.Account, error)

	// UpdateAccountBalancesInTx applies signed balance deltas inside tx.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountLocker
}
