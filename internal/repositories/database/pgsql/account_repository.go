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
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for chart-of-accounts data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func toModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:         d.AccountID,
		Code:              d.Code,
		Name:              d.Name,
		AccountType:       string(d.AccountType),
		NormalBalance:     string(d.NormalBalance),
		CurrencyCode:      d.CurrencyCode,
		ParentCode:        d.ParentCode,
		Level:             d.Level,
		Path:              d.Path,
		Description:       d.Description,
		IsActive:          d.IsActive,
		IsSystem:          d.IsSystem,
		AllowTransactions: d.AllowTransactions,
		CurrentBalance:    d.CurrentBalance,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:         m.AccountID,
		Code:              m.Code,
		Name:              m.Name,
		AccountType:       domain.AccountType(m.AccountType),
		NormalBalance:     domain.NormalBalance(m.NormalBalance),
		CurrencyCode:      m.CurrencyCode,
		ParentCode:        m.ParentCode,
		Level:             m.Level,
		Path:              m.Path,
		Description:       m.Description,
		IsActive:          m.IsActive,
		IsSystem:          m.IsSystem,
		AllowTransactions: m.AllowTransactions,
		CurrentBalance:    m.CurrentBalance,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const accountColumns = `
	account_id, code, name, account_type, normal_balance, currency_code,
	parent_code, level, path, description, is_active, is_system,
	allow_transactions, current_balance,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID, &m.Code, &m.Name, &m.AccountType, &m.NormalBalance,
		&m.CurrencyCode, &m.ParentCode, &m.Level, &m.Path, &m.Description,
		&m.IsActive, &m.IsSystem, &m.AllowTransactions, &m.CurrentBalance,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// SaveAccount inserts a new account row. A code collision surfaces as
// apperrors.ErrDuplicate.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := toModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID, m.Code, m.Name, m.AccountType, m.NormalBalance,
		m.CurrencyCode, m.ParentCode, m.Level, m.Path, m.Description,
		m.IsActive, m.IsSystem, m.AllowTransactions, m.CurrentBalance,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: account code %s", apperrors.ErrDuplicate, account.Code)
		}
		return fmt.Errorf("failed to insert account %s: %w", account.Code, err)
	}
	return nil
}

// FindAccountByCode retrieves a single account by its chart code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE code = $1;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account code %s", apperrors.ErrNotFound, code)
		}
		return nil, fmt.Errorf("failed to find account %s: %w", code, err)
	}
	account := toDomainAccount(m)
	return &account, nil
}

// FindAllAccounts retrieves the full chart of accounts ordered by code.
func (r *PgxAccountRepository) FindAllAccounts(ctx context.Context) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY code;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, toDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading account rows: %w", err)
	}
	return accounts, nil
}

// FindAccountsByType retrieves every account of the given type ordered by code.
func (r *PgxAccountRepository) FindAccountsByType(ctx context.Context, accountType domain.AccountType) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_type = $1 ORDER BY code;`
	rows, err := r.Pool.Query(ctx, query, string(accountType))
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by type %s: %w", accountType, err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, toDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading account rows: %w", err)
	}
	return accounts, nil
}

// DeactivateAccount flips is_active off, keeping the row and its history.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, code string, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE code = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, code, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", code, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account code %s", apperrors.ErrNotFound, code)
	}
	return nil
}

// DeleteAccount removes an account row. System accounts are refused upstream.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, code string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM accounts WHERE code = $1;`, code)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", code, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account code %s", apperrors.ErrNotFound, code)
	}
	return nil
}

// FindAccountsByCodesForUpdate loads and row-locks accounts inside tx. Every
// requested code must exist.
func (r *PgxAccountRepository) FindAccountsByCodesForUpdate(ctx context.Context, tx pgx.Tx, codes []string) (map[string]domain.Account, error) {
	if len(codes) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE code = ANY($1) ORDER BY code FOR UPDATE;`
	rows, err := tx.Query(ctx, query, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts: %w", err)
	}
	defer rows.Close()

	locked := make(map[string]domain.Account, len(codes))
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked account row: %w", err)
		}
		locked[m.Code] = toDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading locked account rows: %w", err)
	}

	for _, code := range codes {
		if _, ok := locked[code]; !ok {
			return nil, fmt.Errorf("%w: account code %s", apperrors.ErrNotFound, code)
		}
	}
	return locked, nil
}

// UpdateAccountBalancesInTx applies signed balance deltas inside tx using a
// single batch.
func (r *PgxAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	if len(balanceChanges) == 0 {
		return nil
	}

	query := `
		UPDATE accounts
		SET current_balance = current_balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE code = $1;
	`
	batch := &pgx.Batch{}
	for code, delta := range balanceChanges {
		batch.Queue(query, code, delta, now, userID)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for range balanceChanges {
		tag, err := results.Exec()
		if err != nil {
			return fmt.Errorf("failed to update account balance: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: account missing during balance update", apperrors.ErrNotFound)
		}
	}
	return nil
}
