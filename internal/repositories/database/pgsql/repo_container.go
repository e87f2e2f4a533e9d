package pgsql

import (
	portsrepo "github.com/arthaworks/ledgerengine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool, accountRepo)

	return portsrepo.RepositoryProvider{
		AccountRepo: accountRepo,
		LedgerRepo:  ledgerRepo,
	}
}
