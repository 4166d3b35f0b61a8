package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/ukmbooks/ukm_bookkeeping_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every Postgres-backed repository onto one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:   NewAccountRepository(pool),
		JournalRepo:   NewJournalRepository(pool),
		ReportingRepo: NewReportingRepository(pool),
		UserRepo:      NewUserRepository(pool),
		InventoryRepo: NewInventoryRepository(pool),
	}
}
