package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ukmbooks/ukm_bookkeeping_app/internal/core/domain"
)

// AccountReader defines read operations for chart-of-accounts data.
type AccountReader interface {
	// FindAccountByCode retrieves a single account by its exact code.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByCodes retrieves multiple accounts keyed by code. Codes
	// that do not resolve are simply absent from the map.
	FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error)

	// ListAccounts retrieves the chart of accounts ordered by code.
	ListAccounts(ctx context.Context, activeOnly bool) ([]domain.Account, error)

	// SumBalancesByType sums the balances of active accounts of one type.
	SumBalancesByType(ctx context.Context, accountType domain.AccountType) (decimal.Decimal, error)

	// FindPostedLinesByAccount returns every line of a posted entry that
	// references the account, ordered by entry date. Used to reconstruct a
	// balance by replay for audits.
	FindPostedLinesByAccount(ctx context.Context, code string) ([]domain.JournalLine, error)
}

// AccountWriter defines write operations for chart-of-accounts data.
// Balance updates are deliberately absent: they happen only inside the
// posting transaction owned by the journal repository.
type AccountWriter interface {
	// SaveAccount inserts a new chart-of-accounts entry.
	SaveAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount soft-deactivates an account. Historical journals
	// referencing it must remain resolvable, so rows are never deleted.
	DeactivateAccount(ctx context.Context, code string, updatedBy string, at time.Time) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
