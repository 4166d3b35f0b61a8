package repositories

import (
	"context"
	"time"

	"github.com/ukmbooks/ukm_bookkeeping_app/internal/core/domain"
)

// ReportingRepository aggregates posted journal lines for the derived
// reports. All queries are read-only and run at the store's default
// isolation; a report may trail an in-flight posting, which is acceptable.
type ReportingRepository interface {
	// GetAccountTotalsAsOf returns per-account debit/credit totals over all
	// posted lines dated on or before asOf. When types is empty every active
	// account is included, with zero totals for accounts without activity.
	GetAccountTotalsAsOf(ctx context.Context, asOf time.Time, types []domain.AccountType) ([]domain.AccountTotals, error)

	// GetAccountTotalsInPeriod is the same aggregation restricted to lines
	// dated within [from, to].
	GetAccountTotalsInPeriod(ctx context.Context, from, to time.Time, types []domain.AccountType) ([]domain.AccountTotals, error)

	// GetCashMovements returns the posted cash-account lines within
	// [from, to] with their originating transaction type, signed so that
	// debits (cash in) are positive.
	GetCashMovements(ctx context.Context, from, to time.Time) ([]domain.CashMovement, error)
}
