package services

import (
	"context"
	"time"

	"github.com/ukmbooks/ukm_bookkeeping_app/internal/core/domain"
)

// ReportingSvcFacade builds financial statements from posted entries only.
// Pending, approved and rejected entries never appear in reports.
type ReportingSvcFacade interface {
	// GetTrialBalance lists every active account's debit/credit totals and
	// balance as of a date, with an overall balance check.
	GetTrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalanceReport, error)

	// GetIncomeStatement summarises revenue and expenses over a period.
	GetIncomeStatement(ctx context.Context, from, to time.Time) (*domain.IncomeStatementReport, error)

	// GetBalanceSheet states assets, liabilities and equity as of a date and
	// verifies the accounting equation.
	GetBalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error)

	// GetCashFlow partitions cash movements over a period into operating,
	// investing and financing activities.
	GetCashFlow(ctx context.Context, from, to time.Time) (*domain.CashFlowReport, error)
}
