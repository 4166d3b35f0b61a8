package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ukmbooks/ukm_bookkeeping_app/internal/core/domain"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/dto"
)

// AccountReaderSvc defines read operations for the chart of accounts
type AccountReaderSvc interface {
	// GetAccountByCode retrieves a specific account by its account code.
	GetAccountByCode(ctx context.Context, accountCode string) (*domain.Account, error)

	// ListAccounts retrieves the chart of accounts, optionally active only.
	ListAccounts(ctx context.Context, activeOnly bool) ([]domain.Account, error)

	// GetGeneralLedger retrieves the posted movement history of one account
	// with running balances.
	GetGeneralLedger(ctx context.Context, accountCode string, params dto.LedgerParams) (*domain.GeneralLedger, error)

	// CalculateAccountBalance reconstructs an account balance by replaying
	// every posted line. Audit path: the result must match the stored balance.
	CalculateAccountBalance(ctx context.Context, accountCode string) (decimal.Decimal, error)

	// AggregateBalanceByType sums the balances of active accounts of one type.
	AggregateBalanceByType(ctx context.Context, accountType domain.AccountType) (decimal.Decimal, error)
}

// AccountWriterSvc defines write operations for the chart of accounts
type AccountWriterSvc interface {
	// CreateAccount persists a new account with a zero opening balance.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive so new journal lines
	// can no longer reference it. Historical entries are unaffected.
	DeactivateAccount(ctx context.Context, accountCode string, requestingUserID string) error
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
