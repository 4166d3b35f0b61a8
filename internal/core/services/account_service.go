package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ukmbooks/ukm_bookkeeping_app/internal/apperrors"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/core/domain"
	portsrepo "github.com/ukmbooks/ukm_bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/ukmbooks/ukm_bookkeeping_app/internal/core/ports/services"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/dto"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/utils/accounting"
)

// accountService manages the chart of accounts.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	journalRepo portsrepo.JournalRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, journalRepo portsrepo.JournalRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		journalRepo: journalRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount persists a new chart-of-accounts entry with a zero balance.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	accountType := domain.AccountType(req.AccountType)

	normal := domain.NormalBalanceFor(accountType)
	if req.NormalBalance != "" {
		normal = domain.NormalBalance(req.NormalBalance)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountCode:   req.AccountCode,
		Name:          req.Name,
		AccountType:   accountType,
		NormalBalance: normal,
		Balance:       decimal.Zero,
		IsActive:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save account", slog.String("account_code", req.AccountCode))
		}
		return nil, fmt.Errorf("failed to save account %s: %w", req.AccountCode, err)
	}

	s.LogInfo(ctx, "Account created", slog.String("account_code", account.AccountCode), slog.String("account_type", string(account.AccountType)))
	return &account, nil
}

// GetAccountByCode retrieves a single account.
func (s *accountService) GetAccountByCode(ctx context.Context, accountCode string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, accountCode)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", slog.String("account_code", accountCode))
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountCode, err)
	}
	return account, nil
}

// ListAccounts retrieves the chart of accounts ordered by code.
func (s *accountService) ListAccounts(ctx context.Context, activeOnly bool) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, activeOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// DeactivateAccount soft-deactivates an account. Posted history referencing
// the account stays intact; only new journal lines are barred.
func (s *accountService) DeactivateAccount(ctx context.Context, accountCode string, requestingUserID string) error {
	if err := s.accountRepo.DeactivateAccount(ctx, accountCode, requestingUserID, time.Now().UTC()); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_code", accountCode))
		}
		return fmt.Errorf("failed to deactivate account %s: %w", accountCode, err)
	}

	s.LogInfo(ctx, "Account deactivated", slog.String("account_code", accountCode))
	return nil
}

// GetGeneralLedger returns the posted movement history of one account with a
// running balance per line.
func (s *accountService) GetGeneralLedger(ctx context.Context, accountCode string, params dto.LedgerParams) (*domain.GeneralLedger, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, accountCode)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountCode, err)
	}

	from, to, err := parseOptionalRange(params.StartDate, params.EndDate)
	if err != nil {
		return nil, err
	}

	lines, err := s.journalRepo.FindLedgerLines(ctx, accountCode, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch ledger lines", slog.String("account_code", accountCode))
		return nil, fmt.Errorf("failed to fetch ledger for account %s: %w", accountCode, err)
	}

	running := decimal.Zero
	for i := range lines {
		running = running.Add(accounting.SignedAmount(lines[i].EntryType, account.NormalBalance, lines[i].Amount))
		lines[i].Balance = running
	}

	return &domain.GeneralLedger{
		Account:      *account,
		Lines:        lines,
		FinalBalance: running,
	}, nil
}

// CalculateAccountBalance reconstructs a balance by replaying every posted
// line referencing the account. Used to audit the stored projection.
func (s *accountService) CalculateAccountBalance(ctx context.Context, accountCode string) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, accountCode)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to find account %s: %w", accountCode, err)
	}

	lines, err := s.accountRepo.FindPostedLinesByAccount(ctx, accountCode)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch posted lines", slog.String("account_code", accountCode))
		return decimal.Zero, fmt.Errorf("failed to fetch posted lines for account %s: %w", accountCode, err)
	}

	balance := decimal.Zero
	for _, line := range lines {
		balance = balance.Add(accounting.SignedAmount(line.EntryType, account.NormalBalance, line.Amount))
	}
	return balance, nil
}

// AggregateBalanceByType sums the balances of active accounts of one type.
func (s *accountService) AggregateBalanceByType(ctx context.Context, accountType domain.AccountType) (decimal.Decimal, error) {
	switch accountType {
	case domain.Asset, domain.Liability, domain.Equity, domain.Revenue, domain.Expense:
	default:
		return decimal.Zero, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, accountType)
	}

	total, err := s.accountRepo.SumBalancesByType(ctx, accountType)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum balances", slog.String("account_type", string(accountType)))
		return decimal.Zero, fmt.Errorf("failed to sum balances for type %s: %w", accountType, err)
	}
	return total, nil
}

// parseOptionalRange parses optional wire-format date bounds.
func parseOptionalRange(start, end *string) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if start != nil {
		t, err := time.Parse(dto.DateLayout, *start)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid start date %q", apperrors.ErrValidation, *start)
		}
		from = &t
	}
	if end != nil {
		t, err := time.Parse(dto.DateLayout, *end)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid end date %q", apperrors.ErrValidation, *end)
		}
		to = &t
	}
	return from, to, nil
}
