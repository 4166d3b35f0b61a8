package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ukmbooks/ukm_bookkeeping_app/internal/apperrors"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/core/domain"
	portssvc "github.com/ukmbooks/ukm_bookkeeping_app/internal/core/ports/services"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/dto"
)

// transactionService is the transaction classifier: it maps high-level
// business events onto balanced journal line sets over the well-known chart
// of accounts, then hands them to the journal engine. Users record "a cash
// sale of 150000"; the classifier decides which accounts move.
type transactionService struct {
	BaseService
	journalSvc portssvc.JournalSvcFacade
}

// NewTransactionService creates a new transaction classifier service.
func NewTransactionService(journalSvc portssvc.JournalSvcFacade) portssvc.TransactionSvcFacade {
	return &transactionService{journalSvc: journalSvc}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func debitLine(accountCode string, amount decimal.Decimal) domain.JournalLine {
	return domain.JournalLine{AccountCode: accountCode, EntryType: domain.Debit, Amount: amount}
}

func creditLine(accountCode string, amount decimal.Decimal) domain.JournalLine {
	return domain.JournalLine{AccountCode: accountCode, EntryType: domain.Credit, Amount: amount}
}

// Classify maps a business event onto its journal line set. The mapping is
// pure: no persistence, no account lookups. The journal engine validates the
// referenced accounts when the entry is created.
func (s *transactionService) Classify(req dto.CreateTransactionRequest) ([]domain.JournalLine, error) {
	amount := req.Amount
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	switch domain.TransactionType(req.TransactionType) {
	case domain.SalesCash:
		return withCOGS([]domain.JournalLine{
			debitLine(domain.CodeCash, amount),
			creditLine(domain.CodeSalesRevenue, amount),
		}, req.COGSAmount)

	case domain.SalesCredit:
		return withCOGS([]domain.JournalLine{
			debitLine(domain.CodeAccountsReceivable, amount),
			creditLine(domain.CodeSalesRevenue, amount),
		}, req.COGSAmount)

	case domain.PurchaseCash:
		return []domain.JournalLine{
			debitLine(domain.CodeInventory, amount),
			creditLine(domain.CodeCash, amount),
		}, nil

	case domain.PurchaseCredit:
		return []domain.JournalLine{
			debitLine(domain.CodeInventory, amount),
			creditLine(domain.CodeAccountsPayable, amount),
		}, nil

	case domain.InventoryUsage:
		return []domain.JournalLine{
			debitLine(domain.CodeCOGS, amount),
			creditLine(domain.CodeInventory, amount),
		}, nil

	case domain.OperatingExpense:
		expenseAccount, err := expenseAccountFor(domain.ExpenseCategory(req.ExpenseCategory))
		if err != nil {
			return nil, err
		}
		counterAccount := domain.CodeCash
		if domain.PaymentMethod(req.PaymentMethod) == domain.PayCredit {
			counterAccount = domain.CodeAccountsPayable
		}
		return []domain.JournalLine{
			debitLine(expenseAccount, amount),
			creditLine(counterAccount, amount),
		}, nil

	case domain.SalaryPayment:
		counterAccount := domain.CodeCash
		if domain.PaymentMethod(req.PaymentMethod) == domain.PayCredit {
			counterAccount = domain.CodeWagesPayable
		}
		return []domain.JournalLine{
			debitLine(domain.CodeSalaryExpense, amount),
			creditLine(counterAccount, amount),
		}, nil

	case domain.OwnerCapital:
		return []domain.JournalLine{
			debitLine(domain.CodeCash, amount),
			creditLine(domain.CodeOwnerCapital, amount),
		}, nil

	case domain.OwnerWithdrawal:
		return []domain.JournalLine{
			debitLine(domain.CodeOwnerCapital, amount),
			creditLine(domain.CodeCash, amount),
		}, nil

	case domain.Depreciation:
		return []domain.JournalLine{
			debitLine(domain.CodeDepreciationExpense, amount),
			creditLine(domain.CodeAccumulatedDepreciation, amount),
		}, nil

	case domain.ARCollection:
		return []domain.JournalLine{
			debitLine(domain.CodeCash, amount),
			creditLine(domain.CodeAccountsReceivable, amount),
		}, nil

	case domain.APPayment:
		return []domain.JournalLine{
			debitLine(domain.CodeAccountsPayable, amount),
			creditLine(domain.CodeCash, amount),
		}, nil

	case domain.ManualJournal:
		return nil, fmt.Errorf("%w: manual journals carry their own lines, use the journal endpoint", apperrors.ErrValidation)

	default:
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownTransactionType, req.TransactionType)
	}
}

// withCOGS appends the cost-of-goods-sold recognition pair to a sales entry
// when the caller supplies a precomputed FIFO cost.
func withCOGS(lines []domain.JournalLine, cogs *decimal.Decimal) ([]domain.JournalLine, error) {
	if cogs == nil {
		return lines, nil
	}
	if cogs.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: COGS amount must be positive", apperrors.ErrValidation)
	}
	return append(lines,
		debitLine(domain.CodeCOGS, *cogs),
		creditLine(domain.CodeInventory, *cogs),
	), nil
}

// expenseAccountFor selects the expense account for an operating expense
// category. An empty category falls through to the catch-all account.
func expenseAccountFor(category domain.ExpenseCategory) (string, error) {
	switch category {
	case domain.ExpenseRawMaterial:
		return domain.CodeRawMaterialExpense, nil
	case domain.ExpenseSalary:
		return domain.CodeSalaryExpense, nil
	case domain.ExpenseUtilities:
		return domain.CodeUtilitiesExpense, nil
	case domain.ExpenseRent:
		return domain.CodeRentExpense, nil
	case domain.ExpenseDepreciation:
		return domain.CodeDepreciationExpense, nil
	case domain.ExpenseOther, "":
		return domain.CodeOtherOperatingExpense, nil
	default:
		return "", fmt.Errorf("%w: unknown expense category %q", apperrors.ErrValidation, category)
	}
}

// CreateTransaction classifies the event and routes the resulting lines
// through the journal engine, which validates, persists and (below the
// approval threshold) posts them.
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.JournalEntry, error) {
	entryDate, err := time.Parse(dto.DateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid transaction date %q", apperrors.ErrValidation, req.Date)
	}

	lines, err := s.Classify(req)
	if err != nil {
		return nil, err
	}

	entry, err := s.journalSvc.CreateEntryFromEvent(ctx, domain.TransactionType(req.TransactionType), entryDate, req.Description, lines, req.RequiresApproval, creatorUserID)
	if err != nil {
		return nil, err
	}
	return entry, nil
}
