package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ukmbooks/ukm_bookkeeping_app/internal/core/domain"
	portsrepo "github.com/ukmbooks/ukm_bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/ukmbooks/ukm_bookkeeping_app/internal/core/ports/services"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/utils/accounting"
)

// reportingService derives the financial statements from posted journal
// lines. All arithmetic stays in full decimal precision; rounding happens at
// the DTO boundary.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// GetTrialBalance lists every active account's debit/credit totals and
// derived balance as of a date. The debit-balance and credit-balance columns
// must agree within the tolerance for the book to be considered balanced.
func (s *reportingService) GetTrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalanceReport, error) {
	totals, err := s.reportingRepo.GetAccountTotalsAsOf(ctx, asOf, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate account totals for trial balance")
		return nil, fmt.Errorf("failed to build trial balance: %w", err)
	}

	report := &domain.TrialBalanceReport{
		AsOf: asOf,
		Rows: make([]domain.TrialBalanceRow, len(totals)),
	}
	debitBalances := decimal.Zero
	creditBalances := decimal.Zero
	for i, t := range totals {
		balance := accounting.ComputedBalance(t.TotalDebit, t.TotalCredit, t.NormalBalance)
		report.Rows[i] = domain.TrialBalanceRow{
			AccountCode:   t.AccountCode,
			AccountName:   t.AccountName,
			AccountType:   t.AccountType,
			NormalBalance: t.NormalBalance,
			TotalDebit:    t.TotalDebit,
			TotalCredit:   t.TotalCredit,
			Balance:       balance,
		}
		if t.NormalBalance == domain.DebitNormal {
			debitBalances = debitBalances.Add(balance)
		} else {
			creditBalances = creditBalances.Add(balance)
		}
		report.TotalDebits = report.TotalDebits.Add(t.TotalDebit)
		report.TotalCredits = report.TotalCredits.Add(t.TotalCredit)
	}

	report.IsBalanced = debitBalances.Sub(creditBalances).Abs().LessThan(accounting.BalanceTolerance)
	return report, nil
}

// GetIncomeStatement nets revenue and expense activity over a period.
func (s *reportingService) GetIncomeStatement(ctx context.Context, from, to time.Time) (*domain.IncomeStatementReport, error) {
	totals, err := s.reportingRepo.GetAccountTotalsInPeriod(ctx, from, to, []domain.AccountType{domain.Revenue, domain.Expense})
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate account totals for income statement")
		return nil, fmt.Errorf("failed to build income statement: %w", err)
	}

	report := &domain.IncomeStatementReport{
		Period: domain.ReportPeriod{StartDate: from, EndDate: to},
	}
	for _, t := range totals {
		amount := accounting.ComputedBalance(t.TotalDebit, t.TotalCredit, t.NormalBalance)
		row := domain.AccountAmount{
			AccountCode: t.AccountCode,
			AccountName: t.AccountName,
			Amount:      amount,
		}
		switch t.AccountType {
		case domain.Revenue:
			report.Revenues = append(report.Revenues, row)
			report.TotalRevenue = report.TotalRevenue.Add(amount)
		case domain.Expense:
			report.Expenses = append(report.Expenses, row)
			report.TotalExpenses = report.TotalExpenses.Add(amount)
		}
	}
	report.NetIncome = report.TotalRevenue.Sub(report.TotalExpenses)
	return report, nil
}

// GetBalanceSheet states assets, liabilities and equity as of a date.
// Unclosed revenue and expense activity is rolled into the retained earnings
// row, otherwise the accounting equation could not hold between closings.
func (s *reportingService) GetBalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error) {
	totals, err := s.reportingRepo.GetAccountTotalsAsOf(ctx, asOf, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate account totals for balance sheet")
		return nil, fmt.Errorf("failed to build balance sheet: %w", err)
	}

	report := &domain.BalanceSheetReport{AsOf: asOf}
	netIncome := decimal.Zero
	retainedEarningsIdx := -1

	for _, t := range totals {
		amount := accounting.ComputedBalance(t.TotalDebit, t.TotalCredit, t.NormalBalance)
		row := domain.AccountAmount{
			AccountCode: t.AccountCode,
			AccountName: t.AccountName,
			Amount:      amount,
		}
		switch t.AccountType {
		case domain.Asset:
			report.Assets = append(report.Assets, row)
			report.TotalAssets = report.TotalAssets.Add(amount)
		case domain.Liability:
			report.Liabilities = append(report.Liabilities, row)
			report.TotalLiabilities = report.TotalLiabilities.Add(amount)
		case domain.Equity:
			report.Equity = append(report.Equity, row)
			report.TotalEquity = report.TotalEquity.Add(amount)
			if t.AccountCode == domain.CodeRetainedEarnings {
				retainedEarningsIdx = len(report.Equity) - 1
			}
		case domain.Revenue:
			netIncome = netIncome.Add(amount)
		case domain.Expense:
			netIncome = netIncome.Sub(amount)
		}
	}

	if !netIncome.IsZero() {
		if retainedEarningsIdx >= 0 {
			report.Equity[retainedEarningsIdx].Amount = report.Equity[retainedEarningsIdx].Amount.Add(netIncome)
		} else {
			report.Equity = append(report.Equity, domain.AccountAmount{
				AccountCode: domain.CodeRetainedEarnings,
				AccountName: "Retained Earnings",
				Amount:      netIncome,
			})
		}
		report.TotalEquity = report.TotalEquity.Add(netIncome)
	}

	diff := report.TotalAssets.Sub(report.TotalLiabilities.Add(report.TotalEquity))
	report.IsBalanced = diff.Abs().LessThan(accounting.BalanceTolerance)
	return report, nil
}

// GetCashFlow partitions cash-account movements in the period into activity
// buckets keyed on the originating transaction type.
func (s *reportingService) GetCashFlow(ctx context.Context, from, to time.Time) (*domain.CashFlowReport, error) {
	movements, err := s.reportingRepo.GetCashMovements(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch cash movements")
		return nil, fmt.Errorf("failed to build cash flow statement: %w", err)
	}

	report := &domain.CashFlowReport{
		Period: domain.ReportPeriod{StartDate: from, EndDate: to},
	}
	for _, m := range movements {
		switch domain.CashFlowBucketFor(m.SourceType) {
		case domain.BucketInvesting:
			report.Investing = append(report.Investing, m)
			report.InvestingCashFlow = report.InvestingCashFlow.Add(m.Amount)
		case domain.BucketFinancing:
			report.Financing = append(report.Financing, m)
			report.FinancingCashFlow = report.FinancingCashFlow.Add(m.Amount)
		default:
			report.Operating = append(report.Operating, m)
			report.OperatingCashFlow = report.OperatingCashFlow.Add(m.Amount)
		}
	}

	report.NetCashFlow = report.OperatingCashFlow.Add(report.InvestingCashFlow).Add(report.FinancingCashFlow)
	return report, nil
}
