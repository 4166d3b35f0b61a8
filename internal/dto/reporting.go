package dto

import (
	"github.com/shopspring/decimal"

	"github.com/ukmbooks/ukm_bookkeeping_app/internal/core/domain"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/utils/accounting"
)

// Monetary report outputs are rounded to two decimal places here, at the
// boundary; the services accumulate with full precision.

// TrialBalanceRowResponse is one account row in the trial balance.
type TrialBalanceRowResponse struct {
	AccountCode   string               `json:"accountCode"`
	AccountName   string               `json:"accountName"`
	AccountType   domain.AccountType   `json:"accountType"`
	NormalBalance domain.NormalBalance `json:"normalBalance"`
	TotalDebit    decimal.Decimal      `json:"totalDebit"`
	TotalCredit   decimal.Decimal      `json:"totalCredit"`
	Balance       decimal.Decimal      `json:"balance"`
}

// TrialBalanceResponse is the trial balance report payload.
type TrialBalanceResponse struct {
	AsOfDate     string                    `json:"asOfDate"`
	Accounts     []TrialBalanceRowResponse `json:"accounts"`
	TotalDebits  decimal.Decimal           `json:"totalDebits"`
	TotalCredits decimal.Decimal           `json:"totalCredits"`
	IsBalanced   bool                      `json:"isBalanced"`
}

// ToTrialBalanceResponse converts and rounds a trial balance report.
func ToTrialBalanceResponse(r *domain.TrialBalanceReport) TrialBalanceResponse {
	rows := make([]TrialBalanceRowResponse, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = TrialBalanceRowResponse{
			AccountCode:   row.AccountCode,
			AccountName:   row.AccountName,
			AccountType:   row.AccountType,
			NormalBalance: row.NormalBalance,
			TotalDebit:    accounting.Round2(row.TotalDebit),
			TotalCredit:   accounting.Round2(row.TotalCredit),
			Balance:       accounting.Round2(row.Balance),
		}
	}
	return TrialBalanceResponse{
		AsOfDate:     r.AsOf.Format(DateLayout),
		Accounts:     rows,
		TotalDebits:  accounting.Round2(r.TotalDebits),
		TotalCredits: accounting.Round2(r.TotalCredits),
		IsBalanced:   r.IsBalanced,
	}
}

// AccountAmountResponse is an account with a rounded net amount.
type AccountAmountResponse struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Amount      decimal.Decimal `json:"amount"`
}

func toAccountAmountResponses(in []domain.AccountAmount) []AccountAmountResponse {
	out := make([]AccountAmountResponse, len(in))
	for i, a := range in {
		out[i] = AccountAmountResponse{
			AccountCode: a.AccountCode,
			AccountName: a.AccountName,
			Amount:      accounting.Round2(a.Amount),
		}
	}
	return out
}

// PeriodResponse is an inclusive date range in report payloads.
type PeriodResponse struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

func toPeriodResponse(p domain.ReportPeriod) PeriodResponse {
	return PeriodResponse{
		StartDate: p.StartDate.Format(DateLayout),
		EndDate:   p.EndDate.Format(DateLayout),
	}
}

// IncomeStatementResponse is the income statement report payload.
type IncomeStatementResponse struct {
	Period        PeriodResponse          `json:"period"`
	Revenues      []AccountAmountResponse `json:"revenues"`
	Expenses      []AccountAmountResponse `json:"expenses"`
	TotalRevenue  decimal.Decimal         `json:"totalRevenue"`
	TotalExpenses decimal.Decimal         `json:"totalExpenses"`
	NetIncome     decimal.Decimal         `json:"netIncome"`
}

// ToIncomeStatementResponse converts and rounds an income statement.
func ToIncomeStatementResponse(r *domain.IncomeStatementReport) IncomeStatementResponse {
	return IncomeStatementResponse{
		Period:        toPeriodResponse(r.Period),
		Revenues:      toAccountAmountResponses(r.Revenues),
		Expenses:      toAccountAmountResponses(r.Expenses),
		TotalRevenue:  accounting.Round2(r.TotalRevenue),
		TotalExpenses: accounting.Round2(r.TotalExpenses),
		NetIncome:     accounting.Round2(r.NetIncome),
	}
}

// BalanceSheetResponse is the balance sheet report payload.
type BalanceSheetResponse struct {
	AsOfDate         string                  `json:"asOfDate"`
	Assets           []AccountAmountResponse `json:"assets"`
	Liabilities      []AccountAmountResponse `json:"liabilities"`
	Equity           []AccountAmountResponse `json:"equity"`
	TotalAssets      decimal.Decimal         `json:"totalAssets"`
	TotalLiabilities decimal.Decimal         `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal         `json:"totalEquity"`
	IsBalanced       bool                    `json:"isBalanced"`
}

// ToBalanceSheetResponse converts and rounds a balance sheet.
func ToBalanceSheetResponse(r *domain.BalanceSheetReport) BalanceSheetResponse {
	return BalanceSheetResponse{
		AsOfDate:         r.AsOf.Format(DateLayout),
		Assets:           toAccountAmountResponses(r.Assets),
		Liabilities:      toAccountAmountResponses(r.Liabilities),
		Equity:           toAccountAmountResponses(r.Equity),
		TotalAssets:      accounting.Round2(r.TotalAssets),
		TotalLiabilities: accounting.Round2(r.TotalLiabilities),
		TotalEquity:      accounting.Round2(r.TotalEquity),
		IsBalanced:       r.IsBalanced,
	}
}

// CashMovementResponse is one cash movement in the cash flow statement.
type CashMovementResponse struct {
	Date        string                 `json:"date"`
	ReferenceNo string                 `json:"referenceNo"`
	Description string                 `json:"description"`
	SourceType  domain.TransactionType `json:"sourceType"`
	Amount      decimal.Decimal        `json:"amount"`
}

func toCashMovementResponses(in []domain.CashMovement) []CashMovementResponse {
	out := make([]CashMovementResponse, len(in))
	for i, m := range in {
		out[i] = CashMovementResponse{
			Date:        m.EntryDate.Format(DateLayout),
			ReferenceNo: m.ReferenceNo,
			Description: m.Description,
			SourceType:  m.SourceType,
			Amount:      accounting.Round2(m.Amount),
		}
	}
	return out
}

// CashFlowResponse is the cash flow statement payload.
type CashFlowResponse struct {
	Period            PeriodResponse         `json:"period"`
	Operating         []CashMovementResponse `json:"operating"`
	Investing         []CashMovementResponse `json:"investing"`
	Financing         []CashMovementResponse `json:"financing"`
	OperatingCashFlow decimal.Decimal        `json:"operatingCashFlow"`
	InvestingCashFlow decimal.Decimal        `json:"investingCashFlow"`
	FinancingCashFlow decimal.Decimal        `json:"financingCashFlow"`
	NetCashFlow       decimal.Decimal        `json:"netCashFlow"`
}

// ToCashFlowResponse converts and rounds a cash flow statement.
func ToCashFlowResponse(r *domain.CashFlowReport) CashFlowResponse {
	return CashFlowResponse{
		Period:            toPeriodResponse(r.Period),
		Operating:         toCashMovementResponses(r.Operating),
		Investing:         toCashMovementResponses(r.Investing),
		Financing:         toCashMovementResponses(r.Financing),
		OperatingCashFlow: accounting.Round2(r.OperatingCashFlow),
		InvestingCashFlow: accounting.Round2(r.InvestingCashFlow),
		FinancingCashFlow: accounting.Round2(r.FinancingCashFlow),
		NetCashFlow:       accounting.Round2(r.NetCashFlow),
	}
}
