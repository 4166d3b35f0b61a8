package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountTotals holds the per-account debit/credit aggregates the reporting
// repository produces; the reporting service derives balances from them.
type AccountTotals struct {
	AccountCode   string
	AccountName   string
	AccountType   AccountType
	NormalBalance NormalBalance
	TotalDebit    decimal.Decimal
	TotalCredit   decimal.Decimal
}

// TrialBalanceRow is one account in a trial balance.
type TrialBalanceRow struct {
	AccountCode   string          `json:"accountCode"`
	AccountName   string          `json:"accountName"`
	AccountType   AccountType     `json:"accountType"`
	NormalBalance NormalBalance   `json:"normalBalance"`
	TotalDebit    decimal.Decimal `json:"totalDebit"`
	TotalCredit   decimal.Decimal `json:"totalCredit"`
	Balance       decimal.Decimal `json:"balance"`
}

// TrialBalanceReport lists every active account's balance as of a date.
type TrialBalanceReport struct {
	AsOf         time.Time         `json:"asOf"`
	Rows         []TrialBalanceRow `json:"rows"`
	TotalDebits  decimal.Decimal   `json:"totalDebits"`
	TotalCredits decimal.Decimal   `json:"totalCredits"`
	IsBalanced   bool              `json:"isBalanced"`
}

// AccountAmount is a single account with a net amount, used by the income
// statement and balance sheet.
type AccountAmount struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Amount      decimal.Decimal `json:"amount"`
}

// ReportPeriod is an inclusive date range.
type ReportPeriod struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// IncomeStatementReport summarises revenue and expenses over a period.
type IncomeStatementReport struct {
	Period        ReportPeriod    `json:"period"`
	Revenues      []AccountAmount `json:"revenues"`
	Expenses      []AccountAmount `json:"expenses"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetIncome     decimal.Decimal `json:"netIncome"`
}

// BalanceSheetReport states assets, liabilities and equity as of a date.
// IsBalanced checks the accounting equation within the 0.01 tolerance.
type BalanceSheetReport struct {
	AsOf             time.Time       `json:"asOf"`
	Assets           []AccountAmount `json:"assets"`
	Liabilities      []AccountAmount `json:"liabilities"`
	Equity           []AccountAmount `json:"equity"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
	IsBalanced       bool            `json:"isBalanced"`
}

// CashMovement is one cash-account journal line with its originating
// transaction type, used to build the cash flow statement.
type CashMovement struct {
	EntryDate   time.Time       `json:"entryDate"`
	ReferenceNo string          `json:"referenceNo"`
	Description string          `json:"description"`
	SourceType  TransactionType `json:"sourceType"`
	EntryType   EntryType       `json:"entryType"`
	Amount      decimal.Decimal `json:"amount"` // Signed: debit positive, credit negative
}

// CashFlowReport partitions cash movements into activity buckets.
type CashFlowReport struct {
	Period            ReportPeriod    `json:"period"`
	Operating         []CashMovement  `json:"operating"`
	Investing         []CashMovement  `json:"investing"`
	Financing         []CashMovement  `json:"financing"`
	OperatingCashFlow decimal.Decimal `json:"operatingCashFlow"`
	InvestingCashFlow decimal.Decimal `json:"investingCashFlow"`
	FinancingCashFlow decimal.Decimal `json:"financingCashFlow"`
	NetCashFlow       decimal.Decimal `json:"netCashFlow"`
}
