package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "asset"
	Liability AccountType = "liability"
	Equity    AccountType = "equity"
	Revenue   AccountType = "revenue"
	Expense   AccountType = "expense"
)

// NormalBalance is the side on which an account type naturally increases.
type NormalBalance string

const (
	DebitNormal  NormalBalance = "debit"
	CreditNormal NormalBalance = "credit"
)

// NormalBalanceFor returns the conventional normal balance side for an
// account type. Contra accounts (e.g. accumulated depreciation, owner
// drawings) override this on the account row itself.
func NormalBalanceFor(t AccountType) NormalBalance {
	switch t {
	case Asset, Expense:
		return DebitNormal
	default:
		return CreditNormal
	}
}

// Account represents a chart-of-accounts entry with its running balance.
// The balance is a projection of all posted journal lines referencing the
// account and is only ever mutated inside a posting transaction.
type Account struct {
	AccountCode   string          `json:"accountCode"` // Fixed-width code, e.g. "1000"
	Name          string          `json:"name"`
	AccountType   AccountType     `json:"accountType"`
	NormalBalance NormalBalance   `json:"normalBalance"`
	Balance       decimal.Decimal `json:"balance"`
	IsActive      bool            `json:"isActive"` // Soft-deactivated, never hard-deleted
	AuditFields
}

// Well-known account codes used by the transaction classifier.
const (
	CodeCash                    = "1000"
	CodeBank                    = "1100"
	CodeInventory               = "1200"
	CodeAccountsReceivable      = "1300"
	CodePrepaidExpense          = "1400"
	CodeEquipment               = "1500"
	CodeAccumulatedDepreciation = "1510"
	CodeAccountsPayable         = "2000"
	CodeWagesPayable            = "2100"
	CodeUtilitiesPayable        = "2200"
	CodeOwnerCapital            = "3000"
	CodeOwnerDrawings           = "3100"
	CodeRetainedEarnings        = "3200"
	CodeSalesRevenue            = "4000"
	CodeCOGS                    = "5000"
	CodeRawMaterialExpense      = "5100"
	CodeSalaryExpense           = "5200"
	CodeUtilitiesExpense        = "5300"
	CodeRentExpense             = "5400"
	CodeDepreciationExpense     = "5500"
	CodeOtherOperatingExpense   = "5600"
)
