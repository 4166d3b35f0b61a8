package models

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

// Account represents a chart-of-accounts row. The code is the natural key;
// there is no surrogate ID.
type Account struct {
	AccountCode   string          `db:"account_code"`
	Name          string          `db:"name"`
	AccountType   AccountType     `db:"account_type"`
	NormalBalance string          `db:"normal_balance"`
	Balance       decimal.Decimal `db:"balance"` // Projection of posted lines
	IsActive      bool            `db:"is_active"`
	AuditFields
}
