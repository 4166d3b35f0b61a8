package dto

import (
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest records a high-level business event. The
// transaction classifier expands it into a balanced journal line set.
type CreateTransactionRequest struct {
	TransactionType string          `json:"transactionType" binding:"required"`
	Date            string          `json:"date" binding:"required,datetime=2006-01-02"`
	Description     string          `json:"description" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required,gt=0"`

	// PaymentMethod selects cash or on-credit settlement where the event
	// supports both (purchases, operating expenses). Defaults to cash.
	PaymentMethod string `json:"paymentMethod" binding:"omitempty,oneof=cash credit"`

	// ExpenseCategory selects the expense account for operating_expense.
	ExpenseCategory string `json:"expenseCategory" binding:"omitempty,oneof=raw_material salary utilities rent depreciation other"`

	// COGSAmount, when set on a sales event, adds a cost-of-goods-sold
	// recognition pair to the entry (four lines in total).
	COGSAmount *decimal.Decimal `json:"cogsAmount,omitempty"`

	// RequiresApproval forces the approval workflow even below the
	// configured threshold.
	RequiresApproval *bool `json:"requiresApproval,omitempty"`
}
