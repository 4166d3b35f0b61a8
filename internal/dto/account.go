package dto

import (
	"github.com/shopspring/decimal"

	"github.com/ukmbooks/ukm_bookkeeping_app/internal/core/domain"
)

// CreateAccountRequest adds an account to the chart of accounts.
type CreateAccountRequest struct {
	AccountCode string `json:"accountCode" binding:"required,len=4,numeric"`
	Name        string `json:"name" binding:"required"`
	AccountType string `json:"accountType" binding:"required,oneof=asset liability equity revenue expense"`

	// NormalBalance overrides the type's conventional side for contra
	// accounts; left empty it is derived from the type.
	NormalBalance string `json:"normalBalance" binding:"omitempty,oneof=debit credit"`
}

// AccountResponse is an account in API responses.
type AccountResponse struct {
	AccountCode   string               `json:"accountCode"`
	Name          string               `json:"name"`
	AccountType   domain.AccountType   `json:"accountType"`
	NormalBalance domain.NormalBalance `json:"normalBalance"`
	Balance       decimal.Decimal      `json:"balance"`
	IsActive      bool                 `json:"isActive"`
}

// ToAccountResponse converts a domain account to its API shape.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountCode:   a.AccountCode,
		Name:          a.Name,
		AccountType:   a.AccountType,
		NormalBalance: a.NormalBalance,
		Balance:       a.Balance,
		IsActive:      a.IsActive,
	}
}
