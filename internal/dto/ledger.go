package dto

import (
	"github.com/shopspring/decimal"

	"github.com/ukmbooks/ukm_bookkeeping_app/internal/core/domain"
)

// LedgerParams scopes a general ledger view to one account and period.
type LedgerParams struct {
	StartDate *string `form:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate   *string `form:"endDate" binding:"omitempty,datetime=2006-01-02"`
}

// LedgerLineResponse is one posted movement with a running balance.
type LedgerLineResponse struct {
	ReferenceNo string           `json:"referenceNo"`
	Date        string           `json:"date"`
	Description string           `json:"description"`
	EntryType   domain.EntryType `json:"entryType"`
	Amount      decimal.Decimal  `json:"amount"`
	Balance     decimal.Decimal  `json:"balance"`
}

// GeneralLedgerResponse is the movement history of one account.
type GeneralLedgerResponse struct {
	Account      AccountResponse      `json:"account"`
	Lines        []LedgerLineResponse `json:"lines"`
	FinalBalance decimal.Decimal      `json:"finalBalance"`
}

// ToGeneralLedgerResponse converts a domain ledger to its API shape.
func ToGeneralLedgerResponse(l *domain.GeneralLedger) GeneralLedgerResponse {
	lines := make([]LedgerLineResponse, len(l.Lines))
	for i, line := range l.Lines {
		lines[i] = LedgerLineResponse{
			ReferenceNo: line.ReferenceNo,
			Date:        line.EntryDate.Format(DateLayout),
			Description: line.Description,
			EntryType:   line.EntryType,
			Amount:      line.Amount,
			Balance:     line.Balance,
		}
	}
	return GeneralLedgerResponse{
		Account:      ToAccountResponse(&l.Account),
		Lines:        lines,
		FinalBalance: l.FinalBalance,
	}
}
