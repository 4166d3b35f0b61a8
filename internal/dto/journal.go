package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ukmbooks/ukm_bookkeeping_app/internal/core/domain"
)

// DateLayout is the wire format for business dates (no time component).
const DateLayout = "2006-01-02"

// JournalLineRequest is a single debit or credit line in a create request.
type JournalLineRequest struct {
	AccountCode string          `json:"accountCode" binding:"required"`
	EntryType   string          `json:"entryType" binding:"required,oneof=debit credit"`
	Amount      decimal.Decimal `json:"amount" binding:"required,gt=0"`
}

// CreateJournalRequest creates a manual journal entry.
type CreateJournalRequest struct {
	Date             string               `json:"date" binding:"required,datetime=2006-01-02"`
	Description      string               `json:"description" binding:"required"`
	Lines            []JournalLineRequest `json:"lines" binding:"required,min=2,dive"`
	RequiresApproval *bool                `json:"requiresApproval,omitempty"`
}

// ListJournalsParams narrows and paginates a journal entry listing.
type ListJournalsParams struct {
	Status      *string `form:"status" binding:"omitempty,oneof=pending approved rejected posted"`
	AccountCode *string `form:"accountCode"`
	StartDate   *string `form:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate     *string `form:"endDate" binding:"omitempty,datetime=2006-01-02"`
	Page        int     `form:"page"`
	Limit       int     `form:"limit"`
}

// JournalLineResponse is a line in API responses.
type JournalLineResponse struct {
	LineID      string           `json:"lineID"`
	AccountCode string           `json:"accountCode"`
	EntryType   domain.EntryType `json:"entryType"`
	Amount      decimal.Decimal  `json:"amount"`
}

// JournalEntryResponse is a journal entry in API responses.
type JournalEntryResponse struct {
	EntryID          string                 `json:"entryID"`
	ReferenceNo      string                 `json:"referenceNo"`
	SourceType       domain.TransactionType `json:"sourceType"`
	Date             string                 `json:"date"`
	Description      string                 `json:"description"`
	Status           domain.EntryStatus     `json:"status"`
	TotalAmount      decimal.Decimal        `json:"totalAmount"`
	RequiresApproval bool                   `json:"requiresApproval"`
	CreatedBy        string                 `json:"createdBy"`
	ApprovedBy       *string                `json:"approvedBy,omitempty"`
	ApprovedAt       *time.Time             `json:"approvedAt,omitempty"`
	CreatedAt        time.Time              `json:"createdAt"`
	Lines            []JournalLineResponse  `json:"lines,omitempty"`
}

// ListJournalsResponse is one page of journal entries.
type ListJournalsResponse struct {
	Entries []JournalEntryResponse `json:"entries"`
	Page    int                    `json:"page"`
	Limit   int                    `json:"limit"`
	Total   int64                  `json:"total"`
}

// ToJournalEntryResponse converts a domain entry to its API shape.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		EntryID:          e.EntryID,
		ReferenceNo:      e.ReferenceNo,
		SourceType:       e.SourceType,
		Date:             e.EntryDate.Format(DateLayout),
		Description:      e.Description,
		Status:           e.Status,
		TotalAmount:      e.TotalAmount,
		RequiresApproval: e.RequiresApproval,
		CreatedBy:        e.CreatedBy,
		ApprovedBy:       e.ApprovedBy,
		ApprovedAt:       e.ApprovedAt,
		CreatedAt:        e.CreatedAt,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]JournalLineResponse, len(e.Lines))
		for i, line := range e.Lines {
			resp.Lines[i] = JournalLineResponse{
				LineID:      line.LineID,
				AccountCode: line.AccountCode,
				EntryType:   line.EntryType,
				Amount:      line.Amount,
			}
		}
	}
	return resp
}
