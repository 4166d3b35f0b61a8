package services

import (
	"context"

	"github.com/ukmbooks/ukm_bookkeeping_app/internal/core/domain"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/dto"
)

// TransactionSvcFacade turns high-level business events into balanced
// journal entries. Non-accountant users record a sale or an expense; the
// classifier picks the debit and credit accounts.
type TransactionSvcFacade interface {
	// CreateTransaction classifies the event, builds the journal entry and
	// runs it through the normal posting workflow.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.JournalEntry, error)

	// Classify maps a business event to its journal line set without
	// persisting anything. Used for previews and by CreateTransaction.
	Classify(req dto.CreateTransactionRequest) ([]domain.JournalLine, error)
}
