package services

import (
	"context"
	"time"

	"github.com/ukmbooks/ukm_bookkeeping_app/internal/core/domain"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/dto"
)

// JournalReaderSvc defines read operations for journal entries
type JournalReaderSvc interface {
	// GetEntryByID retrieves a journal entry with its lines.
	GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a paginated, filtered list of journal entries.
	ListEntries(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error)
}

// JournalWriterSvc defines write operations for journal entries
type JournalWriterSvc interface {
	// CreateEntry validates and persists a manual journal entry. Entries
	// below the approval threshold are posted in the same call.
	CreateEntry(ctx context.Context, req dto.CreateJournalRequest, creatorUserID string) (*domain.JournalEntry, error)

	// CreateEntryFromEvent persists an entry produced by the transaction
	// classifier, tagged with its source event type and given a type-scoped
	// reference number. Same validation and posting path as CreateEntry.
	CreateEntryFromEvent(ctx context.Context, sourceType domain.TransactionType, entryDate time.Time, description string, lines []domain.JournalLine, requiresApproval *bool, creatorUserID string) (*domain.JournalEntry, error)

	// DeleteEntry removes an entry that has not yet been posted.
	DeleteEntry(ctx context.Context, entryID string, requestingUserID string) error
}

// PostingWorkflowSvc drives pending entries through approval to posting
type PostingWorkflowSvc interface {
	// ApproveEntry moves a pending entry to approved and then posts it.
	ApproveEntry(ctx context.Context, entryID string, approverUserID string) (*domain.JournalEntry, error)

	// RejectEntry moves a pending entry to rejected. Rejected entries never
	// touch account balances.
	RejectEntry(ctx context.Context, entryID string, approverUserID string) (*domain.JournalEntry, error)

	// PostEntry applies an approved entry's lines to account balances.
	PostEntry(ctx context.Context, entryID string, requestingUserID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
	PostingWorkflowSvc
}
