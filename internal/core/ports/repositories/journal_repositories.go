package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ukmbooks/ukm_bookkeeping_app/internal/core/domain"
)

// JournalReader defines read operations for journal entries and lines.
type JournalReader interface {
	// FindEntryByID retrieves a journal entry header by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves the lines of one entry in insertion order.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// ListEntries retrieves a filtered, paginated entry listing plus the
	// total match count.
	ListEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.JournalEntry, int64, error)

	// FindLedgerLines retrieves the posted lines referencing one account,
	// joined with entry context, ordered by entry date then insertion order.
	// The running balance field is left zero for the caller to fill.
	FindLedgerLines(ctx context.Context, accountCode string, from, to *time.Time) ([]domain.LedgerLine, error)
}

// JournalWriter defines write operations for journal entries.
type JournalWriter interface {
	// SaveEntry persists an entry and all of its lines as one atomic unit.
	// A partially written entry is never observable.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error

	// DeleteEntry removes an entry and its lines, but only while the entry
	// has not been posted. Returns ErrAlreadyPosted otherwise.
	DeleteEntry(ctx context.Context, entryID string) error
}

// PostingWriter defines the status-guarded workflow transitions. Each method
// conditions its update on the current status so that concurrent callers are
// serialized by the store: exactly one wins, the rest observe
// ErrInvalidStateTransition or ErrAlreadyPosted.
type PostingWriter interface {
	// MarkApproval flips a pending entry to approved or rejected, recording
	// the approver. Fails unless the entry is currently pending.
	MarkApproval(ctx context.Context, entryID string, status domain.EntryStatus, approverID string, at time.Time) error

	// PostEntry transitions an entry to posted and applies the signed
	// balance deltas to the referenced accounts, all inside one store
	// transaction. The transition only succeeds if the current status is in
	// allowedFrom.
	PostEntry(ctx context.Context, entryID string, allowedFrom []domain.EntryStatus, balanceChanges map[string]decimal.Decimal, updatedBy string, at time.Time) error
}

// SequenceAllocator hands out monotonically increasing reference sequence
// numbers per scope, atomically, so concurrent creates never collide.
type SequenceAllocator interface {
	NextSequence(ctx context.Context, scope string) (int64, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
	PostingWriter
	SequenceAllocator
}
