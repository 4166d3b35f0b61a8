package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry in the posting workflow.
type EntryStatus string

const (
	Pending  EntryStatus = "pending"
	Approved EntryStatus = "approved"
	Rejected EntryStatus = "rejected"
	Posted   EntryStatus = "posted"
)

// JournalEntry represents a single, balanced financial event composed of
// multiple journal lines.
type JournalEntry struct {
	EntryID          string          `db:"entry_id"`
	ReferenceNo      string          `db:"reference_no"`
	SourceType       string          `db:"source_type"`
	EntryDate        time.Time       `db:"entry_date"`
	Description      string          `db:"description"`
	Status           EntryStatus     `db:"status"`
	TotalAmount      decimal.Decimal `db:"total_amount"`
	RequiresApproval bool            `db:"requires_approval"`
	ApprovedBy       *string         `db:"approved_by"` // Nullable
	ApprovedAt       *time.Time      `db:"approved_at"` // Nullable
	AuditFields
}

// JournalLine is a single debit or credit within a journal entry.
type JournalLine struct {
	LineID      string          `db:"line_id"`
	EntryID     string          `db:"entry_id"`
	AccountCode string          `db:"account_code"`
	EntryType   string          `db:"entry_type"`
	Amount      decimal.Decimal `db:"amount"`
	AuditFields
}
