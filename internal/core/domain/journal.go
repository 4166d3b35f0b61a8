package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates where a journal entry sits in the posting workflow.
type EntryStatus string

const (
	StatusPending  EntryStatus = "pending"
	StatusApproved EntryStatus = "approved"
	StatusRejected EntryStatus = "rejected"
	StatusPosted   EntryStatus = "posted"
)

// EntryType indicates whether a journal line is a debit or a credit.
type EntryType string

const (
	Debit  EntryType = "debit"
	Credit EntryType = "credit"
)

// JournalEntry represents a single, balanced financial event composed of
// multiple journal lines. It is the atomic unit of bookkeeping truth: the
// entry and its lines are always persisted together.
type JournalEntry struct {
	EntryID          string          `json:"entryID"`     // Primary key (UUID)
	ReferenceNo      string          `json:"referenceNo"` // e.g. "JE-000001" or "SAL-2024-0001"
	SourceType       TransactionType `json:"sourceType"`  // Business event that produced the entry
	EntryDate        time.Time       `json:"entryDate"`
	Description      string          `json:"description"`
	Status           EntryStatus     `json:"status"`
	TotalAmount      decimal.Decimal `json:"totalAmount"` // Debit-side sum of the entry
	RequiresApproval bool            `json:"requiresApproval"`
	ApprovedBy       *string         `json:"approvedBy,omitempty"`
	ApprovedAt       *time.Time      `json:"approvedAt,omitempty"`
	Lines            []JournalLine   `json:"lines,omitempty"` // Often loaded separately
	AuditFields
}

// JournalLine is a single debit or credit within a journal entry, affecting
// one account. It references the account by code; it never owns the account.
type JournalLine struct {
	LineID      string          `json:"lineID"`  // Primary key (UUID)
	EntryID     string          `json:"entryID"` // FK -> JournalEntry.entryID
	AccountCode string          `json:"accountCode"`
	EntryType   EntryType       `json:"entryType"`
	Amount      decimal.Decimal `json:"amount"` // Always positive
	AuditFields
}

// EntryFilter narrows a journal entry listing.
type EntryFilter struct {
	Status      *EntryStatus
	AccountCode *string // Line-level join
	DateFrom    *time.Time
	DateTo      *time.Time
	Page        int
	Limit       int
}

// LedgerLine is a journal line joined with its entry context and a running
// balance, as shown in a general ledger view for a single account.
type LedgerLine struct {
	EntryID     string          `json:"entryID"`
	ReferenceNo string          `json:"referenceNo"`
	EntryDate   time.Time       `json:"entryDate"`
	Description string          `json:"description"`
	EntryType   EntryType       `json:"entryType"`
	Amount      decimal.Decimal `json:"amount"`
	Balance     decimal.Decimal `json:"balance"`
}

// GeneralLedger is the full movement history of one account.
type GeneralLedger struct {
	Account      Account         `json:"account"`
	Lines        []LedgerLine    `json:"lines"`
	FinalBalance decimal.Decimal `json:"finalBalance"`
}
