package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ukmbooks/ukm_bookkeeping_app/internal/apperrors"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/core/domain"
	portsrepo "github.com/ukmbooks/ukm_bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/ukmbooks/ukm_bookkeeping_app/internal/core/ports/services"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/dto"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/utils/accounting"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/utils/pagination"
)

// journalService implements the journal engine and the posting workflow.
// Every balance mutation in the system funnels through postEntry, whether the
// entry skipped approval or went through it.
type journalService struct {
	BaseService
	journalRepo       portsrepo.JournalRepositoryFacade
	accountRepo       portsrepo.AccountRepositoryFacade
	approvalThreshold decimal.Decimal
}

// NewJournalService creates a new journal service. Entries whose debit total
// reaches approvalThreshold require approval before posting.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade, approvalThreshold decimal.Decimal) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo:       journalRepo,
		accountRepo:       accountRepo,
		approvalThreshold: approvalThreshold,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateEntry validates and persists a manual journal entry, then posts it in
// the same call when no approval is required.
func (s *journalService) CreateEntry(ctx context.Context, req dto.CreateJournalRequest, creatorUserID string) (*domain.JournalEntry, error) {
	entryDate, err := time.Parse(dto.DateLayout, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid entry date %q", apperrors.ErrValidation, req.Date)
	}
	if req.Description == "" {
		return nil, fmt.Errorf("%w: description is required", apperrors.ErrValidation)
	}

	lines := make([]domain.JournalLine, len(req.Lines))
	for i, lineReq := range req.Lines {
		lines[i] = domain.JournalLine{
			AccountCode: lineReq.AccountCode,
			EntryType:   domain.EntryType(lineReq.EntryType),
			Amount:      lineReq.Amount,
		}
	}

	return s.createEntry(ctx, entryDate, req.Description, domain.ManualJournal, lines, req.RequiresApproval, creatorUserID)
}

// CreateEntryFromEvent persists a classifier-produced entry. Shares the full
// validation and posting path with manual journal creation.
func (s *journalService) CreateEntryFromEvent(ctx context.Context, sourceType domain.TransactionType, entryDate time.Time, description string, lines []domain.JournalLine, requiresApproval *bool, creatorUserID string) (*domain.JournalEntry, error) {
	if description == "" {
		return nil, fmt.Errorf("%w: description is required", apperrors.ErrValidation)
	}
	return s.createEntry(ctx, entryDate, description, sourceType, lines, requiresApproval, creatorUserID)
}

// createEntry is the shared persistence path for manual journals and
// classified business events. It assigns IDs and audit fields to the lines.
func (s *journalService) createEntry(ctx context.Context, entryDate time.Time, description string, sourceType domain.TransactionType, lines []domain.JournalLine, requiresApprovalFlag *bool, creatorUserID string) (*domain.JournalEntry, error) {
	if err := accounting.ValidateLines(lines); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()
	for i := range lines {
		lines[i].LineID = uuid.NewString()
		lines[i].EntryID = entryID
		lines[i].AuditFields = domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		}
	}

	accounts, err := s.resolveActiveAccounts(ctx, lines)
	if err != nil {
		return nil, err
	}

	total := accounting.DebitTotal(lines)
	requiresApproval := total.GreaterThanOrEqual(s.approvalThreshold)
	if requiresApprovalFlag != nil && *requiresApprovalFlag {
		requiresApproval = true
	}

	referenceNo, err := s.allocateReference(ctx, sourceType, entryDate)
	if err != nil {
		return nil, err
	}

	entry := domain.JournalEntry{
		EntryID:          entryID,
		ReferenceNo:      referenceNo,
		SourceType:       sourceType,
		EntryDate:        entryDate,
		Description:      description,
		Status:           domain.StatusPending,
		TotalAmount:      total,
		RequiresApproval: requiresApproval,
		Lines:            lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.journalRepo.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save journal entry", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	s.LogInfo(ctx, "Journal entry created",
		slog.String("entry_id", entryID),
		slog.String("reference_no", referenceNo),
		slog.String("source_type", string(sourceType)),
		slog.Bool("requires_approval", requiresApproval))

	if !requiresApproval {
		if err := s.applyPosting(ctx, &entry, accounts, []domain.EntryStatus{domain.StatusPending}, creatorUserID); err != nil {
			// The entry stays pending and recoverable via the workflow.
			s.LogError(ctx, err, "Immediate posting failed, entry left pending", slog.String("entry_id", entryID))
			return nil, fmt.Errorf("failed to post journal entry %s: %w", entryID, err)
		}
	}

	return &entry, nil
}

// resolveActiveAccounts fetches the accounts referenced by lines and rejects
// unknown or deactivated ones.
func (s *journalService) resolveActiveAccounts(ctx context.Context, lines []domain.JournalLine) (map[string]domain.Account, error) {
	codes := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.AccountCode]; ok {
			continue
		}
		seen[line.AccountCode] = struct{}{}
		codes = append(codes, line.AccountCode)
	}

	accounts, err := s.accountRepo.FindAccountsByCodes(ctx, codes)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts for journal lines")
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	for _, code := range codes {
		account, ok := accounts[code]
		if !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, code)
		}
		if !account.IsActive {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrAccountInactive, code)
		}
	}
	return accounts, nil
}

// allocateReference hands out the next reference number for the entry. Manual
// journals share one global sequence; classified events get a per-type,
// per-year sequence.
func (s *journalService) allocateReference(ctx context.Context, sourceType domain.TransactionType, entryDate time.Time) (string, error) {
	if sourceType == domain.ManualJournal {
		seq, err := s.journalRepo.NextSequence(ctx, accounting.JournalSequenceScope)
		if err != nil {
			return "", fmt.Errorf("failed to allocate journal sequence: %w", err)
		}
		return accounting.FormatJournalReference(seq), nil
	}

	seq, err := s.journalRepo.NextSequence(ctx, accounting.EventSequenceScope(sourceType, entryDate))
	if err != nil {
		return "", fmt.Errorf("failed to allocate %s sequence: %w", sourceType, err)
	}
	return accounting.FormatEventReference(sourceType, entryDate, seq), nil
}

// applyPosting computes the signed balance deltas and runs the guarded
// posting transaction. On success the in-memory entry reflects posted status.
func (s *journalService) applyPosting(ctx context.Context, entry *domain.JournalEntry, accounts map[string]domain.Account, allowedFrom []domain.EntryStatus, userID string) error {
	changes, err := accounting.BalanceChanges(entry.Lines, accounts)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := s.journalRepo.PostEntry(ctx, entry.EntryID, allowedFrom, changes, userID, now); err != nil {
		return err
	}

	entry.Status = domain.StatusPosted
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	s.LogInfo(ctx, "Journal entry posted", slog.String("entry_id", entry.EntryID), slog.String("reference_no", entry.ReferenceNo))
	return nil
}

// GetEntryByID retrieves a journal entry with its lines.
func (s *journalService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry", slog.String("entry_id", entryID))
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch journal lines", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to fetch lines for entry %s: %w", entryID, err)
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries retrieves a filtered, paginated listing of journal entries.
func (s *journalService) ListEntries(ctx context.Context, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	page, limit := pagination.Normalize(params.Page, params.Limit)

	filter := domain.EntryFilter{
		AccountCode: params.AccountCode,
		Page:        page,
		Limit:       limit,
	}
	if params.Status != nil {
		status := domain.EntryStatus(*params.Status)
		filter.Status = &status
	}
	from, to, err := parseOptionalRange(params.StartDate, params.EndDate)
	if err != nil {
		return nil, err
	}
	filter.DateFrom = from
	filter.DateTo = to

	entries, total, err := s.journalRepo.ListEntries(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries")
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}

	resp := &dto.ListJournalsResponse{
		Entries: make([]dto.JournalEntryResponse, len(entries)),
		Page:    page,
		Limit:   limit,
		Total:   total,
	}
	for i := range entries {
		resp.Entries[i] = dto.ToJournalEntryResponse(&entries[i])
	}
	return resp, nil
}

// DeleteEntry removes an entry that has not been posted yet.
func (s *journalService) DeleteEntry(ctx context.Context, entryID string, requestingUserID string) error {
	if err := s.journalRepo.DeleteEntry(ctx, entryID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrAlreadyPosted) {
			s.LogError(ctx, err, "Failed to delete journal entry", slog.String("entry_id", entryID))
		}
		return fmt.Errorf("failed to delete journal entry %s: %w", entryID, err)
	}

	s.LogInfo(ctx, "Journal entry deleted", slog.String("entry_id", entryID), slog.String("deleted_by", requestingUserID))
	return nil
}

// ApproveEntry flips a pending entry to approved and immediately posts it.
// The status-guarded update serializes concurrent approvals: one caller wins,
// the rest see ErrInvalidStateTransition.
func (s *journalService) ApproveEntry(ctx context.Context, entryID string, approverUserID string) (*domain.JournalEntry, error) {
	entry, err := s.GetEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status == domain.StatusPosted {
		return nil, fmt.Errorf("cannot approve entry %s: %w", entryID, apperrors.ErrAlreadyPosted)
	}
	if entry.CreatedBy == approverUserID {
		return nil, fmt.Errorf("%w: an entry cannot be approved by its creator", apperrors.ErrForbidden)
	}

	now := time.Now().UTC()
	if err := s.journalRepo.MarkApproval(ctx, entryID, domain.StatusApproved, approverUserID, now); err != nil {
		if !errors.Is(err, apperrors.ErrInvalidStateTransition) {
			s.LogError(ctx, err, "Failed to approve journal entry", slog.String("entry_id", entryID))
		}
		return nil, fmt.Errorf("failed to approve journal entry %s: %w", entryID, err)
	}
	entry.Status = domain.StatusApproved
	entry.ApprovedBy = &approverUserID
	entry.ApprovedAt = &now

	accounts, err := s.resolveActiveAccounts(ctx, entry.Lines)
	if err != nil {
		return nil, err
	}
	if err := s.applyPosting(ctx, entry, accounts, []domain.EntryStatus{domain.StatusApproved}, approverUserID); err != nil {
		// Approved but not posted; PostEntry can be retried.
		s.LogError(ctx, err, "Posting after approval failed", slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to post approved entry %s: %w", entryID, err)
	}
	return entry, nil
}

// RejectEntry flips a pending entry to rejected. Rejection is terminal and
// never touches account balances.
func (s *journalService) RejectEntry(ctx context.Context, entryID string, approverUserID string) (*domain.JournalEntry, error) {
	entry, err := s.GetEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Status == domain.StatusPosted {
		return nil, fmt.Errorf("cannot reject entry %s: %w", entryID, apperrors.ErrAlreadyPosted)
	}

	now := time.Now().UTC()
	if err := s.journalRepo.MarkApproval(ctx, entryID, domain.StatusRejected, approverUserID, now); err != nil {
		if !errors.Is(err, apperrors.ErrInvalidStateTransition) {
			s.LogError(ctx, err, "Failed to reject journal entry", slog.String("entry_id", entryID))
		}
		return nil, fmt.Errorf("failed to reject journal entry %s: %w", entryID, err)
	}
	entry.Status = domain.StatusRejected
	entry.ApprovedBy = &approverUserID
	entry.ApprovedAt = &now

	s.LogInfo(ctx, "Journal entry rejected", slog.String("entry_id", entryID), slog.String("rejected_by", approverUserID))
	return entry, nil
}

// PostEntry applies an approved entry to account balances. Also recovers
// entries that were approved but whose posting transaction failed.
func (s *journalService) PostEntry(ctx context.Context, entryID string, requestingUserID string) (*domain.JournalEntry, error) {
	entry, err := s.GetEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	switch entry.Status {
	case domain.StatusPosted:
		return nil, fmt.Errorf("cannot post entry %s: %w", entryID, apperrors.ErrAlreadyPosted)
	case domain.StatusRejected:
		return nil, fmt.Errorf("cannot post rejected entry %s: %w", entryID, apperrors.ErrInvalidStateTransition)
	case domain.StatusPending:
		if entry.RequiresApproval {
			return nil, fmt.Errorf("entry %s requires approval before posting: %w", entryID, apperrors.ErrInvalidStateTransition)
		}
	}

	accounts, err := s.resolveActiveAccounts(ctx, entry.Lines)
	if err != nil {
		return nil, err
	}
	allowedFrom := []domain.EntryStatus{domain.StatusApproved, domain.StatusPending}
	if err := s.applyPosting(ctx, entry, accounts, allowedFrom, requestingUserID); err != nil {
		return nil, fmt.Errorf("failed to post journal entry %s: %w", entryID, err)
	}
	return entry, nil
}
