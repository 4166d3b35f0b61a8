package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ukmbooks/ukm_bookkeeping_app/internal/apperrors"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/core/domain"
	portsrepo "github.com/ukmbooks/ukm_bookkeeping_app/internal/core/ports/repositories"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/models"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/utils/mapping"
	"github.com/ukmbooks/ukm_bookkeeping_app/internal/utils/pagination"
)

type journalRepository struct {
	pool *pgxpool.Pool
}

// NewJournalRepository creates a new repository for journal entry and line data.
func NewJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &journalRepository{pool: pool}
}

var _ portsrepo.JournalRepositoryFacade = (*journalRepository)(nil)

const entryColumns = `entry_id, reference_no, source_type, entry_date, description, status, total_amount, requires_approval, approved_by, approved_at, created_at, created_by, last_updated_at, last_updated_by`

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var e models.JournalEntry
	err := row.Scan(
		&e.EntryID,
		&e.ReferenceNo,
		&e.SourceType,
		&e.EntryDate,
		&e.Description,
		&e.Status,
		&e.TotalAmount,
		&e.RequiresApproval,
		&e.ApprovedBy,
		&e.ApprovedAt,
		&e.CreatedAt,
		&e.CreatedBy,
		&e.LastUpdatedAt,
		&e.LastUpdatedBy,
	)
	return e, err
}

// SaveEntry persists an entry header and all of its lines inside one database
// transaction, so a partially written entry is never observable.
func (r *journalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	m := mapping.ToModelJournalEntry(entry)
	entryQuery := `
		INSERT INTO journal_entries (entry_id, reference_no, source_type, entry_date, description, status, total_amount, requires_approval, approved_by, approved_at, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, entryQuery,
		m.EntryID,
		m.ReferenceNo,
		m.SourceType,
		m.EntryDate,
		m.Description,
		m.Status,
		m.TotalAmount,
		m.RequiresApproval,
		m.ApprovedBy,
		m.ApprovedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal entry %s: %w", entry.EntryID, translateError(err))
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (line_id, entry_id, account_code, entry_type, amount, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	for _, line := range entry.Lines {
		lm := mapping.ToModelJournalLine(line)
		batch.Queue(lineQuery,
			lm.LineID,
			lm.EntryID,
			lm.AccountCode,
			lm.EntryType,
			lm.Amount,
			lm.CreatedAt,
			lm.CreatedBy,
			lm.LastUpdatedAt,
			lm.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute line batch for entry %s: %w", entry.EntryID, translateError(err))
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction for entry %s: %w", entry.EntryID, err)
	}
	return nil
}

// FindEntryByID retrieves a journal entry header by its ID.
func (r *journalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`

	m, err := scanEntry(r.pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry by ID %s: %w", entryID, err)
	}

	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

// FindLinesByEntryID retrieves all lines of one entry in insertion order.
func (r *journalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `
		SELECT line_id, entry_id, account_code, entry_type, amount, created_at, created_by, last_updated_at, last_updated_by
		FROM journal_lines
		WHERE entry_id = $1
		ORDER BY created_at, line_id;
	`
	rows, err := r.pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	lines := []models.JournalLine{}
	for rows.Next() {
		var line models.JournalLine
		if err := rows.Scan(
			&line.LineID,
			&line.EntryID,
			&line.AccountCode,
			&line.EntryType,
			&line.Amount,
			&line.CreatedAt,
			&line.CreatedBy,
			&line.LastUpdatedAt,
			&line.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan line row for entry %s: %w", entryID, err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows for entry %s: %w", entryID, err)
	}
	return mapping.ToDomainJournalLineSlice(lines), nil
}

// ListEntries retrieves a filtered page of entries plus the total match count.
func (r *journalRepository) ListEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.JournalEntry, int64, error) {
	where := ` WHERE 1=1`
	args := []any{}

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		where += fmt.Sprintf(" AND entry_date >= $%d", len(args))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		where += fmt.Sprintf(" AND entry_date <= $%d", len(args))
	}
	if filter.AccountCode != nil {
		args = append(args, *filter.AccountCode)
		where += fmt.Sprintf(" AND EXISTS (SELECT 1 FROM journal_lines l WHERE l.entry_id = journal_entries.entry_id AND l.account_code = $%d)", len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM journal_entries` + where + `;`
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count entries: %w", err)
	}

	args = append(args, filter.Limit)
	limitPos := len(args)
	args = append(args, pagination.Offset(filter.Page, filter.Limit))
	offsetPos := len(args)

	pageQuery := `SELECT ` + entryColumns + ` FROM journal_entries` + where +
		fmt.Sprintf(` ORDER BY entry_date DESC, created_at DESC LIMIT $%d OFFSET $%d;`, limitPos, offsetPos)

	rows, err := r.pool.Query(ctx, pageQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan entry row: %w", err)
		}
		entries = append(entries, mapping.ToDomainJournalEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating entry rows: %w", err)
	}
	return entries, total, nil
}

// FindLedgerLines retrieves the posted lines referencing one account with
// their entry context. The running balance is left for the caller to fill.
func (r *journalRepository) FindLedgerLines(ctx context.Context, accountCode string, from, to *time.Time) ([]domain.LedgerLine, error) {
	query := `
		SELECT l.entry_id, e.reference_no, e.entry_date, e.description, l.entry_type, l.amount
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.account_code = $1 AND e.status = 'posted'`
	args := []any{accountCode}

	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND e.entry_date >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND e.entry_date <= $%d", len(args))
	}
	query += ` ORDER BY e.entry_date, l.created_at, l.line_id;`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger lines for account %s: %w", accountCode, err)
	}
	defer rows.Close()

	lines := []domain.LedgerLine{}
	for rows.Next() {
		var line domain.LedgerLine
		if err := rows.Scan(
			&line.EntryID,
			&line.ReferenceNo,
			&line.EntryDate,
			&line.Description,
			&line.EntryType,
			&line.Amount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ledger line for account %s: %w", accountCode, err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger lines for account %s: %w", accountCode, err)
	}
	return lines, nil
}

// DeleteEntry removes an unposted entry; its lines go with it via the cascade
// on the foreign key.
func (r *journalRepository) DeleteEntry(ctx context.Context, entryID string) error {
	query := `DELETE FROM journal_entries WHERE entry_id = $1 AND status <> 'posted';`

	cmdTag, err := r.pool.Exec(ctx, query, entryID)
	if err != nil {
		return fmt.Errorf("failed to delete entry %s: %w", entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		status, err := r.currentStatus(ctx, entryID)
		if err != nil {
			return err
		}
		if status == models.Posted {
			return apperrors.ErrAlreadyPosted
		}
		return fmt.Errorf("failed to delete entry %s: %w", entryID, apperrors.ErrStorage)
	}
	return nil
}

// MarkApproval flips a pending entry to approved or rejected. The status
// guard in the WHERE clause serializes concurrent approvers: exactly one
// update wins.
func (r *journalRepository) MarkApproval(ctx context.Context, entryID string, status domain.EntryStatus, approverID string, at time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = $1, approved_by = $2, approved_at = $3, last_updated_at = $3, last_updated_by = $2
		WHERE entry_id = $4 AND status = 'pending';
	`
	cmdTag, err := r.pool.Exec(ctx, query, string(status), approverID, at, entryID)
	if err != nil {
		return fmt.Errorf("failed to mark approval on entry %s: %w", entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.transitionError(ctx, entryID)
	}
	return nil
}

// PostEntry transitions an entry to posted and applies the signed balance
// deltas to the referenced accounts, all inside one database transaction.
// Account rows are locked in code order so concurrent postings touching the
// same accounts cannot deadlock.
func (r *journalRepository) PostEntry(ctx context.Context, entryID string, allowedFrom []domain.EntryStatus, balanceChanges map[string]decimal.Decimal, updatedBy string, at time.Time) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	codes := make([]string, 0, len(balanceChanges))
	for code := range balanceChanges {
		codes = append(codes, code)
	}

	lockQuery := `SELECT account_code FROM accounts WHERE account_code = ANY($1) ORDER BY account_code FOR UPDATE;`
	rows, err := tx.Query(ctx, lockQuery, codes)
	if err != nil {
		return fmt.Errorf("failed to lock accounts for entry %s: %w", entryID, err)
	}
	locked := 0
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan locked account: %w", err)
		}
		locked++
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error locking accounts for entry %s: %w", entryID, err)
	}
	if locked != len(codes) {
		return fmt.Errorf("entry %s references missing accounts: %w", entryID, apperrors.ErrNotFound)
	}

	statuses := make([]string, len(allowedFrom))
	for i, s := range allowedFrom {
		statuses[i] = string(s)
	}
	postQuery := `
		UPDATE journal_entries
		SET status = 'posted', last_updated_at = $1, last_updated_by = $2
		WHERE entry_id = $3 AND status = ANY($4);
	`
	cmdTag, err := tx.Exec(ctx, postQuery, at, updatedBy, entryID, statuses)
	if err != nil {
		return fmt.Errorf("failed to post entry %s: %w", entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.transitionError(ctx, entryID)
	}

	batch := &pgx.Batch{}
	balanceQuery := `
		UPDATE accounts
		SET balance = balance + $1, last_updated_at = $2, last_updated_by = $3
		WHERE account_code = $4;
	`
	for code, delta := range balanceChanges {
		batch.Queue(balanceQuery, delta, at, updatedBy, code)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to apply balance changes for entry %s: %w", entryID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit posting of entry %s: %w", entryID, err)
	}
	return nil
}

// NextSequence atomically increments and returns the counter for a scope.
// The upsert makes first use of a scope and every subsequent increment a
// single statement, so concurrent allocators never hand out the same number.
func (r *journalRepository) NextSequence(ctx context.Context, scope string) (int64, error) {
	query := `
		INSERT INTO reference_sequences (scope, current_value)
		VALUES ($1, 1)
		ON CONFLICT (scope) DO UPDATE SET current_value = reference_sequences.current_value + 1
		RETURNING current_value;
	`
	var seq int64
	if err := r.pool.QueryRow(ctx, query, scope).Scan(&seq); err != nil {
		return 0, fmt.Errorf("failed to allocate sequence for scope %s: %w", scope, err)
	}
	return seq, nil
}

func (r *journalRepository) currentStatus(ctx context.Context, entryID string) (models.EntryStatus, error) {
	var status models.EntryStatus
	err := r.pool.QueryRow(ctx, `SELECT status FROM journal_entries WHERE entry_id = $1;`, entryID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("failed to read status of entry %s: %w", entryID, err)
	}
	return status, nil
}

// transitionError classifies why a status-guarded update affected no rows.
func (r *journalRepository) transitionError(ctx context.Context, entryID string) error {
	status, err := r.currentStatus(ctx, entryID)
	if err != nil {
		return err
	}
	if status == models.Posted {
		return apperrors.ErrAlreadyPosted
	}
	return fmt.Errorf("entry %s is %s: %w", entryID, status, apperrors.ErrInvalidStateTransition)
}
