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
)

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new repository for chart-of-accounts data.
func NewAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &accountRepository{pool: pool}
}

var _ portsrepo.AccountRepositoryFacade = (*accountRepository)(nil)

const accountColumns = `account_code, name, account_type, normal_balance, balance, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (models.Account, error) {
	var acc models.Account
	err := row.Scan(
		&acc.AccountCode,
		&acc.Name,
		&acc.AccountType,
		&acc.NormalBalance,
		&acc.Balance,
		&acc.IsActive,
		&acc.CreatedAt,
		&acc.CreatedBy,
		&acc.LastUpdatedAt,
		&acc.LastUpdatedBy,
	)
	return acc, err
}

// SaveAccount inserts a new chart-of-accounts row. A duplicate code maps to
// ErrDuplicate.
func (r *accountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (account_code, name, account_type, normal_balance, balance, is_active, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.pool.Exec(ctx, query,
		m.AccountCode,
		m.Name,
		m.AccountType,
		m.NormalBalance,
		m.Balance,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save account %s: %w", account.AccountCode, translateError(err))
	}
	return nil
}

// FindAccountByCode retrieves an account by its exact code.
func (r *accountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_code = $1;`

	m, err := scanAccount(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by code %s: %w", code, err)
	}

	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// FindAccountsByCodes retrieves multiple accounts keyed by code.
func (r *accountRepository) FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_code = ANY($1);`

	rows, err := r.pool.Query(ctx, query, codes)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by codes: %w", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(codes))
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts[m.AccountCode] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// ListAccounts retrieves the chart of accounts ordered by code.
func (r *accountRepository) ListAccounts(ctx context.Context, activeOnly bool) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY account_code;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return mapping.ToDomainAccountSlice(accounts), nil
}

// SumBalancesByType sums the balances of active accounts of one type.
func (r *accountRepository) SumBalancesByType(ctx context.Context, accountType domain.AccountType) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(balance), 0)
		FROM accounts
		WHERE account_type = $1 AND is_active;
	`
	var sum decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, string(accountType)).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum balances for type %s: %w", accountType, err)
	}
	return sum, nil
}

// FindPostedLinesByAccount returns every posted-entry line referencing the
// account, ordered by entry date then insertion order.
func (r *accountRepository) FindPostedLinesByAccount(ctx context.Context, code string) ([]domain.JournalLine, error) {
	query := `
		SELECT l.line_id, l.entry_id, l.account_code, l.entry_type, l.amount, l.created_at, l.created_by, l.last_updated_at, l.last_updated_by
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.account_code = $1 AND e.status = 'posted'
		ORDER BY e.entry_date, l.created_at;
	`
	rows, err := r.pool.Query(ctx, query, code)
	if err != nil {
		return nil, fmt.Errorf("failed to query posted lines for account %s: %w", code, err)
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
			return nil, fmt.Errorf("failed to scan line row for account %s: %w", code, err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows for account %s: %w", code, err)
	}
	return mapping.ToDomainJournalLineSlice(lines), nil
}

// DeactivateAccount soft-deactivates an account. Rows are never deleted so
// historical journals stay resolvable.
func (r *accountRepository) DeactivateAccount(ctx context.Context, code string, updatedBy string, at time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $1, last_updated_by = $2
		WHERE account_code = $3 AND is_active;
	`
	cmdTag, err := r.pool.Exec(ctx, query, at, updatedBy, code)
	if err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", code, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
