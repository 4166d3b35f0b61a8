package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ukmbooks/ukm_bookkeeping_app/internal/core/domain"
	portsrepo "github.com/ukmbooks/ukm_bookkeeping_app/internal/core/ports/repositories"
)

type reportingRepository struct {
	pool *pgxpool.Pool
}

// NewReportingRepository creates a read-only repository for report
// aggregations over posted journal lines.
func NewReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{pool: pool}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// totalsQuery aggregates posted line amounts per active account. The posted
// lines are prefiltered in a subquery so accounts without activity still
// appear with zero totals.
const totalsQuery = `
	SELECT a.account_code, a.name, a.account_type, a.normal_balance,
	       COALESCE(SUM(pl.amount) FILTER (WHERE pl.entry_type = 'debit'), 0)  AS total_debit,
	       COALESCE(SUM(pl.amount) FILTER (WHERE pl.entry_type = 'credit'), 0) AS total_credit
	FROM accounts a
	LEFT JOIN (
		SELECT l.account_code, l.entry_type, l.amount
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.status = 'posted' AND e.entry_date >= $1 AND e.entry_date <= $2
	) pl ON pl.account_code = a.account_code
	WHERE a.is_active AND ($3::text[] IS NULL OR a.account_type = ANY($3))
	GROUP BY a.account_code, a.name, a.account_type, a.normal_balance
	ORDER BY a.account_code;
`

func (r *reportingRepository) queryTotals(ctx context.Context, from, to time.Time, types []domain.AccountType) ([]domain.AccountTotals, error) {
	var typeFilter []string
	for _, t := range types {
		typeFilter = append(typeFilter, string(t))
	}

	rows, err := r.pool.Query(ctx, totalsQuery, from, to, typeFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to query account totals: %w", err)
	}
	defer rows.Close()

	totals := []domain.AccountTotals{}
	for rows.Next() {
		var t domain.AccountTotals
		if err := rows.Scan(
			&t.AccountCode,
			&t.AccountName,
			&t.AccountType,
			&t.NormalBalance,
			&t.TotalDebit,
			&t.TotalCredit,
		); err != nil {
			return nil, fmt.Errorf("failed to scan account totals row: %w", err)
		}
		totals = append(totals, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account totals rows: %w", err)
	}
	return totals, nil
}

// GetAccountTotalsAsOf returns per-account debit/credit totals over all
// posted lines dated on or before asOf.
func (r *reportingRepository) GetAccountTotalsAsOf(ctx context.Context, asOf time.Time, types []domain.AccountType) ([]domain.AccountTotals, error) {
	// The lower bound is open; time zero predates any entry.
	return r.queryTotals(ctx, time.Time{}, asOf, types)
}

// GetAccountTotalsInPeriod is the same aggregation restricted to [from, to].
func (r *reportingRepository) GetAccountTotalsInPeriod(ctx context.Context, from, to time.Time, types []domain.AccountType) ([]domain.AccountTotals, error) {
	return r.queryTotals(ctx, from, to, types)
}

// GetCashMovements returns the posted cash-account lines within [from, to],
// signed so that debits (cash in) are positive.
func (r *reportingRepository) GetCashMovements(ctx context.Context, from, to time.Time) ([]domain.CashMovement, error) {
	query := `
		SELECT e.entry_date, e.reference_no, e.description, e.source_type, l.entry_type,
		       CASE WHEN l.entry_type = 'debit' THEN l.amount ELSE -l.amount END AS amount
		FROM journal_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.account_code = $1 AND e.status = 'posted'
		  AND e.entry_date >= $2 AND e.entry_date <= $3
		ORDER BY e.entry_date, l.created_at;
	`
	rows, err := r.pool.Query(ctx, query, domain.CodeCash, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query cash movements: %w", err)
	}
	defer rows.Close()

	movements, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.CashMovement, error) {
		var m domain.CashMovement
		err := row.Scan(&m.EntryDate, &m.ReferenceNo, &m.Description, &m.SourceType, &m.EntryType, &m.Amount)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect cash movement rows: %w", err)
	}
	return movements, nil
}
