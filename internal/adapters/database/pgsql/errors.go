package pgsql

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ukmbooks/ukm_bookkeeping_app/internal/apperrors"
)

// Postgres error codes we translate into application errors.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// translateError maps driver-level errors onto application sentinels so that
// callers never import pgx to classify a failure.
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return apperrors.ErrDuplicate
		case codeForeignKeyViolation:
			return apperrors.ErrValidation
		}
	}
	return err
}
