package db

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/odyssey-erp/erp-dashboard/internal/platform/httpx"
)

// PostgreSQL SQLSTATE codes surfaced to clients.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeNotNullViolation    = "23502"
	codeCheckViolation      = "23514"
)

// Classify maps driver errors onto the httpx sentinels. Errors it does not
// recognise are returned unchanged.
func Classify(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %w", entity, httpx.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		return fmt.Errorf("%w: %s already exists", httpx.ErrDuplicate, entity)
	case codeForeignKeyViolation:
		return httpx.Invalid(columnOr(pgErr, "reference"), "referenced record does not exist")
	case codeNotNullViolation:
		return httpx.Invalid(columnOr(pgErr, "field"), "is required")
	case codeCheckViolation:
		return httpx.Invalid(columnOr(pgErr, "field"), "violates a constraint")
	default:
		return err
	}
}

func columnOr(pgErr *pgconn.PgError, fallback string) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	return fallback
}
