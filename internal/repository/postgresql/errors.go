package postgresql

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation        = "23505"
	pgForeignKeyViolation    = "23503"
	pgCheckViolation         = "23514"
	pgStringDataTruncation   = "22001"
	pgNumericValueOutOfRange = "22003"
)

// constraintViolation reports the violated constraint name when err is a
// postgres error with the given SQLSTATE code.
func constraintViolation(err error, code string) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == code {
		return pgErr.ConstraintName, true
	}
	return "", false
}

// dataViolation reports whether postgres rejected a value for not fitting
// its column.
func dataViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case pgCheckViolation, pgStringDataTruncation, pgNumericValueOutOfRange:
		return true
	}
	return false
}
