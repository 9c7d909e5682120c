package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos de error PostgreSQL relevantes para el núcleo de stock.
const (
	pgCodeUniqueViolation   = "23505" // unique_violation
	pgCodeLockNotAvailable  = "55P03" // lock_not_available (lock_timeout vencido)
	pgCodeQueryCanceled     = "57014" // query_canceled (statement_timeout o cancel)
)

// isUniqueViolation verifica si un error es una violación de constraint único.
func isUniqueViolation(err error) bool {
	return hasPGCode(err, pgCodeUniqueViolation)
}

// isLockTimeout verifica si un error corresponde al vencimiento del
// lock_timeout al esperar el bloqueo de fila.
func isLockTimeout(err error) bool {
	return hasPGCode(err, pgCodeLockNotAvailable)
}

func hasPGCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}
