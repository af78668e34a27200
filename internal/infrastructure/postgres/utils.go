package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE de PostgreSQL para clave única duplicada.
const codeUniqueViolation = "23505"

// isUniqueViolation detecta un choque de constraint único, venga como *pgconn.PgError
// o embebido en el texto de un error ya envuelto.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeUniqueViolation
	}
	return strings.Contains(err.Error(), codeUniqueViolation)
}
