package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Código SQLSTATE de Postgres para violación de constraint único.
const codeUniqueViolation = "23505"

// isUniqueViolation detecta el choque contra un índice único (referencia de
// operación, SKU, short_code, login_id). Los repositorios lo traducen a
// domain.ErrDuplicate.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation
}
