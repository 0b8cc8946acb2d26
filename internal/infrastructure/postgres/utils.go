package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// patchField un campo a actualizar en un UPDATE parcial.
type patchField struct {
	column string
	value  any
}

// buildPatch arma la cláusula SET de un UPDATE parcial de forma uniforme:
// "name = $2, price = $3" con los argumentos en orden. $1 queda reservado para
// el WHERE id. Devuelve cláusula vacía si no hay campos.
func buildPatch(fields []patchField) (string, []any) {
	if len(fields) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields))
	for i, f := range fields {
		parts = append(parts, fmt.Sprintf("%s = $%d", f.column, i+2))
		args = append(args, f.value)
	}
	return strings.Join(parts, ", "), args
}
