package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/estoque-api/internal/domain"
)

// Códigos SQLSTATE usados para clasificar errores.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// constraintFields mapea el nombre del índice/constraint único al campo de dominio.
var constraintFields = map[string]string{
	"ux_products_name":        domain.FieldName,
	"ux_products_description": domain.FieldDescription,
	"ux_users_email":          domain.FieldEmail,
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeUniqueViolation
	}
	return strings.Contains(err.Error(), codeUniqueViolation)
}

// isForeignKeyViolation verifica si un error es una violación de llave foránea (23503) y devuelve el constraint.
func isForeignKeyViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}

// conflictFromUnique traduce una violación de unicidad a *domain.ConflictError con el campo afectado.
// fallback se usa si el constraint no está mapeado.
func conflictFromUnique(err error, fallback string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if field, ok := constraintFields[pgErr.ConstraintName]; ok {
			return domain.NewConflict(field)
		}
	}
	return domain.NewConflict(fallback)
}
