package sqlite

import (
	"errors"
	"strings"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/mattn/go-sqlite3"
)

// columnFields mapea "tabla.columna" del mensaje de SQLite al campo de dominio.
var columnFields = map[string]string{
	"products.name":        domain.FieldName,
	"products.description": domain.FieldDescription,
	"users.email":          domain.FieldEmail,
}

func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintUnique
}

func isForeignKeyViolation(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.ExtendedCode == sqlite3.ErrConstraintForeignKey
}

// conflictFromUnique traduce "UNIQUE constraint failed: products.name" a *domain.ConflictError.
func conflictFromUnique(err error, fallback string) error {
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		if field, ok := columnFields[strings.TrimSpace(msg[i+2:])]; ok {
			return domain.NewConflict(field)
		}
	}
	return domain.NewConflict(fallback)
}
