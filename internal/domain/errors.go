package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrProductNotFound     = fmt.Errorf("producto: %w", ErrNotFound)
	ErrUserNotFound        = fmt.Errorf("usuario: %w", ErrNotFound)
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrInvalidQuantity     = errors.New("cantidad inválida: el stock no puede quedar negativo")
	ErrInvalidMovementType = errors.New("tipo de movimiento inválido (entrada|saida)")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrStorage             = errors.New("error de almacenamiento")
)

// Campos únicos que pueden generar un ConflictError.
const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldEmail       = "email"
)

// ConflictError violación de unicidad; Field indica qué campo colisionó.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("ya existe un registro con el mismo %s", e.Field)
}

// Is permite errors.Is(err, ErrConflict).
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// NewConflict construye un ConflictError para el campo dado.
func NewConflict(field string) error {
	return &ConflictError{Field: field}
}

// ConflictField devuelve el campo en conflicto si err es un ConflictError.
func ConflictField(err error) (string, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce.Field, true
	}
	return "", false
}

// StorageError fallo inesperado de persistencia. La operación completa puede reintentarse:
// ninguna escritura parcial queda confirmada.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, ErrStorage).
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// NewStorageError envuelve un error del driver con la operación que falló.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
