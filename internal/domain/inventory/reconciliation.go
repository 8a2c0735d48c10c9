// Package inventory contiene las reglas del ledger de stock (servicio de dominio sin I/O).
//
// Convención única: Movement.Quantity es la magnitud del cambio y Movement.Balance
// es el stock absoluto del producto justo después de aplicarlo.
package inventory

import (
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// ApplyMovement calcula el nuevo balance a partir del stock actual.
// entrada suma, saida resta; un resultado negativo devuelve ErrInvalidQuantity.
func ApplyMovement(current int64, movType string, quantity int64) (int64, error) {
	if !entity.ValidMovementType(movType) {
		return 0, domain.ErrInvalidMovementType
	}
	if quantity < 0 {
		return 0, domain.ErrInvalidQuantity
	}
	balance := current + quantity
	if movType == entity.MovementTypeSaida {
		balance = current - quantity
	}
	if balance < 0 {
		return 0, domain.ErrInvalidQuantity
	}
	return balance, nil
}

// DeriveAdjustment traduce una edición directa de cantidad (old → new) en el movimiento implícito.
// changed es false si la cantidad no cambia: en ese caso no se registra movimiento.
func DeriveAdjustment(old, new int64) (movType string, quantity int64, changed bool) {
	if old == new {
		return "", 0, false
	}
	if new < old {
		return entity.MovementTypeSaida, old - new, true
	}
	return entity.MovementTypeEntrada, new - old, true
}
