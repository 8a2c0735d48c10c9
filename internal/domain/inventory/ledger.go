package inventory

import (
	"fmt"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// LedgerError describe la primera inconsistencia encontrada en el ledger de un producto.
type LedgerError struct {
	ProductID  int64
	MovementID int64 // 0 si la inconsistencia es contra Product.Quantity
	Expected   int64
	Actual     int64
	Reason     string
}

func (e *LedgerError) Error() string {
	if e.MovementID == 0 {
		return fmt.Sprintf("producto %d: %s (esperado %d, actual %d)", e.ProductID, e.Reason, e.Expected, e.Actual)
	}
	return fmt.Sprintf("producto %d, movimiento %d: %s (esperado %d, actual %d)",
		e.ProductID, e.MovementID, e.Reason, e.Expected, e.Actual)
}

// VerifyLedger recorre los movimientos en orden ascendente de id y comprueba que cada balance
// se derive del anterior y que el último coincida con la cantidad del producto.
func VerifyLedger(product *entity.Product, movements []*entity.Movement) error {
	if len(movements) == 0 {
		return &LedgerError{ProductID: product.ID, Reason: "producto sin movimiento inicial", Expected: 1, Actual: 0}
	}
	var prev int64
	for i, m := range movements {
		if i > 0 && m.ID <= movements[i-1].ID {
			return &LedgerError{ProductID: product.ID, MovementID: m.ID, Expected: movements[i-1].ID, Actual: m.ID,
				Reason: "movimientos fuera de orden"}
		}
		if !entity.ValidMovementType(m.Type) {
			return &LedgerError{ProductID: product.ID, MovementID: m.ID, Reason: "tipo desconocido " + m.Type}
		}
		expected := m.Quantity
		if i > 0 {
			expected = prev + m.Quantity
			if m.Type == entity.MovementTypeSaida {
				expected = prev - m.Quantity
			}
		} else if m.Type != entity.MovementTypeEntrada {
			return &LedgerError{ProductID: product.ID, MovementID: m.ID, Reason: "el movimiento inicial debe ser entrada"}
		}
		if m.Balance != expected {
			return &LedgerError{ProductID: product.ID, MovementID: m.ID, Expected: expected, Actual: m.Balance,
				Reason: "balance no cuadra"}
		}
		prev = m.Balance
	}
	if prev != product.Quantity {
		return &LedgerError{ProductID: product.ID, Expected: prev, Actual: product.Quantity,
			Reason: "cantidad del producto distinta del último balance"}
	}
	return nil
}
