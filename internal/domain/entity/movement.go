package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeEntrada = "entrada" // entrada de mercancía
	MovementTypeSaida   = "saida"   // salida de mercancía
)

// Movement registro inmutable del ledger de un producto.
// Quantity es la magnitud del cambio; Balance es el stock resultante tras aplicarlo.
type Movement struct {
	ID            int64
	TransactionID string
	ProductID     int64
	UserID        int64
	Type          string
	Quantity      int64
	Balance       int64
	Date          time.Time
}

// ValidMovementType indica si t es entrada o saida.
func ValidMovementType(t string) bool {
	return t == MovementTypeEntrada || t == MovementTypeSaida
}
