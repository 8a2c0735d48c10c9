package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario.
// Quantity solo cambia junto con un Movement (ver domain/inventory); DeletedAt marca borrado lógico.
type Product struct {
	ID           int64
	Name         string          // único entre productos activos
	Description  string          // único entre productos activos
	Value        decimal.Decimal // precio unitario, no negativo
	MinimumValue int64           // punto de reorden
	Quantity     int64           // igual al balance del último movimiento
	Image        []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// BelowMinimum indica si el stock está por debajo del punto de reorden.
func (p *Product) BelowMinimum() bool {
	return p.Quantity < p.MinimumValue
}
