package repository

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// MovementRepository define el puerto del ledger de movimientos (solo inserción).
type MovementRepository interface {
	// Append inserta el movimiento y asigna movement.ID.
	Append(ctx context.Context, movement *entity.Movement) error
	// ListByProduct devuelve los movimientos del producto, más reciente primero (id DESC).
	ListByProduct(ctx context.Context, productID int64) ([]*entity.Movement, error)
	// ListByProductAsc devuelve los movimientos en orden cronológico (id ASC).
	ListByProductAsc(ctx context.Context, productID int64) ([]*entity.Movement, error)
	// ListByUser devuelve los movimientos registrados por el usuario (id DESC).
	ListByUser(ctx context.Context, userID int64) ([]*entity.Movement, error)
}
