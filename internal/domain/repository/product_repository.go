package repository

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las lecturas ignoran productos con borrado lógico salvo Exists.
type ProductRepository interface {
	// Create persiste el producto y asigna product.ID. Devuelve *domain.ConflictError si name o description ya existen.
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	ListBelowMinimum(ctx context.Context) ([]*entity.Product, error)
	// Update persiste name, description, value, minimum_value e image. Quantity solo cambia vía UpdateQuantity.
	Update(ctx context.Context, product *entity.Product) error
	UpdateQuantity(ctx context.Context, id, quantity int64) error
	SoftDelete(ctx context.Context, id int64) error
	// Exists indica si el producto existió alguna vez (incluye borrados).
	Exists(ctx context.Context, id int64) (bool, error)
}
