package usecase

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// ProductUseCase casos de uso para productos. Todo cambio de stock pasa por el motor de inventario.
type ProductUseCase struct {
	engine *inventory.Engine
	repo   repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(engine *inventory.Engine, repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{engine: engine, repo: repo}
}

// Create crea un producto con su movimiento inicial de entrada. userID es el autor del movimiento.
func (uc *ProductUseCase) Create(ctx context.Context, userID int64, in dto.CreateProductRequest) (*dto.ProductMovementResponse, error) {
	product, mov, err := uc.engine.CreateProduct(ctx, userID, inventory.NewProduct{
		Name:         in.Name,
		Description:  in.Description,
		Value:        in.Value,
		MinimumValue: in.MinimumValue,
		Quantity:     in.Quantity,
		Image:        in.Image,
	})
	if err != nil {
		return nil, err
	}
	return uc.toProductMovementResponse(product, mov), nil
}

// GetByID obtiene un producto activo por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return toProductResponse(product), nil
}

// Update aplica cambios parciales. Si cambia quantity se registra el ajuste en el ledger.
func (uc *ProductUseCase) Update(ctx context.Context, id, userID int64, in dto.UpdateProductRequest) (*dto.ProductMovementResponse, error) {
	product, mov, err := uc.engine.UpdateProduct(ctx, id, userID, inventory.ProductChanges{
		Name:         in.Name,
		Description:  in.Description,
		Value:        in.Value,
		MinimumValue: in.MinimumValue,
		Quantity:     in.Quantity,
		Image:        in.Image,
	})
	if err != nil {
		return nil, err
	}
	return uc.toProductMovementResponse(product, mov), nil
}

// List lista productos activos en orden de alta con paginación.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	return &dto.ProductListResponse{
		Items: toProductResponses(list),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// ListLowStock lista productos cuyo stock está por debajo de minimum_value.
func (uc *ProductUseCase) ListLowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListBelowMinimum(ctx)
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// Delete aplica borrado lógico. El ledger del producto se conserva.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	return uc.repo.SoftDelete(ctx, id)
}

func (uc *ProductUseCase) toProductMovementResponse(p *entity.Product, m *entity.Movement) *dto.ProductMovementResponse {
	out := &dto.ProductMovementResponse{Product: *toProductResponse(p)}
	if m != nil {
		mr := toMovementResponse(uc.engine.Clock(), m)
		out.Movement = &mr
	}
	return out
}

func toProductResponses(list []*entity.Product) []dto.ProductResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	var image []byte
	if len(p.Image) > 0 {
		image = p.Image
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Value:        p.Value,
		MinimumValue: p.MinimumValue,
		Quantity:     p.Quantity,
		LowStock:     p.BelowMinimum(),
		Image:        image,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
