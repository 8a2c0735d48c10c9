package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. Quantity es el stock inicial (0 si se omite).
// Image viaja en base64 dentro del JSON o como archivo multipart "image".
type CreateProductRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Description  string          `json:"description" validate:"required"`
	Value        decimal.Decimal `json:"value"`
	MinimumValue int64           `json:"minimum_value" validate:"min=0"`
	Quantity     int64           `json:"quantity" validate:"min=0"`
	Image        []byte          `json:"image,omitempty"`
}

// UpdateProductRequest entrada para actualizar un producto. Un cambio de quantity genera un movimiento.
type UpdateProductRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description  *string          `json:"description"`
	Value        *decimal.Decimal `json:"value"`
	MinimumValue *int64           `json:"minimum_value"`
	Quantity     *int64           `json:"quantity"`
	Image        []byte           `json:"image,omitempty"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Value        decimal.Decimal `json:"value"`
	MinimumValue int64           `json:"minimum_value"`
	Quantity     int64           `json:"quantity"`
	LowStock     bool            `json:"low_stock"`
	Image        []byte          `json:"image,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductMovementResponse producto resultante y el movimiento que generó la operación (si hubo).
type ProductMovementResponse struct {
	Product  ProductResponse   `json:"product"`
	Movement *MovementResponse `json:"movement,omitempty"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
