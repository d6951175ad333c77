package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Icon        string          `json:"icon" validate:"omitempty,max=16"`
	Unit        string          `json:"unit" validate:"required,oneof=kg g dozen box piece"`
	StepAmount  decimal.Decimal `json:"step_amount"`
	MadeToOrder bool            `json:"made_to_order"`
}

// UpdateProductRequest entrada para actualizar un producto.
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Icon        *string          `json:"icon" validate:"omitempty,max=16"`
	Unit        *string          `json:"unit" validate:"omitempty,oneof=kg g dozen box piece"`
	StepAmount  *decimal.Decimal `json:"step_amount"`
	MadeToOrder *bool            `json:"made_to_order"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Icon        string          `json:"icon"`
	Unit        string          `json:"unit"`
	StepAmount  decimal.Decimal `json:"step_amount"`
	MadeToOrder bool            `json:"made_to_order"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
