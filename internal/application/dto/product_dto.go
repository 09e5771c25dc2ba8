package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// CurrentStock es el saldo inicial: se registra como movimiento de entrada.
type CreateProductRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Description  string          `json:"description" validate:"max=2000"`
	Category     string          `json:"category" validate:"max=100"`
	Size         string          `json:"size" validate:"max=100"`
	Weight       decimal.Decimal `json:"weight"`
	Material     string          `json:"material" validate:"max=100"`
	CurrentStock int             `json:"currentStock" validate:"min=0,max=2147483647"`
	MinStock     int             `json:"minStock" validate:"min=0,max=2147483647"`
	Price        decimal.Decimal `json:"price"`
}

// UpdateProductRequest entrada para actualizar un producto (sin stock: solo vía movimientos).
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description" validate:"omitempty,max=2000"`
	Category    *string          `json:"category" validate:"omitempty,max=100"`
	Size        *string          `json:"size" validate:"omitempty,max=100"`
	Weight      *decimal.Decimal `json:"weight"`
	Material    *string          `json:"material" validate:"omitempty,max=100"`
	MinStock    *int             `json:"minStock" validate:"omitempty,min=0,max=2147483647"`
	Price       *decimal.Decimal `json:"price"`
}

// ProductListRequest filtros de GET /api/products.
type ProductListRequest struct {
	PageRequest
	Search   string `query:"search" validate:"max=200"`
	LowStock bool   `query:"lowStock"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Size         string          `json:"size"`
	Weight       decimal.Decimal `json:"weight"`
	Material     string          `json:"material"`
	CurrentStock int             `json:"currentStock"`
	MinStock     int             `json:"minStock"`
	Price        decimal.Decimal `json:"price"`
	LowStock     bool            `json:"lowStock"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
	ArchivedAt   *time.Time      `json:"archivedAt,omitempty"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
