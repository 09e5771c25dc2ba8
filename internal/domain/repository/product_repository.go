package repository

import (
	"context"

	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/entity"
)

// ProductFilter criterios de listado del catálogo. Los productos archivados nunca se incluyen.
type ProductFilter struct {
	Search       string // texto libre sobre nombre, descripción y categoría
	LowStockOnly bool   // solo current_stock <= min_stock
	Limit        int
	Offset       int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	// GetByID devuelve también productos archivados (el historial los sigue resolviendo).
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, int, error)
	// Update persiste los campos de catálogo; current_stock no se toca.
	Update(ctx context.Context, product *entity.Product) error
	Archive(ctx context.Context, id string) error
	// AdjustStock aplica delta sobre current_stock de forma atómica y condicionada a que el
	// resultado no sea negativo. Devuelve el producto actualizado,
	// domain.ErrNotFound si no existe o está archivado y domain.ErrInsufficientStock si el guard falla.
	// Una entrada que deje el stock por encima de entity.MaxStock devuelve un error domain.ErrInvalidInput.
	AdjustStock(ctx context.Context, id string, delta int) (*entity.Product, error)
	Count(ctx context.Context) (int, error)
}
