package repository

import (
	"context"
	"time"

	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/entity"
)

// MovementFilter criterios de listado del libro de movimientos.
// From/To acotan la fecha del movimiento (inclusive). Limit 0 = sin límite.
type MovementFilter struct {
	ProductID string
	Type      string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// StockMovementRepository define el puerto de persistencia del libro de movimientos (DIP).
// Los movimientos son inmutables: no hay Update ni Delete.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// List ordena por date DESC, created_at DESC, id DESC y devuelve el total sin paginar.
	List(ctx context.Context, filter MovementFilter) ([]*entity.StockMovement, int, error)
	// SumByProduct devuelve entradas menos salidas registradas para el producto.
	SumByProduct(ctx context.Context, productID string) (int, error)
	Count(ctx context.Context) (int, error)
}
