// Package analytics contiene el resumen del dashboard de inventario.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/Kaua1102bit/avaliacao-saep/internal/application/dto"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/entity"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/repository"
)

const dashboardLowStockItems = 50 // máximo de productos listados en el widget de stock bajo

// DashboardUseCase genera el resumen del catálogo y del libro de movimientos.
// Solo lectura: delega las consultas en los repositorios.
type DashboardUseCase struct {
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	now          func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(productRepo repository.ProductRepository, movementRepo repository.StockMovementRepository) *DashboardUseCase {
	return &DashboardUseCase{productRepo: productRepo, movementRepo: movementRepo, now: time.Now}
}

// Summary construye el DashboardSummaryDTO.
//
// Tres consultas en paralelo:
//  1. Count de productos activos
//  2. Count de movimientos
//  3. Productos con current_stock <= min_stock (total + primeros dashboardLowStockItems)
func (uc *DashboardUseCase) Summary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	type countResult struct {
		n   int
		err error
	}
	type lowStockResult struct {
		items []*entity.Product
		total int
		err   error
	}

	productsCh := make(chan countResult, 1)
	movementsCh := make(chan countResult, 1)
	lowCh := make(chan lowStockResult, 1)

	go func() {
		n, err := uc.productRepo.Count(ctx)
		productsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.movementRepo.Count(ctx)
		movementsCh <- countResult{n, err}
	}()
	go func() {
		items, total, err := uc.productRepo.List(ctx, repository.ProductFilter{
			LowStockOnly: true,
			Limit:        dashboardLowStockItems,
		})
		lowCh <- lowStockResult{items, total, err}
	}()

	products := <-productsCh
	movements := <-movementsCh
	low := <-lowCh

	if products.err != nil {
		return nil, fmt.Errorf("dashboard: total de productos: %w", products.err)
	}
	if movements.err != nil {
		return nil, fmt.Errorf("dashboard: total de movimientos: %w", movements.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", low.err)
	}

	items := make([]dto.LowStockItemDTO, 0, len(low.items))
	for _, p := range low.items {
		items = append(items, dto.LowStockItemDTO{
			ProductID:    p.ID,
			Name:         p.Name,
			Category:     p.Category,
			CurrentStock: p.CurrentStock,
			MinStock:     p.MinStock,
		})
	}
	return &dto.DashboardSummaryDTO{
		TotalProducts:  products.n,
		TotalMovements: movements.n,
		LowStockCount:  low.total,
		LowStock:       items,
		GeneratedAt:    uc.now().UTC(),
	}, nil
}
