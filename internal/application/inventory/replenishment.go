package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Kaua1102bit/avaliacao-saep/internal/application/dto"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/entity"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/inventory"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/repository"
)

// replenishmentWindow ventana de salidas usada para priorizar la reposición.
const replenishmentWindow = 90 * 24 * time.Hour

// ReplenishmentUseCase genera la lista de reposición: productos en o por debajo del mínimo
// con la cantidad sugerida de pedido, priorizados por rotación reciente.
type ReplenishmentUseCase struct {
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	now          func() time.Time
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{
		productRepo:  productRepo,
		movementRepo: movementRepo,
		now:          time.Now,
	}
}

// Suggestions devuelve la lista de reposición ordenada por prioridad:
// más unidades salidas en los últimos 90 días, luego mayor déficit bajo el mínimo, luego nombre.
func (uc *ReplenishmentUseCase) Suggestions(ctx context.Context) (*dto.ReplenishmentResponse, error) {
	now := uc.now().UTC()

	// 1. Productos en o por debajo del mínimo
	low, _, err := uc.productRepo.List(ctx, repository.ProductFilter{LowStockOnly: true})
	if err != nil {
		return nil, fmt.Errorf("reposición: stock bajo: %w", err)
	}
	out := &dto.ReplenishmentResponse{Items: []dto.ReplenishmentSuggestionDTO{}, GeneratedAt: now}
	if len(low) == 0 {
		return out, nil
	}

	// 2. Salidas de la ventana, agregadas por producto
	from := truncateDate(now.Add(-replenishmentWindow))
	exits, _, err := uc.movementRepo.List(ctx, repository.MovementFilter{
		Type: entity.MovementTypeExit,
		From: &from,
	})
	if err != nil {
		return nil, fmt.Errorf("reposición: salidas recientes: %w", err)
	}
	unitsOut := make(map[string]int, len(low))
	for _, m := range exits {
		unitsOut[m.ProductID] += m.Quantity
	}

	// 3. Sugerencias
	for _, p := range low {
		ideal, qty := inventory.ReorderQuantity(p.CurrentStock, p.MinStock)
		out.Items = append(out.Items, dto.ReplenishmentSuggestionDTO{
			ProductID:          p.ID,
			Name:               p.Name,
			Category:           p.Category,
			CurrentStock:       p.CurrentStock,
			MinStock:           p.MinStock,
			IdealStock:         ideal,
			SuggestedOrderQty:  qty,
			UnitPrice:          p.Price,
			EstimatedValue:     p.Price.Mul(decimal.NewFromInt(int64(qty))),
			UnitsOutLast90Days: unitsOut[p.ID],
		})
	}

	// 4. Prioridad (1 = más urgente)
	sort.SliceStable(out.Items, func(i, j int) bool {
		a, b := out.Items[i], out.Items[j]
		if a.UnitsOutLast90Days != b.UnitsOutLast90Days {
			return a.UnitsOutLast90Days > b.UnitsOutLast90Days
		}
		defA, defB := a.MinStock-a.CurrentStock, b.MinStock-b.CurrentStock
		if defA != defB {
			return defA > defB
		}
		return a.Name < b.Name
	})
	for i := range out.Items {
		out.Items[i].Priority = i + 1
	}
	return out, nil
}
