package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/Kaua1102bit/avaliacao-saep/internal/application/dto"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/entity"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/inventory"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/repository"
)

// maxReportRows límite de filas del PDF de movimientos.
const maxReportRows = 1000

// ListMovements devuelve el libro filtrado, más recientes primero
// (date DESC, created_at DESC, id DESC), con producto y responsable resueltos. Solo lectura.
func (uc *MovementUseCase) ListMovements(ctx context.Context, in dto.MovementListRequest) (*dto.MovementListResponse, error) {
	in.DefaultPage()
	filter, err := toMovementFilter(in)
	if err != nil {
		return nil, err
	}
	filter.Limit = in.Limit
	filter.Offset = in.Offset

	items, total, err := uc.movementRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out, err := uc.resolve(ctx, items)
	if err != nil {
		return nil, err
	}
	return &dto.MovementListResponse{
		Items: out,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// LedgerBalance compara el contador del producto con la suma del libro (entradas - salidas).
func (uc *MovementUseCase) LedgerBalance(ctx context.Context, productID string) (*dto.LedgerBalanceDTO, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	balance, err := uc.movementRepo.SumByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &dto.LedgerBalanceDTO{
		ProductID:     product.ID,
		CurrentStock:  product.CurrentStock,
		LedgerBalance: balance,
		Consistent:    balance == product.CurrentStock,
	}, nil
}

// MovementReport genera el PDF con los mismos filtros del listado (sin paginar, hasta maxReportRows).
func (uc *MovementUseCase) MovementReport(ctx context.Context, in dto.MovementListRequest) ([]byte, error) {
	if uc.reports == nil {
		return nil, errors.New("generador de reportes no configurado")
	}
	filter, err := toMovementFilter(in)
	if err != nil {
		return nil, err
	}
	filter.Limit = maxReportRows

	items, _, err := uc.movementRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out, err := uc.resolve(ctx, items)
	if err != nil {
		return nil, err
	}
	pdf, err := uc.reports.GenerateMovementReport(ctx, uc.now().UTC(), out)
	if err != nil {
		return nil, fmt.Errorf("generar reporte de movimientos: %w", err)
	}
	return pdf, nil
}

// resolve carga en lote productos y usuarios referenciados (sin N+1).
func (uc *MovementUseCase) resolve(ctx context.Context, items []*entity.StockMovement) ([]dto.MovementDTO, error) {
	productIDs := make([]string, 0, len(items))
	userIDs := make([]string, 0, len(items))
	seenP := make(map[string]struct{}, len(items))
	seenU := make(map[string]struct{}, len(items))
	for _, m := range items {
		if _, ok := seenP[m.ProductID]; !ok {
			seenP[m.ProductID] = struct{}{}
			productIDs = append(productIDs, m.ProductID)
		}
		if _, ok := seenU[m.ResponsibleID]; !ok {
			seenU[m.ResponsibleID] = struct{}{}
			userIDs = append(userIDs, m.ResponsibleID)
		}
	}

	products, err := uc.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	users, err := uc.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	out := make([]dto.MovementDTO, 0, len(items))
	for _, m := range items {
		d := toMovementDTO(m)
		d.Product = toProductRef(products[m.ProductID])
		d.Responsible = toUserRef(users[m.ResponsibleID])
		out = append(out, d)
	}
	return out, nil
}

func toMovementFilter(in dto.MovementListRequest) (repository.MovementFilter, error) {
	filter := repository.MovementFilter{ProductID: in.ProductID}
	if in.Type != "" {
		t, err := inventory.ParseMovementType(in.Type)
		if err != nil {
			return filter, err
		}
		filter.Type = t
	}
	from, err := parseDate("from", in.From)
	if err != nil {
		return filter, err
	}
	to, err := parseDate("to", in.To)
	if err != nil {
		return filter, err
	}
	if from != nil && to != nil && to.Before(*from) {
		return filter, domain.NewValidationError("to", "la fecha final es anterior a la inicial")
	}
	filter.From, filter.To = from, to
	return filter, nil
}
