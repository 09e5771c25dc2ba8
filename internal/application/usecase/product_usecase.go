package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Kaua1102bit/avaliacao-saep/internal/application/dto"
	"github.com/Kaua1102bit/avaliacao-saep/internal/application/inventory"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/entity"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/repository"
)

// OpeningBalanceNote nota del movimiento que registra el stock inicial de un producto.
const OpeningBalanceNote = "saldo inicial"

// ProductUseCase casos de uso CRUD para productos. El stock solo cambia vía movimientos;
// el saldo inicial de Create se registra como movimiento de entrada.
type ProductUseCase struct {
	repo     repository.ProductRepository
	txRunner inventory.TxRunner
	now      func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, txRunner inventory.TxRunner) *ProductUseCase {
	return &ProductUseCase{repo: repo, txRunner: txRunner, now: time.Now}
}

// Create crea un nuevo producto. Si trae stock inicial, el alta y el movimiento de apertura
// se escriben en la misma transacción para que el libro reconstruya el contador.
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := validateProductValues(&in.Weight, &in.Price); err != nil {
		return nil, err
	}
	if in.CurrentStock < 0 || in.MinStock < 0 {
		return nil, domain.NewValidationError("currentStock", "el stock no puede ser negativo")
	}
	if in.CurrentStock > entity.MaxStock || in.MinStock > entity.MaxStock {
		return nil, domain.NewValidationError("currentStock", fmt.Sprintf("el stock no puede superar %d", entity.MaxStock))
	}
	now := uc.now().UTC()
	product := &entity.Product{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		Description:  strings.TrimSpace(in.Description),
		Category:     strings.TrimSpace(in.Category),
		Size:         strings.TrimSpace(in.Size),
		Weight:       in.Weight,
		Material:     strings.TrimSpace(in.Material),
		CurrentStock: in.CurrentStock,
		MinStock:     in.MinStock,
		Price:        in.Price,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if product.Name == "" {
		return nil, domain.NewValidationError("name", "el nombre es obligatorio")
	}

	err := uc.txRunner.Run(ctx, func(
		ctx context.Context,
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		if product.CurrentStock == 0 {
			return nil
		}
		if userID == "" {
			return domain.ErrUnauthorized
		}
		y, m, d := now.Date()
		return movementRepo.Create(ctx, &entity.StockMovement{
			ID:            uuid.New().String(),
			ProductID:     product.ID,
			Type:          entity.MovementTypeEntry,
			Quantity:      product.CurrentStock,
			Date:          time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
			ResponsibleID: userID,
			Notes:         OpeningBalanceNote,
			CreatedAt:     now,
		})
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto activo por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.IsArchived() {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza campos de catálogo. No permite modificar el stock (se maneja vía movimientos).
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.IsArchived() {
		return nil, domain.ErrNotFound
	}
	if err := validateProductValues(in.Weight, in.Price); err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewValidationError("name", "el nombre es obligatorio")
		}
		product.Name = name
	}
	if in.Description != nil {
		product.Description = strings.TrimSpace(*in.Description)
	}
	if in.Category != nil {
		product.Category = strings.TrimSpace(*in.Category)
	}
	if in.Size != nil {
		product.Size = strings.TrimSpace(*in.Size)
	}
	if in.Weight != nil {
		product.Weight = *in.Weight
	}
	if in.Material != nil {
		product.Material = strings.TrimSpace(*in.Material)
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 || *in.MinStock > entity.MaxStock {
			return nil, domain.NewValidationError("minStock", fmt.Sprintf("el stock mínimo debe estar entre 0 y %d", entity.MaxStock))
		}
		product.MinStock = *in.MinStock
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	product.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos activos con búsqueda libre y filtro de stock bajo.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ProductListRequest) (*dto.ProductListResponse, error) {
	in.DefaultPage()
	list, total, err := uc.repo.List(ctx, repository.ProductFilter{
		Search:       strings.TrimSpace(in.Search),
		LowStockOnly: in.LowStock,
		Limit:        in.Limit,
		Offset:       in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// Delete da de baja el producto (archivado). Los movimientos históricos siguen resolviéndolo.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Archive(ctx, id)
}

// Rangos de las columnas NUMERIC(12,3) y NUMERIC(12,2); los topes son exclusivos.
var (
	maxWeight = decimal.New(1, 9)
	maxPrice  = decimal.New(1, 10)
)

// validateProductValues: peso > 0 y precio >= 0 dentro del rango de sus columnas (nil = no informado).
func validateProductValues(weight, price *decimal.Decimal) error {
	var errs domain.ValidationErrors
	switch {
	case weight == nil:
	case !weight.Round(3).IsPositive():
		errs = append(errs, domain.NewValidationError("weight", "el peso debe ser mayor que cero (precisión de 3 decimales)"))
	case weight.Round(3).GreaterThanOrEqual(maxWeight):
		errs = append(errs, domain.NewValidationError("weight", "el peso debe ser menor que "+maxWeight.String()))
	}
	switch {
	case price == nil:
	case price.IsNegative():
		errs = append(errs, domain.NewValidationError("price", "el precio no puede ser negativo"))
	case price.Round(2).GreaterThanOrEqual(maxPrice):
		errs = append(errs, domain.NewValidationError("price", "el precio debe ser menor que "+maxPrice.String()))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Category:     p.Category,
		Size:         p.Size,
		Weight:       p.Weight,
		Material:     p.Material,
		CurrentStock: p.CurrentStock,
		MinStock:     p.MinStock,
		Price:        p.Price,
		LowStock:     p.IsLowStock(),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		ArchivedAt:   p.ArchivedAt,
	}
}
