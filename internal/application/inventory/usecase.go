package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Kaua1102bit/avaliacao-saep/internal/domain"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/entity"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/inventory"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/repository"
	"github.com/Kaua1102bit/avaliacao-saep/pkg/logger"
)

// MovementUseCase registra y consulta movimientos de stock. Cada registro actualiza el
// contador del producto y agrega el asiento al libro dentro de una misma transacción.
type MovementUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	userRepo     repository.UserRepository
	reports      ReportGenerator
	metrics      Metrics
	log          *logger.Logger
	now          func() time.Time
}

// Option configura dependencias opcionales del caso de uso.
type Option func(*MovementUseCase)

// WithMetrics registra el recolector de métricas.
func WithMetrics(m Metrics) Option {
	return func(uc *MovementUseCase) { uc.metrics = m }
}

// WithReportGenerator registra el generador de PDF.
func WithReportGenerator(g ReportGenerator) Option {
	return func(uc *MovementUseCase) { uc.reports = g }
}

// WithLogger registra el logger estructurado.
func WithLogger(l *logger.Logger) Option {
	return func(uc *MovementUseCase) { uc.log = l }
}

// WithClock reemplaza el reloj (tests).
func WithClock(now func() time.Time) Option {
	return func(uc *MovementUseCase) { uc.now = now }
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	userRepo repository.UserRepository,
	opts ...Option,
) *MovementUseCase {
	uc := &MovementUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		movementRepo: movementRepo,
		userRepo:     userRepo,
		metrics:      noopMetrics{},
		log:          logger.Nop(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// MovementInput entrada para registrar un movimiento.
// ResponsibleID lo aporta la sesión del request, nunca el body.
type MovementInput struct {
	ProductID     string
	Type          string
	Quantity      int
	Date          time.Time // cero = hoy (UTC)
	ResponsibleID string
	Notes         string
}

// MovementResult movimiento persistido, producto ya actualizado y alerta informativa (vacía si no aplica).
type MovementResult struct {
	Movement *entity.StockMovement
	Product  *entity.Product
	Alert    string
}

// RecordMovement valida la entrada y, en una sola transacción, aplica el delta guardado sobre
// current_stock y agrega el asiento al libro. Una salida mayor al stock disponible se rechaza
// con *domain.InsufficientStockError sin modificar nada.
func (uc *MovementUseCase) RecordMovement(ctx context.Context, input MovementInput) (*MovementResult, error) {
	movType, err := inventory.ParseMovementType(input.Type)
	if err != nil {
		uc.metrics.MovementRecorded("invalid", ResultRejected)
		return nil, err
	}
	if err := uc.validate(input); err != nil {
		uc.metrics.MovementRecorded(movType, ResultRejected)
		return nil, err
	}

	now := uc.now().UTC()
	date := input.Date
	if date.IsZero() {
		date = now
	}
	mov := &entity.StockMovement{
		ID:            uuid.New().String(),
		ProductID:     input.ProductID,
		Type:          movType,
		Quantity:      input.Quantity,
		Date:          truncateDate(date),
		ResponsibleID: input.ResponsibleID,
		Notes:         strings.TrimSpace(input.Notes),
		CreatedAt:     now,
	}

	var updated *entity.Product
	err = uc.txRunner.Run(ctx, func(
		ctx context.Context,
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		product, err := productRepo.GetByID(ctx, mov.ProductID)
		if err != nil {
			return err
		}
		if product.IsArchived() {
			return domain.ErrNotFound
		}
		// Chequeo previo con el valor leído; la autoridad es el guard de AdjustStock.
		if _, err := inventory.NextStock(product, movType, mov.Quantity); err != nil {
			return err
		}
		updated, err = productRepo.AdjustStock(ctx, product.ID, mov.Delta())
		if errors.Is(err, domain.ErrInsufficientStock) {
			return uc.insufficientStock(ctx, productRepo, product, mov.Quantity)
		}
		if err != nil {
			return err
		}
		return movementRepo.Create(ctx, mov)
	})
	if err != nil {
		uc.metrics.MovementRecorded(movType, resultOf(err))
		if resultOf(err) == ResultError {
			uc.log.Error().Err(err).
				Str("product_id", mov.ProductID).
				Str("type", movType).
				Int("quantity", mov.Quantity).
				Msg("registrar movimiento")
		}
		return nil, err
	}

	uc.metrics.MovementRecorded(movType, ResultOK)
	alert := inventory.LowStockAlert(updated)
	if alert != "" {
		uc.metrics.LowStockAlert()
	}
	uc.log.Info().
		Str("movement_id", mov.ID).
		Str("product_id", mov.ProductID).
		Str("type", movType).
		Int("quantity", mov.Quantity).
		Int("current_stock", updated.CurrentStock).
		Str("responsible_id", mov.ResponsibleID).
		Bool("low_stock", alert != "").
		Msg("movimiento de stock registrado")

	return &MovementResult{Movement: mov, Product: updated, Alert: alert}, nil
}

func (uc *MovementUseCase) validate(input MovementInput) error {
	if strings.TrimSpace(input.ProductID) == "" {
		return domain.NewValidationError("productId", "el producto es obligatorio")
	}
	if err := inventory.ValidateQuantity(input.Quantity); err != nil {
		return err
	}
	if input.ResponsibleID == "" {
		return domain.ErrUnauthorized
	}
	return nil
}

// insufficientStock relee el producto dentro de la transacción para informar el disponible real
// cuando el guard rechazó la salida por una escritura concurrente.
func (uc *MovementUseCase) insufficientStock(
	ctx context.Context,
	productRepo repository.ProductRepository,
	read *entity.Product,
	requested int,
) error {
	available := read.CurrentStock
	if current, err := productRepo.GetByID(ctx, read.ID); err == nil {
		available = current.CurrentStock
	}
	return &domain.InsufficientStockError{
		ProductName: read.Name,
		Available:   available,
		Requested:   requested,
	}
}

func resultOf(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return ResultInsufficientStock
	case errors.Is(err, domain.ErrConflict):
		return ResultConflict
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrInvalidInput):
		return ResultRejected
	default:
		return ResultError
	}
}

// truncateDate normaliza a fecha calendario UTC (00:00:00).
func truncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
