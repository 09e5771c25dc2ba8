package inventory

import (
	"context"
	"time"

	"github.com/Kaua1102bit/avaliacao-saep/internal/application/dto"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del store, pasando repositorios
// atados a esa transacción. El ctx recibido por fn es el que deben usar esos repositorios
// (en Mongo transporta la sesión). Si fn devuelve error se hace rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		ctx context.Context,
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}

// Metrics puerto de salida para los contadores del motor de stock.
type Metrics interface {
	MovementRecorded(movementType, result string)
	LowStockAlert()
}

// Resultados reportados a Metrics.
const (
	ResultOK                = "ok"
	ResultRejected          = "rejected"
	ResultInsufficientStock = "insufficient_stock"
	ResultConflict          = "conflict"
	ResultError             = "error"
)

// ReportGenerator genera el PDF del listado de movimientos.
type ReportGenerator interface {
	GenerateMovementReport(ctx context.Context, generatedAt time.Time, movements []dto.MovementDTO) ([]byte, error)
}

type noopMetrics struct{}

func (noopMetrics) MovementRecorded(string, string) {}
func (noopMetrics) LowStockAlert()                  {}
