package entity

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// MaxStock tope de current_stock y de la cantidad de un movimiento (columna INTEGER).
const MaxStock = math.MaxInt32

// Product representa un producto del catálogo.
// CurrentStock es un contador desnormalizado: solo cambia vía movimientos de stock.
type Product struct {
	ID           string
	Name         string
	Description  string
	Category     string
	Size         string
	Weight       decimal.Decimal // > 0
	Material     string
	CurrentStock int // nunca negativo
	MinStock     int // umbral de alerta de stock bajo
	Price        decimal.Decimal // >= 0
	CreatedAt    time.Time
	UpdatedAt    time.Time
	ArchivedAt   *time.Time // baja lógica: los movimientos históricos siguen resolviendo el producto
}

// IsArchived indica si el producto fue dado de baja.
func (p *Product) IsArchived() bool {
	return p.ArchivedAt != nil
}

// IsLowStock indica si el stock actual está en o por debajo del mínimo.
func (p *Product) IsLowStock() bool {
	return p.CurrentStock <= p.MinStock
}
