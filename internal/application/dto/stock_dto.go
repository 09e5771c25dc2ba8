package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout formato de las fechas calendario de movimientos.
const DateLayout = "2006-01-02"

// RecordMovementRequest body para POST /api/stock/movements.
// Type acepta entry/exit y los alias entrada/saida. Date vacío = hoy (UTC).
type RecordMovementRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Type      string `json:"type" validate:"required"`
	Quantity  int    `json:"quantity" validate:"max=2147483647"`
	Date      string `json:"date,omitempty"`
	Notes     string `json:"notes,omitempty" validate:"max=500"`
}

// ProductRefDTO referencia resumida al producto de un movimiento.
type ProductRefDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// UserRefDTO referencia resumida al responsable de un movimiento.
type UserRefDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// MovementDTO movimiento del libro con sus referencias resueltas.
// Product/Responsible son nil si el registro referenciado ya no existe.
type MovementDTO struct {
	ID          string         `json:"id"`
	ProductID   string         `json:"productId"`
	Type        string         `json:"type"`
	Quantity    int            `json:"quantity"`
	Date        string         `json:"date"`
	Notes       string         `json:"notes,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	Product     *ProductRefDTO `json:"product"`
	Responsible *UserRefDTO    `json:"responsible"`
}

// RecordMovementResponse resultado del registro: Alert es informativo y nunca bloquea.
type RecordMovementResponse struct {
	Movement MovementDTO `json:"movement"`
	Alert    string      `json:"alert,omitempty"`
}

// MovementListRequest filtros de GET /api/stock/movements.
type MovementListRequest struct {
	PageRequest
	ProductID string `query:"product"`
	Type      string `query:"type"`
	From      string `query:"from"`
	To        string `query:"to"`
}

// MovementListResponse lista paginada del libro, más recientes primero.
type MovementListResponse struct {
	Items []MovementDTO `json:"items"`
	Page  PageResponse  `json:"page"`
}

// LedgerBalanceDTO conciliación entre el contador y el libro de un producto.
type LedgerBalanceDTO struct {
	ProductID     string `json:"productId"`
	CurrentStock  int    `json:"currentStock"`
	LedgerBalance int    `json:"ledgerBalance"`
	Consistent    bool   `json:"consistent"`
}

// ReplenishmentSuggestionDTO producto en o por debajo del mínimo con la cantidad sugerida de pedido.
type ReplenishmentSuggestionDTO struct {
	ProductID          string          `json:"productId"`
	Name               string          `json:"name"`
	Category           string          `json:"category"`
	CurrentStock       int             `json:"currentStock"`
	MinStock           int             `json:"minStock"`
	IdealStock         int             `json:"idealStock"`
	SuggestedOrderQty  int             `json:"suggestedOrderQty"`
	UnitPrice          decimal.Decimal `json:"unitPrice"`
	EstimatedValue     decimal.Decimal `json:"estimatedValue"`
	UnitsOutLast90Days int             `json:"unitsOutLast90Days"`
	Priority           int             `json:"priority"` // 1 = más urgente
}

// ReplenishmentResponse salida de GET /api/stock/replenishment.
type ReplenishmentResponse struct {
	Items       []ReplenishmentSuggestionDTO `json:"items"`
	GeneratedAt time.Time                    `json:"generatedAt"`
}
