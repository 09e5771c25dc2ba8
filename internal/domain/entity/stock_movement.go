package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeEntry = "entry" // entrada
	MovementTypeExit  = "exit"  // salida
)

// StockMovement representa un asiento inmutable del libro de movimientos.
type StockMovement struct {
	ID            string
	ProductID     string
	Type          string    // entry, exit
	Quantity      int       // siempre positivo; el signo lo da Type
	Date          time.Time // fecha calendario informada por el usuario (UTC, 00:00)
	ResponsibleID string    // UserID
	Notes         string
	CreatedAt     time.Time
}

// Delta devuelve la variación que el movimiento aplica al stock del producto.
func (m *StockMovement) Delta() int {
	if m.Type == MovementTypeExit {
		return -m.Quantity
	}
	return m.Quantity
}
