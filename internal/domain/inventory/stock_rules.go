// Package inventory contiene las reglas puras del motor de stock (servicio de dominio):
// validación de movimientos, cálculo del nuevo stock y señal de stock bajo.
package inventory

import (
	"fmt"
	"strings"

	"github.com/Kaua1102bit/avaliacao-saep/internal/domain"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/entity"
)

// ParseMovementType normaliza el tipo de movimiento.
// Acepta además los valores en portugués del cliente web ("entrada", "saida"/"saída").
func ParseMovementType(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case entity.MovementTypeEntry, "entrada", "in":
		return entity.MovementTypeEntry, nil
	case entity.MovementTypeExit, "saida", "saída", "out":
		return entity.MovementTypeExit, nil
	}
	return "", domain.NewValidationError("type", "tipo de movimiento inválido (use entry o exit)")
}

// ValidateQuantity rechaza cantidades no positivas o mayores que entity.MaxStock.
func ValidateQuantity(quantity int) error {
	if quantity <= 0 {
		return domain.NewValidationError("quantity", "la cantidad debe ser un entero mayor que cero")
	}
	if quantity > entity.MaxStock {
		return domain.NewValidationError("quantity", fmt.Sprintf("la cantidad no puede superar %d", entity.MaxStock))
	}
	return nil
}

// StockOverflowError describe una entrada que dejaría el stock por encima de entity.MaxStock.
func StockOverflowError(current int) error {
	return domain.NewValidationError("quantity",
		fmt.Sprintf("el stock resultante superaría el máximo permitido (%d, actual %d)", entity.MaxStock, current))
}

// ExceedsMaxStock indica si sumar delta a current deja el stock por encima de entity.MaxStock.
// No desborda aunque delta sea muy grande.
func ExceedsMaxStock(current, delta int) bool {
	return delta > 0 && current > entity.MaxStock-delta
}

// Delta devuelve la variación con signo para el tipo dado.
func Delta(movementType string, quantity int) int {
	if movementType == entity.MovementTypeExit {
		return -quantity
	}
	return quantity
}

// NextStock calcula el stock resultante sin mutar el producto.
// Una salida mayor que el stock actual devuelve *domain.InsufficientStockError.
func NextStock(p *entity.Product, movementType string, quantity int) (int, error) {
	if err := ValidateQuantity(quantity); err != nil {
		return 0, err
	}
	if movementType == entity.MovementTypeEntry && ExceedsMaxStock(p.CurrentStock, quantity) {
		return 0, StockOverflowError(p.CurrentStock)
	}
	if movementType == entity.MovementTypeExit && quantity > p.CurrentStock {
		return 0, &domain.InsufficientStockError{
			ProductName: p.Name,
			Available:   p.CurrentStock,
			Requested:   quantity,
		}
	}
	return p.CurrentStock + Delta(movementType, quantity), nil
}

// LowStockAlert devuelve el mensaje informativo cuando el stock quedó en o por debajo del mínimo.
// Cadena vacía si no hay alerta. Nunca bloquea el movimiento.
func LowStockAlert(p *entity.Product) string {
	if !p.IsLowStock() {
		return ""
	}
	return fmt.Sprintf("Alerta: el stock de %q quedó en %d, en o por debajo del mínimo (%d)",
		p.Name, p.CurrentStock, p.MinStock)
}

// LedgerBalance reconstruye el stock a partir del libro: entradas menos salidas.
func LedgerBalance(movements []*entity.StockMovement) int {
	total := 0
	for _, m := range movements {
		total += m.Delta()
	}
	return total
}
