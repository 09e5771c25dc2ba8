package inventory

import "github.com/Kaua1102bit/avaliacao-saep/internal/domain/entity"

// ReorderQuantity calcula el stock ideal (1.5 veces el mínimo, y siempre por encima de él)
// y la cantidad a pedir para alcanzarlo. Nunca devuelve cantidades negativas.
func ReorderQuantity(current, min int) (ideal, suggested int) {
	if min < 0 {
		min = 0
	}
	ideal = (min*3 + 1) / 2 // ceil(1.5 * min)
	if ideal <= min {
		ideal = min + 1
	}
	if ideal > entity.MaxStock {
		ideal = entity.MaxStock
	}
	suggested = ideal - current
	if suggested < 0 {
		suggested = 0
	}
	return ideal, suggested
}
