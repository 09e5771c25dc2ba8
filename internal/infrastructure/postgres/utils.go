package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Kaua1102bit/avaliacao-saep/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}

// isConflict: serialization_failure (40001) o deadlock_detected (40P01).
func isConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

// isOutOfRange: numeric_value_out_of_range (22003).
func isOutOfRange(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "22003"
	}
	return false
}

// wrap traduce conflictos de concurrencia a domain.ErrConflict, valores fuera de rango a
// un error de validación y envuelve el resto.
func wrap(op string, err error) error {
	if isConflict(err) {
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	}
	if isOutOfRange(err) {
		return fmt.Errorf("%s: %w", op, domain.NewValidationError("", "valor numérico fuera de rango"))
	}
	return fmt.Errorf("%s: %w", op, err)
}

// likePattern arma un patrón ILIKE de subcadena escapando comodines.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}
