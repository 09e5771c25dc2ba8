package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Username     string // único
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string // nombre para mostrar
	Role         string // admin, user
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
