package auth

import (
	"context"
	"time"
)

// TokenStore lista de revocación de sesiones (jti) hasta su expiración.
type TokenStore interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
