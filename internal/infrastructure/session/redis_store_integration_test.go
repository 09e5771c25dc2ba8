//go:build integration

package session_test

// Ejecutar con: go test -tags integration ./internal/infrastructure/session/... -v

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/Kaua1102bit/avaliacao-saep/internal/infrastructure/session"
)

func TestRedisStore_Integration(t *testing.T) {
	ctx := context.Background()

	redisC, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = redisC.Terminate(context.Background()) })

	url, err := redisC.ConnectionString(ctx)
	require.NoError(t, err)

	rdb, err := session.NewRedisClient(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	store := session.NewRedisStore(rdb)
	require.NoError(t, store.Ping(ctx))

	t.Run("revocado con TTL", func(t *testing.T) {
		require.NoError(t, store.Revoke(ctx, "jti-a", time.Now().Add(time.Minute)))

		revoked, err := store.IsRevoked(ctx, "jti-a")
		require.NoError(t, err)
		assert.True(t, revoked)

		ttl, err := rdb.TTL(ctx, "session:revoked:jti-a").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, time.Minute)
	})

	t.Run("token expirado no se guarda", func(t *testing.T) {
		require.NoError(t, store.Revoke(ctx, "jti-b", time.Now().Add(-time.Minute)))
		revoked, err := store.IsRevoked(ctx, "jti-b")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("URL inválida", func(t *testing.T) {
		_, err := session.NewRedisClient(ctx, "://no-es-url")
		assert.Error(t, err)
	})
}
