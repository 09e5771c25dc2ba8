package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kaua1102bit/avaliacao-saep/internal/infrastructure/storage"
	"github.com/Kaua1102bit/avaliacao-saep/pkg/config"
	"github.com/Kaua1102bit/avaliacao-saep/pkg/logger"
)

func TestOpen_Memory(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: config.DriverMemory}}
	st, err := storage.Open(context.Background(), cfg, logger.Nop())
	require.NoError(t, err)
	defer st.Close()

	assert.NoError(t, st.Ping(context.Background()))
	n, err := st.Products.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOpen_DriverDesconocido(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: "sqlite"}}
	_, err := storage.Open(context.Background(), cfg, logger.Nop())
	assert.ErrorContains(t, err, "sqlite")
}
