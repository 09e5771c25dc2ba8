// Package storage abre el adaptador de persistencia elegido por STORE_DRIVER.
package storage

import (
	"context"
	"fmt"

	"github.com/Kaua1102bit/avaliacao-saep/internal/application/inventory"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/repository"
	"github.com/Kaua1102bit/avaliacao-saep/internal/infrastructure/memory"
	infmongo "github.com/Kaua1102bit/avaliacao-saep/internal/infrastructure/mongo"
	"github.com/Kaua1102bit/avaliacao-saep/internal/infrastructure/postgres"
	"github.com/Kaua1102bit/avaliacao-saep/pkg/config"
	"github.com/Kaua1102bit/avaliacao-saep/pkg/logger"
)

// Stores repositorios y transacciones de un adaptador.
type Stores struct {
	Products  repository.ProductRepository
	Movements repository.StockMovementRepository
	Users     repository.UserRepository
	Tx        inventory.TxRunner

	ping  func(ctx context.Context) error
	close func()
}

// Ping verifica la conexión (health check).
func (s *Stores) Ping(ctx context.Context) error { return s.ping(ctx) }

// Close libera conexiones.
func (s *Stores) Close() { s.close() }

// Open conecta el driver configurado. En postgres aplica migraciones; en mongo crea índices.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Stores, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migraciones: %w", err)
		}
		log.Info().Msg("PostgreSQL listo")
		return &Stores{
			Products:  postgres.NewProductRepository(pool),
			Movements: postgres.NewStockMovementRepository(pool),
			Users:     postgres.NewUserRepository(pool),
			Tx:        postgres.NewTxRunner(pool),
			ping:      pool.Ping,
			close:     pool.Close,
		}, nil

	case config.DriverMongo:
		st, err := infmongo.Connect(ctx, cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("conexión a MongoDB: %w", err)
		}
		if err := st.EnsureIndexes(ctx); err != nil {
			_ = st.Close(context.Background())
			return nil, fmt.Errorf("índices MongoDB: %w", err)
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("MongoDB listo")
		return &Stores{
			Products:  st.Products(),
			Movements: st.Movements(),
			Users:     st.Users(),
			Tx:        st,
			ping:      st.Ping,
			close:     func() { _ = st.Close(context.Background()) },
		}, nil

	case config.DriverMemory:
		log.Warn().Msg("STORE_DRIVER=memory: los datos se pierden al reiniciar")
		return Memory(memory.NewStore()), nil
	}
	return nil, fmt.Errorf("STORE_DRIVER desconocido: %q", cfg.Store.Driver)
}

// Memory envuelve un store en memoria ya creado.
func Memory(st *memory.Store) *Stores {
	return &Stores{
		Products:  st.Products(),
		Movements: st.Movements(),
		Users:     st.Users(),
		Tx:        st,
		ping:      func(context.Context) error { return nil },
		close:     func() {},
	}
}
