//go:build integration

package postgres_test

// Tests de integración del adaptador PostgreSQL con un contenedor real.
// Ejecutar con: go test -tags integration ./internal/infrastructure/postgres/... -v

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/Kaua1102bit/avaliacao-saep/internal/application/dto"
	"github.com/Kaua1102bit/avaliacao-saep/internal/application/inventory"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/entity"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/repository"
	"github.com/Kaua1102bit/avaliacao-saep/internal/infrastructure/postgres"
	"github.com/Kaua1102bit/avaliacao-saep/pkg/config"
)

// ── Helpers ───────────────────────────────────────────────────────────────────

func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("estoque_test"),
		tcpostgres.WithUsername("estoque"),
		tcpostgres.WithPassword("estoque"),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	dsn, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool))
	require.NoError(t, postgres.Migrate(ctx, pool), "las migraciones son idempotentes")
	return pool
}

func seedUser(t *testing.T, pool *pgxpool.Pool, id string) {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, postgres.NewUserRepository(pool).Create(context.Background(), &entity.User{
		ID: id, Username: "user-" + id, PasswordHash: "x", Name: "Usuario " + id, Role: entity.RoleUser,
		CreatedAt: now, UpdatedAt: now,
	}))
}

func seedProduct(t *testing.T, pool *pgxpool.Pool, id string, stock, min int) {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, postgres.NewProductRepository(pool).Create(context.Background(), &entity.Product{
		ID: id, Name: "Produto " + id, Category: "Ferramentas",
		Weight: decimal.RequireFromString("0.250"), Price: decimal.RequireFromString("39.50"),
		CurrentStock: stock, MinStock: min, CreatedAt: now, UpdatedAt: now,
	}))
}

func newUseCase(pool *pgxpool.Pool) *inventory.MovementUseCase {
	return inventory.NewMovementUseCase(
		postgres.NewTxRunner(pool),
		postgres.NewProductRepository(pool),
		postgres.NewStockMovementRepository(pool),
		postgres.NewUserRepository(pool),
	)
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestPostgres_FlujoCompleto(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	seedUser(t, pool, "u1")
	seedProduct(t, pool, "p1", 10, 5)
	uc := newUseCase(pool)

	res, err := uc.RecordMovement(ctx, inventory.MovementInput{ProductID: "p1", Type: "exit", Quantity: 6, ResponsibleID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Product.CurrentStock)
	assert.NotEmpty(t, res.Alert)
	assert.True(t, res.Product.Price.Equal(decimal.RequireFromString("39.50")), "codec NUMERIC -> decimal")

	_, err = uc.RecordMovement(ctx, inventory.MovementInput{ProductID: "p1", Type: "exit", Quantity: 10, ResponsibleID: "u1"})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	bal, err := uc.LedgerBalance(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 4, bal.CurrentStock)
	assert.Equal(t, -6, bal.LedgerBalance, "el stock sembrado sin movimiento de apertura no está en el libro")

	list, err := uc.ListMovements(ctx, dto.MovementListRequest{ProductID: "p1"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Usuario u1", list.Items[0].Responsible.Name)
	assert.Equal(t, "Produto p1", list.Items[0].Product.Name)
}

func TestPostgres_AdjustStockGuardYArchivado(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	seedProduct(t, pool, "p1", 3, 0)
	repo := postgres.NewProductRepository(pool)

	_, err := repo.AdjustStock(ctx, "p1", -4)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = repo.AdjustStock(ctx, "missing", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, repo.Archive(ctx, "p1"))
	_, err = repo.AdjustStock(ctx, "p1", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	p, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 3, p.CurrentStock)
	assert.NotNil(t, p.ArchivedAt)
}

func TestPostgres_AdjustStockCercaDelMaximo(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	seedUser(t, pool, "u1")
	seedProduct(t, pool, "p1", 1, 0)
	repo := postgres.NewProductRepository(pool)

	_, err := repo.AdjustStock(ctx, "p1", math.MaxInt)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	p, err := repo.AdjustStock(ctx, "p1", entity.MaxStock-1)
	require.NoError(t, err)
	assert.Equal(t, entity.MaxStock, p.CurrentStock)

	_, err = repo.AdjustStock(ctx, "p1", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.NotErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = newUseCase(pool).RecordMovement(ctx, inventory.MovementInput{ProductID: "p1", Type: "entry", Quantity: 1, ResponsibleID: "u1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "una entrada nunca termina en 500 por desborde")
}

func TestPostgres_RollbackSiFallaElAsiento(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	seedProduct(t, pool, "p1", 5, 0)

	// responsible_id inexistente viola la FK: el UPDATE previo debe revertirse.
	err := postgres.NewTxRunner(pool).Run(ctx, func(ctx context.Context, products repository.ProductRepository, movements repository.StockMovementRepository) error {
		if _, err := products.AdjustStock(ctx, "p1", -2); err != nil {
			return err
		}
		return movements.Create(ctx, &entity.StockMovement{
			ID: "m1", ProductID: "p1", Type: entity.MovementTypeExit, Quantity: 2,
			Date: time.Now().UTC(), ResponsibleID: "ghost", CreatedAt: time.Now().UTC(),
		})
	})
	require.Error(t, err)

	p, err := postgres.NewProductRepository(pool).GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 5, p.CurrentStock)
}

func TestPostgres_SalidasConcurrentes(t *testing.T) {
	const (
		workers = 12
		qty     = 2
		k       = 5
	)
	pool := setupPool(t)
	ctx := context.Background()
	seedUser(t, pool, "u1")
	seedProduct(t, pool, "p1", k*qty, 0)
	uc := newUseCase(pool)

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.RecordMovement(ctx, inventory.MovementInput{ProductID: "p1", Type: "exit", Quantity: qty, ResponsibleID: "u1"})
			if err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
		}()
	}
	wg.Wait()

	assert.Equal(t, k, ok)
	p, err := postgres.NewProductRepository(pool).GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 0, p.CurrentStock)
	n, err := postgres.NewStockMovementRepository(pool).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, k, n)
}

func TestPostgres_UsernameUnicoSinMayusculas(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	repo := postgres.NewUserRepository(pool)
	now := time.Now().UTC()
	require.NoError(t, repo.Create(ctx, &entity.User{ID: "a", Username: "Maria", PasswordHash: "x", Name: "M", Role: "user", CreatedAt: now, UpdatedAt: now}))

	err := repo.Create(ctx, &entity.User{ID: "b", Username: "maria", PasswordHash: "x", Name: "M", Role: "user", CreatedAt: now, UpdatedAt: now})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	u, err := repo.GetByUsername(ctx, "MARIA")
	require.NoError(t, err)
	assert.Equal(t, "a", u.ID)
}

func TestPostgres_BusquedaEscapaComodines(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()
	for i, name := range []string{"Broca 100%", "Broca 10"} {
		now := time.Now().UTC()
		require.NoError(t, postgres.NewProductRepository(pool).Create(ctx, &entity.Product{
			ID: fmt.Sprintf("p%d", i), Name: name, Weight: decimal.NewFromInt(1), Price: decimal.Zero,
			CreatedAt: now, UpdatedAt: now,
		}))
	}
	items, total, err := postgres.NewProductRepository(pool).List(ctx, repository.ProductFilter{Search: "100%"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Broca 100%", items[0].Name)
}
