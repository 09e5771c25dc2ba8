package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kaua1102bit/avaliacao-saep/internal/application/dto"
	"github.com/Kaua1102bit/avaliacao-saep/internal/application/usecase"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/entity"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/repository"
	"github.com/Kaua1102bit/avaliacao-saep/internal/infrastructure/memory"
)

func newProductUseCase() (*usecase.ProductUseCase, *memory.Store) {
	store := memory.NewStore()
	return usecase.NewProductUseCase(store.Products(), store), store
}

func validCreate(name string, stock int) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Name: name, Category: "Ferramentas", Weight: decimal.RequireFromString("1.2"),
		Price: decimal.RequireFromString("299.90"), CurrentStock: stock, MinStock: 10,
	}
}

func TestProductUseCase_CreateConSaldoInicial(t *testing.T) {
	uc, store := newProductUseCase()
	ctx := context.Background()

	p, err := uc.Create(ctx, "u-1", validCreate("Parafusadeira", 60))
	require.NoError(t, err)
	assert.Equal(t, 60, p.CurrentStock)

	movs, total, err := store.Movements().List(ctx, repository.MovementFilter{ProductID: p.ID})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	assert.Equal(t, "entry", movs[0].Type)
	assert.Equal(t, 60, movs[0].Quantity)
	assert.Equal(t, usecase.OpeningBalanceNote, movs[0].Notes)
	assert.Equal(t, "u-1", movs[0].ResponsibleID)

	sum, err := store.Movements().SumByProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.CurrentStock, sum)
}

func TestProductUseCase_CreateSinStockNoGeneraMovimiento(t *testing.T) {
	uc, store := newProductUseCase()
	ctx := context.Background()

	p, err := uc.Create(ctx, "u-1", validCreate("Broca", 0))
	require.NoError(t, err)
	assert.Equal(t, 0, p.CurrentStock)
	assert.True(t, p.LowStock)

	n, err := store.Movements().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestProductUseCase_CreateValoresInvalidos(t *testing.T) {
	uc, store := newProductUseCase()
	in := validCreate("Broca", 0)
	in.Weight = decimal.Zero
	in.Price = decimal.NewFromInt(-1)

	_, err := uc.Create(context.Background(), "u-1", in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "weight")
	assert.Contains(t, err.Error(), "price")

	n, _ := store.Products().Count(context.Background())
	assert.Equal(t, 0, n)
}

func TestProductUseCase_CreateFueraDeRangoDeColumnas(t *testing.T) {
	uc, store := newProductUseCase()
	ctx := context.Background()

	cases := map[string]func(in *dto.CreateProductRequest){
		"weight": func(in *dto.CreateProductRequest) { in.Weight = decimal.RequireFromString("0.0004") },
		"price":  func(in *dto.CreateProductRequest) { in.Price = decimal.RequireFromString("10000000000") },
		"currentStock": func(in *dto.CreateProductRequest) {
			in.CurrentStock = entity.MaxStock + 1
		},
	}
	for field, mutate := range cases {
		in := validCreate("Broca", 0)
		mutate(&in)
		_, err := uc.Create(ctx, "u-1", in)
		require.ErrorIs(t, err, domain.ErrInvalidInput, field)
		assert.Contains(t, err.Error(), field)
	}

	in := validCreate("Broca", 0)
	in.Weight = decimal.RequireFromString("0.0005")
	in.Price = decimal.RequireFromString("9999999999.99")
	_, err := uc.Create(ctx, "u-1", in)
	require.NoError(t, err, "los límites inclusivos se aceptan")

	n, _ := store.Products().Count(ctx)
	assert.Equal(t, 1, n)
}

func TestProductUseCase_UpdateNoCambiaStock(t *testing.T) {
	uc, _ := newProductUseCase()
	ctx := context.Background()
	p, err := uc.Create(ctx, "u-1", validCreate("Broca", 30))
	require.NoError(t, err)

	name := "Broca 10mm"
	minStock := 40
	out, err := uc.Update(ctx, p.ID, dto.UpdateProductRequest{Name: &name, MinStock: &minStock})
	require.NoError(t, err)
	assert.Equal(t, "Broca 10mm", out.Name)
	assert.Equal(t, 30, out.CurrentStock)
	assert.True(t, out.LowStock)
}

func TestProductUseCase_DeleteArchiva(t *testing.T) {
	uc, store := newProductUseCase()
	ctx := context.Background()
	p, err := uc.Create(ctx, "u-1", validCreate("Broca", 5))
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, p.ID))

	_, err = uc.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	list, err := uc.List(ctx, dto.ProductListRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)

	raw, err := store.Products().GetByID(ctx, p.ID)
	require.NoError(t, err, "el registro se conserva para el historial")
	assert.NotNil(t, raw.ArchivedAt)
}

func TestProductUseCase_ListBusquedaYStockBajo(t *testing.T) {
	uc, _ := newProductUseCase()
	ctx := context.Background()
	_, err := uc.Create(ctx, "u-1", validCreate("Luva de Proteção", 250))
	require.NoError(t, err)
	_, err = uc.Create(ctx, "u-1", validCreate("Óculos de Proteção", 5))
	require.NoError(t, err)

	all, err := uc.List(ctx, dto.ProductListRequest{Search: "protecao"})
	require.NoError(t, err)
	assert.Equal(t, 2, all.Page.Total)

	low, err := uc.List(ctx, dto.ProductListRequest{LowStock: true})
	require.NoError(t, err)
	require.Len(t, low.Items, 1)
	assert.Equal(t, "Óculos de Proteção", low.Items[0].Name)
}
