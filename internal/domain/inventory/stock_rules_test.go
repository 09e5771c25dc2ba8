package inventory_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kaua1102bit/avaliacao-saep/internal/domain"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/entity"
	"github.com/Kaua1102bit/avaliacao-saep/internal/domain/inventory"
)

func TestParseMovementType_AceptaAlias(t *testing.T) {
	cases := map[string]string{
		"entry":   entity.MovementTypeEntry,
		"ENTRADA": entity.MovementTypeEntry,
		" exit ":  entity.MovementTypeExit,
		"saida":   entity.MovementTypeExit,
		"saída":   entity.MovementTypeExit,
	}
	for raw, want := range cases {
		got, err := inventory.ParseMovementType(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
}

func TestParseMovementType_Invalido(t *testing.T) {
	_, err := inventory.ParseMovementType("transfer")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestValidateQuantity_NoPositiva(t *testing.T) {
	for _, q := range []int{0, -1, -100} {
		err := inventory.ValidateQuantity(q)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad %d", q)
	}
	assert.NoError(t, inventory.ValidateQuantity(1))
}

func TestValidateQuantity_TopeMaximo(t *testing.T) {
	assert.NoError(t, inventory.ValidateQuantity(entity.MaxStock))
	assert.ErrorIs(t, inventory.ValidateQuantity(entity.MaxStock+1), domain.ErrInvalidInput)
	assert.ErrorIs(t, inventory.ValidateQuantity(math.MaxInt), domain.ErrInvalidInput)
}

func TestNextStock_EntradaQueSuperaElMaximo(t *testing.T) {
	p := &entity.Product{Name: "Broca", CurrentStock: 1}

	_, err := inventory.NextStock(p, entity.MovementTypeEntry, entity.MaxStock)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.False(t, errors.Is(err, domain.ErrInsufficientStock), "una entrada nunca es stock insuficiente")

	next, err := inventory.NextStock(p, entity.MovementTypeEntry, entity.MaxStock-1)
	require.NoError(t, err)
	assert.Equal(t, entity.MaxStock, next)
}

func TestExceedsMaxStock(t *testing.T) {
	assert.False(t, inventory.ExceedsMaxStock(0, entity.MaxStock))
	assert.True(t, inventory.ExceedsMaxStock(entity.MaxStock, 1))
	assert.True(t, inventory.ExceedsMaxStock(1, math.MaxInt))
	assert.False(t, inventory.ExceedsMaxStock(entity.MaxStock, -5), "las salidas no cuentan")
}

func TestNextStock_SalidaMayorQueStock(t *testing.T) {
	p := &entity.Product{Name: "Luva", CurrentStock: 4, MinStock: 5}

	_, err := inventory.NextStock(p, entity.MovementTypeExit, 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var ise *domain.InsufficientStockError
	require.ErrorAs(t, err, &ise)
	assert.Equal(t, 4, ise.Available)
	assert.Equal(t, 10, ise.Requested)
	assert.Equal(t, 4, p.CurrentStock, "NextStock no debe mutar el producto")
}

func TestNextStock_SalidaExactaDejaCero(t *testing.T) {
	p := &entity.Product{CurrentStock: 7}
	next, err := inventory.NextStock(p, entity.MovementTypeExit, 7)
	require.NoError(t, err)
	assert.Equal(t, 0, next)
}

func TestNextStock_Entrada(t *testing.T) {
	p := &entity.Product{CurrentStock: 0}
	next, err := inventory.NextStock(p, entity.MovementTypeEntry, 100)
	require.NoError(t, err)
	assert.Equal(t, 100, next)
}

func TestLowStockAlert(t *testing.T) {
	assert.Empty(t, inventory.LowStockAlert(&entity.Product{Name: "A", CurrentStock: 6, MinStock: 5}))
	assert.NotEmpty(t, inventory.LowStockAlert(&entity.Product{Name: "A", CurrentStock: 5, MinStock: 5}), "en el mínimo también alerta")
	assert.Contains(t, inventory.LowStockAlert(&entity.Product{Name: "Broca", CurrentStock: 4, MinStock: 5}), "Broca")
}

func TestLedgerBalance(t *testing.T) {
	movs := []*entity.StockMovement{
		{Type: entity.MovementTypeEntry, Quantity: 10},
		{Type: entity.MovementTypeExit, Quantity: 6},
		{Type: entity.MovementTypeEntry, Quantity: 3},
	}
	assert.Equal(t, 7, inventory.LedgerBalance(movs))
	assert.Equal(t, 0, inventory.LedgerBalance(nil))
}

func TestReorderQuantity(t *testing.T) {
	cases := []struct {
		current, min, ideal, suggested int
	}{
		{current: 4, min: 5, ideal: 8, suggested: 4},
		{current: 0, min: 10, ideal: 15, suggested: 15},
		{current: 0, min: 0, ideal: 1, suggested: 1},
		{current: 1, min: 1, ideal: 2, suggested: 1},
		{current: 9, min: 5, ideal: 8, suggested: 0},
		{current: 0, min: entity.MaxStock, ideal: entity.MaxStock, suggested: entity.MaxStock},
	}
	for _, tc := range cases {
		ideal, suggested := inventory.ReorderQuantity(tc.current, tc.min)
		assert.Equal(t, tc.ideal, ideal, "ideal %+v", tc)
		assert.Equal(t, tc.suggested, suggested, "sugerido %+v", tc)
	}
}
