package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kaua1102bit/avaliacao-saep/internal/application/inventory"
)

func TestReplenishment_PrioridadPorSalidasRecientes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	today := time.Now().UTC()

	f.addProduct(t, "a", 20, 5) // sin stock bajo: no aparece
	f.addProduct(t, "b", 12, 5)
	f.addProduct(t, "c", 30, 10)
	f.addProduct(t, "d", 3, 4)

	exit := func(id string, qty int, date time.Time) {
		t.Helper()
		_, err := f.uc.RecordMovement(ctx, inventory.MovementInput{
			ProductID: id, Type: "exit", Quantity: qty, Date: date, ResponsibleID: testUserID,
		})
		require.NoError(t, err)
	}
	exit("b", 8, today)                      // b: 4/5, 8 unidades recientes
	exit("c", 25, today.AddDate(0, 0, -120)) // c: 5/10, salida fuera de la ventana

	uc := inventory.NewReplenishmentUseCase(f.store.Products(), f.store.Movements())
	out, err := uc.Suggestions(ctx)
	require.NoError(t, err)
	require.Len(t, out.Items, 3)

	b := out.Items[0]
	assert.Equal(t, "b", b.ProductID, "más salidas recientes primero")
	assert.Equal(t, 1, b.Priority)
	assert.Equal(t, 8, b.UnitsOutLast90Days)
	assert.Equal(t, 8, b.IdealStock)
	assert.Equal(t, 4, b.SuggestedOrderQty)
	assert.Equal(t, "40", b.EstimatedValue.String())

	c := out.Items[1]
	assert.Equal(t, "c", c.ProductID, "sin rotación: mayor déficit antes")
	assert.Equal(t, 0, c.UnitsOutLast90Days)
	assert.Equal(t, 15, c.IdealStock)
	assert.Equal(t, 10, c.SuggestedOrderQty)

	d := out.Items[2]
	assert.Equal(t, "d", d.ProductID)
	assert.Equal(t, 3, d.Priority)
	assert.Equal(t, 3, d.SuggestedOrderQty)
}

func TestReplenishment_SinStockBajo(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "a", 20, 5)

	out, err := inventory.NewReplenishmentUseCase(f.store.Products(), f.store.Movements()).
		Suggestions(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, out.Items)
	assert.Empty(t, out.Items)
}
