package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kaua1102bit/avaliacao-saep/internal/application/inventory"
)

func TestPrometheus_MovementRecorded(t *testing.T) {
	p := New()

	p.MovementRecorded("exit", inventory.ResultOK)
	p.MovementRecorded("exit", inventory.ResultOK)
	p.MovementRecorded("exit", inventory.ResultInsufficientStock)

	assert.Equal(t, 2.0, testutil.ToFloat64(p.movements.WithLabelValues("exit", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(p.movements.WithLabelValues("exit", "insufficient_stock")))
	assert.Equal(t, 0.0, testutil.ToFloat64(p.movements.WithLabelValues("entry", "ok")))
}

func TestPrometheus_LowStockAlert(t *testing.T) {
	p := New()
	p.LowStockAlert()
	assert.Equal(t, 1.0, testutil.ToFloat64(p.lowStockAlerts))
}

func TestPrometheus_ObserveHTTP(t *testing.T) {
	p := New()
	p.ObserveHTTP("GET", "/api/products", 200, 15*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(p.httpRequests.WithLabelValues("GET", "/api/products", "200")))
	assert.Equal(t, 1, testutil.CollectAndCount(p.httpDuration))
}

func TestPrometheus_RegistriesIndependientes(t *testing.T) {
	a, b := New(), New()
	a.LowStockAlert()

	assert.Equal(t, 0.0, testutil.ToFloat64(b.lowStockAlerts))

	families, err := a.Registry().Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["stock_low_stock_alerts_total"])
}
