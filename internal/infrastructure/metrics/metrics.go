// Package metrics expone los contadores Prometheus del motor de stock y de la API HTTP.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Kaua1102bit/avaliacao-saep/internal/application/inventory"
)

var _ inventory.Metrics = (*Prometheus)(nil)

// Prometheus agrupa los collectors de la aplicación sobre un registry propio.
type Prometheus struct {
	registry *prometheus.Registry

	// movements cuenta movimientos por tipo y resultado.
	// Labels:
	//   - type: "entry", "exit", "invalid"
	//   - result: "ok", "rejected", "insufficient_stock", "conflict", "error"
	movements *prometheus.CounterVec

	lowStockAlerts prometheus.Counter

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New registra los collectors (más los de proceso y runtime de Go) en un registry nuevo.
func New() *Prometheus {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Prometheus{
		registry: reg,
		movements: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stock_movements_total",
				Help: "Total de movimientos de stock procesados",
			},
			[]string{"type", "result"},
		),
		lowStockAlerts: f.NewCounter(prometheus.CounterOpts{
			Name: "stock_low_stock_alerts_total",
			Help: "Total de alertas de stock bajo emitidas",
		}),
		httpRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total de requests HTTP atendidas",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Latencia de las requests HTTP en segundos",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"method", "route"},
		),
	}
}

// Registry devuelve el registry para montarlo en /metrics.
func (p *Prometheus) Registry() *prometheus.Registry { return p.registry }

// MovementRecorded implementa inventory.Metrics.
func (p *Prometheus) MovementRecorded(movementType, result string) {
	p.movements.WithLabelValues(movementType, result).Inc()
}

// LowStockAlert implementa inventory.Metrics.
func (p *Prometheus) LowStockAlert() { p.lowStockAlerts.Inc() }

// ObserveHTTP registra una request ya respondida. route es el patrón (/api/products/:id), no la URL.
func (p *Prometheus) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
