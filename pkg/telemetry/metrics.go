package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/polisai/seclib/pkg/lattice"
)

// Metrics counts crossing activity in a private Prometheus registry.
type Metrics struct {
	crossingsTotal    *prometheus.CounterVec
	proofsIssuedTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics creates the crossing metrics and registers them on a fresh
// registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		crossingsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seclib_crossings_total",
				Help: "Boundary crossing attempts by operation, level pair, and outcome",
			},
			[]string{"op", "candidate", "required", "outcome"},
		),
		proofsIssuedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seclib_proofs_issued_total",
				Help: "Dominance proofs issued by level pair",
			},
			[]string{"candidate", "required"},
		),
		registry: registry,
	}

	registry.MustRegister(m.crossingsTotal, m.proofsIssuedTotal)
	return m
}

// ObserveCrossing implements lattice.Observer.
func (m *Metrics) ObserveCrossing(e lattice.Event) {
	outcome := "denied"
	if e.Granted {
		outcome = "granted"
	}
	m.crossingsTotal.WithLabelValues(string(e.Op), string(e.Candidate), string(e.Required), outcome).Inc()

	if e.Op == lattice.OpProve && e.Granted {
		m.proofsIssuedTotal.WithLabelValues(string(e.Candidate), string(e.Required)).Inc()
	}
}

// Handler returns an HTTP handler serving this registry, for embedding in an
// application's admin server.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
