package game

import (
	"github.com/impactgrid/impactgrid/internal/world"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the simulation's Prometheus collectors. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	donations  *prometheus.CounterVec
	dollars    *prometheus.CounterVec
	placements *prometheus.CounterVec
	stalls     *prometheus.CounterVec
	pending    *prometheus.GaugeVec
	resets     prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		donations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "impactgrid",
			Name:      "donations_total",
			Help:      "Donations received, by category.",
		}, []string{"category"}),
		dollars: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "impactgrid",
			Name:      "donated_dollars_total",
			Help:      "Dollars donated, by category.",
		}, []string{"category"}),
		placements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "impactgrid",
			Name:      "placements_total",
			Help:      "Successful grid placements, by category and policy rule.",
		}, []string{"category", "rule"}),
		stalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "impactgrid",
			Name:      "placement_stalls_total",
			Help:      "Purchase runs ended early because no placement was possible.",
		}, []string{"category"}),
		pending: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "impactgrid",
			Name:      "pending_placements",
			Help:      "Placements still owed by running purchase sequences.",
		}, []string{"category"}),
		resets: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "impactgrid",
			Name:      "resets_total",
			Help:      "Full simulation resets.",
		}),
	}
	reg.MustRegister(m.donations, m.dollars, m.placements, m.stalls, m.pending, m.resets)
	return m
}

func (m *Metrics) donation(c world.Category, amount int) {
	if m == nil {
		return
	}
	m.donations.WithLabelValues(c.String()).Inc()
	m.dollars.WithLabelValues(c.String()).Add(float64(amount))
}

func (m *Metrics) placed(c world.Category, rule string) {
	if m == nil {
		return
	}
	m.placements.WithLabelValues(c.String(), rule).Inc()
}

func (m *Metrics) stalled(c world.Category) {
	if m == nil {
		return
	}
	m.stalls.WithLabelValues(c.String()).Inc()
}

func (m *Metrics) setPending(c world.Category, n int) {
	if m == nil {
		return
	}
	m.pending.WithLabelValues(c.String()).Set(float64(n))
}

func (m *Metrics) reset() {
	if m == nil {
		return
	}
	m.resets.Inc()
	for _, c := range world.Categories {
		m.pending.WithLabelValues(c.String()).Set(0)
	}
}
