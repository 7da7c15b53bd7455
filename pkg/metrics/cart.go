package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CartMetrics records cart store activity.
type CartMetrics struct {
	mutations          *prometheus.CounterVec
	durabilityWarnings *prometheus.CounterVec
	lines              prometheus.Gauge
}

// NewCartMetrics registers the cart metrics on the provided registerer. A nil
// registerer yields a no-op recorder.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart mutations applied, by operation.",
	}, []string{"op"})
	durabilityWarnings := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_durability_warnings_total",
		Help: "Cart persistence failures recovered in memory, by operation.",
	}, []string{"op"})
	lines := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "cart_lines",
		Help: "Distinct lines currently in the cart.",
	})
	reg.MustRegister(mutations, durabilityWarnings, lines)
	return &CartMetrics{
		mutations:          mutations,
		durabilityWarnings: durabilityWarnings,
		lines:              lines,
	}
}

// IncMutation counts an applied mutation.
func (c *CartMetrics) IncMutation(op string) {
	if c == nil || c.mutations == nil {
		return
	}
	c.mutations.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncDurabilityWarning counts a swallowed persistence failure.
func (c *CartMetrics) IncDurabilityWarning(op string) {
	if c == nil || c.durabilityWarnings == nil {
		return
	}
	c.durabilityWarnings.WithLabelValues(normalizeLabel(op)).Inc()
}

// SetLines records the current line count.
func (c *CartMetrics) SetLines(n int) {
	if c == nil || c.lines == nil {
		return
	}
	c.lines.Set(float64(n))
}

func normalizeLabel(op string) string {
	if op == "" {
		return "unknown"
	}
	return op
}
