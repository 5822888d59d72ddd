package palette

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "palette"

// Operation results
const (
	resultOK       = "ok"
	resultRejected = "rejected"
	resultError    = "error"
)

// Metrics counts palette store activity. A nil *Metrics records nothing.
type Metrics struct {
	operations      *prometheus.CounterVec
	persistFailures prometheus.Counter
	flatColors      prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg when it is non-nil
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "operations_total",
				Help:      "Total number of palette store operations",
			},
			[]string{"operation", "result"}, // result: ok, rejected, error
		),
		persistFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "persist_failures_total",
				Help:      "Total number of failed writes of the palette collection",
			},
		),
		flatColors: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "flat_colors",
				Help:      "Number of colors in the active palette's flat list",
			},
		),
	}

	if reg != nil {
		reg.MustRegister(m.operations, m.persistFailures, m.flatColors)
	}

	return m
}

func (m *Metrics) observe(operation string, ok bool) {
	if m == nil {
		return
	}
	result := resultOK
	if !ok {
		result = resultRejected
	}
	m.operations.WithLabelValues(operation, result).Inc()
}

func (m *Metrics) observeError(operation string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, resultError).Inc()
}

func (m *Metrics) persistFailed() {
	if m == nil {
		return
	}
	m.persistFailures.Inc()
}

func (m *Metrics) setFlatColors(n int) {
	if m == nil {
		return
	}
	m.flatColors.Set(float64(n))
}
