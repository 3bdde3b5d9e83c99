package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the fulfillment module.
type Metrics struct {
	// Outcomes: "fulfilled", "donation_unavailable", "request_resolved",
	// "incompatible", "transient"
	Outcomes *prometheus.CounterVec

	// Full transaction latency including validation re-reads
	FulfillLatency prometheus.Histogram
}

// New creates a new Metrics instance with all fulfillment metrics registered.
func New() *Metrics {
	return &Metrics{
		Outcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "dropofhope_fulfillments_total",
			Help: "Fulfillment attempts by outcome",
		}, []string{"outcome"}),

		FulfillLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "dropofhope_fulfillment_duration_seconds",
			Help:    "Duration of the fulfillment transaction",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementOutcome records one fulfillment attempt.
func (m *Metrics) IncrementOutcome(outcome string) {
	if m != nil {
		m.Outcomes.WithLabelValues(outcome).Inc()
	}
}

// ObserveFulfillLatency records the duration of one attempt.
func (m *Metrics) ObserveFulfillLatency(d time.Duration) {
	if m != nil {
		m.FulfillLatency.Observe(d.Seconds())
	}
}
