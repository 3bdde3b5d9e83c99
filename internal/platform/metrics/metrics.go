package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the application-level Prometheus metrics.
type Metrics struct {
	DonationsCreated prometheus.Counter
	RequestsCreated  prometheus.Counter
	HTTPLatency      *prometheus.HistogramVec
}

// New creates and registers all application metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		DonationsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dropofhope_donations_created_total",
			Help: "Total number of donation listings created",
		}),
		RequestsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "dropofhope_requests_created_total",
			Help: "Total number of blood requests created",
		}),
		HTTPLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dropofhope_http_request_duration_seconds",
			Help:    "HTTP request duration by route and status class",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"route", "status"}),
	}
}

// IncrementDonationsCreated records a new donation listing.
func (m *Metrics) IncrementDonationsCreated() {
	if m != nil {
		m.DonationsCreated.Inc()
	}
}

// IncrementRequestsCreated records a new blood request.
func (m *Metrics) IncrementRequestsCreated() {
	if m != nil {
		m.RequestsCreated.Inc()
	}
}

// ObserveHTTPLatency records one served request.
func (m *Metrics) ObserveHTTPLatency(route, status string, d time.Duration) {
	if m != nil {
		m.HTTPLatency.WithLabelValues(route, status).Observe(d.Seconds())
	}
}
