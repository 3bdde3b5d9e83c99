package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the matching module.
type Metrics struct {
	// Candidate scan latencies by side ("donations", "requests")
	ScanLatency *prometheus.HistogramVec

	// Ranked results returned per query, by side
	MatchesReturned *prometheus.HistogramVec
}

// New creates a new Metrics instance with all matching metrics registered.
func New() *Metrics {
	return &Metrics{
		ScanLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dropofhope_matching_scan_duration_seconds",
			Help:    "Duration of candidate scans by side",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"side"}),

		MatchesReturned: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dropofhope_matching_results",
			Help:    "Number of ranked candidates returned per match query",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
		}, []string{"side"}),
	}
}

// ObserveScanLatency records the duration of one candidate scan.
func (m *Metrics) ObserveScanLatency(side string, d time.Duration) {
	if m != nil {
		m.ScanLatency.WithLabelValues(side).Observe(d.Seconds())
	}
}

// ObserveMatches records the size of one ranked result.
func (m *Metrics) ObserveMatches(side string, n int) {
	if m != nil {
		m.MatchesReturned.WithLabelValues(side).Observe(float64(n))
	}
}
