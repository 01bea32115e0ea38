// Package metrics provides Prometheus metrics collection for the pharmadex
// API: HTTP request counters, latency histograms, in-flight and rate-limiter
// gauges, plus snapshot-size gauges updated on every dataset refresh.
//
// All metrics are registered with the Prometheus default registry during
// package initialization and exposed on /metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	RateLimiterBucketsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limiter_buckets_total",
			Help: "Total number of rate limiter buckets (IPs seen recently)",
		},
	)

	SnapshotProducts = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "snapshot_products_total",
			Help: "Product records in the current snapshot",
		},
	)

	SnapshotIndexKeys = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "snapshot_index_keys_total",
			Help: "Distinct keys in the inverted text index",
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(RateLimiterBucketsTotal)
	prometheus.MustRegister(SnapshotProducts)
	prometheus.MustRegister(SnapshotIndexKeys)
}
