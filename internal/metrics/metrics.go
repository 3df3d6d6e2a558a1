// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "infographic"

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Infographic generations by producer and outcome",
		},
		[]string{"producer", "outcome"},
	)

	// Image generation APIs take tens of seconds, so the buckets run long.
	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Time spent producing an infographic image",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"producer"},
	)

	RateLimitRejects = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limit_rejects_total",
			Help:      "Requests rejected by the per-client rate limiter",
		},
	)
)

// Generation outcomes.
const (
	OutcomeSuccess       = "success"
	OutcomeProducerError = "producer_error"
	OutcomeStoreError    = "store_error"
)

// ObserveGeneration records one generate call.
func ObserveGeneration(producer, outcome string, took time.Duration) {
	GenerationsTotal.WithLabelValues(producer, outcome).Inc()
	GenerationDuration.WithLabelValues(producer).Observe(took.Seconds())
}
