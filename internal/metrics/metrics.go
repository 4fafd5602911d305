package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "folio_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.005, .01, .05, .1, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "route"},
	)

	// Orchestration metrics
	ModelAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_model_attempts_total",
			Help: "Chat completion attempts per candidate model",
		},
		[]string{"model", "outcome"}, // outcome: "success" or a failure kind
	)

	GenerateDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "folio_generate_duration_seconds",
			Help:    "Wall time of one Generate call across all candidates",
			Buckets: []float64{.25, .5, 1, 2, 5, 10, 20, 30, 60, 120},
		},
	)

	Apologies = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "folio_apologies_total",
			Help: "Generate calls that exhausted every candidate, by failure kind",
		},
		[]string{"kind"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "folio_active_sessions",
			Help: "Chat sessions currently held in memory",
		},
	)
)
