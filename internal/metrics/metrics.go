package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for Sealog
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Polling Metrics
	PollsTotal        prometheus.CounterVec
	PollDuration      prometheus.HistogramVec
	TickDuration      prometheus.Histogram
	TasksLeased       prometheus.Gauge
	ProviderAuthFails prometheus.Counter

	// Business Metrics
	EntriesOpenedTotal    prometheus.Counter
	EntriesClosedTotal    prometheus.Counter
	EntriesConfirmedTotal prometheus.CounterVec
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sealog_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sealog_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "sealog_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		// Polling Metrics
		PollsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sealog_position_polls_total",
				Help: "Total AIS position polls by outcome",
			},
			[]string{"outcome"},
		),
		PollDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sealog_position_poll_duration_seconds",
				Help:    "Per-vessel poll execution time in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
			},
			[]string{"outcome"},
		),
		TickDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sealog_scheduler_tick_duration_seconds",
				Help:    "Scheduler tick execution time in seconds",
				Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60},
			},
		),
		TasksLeased: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "sealog_scheduler_tasks_leased",
				Help: "Tasks claimed by the current tick",
			},
		),
		ProviderAuthFails: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "sealog_provider_auth_failures_total",
				Help: "AIS provider authentication failures; a non-zero rate means the credential needs attention",
			},
		),

		// Business Metrics
		EntriesOpenedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "sealog_entries_opened_total",
				Help: "Sea time entries opened by the detector",
			},
		),
		EntriesClosedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "sealog_entries_closed_total",
				Help: "Sea time entries closed into pending",
			},
		),
		EntriesConfirmedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sealog_entries_confirmed_total",
				Help: "Entries resolved by the mariner, by resolution",
			},
			[]string{"resolution"},
		),
	}
}
