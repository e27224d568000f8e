package logger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks API latency
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// EvaluationsTotal counts expression evaluations by outcome ("matched", "not_matched", "error")
	EvaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alert_evaluations_total",
			Help: "Total number of expression evaluations",
		},
		[]string{"result"},
	)

	ScanDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "alert_scan_duration_seconds",
			Help:    "Duration of universe scans in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		},
	)

	ScanSymbolsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alert_scan_symbols_total",
			Help: "Total number of symbols processed by scans",
		},
		[]string{"result"},
	)

	FetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "series_fetch_duration_seconds",
			Help:    "Duration of series fetches in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"source"},
	)

	FetchErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "series_fetch_errors_total",
			Help: "Total number of failed series fetches",
		},
		[]string{"source"},
	)

	// CacheRequestsTotal counts series cache lookups ("hit", "miss", "error")
	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "series_cache_requests_total",
			Help: "Total number of series cache lookups",
		},
		[]string{"result"},
	)

	HistoryWritesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "alert_history_writes_total",
			Help: "Total number of alert history writes",
		},
		[]string{"status"},
	)
)
