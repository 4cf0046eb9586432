// Package metrics provides the centralized Prometheus metrics registry for
// the prediction service.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	PredictionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pitch_predictor",
		Name:      "predictions_total",
		Help:      "Total number of predictions computed",
	})
	PredictionFallbacksTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pitch_predictor",
		Name:      "prediction_fallbacks_total",
		Help:      "Predictions where a side fell back from head-to-head to recent form",
	}, []string{"side"})
	PredictionsInsufficientTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pitch_predictor",
		Name:      "predictions_insufficient_total",
		Help:      "Predictions flagged insufficient_data",
	})
	PredictionCacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pitch_predictor",
		Name:      "prediction_cache_hits_total",
		Help:      "Prediction cache hits",
	})
	PredictionCacheMissesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pitch_predictor",
		Name:      "prediction_cache_misses_total",
		Help:      "Prediction cache misses",
	})
	DatasetReloadsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pitch_predictor",
		Name:      "dataset_reloads_total",
		Help:      "Dataset reload attempts by outcome",
	}, []string{"outcome"})
)

// Gauge metrics
var (
	DatasetRowsLoaded = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "pitch_predictor",
		Name:      "dataset_rows_loaded",
		Help:      "Canonical rows in the current table generation",
	})
	DatasetRowsDropped = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "pitch_predictor",
		Name:      "dataset_rows_dropped",
		Help:      "Raw rows dropped during the last normalization pass",
	})
	DatasetLastLoadTimestamp = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "pitch_predictor",
		Name:      "dataset_last_load_timestamp_seconds",
		Help:      "Unix time of the last successful table build",
	})
	WebsocketClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "pitch_predictor",
		Name:      "websocket_clients",
		Help:      "Connected prediction stream clients",
	})
)

// Histogram metrics
var (
	PredictionLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "pitch_predictor",
		Name:      "prediction_latency_seconds",
		Help:      "Latency of prediction computations in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "pitch_predictor",
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method", "status"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(PredictionsTotal)
		registry.MustRegister(PredictionFallbacksTotal)
		registry.MustRegister(PredictionsInsufficientTotal)
		registry.MustRegister(PredictionCacheHitsTotal)
		registry.MustRegister(PredictionCacheMissesTotal)
		registry.MustRegister(DatasetReloadsTotal)

		registry.MustRegister(DatasetRowsLoaded)
		registry.MustRegister(DatasetRowsDropped)
		registry.MustRegister(DatasetLastLoadTimestamp)
		registry.MustRegister(WebsocketClients)

		registry.MustRegister(PredictionLatency)
		registry.MustRegister(HTTPRequestDuration)
	})
	return registry
}

// Handler returns an HTTP handler serving the registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(InitRegistry(), promhttp.HandlerOpts{})
}
