// Package metrics provides Prometheus metrics for the maulas scoring pipeline.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// hitBuckets covers every possible hit count (0..15).
var hitBuckets = prometheus.LinearBuckets(0, 1, 16) //nolint:gochecknoglobals // static bucket layout

// Manager manages all Prometheus metrics for the pipeline.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Ingestion
	sheetsParsed    *prometheus.CounterVec
	cellsDiscarded  prometheus.Counter
	duplicateSheets prometheus.Counter

	// Scoring and ranking
	roundsRanked         prometheus.Counter
	roundsMissingResults prometheus.Counter
	hitsObserved         prometheus.Histogram
	pipelineDuration     prometheus.Histogram

	// Dataset size
	membersTotal     prometheus.Gauge
	roundsTotal      prometheus.Gauge
	predictionsTotal prometheus.Gauge

	// Export and sinks
	snapshotWrites *prometheus.CounterVec
	sinkWrites     *prometheus.CounterVec
	sinkQueueDepth prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "maulas",
		subsystem:        "pool",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // flat list of metric definitions
	auto := promauto.With(m.registry)

	m.sheetsParsed = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "sheets_parsed_total",
		Help:        "Prediction sheets processed, by parse status",
		ConstLabels: m.constLabels,
	}, []string{"status"})

	m.cellsDiscarded = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "cells_discarded_total",
		Help:        "Prediction cells dropped because the token was outside the whitelist",
		ConstLabels: m.constLabels,
	})

	m.duplicateSheets = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "duplicate_sheets_total",
		Help:        "Sheets skipped because their round already had a sheet",
		ConstLabels: m.constLabels,
	})

	m.roundsRanked = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rounds_ranked_total",
		Help:        "Rounds that had both predictions and official results",
		ConstLabels: m.constLabels,
	})

	m.roundsMissingResults = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rounds_missing_results_total",
		Help:        "Rounds with predictions but no official result",
		ConstLabels: m.constLabels,
	})

	m.hitsObserved = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "member_hits",
		Help:        "Distribution of per-member hit counts",
		Buckets:     hitBuckets,
		ConstLabels: m.constLabels,
	})

	m.pipelineDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "pipeline_duration_milliseconds",
		Help:        "Wall time of one ingestion-scoring-ranking run",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	})

	m.membersTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "members",
		Help:        "Members in the roster",
		ConstLabels: m.constLabels,
	})

	m.roundsTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "rounds",
		Help:        "Rounds with at least one parsed prediction",
		ConstLabels: m.constLabels,
	})

	m.predictionsTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "predictions",
		Help:        "Canonical predictions held by the store",
		ConstLabels: m.constLabels,
	})

	m.sinkQueueDepth = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "sink_queue_depth",
		Help:        "Predictions waiting to be written to external sinks",
		ConstLabels: m.constLabels,
	})

	m.sinkWrites = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "sink_writes_total",
		Help:        "Prediction upserts mirrored into external sinks, by sink and outcome",
		ConstLabels: m.constLabels,
	}, []string{"sink", "outcome"})

	m.snapshotWrites = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "snapshot_writes_total",
		Help:        "Snapshot exports by sink and outcome",
		ConstLabels: m.constLabels,
	}, []string{"sink", "outcome"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.errorRateByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_errors_total",
		Help:        "HTTP errors by endpoint, method and error type",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "error_type"})
}

// RecordSheetParsed counts one processed sheet under its parse status.
func (m *Manager) RecordSheetParsed(status string) {
	if m.enabled {
		m.sheetsParsed.WithLabelValues(status).Inc()
	}
}

// RecordCellsDiscarded adds n dropped cells.
func (m *Manager) RecordCellsDiscarded(n int) {
	if m.enabled && n > 0 {
		m.cellsDiscarded.Add(float64(n))
	}
}

// RecordDuplicateSheet counts a skipped duplicate sheet.
func (m *Manager) RecordDuplicateSheet() {
	if m.enabled {
		m.duplicateSheets.Inc()
	}
}

// RecordRoundRanked counts a ranked round.
func (m *Manager) RecordRoundRanked() {
	if m.enabled {
		m.roundsRanked.Inc()
	}
}

// RecordRoundMissingResults counts a round that could not be ranked.
func (m *Manager) RecordRoundMissingResults() {
	if m.enabled {
		m.roundsMissingResults.Inc()
	}
}

// ObserveHits records one member's hit count.
func (m *Manager) ObserveHits(hits int) {
	if m.enabled {
		m.hitsObserved.Observe(float64(hits))
	}
}

// RecordPipelineDuration records a run duration in milliseconds.
func (m *Manager) RecordPipelineDuration(ms float64) {
	if m.enabled {
		m.pipelineDuration.Observe(ms)
	}
}

// UpdateDataset sets the dataset size gauges.
func (m *Manager) UpdateDataset(members, rounds, predictions int) {
	if !m.enabled {
		return
	}
	m.membersTotal.Set(float64(members))
	m.roundsTotal.Set(float64(rounds))
	m.predictionsTotal.Set(float64(predictions))
}

// RecordSnapshotWrite counts an export attempt.
func (m *Manager) RecordSnapshotWrite(sink string, err error) {
	if !m.enabled {
		return
	}
	m.snapshotWrites.WithLabelValues(sink, outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// RecordSinkWrite counts one prediction upsert into an external sink.
func (m *Manager) RecordSinkWrite(sink string, err error) {
	if !m.enabled {
		return
	}
	m.sinkWrites.WithLabelValues(sink, outcome(err)).Inc()
}

// UpdateSinkQueueDepth sets the number of predictions waiting for sinks.
func (m *Manager) UpdateSinkQueueDepth(n int) {
	if m.enabled {
		m.sinkQueueDepth.Set(float64(n))
	}
}

// RecordHTTPRequest records an HTTP request and its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method string, statusCode int, durationMs float64) {
	if !m.enabled {
		return
	}
	code := strconv.Itoa(statusCode)
	m.httpRequests.WithLabelValues(endpoint, method, code).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, code).Observe(durationMs)
}

// RecordErrorByEndpoint records an HTTP error.
func (m *Manager) RecordErrorByEndpoint(endpoint, method, errorType string) {
	if m.enabled {
		m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
	}
}

// Package-level helpers delegate to the global manager.

// RecordSheetParsed counts one processed sheet under its parse status.
func RecordSheetParsed(status string) { globalManager.RecordSheetParsed(status) }

// RecordCellsDiscarded adds n dropped cells.
func RecordCellsDiscarded(n int) { globalManager.RecordCellsDiscarded(n) }

// RecordDuplicateSheet counts a skipped duplicate sheet.
func RecordDuplicateSheet() { globalManager.RecordDuplicateSheet() }

// RecordRoundRanked counts a ranked round.
func RecordRoundRanked() { globalManager.RecordRoundRanked() }

// RecordRoundMissingResults counts a round that could not be ranked.
func RecordRoundMissingResults() { globalManager.RecordRoundMissingResults() }

// ObserveHits records one member's hit count.
func ObserveHits(hits int) { globalManager.ObserveHits(hits) }

// RecordPipelineDuration records a run duration in milliseconds.
func RecordPipelineDuration(ms float64) { globalManager.RecordPipelineDuration(ms) }

// UpdateDataset sets the dataset size gauges.
func UpdateDataset(members, rounds, predictions int) {
	globalManager.UpdateDataset(members, rounds, predictions)
}

// RecordSnapshotWrite counts an export attempt.
func RecordSnapshotWrite(sink string, err error) { globalManager.RecordSnapshotWrite(sink, err) }

// RecordSinkWrite counts one prediction upsert into an external sink.
func RecordSinkWrite(sink string, err error) { globalManager.RecordSinkWrite(sink, err) }

// UpdateSinkQueueDepth sets the number of predictions waiting for sinks.
func UpdateSinkQueueDepth(n int) { globalManager.UpdateSinkQueueDepth(n) }

// RecordHTTPRequest records an HTTP request and its duration.
func RecordHTTPRequest(endpoint, method string, statusCode int, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// RecordErrorByEndpoint records an HTTP error.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.RecordErrorByEndpoint(endpoint, method, errorType)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
