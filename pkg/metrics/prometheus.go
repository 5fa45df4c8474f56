// Package metrics provides Prometheus metrics for the recommendation
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Manager owns the Prometheus collectors for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         *prometheus.Registry

	// Recommendation pipeline
	recommendations       prometheus.Counter
	emptyRecommendations  prometheus.Counter
	recommendationLatency prometheus.Histogram
	candidatesEvaluated   prometheus.Histogram

	// Affinity model
	trainingRuns      prometheus.Counter
	trainingFailures  prometheus.Counter
	trainingDuration  prometheus.Histogram
	modelObservations prometheus.Gauge
	modelRank         prometheus.Gauge
	modelSwaps        prometheus.Counter

	// Talent graph
	engineersTracked prometheus.Gauge
	tasksTracked     prometheus.Gauge
	outcomesTracked  prometheus.Gauge

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager backed by a custom registry so the default Go
// collectors never mix in.
var (
	customRegistry = prometheus.NewRegistry()                                //nolint:gochecknoglobals // singleton registry
	globalManager  = NewManager(WithPrometheusRegistry(customRegistry))     //nolint:gochecknoglobals // singleton manager
)

// NewManager creates a metrics manager with configuration options.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "synapse",
		subsystem:        "recommender",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := func(name, help string) prometheus.CounterOpts {
		return prometheus.CounterOpts{
			Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
		}
	}
	gaugeOpts := func(name, help string) prometheus.GaugeOpts {
		return prometheus.GaugeOpts{
			Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
		}
	}
	histoOpts := func(name, help string) prometheus.HistogramOpts {
		return prometheus.HistogramOpts{
			Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
			Buckets: m.histogramBuckets,
		}
	}

	m.recommendations = prometheus.NewCounter(factory("recommendations_total", "Completed recommendation requests."))
	m.emptyRecommendations = prometheus.NewCounter(factory("recommendations_empty_total", "Recommendation requests that produced no candidates."))
	m.recommendationLatency = prometheus.NewHistogram(histoOpts("recommendation_latency_ms", "End-to-end scoring latency in milliseconds."))
	m.candidatesEvaluated = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "candidates_evaluated", Help: "Candidates scored per recommendation request.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	})

	m.trainingRuns = prometheus.NewCounter(factory("training_runs_total", "Affinity model training runs."))
	m.trainingFailures = prometheus.NewCounter(factory("training_failures_total", "Affinity model training failures."))
	m.trainingDuration = prometheus.NewHistogram(histoOpts("training_duration_ms", "Affinity model training duration in milliseconds."))
	m.modelObservations = prometheus.NewGauge(gaugeOpts("model_observations", "Observed interactions in the serving snapshot."))
	m.modelRank = prometheus.NewGauge(gaugeOpts("model_rank", "Latent rank of the serving snapshot."))
	m.modelSwaps = prometheus.NewCounter(factory("model_swaps_total", "Snapshot swaps into service."))

	m.engineersTracked = prometheus.NewGauge(gaugeOpts("engineers_tracked", "Engineers in the talent graph."))
	m.tasksTracked = prometheus.NewGauge(gaugeOpts("tasks_tracked", "Tasks in the talent graph."))
	m.outcomesTracked = prometheus.NewGauge(gaugeOpts("outcomes_tracked", "Recorded task outcomes."))

	m.httpRequests = prometheus.NewCounterVec(factory("http_requests_total", "HTTP requests by endpoint, method, and status."),
		[]string{"endpoint", "method", "status"})
	m.httpRequestDuration = prometheus.NewHistogramVec(histoOpts("http_request_duration_ms", "HTTP request duration in milliseconds."),
		[]string{"endpoint", "method"})

	if m.registry != nil {
		m.registry.MustRegister(
			m.recommendations, m.emptyRecommendations, m.recommendationLatency, m.candidatesEvaluated,
			m.trainingRuns, m.trainingFailures, m.trainingDuration,
			m.modelObservations, m.modelRank, m.modelSwaps,
			m.engineersTracked, m.tasksTracked, m.outcomesTracked,
			m.httpRequests, m.httpRequestDuration,
		)
	}
}

// GetRegistry returns the registry backing the global manager, for
// exposition via promhttp.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// RecordRecommendation records one completed scoring request.
func RecordRecommendation(latencyMS float64, candidates int, empty bool) {
	if !globalManager.enabled {
		return
	}
	globalManager.recommendations.Inc()
	globalManager.recommendationLatency.Observe(latencyMS)
	globalManager.candidatesEvaluated.Observe(float64(candidates))
	if empty {
		globalManager.emptyRecommendations.Inc()
	}
}

// RecordTraining records one successful training run and refreshes the
// serving-model gauges.
func RecordTraining(durationMS float64, observations, rank int) {
	if !globalManager.enabled {
		return
	}
	globalManager.trainingRuns.Inc()
	globalManager.trainingDuration.Observe(durationMS)
	globalManager.modelObservations.Set(float64(observations))
	globalManager.modelRank.Set(float64(rank))
}

// RecordTrainingFailure records a failed training run.
func RecordTrainingFailure() {
	if globalManager.enabled {
		globalManager.trainingFailures.Inc()
	}
}

// RecordModelSwap records a snapshot swap into service.
func RecordModelSwap() {
	if globalManager.enabled {
		globalManager.modelSwaps.Inc()
	}
}

// UpdateCorpusSize refreshes the talent-graph gauges.
func UpdateCorpusSize(engineers, tasks, outcomes int) {
	if !globalManager.enabled {
		return
	}
	globalManager.engineersTracked.Set(float64(engineers))
	globalManager.tasksTracked.Set(float64(tasks))
	globalManager.outcomesTracked.Set(float64(outcomes))
}

// RecordHTTPRequest records one HTTP request.
func RecordHTTPRequest(endpoint, method, status string, durationMS float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method).Observe(durationMS)
}
