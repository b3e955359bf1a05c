package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the picks worker

var (
	// Provider metrics
	ProviderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nflpicks_provider_requests_total",
			Help: "Total number of provider API requests",
		},
		[]string{"operation", "status"},
	)

	ProviderRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nflpicks_provider_retries_total",
			Help: "Total number of provider request retries",
		},
	)

	// Job metrics
	JobRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nflpicks_job_runs_total",
			Help: "Total number of sync job runs",
		},
		[]string{"job", "status"},
	)

	JobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nflpicks_job_duration_seconds",
			Help:    "Duration of sync job runs in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
		},
		[]string{"job"},
	)

	// Cache metrics
	CacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nflpicks_cache_hits_total",
			Help: "Total number of snapshot cache hits",
		},
	)

	CacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nflpicks_cache_misses_total",
			Help: "Total number of snapshot cache misses",
		},
	)

	// Grading metrics
	PicksSubmittedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nflpicks_picks_submitted_total",
			Help: "Total number of pick submissions",
		},
		[]string{"result"},
	)

	GamesGradedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nflpicks_games_graded_total",
			Help: "Total number of graded pick outcomes",
		},
		[]string{"outcome"},
	)

	// Anomaly metrics
	AnomaliesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nflpicks_anomalies_total",
			Help: "Total number of anomalies reported to admins",
		},
		[]string{"component"},
	)

	// Database metrics
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nflpicks_db_connections_active",
			Help: "Number of active database connections",
		},
	)

	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "nflpicks_db_connections_idle",
			Help: "Number of idle database connections",
		},
	)

	LastSuccessfulJob = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "nflpicks_last_successful_job_timestamp",
			Help: "Timestamp of the last successful run per job",
		},
		[]string{"job"},
	)
)

// RecordProviderRequest records one completed provider HTTP request.
func RecordProviderRequest(operation string, statusCode int) {
	ProviderRequestsTotal.WithLabelValues(operation, strconv.Itoa(statusCode)).Inc()
}

// RecordProviderRetry records one provider retry attempt.
func RecordProviderRetry() {
	ProviderRetriesTotal.Inc()
}

// RecordJob records a job run with its status and duration.
func RecordJob(job, status string, duration float64) {
	JobRunsTotal.WithLabelValues(job, status).Inc()
	JobDuration.WithLabelValues(job).Observe(duration)

	if status == "success" {
		LastSuccessfulJob.WithLabelValues(job).SetToCurrentTime()
	}
}

// RecordCacheHit records a snapshot cache hit.
func RecordCacheHit() {
	CacheHitsTotal.Inc()
}

// RecordCacheMiss records a snapshot cache miss.
func RecordCacheMiss() {
	CacheMissesTotal.Inc()
}

// RecordPickSubmission records one pick submission result
// (accepted, deadline_passed, duplicate, unknown_game).
func RecordPickSubmission(result string) {
	PicksSubmittedTotal.WithLabelValues(result).Inc()
}

// RecordGradedOutcome records one graded pick outcome.
func RecordGradedOutcome(outcome string) {
	GamesGradedTotal.WithLabelValues(outcome).Inc()
}

// RecordAnomaly records an anomaly surfaced to admins.
func RecordAnomaly(component string) {
	AnomaliesTotal.WithLabelValues(component).Inc()
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int32) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
