// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values.
const (
	OutcomeSuccess  = "success"
	OutcomeError    = "error"
	OutcomeSkipped  = "skipped"
	OutcomeFallback = "fallback"
)

var (
	// Online path

	RecommendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dinewise_recommend_request_duration_seconds",
			Help:    "Duration of online recommendation operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"operation"},
	)

	RecommendResponses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dinewise_recommend_responses_total",
			Help: "Recommendation responses by operation and algorithm",
		},
		[]string{"operation", "algorithm"},
	)

	RecommendErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dinewise_recommend_errors_total",
			Help: "Online recommendation errors by operation",
		},
		[]string{"operation"},
	)

	FeedbackRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dinewise_feedback_total",
			Help: "Feedback events recorded by action and feedback type",
		},
		[]string{"action", "feedback_type"},
	)

	FeedbackSideEffectFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dinewise_feedback_side_effect_failures_total",
			Help: "Isolated failures of feedback bookkeeping (preferences, exposure annotation)",
		},
		[]string{"step"},
	)

	ExposureLogWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dinewise_exposure_log_writes_total",
			Help: "Exposure log writes by outcome",
		},
		[]string{"outcome"},
	)

	NeighborCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dinewise_neighbor_cache_hits_total",
			Help: "Seed venue neighbor expansions served from cache",
		},
	)

	NeighborCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dinewise_neighbor_cache_misses_total",
			Help: "Seed venue neighbor expansions loaded from storage",
		},
	)

	// Batch path

	BatchRunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dinewise_batch_run_duration_seconds",
			Help:    "Duration of offline batch runs",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300, 600, 1800},
		},
		[]string{"job"},
	)

	BatchRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dinewise_batch_runs_total",
			Help: "Offline batch runs by job and outcome",
		},
		[]string{"job", "outcome"},
	)

	BatchLastSuccess = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dinewise_batch_last_success_timestamp_seconds",
			Help: "Unix time of the last successful batch run",
		},
		[]string{"job"},
	)

	SimilarityEdgesWritten = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "dinewise_similarity_edges",
			Help: "Edges written by the last similarity run, by kind",
		},
		[]string{"kind"},
	)

	SimilarityPairsEvaluated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dinewise_similarity_pairs_evaluated_total",
			Help: "Venue pairs scored by similarity runs",
		},
	)

	TrendSnapshotsWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dinewise_trend_snapshots_written_total",
			Help: "Trend snapshots upserted, by window",
		},
		[]string{"window"},
	)

	// HTTP

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dinewise_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dinewise_api_request_duration_seconds",
			Help:    "Duration of API requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// RecordRecommendRequest records an online request. A nil err counts a response
// under algorithm; a non-nil err counts an error.
func RecordRecommendRequest(operation, algorithm string, duration time.Duration, err error) {
	RecommendRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		RecommendErrors.WithLabelValues(operation).Inc()
		return
	}
	RecommendResponses.WithLabelValues(operation, algorithm).Inc()
}

// RecordFeedback counts a recorded feedback event.
func RecordFeedback(action, feedbackType string) {
	FeedbackRecorded.WithLabelValues(action, feedbackType).Inc()
}

// RecordFeedbackSideEffectFailure counts an isolated bookkeeping failure.
func RecordFeedbackSideEffectFailure(step string) {
	FeedbackSideEffectFailures.WithLabelValues(step).Inc()
}

// RecordExposureWrite counts an exposure log write attempt.
func RecordExposureWrite(err error) {
	if err != nil {
		ExposureLogWrites.WithLabelValues(OutcomeError).Inc()
		return
	}
	ExposureLogWrites.WithLabelValues(OutcomeSuccess).Inc()
}

// RecordNeighborCache counts a neighbor cache lookup.
func RecordNeighborCache(hit bool) {
	if hit {
		NeighborCacheHits.Inc()
	} else {
		NeighborCacheMisses.Inc()
	}
}

// RecordBatchRun records the duration and outcome of a batch job.
func RecordBatchRun(job, outcome string, duration time.Duration) {
	BatchRunDuration.WithLabelValues(job).Observe(duration.Seconds())
	BatchRuns.WithLabelValues(job, outcome).Inc()
	if outcome == OutcomeSuccess {
		BatchLastSuccess.WithLabelValues(job).Set(float64(time.Now().Unix()))
	}
}

// RecordSimilarityEdges sets the edge gauges for the last run.
func RecordSimilarityEdges(pairs int, edgesByKind map[string]int) {
	SimilarityPairsEvaluated.Add(float64(pairs))
	for kind, n := range edgesByKind {
		SimilarityEdgesWritten.WithLabelValues(kind).Set(float64(n))
	}
}

// RecordTrendSnapshots counts upserted trend snapshots.
func RecordTrendSnapshots(window string, n int) {
	TrendSnapshotsWritten.WithLabelValues(window).Add(float64(n))
}

// RecordAPIRequest records an HTTP request.
func RecordAPIRequest(method, route string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
