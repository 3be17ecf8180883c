// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package recommend

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/dinewise/internal/cache"
	"github.com/tomtom215/dinewise/internal/logging"
	"github.com/tomtom215/dinewise/internal/models"
)

// Engine is the recommendation service. It holds no cross-request state
// other than the neighbor cache and run status, and is safe for concurrent use.
type Engine struct {
	config *Config
	store  Store
	logger zerolog.Logger
	now    func() time.Time

	// neighbors caches hybrid edges per seed venue between similarity runs.
	// neighborGen advances on every purge so fetches that started before a
	// purge are not cached after it.
	neighbors   *cache.LRU[string, []models.SimilarityEdge]
	neighborMu  sync.Mutex
	neighborGen uint64

	exposureBreaker *gobreaker.CircuitBreaker[struct{}]

	// Run locks; TryLock rejects overlapping runs of the same job.
	similarityMu sync.Mutex
	trendMu      sync.Mutex

	statusMu sync.RWMutex
	status   Status
}

// JobStatus describes one batch job.
type JobStatus struct {
	Running        bool      `json:"running"`
	Runs           int64     `json:"runs"`
	Failures       int64     `json:"failures"`
	LastStartedAt  time.Time `json:"last_started_at,omitempty"`
	LastSuccessAt  time.Time `json:"last_success_at,omitempty"`
	LastDurationMS int64     `json:"last_duration_ms"`
	LastError      string    `json:"last_error,omitempty"`
}

// Status is the operator view of the engine.
type Status struct {
	Similarity      JobStatus           `json:"similarity"`
	Trend           JobStatus           `json:"trend"`
	LastSimilarity  *SimilarityRunStats `json:"last_similarity,omitempty"`
	LastTrend       *TrendRunStats      `json:"last_trend,omitempty"`
	ExposureBreaker string              `json:"exposure_breaker"`
	NeighborCache   CacheStats          `json:"neighbor_cache"`
}

// CacheStats reports neighbor cache usage.
type CacheStats struct {
	Enabled bool  `json:"enabled"`
	Size    int   `json:"size"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
}

// New creates an engine over store. A nil cfg uses DefaultConfig.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(store Store, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	e := &Engine{
		config: cfg.Clone(),
		store:  store,
		logger: logger.With().Str("component", "recommend").Logger(),
		now:    time.Now,
	}
	if cfg.NeighborCacheSize > 0 {
		e.neighbors = cache.NewLRU[string, []models.SimilarityEdge](cfg.NeighborCacheSize, cfg.NeighborCacheTTL)
	}
	e.exposureBreaker = newExposureBreaker(e.logger)
	return e, nil
}

// neighborGeneration returns the current neighbor cache generation.
func (e *Engine) neighborGeneration() uint64 {
	e.neighborMu.Lock()
	defer e.neighborMu.Unlock()
	return e.neighborGen
}

// cacheNeighbors stores edges fetched during generation gen. It drops them
// when a purge happened in between.
func (e *Engine) cacheNeighbors(seed string, edges []models.SimilarityEdge, gen uint64) bool {
	e.neighborMu.Lock()
	defer e.neighborMu.Unlock()
	if gen != e.neighborGen {
		return false
	}
	e.neighbors.Add(seed, edges)
	return true
}

// purgeNeighbors empties the neighbor cache after the edge table changed.
func (e *Engine) purgeNeighbors() {
	if e.neighbors == nil {
		return
	}
	e.neighborMu.Lock()
	defer e.neighborMu.Unlock()
	e.neighborGen++
	e.neighbors.Purge()
}

// Config returns a copy of the active configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Status returns a snapshot of batch job state.
func (e *Engine) Status() Status {
	e.statusMu.RLock()
	s := e.status
	e.statusMu.RUnlock()

	s.ExposureBreaker = e.exposureBreaker.State().String()
	if e.neighbors != nil {
		hits, misses, size := e.neighbors.Stats()
		s.NeighborCache = CacheStats{Enabled: true, Size: size, Hits: hits, Misses: misses}
	}
	return s
}

func (e *Engine) updateStatus(fn func(*Status)) {
	e.statusMu.Lock()
	defer e.statusMu.Unlock()
	fn(&e.status)
}

func (e *Engine) startJob(job *JobStatus, start time.Time) {
	job.Running = true
	job.Runs++
	job.LastStartedAt = start
}

func (e *Engine) finishJob(job *JobStatus, start time.Time, err error) {
	job.Running = false
	job.LastDurationMS = e.now().Sub(start).Milliseconds()
	if err != nil {
		job.Failures++
		job.LastError = err.Error()
		return
	}
	job.LastError = ""
	job.LastSuccessAt = e.now()
}

// requestLogger returns the engine logger annotated with the request id in ctx.
func (e *Engine) requestLogger(ctx context.Context) zerolog.Logger {
	if id := logging.RequestIDFromContext(ctx); id != "" {
		return e.logger.With().Str("request_id", id).Logger()
	}
	return e.logger
}

// limit resolves a requested limit: 0 means the default, negative or above
// the maximum is rejected.
func (e *Engine) limit(requested int) (int, error) {
	switch {
	case requested < 0:
		return 0, invalidInputf("limit must be non-negative, got %d", requested)
	case requested == 0:
		return e.config.DefaultLimit, nil
	case requested > e.config.MaxLimit:
		return 0, invalidInputf("limit must be at most %d, got %d", e.config.MaxLimit, requested)
	}
	return requested, nil
}
