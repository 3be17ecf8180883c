// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package config

import "time"

// Supported database drivers.
const (
	DriverDuckDB = "duckdb"
	DriverSQLite = "sqlite"
)

// Config is the root service configuration.
type Config struct {
	Database  DatabaseConfig  `koanf:"database"`
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
	Batch     BatchConfig     `koanf:"batch"`
}

// DatabaseConfig selects and tunes the store.
type DatabaseConfig struct {
	// Driver is "duckdb" or "sqlite".
	Driver string `koanf:"driver"`
	Path   string `koanf:"path"`

	// MaxMemory and Threads apply to DuckDB only. Threads 0 means runtime.NumCPU().
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"`

	// BusyTimeout applies to SQLite only.
	BusyTimeout time.Duration `koanf:"busy_timeout"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// RequestTimeout bounds each online recommendation request.
	RequestTimeout time.Duration `koanf:"request_timeout"`

	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig mirrors logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// ContentConfig holds the content similarity weights.
type ContentConfig struct {
	CuisineWeight float64 `koanf:"cuisine_weight"`
	PriceWeight   float64 `koanf:"price_weight"`
	RatingWeight  float64 `koanf:"rating_weight"`
	GeoWeight     float64 `koanf:"geo_weight"`
	FeatureWeight float64 `koanf:"feature_weight"`
	GeoCutoffKm   float64 `koanf:"geo_cutoff_km"`
}

// HybridConfig holds the blend and pruning thresholds.
type HybridConfig struct {
	CollaborativeWeight    float64 `koanf:"collaborative_weight"`
	ContentWeight          float64 `koanf:"content_weight"`
	Threshold              float64 `koanf:"threshold"`
	CollaborativeThreshold float64 `koanf:"collaborative_threshold"`
	ContentThreshold       float64 `koanf:"content_threshold"`
}

// TrendConfig holds the trend score multipliers.
type TrendConfig struct {
	BookingWeight float64 `koanf:"booking_weight"`
	ReviewWeight  float64 `koanf:"review_weight"`
	RatingWeight  float64 `koanf:"rating_weight"`
}

// FeedbackConfig holds the preference confidence step per feedback action.
type FeedbackConfig struct {
	BookedStep    float64 `koanf:"booked_step"`
	ReviewedStep  float64 `koanf:"reviewed_step"`
	ClickedStep   float64 `koanf:"clicked_step"`
	DismissedStep float64 `koanf:"dismissed_step"`
}

// RecommendConfig configures the recommendation engine.
type RecommendConfig struct {
	Content  ContentConfig  `koanf:"content"`
	Hybrid   HybridConfig   `koanf:"hybrid"`
	Trend    TrendConfig    `koanf:"trend"`
	Feedback FeedbackConfig `koanf:"feedback"`

	PreferenceBoost    float64 `koanf:"preference_boost"`
	TrendBoostMax      float64 `koanf:"trend_boost_max"`
	FallbackConfidence float64 `koanf:"fallback_confidence"`

	DefaultLimit    int     `koanf:"default_limit"`
	MaxLimit        int     `koanf:"max_limit"`
	DefaultRadiusKm float64 `koanf:"default_radius_km"`

	EdgeBatchSize int `koanf:"edge_batch_size"`

	// Workers partitions similarity pair computation. 0 means runtime.NumCPU().
	Workers int `koanf:"workers"`

	NeighborCacheSize int           `koanf:"neighbor_cache_size"`
	NeighborCacheTTL  time.Duration `koanf:"neighbor_cache_ttl"`

	ExposureTimeout time.Duration `koanf:"exposure_timeout"`
}

// BatchConfig schedules the offline jobs.
type BatchConfig struct {
	Enabled            bool          `koanf:"enabled"`
	SimilarityInterval time.Duration `koanf:"similarity_interval"`
	TrendInterval      time.Duration `koanf:"trend_interval"`
	RunOnStartup       bool          `koanf:"run_on_startup"`
	RunTimeout         time.Duration `koanf:"run_timeout"`

	// TrendScopes lists location scopes; "" (global) is always included.
	TrendScopes  []string `koanf:"trend_scopes"`
	TrendWindows []string `koanf:"trend_windows"`
}
