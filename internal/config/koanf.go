// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the config file locations searched in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/dinewise/config.yaml",
	"/etc/dinewise/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns the built-in defaults.
func defaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver:      DriverDuckDB,
			Path:        "/data/dinewise.duckdb",
			MaxMemory:   "1GB",
			Threads:     0,
			BusyTimeout: 5 * time.Second,
		},
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              8080,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			ShutdownTimeout:   10 * time.Second,
			RequestTimeout:    10 * time.Second,
			CORSOrigins:       []string{"*"},
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Recommend: RecommendConfig{
			Content: ContentConfig{
				CuisineWeight: 0.40,
				PriceWeight:   0.25,
				RatingWeight:  0.15,
				GeoWeight:     0.10,
				FeatureWeight: 0.10,
				GeoCutoffKm:   20,
			},
			Hybrid: HybridConfig{
				CollaborativeWeight:    0.6,
				ContentWeight:          0.4,
				Threshold:              0.3,
				CollaborativeThreshold: 0.4,
				ContentThreshold:       0.5,
			},
			Trend: TrendConfig{
				BookingWeight: 10,
				ReviewWeight:  5,
				RatingWeight:  15,
			},
			Feedback: FeedbackConfig{
				BookedStep:    0.30,
				ReviewedStep:  0.20,
				ClickedStep:   0.10,
				DismissedStep: 0.20,
			},
			PreferenceBoost:    0.2,
			TrendBoostMax:      0.1,
			FallbackConfidence: 0.5,
			DefaultLimit:       10,
			MaxLimit:           100,
			DefaultRadiusKm:    25,
			EdgeBatchSize:      1000,
			Workers:            0,
			NeighborCacheSize:  10000,
			NeighborCacheTTL:   10 * time.Minute,
			ExposureTimeout:    2 * time.Second,
		},
		Batch: BatchConfig{
			Enabled:            true,
			SimilarityInterval: 24 * time.Hour,
			TrendInterval:      time.Hour,
			RunOnStartup:       false,
			RunTimeout:         30 * time.Minute,
			TrendScopes:        []string{},
			TrendWindows:       []string{"daily", "weekly", "monthly"},
		},
	}
}

// LoadWithKoanf loads defaults, then the config file, then environment
// variables, and validates the result.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first config file that exists, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are keys that accept comma-separated strings from the environment.
var sliceConfigPaths = []string{
	"server.cors_origins",
	"batch.trend_scopes",
	"batch.trend_windows",
}

// processSliceFields splits comma-separated env values into string slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to config keys.
// Variables not listed are ignored.
var envMappings = map[string]string{
	// Database
	"db_driver":       "database.driver",
	"db_path":         "database.path",
	"db_max_memory":   "database.max_memory",
	"db_threads":      "database.threads",
	"db_busy_timeout": "database.busy_timeout",

	// Server
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"request_timeout":       "server.request_timeout",
	"cors_origins":          "server.cors_origins",
	"rate_limit_requests":   "server.rate_limit_requests",
	"rate_limit_window":     "server.rate_limit_window",
	"disable_rate_limit":    "server.rate_limit_disabled",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Recommend
	"hybrid_threshold":        "recommend.hybrid.threshold",
	"collaborative_threshold": "recommend.hybrid.collaborative_threshold",
	"content_threshold":       "recommend.hybrid.content_threshold",
	"preference_boost":        "recommend.preference_boost",
	"trend_boost_max":         "recommend.trend_boost_max",
	"recommend_default_limit": "recommend.default_limit",
	"recommend_max_limit":     "recommend.max_limit",
	"default_radius_km":       "recommend.default_radius_km",
	"edge_batch_size":         "recommend.edge_batch_size",
	"similarity_workers":      "recommend.workers",
	"neighbor_cache_size":     "recommend.neighbor_cache_size",
	"neighbor_cache_ttl":      "recommend.neighbor_cache_ttl",
	"exposure_timeout":        "recommend.exposure_timeout",

	// Batch
	"batch_enabled":        "batch.enabled",
	"similarity_interval":  "batch.similarity_interval",
	"trend_interval":       "batch.trend_interval",
	"batch_run_on_startup": "batch.run_on_startup",
	"batch_run_timeout":    "batch.run_timeout",
	"trend_scopes":         "batch.trend_scopes",
	"trend_windows":        "batch.trend_windows",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Returning "" makes koanf skip the variable.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
