// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

/*
Package config loads and validates service configuration.

Configuration is layered with koanf, later layers overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. YAML file: CONFIG_PATH, then config.yaml / config.yml, then /etc/dinewise/config.yaml
 3. Environment variables, mapped explicitly in envTransformFunc

Usage:

	cfg, err := config.LoadWithKoanf()
	if err != nil {
	    log.Fatal(err)
	}
	fmt.Println(cfg.Database.Driver)

Example config.yaml:

	database:
	  driver: duckdb
	  path: /data/dinewise.duckdb
	recommend:
	  hybrid:
	    threshold: 0.3
	batch:
	  similarity_interval: 24h
	  trend_windows: [daily, weekly]
*/
package config
