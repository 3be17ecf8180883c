// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	_ "modernc.org/sqlite"

	"github.com/tomtom215/dinewise/internal/config"
	"github.com/tomtom215/dinewise/internal/logging"
)

// queryTimeout bounds single-statement reads that are not already bounded by the caller.
const queryTimeout = 30 * time.Second

// DB is the database handle shared by every store operation.
type DB struct {
	conn   *sql.DB
	cfg    *config.DatabaseConfig
	driver string
}

// New opens the configured database and creates the schema.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	if cfg.Path != "" && cfg.Path != ":memory:" {
		dbDir := filepath.Dir(cfg.Path)
		if dbDir != "" && dbDir != "." {
			if err := os.MkdirAll(dbDir, 0o750); err != nil {
				return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
			}
		}
	}

	dsn, err := dataSourceName(cfg)
	if err != nil {
		return nil, err
	}

	conn, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{
		conn:   conn,
		cfg:    cfg,
		driver: cfg.Driver,
	}

	db.configureConnectionPool()

	if err := db.initialize(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	logging.Info().
		Str("driver", cfg.Driver).
		Str("path", cfg.Path).
		Msg("Database opened")

	return db, nil
}

// dataSourceName builds the driver-specific connection string.
func dataSourceName(cfg *config.DatabaseConfig) (string, error) {
	switch cfg.Driver {
	case config.DriverDuckDB:
		threads := cfg.Threads
		if threads <= 0 {
			threads = runtime.NumCPU()
		}
		path := cfg.Path
		if path == ":memory:" {
			path = ""
		}
		return fmt.Sprintf("%s?access_mode=read_write&threads=%d&max_memory=%s",
			path, threads, cfg.MaxMemory), nil
	case config.DriverSQLite:
		busy := cfg.BusyTimeout
		if busy <= 0 {
			busy = 5 * time.Second
		}
		return fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)",
			cfg.Path, busy.Milliseconds()), nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// configureConnectionPool sizes the pool for the driver. SQLite allows a
// single writer, so its pool is pinned to one connection.
func (db *DB) configureConnectionPool() {
	switch db.driver {
	case config.DriverSQLite:
		db.conn.SetMaxOpenConns(1)
		db.conn.SetMaxIdleConns(1)
	default:
		db.conn.SetMaxOpenConns(runtime.NumCPU())
		db.conn.SetMaxIdleConns(2)
		db.conn.SetConnMaxIdleTime(5 * time.Minute)
	}
	db.conn.SetConnMaxLifetime(time.Hour)
}

// Driver returns the configured driver name.
func (db *DB) Driver() string {
	return db.driver
}

// Conn exposes the underlying pool for tests and diagnostics.
func (db *DB) Conn() *sql.DB {
	return db.conn
}

// Ping verifies the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	if err := db.conn.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// withTimeout applies queryTimeout when ctx carries no deadline.
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, queryTimeout)
}
