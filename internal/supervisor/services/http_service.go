// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// HTTPServer is the lifecycle subset of *http.Server.
//
// Tests substitute a fake; production passes the *http.Server built in
// cmd/server, which satisfies it with:
//   - ListenAndServe() error
//   - Shutdown(ctx context.Context) error
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// HTTPServerService runs the recommendation API under the supervisor.
//
// It adapts the blocking ListenAndServe to suture's context-driven Serve:
//
//  1. ListenAndServe runs in its own goroutine
//  2. Serve waits for a listener error or context cancellation
//  3. On cancellation the server gets shutdownTimeout to drain in-flight
//     requests before Shutdown gives up
//
// Example usage:
//
//	server := &http.Server{Addr: ":8080", Handler: router.Setup()}
//	svc := services.NewHTTPServerService(server, 10*time.Second, logger)
//	tree.AddAPIService(svc)
type HTTPServerService struct {
	server          HTTPServer
	shutdownTimeout time.Duration
	logger          zerolog.Logger
	name            string
}

// NewHTTPServerService wraps server.
//
// shutdownTimeout bounds graceful shutdown; it should cover the slowest
// request the API serves. A non-positive value means 10s.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewHTTPServerService(server HTTPServer, shutdownTimeout time.Duration, logger zerolog.Logger) *HTTPServerService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &HTTPServerService{
		server:          server,
		shutdownTimeout: shutdownTimeout,
		logger:          logger.With().Str("service", "http-server").Logger(),
		name:            "http-server",
	}
}

// Serve implements suture.Service.
//
// A listener failure (for example a port already in use) is returned wrapped
// so the supervisor restarts the service with backoff. http.ErrServerClosed
// is expected during shutdown and is not an error. After a clean shutdown
// Serve returns ctx.Err().
func (h *HTTPServerService) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil

	case <-ctx.Done():
		h.logger.Info().Dur("timeout", h.shutdownTimeout).Msg("shutting down http server")

		// ctx is already canceled.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), h.shutdownTimeout)
		defer cancel()

		if err := h.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown failed: %w", err)
		}
		<-errCh
		return ctx.Err()
	}
}

// String returns the service name for suture's logs.
func (h *HTTPServerService) String() string {
	return h.name
}
