// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package services

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/dinewise/internal/models"
	"github.com/tomtom215/dinewise/internal/recommend"
)

type mockEngine struct {
	mu              sync.Mutex
	similarityCalls int
	similarityErr   error
	trendCalls      []string
	trendErr        map[string]error
}

func (m *mockEngine) RunSimilarityComputation(context.Context) (*recommend.SimilarityRunStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.similarityCalls++
	if m.similarityErr != nil {
		return nil, m.similarityErr
	}
	return &recommend.SimilarityRunStats{}, nil
}

func (m *mockEngine) RunTrendComputation(_ context.Context, scope string, window models.TimeWindow) (*recommend.TrendRunStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := scope + "/" + string(window)
	m.trendCalls = append(m.trendCalls, key)
	if err := m.trendErr[key]; err != nil {
		return nil, err
	}
	return &recommend.TrendRunStats{Scope: scope, Window: window}, nil
}

func (m *mockEngine) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.similarityCalls
}

func TestBatchServiceConfig_Defaults(t *testing.T) {
	cfg := BatchServiceConfig{}.withDefaults()
	if cfg.Interval != time.Hour || cfg.RunTimeout != 30*time.Minute {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestBatchService_RunOnStartup(t *testing.T) {
	tests := []struct {
		name         string
		runOnStartup bool
		want         int
	}{
		{"runs immediately", true, 1},
		{"waits for ticker", false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := &mockEngine{}
			svc := NewSimilarityBatchService(engine, BatchServiceConfig{
				Interval:     time.Hour,
				RunOnStartup: tt.runOnStartup,
			}, zerolog.Nop())

			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()
			if err := svc.Serve(ctx); !errors.Is(err, context.DeadlineExceeded) {
				t.Errorf("Serve() = %v, want deadline exceeded", err)
			}
			if got := engine.calls(); got != tt.want {
				t.Errorf("runs = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBatchService_FailuresDoNotStopSchedule(t *testing.T) {
	for _, jobErr := range []error{errors.New("store down"), recommend.ErrRunInProgress} {
		engine := &mockEngine{similarityErr: jobErr}
		svc := NewSimilarityBatchService(engine, BatchServiceConfig{
			Interval:     20 * time.Millisecond,
			RunOnStartup: true,
		}, zerolog.Nop())

		ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
		err := svc.Serve(ctx)
		cancel()

		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("%v: Serve() = %v, want it to keep running", jobErr, err)
		}
		if engine.calls() < 2 {
			t.Errorf("%v: runs = %d, want repeated attempts", jobErr, engine.calls())
		}
	}
}

func TestBatchService_RunTimeout(t *testing.T) {
	var deadline time.Time
	job := func(ctx context.Context) error {
		deadline, _ = ctx.Deadline()
		return nil
	}
	svc := NewBatchService("probe", job, BatchServiceConfig{RunTimeout: time.Minute}, zerolog.Nop())

	before := time.Now()
	svc.run(context.Background())
	if deadline.IsZero() || deadline.Sub(before) > time.Minute+time.Second {
		t.Errorf("run deadline = %v, want about one minute out", deadline)
	}
	if svc.String() != "probe" {
		t.Errorf("String() = %q", svc.String())
	}
}

func TestTrendBatchService_CoversScopesAndWindows(t *testing.T) {
	engine := &mockEngine{trendErr: map[string]error{
		"/daily": errors.New("boom"),
	}}
	windows := []models.TimeWindow{models.WindowDaily, models.WindowWeekly}
	svc := NewTrendBatchService(engine, []string{" Berlin ", "", "berlin"}, windows, BatchServiceConfig{}, zerolog.Nop())

	err := svc.job(context.Background())
	if err == nil {
		t.Fatal("job error = nil, want the failing scope reported")
	}

	want := []string{"/daily", "/weekly", "berlin/daily", "berlin/weekly"}
	if !slices.Equal(engine.trendCalls, want) {
		t.Errorf("calls = %v, want %v", engine.trendCalls, want)
	}
}

func TestTrendBatchService_IgnoresRunInProgress(t *testing.T) {
	engine := &mockEngine{trendErr: map[string]error{
		"/weekly": recommend.ErrRunInProgress,
	}}
	svc := NewTrendBatchService(engine, nil, []models.TimeWindow{models.WindowWeekly}, BatchServiceConfig{}, zerolog.Nop())
	if err := svc.job(context.Background()); err != nil {
		t.Errorf("job error = %v, want nil", err)
	}
}
