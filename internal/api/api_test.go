// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/dinewise/internal/middleware"
	"github.com/tomtom215/dinewise/internal/models"
	"github.com/tomtom215/dinewise/internal/recommend"
)

type fakeEngine struct {
	mu sync.Mutex

	lastRequest     recommend.Request
	lastTrendArgs   []string
	lastSimilarArgs []string
	lastFeedback    models.Feedback
	lastVenue       models.Venue
	lastInteraction models.Interaction

	err error
}

func (f *fakeEngine) GetPersonalizedRecommendations(_ context.Context, req recommend.Request) (*recommend.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastRequest = req
	if f.err != nil {
		return nil, f.err
	}
	return &recommend.Response{
		Recommendations: []recommend.Recommendation{{
			Venue:      models.Venue{ID: "osteria", Name: "Osteria"},
			Score:      0.8,
			Confidence: 0.72,
			Reasons:    []string{"Same cuisine"},
			Algorithm:  models.AlgorithmHybridPersonalized,
		}},
		Algorithm:  models.AlgorithmHybridPersonalized,
		ExposureID: "exp-1",
	}, nil
}

func (f *fakeEngine) GetTrending(_ context.Context, scope string, window models.TimeWindow, limit int) ([]models.TrendingVenue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastTrendArgs = []string{scope, string(window), fmt.Sprint(limit)}
	if f.err != nil {
		return nil, f.err
	}
	return []models.TrendingVenue{}, nil
}

func (f *fakeEngine) GetSimilar(_ context.Context, venueID string, limit int) ([]models.SimilarVenue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastSimilarArgs = []string{venueID, fmt.Sprint(limit)}
	if f.err != nil {
		return nil, f.err
	}
	return []models.SimilarVenue{{Venue: models.Venue{ID: "osteria"}, Score: 0.7, Kind: models.SimilarityHybrid}}, nil
}

func (f *fakeEngine) RecordFeedback(_ context.Context, fb models.Feedback) (*recommend.FeedbackResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFeedback = fb
	if f.err != nil {
		return nil, f.err
	}
	return &recommend.FeedbackResult{InteractionID: "int-1", PreferencesUpdated: []models.PreferenceWeight{}}, nil
}

func (f *fakeEngine) UpsertVenue(_ context.Context, v models.Venue) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastVenue = v
	return f.err
}

func (f *fakeEngine) RecordInteraction(_ context.Context, in models.Interaction) (*models.Interaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastInteraction = in
	if f.err != nil {
		return nil, f.err
	}
	in.ID = "int-2"
	return &in, nil
}

func (f *fakeEngine) GetUserPreferences(context.Context, string) ([]models.PreferenceWeight, error) {
	return []models.PreferenceWeight{}, f.err
}

func (f *fakeEngine) RunSimilarityComputation(ctx context.Context) (*recommend.SimilarityRunStats, error) {
	if f.err != nil {
		return nil, f.err
	}
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("admin run without deadline")
	}
	return &recommend.SimilarityRunStats{Venues: 3, Edges: 4}, nil
}

func (f *fakeEngine) RunTrendComputation(_ context.Context, scope string, window models.TimeWindow) (*recommend.TrendRunStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastTrendArgs = []string{scope, string(window)}
	if f.err != nil {
		return nil, f.err
	}
	return &recommend.TrendRunStats{Scope: scope, Window: window}, nil
}

func (f *fakeEngine) Status() recommend.Status {
	return recommend.Status{ExposureBreaker: "closed"}
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

type envelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func newTestServer(t *testing.T, engine *fakeEngine, pinger Pinger, mw *ChiMiddlewareConfig) http.Handler {
	t.Helper()
	if mw == nil {
		mw = DefaultChiMiddlewareConfig()
		mw.RateLimitDisabled = true
	}
	h := NewHandler(engine, pinger, HandlerConfig{Version: "test"})
	return NewRouter(h, NewChiMiddleware(mw)).Setup()
}

func do(t *testing.T, srv http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode envelope: %v (%s)", err, rec.Body.String())
		}
	}
	return rec, env
}

func TestRecommendations(t *testing.T) {
	engine := &fakeEngine{}
	srv := newTestServer(t, engine, nil, nil)

	rec, env := do(t, srv, http.MethodGet,
		"/api/v1/recommendations?user_id=u1&latitude=52.52&longitude=13.40&cuisine=Italian&price_range=2&time_of_day=dinner&limit=5", "")

	if rec.Code != http.StatusOK || env.Status != "success" {
		t.Fatalf("status = %d %q: %s", rec.Code, env.Status, rec.Body.String())
	}
	if env.Metadata.Algorithm != models.AlgorithmHybridPersonalized || env.Metadata.ExposureID != "exp-1" {
		t.Errorf("metadata = %+v", env.Metadata)
	}
	if env.Metadata.RequestID == "" || env.Metadata.RequestID != rec.Header().Get(middleware.RequestIDHeader) {
		t.Errorf("request id metadata %q vs header %q", env.Metadata.RequestID, rec.Header().Get(middleware.RequestIDHeader))
	}

	req := engine.lastRequest
	if req.UserID != "u1" || req.Cuisine != "Italian" || req.TimeOfDay != "dinner" || req.Limit != 5 {
		t.Errorf("request = %+v", req)
	}
	if req.Latitude == nil || *req.Latitude != 52.52 || req.PriceRange == nil || *req.PriceRange != 2 {
		t.Errorf("typed params not parsed: %+v", req)
	}
	if req.Rating != nil {
		t.Error("absent rating should stay nil")
	}

	var recs []recommend.Recommendation
	if err := json.Unmarshal(env.Data, &recs); err != nil || len(recs) != 1 || recs[0].Venue.ID != "osteria" {
		t.Errorf("data = %s (%v)", env.Data, err)
	}
}

func TestRecommendations_MalformedParams(t *testing.T) {
	srv := newTestServer(t, &fakeEngine{}, nil, nil)

	rec, env := do(t, srv, http.MethodGet, "/api/v1/recommendations?latitude=north&limit=ten", "")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
		t.Fatalf("error = %+v", env.Error)
	}
	fields, ok := env.Error.Details["fields"].([]any)
	if !ok || len(fields) != 2 {
		t.Errorf("details = %+v, want both bad fields", env.Error.Details)
	}
}

func TestEngineErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		api  string
	}{
		{"invalid input", fmt.Errorf("%w: limit above maximum", recommend.ErrInvalidInput), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"not found", recommend.ErrNotFound, http.StatusNotFound, codeNotFound},
		{"run in progress", recommend.ErrRunInProgress, http.StatusConflict, codeConflict},
		{"dependency", fmt.Errorf("%w: list venues: disk gone", recommend.ErrDependency), http.StatusServiceUnavailable, codeDatabase},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, codeTimeout},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, codeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, &fakeEngine{err: tt.err}, nil, nil)
			rec, env := do(t, srv, http.MethodPost, "/api/v1/admin/similarity/run", "")
			if rec.Code != tt.code {
				t.Errorf("status = %d, want %d", rec.Code, tt.code)
			}
			if env.Error == nil || env.Error.Code != tt.api {
				t.Errorf("error = %+v, want code %s", env.Error, tt.api)
			}
		})
	}
}

func TestTrendingAndSimilar(t *testing.T) {
	engine := &fakeEngine{}
	srv := newTestServer(t, engine, nil, nil)

	if rec, _ := do(t, srv, http.MethodGet, "/api/v1/trending?location=Berlin&window=daily&limit=3", ""); rec.Code != http.StatusOK {
		t.Fatalf("trending status = %d", rec.Code)
	}
	if got := strings.Join(engine.lastTrendArgs, ","); got != "Berlin,daily,3" {
		t.Errorf("trending args = %s", got)
	}

	rec, env := do(t, srv, http.MethodGet, "/api/v1/venues/trattoria/similar?limit=4", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("similar status = %d", rec.Code)
	}
	if got := strings.Join(engine.lastSimilarArgs, ","); got != "trattoria,4" {
		t.Errorf("similar args = %s", got)
	}
	var similar []models.SimilarVenue
	if err := json.Unmarshal(env.Data, &similar); err != nil || len(similar) != 1 {
		t.Errorf("similar data = %s", env.Data)
	}
}

func TestFeedback(t *testing.T) {
	engine := &fakeEngine{}
	srv := newTestServer(t, engine, nil, nil)

	body := `{"user_id":"u1","venue_id":"osteria","feedback_type":"positive","action":"clicked","exposure_id":"exp-1"}`
	rec, env := do(t, srv, http.MethodPost, "/api/v1/feedback", body)
	if rec.Code != http.StatusOK || env.Status != "success" {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if engine.lastFeedback.ExposureID != "exp-1" || engine.lastFeedback.Action != models.InteractionClicked {
		t.Errorf("feedback = %+v", engine.lastFeedback)
	}

	for _, bad := range []string{`{"user_id":`, `{"user_id":"u1","surprise":true}`} {
		if rec, _ := do(t, srv, http.MethodPost, "/api/v1/feedback", bad); rec.Code != http.StatusBadRequest {
			t.Errorf("body %s: status = %d, want 400", bad, rec.Code)
		}
	}
}

func TestUpsertVenue(t *testing.T) {
	engine := &fakeEngine{}
	srv := newTestServer(t, engine, nil, nil)

	rec, _ := do(t, srv, http.MethodPut, "/api/v1/venues/trattoria", `{"name":"Trattoria","city":"Berlin","price_tier":2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if engine.lastVenue.ID != "trattoria" {
		t.Errorf("venue id = %q, want path id", engine.lastVenue.ID)
	}

	rec, env := do(t, srv, http.MethodPut, "/api/v1/venues/trattoria", `{"id":"osteria","name":"Osteria"}`)
	if rec.Code != http.StatusBadRequest || env.Error.Details["field"] != "id" {
		t.Errorf("mismatched id: status %d, error %+v", rec.Code, env.Error)
	}
}

func TestRecordInteraction(t *testing.T) {
	engine := &fakeEngine{}
	srv := newTestServer(t, engine, nil, nil)

	body := `{"user_id":"u1","venue_id":"osteria","type":"booked","completed":true}`
	rec, env := do(t, srv, http.MethodPost, "/api/v1/interactions", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var stored models.Interaction
	if err := json.Unmarshal(env.Data, &stored); err != nil || stored.ID != "int-2" || !stored.Completed {
		t.Errorf("stored = %+v (%v)", stored, err)
	}
}

func TestRunTrends_DefaultWindow(t *testing.T) {
	engine := &fakeEngine{}
	srv := newTestServer(t, engine, nil, nil)

	if rec, _ := do(t, srv, http.MethodPost, "/api/v1/admin/trends/run?location=Berlin", ""); rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := strings.Join(engine.lastTrendArgs, ","); got != "Berlin,weekly" {
		t.Errorf("args = %s", got)
	}
}

func TestStatusAndPreferences(t *testing.T) {
	srv := newTestServer(t, &fakeEngine{}, nil, nil)

	rec, env := do(t, srv, http.MethodGet, "/api/v1/admin/status", "")
	if rec.Code != http.StatusOK || !strings.Contains(string(env.Data), `"exposure_breaker":"closed"`) {
		t.Errorf("status: %d %s", rec.Code, env.Data)
	}

	rec, env = do(t, srv, http.MethodGet, "/api/v1/users/u1/preferences", "")
	if rec.Code != http.StatusOK || string(env.Data) != "[]" {
		t.Errorf("preferences: %d %s", rec.Code, env.Data)
	}
}

func TestHealthEndpoints(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		pinger Pinger
		want   int
	}{
		{"liveness", "/healthz", fakePinger{err: errors.New("down")}, http.StatusOK},
		{"ready", "/readyz", fakePinger{}, http.StatusOK},
		{"not ready", "/readyz", fakePinger{err: errors.New("down")}, http.StatusServiceUnavailable},
		{"ready without store", "/readyz", nil, http.StatusOK},
		{"metrics", "/metrics", nil, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, &fakeEngine{}, tt.pinger, nil)
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestRouter_NotFoundAndMethod(t *testing.T) {
	srv := newTestServer(t, &fakeEngine{}, nil, nil)

	if rec, env := do(t, srv, http.MethodGet, "/api/v1/nope", ""); rec.Code != http.StatusNotFound || env.Error.Code != codeNotFound {
		t.Errorf("not found: %d %+v", rec.Code, env.Error)
	}
	if rec, _ := do(t, srv, http.MethodDelete, "/api/v1/feedback", ""); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("method: %d", rec.Code)
	}
}

func TestRateLimit(t *testing.T) {
	cfg := DefaultChiMiddlewareConfig()
	cfg.RateLimitRequests = 2
	cfg.RateLimitWindow = time.Minute
	srv := newTestServer(t, &fakeEngine{}, nil, cfg)

	var last int
	for range 3 {
		rec, _ := do(t, srv, http.MethodGet, "/api/v1/trending", "")
		last = rec.Code
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("third request status = %d, want 429", last)
	}

	// Probes are outside the limited group.
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("healthz status = %d", rec.Code)
	}
}
