// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package recommend

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/tomtom215/dinewise/internal/metrics"
	"github.com/tomtom215/dinewise/internal/models"
	"github.com/tomtom215/dinewise/internal/recommend/algorithms"
	"github.com/tomtom215/dinewise/internal/validation"
)

// ReasonSimilarToHistory is attached when the strongest edge carries no reasons.
const ReasonSimilarToHistory = "Similar to places you enjoyed"

// Request is a personalization query. All filters are optional.
type Request struct {
	UserID string `json:"user_id,omitempty" validate:"max=128,trimmed"`

	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,longitude"`
	RadiusKm  float64  `json:"radius_km,omitempty" validate:"gte=0,lte=500"`

	// Location is a city; it scopes trending and restricts candidates.
	Location string `json:"location,omitempty" validate:"max=128"`

	Cuisine    string   `json:"cuisine,omitempty" validate:"max=64"`
	PriceRange *int     `json:"price_range,omitempty" validate:"omitempty,min=1,max=4"`
	Rating     *float64 `json:"rating,omitempty" validate:"omitempty,min=0,max=5"`
	TimeOfDay  string   `json:"time_of_day,omitempty" validate:"omitempty,meal_period"`

	Limit int `json:"limit,omitempty" validate:"gte=0"`
}

// Recommendation is one ranked venue.
type Recommendation struct {
	Venue      models.Venue `json:"venue"`
	Score      float64      `json:"score"`
	Confidence float64      `json:"confidence"`
	Reasons    []string     `json:"reasons"`
	Algorithm  string       `json:"algorithm"`
}

// Response is the result of GetPersonalizedRecommendations.
type Response struct {
	Recommendations []Recommendation `json:"recommendations"`
	Algorithm       string           `json:"algorithm"`
	ExposureID      string           `json:"exposure_id,omitempty"`
	GeneratedAt     time.Time        `json:"generated_at"`
}

// candidate accumulates neighbor evidence for one venue.
type candidate struct {
	venueID string
	score   float64
	edges   int
	best    models.SimilarityEdge
	venue   models.Venue
}

// GetPersonalizedRecommendations ranks venues for a user.
//
// Users with history get hybrid neighbors of the venues they engaged with,
// boosted by their preferences and by trending. Anonymous users, unknown
// users and users whose expansion yields nothing get trending venues. An
// error is returned only for invalid input or an unreachable catalog.
func (e *Engine) GetPersonalizedRecommendations(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := e.getPersonalized(ctx, req)
	algorithm := ""
	if resp != nil {
		algorithm = resp.Algorithm
	}
	metrics.RecordRecommendRequest("personalized", algorithm, time.Since(start), err)
	return resp, err
}

func (e *Engine) getPersonalized(ctx context.Context, req Request) (*Response, error) {
	if err := e.normalizeRequest(&req); err != nil {
		return nil, err
	}
	logger := e.requestLogger(ctx)

	var (
		recs      []Recommendation
		algorithm = models.AlgorithmHybridPersonalized
	)
	if req.UserID != "" {
		var err error
		recs, err = e.personalize(ctx, &req)
		if err != nil {
			logger.Warn().Err(err).Str("user_id", req.UserID).Msg("personalization failed, falling back to trending")
			recs = nil
		}
	}

	if len(recs) == 0 {
		algorithm = models.AlgorithmTrending
		var err error
		recs, err = e.trendingFallback(ctx, &req)
		if err != nil {
			return nil, err
		}
	}

	if recs == nil {
		recs = []Recommendation{}
	}
	resp := &Response{
		Recommendations: recs,
		Algorithm:       algorithm,
		GeneratedAt:     e.now().UTC(),
	}
	resp.ExposureID = e.logExposure(ctx, req.UserID, algorithm, recs)

	logger.Debug().
		Str("user_id", req.UserID).
		Str("algorithm", algorithm).
		Int("results", len(recs)).
		Msg("recommendations served")
	return resp, nil
}

// normalizeRequest validates req and fills defaults in place.
func (e *Engine) normalizeRequest(req *Request) error {
	if err := validation.ValidateStruct(req); err != nil {
		return invalidInput(err)
	}
	if (req.Latitude == nil) != (req.Longitude == nil) {
		return invalidInputf("latitude and longitude must be provided together")
	}
	n, err := e.limit(req.Limit)
	if err != nil {
		return err
	}
	req.Limit = n
	if req.RadiusKm == 0 {
		req.RadiusKm = e.config.DefaultRadiusKm
	}
	req.Cuisine = models.NormalizeTag(req.Cuisine)
	req.Location = normalizeScope(req.Location)
	return nil
}

// personalize runs the neighbor expansion for a user. It returns no
// recommendations when the user has no positive history.
func (e *Engine) personalize(ctx context.Context, req *Request) ([]Recommendation, error) {
	history, err := e.store.GetUserInteractions(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	seeds, excluded := seedVenues(history)
	if len(seeds) == 0 {
		return nil, nil
	}

	candidates, err := e.expandNeighbors(ctx, seeds, excluded)
	if err != nil || len(candidates) == 0 {
		return nil, err
	}

	ids := make([]string, 0, len(candidates))
	for id := range candidates {
		ids = append(ids, id)
	}
	venues, err := e.store.GetVenuesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	eligible := make([]*candidate, 0, len(candidates))
	for id, c := range candidates {
		v, ok := venues[id]
		if !ok || !v.Active || !matchesFilters(&v, req) {
			continue
		}
		c.venue = v
		eligible = append(eligible, c)
	}
	if len(eligible) == 0 {
		return nil, nil
	}

	e.applyPreferenceBoost(ctx, req.UserID, eligible)
	boosts := e.trendBoosts(ctx, eligible)

	recs := make([]Recommendation, len(eligible))
	for i, c := range eligible {
		final := c.score * (1 + e.config.TrendBoostMax*boosts[c.venueID])
		reasons := slices.Clone(c.best.Evidence.Reasons)
		if len(reasons) == 0 {
			reasons = []string{ReasonSimilarToHistory}
		}
		recs[i] = Recommendation{
			Venue:      c.venue,
			Score:      final,
			Confidence: clampUnit(final / (1 + e.config.TrendBoostMax)),
			Reasons:    reasons,
			Algorithm:  models.AlgorithmHybridPersonalized,
		}
	}

	edgeCount := make(map[string]int, len(eligible))
	for _, c := range eligible {
		edgeCount[c.venueID] = c.edges
	}
	slices.SortFunc(recs, func(a, b Recommendation) int {
		return cmp.Or(
			cmp.Compare(b.Score, a.Score),
			cmp.Compare(edgeCount[b.Venue.ID], edgeCount[a.Venue.ID]),
			cmp.Compare(a.Venue.ID, b.Venue.ID),
		)
	})
	if len(recs) > req.Limit {
		recs = recs[:req.Limit]
	}
	return recs, nil
}

// seedVenues returns the venues whose latest engagement is positive, in
// first-seen order, and every venue the user has touched at all. Views are
// passive and never decide a venue's signal.
func seedVenues(history []models.Interaction) (seeds []string, excluded map[string]struct{}) {
	excluded = make(map[string]struct{}, len(history))
	latest := make(map[string]*models.Interaction)
	var order []string
	for i := range history {
		in := &history[i]
		excluded[in.VenueID] = struct{}{}
		if in.Type == models.InteractionViewed {
			continue
		}
		cur, ok := latest[in.VenueID]
		if !ok {
			order = append(order, in.VenueID)
		}
		if !ok || in.OccurredAt.After(cur.OccurredAt) {
			latest[in.VenueID] = in
		}
	}
	for _, id := range order {
		if latest[id].IsPositive() {
			seeds = append(seeds, id)
		}
	}
	return seeds, excluded
}

// expandNeighbors aggregates hybrid edges out of the seeds. A candidate keeps
// its strongest edge score and counts how many seeds reach it.
func (e *Engine) expandNeighbors(ctx context.Context, seeds []string, excluded map[string]struct{}) (map[string]*candidate, error) {
	candidates := make(map[string]*candidate)
	for _, seed := range seeds {
		edges, err := e.neighborsOf(ctx, seed)
		if err != nil {
			return nil, err
		}
		for _, edge := range edges {
			if _, skip := excluded[edge.VenueB]; skip {
				continue
			}
			c, ok := candidates[edge.VenueB]
			if !ok {
				c = &candidate{venueID: edge.VenueB}
				candidates[edge.VenueB] = c
			}
			c.edges++
			if edge.Score > c.score {
				c.score = edge.Score
				c.best = edge
			}
		}
	}
	return candidates, nil
}

// neighborsOf returns the hybrid edges out of a seed venue, through the cache.
func (e *Engine) neighborsOf(ctx context.Context, seed string) ([]models.SimilarityEdge, error) {
	if e.neighbors == nil {
		return e.store.GetSimilarityEdges(ctx, seed, models.SimilarityHybrid, 0)
	}
	if edges, ok := e.neighbors.Get(seed); ok {
		metrics.RecordNeighborCache(true)
		return edges, nil
	}
	metrics.RecordNeighborCache(false)

	gen := e.neighborGeneration()
	edges, err := e.store.GetSimilarityEdges(ctx, seed, models.SimilarityHybrid, 0)
	if err != nil {
		return nil, err
	}
	e.cacheNeighbors(seed, edges, gen)
	return edges, nil
}

// applyPreferenceBoost adds the scaled confidence of matching preferences to
// each candidate, capped at 1. A preference lookup failure leaves scores as
// they are.
func (e *Engine) applyPreferenceBoost(ctx context.Context, userID string, candidates []*candidate) {
	prefs, err := e.store.GetPreferenceWeights(ctx, userID)
	if err != nil {
		logger := e.requestLogger(ctx)
		logger.Warn().Err(err).Str("user_id", userID).Msg("preference lookup failed, ranking without preferences")
		return
	}
	if len(prefs) == 0 {
		return
	}

	confidence := make(map[models.PreferenceKey]float64, len(prefs))
	for i := range prefs {
		confidence[prefs[i].Key()] = prefs[i].Confidence
	}
	for _, c := range candidates {
		sum := 0.0
		for _, key := range c.venue.PreferenceKeys() {
			sum += confidence[key]
		}
		c.score = min(1, c.score+e.config.PreferenceBoost*sum)
	}
}

// trendBoosts returns each candidate's latest trend score relative to the
// best among them, in [0,1]. Missing snapshots contribute nothing.
func (e *Engine) trendBoosts(ctx context.Context, candidates []*candidate) map[string]float64 {
	if e.config.TrendBoostMax == 0 {
		return nil
	}
	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.venueID
	}
	snapshots, err := e.store.GetLatestTrendSnapshots(ctx, ids, e.config.TrendBoostWindow)
	if err != nil {
		logger := e.requestLogger(ctx)
		logger.Warn().Err(err).Msg("trend snapshot lookup failed, ranking without trend boost")
		return nil
	}

	maxScore := 0.0
	for _, s := range snapshots {
		maxScore = max(maxScore, s.Score)
	}
	if maxScore == 0 {
		return nil
	}
	boosts := make(map[string]float64, len(snapshots))
	for id, s := range snapshots {
		boosts[id] = s.Score / maxScore
	}
	return boosts
}

// trendingFallback serves weekly trending venues in the request's location,
// filtered like personalized candidates.
func (e *Engine) trendingFallback(ctx context.Context, req *Request) ([]Recommendation, error) {
	scored, err := e.scoreTrending(ctx, req.Location, models.WindowWeekly, e.now())
	if err != nil {
		return nil, err
	}

	var recs []Recommendation
	for _, tv := range positiveTrending(scored) {
		if !matchesFilters(&tv.Venue, req) {
			continue
		}
		recs = append(recs, Recommendation{
			Venue:      tv.Venue,
			Score:      tv.Score,
			Confidence: e.config.FallbackConfidence,
			Reasons:    tv.Reasons,
			Algorithm:  models.AlgorithmTrending,
		})
		if len(recs) == req.Limit {
			break
		}
	}
	if len(recs) > 0 {
		top := recs[0].Score
		for i := range recs {
			recs[i].Score /= top
		}
	}
	return recs, nil
}

// matchesFilters applies the request's hard filters to a venue.
func matchesFilters(v *models.Venue, req *Request) bool {
	if req.Cuisine != "" && !v.HasCuisine(req.Cuisine) {
		return false
	}
	if req.PriceRange != nil && v.PriceTier != *req.PriceRange {
		return false
	}
	if req.Rating != nil && v.Rating < *req.Rating {
		return false
	}
	if req.Location != "" && normalizeScope(v.City) != req.Location {
		return false
	}
	if req.TimeOfDay != "" && !v.ServesMeal(req.TimeOfDay) {
		return false
	}
	if req.Latitude != nil && req.Longitude != nil {
		if !v.HasLocation() {
			return false
		}
		d := algorithms.HaversineKm(*req.Latitude, *req.Longitude, *v.Latitude, *v.Longitude)
		if d > req.RadiusKm {
			return false
		}
	}
	return true
}

func clampUnit(v float64) float64 {
	return min(1, max(0, v))
}
