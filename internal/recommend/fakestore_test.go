// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package recommend

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/tomtom215/dinewise/internal/models"
)

var errStoreDown = errors.New("store unavailable")

// fakeStore is an in-memory Store. Setting a method name in fail makes that
// method return errStoreDown.
type fakeStore struct {
	mu           sync.Mutex
	venues       map[string]models.Venue
	interactions []models.Interaction
	edges        []models.SimilarityEdge
	snapshots    map[string]models.TrendSnapshot
	prefs        map[string]map[models.PreferenceKey]models.PreferenceWeight
	exposures    map[string]*models.ExposureLogEntry
	fail         map[string]bool

	replaceCalls int
	edgeReads    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		venues:    make(map[string]models.Venue),
		snapshots: make(map[string]models.TrendSnapshot),
		prefs:     make(map[string]map[models.PreferenceKey]models.PreferenceWeight),
		exposures: make(map[string]*models.ExposureLogEntry),
		fail:      make(map[string]bool),
	}
}

func (f *fakeStore) failing(method string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fail[method]
}

func (f *fakeStore) setFail(method string, on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[method] = on
}

func (f *fakeStore) UpsertVenue(_ context.Context, v *models.Venue) error {
	if f.failing("UpsertVenue") {
		return errStoreDown
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.venues[v.ID] = *v
	return nil
}

func (f *fakeStore) GetVenue(_ context.Context, id string) (*models.Venue, error) {
	if f.failing("GetVenue") {
		return nil, errStoreDown
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.venues[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &v, nil
}

func (f *fakeStore) GetVenuesByIDs(_ context.Context, ids []string) (map[string]models.Venue, error) {
	if f.failing("GetVenuesByIDs") {
		return nil, errStoreDown
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]models.Venue, len(ids))
	for _, id := range ids {
		if v, ok := f.venues[id]; ok {
			out[id] = v
		}
	}
	return out, nil
}

func (f *fakeStore) ListVenues(_ context.Context, filter models.VenueFilter) ([]models.Venue, error) {
	if f.failing("ListVenues") {
		return nil, errStoreDown
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Venue
	for _, v := range f.venues {
		if filter.ActiveOnly && !v.Active {
			continue
		}
		if filter.VerifiedOnly && !v.Verified {
			continue
		}
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b models.Venue) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (f *fakeStore) AppendInteraction(_ context.Context, in *models.Interaction) error {
	if f.failing("AppendInteraction") {
		return errStoreDown
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.interactions = append(f.interactions, *in)
	return nil
}

func (f *fakeStore) GetUserInteractions(_ context.Context, userID string) ([]models.Interaction, error) {
	if f.failing("GetUserInteractions") {
		return nil, errStoreDown
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Interaction
	for _, in := range f.interactions {
		if in.UserID == userID {
			out = append(out, in)
		}
	}
	return out, nil
}

func (f *fakeStore) GetCompletedBookers(_ context.Context) (map[string][]string, error) {
	if f.failing("GetCompletedBookers") {
		return nil, errStoreDown
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string][]string)
	for _, in := range f.interactions {
		if in.IsCompletedBooking() && !slices.Contains(out[in.VenueID], in.UserID) {
			out[in.VenueID] = append(out[in.VenueID], in.UserID)
		}
	}
	for id := range out {
		slices.Sort(out[id])
	}
	return out, nil
}

func (f *fakeStore) GetVenueBookers(ctx context.Context, venueID string) ([]string, error) {
	all, err := f.GetCompletedBookers(ctx)
	if err != nil {
		return nil, err
	}
	return all[venueID], nil
}

func (f *fakeStore) CountActivity(_ context.Context, since, until time.Time) (map[string]models.TrendCounts, error) {
	if f.failing("CountActivity") {
		return nil, errStoreDown
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]models.TrendCounts)
	for _, in := range f.interactions {
		if !in.OccurredAt.After(since) || in.OccurredAt.After(until) {
			continue
		}
		c := out[in.VenueID]
		switch {
		case in.IsCompletedBooking():
			c.Bookings++
		case in.Type == models.InteractionReviewed:
			c.Reviews++
		default:
			continue
		}
		out[in.VenueID] = c
	}
	return out, nil
}

func (f *fakeStore) ReplaceSimilarityEdges(_ context.Context, edges []models.SimilarityEdge, batchSize int) (int, error) {
	if f.failing("ReplaceSimilarityEdges") {
		return 0, errStoreDown
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replaceCalls++
	f.edges = slices.Clone(edges)
	return (len(edges) + batchSize - 1) / batchSize, nil
}

func (f *fakeStore) GetSimilarityEdges(_ context.Context, venueID string, kind models.SimilarityKind, limit int) ([]models.SimilarityEdge, error) {
	if f.failing("GetSimilarityEdges") {
		return nil, errStoreDown
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edgeReads++
	var out []models.SimilarityEdge
	for _, e := range f.edges {
		if e.VenueA == venueID && e.Kind == kind {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b models.SimilarityEdge) int {
		return cmp.Or(cmp.Compare(b.Score, a.Score), cmp.Compare(a.VenueB, b.VenueB))
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) UpsertTrendSnapshots(_ context.Context, snapshots []models.TrendSnapshot) error {
	if f.failing("UpsertTrendSnapshots") {
		return errStoreDown
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range snapshots {
		f.snapshots[s.VenueID+"|"+s.Scope+"|"+string(s.Window)+"|"+s.Date] = s
	}
	return nil
}

func (f *fakeStore) GetLatestTrendSnapshots(_ context.Context, venueIDs []string, window models.TimeWindow) (map[string]models.TrendSnapshot, error) {
	if f.failing("GetLatestTrendSnapshots") {
		return nil, errStoreDown
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]models.TrendSnapshot)
	for _, s := range f.snapshots {
		if s.Window != window || !slices.Contains(venueIDs, s.VenueID) {
			continue
		}
		if cur, ok := out[s.VenueID]; !ok || s.Date > cur.Date || (s.Date == cur.Date && s.Score > cur.Score) {
			out[s.VenueID] = s
		}
	}
	return out, nil
}

func (f *fakeStore) GetPreferenceWeights(_ context.Context, userID string) ([]models.PreferenceWeight, error) {
	if f.failing("GetPreferenceWeights") {
		return nil, errStoreDown
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.PreferenceWeight
	for _, p := range f.prefs[userID] {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeStore) UpsertPreferenceWeight(_ context.Context, p *models.PreferenceWeight) error {
	if f.failing("UpsertPreferenceWeight") {
		return errStoreDown
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.prefs[p.UserID] == nil {
		f.prefs[p.UserID] = make(map[models.PreferenceKey]models.PreferenceWeight)
	}
	f.prefs[p.UserID][p.Key()] = *p
	return nil
}

func (f *fakeStore) preference(userID string, t models.PreferenceType, value string) (models.PreferenceWeight, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.prefs[userID][models.PreferenceKey{Type: t, Value: value}]
	return p, ok
}

func (f *fakeStore) InsertExposure(ctx context.Context, e *models.ExposureLogEntry) error {
	if f.failing("InsertExposure") {
		return errStoreDown
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *e
	f.exposures[e.ID] = &cp
	return nil
}

func (f *fakeStore) AnnotateExposure(_ context.Context, id string, outcome *models.ExposureOutcome) (bool, error) {
	if f.failing("AnnotateExposure") {
		return false, errStoreDown
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.exposures[id]
	if !ok {
		return false, nil
	}
	o := *outcome
	e.Outcome = &o
	return true, nil
}
