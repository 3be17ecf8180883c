// Dinewise - Restaurant Recommendation Core
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/dinewise

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordRecommendRequest(t *testing.T) {
	before := testutil.ToFloat64(RecommendResponses.WithLabelValues("personalized", "trending"))
	beforeErr := testutil.ToFloat64(RecommendErrors.WithLabelValues("personalized"))

	RecordRecommendRequest("personalized", "trending", 5*time.Millisecond, nil)
	RecordRecommendRequest("personalized", "", time.Millisecond, errors.New("store down"))

	if got := testutil.ToFloat64(RecommendResponses.WithLabelValues("personalized", "trending")); got != before+1 {
		t.Errorf("responses = %v, want %v", got, before+1)
	}
	if got := testutil.ToFloat64(RecommendErrors.WithLabelValues("personalized")); got != beforeErr+1 {
		t.Errorf("errors = %v, want %v", got, beforeErr+1)
	}
}

func TestRecordExposureWrite(t *testing.T) {
	ok := testutil.ToFloat64(ExposureLogWrites.WithLabelValues(OutcomeSuccess))
	failed := testutil.ToFloat64(ExposureLogWrites.WithLabelValues(OutcomeError))

	RecordExposureWrite(nil)
	RecordExposureWrite(errors.New("disk full"))

	if got := testutil.ToFloat64(ExposureLogWrites.WithLabelValues(OutcomeSuccess)); got != ok+1 {
		t.Errorf("success writes = %v, want %v", got, ok+1)
	}
	if got := testutil.ToFloat64(ExposureLogWrites.WithLabelValues(OutcomeError)); got != failed+1 {
		t.Errorf("failed writes = %v, want %v", got, failed+1)
	}
}

func TestRecordBatchRun(t *testing.T) {
	RecordBatchRun("similarity", OutcomeSuccess, 2*time.Second)
	RecordBatchRun("similarity", OutcomeSkipped, time.Millisecond)

	if got := testutil.ToFloat64(BatchRuns.WithLabelValues("similarity", OutcomeSkipped)); got < 1 {
		t.Errorf("skipped runs = %v, want >= 1", got)
	}
	if got := testutil.ToFloat64(BatchLastSuccess.WithLabelValues("similarity")); got <= 0 {
		t.Errorf("last success = %v, want > 0", got)
	}
}

func TestRecordSimilarityEdges(t *testing.T) {
	RecordSimilarityEdges(10, map[string]int{"hybrid": 12, "content": 4})

	if got := testutil.ToFloat64(SimilarityEdgesWritten.WithLabelValues("hybrid")); got != 12 {
		t.Errorf("hybrid edges = %v, want 12", got)
	}
	if got := testutil.ToFloat64(SimilarityEdgesWritten.WithLabelValues("content")); got != 4 {
		t.Errorf("content edges = %v, want 4", got)
	}
}

func TestRecordNeighborCache(t *testing.T) {
	hits := testutil.ToFloat64(NeighborCacheHits)
	misses := testutil.ToFloat64(NeighborCacheMisses)

	RecordNeighborCache(true)
	RecordNeighborCache(false)
	RecordNeighborCache(false)

	if got := testutil.ToFloat64(NeighborCacheHits); got != hits+1 {
		t.Errorf("hits = %v, want %v", got, hits+1)
	}
	if got := testutil.ToFloat64(NeighborCacheMisses); got != misses+2 {
		t.Errorf("misses = %v, want %v", got, misses+2)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/trending", "200"))
	RecordAPIRequest("GET", "/api/v1/trending", 200, 3*time.Millisecond)
	if got := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/trending", "200")); got != before+1 {
		t.Errorf("requests = %v, want %v", got, before+1)
	}
}
