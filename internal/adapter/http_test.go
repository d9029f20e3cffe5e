// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Patrik Baldon

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/PatrikBaldon/RegiFarm-sub002/internal/catalog"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/config"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/logger"
	"github.com/PatrikBaldon/RegiFarm-sub002/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()
	cfg := config.Adapter{BaseURL: serverURL, Token: "farm-token"}

	a, err := NewHTTPServerAdapter(cfg, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

func TestNewHTTPServerAdapter_InvalidAddress(t *testing.T) {
	_, err := NewHTTPServerAdapter(config.Adapter{BaseURL: "   "}, logger.Nop())
	require.Error(t, err)
}

// ── FullPull ────────────────────────────────────────────────────────────────

func TestFullPull_Success(t *testing.T) {
	watermark := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	want := models.FullPullResponse{
		Entities: map[string][]models.Record{
			catalog.EntityLocations: {{ID: uuid.New(), FarmID: uuid.New(), UpdatedAt: watermark}},
			catalog.EntityAnimals:   {},
		},
		Watermark: watermark,
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/sync/pull/full", r.URL.Path)
		assert.Equal(t, "Bearer farm-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.FullPull(context.Background())

	require.NoError(t, err)
	assert.True(t, got.Watermark.Equal(watermark))
	assert.Len(t, got.Entities[catalog.EntityLocations], 1)
	assert.Empty(t, got.Entities[catalog.EntityAnimals])
}

func TestFullPull_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("token is invalid"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.FullPull(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestFullPull_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.FullPull(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
}

// ── IncrementalPull ─────────────────────────────────────────────────────────

func TestIncrementalPull_Success(t *testing.T) {
	since := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	newWatermark := since.Add(time.Hour)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sync/pull/incremental", r.URL.Path)

		var req models.IncrementalPullRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.True(t, req.Watermarks[catalog.EntityAnimals].Equal(since))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.IncrementalPullResponse{
			Entities: map[string]models.EntityDelta{
				catalog.EntityAnimals: {
					Records:      []models.Record{{ID: uuid.New(), UpdatedAt: newWatermark}},
					NewWatermark: newWatermark,
				},
			},
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.IncrementalPull(context.Background(), models.IncrementalPullRequest{
		Watermarks: models.Watermarks{catalog.EntityAnimals: since},
	})

	require.NoError(t, err)
	delta := got.Entities[catalog.EntityAnimals]
	require.Len(t, delta.Records, 1)
	assert.True(t, delta.NewWatermark.Equal(newWatermark))
}

func TestIncrementalPull_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("farm not found"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.IncrementalPull(context.Background(), models.IncrementalPullRequest{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

// ── Push ────────────────────────────────────────────────────────────────────

func TestPush_Success(t *testing.T) {
	recordID := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sync/push", r.URL.Path)

		var req models.PushRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Mutations, 1)
		assert.Equal(t, "tok-1", req.Mutations[0].CorrelationToken)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.PushResponse{Outcomes: []models.Outcome{
			{CorrelationToken: "tok-1", Status: models.OutcomeAccepted, RecordID: &recordID},
		}})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.Push(context.Background(), models.PushRequest{Mutations: []models.Mutation{
		{CorrelationToken: "tok-1", Entity: catalog.EntityLocations, Op: models.OpCreate, Fields: json.RawMessage(`{"name": "barn"}`)},
	}})

	require.NoError(t, err)
	require.Len(t, got.Outcomes, 1)
	assert.Equal(t, models.OutcomeAccepted, got.Outcomes[0].Status)
	require.NotNil(t, got.Outcomes[0].RecordID)
	assert.Equal(t, recordID, *got.Outcomes[0].RecordID)
}

func TestPush_BadRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("no mutations provided"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Push(context.Background(), models.PushRequest{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadRequest)
}

// ── StreamPull ──────────────────────────────────────────────────────────────

func TestStreamPull_Success(t *testing.T) {
	watermark := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/sync/pull/stream", r.URL.Path)

		w.Header().Set("Content-Type", "application/x-ndjson")
		encoder := json.NewEncoder(w)
		_ = encoder.Encode(models.SyncChunk{Entity: catalog.EntityLocations, Records: []models.Record{{ID: uuid.New()}}})
		_ = encoder.Encode(models.SyncChunk{Entity: catalog.EntityAnimals, Records: []models.Record{{ID: uuid.New()}, {ID: uuid.New()}}})
		_ = encoder.Encode(models.SyncChunk{Done: true, Watermark: &watermark})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)

	var applied []string
	var total int
	got, err := a.StreamPull(context.Background(), func(chunk models.SyncChunk) error {
		applied = append(applied, chunk.Entity)
		total += len(chunk.Records)
		return nil
	})

	require.NoError(t, err)
	assert.True(t, got.Equal(watermark))
	assert.Equal(t, []string{catalog.EntityLocations, catalog.EntityAnimals}, applied)
	assert.Equal(t, 3, total)
}

func TestStreamPull_Interrupted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/x-ndjson")
		encoder := json.NewEncoder(w)
		_ = encoder.Encode(models.SyncChunk{Entity: catalog.EntityLocations, Records: []models.Record{{ID: uuid.New()}}})
		// no terminal marker: the snapshot died server-side
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.StreamPull(context.Background(), func(models.SyncChunk) error { return nil })

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStreamInterrupted)
}

func TestStreamPull_ApplyError(t *testing.T) {
	watermark := time.Now().UTC()
	applyErr := errors.New("replica write failed")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		encoder := json.NewEncoder(w)
		_ = encoder.Encode(models.SyncChunk{Entity: catalog.EntityLocations, Records: []models.Record{{ID: uuid.New()}}})
		_ = encoder.Encode(models.SyncChunk{Done: true, Watermark: &watermark})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.StreamPull(context.Background(), func(models.SyncChunk) error { return applyErr })

	require.Error(t, err)
	assert.ErrorIs(t, err, applyErr)
}

func TestStreamPull_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.StreamPull(context.Background(), func(models.SyncChunk) error { return nil })

	require.Error(t, err)
}

// ── Token management ────────────────────────────────────────────────────────

func TestSetToken_TrimsWhitespace(t *testing.T) {
	a := newTestAdapter(t, "http://localhost:1")
	a.SetToken("  new-token \n")
	assert.Equal(t, "new-token", a.Token())
}
