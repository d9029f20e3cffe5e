// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Patrik Baldon

package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/PatrikBaldon/RegiFarm-sub002/internal/adapter"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/catalog"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/logger"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/mock"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/store"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/utils"
	"github.com/PatrikBaldon/RegiFarm-sub002/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestClientSyncSvc(t *testing.T, ctrl *gomock.Controller) (*clientSyncService, *mock.MockReplicaStorage, *mock.MockServerAdapter) {
	t.Helper()
	mockReplica := mock.NewMockReplicaStorage(ctrl)
	mockAdapter := mock.NewMockServerAdapter(ctrl)

	storages := &store.ClientStorages{Replica: mockReplica}
	svc := NewClientSyncService(storages, mockAdapter, catalog.Farm(), logger.Nop()).(*clientSyncService)

	return svc, mockReplica, mockAdapter
}

// ── Bootstrap ───────────────────────────────────────────────────────────────

func TestClientSyncService_Bootstrap(t *testing.T) {
	ctx := context.Background()
	watermark := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("success: chunks applied and watermarks seeded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockReplica, mockAdapter := newTestClientSyncSvc(t, ctrl)

		locations := []models.Record{{ID: uuid.New(), UpdatedAt: watermark.Add(-time.Hour)}}
		animals := []models.Record{{ID: uuid.New()}, {ID: uuid.New()}}

		mockReplica.EXPECT().Reset(ctx).Return(nil)
		mockAdapter.EXPECT().StreamPull(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, apply func(models.SyncChunk) error) (time.Time, error) {
				require.NoError(t, apply(models.SyncChunk{Entity: catalog.EntityLocations, Records: locations}))
				require.NoError(t, apply(models.SyncChunk{Entity: catalog.EntityAnimals, Records: animals}))
				return watermark, nil
			})
		mockReplica.EXPECT().ApplyRecords(ctx, catalog.EntityLocations, locations).Return(nil)
		mockReplica.EXPECT().ApplyRecords(ctx, catalog.EntityAnimals, animals).Return(nil)
		for _, descriptor := range catalog.Farm().Entities() {
			mockReplica.EXPECT().SetWatermark(ctx, descriptor.Name, watermark).Return(nil)
		}

		require.NoError(t, svc.Bootstrap(ctx))
	})

	t.Run("error: interrupted stream leaves the replica reset", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockReplica, mockAdapter := newTestClientSyncSvc(t, ctrl)

		mockReplica.EXPECT().Reset(ctx).Return(nil)
		mockAdapter.EXPECT().StreamPull(ctx, gomock.Any()).Return(time.Time{}, adapter.ErrStreamInterrupted)
		mockReplica.EXPECT().Reset(ctx).Return(nil)

		err := svc.Bootstrap(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, adapter.ErrStreamInterrupted)
	})

	t.Run("error: replica apply failure aborts and resets", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockReplica, mockAdapter := newTestClientSyncSvc(t, ctrl)
		applyErr := errors.New("disk full")

		mockReplica.EXPECT().Reset(ctx).Return(nil)
		mockAdapter.EXPECT().StreamPull(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, apply func(models.SyncChunk) error) (time.Time, error) {
				err := apply(models.SyncChunk{Entity: catalog.EntityLocations, Records: []models.Record{{ID: uuid.New()}}})
				require.Error(t, err)
				return time.Time{}, err
			})
		mockReplica.EXPECT().ApplyRecords(ctx, catalog.EntityLocations, gomock.Any()).Return(applyErr)
		mockReplica.EXPECT().Reset(ctx).Return(nil)

		err := svc.Bootstrap(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, applyErr)
	})
}

// ── Sync ────────────────────────────────────────────────────────────────────

func TestClientSyncService_Sync(t *testing.T) {
	ctx := context.Background()
	since := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("success: push pending, handle outcomes, pull deltas", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockReplica, mockAdapter := newTestClientSyncSvc(t, ctrl)

		farmID := uuid.New()
		signed, err := utils.GenerateJWTToken("regifarm-sync", farmID, time.Hour, "sign-key")
		require.NoError(t, err)

		recordID := uuid.New()
		createdID := uuid.New()
		createdAt := since.Add(-time.Minute)
		currentRow := models.Record{ID: recordID, UpdatedAt: since.Add(time.Minute)}
		pending := []models.PendingMutation{
			{LocalID: 1, Mutation: models.Mutation{CorrelationToken: "tok-1", Entity: catalog.EntityLocations, Op: models.OpCreate, Fields: json.RawMessage(`{"name": "barn"}`)}},
			{LocalID: 2, Mutation: models.Mutation{CorrelationToken: "tok-2", Entity: catalog.EntityAnimals, Op: models.OpUpdate, RecordID: &recordID}},
		}

		mockReplica.EXPECT().IsEmpty(ctx).Return(false, nil)
		mockReplica.EXPECT().PendingMutations(ctx).Return(pending, nil)
		mockAdapter.EXPECT().Push(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, req models.PushRequest) (models.PushResponse, error) {
				require.Len(t, req.Mutations, 2)
				assert.Equal(t, "tok-1", req.Mutations[0].CorrelationToken)
				assert.Equal(t, "tok-2", req.Mutations[1].CorrelationToken)
				return models.PushResponse{Outcomes: []models.Outcome{
					{CorrelationToken: "tok-1", Status: models.OutcomeAccepted, RecordID: &createdID, CreatedAt: &createdAt, UpdatedAt: &createdAt},
					{CorrelationToken: "tok-2", Status: models.OutcomeConflict, Current: &currentRow},
				}}, nil
			})
		// the accepted create appears locally under the server-assigned key
		mockAdapter.EXPECT().Token().Return(signed.SignedString)
		mockReplica.EXPECT().ApplyRecords(ctx, catalog.EntityLocations, []models.Record{{
			ID:        createdID,
			FarmID:    farmID,
			Fields:    json.RawMessage(`{"name": "barn"}`),
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		}}).Return(nil)
		// the conflict loser is overwritten with the server's current row
		mockReplica.EXPECT().ApplyRecords(ctx, catalog.EntityAnimals, []models.Record{currentRow}).Return(nil)
		mockReplica.EXPECT().ResolvePending(ctx, "tok-1").Return(nil)
		mockReplica.EXPECT().ResolvePending(ctx, "tok-2").Return(nil)

		watermarks := models.Watermarks{catalog.EntityLocations: since}
		delta := models.EntityDelta{
			Records:      []models.Record{{ID: uuid.New(), UpdatedAt: since.Add(time.Hour)}},
			NewWatermark: since.Add(time.Hour),
		}
		mockReplica.EXPECT().Watermarks(ctx).Return(watermarks, nil)
		mockAdapter.EXPECT().IncrementalPull(ctx, models.IncrementalPullRequest{Watermarks: watermarks}).
			Return(models.IncrementalPullResponse{
				Entities: map[string]models.EntityDelta{catalog.EntityLocations: delta},
			}, nil)
		mockReplica.EXPECT().ApplyRecords(ctx, catalog.EntityLocations, delta.Records).Return(nil)
		mockReplica.EXPECT().SetWatermark(ctx, catalog.EntityLocations, delta.NewWatermark).Return(nil)

		require.NoError(t, svc.Sync(ctx))
	})

	t.Run("accepted create with an unreadable token is left to the pull", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockReplica, mockAdapter := newTestClientSyncSvc(t, ctrl)

		createdID := uuid.New()
		pending := []models.PendingMutation{
			{LocalID: 1, Mutation: models.Mutation{CorrelationToken: "tok-1", Entity: catalog.EntityLocations, Op: models.OpCreate, Fields: json.RawMessage(`{"name": "barn"}`)}},
		}

		mockReplica.EXPECT().IsEmpty(ctx).Return(false, nil)
		mockReplica.EXPECT().PendingMutations(ctx).Return(pending, nil)
		mockAdapter.EXPECT().Push(ctx, gomock.Any()).Return(models.PushResponse{Outcomes: []models.Outcome{
			{CorrelationToken: "tok-1", Status: models.OutcomeAccepted, RecordID: &createdID},
		}}, nil)
		// no ApplyRecords for the create: the farm label cannot be resolved,
		// so the next incremental pull delivers the row instead
		mockAdapter.EXPECT().Token().Return("opaque")
		mockReplica.EXPECT().ResolvePending(ctx, "tok-1").Return(nil)

		mockReplica.EXPECT().Watermarks(ctx).Return(models.Watermarks{}, nil)
		mockAdapter.EXPECT().IncrementalPull(ctx, gomock.Any()).Return(models.IncrementalPullResponse{}, nil)

		require.NoError(t, svc.Sync(ctx))
	})

	t.Run("success: empty delta still advances the watermark", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockReplica, mockAdapter := newTestClientSyncSvc(t, ctrl)

		mockReplica.EXPECT().IsEmpty(ctx).Return(false, nil)
		mockReplica.EXPECT().PendingMutations(ctx).Return(nil, nil)
		mockReplica.EXPECT().Watermarks(ctx).Return(models.Watermarks{}, nil)
		mockAdapter.EXPECT().IncrementalPull(ctx, gomock.Any()).Return(models.IncrementalPullResponse{
			Entities: map[string]models.EntityDelta{
				catalog.EntityFeedTypes: {Records: []models.Record{}, NewWatermark: since},
			},
		}, nil)
		mockReplica.EXPECT().SetWatermark(ctx, catalog.EntityFeedTypes, since).Return(nil)

		require.NoError(t, svc.Sync(ctx))
	})

	t.Run("error: failed push leaves the queue untouched", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockReplica, mockAdapter := newTestClientSyncSvc(t, ctrl)

		pending := []models.PendingMutation{
			{LocalID: 1, Mutation: models.Mutation{CorrelationToken: "tok-1", Entity: catalog.EntityLocations, Op: models.OpCreate}},
		}

		mockReplica.EXPECT().IsEmpty(ctx).Return(false, nil)
		mockReplica.EXPECT().PendingMutations(ctx).Return(pending, nil)
		mockAdapter.EXPECT().Push(ctx, gomock.Any()).Return(models.PushResponse{}, adapter.ErrUnavailable)
		// no ResolvePending: the next cycle replays the batch

		err := svc.Sync(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, adapter.ErrUnavailable)
	})

	t.Run("error: unauthorized pull maps to token error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockReplica, mockAdapter := newTestClientSyncSvc(t, ctrl)

		mockReplica.EXPECT().IsEmpty(ctx).Return(false, nil)
		mockReplica.EXPECT().PendingMutations(ctx).Return(nil, nil)
		mockReplica.EXPECT().Watermarks(ctx).Return(models.Watermarks{}, nil)
		mockAdapter.EXPECT().IncrementalPull(ctx, gomock.Any()).
			Return(models.IncrementalPullResponse{}, adapter.ErrUnauthorized)

		err := svc.Sync(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
	})

	t.Run("empty replica bootstraps before syncing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, mockReplica, mockAdapter := newTestClientSyncSvc(t, ctrl)
		watermark := since

		mockReplica.EXPECT().IsEmpty(ctx).Return(true, nil)
		mockReplica.EXPECT().Reset(ctx).Return(nil)
		mockAdapter.EXPECT().StreamPull(ctx, gomock.Any()).Return(watermark, nil)
		for _, descriptor := range catalog.Farm().Entities() {
			mockReplica.EXPECT().SetWatermark(ctx, descriptor.Name, watermark).Return(nil)
		}
		mockReplica.EXPECT().PendingMutations(ctx).Return(nil, nil)
		mockReplica.EXPECT().Watermarks(ctx).Return(models.Watermarks{}, nil)
		mockAdapter.EXPECT().IncrementalPull(ctx, gomock.Any()).Return(models.IncrementalPullResponse{}, nil)

		require.NoError(t, svc.Sync(ctx))
	})
}

// ── mapAdapterError ─────────────────────────────────────────────────────────

func TestMapAdapterError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{name: "nil passes through", in: nil, want: nil},
		{name: "unauthorized", in: adapter.ErrUnauthorized, want: ErrTokenIsExpiredOrInvalid},
		{name: "not found", in: adapter.ErrNotFound, want: store.ErrFarmNotFound},
		{name: "conflict", in: adapter.ErrConflict, want: store.ErrVersionConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapAdapterError(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}

	t.Run("unknown errors pass through unchanged", func(t *testing.T) {
		unknown := errors.New("boom")
		assert.Equal(t, unknown, mapAdapterError(unknown))
	})
}
