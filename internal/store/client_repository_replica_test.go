// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Patrik Baldon

package store

import (
	"context"
	"encoding/json"
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

func newTestReplica(t *testing.T) ReplicaStorage {
	t.Helper()

	db, err := NewConnectSQLite(context.Background(), config.Replica{Path: ":memory:"}, logger.Nop())
	require.NoError(t, err)

	t.Cleanup(func() { _ = db.Close() })

	return NewReplicaRepository(db, logger.Nop())
}

func replicaRecord(updatedAt time.Time) models.Record {
	return models.Record{
		ID:        uuid.New(),
		FarmID:    uuid.New(),
		Fields:    json.RawMessage(`{"name": "north pasture"}`),
		CreatedAt: updatedAt.Add(-time.Hour),
		UpdatedAt: updatedAt,
	}
}

func TestReplicaApplyRecords(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("success: roundtrip", func(t *testing.T) {
		replica := newTestReplica(t)
		record := replicaRecord(now)

		require.NoError(t, replica.ApplyRecords(ctx, catalog.EntityLocations, []models.Record{record}))

		got, err := replica.GetRecord(ctx, catalog.EntityLocations, record.ID)
		require.NoError(t, err)
		assert.Equal(t, record.ID, got.ID)
		assert.Equal(t, record.FarmID, got.FarmID)
		assert.JSONEq(t, string(record.Fields), string(got.Fields))
		assert.True(t, got.UpdatedAt.Equal(record.UpdatedAt))
		assert.Nil(t, got.DeletedAt)
	})

	t.Run("success: reapplying the same batch is a no-op", func(t *testing.T) {
		replica := newTestReplica(t)
		record := replicaRecord(now)

		require.NoError(t, replica.ApplyRecords(ctx, catalog.EntityLocations, []models.Record{record}))
		require.NoError(t, replica.ApplyRecords(ctx, catalog.EntityLocations, []models.Record{record}))

		records, err := replica.ListRecords(ctx, catalog.EntityLocations)
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("success: tombstone overwrites the live row", func(t *testing.T) {
		replica := newTestReplica(t)
		record := replicaRecord(now)
		require.NoError(t, replica.ApplyRecords(ctx, catalog.EntityLocations, []models.Record{record}))

		deletedAt := now.Add(time.Minute)
		tombstone := record
		tombstone.UpdatedAt = deletedAt
		tombstone.DeletedAt = &deletedAt
		require.NoError(t, replica.ApplyRecords(ctx, catalog.EntityLocations, []models.Record{tombstone}))

		// gone from live listings, still distinguishable from never-existed
		records, err := replica.ListRecords(ctx, catalog.EntityLocations)
		require.NoError(t, err)
		assert.Empty(t, records)

		got, err := replica.GetRecord(ctx, catalog.EntityLocations, record.ID)
		require.NoError(t, err)
		require.NotNil(t, got.DeletedAt)
		assert.True(t, got.DeletedAt.Equal(deletedAt))
	})

	t.Run("error: unknown record", func(t *testing.T) {
		replica := newTestReplica(t)

		_, err := replica.GetRecord(ctx, catalog.EntityLocations, uuid.New())
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})
}

func TestReplicaWatermarks(t *testing.T) {
	ctx := context.Background()
	replica := newTestReplica(t)
	first := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	watermarks, err := replica.Watermarks(ctx)
	require.NoError(t, err)
	assert.Empty(t, watermarks, "entities never pulled have no watermark")

	require.NoError(t, replica.SetWatermark(ctx, catalog.EntityAnimals, first))
	require.NoError(t, replica.SetWatermark(ctx, catalog.EntityAnimals, first.Add(time.Hour)))
	require.NoError(t, replica.SetWatermark(ctx, catalog.EntityLocations, first))

	watermarks, err = replica.Watermarks(ctx)
	require.NoError(t, err)
	require.Len(t, watermarks, 2)
	assert.True(t, watermarks[catalog.EntityAnimals].Equal(first.Add(time.Hour)))
	assert.True(t, watermarks[catalog.EntityLocations].Equal(first))
}

func TestReplicaReset(t *testing.T) {
	ctx := context.Background()
	replica := newTestReplica(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	empty, err := replica.IsEmpty(ctx)
	require.NoError(t, err)
	assert.True(t, empty)

	require.NoError(t, replica.ApplyRecords(ctx, catalog.EntityLocations, []models.Record{replicaRecord(now)}))
	require.NoError(t, replica.SetWatermark(ctx, catalog.EntityLocations, now))
	require.NoError(t, replica.EnqueueMutation(ctx, models.Mutation{
		CorrelationToken: "tok-1",
		Entity:           catalog.EntityLocations,
		Op:               models.OpCreate,
		Fields:           json.RawMessage(`{"name": "barn"}`),
	}))

	empty, err = replica.IsEmpty(ctx)
	require.NoError(t, err)
	assert.False(t, empty)

	require.NoError(t, replica.Reset(ctx))

	empty, err = replica.IsEmpty(ctx)
	require.NoError(t, err)
	assert.True(t, empty)

	// local work survives a replica reset
	pending, err := replica.PendingMutations(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestReplicaPendingMutations(t *testing.T) {
	ctx := context.Background()
	replica := newTestReplica(t)

	recordID := uuid.New()
	observed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, replica.EnqueueMutation(ctx, models.Mutation{
		CorrelationToken: "tok-1",
		Entity:           catalog.EntityLocations,
		Op:               models.OpCreate,
		Fields:           json.RawMessage(`{"name": "barn"}`),
	}))
	require.NoError(t, replica.EnqueueMutation(ctx, models.Mutation{
		CorrelationToken:  "tok-2",
		Entity:            catalog.EntityAnimals,
		Op:                models.OpUpdate,
		RecordID:          &recordID,
		Fields:            json.RawMessage(`{"breed": "angus"}`),
		ObservedUpdatedAt: &observed,
	}))

	pending, err := replica.PendingMutations(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)

	assert.Equal(t, "tok-1", pending[0].CorrelationToken)
	assert.Equal(t, models.OpCreate, pending[0].Op)
	assert.Nil(t, pending[0].RecordID)

	assert.Equal(t, "tok-2", pending[1].CorrelationToken)
	require.NotNil(t, pending[1].RecordID)
	assert.Equal(t, recordID, *pending[1].RecordID)
	require.NotNil(t, pending[1].ObservedUpdatedAt)
	assert.True(t, pending[1].ObservedUpdatedAt.Equal(observed))
	assert.Less(t, pending[0].LocalID, pending[1].LocalID)

	require.NoError(t, replica.ResolvePending(ctx, "tok-1"))
	require.NoError(t, replica.ResolvePending(ctx, "unknown-token"))

	pending, err = replica.PendingMutations(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "tok-2", pending[0].CorrelationToken)
}

func TestReplicaEnqueueMutation_GeneratesCorrelationToken(t *testing.T) {
	ctx := context.Background()
	replica := newTestReplica(t)

	require.NoError(t, replica.EnqueueMutation(ctx, models.Mutation{
		Entity: catalog.EntityLocations,
		Op:     models.OpCreate,
		Fields: json.RawMessage(`{"name": "paddock"}`),
	}))

	pending, err := replica.PendingMutations(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	_, err = uuid.Parse(pending[0].CorrelationToken)
	assert.NoError(t, err)
}
