package store

import (
	"context"
	"time"

	"github.com/PatrikBaldon/RegiFarm-sub002/models"
	"github.com/google/uuid"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// ReplicaStorage is the client-side SQLite replica of one farm's records.
//
// It holds three things: the replicated rows themselves (tombstones
// included), the per-entity watermarks the client has incorporated, and the
// queue of local mutations awaiting push.
type ReplicaStorage interface {
	// ApplyRecords upserts a batch of server records for one entity,
	// tombstones included. Applying the same batch twice is a no-op.
	ApplyRecords(ctx context.Context, entity string, records []models.Record) error

	// GetRecord returns one replicated row, tombstoned or live.
	// Returns [ErrRecordNotFound] when the replica has never seen the id.
	GetRecord(ctx context.Context, entity string, id uuid.UUID) (models.Record, error)

	// ListRecords returns all live (non-tombstoned) rows of one entity.
	ListRecords(ctx context.Context, entity string) ([]models.Record, error)

	// Watermarks returns the stored per-entity watermarks. Entities never
	// pulled are absent from the map.
	Watermarks(ctx context.Context) (models.Watermarks, error)

	// SetWatermark stores one entity's watermark, replacing any previous
	// value.
	SetWatermark(ctx context.Context, entity string, watermark time.Time) error

	// IsEmpty reports whether the replica holds no records and no
	// watermarks, i.e. whether a bootstrap is needed.
	IsEmpty(ctx context.Context) (bool, error)

	// Reset drops all replicated records and watermarks. Pending mutations
	// survive: they are local work, not replicated state.
	Reset(ctx context.Context) error

	// EnqueueMutation appends a local change to the push queue.
	EnqueueMutation(ctx context.Context, mutation models.Mutation) error

	// PendingMutations returns the queue in submission order.
	PendingMutations(ctx context.Context) ([]models.PendingMutation, error)

	// ResolvePending removes one queue entry once its outcome has been
	// received and handled. Resolving an unknown token is a no-op.
	ResolvePending(ctx context.Context, correlationToken string) error
}
