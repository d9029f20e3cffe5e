package store

import (
	"context"
	"time"

	"github.com/PatrikBaldon/RegiFarm-sub002/internal/catalog"
	"github.com/PatrikBaldon/RegiFarm-sub002/models"
	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// SyncRepository is the narrow storage interface the sync services consume.
// Implementations guard every query with a farm predicate; no method can
// observe another tenant's rows.
type SyncRepository interface {
	// Snapshot opens a read-only, repeatable-read transaction scoped to one
	// farm and returns a reader over it. Returns ErrFarmNotFound when the
	// farm does not exist. The caller owns the reader and must Close it.
	Snapshot(ctx context.Context, farmID uuid.UUID) (SnapshotReader, error)

	// Push runs fn inside a single write transaction. The transaction is
	// committed when fn returns nil and rolled back otherwise, so either all
	// accepted mutation effects persist or none do. Returns ErrFarmNotFound
	// when the farm does not exist.
	Push(ctx context.Context, farmID uuid.UUID, fn func(ctx context.Context, tx PushTx) error) error

	// PurgeTombstones hard-deletes soft-deleted rows older than cutoff
	// across all catalog entities, children before parents. Returns the
	// number of rows removed.
	PurgeTombstones(ctx context.Context, cutoff time.Time) (int64, error)
}

// SnapshotReader reads pages of one consistent point-in-time view. All pages
// from one reader observe the same snapshot regardless of concurrent writes.
type SnapshotReader interface {
	// Instant is the snapshot's transaction timestamp. Full and streaming
	// pulls hand it to the client as the seed watermark.
	Instant() time.Time

	// ReadPage reads one page of the entity's records. See
	// buildSnapshotPageQuery for since/cursor semantics. A page never splits
	// a group of rows sharing the maximal updated_at.
	ReadPage(ctx context.Context, d catalog.Descriptor, since *time.Time, cursor *models.Cursor, limit int) (models.RecordPage, error)

	// Close releases the snapshot transaction. Safe to call more than once.
	Close() error
}

// PushTx is the per-batch write transaction surface used by the push
// applier service.
type PushTx interface {
	// LookupOutcome returns the recorded outcome of a previously accepted
	// mutation with the given correlation token, if any.
	LookupOutcome(ctx context.Context, farmID uuid.UUID, correlationToken string) (*models.Outcome, bool, error)

	// RecordOutcome persists an accepted outcome so that a batch replay
	// returns it instead of re-applying the mutation.
	RecordOutcome(ctx context.Context, farmID uuid.UUID, entity string, outcome models.Outcome) error

	// FetchForUpdate loads a row by primary key with a row lock, without a
	// farm predicate: the caller compares the returned FarmID to decide
	// between not-found and forbidden. Returns ErrRecordNotFound.
	FetchForUpdate(ctx context.Context, d catalog.Descriptor, id uuid.UUID) (*models.Record, error)

	// ParentFarm returns the owning farm of a live referenced parent row.
	// Returns ErrParentNotFound when the parent does not exist or is
	// tombstoned.
	ParentFarm(ctx context.Context, parent catalog.Descriptor, parentID any) (uuid.UUID, error)

	// Insert persists an accepted create and returns the store-assigned
	// timestamps.
	Insert(ctx context.Context, d catalog.Descriptor, farmID, id uuid.UUID, fields map[string]any) (createdAt, updatedAt time.Time, err error)

	// Update applies an accepted field update and returns the refreshed
	// updated_at.
	Update(ctx context.Context, d catalog.Descriptor, id uuid.UUID, fields map[string]any) (time.Time, error)

	// SoftDelete tombstones a row and returns the refreshed updated_at.
	// Returns ErrRecordNotFound when the row is already tombstoned.
	SoftDelete(ctx context.Context, d catalog.Descriptor, id uuid.UUID) (time.Time, error)
}
