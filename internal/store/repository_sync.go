package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/PatrikBaldon/RegiFarm-sub002/internal/catalog"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/logger"
	"github.com/PatrikBaldon/RegiFarm-sub002/models"
	"github.com/google/uuid"
)

// tieDrainBatch is the fetch size used when exhausting a group of rows that
// share one updated_at value past a page cut.
const tieDrainBatch = 256

// syncRepository is the PostgreSQL-backed implementation of
// [SyncRepository]. It executes all sync reads and writes against the
// catalog's entity tables using the embedded [*DB] connection.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced with
// structured fields (farm_id, entity, page sizes, etc.).
type syncRepository struct {
	*DB
	catalog *catalog.Catalog
	logger  *logger.Logger
}

// NewSyncRepository constructs a [SyncRepository] backed by the provided
// database connection, catalog and logger.
func NewSyncRepository(db *DB, c *catalog.Catalog, logger *logger.Logger) SyncRepository {
	return &syncRepository{
		DB:      db,
		catalog: c,
		logger:  logger,
	}
}

// Snapshot implements [SyncRepository]. It opens a read-only repeatable-read
// transaction, verifies the farm exists inside it, and captures the
// transaction timestamp as the snapshot instant.
func (r *syncRepository) Snapshot(ctx context.Context, farmID uuid.UUID) (SnapshotReader, error) {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
		ReadOnly:  true,
	})
	if err != nil {
		log.Err(err).
			Str("func", "syncRepository.Snapshot").
			Str("farm_id", farmID.String()).
			Msg("failed to begin snapshot transaction")
		return nil, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	reader := &snapshotReader{tx: tx}

	var exists bool
	if err := tx.QueryRowContext(ctx, farmExistsQuery, farmID).Scan(&exists); err != nil {
		reader.Close()
		log.Err(err).
			Str("func", "syncRepository.Snapshot").
			Str("farm_id", farmID.String()).
			Msg("failed to check farm existence")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if !exists {
		reader.Close()
		log.Warn().
			Str("func", "syncRepository.Snapshot").
			Str("farm_id", farmID.String()).
			Msg("farm not found")
		return nil, ErrFarmNotFound
	}

	if err := tx.QueryRowContext(ctx, snapshotInstantQuery).Scan(&reader.instant); err != nil {
		reader.Close()
		log.Err(err).
			Str("func", "syncRepository.Snapshot").
			Str("farm_id", farmID.String()).
			Msg("failed to read snapshot instant")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	reader.farmID = farmID
	return reader, nil
}

// PurgeTombstones implements [SyncRepository]. Entities are purged in
// reverse rank order so child rows referencing a purged parent are removed
// first. Tombstones still referenced by remaining rows are held back until
// those rows are gone, so a single referenced row never aborts the sweep.
func (r *syncRepository) PurgeTombstones(ctx context.Context, cutoff time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "syncRepository.PurgeTombstones").
			Msg("failed to begin transaction")
		return 0, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var total int64
	for _, d := range r.catalog.EntitiesReversed() {
		if !d.SoftDelete {
			continue
		}

		query, args, err := buildPurgeQuery(ctx, d, r.catalog.ChildRefs(d.Name), cutoff)
		if err != nil {
			return 0, err
		}

		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			log.Err(err).
				Str("func", "syncRepository.PurgeTombstones").
				Str("entity", d.Name).
				Msg("failed to purge tombstones")
			return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		affected, _ := result.RowsAffected()
		total += affected
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "syncRepository.PurgeTombstones").
			Msg("failed to commit transaction")
		return 0, fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	if total > 0 {
		log.Info().
			Str("func", "syncRepository.PurgeTombstones").
			Int64("rows", total).
			Time("cutoff", cutoff).
			Msg("purged expired tombstones")
	}

	return total, nil
}

// snapshotReader reads pages of one repeatable-read transaction. It is not
// safe for concurrent use; one pull call owns one reader.
type snapshotReader struct {
	tx      *sql.Tx
	farmID  uuid.UUID
	instant time.Time
	closed  bool
}

// Instant implements [SnapshotReader].
func (s *snapshotReader) Instant() time.Time {
	return s.instant
}

// Close implements [SnapshotReader]. Rolling back a read-only transaction
// only releases it; calling Close twice is harmless.
func (s *snapshotReader) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.tx.Rollback()
}

// ReadPage implements [SnapshotReader].
//
// The page is read with limit+1 rows: the extra row tells whether more data
// exists and whether the cut would land inside a group of rows sharing one
// updated_at. A tie at the cut is drained completely so that no two rows
// with the same timestamp ever end up in different responses.
func (s *snapshotReader) ReadPage(
	ctx context.Context,
	d catalog.Descriptor,
	since *time.Time,
	cursor *models.Cursor,
	limit int,
) (models.RecordPage, error) {
	log := logger.FromContext(ctx)

	if s.closed {
		return models.RecordPage{}, ErrSnapshotClosed
	}
	if limit <= 0 {
		limit = 1
	}

	query, args, err := buildSnapshotPageQuery(ctx, d, s.farmID, since, cursor, uint64(limit)+1)
	if err != nil {
		return models.RecordPage{}, err
	}

	records, err := s.queryRecords(ctx, d, query, args)
	if err != nil {
		return models.RecordPage{}, err
	}

	if len(records) <= limit {
		// Entity exhausted within this page.
		return models.RecordPage{Records: records}, nil
	}

	last := records[limit-1]
	overflow := records[limit]

	if overflow.UpdatedAt.After(last.UpdatedAt) {
		// Clean cut: the overflow row starts a newer timestamp group, so the
		// group ending the page is already complete.
		return models.RecordPage{
			Records: records[:limit],
			Next:    &models.Cursor{UpdatedAt: last.UpdatedAt, ID: last.ID},
		}, nil
	}

	// The cut landed inside a timestamp tie: keep the overflow row and drain
	// the rest of its group.
	for {
		drainQuery, drainArgs, err := buildTieDrainQuery(
			ctx, d, s.farmID, last.UpdatedAt, records[len(records)-1].ID, tieDrainBatch,
		)
		if err != nil {
			return models.RecordPage{}, err
		}

		batch, err := s.queryRecords(ctx, d, drainQuery, drainArgs)
		if err != nil {
			return models.RecordPage{}, err
		}

		records = append(records, batch...)
		if len(batch) < tieDrainBatch {
			break
		}
	}

	log.Debug().
		Str("func", "snapshotReader.ReadPage").
		Str("entity", d.Name).
		Int("limit", limit).
		Int("returned", len(records)).
		Msg("page extended past limit to keep a timestamp tie whole")

	tail := records[len(records)-1]
	return models.RecordPage{
		Records: records,
		Next:    &models.Cursor{UpdatedAt: tail.UpdatedAt, ID: tail.ID},
	}, nil
}

// queryRecords executes a snapshot select and scans all rows.
func (s *snapshotReader) queryRecords(ctx context.Context, d catalog.Descriptor, query string, args []any) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	rows, err := s.tx.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "snapshotReader.queryRecords").
			Str("entity", d.Name).
			Str("farm_id", s.farmID.String()).
			Msg("failed to execute snapshot page query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.Record, 0, 50)

	for rows.Next() {
		record, scanErr := scanRecord(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "snapshotReader.queryRecords").
				Str("entity", d.Name).
				Str("farm_id", s.farmID.String()).
				Msg("failed to scan record row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		records = append(records, record)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "snapshotReader.queryRecords").
			Str("entity", d.Name).
			Str("farm_id", s.farmID.String()).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return records, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanRecord.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRecord scans one snapshot row in the fixed column order produced by
// the snapshot query builders.
func scanRecord(row rowScanner) (models.Record, error) {
	var record models.Record
	var deletedAt sql.NullTime

	if err := row.Scan(
		&record.ID,
		&record.FarmID,
		&record.CreatedAt,
		&record.UpdatedAt,
		&deletedAt,
		&record.Fields,
	); err != nil {
		return models.Record{}, err
	}

	if deletedAt.Valid {
		record.DeletedAt = &deletedAt.Time
	}

	return record, nil
}
