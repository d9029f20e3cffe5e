package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/PatrikBaldon/RegiFarm-sub002/internal/logger"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/utils"
	"github.com/PatrikBaldon/RegiFarm-sub002/models"
	"github.com/google/uuid"
)

type replicaRepository struct {
	*DB
	uuidGen *utils.UUIDGenerator
	logger  *logger.Logger
}

// NewReplicaRepository constructs the SQLite-backed [ReplicaStorage].
func NewReplicaRepository(db *DB, logger *logger.Logger) ReplicaStorage {
	return &replicaRepository{
		DB:      db,
		uuidGen: utils.NewUUIDGenerator(),
		logger:  logger,
	}
}

func (r *replicaRepository) ApplyRecords(ctx context.Context, entity string, records []models.Record) error {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "replicaRepository.ApplyRecords").
			Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin apply transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, record := range records {
		var deletedAt any
		if record.DeletedAt != nil {
			deletedAt = *record.DeletedAt
		}

		_, err = tx.ExecContext(ctx, upsertReplicaRecord,
			entity,
			record.ID.String(),
			record.FarmID.String(),
			string(record.Fields),
			record.CreatedAt,
			record.UpdatedAt,
			deletedAt,
		)
		if err != nil {
			log.Err(err).
				Str("func", "replicaRepository.ApplyRecords").
				Str("entity", entity).
				Str("record_id", record.ID.String()).
				Msg("failed to upsert replica record")
			return fmt.Errorf("failed to upsert replica record %s: %w", record.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "replicaRepository.ApplyRecords").
			Msg("failed to commit apply transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (r *replicaRepository) GetRecord(ctx context.Context, entity string, id uuid.UUID) (models.Record, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, getReplicaRecord, entity, id.String())

	record, err := scanReplicaRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Record{}, ErrRecordNotFound
		}
		log.Err(err).
			Str("func", "replicaRepository.GetRecord").
			Str("entity", entity).
			Str("record_id", id.String()).
			Msg("failed to scan replica record")
		return models.Record{}, fmt.Errorf("failed to read replica record: %w", err)
	}

	return record, nil
}

func (r *replicaRepository) ListRecords(ctx context.Context, entity string) ([]models.Record, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, listReplicaRecords, entity)
	if err != nil {
		log.Err(err).
			Str("func", "replicaRepository.ListRecords").
			Str("entity", entity).
			Msg("failed to query replica records")
		return nil, fmt.Errorf("failed to query replica records: %w", err)
	}
	defer rows.Close()

	records := make([]models.Record, 0)
	for rows.Next() {
		record, scanErr := scanReplicaRecord(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan replica record: %w", scanErr)
		}
		records = append(records, record)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate replica records: %w", err)
	}

	return records, nil
}

func (r *replicaRepository) Watermarks(ctx context.Context) (models.Watermarks, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, getWatermarks)
	if err != nil {
		log.Err(err).
			Str("func", "replicaRepository.Watermarks").
			Msg("failed to query watermarks")
		return nil, fmt.Errorf("failed to query watermarks: %w", err)
	}
	defer rows.Close()

	watermarks := make(models.Watermarks)
	for rows.Next() {
		var entity string
		var watermark time.Time
		if err = rows.Scan(&entity, &watermark); err != nil {
			return nil, fmt.Errorf("failed to scan watermark row: %w", err)
		}
		watermarks[entity] = watermark
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate watermark rows: %w", err)
	}

	return watermarks, nil
}

func (r *replicaRepository) SetWatermark(ctx context.Context, entity string, watermark time.Time) error {
	log := logger.FromContext(ctx)

	if _, err := r.DB.ExecContext(ctx, setWatermark, entity, watermark); err != nil {
		log.Err(err).
			Str("func", "replicaRepository.SetWatermark").
			Str("entity", entity).
			Msg("failed to store watermark")
		return fmt.Errorf("failed to store watermark: %w", err)
	}

	return nil
}

func (r *replicaRepository) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := r.DB.QueryRowContext(ctx, countReplicaState).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to count replica state: %w", err)
	}

	return count == 0, nil
}

func (r *replicaRepository) Reset(ctx context.Context) error {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin reset transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx, resetReplicaRecords); err != nil {
		log.Err(err).Str("func", "replicaRepository.Reset").Msg("failed to drop replica records")
		return fmt.Errorf("failed to drop replica records: %w", err)
	}
	if _, err = tx.ExecContext(ctx, resetWatermarks); err != nil {
		log.Err(err).Str("func", "replicaRepository.Reset").Msg("failed to drop watermarks")
		return fmt.Errorf("failed to drop watermarks: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (r *replicaRepository) EnqueueMutation(ctx context.Context, mutation models.Mutation) error {
	log := logger.FromContext(ctx)

	// A queued mutation must carry a correlation token before it first leaves
	// the device: the server's idempotency log is keyed on it.
	if mutation.CorrelationToken == "" {
		mutation.CorrelationToken = r.uuidGen.Generate()
	}

	var recordID any
	if mutation.RecordID != nil {
		recordID = mutation.RecordID.String()
	}
	var fields any
	if len(mutation.Fields) > 0 {
		fields = string(mutation.Fields)
	}
	var observedUpdatedAt any
	if mutation.ObservedUpdatedAt != nil {
		observedUpdatedAt = *mutation.ObservedUpdatedAt
	}

	_, err := r.DB.ExecContext(ctx, enqueuePendingMutation,
		mutation.CorrelationToken,
		mutation.Entity,
		string(mutation.Op),
		recordID,
		fields,
		observedUpdatedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "replicaRepository.EnqueueMutation").
			Str("correlation_token", mutation.CorrelationToken).
			Msg("failed to enqueue mutation")
		return fmt.Errorf("failed to enqueue mutation: %w", err)
	}

	return nil
}

func (r *replicaRepository) PendingMutations(ctx context.Context) ([]models.PendingMutation, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, listPendingMutations)
	if err != nil {
		log.Err(err).
			Str("func", "replicaRepository.PendingMutations").
			Msg("failed to query pending mutations")
		return nil, fmt.Errorf("failed to query pending mutations: %w", err)
	}
	defer rows.Close()

	pending := make([]models.PendingMutation, 0)
	for rows.Next() {
		var item models.PendingMutation
		var op string
		var recordID, fields sql.NullString
		var observedUpdatedAt sql.NullTime

		err = rows.Scan(
			&item.LocalID,
			&item.CorrelationToken,
			&item.Entity,
			&op,
			&recordID,
			&fields,
			&observedUpdatedAt,
			&item.QueuedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pending mutation: %w", err)
		}

		item.Op = models.MutationOp(op)
		if recordID.Valid {
			id, parseErr := uuid.Parse(recordID.String)
			if parseErr != nil {
				return nil, fmt.Errorf("failed to parse pending mutation record id: %w", parseErr)
			}
			item.RecordID = &id
		}
		if fields.Valid {
			item.Fields = json.RawMessage(fields.String)
		}
		if observedUpdatedAt.Valid {
			observed := observedUpdatedAt.Time
			item.ObservedUpdatedAt = &observed
		}

		pending = append(pending, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pending mutations: %w", err)
	}

	return pending, nil
}

func (r *replicaRepository) ResolvePending(ctx context.Context, correlationToken string) error {
	log := logger.FromContext(ctx)

	if _, err := r.DB.ExecContext(ctx, deletePendingMutation, correlationToken); err != nil {
		log.Err(err).
			Str("func", "replicaRepository.ResolvePending").
			Str("correlation_token", correlationToken).
			Msg("failed to resolve pending mutation")
		return fmt.Errorf("failed to resolve pending mutation: %w", err)
	}

	return nil
}

func scanReplicaRecord(row rowScanner) (models.Record, error) {
	var record models.Record
	var id, farmID, fields string
	var deletedAt sql.NullTime

	err := row.Scan(&id, &farmID, &fields, &record.CreatedAt, &record.UpdatedAt, &deletedAt)
	if err != nil {
		return models.Record{}, err
	}

	if record.ID, err = uuid.Parse(id); err != nil {
		return models.Record{}, fmt.Errorf("failed to parse record id: %w", err)
	}
	if record.FarmID, err = uuid.Parse(farmID); err != nil {
		return models.Record{}, fmt.Errorf("failed to parse farm id: %w", err)
	}
	record.Fields = json.RawMessage(fields)
	if deletedAt.Valid {
		deleted := deletedAt.Time
		record.DeletedAt = &deleted
	}

	return record, nil
}
