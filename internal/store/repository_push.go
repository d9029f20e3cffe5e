// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Patrik Baldon

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/PatrikBaldon/RegiFarm-sub002/internal/catalog"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/logger"
	"github.com/PatrikBaldon/RegiFarm-sub002/models"
	"github.com/google/uuid"
)

// Push implements [SyncRepository]. It opens one write transaction for the
// whole batch, verifies the farm inside it, and hands the applier callback a
// [PushTx]. The transaction commits only when fn returns nil.
func (r *syncRepository) Push(
	ctx context.Context,
	farmID uuid.UUID,
	fn func(ctx context.Context, tx PushTx) error,
) error {
	log := logger.FromContext(ctx)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "syncRepository.Push").
			Str("farm_id", farmID.String()).
			Msg("failed to begin push transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	var exists bool
	if err := tx.QueryRowContext(ctx, farmExistsQuery, farmID).Scan(&exists); err != nil {
		log.Err(err).
			Str("func", "syncRepository.Push").
			Str("farm_id", farmID.String()).
			Msg("failed to check farm existence")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if !exists {
		log.Warn().
			Str("func", "syncRepository.Push").
			Str("farm_id", farmID.String()).
			Msg("farm not found")
		return ErrFarmNotFound
	}

	if err := fn(ctx, &pushTx{tx: tx}); err != nil {
		return err
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).
			Str("func", "syncRepository.Push").
			Str("farm_id", farmID.String()).
			Msg("failed to commit push transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	return nil
}

// pushTx is the [PushTx] implementation over one *sql.Tx.
type pushTx struct {
	tx *sql.Tx
}

// LookupOutcome implements [PushTx].
func (p *pushTx) LookupOutcome(ctx context.Context, farmID uuid.UUID, correlationToken string) (*models.Outcome, bool, error) {
	log := logger.FromContext(ctx)

	var entity string
	var recordID uuid.UUID
	var createdAt sql.NullTime
	var updatedAt time.Time

	err := p.tx.QueryRowContext(ctx, lookupPushOutcomeQuery, farmID, correlationToken).
		Scan(&entity, &recordID, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		log.Err(err).
			Str("func", "pushTx.LookupOutcome").
			Str("farm_id", farmID.String()).
			Str("correlation_token", correlationToken).
			Msg("failed to look up recorded push outcome")
		return nil, false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	outcome := &models.Outcome{
		CorrelationToken: correlationToken,
		Status:           models.OutcomeAccepted,
		RecordID:         &recordID,
		UpdatedAt:        &updatedAt,
	}
	if createdAt.Valid {
		outcome.CreatedAt = &createdAt.Time
	}

	return outcome, true, nil
}

// RecordOutcome implements [PushTx]. Only accepted outcomes are persisted:
// rejections have no effects and are recomputed deterministically on replay.
func (p *pushTx) RecordOutcome(ctx context.Context, farmID uuid.UUID, entity string, outcome models.Outcome) error {
	log := logger.FromContext(ctx)

	var createdAt any
	if outcome.CreatedAt != nil {
		createdAt = *outcome.CreatedAt
	}

	_, err := p.tx.ExecContext(ctx, insertPushOutcomeQuery,
		farmID,
		outcome.CorrelationToken,
		entity,
		outcome.RecordID,
		createdAt,
		outcome.UpdatedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "pushTx.RecordOutcome").
			Str("farm_id", farmID.String()).
			Str("correlation_token", outcome.CorrelationToken).
			Msg("failed to record push outcome")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// FetchForUpdate implements [PushTx].
func (p *pushTx) FetchForUpdate(ctx context.Context, d catalog.Descriptor, id uuid.UUID) (*models.Record, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildRowByIDQuery(ctx, d, id, true)
	if err != nil {
		return nil, err
	}

	record, err := scanRecordRow(p.tx.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "pushTx.FetchForUpdate").
			Str("entity", d.Name).
			Str("record_id", id.String()).
			Msg("failed to fetch record for update")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return &record, nil
}

// ParentFarm implements [PushTx].
func (p *pushTx) ParentFarm(ctx context.Context, parent catalog.Descriptor, parentID any) (uuid.UUID, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildParentFarmQuery(ctx, parent, parentID)
	if err != nil {
		return uuid.Nil, err
	}

	var farmID uuid.UUID
	err = p.tx.QueryRowContext(ctx, query, args...).Scan(&farmID)
	if errors.Is(err, sql.ErrNoRows) {
		return uuid.Nil, ErrParentNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "pushTx.ParentFarm").
			Str("entity", parent.Name).
			Msg("failed to resolve parent farm")
		return uuid.Nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return farmID, nil
}

// Insert implements [PushTx].
func (p *pushTx) Insert(
	ctx context.Context,
	d catalog.Descriptor,
	farmID, id uuid.UUID,
	fields map[string]any,
) (time.Time, time.Time, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertQuery(ctx, d, farmID, id, fields)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	var createdAt, updatedAt time.Time
	if err := p.tx.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		log.Err(err).
			Str("func", "pushTx.Insert").
			Str("entity", d.Name).
			Str("farm_id", farmID.String()).
			Str("record_id", id.String()).
			Msg("failed to insert record")
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return createdAt, updatedAt, nil
}

// Update implements [PushTx].
func (p *pushTx) Update(ctx context.Context, d catalog.Descriptor, id uuid.UUID, fields map[string]any) (time.Time, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateQuery(ctx, d, id, fields)
	if err != nil {
		return time.Time{}, err
	}

	var updatedAt time.Time
	err = p.tx.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ErrRecordNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "pushTx.Update").
			Str("entity", d.Name).
			Str("record_id", id.String()).
			Msg("failed to update record")
		return time.Time{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return updatedAt, nil
}

// SoftDelete implements [PushTx]. The WHERE deleted_at IS NULL guard makes
// deleting an already-tombstoned row report not-found instead of silently
// refreshing the tombstone.
func (p *pushTx) SoftDelete(ctx context.Context, d catalog.Descriptor, id uuid.UUID) (time.Time, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSoftDeleteQuery(ctx, d, id)
	if err != nil {
		return time.Time{}, err
	}

	var updatedAt time.Time
	err = p.tx.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ErrRecordNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "pushTx.SoftDelete").
			Str("entity", d.Name).
			Str("record_id", id.String()).
			Msg("failed to soft-delete record")
		return time.Time{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return updatedAt, nil
}

// scanRecordRow scans a single-row query result in snapshot column order.
func scanRecordRow(row *sql.Row) (models.Record, error) {
	return scanRecord(row)
}
