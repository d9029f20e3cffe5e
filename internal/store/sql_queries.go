// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Patrik Baldon

package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/catalog"
	"github.com/PatrikBaldon/RegiFarm-sub002/models"
	"github.com/google/uuid"
)

// psql is the statement builder configured for PostgreSQL placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	snapshotInstantQuery = `SELECT transaction_timestamp();`

	farmExistsQuery = `SELECT EXISTS (SELECT 1 FROM farms WHERE id = $1);`

	lookupPushOutcomeQuery = `SELECT entity, record_id, record_created_at, record_updated_at
		FROM sync_push_log
		WHERE farm_id = $1 AND correlation_token = $2;`

	insertPushOutcomeQuery = `INSERT INTO sync_push_log (
			farm_id,
			correlation_token,
			entity,
			record_id,
			record_created_at,
			record_updated_at
		) VALUES ($1, $2, $3, $4, $5, $6);`
)

// recordFieldsExpr packs every business column of the table into one JSON
// document by subtracting the bookkeeping columns from the full row. The
// sync engine never enumerates business columns on reads; the table shape is
// the single source of truth.
func recordFieldsExpr(table string) string {
	return fmt.Sprintf(
		"to_jsonb(%s.*) - 'id' - 'farm_id' - 'created_at' - 'updated_at' - 'deleted_at' AS fields",
		table,
	)
}

// buildSnapshotPageQuery builds the page read of the Snapshot Reader.
//
// Semantics:
//   - since == nil: full snapshot, tombstones excluded (a bootstrapping
//     client has nothing to reconcile deletions against);
//   - since != nil: rows with updated_at strictly after since, tombstones
//     included so the client learns about deletions;
//   - cursor != nil: rows strictly after the (updated_at, id) boundary.
//
// Ordering is always (updated_at, id) ascending, which keeps page boundaries
// stable under concurrent writes and makes replays deterministic.
func buildSnapshotPageQuery(
	_ context.Context,
	d catalog.Descriptor,
	farmID uuid.UUID,
	since *time.Time,
	cursor *models.Cursor,
	limit uint64,
) (string, []any, error) {
	builder := psql.
		Select("id", "farm_id", "created_at", "updated_at", "deleted_at", recordFieldsExpr(d.Table)).
		From(d.Table).
		Where(sq.Eq{"farm_id": farmID})

	if since != nil {
		builder = builder.Where(sq.Expr("updated_at > ?", *since))
	} else if d.SoftDelete {
		builder = builder.Where("deleted_at IS NULL")
	}

	if cursor != nil {
		builder = builder.Where(sq.Expr("(updated_at, id) > (?, ?)", cursor.UpdatedAt, cursor.ID))
	}

	query, args, err := builder.
		OrderBy("updated_at ASC", "id ASC").
		Limit(limit).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildTieDrainQuery builds the follow-up read that exhausts a group of rows
// sharing one updated_at value past a page cut, so a timestamp tie is never
// split across two responses.
func buildTieDrainQuery(
	_ context.Context,
	d catalog.Descriptor,
	farmID uuid.UUID,
	tieTimestamp time.Time,
	afterID uuid.UUID,
	limit uint64,
) (string, []any, error) {
	query, args, err := psql.
		Select("id", "farm_id", "created_at", "updated_at", "deleted_at", recordFieldsExpr(d.Table)).
		From(d.Table).
		Where(sq.Eq{"farm_id": farmID}).
		Where(sq.Eq{"updated_at": tieTimestamp}).
		Where(sq.Expr("id > ?", afterID)).
		OrderBy("id ASC").
		Limit(limit).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildRowByIDQuery builds the single-row load used by the push applier.
// The row is fetched by primary key alone — farm ownership is verified by
// the caller against the returned farm_id, which is what lets a mismatch be
// reported as forbidden rather than not-found. FOR UPDATE serializes
// concurrent pushes targeting the same row, making the optimistic
// updated_at check race-free.
func buildRowByIDQuery(
	_ context.Context,
	d catalog.Descriptor,
	id uuid.UUID,
	forUpdate bool,
) (string, []any, error) {
	builder := psql.
		Select("id", "farm_id", "created_at", "updated_at", "deleted_at", recordFieldsExpr(d.Table)).
		From(d.Table).
		Where(sq.Eq{"id": id})

	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildParentFarmQuery builds the lookup of a referenced parent row's owning
// farm, used for referential tenant-ownership checks on creates and updates.
func buildParentFarmQuery(
	_ context.Context,
	parent catalog.Descriptor,
	parentID any,
) (string, []any, error) {
	query, args, err := psql.
		Select("farm_id").
		From(parent.Table).
		Where(sq.Eq{"id": parentID}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildInsertQuery builds the INSERT for an accepted create. The store
// assigns created_at/updated_at itself (DEFAULT now()) and returns them so
// the outcome can echo authoritative timestamps back to the client.
func buildInsertQuery(
	_ context.Context,
	d catalog.Descriptor,
	farmID uuid.UUID,
	id uuid.UUID,
	fields map[string]any,
) (string, []any, error) {
	columns := []string{"id", "farm_id"}
	values := []any{id, farmID}

	for _, column := range sortedColumns(fields) {
		columns = append(columns, column)
		values = append(values, fields[column])
	}

	query, args, err := psql.
		Insert(d.Table).
		Columns(columns...).
		Values(values...).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildUpdateQuery builds the UPDATE for an accepted update mutation.
// updated_at is always refreshed by the store; the client never supplies it.
func buildUpdateQuery(
	_ context.Context,
	d catalog.Descriptor,
	id uuid.UUID,
	fields map[string]any,
) (string, []any, error) {
	builder := psql.Update(d.Table)

	for _, column := range sortedColumns(fields) {
		builder = builder.Set(column, fields[column])
	}

	query, args, err := builder.
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildSoftDeleteQuery builds the tombstoning UPDATE. The row keeps its full
// field payload; deleted_at marks it and updated_at moves it past every
// client watermark so the deletion propagates on the next incremental pull.
func buildSoftDeleteQuery(
	_ context.Context,
	d catalog.Descriptor,
	id uuid.UUID,
) (string, []any, error) {
	query, args, err := psql.
		Update(d.Table).
		Set("deleted_at", sq.Expr("now()")).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Where("deleted_at IS NULL").
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// buildPurgeQuery builds the retention hard-delete of tombstones older than
// the cutoff. Callers must walk the catalog children-first so foreign keys
// to purged parents are gone before the parents are. A tombstone that is
// still referenced by any remaining child row — a live one, or one whose
// own tombstone is inside the retention window — is skipped rather than
// left to trip the foreign key and roll back the whole purge; it becomes
// purgeable once its last referencing row is gone.
func buildPurgeQuery(
	_ context.Context,
	d catalog.Descriptor,
	children []catalog.ChildRef,
	cutoff time.Time,
) (string, []any, error) {
	builder := psql.
		Delete(d.Table).
		Where(sq.Expr("deleted_at IS NOT NULL AND deleted_at < ?", cutoff))

	for _, child := range children {
		builder = builder.Where(sq.Expr(fmt.Sprintf(
			"NOT EXISTS (SELECT 1 FROM %s WHERE %s.%s = %s.id)",
			child.Table, child.Table, child.Column, d.Table,
		)))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

// sortedColumns returns the field map's keys in ascending order so that the
// built SQL is deterministic regardless of map iteration order.
func sortedColumns(fields map[string]any) []string {
	columns := make([]string, 0, len(fields))
	for column := range fields {
		columns = append(columns, column)
	}
	sort.Strings(columns)
	return columns
}
