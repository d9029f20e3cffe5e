// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Patrik Baldon

package store

const (
	createReplicaSchema = `
		CREATE TABLE IF NOT EXISTS replica_records (
			entity      TEXT NOT NULL,
			id          TEXT NOT NULL,
			farm_id     TEXT NOT NULL,
			fields      TEXT NOT NULL,
			created_at  TIMESTAMP NOT NULL,
			updated_at  TIMESTAMP NOT NULL,
			deleted_at  TIMESTAMP,
			PRIMARY KEY (entity, id)
		);

		CREATE TABLE IF NOT EXISTS sync_watermarks (
			entity     TEXT PRIMARY KEY,
			watermark  TIMESTAMP NOT NULL
		);

		CREATE TABLE IF NOT EXISTS pending_mutations (
			local_id             INTEGER PRIMARY KEY AUTOINCREMENT,
			correlation_token    TEXT NOT NULL UNIQUE,
			entity               TEXT NOT NULL,
			op                   TEXT NOT NULL,
			record_id            TEXT,
			fields               TEXT,
			observed_updated_at  TIMESTAMP,
			queued_at            TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`

	upsertReplicaRecord = `
		INSERT INTO replica_records (
			entity,
			id,
			farm_id,
			fields,
			created_at,
			updated_at,
			deleted_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (entity, id) DO UPDATE SET
			farm_id    = excluded.farm_id,
			fields     = excluded.fields,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at,
			deleted_at = excluded.deleted_at;`

	getReplicaRecord = `
		SELECT id, farm_id, fields, created_at, updated_at, deleted_at
		FROM replica_records
		WHERE entity = $1 AND id = $2;`

	listReplicaRecords = `
		SELECT id, farm_id, fields, created_at, updated_at, deleted_at
		FROM replica_records
		WHERE entity = $1 AND deleted_at IS NULL
		ORDER BY updated_at, id;`

	getWatermarks = `
		SELECT entity, watermark FROM sync_watermarks;`

	setWatermark = `
		INSERT INTO sync_watermarks (entity, watermark)
		VALUES ($1, $2)
		ON CONFLICT (entity) DO UPDATE SET watermark = excluded.watermark;`

	countReplicaState = `
		SELECT
			(SELECT COUNT(*) FROM replica_records) +
			(SELECT COUNT(*) FROM sync_watermarks);`

	resetReplicaRecords = `
		DELETE FROM replica_records;`

	resetWatermarks = `
		DELETE FROM sync_watermarks;`

	enqueuePendingMutation = `
		INSERT INTO pending_mutations (
			correlation_token,
			entity,
			op,
			record_id,
			fields,
			observed_updated_at
		) VALUES ($1, $2, $3, $4, $5, $6);`

	listPendingMutations = `
		SELECT local_id, correlation_token, entity, op, record_id, fields, observed_updated_at, queued_at
		FROM pending_mutations
		ORDER BY local_id;`

	deletePendingMutation = `
		DELETE FROM pending_mutations WHERE correlation_token = $1;`
)
