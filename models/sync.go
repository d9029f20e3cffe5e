// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Patrik Baldon

package models

import "time"

// Watermarks maps entity type name to the highest updated_at value the
// client has incorporated for that entity. It is owned and persisted by the
// client; the server is stateless between calls.
type Watermarks map[string]time.Time

// FullPullResponse is the "whole database in one call" payload: the complete
// live record set of every catalog entity, read under a single snapshot.
type FullPullResponse struct {
	// Entities is keyed by entity type name. Every catalog entity is present,
	// empty entities included.
	Entities map[string][]Record `json:"entities"`

	// Watermark is the snapshot instant of the transaction that produced the
	// payload. The client seeds every per-entity watermark from it.
	Watermark time.Time `json:"watermark"`
}

// IncrementalPullRequest carries the client's stored watermarks. An absent
// entity entry means the client has never pulled that entity.
type IncrementalPullRequest struct {
	Watermarks Watermarks `json:"watermarks"`
}

// EntityDelta is one entity's slice of an incremental pull response.
type EntityDelta struct {
	// Records hold every row with updated_at strictly after the client's
	// watermark, tombstones included. Rows sharing the maximal updated_at are
	// never split across two calls.
	Records []Record `json:"records"`

	// NewWatermark never regresses below the client's submitted watermark,
	// even when Records is empty.
	NewWatermark time.Time `json:"new_watermark"`
}

// IncrementalPullResponse contains one EntityDelta per catalog entity.
// Entities with no changes are present with an empty Records slice so the
// client can always advance its watermark.
type IncrementalPullResponse struct {
	Entities map[string]EntityDelta `json:"entities"`
}

// SyncChunk is one self-contained unit of a streaming pull: one page of one
// entity's records, tagged with the entity type. The final chunk of a clean
// stream has Done set and carries the snapshot watermark; a stream that ends
// without it was interrupted and the client must discard partial state.
type SyncChunk struct {
	Entity  string   `json:"entity,omitempty"`
	Records []Record `json:"records,omitempty"`

	Done      bool       `json:"done,omitempty"`
	Watermark *time.Time `json:"watermark,omitempty"`
}
