package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Record is one synchronizable row of an entity table in transport form.
//
// Business columns are packed into Fields as a single JSON document so that
// the sync engine never needs per-entity struct types: the catalog descriptor
// says which columns exist, the store packs and unpacks them. The four
// bookkeeping columns are always carried explicitly because every sync
// decision (ordering, watermarks, tombstones) is made on them.
type Record struct {
	// ID is the server-assigned primary key.
	ID uuid.UUID `json:"id"`

	// FarmID is the owning tenant. Every record belongs to exactly one farm.
	FarmID uuid.UUID `json:"farm_id"`

	// Fields holds the entity's business columns as a JSON object.
	Fields json.RawMessage `json:"fields"`

	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is set by the store on every mutation, including soft-delete.
	// Clients never supply it; they only echo it back for conflict detection.
	UpdatedAt time.Time `json:"updated_at"`

	// DeletedAt is non-nil for tombstones. A tombstone still carries its full
	// last-known Fields so a client can tell "deleted" from "never existed".
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Cursor marks a page boundary inside one entity's snapshot. Pagination is
// keyed on (updated_at, id), never on offsets, so a boundary stays stable
// under concurrent writes.
type Cursor struct {
	UpdatedAt time.Time `json:"updated_at"`
	ID        uuid.UUID `json:"id"`
}

// RecordPage is the result of one Snapshot Reader page read.
type RecordPage struct {
	Records []Record `json:"records"`

	// Next is nil when the snapshot for this entity is exhausted.
	Next *Cursor `json:"next,omitempty"`
}
