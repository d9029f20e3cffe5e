package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// MutationOp is the kind of change a client submits via push.
type MutationOp string

const (
	OpCreate     MutationOp = "create"
	OpUpdate     MutationOp = "update"
	OpSoftDelete MutationOp = "soft_delete"
)

// Mutation is one client-originated change inside a push batch.
type Mutation struct {
	// CorrelationToken is a client-local identifier for this mutation. It
	// makes push idempotent: replaying a batch after an unknown-outcome
	// timeout returns the originally recorded outcomes instead of applying
	// the changes twice. For creates it also lets the client map the
	// server-assigned primary key back onto its pending local row.
	CorrelationToken string `json:"correlation_token"`

	// Entity is the catalog entity type name the mutation targets.
	Entity string `json:"entity"`

	Op MutationOp `json:"op"`

	// RecordID is the target primary key. Absent for creates; the server
	// assigns the key and returns it in the outcome.
	RecordID *uuid.UUID `json:"record_id,omitempty"`

	// Fields holds the business columns to write, as a JSON object. Ignored
	// for soft-deletes.
	Fields json.RawMessage `json:"fields,omitempty"`

	// ObservedUpdatedAt optionally carries the updated_at value the client
	// last saw for the target row. When set and the store's current value
	// differs, the mutation fails with a conflict outcome instead of
	// overwriting a change the client has not seen.
	ObservedUpdatedAt *time.Time `json:"observed_updated_at,omitempty"`
}

// OutcomeStatus classifies the per-mutation result of a push.
type OutcomeStatus string

const (
	OutcomeAccepted OutcomeStatus = "accepted"
	OutcomeRejected OutcomeStatus = "rejected"
	OutcomeConflict OutcomeStatus = "conflict"
)

// Rejection reasons carried in Outcome.Reason.
const (
	ReasonUnknownEntity   = "unknown_entity"
	ReasonNotFound        = "not_found"
	ReasonForbiddenTenant = "forbidden_tenant"
	ReasonInvalidMutation = "invalid_mutation"
)

// Outcome is the result of one mutation. Every submitted mutation gets
// exactly one outcome, in submission order; nothing is silently dropped.
type Outcome struct {
	CorrelationToken string        `json:"correlation_token"`
	Status           OutcomeStatus `json:"status"`

	// Reason is set on rejected outcomes only.
	Reason string `json:"reason,omitempty"`

	// RecordID is set on accepted outcomes: the server-assigned key for
	// creates, the targeted key otherwise.
	RecordID *uuid.UUID `json:"record_id,omitempty"`

	// CreatedAt is set on accepted creates.
	CreatedAt *time.Time `json:"created_at,omitempty"`

	// UpdatedAt is the store's timestamp after an accepted mutation.
	UpdatedAt *time.Time `json:"updated_at,omitempty"`

	// Current carries the store's present version of the row on a conflict
	// outcome so the client can reconcile instead of blindly retrying.
	Current *Record `json:"current,omitempty"`
}

// PendingMutation is a queued local change awaiting push, as stored in the
// replica's pending_mutations table.
type PendingMutation struct {
	// LocalID orders the queue; pushes submit oldest first.
	LocalID int64 `json:"local_id"`

	Mutation

	QueuedAt time.Time `json:"queued_at"`
}

// PushRequest is the body of a push call.
type PushRequest struct {
	Mutations []Mutation `json:"mutations"`
}

// PushResponse mirrors the request: outcomes in submission order.
type PushResponse struct {
	Outcomes []Outcome `json:"outcomes"`
}
