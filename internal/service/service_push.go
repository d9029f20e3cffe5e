// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Patrik Baldon

package service

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"sort"

	"github.com/PatrikBaldon/RegiFarm-sub002/internal/catalog"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/logger"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/store"
	"github.com/PatrikBaldon/RegiFarm-sub002/models"
	"github.com/google/uuid"
)

// pushService is the concrete implementation of PushService.
type pushService struct {
	repository store.SyncRepository
	catalog    *catalog.Catalog
	logger     *logger.Logger
}

// NewPushService constructs a PushService over the given repository and
// entity catalog.
func NewPushService(repository store.SyncRepository, c *catalog.Catalog, logger *logger.Logger) PushService {
	return &pushService{
		repository: repository,
		catalog:    c,
		logger:     logger,
	}
}

// newRecordID produces the server-assigned primary key of an accepted
// create. Time-ordered v7 keys keep index inserts mostly append-only.
func newRecordID() uuid.UUID {
	if id, err := uuid.NewV7(); err == nil {
		return id
	}
	return uuid.New()
}

// Push implements PushService.
//
// The batch is applied inside one write transaction. Mutations are applied
// in catalog dependency-rank order (stable within one entity type) so a
// child submitted before its parent still finds the parent row; outcomes are
// reported in the original submission order regardless.
//
// Per-item failures (unknown entity, missing row, foreign ownership, stale
// observed timestamp, malformed payload) become rejected or conflict
// outcomes and leave the rest of the batch untouched. Only infrastructure
// errors fail the whole call, in which case nothing is committed.
func (s *pushService) Push(ctx context.Context, farmID uuid.UUID, mutations []models.Mutation) ([]models.Outcome, error) {
	log := logger.FromContext(ctx)

	if len(mutations) == 0 {
		return nil, ErrNoMutationsProvided
	}

	outcomes := make([]models.Outcome, len(mutations))

	err := s.repository.Push(ctx, farmID, func(ctx context.Context, tx store.PushTx) error {
		for _, idx := range s.applicationOrder(mutations) {
			outcome, err := s.applyMutation(ctx, tx, farmID, mutations[idx])
			if err != nil {
				return err
			}
			outcomes[idx] = outcome
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	accepted := 0
	for _, o := range outcomes {
		if o.Status == models.OutcomeAccepted {
			accepted++
		}
	}
	log.Info().
		Str("func", "pushService.Push").
		Str("farm_id", farmID.String()).
		Int("mutations", len(mutations)).
		Int("accepted", accepted).
		Msg("push batch applied")

	return outcomes, nil
}

// applicationOrder returns the mutation indices sorted by catalog rank,
// keeping the submission order among mutations of equal rank. Mutations
// targeting unknown entities sort last; they are rejected during application
// and their position does not matter.
func (s *pushService) applicationOrder(mutations []models.Mutation) []int {
	order := make([]int, len(mutations))
	for i := range order {
		order[i] = i
	}

	rank := func(i int) int {
		d, err := s.catalog.Resolve(mutations[i].Entity)
		if err != nil {
			return math.MaxInt
		}
		return d.Rank
	}

	sort.SliceStable(order, func(a, b int) bool {
		return rank(order[a]) < rank(order[b])
	})

	return order
}

// applyMutation applies one mutation and produces its outcome. A non-nil
// error is an infrastructure failure that must abort the transaction.
func (s *pushService) applyMutation(
	ctx context.Context,
	tx store.PushTx,
	farmID uuid.UUID,
	m models.Mutation,
) (models.Outcome, error) {
	if m.CorrelationToken == "" {
		return rejected(m, models.ReasonInvalidMutation), nil
	}

	d, err := s.catalog.Resolve(m.Entity)
	if err != nil {
		return rejected(m, models.ReasonUnknownEntity), nil
	}

	// Idempotency: a replayed token returns the originally recorded outcome
	// without touching the row again.
	if recorded, found, err := tx.LookupOutcome(ctx, farmID, m.CorrelationToken); err != nil {
		return models.Outcome{}, err
	} else if found {
		return *recorded, nil
	}

	switch m.Op {
	case models.OpCreate:
		return s.applyCreate(ctx, tx, farmID, d, m)
	case models.OpUpdate:
		return s.applyUpdate(ctx, tx, farmID, d, m)
	case models.OpSoftDelete:
		return s.applySoftDelete(ctx, tx, farmID, d, m)
	default:
		return rejected(m, models.ReasonInvalidMutation), nil
	}
}

func (s *pushService) applyCreate(
	ctx context.Context,
	tx store.PushTx,
	farmID uuid.UUID,
	d catalog.Descriptor,
	m models.Mutation,
) (models.Outcome, error) {
	fields, ok := decodeFields(d, m.Fields)
	if !ok || len(fields) == 0 {
		return rejected(m, models.ReasonInvalidMutation), nil
	}

	if outcome, ok, err := s.checkParents(ctx, tx, farmID, d, m, fields); err != nil {
		return models.Outcome{}, err
	} else if !ok {
		return outcome, nil
	}

	id := newRecordID()

	createdAt, updatedAt, err := tx.Insert(ctx, d, farmID, id, fields)
	if err != nil {
		return models.Outcome{}, err
	}

	outcome := models.Outcome{
		CorrelationToken: m.CorrelationToken,
		Status:           models.OutcomeAccepted,
		RecordID:         &id,
		CreatedAt:        &createdAt,
		UpdatedAt:        &updatedAt,
	}
	if err := tx.RecordOutcome(ctx, farmID, d.Name, outcome); err != nil {
		return models.Outcome{}, err
	}

	return outcome, nil
}

func (s *pushService) applyUpdate(
	ctx context.Context,
	tx store.PushTx,
	farmID uuid.UUID,
	d catalog.Descriptor,
	m models.Mutation,
) (models.Outcome, error) {
	if m.RecordID == nil {
		return rejected(m, models.ReasonInvalidMutation), nil
	}

	fields, ok := decodeFields(d, m.Fields)
	if !ok || len(fields) == 0 {
		return rejected(m, models.ReasonInvalidMutation), nil
	}

	current, outcome, ok, err := s.lockTarget(ctx, tx, farmID, d, m)
	if err != nil {
		return models.Outcome{}, err
	}
	if !ok {
		return outcome, nil
	}

	if outcome, ok, err := s.checkParents(ctx, tx, farmID, d, m, fields); err != nil {
		return models.Outcome{}, err
	} else if !ok {
		return outcome, nil
	}

	updatedAt, err := tx.Update(ctx, d, current.ID, fields)
	if err != nil {
		return models.Outcome{}, err
	}

	accepted := models.Outcome{
		CorrelationToken: m.CorrelationToken,
		Status:           models.OutcomeAccepted,
		RecordID:         &current.ID,
		UpdatedAt:        &updatedAt,
	}
	if err := tx.RecordOutcome(ctx, farmID, d.Name, accepted); err != nil {
		return models.Outcome{}, err
	}

	return accepted, nil
}

func (s *pushService) applySoftDelete(
	ctx context.Context,
	tx store.PushTx,
	farmID uuid.UUID,
	d catalog.Descriptor,
	m models.Mutation,
) (models.Outcome, error) {
	if m.RecordID == nil {
		return rejected(m, models.ReasonInvalidMutation), nil
	}

	current, outcome, ok, err := s.lockTarget(ctx, tx, farmID, d, m)
	if err != nil {
		return models.Outcome{}, err
	}
	if !ok {
		return outcome, nil
	}

	updatedAt, err := tx.SoftDelete(ctx, d, current.ID)
	if errors.Is(err, store.ErrRecordNotFound) {
		return rejected(m, models.ReasonNotFound), nil
	}
	if err != nil {
		return models.Outcome{}, err
	}

	accepted := models.Outcome{
		CorrelationToken: m.CorrelationToken,
		Status:           models.OutcomeAccepted,
		RecordID:         &current.ID,
		UpdatedAt:        &updatedAt,
	}
	if err := tx.RecordOutcome(ctx, farmID, d.Name, accepted); err != nil {
		return models.Outcome{}, err
	}

	return accepted, nil
}

// lockTarget loads and row-locks the mutation's target and runs the checks
// shared by updates and soft-deletes: existence, tenant ownership, live
// state, and the optimistic observed_updated_at comparison. When ok is
// false, outcome carries the rejection or conflict to report.
func (s *pushService) lockTarget(
	ctx context.Context,
	tx store.PushTx,
	farmID uuid.UUID,
	d catalog.Descriptor,
	m models.Mutation,
) (*models.Record, models.Outcome, bool, error) {
	current, err := tx.FetchForUpdate(ctx, d, *m.RecordID)
	if errors.Is(err, store.ErrRecordNotFound) {
		return nil, rejected(m, models.ReasonNotFound), false, nil
	}
	if err != nil {
		return nil, models.Outcome{}, false, err
	}

	// The row was loaded without a farm predicate precisely so this check
	// can tell ownership apart from absence.
	if current.FarmID != farmID {
		return nil, rejected(m, models.ReasonForbiddenTenant), false, nil
	}

	if current.DeletedAt != nil {
		return nil, rejected(m, models.ReasonNotFound), false, nil
	}

	if m.ObservedUpdatedAt != nil && !m.ObservedUpdatedAt.Equal(current.UpdatedAt) {
		return nil, models.Outcome{
			CorrelationToken: m.CorrelationToken,
			Status:           models.OutcomeConflict,
			RecordID:         &current.ID,
			Current:          current,
		}, false, nil
	}

	return current, models.Outcome{}, true, nil
}

// checkParents verifies that every parent reference present in fields points
// at a live row of the same farm. When ok is false, outcome carries the
// per-item rejection.
func (s *pushService) checkParents(
	ctx context.Context,
	tx store.PushTx,
	farmID uuid.UUID,
	d catalog.Descriptor,
	m models.Mutation,
	fields map[string]any,
) (models.Outcome, bool, error) {
	for _, ref := range d.Parents {
		value, present := fields[ref.Column]
		if !present || value == nil {
			continue
		}

		parent, err := s.catalog.Resolve(ref.Entity)
		if err != nil {
			return models.Outcome{}, false, err
		}

		parentFarm, err := tx.ParentFarm(ctx, parent, value)
		if errors.Is(err, store.ErrParentNotFound) {
			return rejected(m, models.ReasonNotFound), false, nil
		}
		if err != nil {
			return models.Outcome{}, false, err
		}

		if parentFarm != farmID {
			return rejected(m, models.ReasonForbiddenTenant), false, nil
		}
	}

	return models.Outcome{}, true, nil
}

// decodeFields unmarshals a mutation's field payload and filters it to the
// entity's declared business columns.
func decodeFields(d catalog.Descriptor, raw json.RawMessage) (map[string]any, bool) {
	if len(raw) == 0 {
		return map[string]any{}, true
	}

	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, false
	}

	fields := make(map[string]any, len(decoded))
	for column, value := range decoded {
		if d.HasColumn(column) {
			fields[column] = value
		}
	}

	return fields, true
}

func rejected(m models.Mutation, reason string) models.Outcome {
	return models.Outcome{
		CorrelationToken: m.CorrelationToken,
		Status:           models.OutcomeRejected,
		Reason:           reason,
	}
}
