package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/PatrikBaldon/RegiFarm-sub002/internal/adapter"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/catalog"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/logger"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/store"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/utils"
	"github.com/PatrikBaldon/RegiFarm-sub002/models"
	"github.com/google/uuid"
)

type clientSyncService struct {
	replica store.ReplicaStorage
	adapter adapter.ServerAdapter
	catalog *catalog.Catalog

	// farmID labels rows materialized locally from push outcomes. Read from
	// the access token's subject on first use.
	farmID uuid.UUID

	logger *logger.Logger
}

// NewClientSyncService wires the replica store and the server adapter into a
// [ClientSyncService] for the given entity catalog.
func NewClientSyncService(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, c *catalog.Catalog, logger *logger.Logger) ClientSyncService {
	return &clientSyncService{
		replica: storages.Replica,
		adapter: serverAdapter,
		catalog: c,
		logger:  logger,
	}
}

// Bootstrap implements [ClientSyncService].
func (s *clientSyncService) Bootstrap(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if err := s.replica.Reset(ctx); err != nil {
		return fmt.Errorf("reset replica before bootstrap: %w", err)
	}

	watermark, err := s.adapter.StreamPull(ctx, func(chunk models.SyncChunk) error {
		return s.replica.ApplyRecords(ctx, chunk.Entity, chunk.Records)
	})
	if err != nil {
		// whatever arrived is partial; leave the replica empty, not torn
		if resetErr := s.replica.Reset(ctx); resetErr != nil {
			log.Err(resetErr).Str("func", "clientSyncService.Bootstrap").Msg("failed to reset replica after interrupted bootstrap")
		}
		return fmt.Errorf("bootstrap stream: %w", mapAdapterError(err))
	}

	// tombstones are excluded from a bootstrap, so every entity's watermark
	// starts at the snapshot instant
	for _, descriptor := range s.catalog.Entities() {
		if err = s.replica.SetWatermark(ctx, descriptor.Name, watermark); err != nil {
			return fmt.Errorf("seed watermark for %s: %w", descriptor.Name, err)
		}
	}

	log.Info().Str("func", "clientSyncService.Bootstrap").Time("watermark", watermark).Msg("replica bootstrapped")
	return nil
}

// Sync implements [ClientSyncService].
func (s *clientSyncService) Sync(ctx context.Context) error {
	empty, err := s.replica.IsEmpty(ctx)
	if err != nil {
		return fmt.Errorf("check replica state: %w", err)
	}
	if empty {
		if err = s.Bootstrap(ctx); err != nil {
			return err
		}
	}

	if err = s.pushPending(ctx); err != nil {
		return err
	}

	return s.pullIncremental(ctx)
}

// pushPending submits the queued local mutations and resolves each one
// according to its outcome. An accepted create is materialized in the
// replica under its server-assigned key right away, a conflict outcome
// applies the server's current row so the user sees what won; everything
// else comes back through the next incremental pull.
func (s *clientSyncService) pushPending(ctx context.Context) error {
	log := logger.FromContext(ctx)

	pending, err := s.replica.PendingMutations(ctx)
	if err != nil {
		return fmt.Errorf("load pending mutations: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	mutations := make([]models.Mutation, 0, len(pending))
	pendingByToken := make(map[string]models.PendingMutation, len(pending))
	for _, item := range pending {
		mutations = append(mutations, item.Mutation)
		pendingByToken[item.CorrelationToken] = item
	}

	response, err := s.adapter.Push(ctx, models.PushRequest{Mutations: mutations})
	if err != nil {
		// the queue is untouched; the next cycle replays the same batch and
		// idempotency on the server keeps the replay harmless
		return fmt.Errorf("push pending mutations: %w", mapAdapterError(err))
	}

	for _, outcome := range response.Outcomes {
		item := pendingByToken[outcome.CorrelationToken]

		switch {
		case outcome.Status == models.OutcomeAccepted && item.Op == models.OpCreate && outcome.RecordID != nil:
			if applyErr := s.applyAcceptedCreate(ctx, item, outcome); applyErr != nil {
				return applyErr
			}
		case outcome.Status == models.OutcomeConflict && outcome.Current != nil:
			if applyErr := s.replica.ApplyRecords(ctx, item.Entity, []models.Record{*outcome.Current}); applyErr != nil {
				return fmt.Errorf("apply conflict record: %w", applyErr)
			}
		case outcome.Status == models.OutcomeRejected:
			log.Warn().
				Str("func", "clientSyncService.pushPending").
				Str("correlation_token", outcome.CorrelationToken).
				Str("reason", outcome.Reason).
				Msg("mutation rejected by server")
		}

		if err = s.replica.ResolvePending(ctx, outcome.CorrelationToken); err != nil {
			return fmt.Errorf("resolve pending mutation: %w", err)
		}
	}

	log.Info().Str("func", "clientSyncService.pushPending").Int("pushed", len(mutations)).Msg("pending mutations pushed")
	return nil
}

// applyAcceptedCreate stores a server-accepted create in the replica under
// its server-assigned key, so the row exists locally even if the follow-up
// pull fails. Accepted updates are left to the pull on purpose: their
// payload may carry a subset of columns, and overwriting the stored row
// with it would drop the rest.
func (s *clientSyncService) applyAcceptedCreate(ctx context.Context, item models.PendingMutation, outcome models.Outcome) error {
	farmID, err := s.localFarmID()
	if err != nil {
		// without a farm label the row cannot be stored faithfully; the next
		// incremental pull delivers it anyway
		logger.FromContext(ctx).Debug().Err(err).
			Str("func", "clientSyncService.applyAcceptedCreate").
			Str("correlation_token", outcome.CorrelationToken).
			Msg("cannot resolve farm ID, leaving the create to the next pull")
		return nil
	}

	record := models.Record{
		ID:     *outcome.RecordID,
		FarmID: farmID,
		Fields: item.Fields,
	}
	if outcome.CreatedAt != nil {
		record.CreatedAt = *outcome.CreatedAt
	}
	if outcome.UpdatedAt != nil {
		record.UpdatedAt = *outcome.UpdatedAt
	}

	if err = s.replica.ApplyRecords(ctx, item.Entity, []models.Record{record}); err != nil {
		return fmt.Errorf("materialize accepted create: %w", err)
	}

	return nil
}

func (s *clientSyncService) localFarmID() (uuid.UUID, error) {
	if s.farmID == uuid.Nil {
		id, err := utils.ParseFarmIDUnverified(s.adapter.Token())
		if err != nil {
			return uuid.Nil, err
		}
		s.farmID = id
	}
	return s.farmID, nil
}

// pullIncremental fetches every entity's delta past the stored watermarks
// and advances them. Watermarks move only after the delta is applied, so an
// interrupted pull is replayed in full on the next cycle.
func (s *clientSyncService) pullIncremental(ctx context.Context) error {
	watermarks, err := s.replica.Watermarks(ctx)
	if err != nil {
		return fmt.Errorf("load watermarks: %w", err)
	}

	response, err := s.adapter.IncrementalPull(ctx, models.IncrementalPullRequest{Watermarks: watermarks})
	if err != nil {
		return fmt.Errorf("incremental pull: %w", mapAdapterError(err))
	}

	for _, descriptor := range s.catalog.Entities() {
		delta, ok := response.Entities[descriptor.Name]
		if !ok {
			continue
		}

		if len(delta.Records) > 0 {
			if err = s.replica.ApplyRecords(ctx, descriptor.Name, delta.Records); err != nil {
				return fmt.Errorf("apply delta for %s: %w", descriptor.Name, err)
			}
		}
		if err = s.replica.SetWatermark(ctx, descriptor.Name, delta.NewWatermark); err != nil {
			return fmt.Errorf("advance watermark for %s: %w", descriptor.Name, err)
		}
	}

	return nil
}

// mapAdapterError translates the adapter's transport error into a service
// business error where a well-known one exists.
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, adapter.ErrUnauthorized):
		return fmt.Errorf("%w: %w", ErrTokenIsExpiredOrInvalid, err)
	case errors.Is(err, adapter.ErrNotFound):
		return fmt.Errorf("%w: %w", store.ErrFarmNotFound, err)
	case errors.Is(err, adapter.ErrConflict):
		return fmt.Errorf("%w: %w", store.ErrVersionConflict, err)
	default:
		return err
	}
}
