// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Patrik Baldon

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/PatrikBaldon/RegiFarm-sub002/internal/catalog"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/config"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/logger"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/store"
	"github.com/PatrikBaldon/RegiFarm-sub002/models"
	"github.com/google/uuid"
)

// syncService is the concrete implementation of SyncService. All three pull
// shapes ride on the same snapshot reader: the service decides how pages are
// assembled and delivered, the store decides how they are read.
type syncService struct {
	repository store.SyncRepository
	catalog    *catalog.Catalog

	// pageSize bounds one page of records. Streaming pulls hold at most one
	// such page in memory per stream.
	pageSize int

	// incrementalLimit is the soft per-entity row cap of one incremental
	// pull. Rows sharing the maximal updated_at come back past the cap.
	incrementalLimit int

	logger *logger.Logger
}

// NewSyncService constructs a SyncService over the given repository and
// entity catalog, with page tunables from cfg.
func NewSyncService(repository store.SyncRepository, c *catalog.Catalog, cfg config.Sync, logger *logger.Logger) SyncService {
	return &syncService{
		repository:       repository,
		catalog:          c,
		pageSize:         cfg.StreamPageSize,
		incrementalLimit: cfg.IncrementalPageLimit,
		logger:           logger,
	}
}

// FullPull implements SyncService.
//
// The whole call is served from one repeatable-read snapshot: all entities
// observe the same instant, and that instant is returned as the watermark.
// Every catalog entity is present in the response, empty ones included, so
// the client can seed every per-entity watermark in one step.
func (s *syncService) FullPull(ctx context.Context, farmID uuid.UUID) (models.FullPullResponse, error) {
	log := logger.FromContext(ctx)

	reader, err := s.repository.Snapshot(ctx, farmID)
	if err != nil {
		return models.FullPullResponse{}, err
	}
	defer reader.Close()

	entities := make(map[string][]models.Record, s.catalog.Len())

	for _, d := range s.catalog.Entities() {
		records := make([]models.Record, 0)

		var cursor *models.Cursor
		for {
			page, err := reader.ReadPage(ctx, d, nil, cursor, s.pageSize)
			if err != nil {
				return models.FullPullResponse{}, fmt.Errorf("full pull of %s: %w", d.Name, err)
			}

			records = append(records, page.Records...)
			if page.Next == nil {
				break
			}
			cursor = page.Next
		}

		entities[d.Name] = records
	}

	log.Info().
		Str("func", "syncService.FullPull").
		Str("farm_id", farmID.String()).
		Time("watermark", reader.Instant()).
		Msg("full pull assembled")

	return models.FullPullResponse{
		Entities:  entities,
		Watermark: reader.Instant(),
	}, nil
}

// StreamPull implements SyncService.
//
// Pages are handed to emit one at a time and never accumulated, which keeps
// the server's memory use per stream near one page regardless of how large
// the farm's dataset is. Entities stream in dependency-rank order so a
// consumer applying chunks as they arrive always sees parents first.
func (s *syncService) StreamPull(
	ctx context.Context,
	farmID uuid.UUID,
	emit func(models.SyncChunk) error,
) (time.Time, error) {
	log := logger.FromContext(ctx)

	reader, err := s.repository.Snapshot(ctx, farmID)
	if err != nil {
		return time.Time{}, err
	}
	defer reader.Close()

	for _, d := range s.catalog.Entities() {
		var cursor *models.Cursor
		for {
			if err := ctx.Err(); err != nil {
				return time.Time{}, err
			}

			page, err := reader.ReadPage(ctx, d, nil, cursor, s.pageSize)
			if err != nil {
				return time.Time{}, fmt.Errorf("stream pull of %s: %w", d.Name, err)
			}

			if len(page.Records) > 0 {
				if err := emit(models.SyncChunk{Entity: d.Name, Records: page.Records}); err != nil {
					log.Warn().
						Str("func", "syncService.StreamPull").
						Str("farm_id", farmID.String()).
						Str("entity", d.Name).
						Err(err).
						Msg("stream consumer failed, abandoning snapshot")
					return time.Time{}, err
				}
			}

			if page.Next == nil {
				break
			}
			cursor = page.Next
		}
	}

	return reader.Instant(), nil
}

// IncrementalPull implements SyncService.
//
// Per entity the delta is rows with updated_at strictly after the client's
// watermark, tombstones included with their full last-known fields. The new
// watermark is the highest updated_at returned, or the submitted watermark
// when nothing changed, so it never regresses and a replay with no
// intervening writes returns an identical response.
func (s *syncService) IncrementalPull(
	ctx context.Context,
	farmID uuid.UUID,
	req models.IncrementalPullRequest,
) (models.IncrementalPullResponse, error) {
	reader, err := s.repository.Snapshot(ctx, farmID)
	if err != nil {
		return models.IncrementalPullResponse{}, err
	}
	defer reader.Close()

	entities := make(map[string]models.EntityDelta, s.catalog.Len())

	for _, d := range s.catalog.Entities() {
		// An absent entry means the entity was never pulled: the epoch
		// watermark makes every row, tombstones included, part of the delta.
		since := req.Watermarks[d.Name]

		page, err := reader.ReadPage(ctx, d, &since, nil, s.incrementalLimit)
		if err != nil {
			return models.IncrementalPullResponse{}, fmt.Errorf("incremental pull of %s: %w", d.Name, err)
		}

		delta := models.EntityDelta{
			Records:      page.Records,
			NewWatermark: since,
		}
		if n := len(page.Records); n > 0 {
			// Rows are ordered by (updated_at, id) and the page is
			// tie-complete, so the last row's timestamp is a safe watermark
			// even when more data remains beyond the cap.
			delta.NewWatermark = page.Records[n-1].UpdatedAt
		}
		if delta.Records == nil {
			delta.Records = make([]models.Record, 0)
		}

		entities[d.Name] = delta
	}

	return models.IncrementalPullResponse{Entities: entities}, nil
}
