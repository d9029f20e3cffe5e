package service

import (
	"context"
	"time"

	"github.com/PatrikBaldon/RegiFarm-sub002/models"
	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// SyncService serves the three pull shapes. Every call operates on one
// consistent snapshot of one farm's data.
type SyncService interface {
	// FullPull assembles the complete live record set of every catalog
	// entity in one response, with the snapshot instant as the watermark.
	FullPull(ctx context.Context, farmID uuid.UUID) (models.FullPullResponse, error)

	// StreamPull walks the catalog in dependency order handing one chunk per
	// page to emit. At most one page is materialized at a time. The returned
	// watermark is the snapshot instant; on an emit error or cancellation the
	// stream is abandoned mid-way and no watermark is valid.
	StreamPull(ctx context.Context, farmID uuid.UUID, emit func(models.SyncChunk) error) (time.Time, error)

	// IncrementalPull returns, per entity, every row changed strictly after
	// the client's watermark, tombstones included, plus the advanced
	// watermark. Absent watermark entries are treated as the epoch.
	IncrementalPull(ctx context.Context, farmID uuid.UUID, req models.IncrementalPullRequest) (models.IncrementalPullResponse, error)
}

// PushService applies client-originated mutation batches.
type PushService interface {
	// Push applies the batch inside one write transaction and returns one
	// outcome per mutation in submission order. Rejected and conflicting
	// items never abort their siblings; accepted effects commit atomically.
	Push(ctx context.Context, farmID uuid.UUID, mutations []models.Mutation) ([]models.Outcome, error)
}

// AuthService issues and verifies the farm-scoped JWT tokens that guard the
// sync routes.
type AuthService interface {
	CreateToken(ctx context.Context, farmID uuid.UUID) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// AppInfoService exposes build-time metadata for the version endpoint.
type AppInfoService interface {
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}
