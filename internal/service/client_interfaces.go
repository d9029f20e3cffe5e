package service

import (
	"context"
	"time"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// ClientSyncService synchronises the local SQLite replica with the server.
type ClientSyncService interface {
	// Bootstrap streams the full snapshot into the replica and seeds every
	// entity watermark from the snapshot instant. Any pre-existing
	// replicated state is discarded first; an interrupted stream leaves the
	// replica reset, never half-filled.
	Bootstrap(ctx context.Context) error

	// Sync runs one cycle: push pending local mutations and handle their
	// outcomes, then incremental-pull every entity and advance the stored
	// watermarks. An empty replica is bootstrapped first.
	Sync(ctx context.Context) error
}

// ClientSyncJob is a background worker that periodically calls Sync.
type ClientSyncJob interface {
	// Start launches the background sync goroutine. It syncs every
	// interval, defaulting to 5 minutes if interval is zero or negative.
	// Any previously running job is stopped before the new one begins.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()
}
