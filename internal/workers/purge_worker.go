package workers

import (
	"context"
	"time"

	"github.com/PatrikBaldon/RegiFarm-sub002/internal/config"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/logger"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/store"
)

// tombstonePurgeWorker periodically hard-deletes tombstones older than the
// retention window. Clients offline longer than the window must re-bootstrap,
// so the retention is the contract between storage growth and how long a
// replica may stay away.
type tombstonePurgeWorker struct {
	repository store.SyncRepository

	retention time.Duration
	interval  time.Duration

	logger *logger.Logger
}

// NewTombstonePurgeWorker builds the retention worker from the sync and
// workers configuration sections. Zero values fall back to the config
// defaults.
func NewTombstonePurgeWorker(repository store.SyncRepository, syncCfg config.Sync, workersCfg config.Workers, logger *logger.Logger) Worker {
	retention := syncCfg.PurgeRetention
	if retention <= 0 {
		retention = config.DefaultPurgeRetention
	}
	interval := workersCfg.PurgeInterval
	if interval <= 0 {
		interval = config.DefaultPurgeInterval
	}

	return &tombstonePurgeWorker{
		repository: repository,
		retention:  retention,
		interval:   interval,
		logger:     logger,
	}
}

// Run implements [Worker]. It spawns the purge loop and returns immediately.
func (w *tombstonePurgeWorker) Run() {
	go w.loop()
}

func (w *tombstonePurgeWorker) loop() {
	t := time.NewTicker(w.interval)
	defer t.Stop()

	for range t.C {
		w.purge()
	}
}

func (w *tombstonePurgeWorker) purge() {
	ctx, cancel := context.WithTimeout(context.Background(), w.interval)
	defer cancel()

	cutoff := time.Now().Add(-w.retention)

	purged, err := w.repository.PurgeTombstones(ctx, cutoff)
	if err != nil {
		w.logger.Err(err).
			Str("func", "tombstonePurgeWorker.purge").
			Msg("failed to purge tombstones")
		return
	}

	if purged > 0 {
		w.logger.Info().
			Str("func", "tombstonePurgeWorker.purge").
			Int64("purged", purged).
			Time("cutoff", cutoff).
			Msg("tombstones purged")
	}
}
