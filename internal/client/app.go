package client

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/PatrikBaldon/RegiFarm-sub002/internal/config"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/logger"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/service"
)

type App struct {
	services *service.ClientServices
	workers  config.Workers

	logger *logger.Logger
}

// NewApp assembles the runnable sync client from pre-wired services.
func NewApp(services *service.ClientServices, workersCfg config.Workers, logger *logger.Logger) (*App, error) {
	if services == nil {
		return nil, fmt.Errorf("no client services provided")
	}

	return &App{
		services: services,
		workers:  workersCfg,
		logger:   logger,
	}, nil
}

// Run implements [Client]. It performs one sync cycle immediately, then,
// when a sync interval is configured, keeps syncing on a ticker until the
// process receives a stop signal. With no interval configured the client is
// a one-shot runner.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	if err := a.services.SyncService.Sync(ctx); err != nil {
		return fmt.Errorf("sync: %w", err)
	}

	if a.workers.SyncInterval <= 0 {
		a.logger.Info().Msg("sync finished")
		return nil
	}

	a.services.SyncJob.Start(ctx, a.workers.SyncInterval)
	defer a.services.SyncJob.Stop()

	a.logger.Info().Dur("interval", a.workers.SyncInterval).Msg("background sync running")
	<-ctx.Done()
	a.logger.Info().Msg("client shutdown")

	return nil
}
