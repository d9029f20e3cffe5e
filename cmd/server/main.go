package main

import (
	"context"
	"fmt"

	"github.com/PatrikBaldon/RegiFarm-sub002/internal/catalog"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/config"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/handler"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/logger"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/server"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/service"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/store"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/workers"
	"github.com/PatrikBaldon/RegiFarm-sub002/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("regifarm-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	if err = cfg.ValidateServer(); err != nil {
		log.Fatal().Err(err).Msg("invalid server configuration")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	db, err := store.NewConnectPostgres(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting database")
	}
	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error migrating database")
	}

	farmCatalog := catalog.Farm()
	storages := store.NewStorages(db, farmCatalog, log)

	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	services := service.NewServices(storages, farmCatalog, *cfg, buildInfo, log)

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	workers.NewWorkers(
		workers.NewTombstonePurgeWorker(storages.SyncRepository, cfg.Sync, cfg.Workers, log),
	).Run()

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
