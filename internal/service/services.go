package service

import (
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/catalog"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/config"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/logger"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/store"
	"github.com/PatrikBaldon/RegiFarm-sub002/models"
)

type Services struct {
	SyncService    SyncService
	PushService    PushService
	AuthService    AuthService
	AppInfoService AppInfoService
}

func NewServices(
	storages store.Storages,
	c *catalog.Catalog,
	cfg config.StructuredConfig,
	buildInfo models.AppBuildInfo,
	logger *logger.Logger,
) *Services {
	return &Services{
		SyncService:    NewSyncService(storages.SyncRepository, c, cfg.Sync, logger),
		PushService:    NewPushService(storages.SyncRepository, c, logger),
		AuthService:    NewAuthService(cfg.Auth, logger),
		AppInfoService: NewAppInfoService(buildInfo, logger),
	}
}
