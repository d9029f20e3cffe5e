package service

import (
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/adapter"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/catalog"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/logger"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/store"
)

// ClientServices groups the replica client's services.
type ClientServices struct {
	SyncService ClientSyncService
	SyncJob     ClientSyncJob
}

// NewClientServices wires the replica storages and the server adapter into
// the client service layer.
func NewClientServices(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, c *catalog.Catalog, logger *logger.Logger) *ClientServices {
	syncSvc := NewClientSyncService(storages, serverAdapter, c, logger)

	return &ClientServices{
		SyncService: syncSvc,
		SyncJob:     NewClientSyncJob(syncSvc),
	}
}
