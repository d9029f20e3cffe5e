package store

import (
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/catalog"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/logger"
)

type Storages struct {
	SyncRepository SyncRepository
}

func NewStorages(db *DB, c *catalog.Catalog, logger *logger.Logger) Storages {
	return Storages{
		SyncRepository: NewSyncRepository(db, c, logger),
	}
}
