package store

import (
	"context"
	"fmt"

	"github.com/PatrikBaldon/RegiFarm-sub002/internal/config"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/logger"
)

// ClientStorages groups the client-side storage repositories into a single
// value that can be passed around the replica's service layer.
type ClientStorages struct {
	// Replica is the SQLite-backed local copy of the farm's records.
	Replica ReplicaStorage
}

// NewClientStorages initialises the client storage layer: it opens the
// SQLite replica file from cfg.Path (creating it when absent), ensures the
// replica schema, and wires a fresh [ReplicaStorage].
func NewClientStorages(cfg config.Replica, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new client storages...")

	db, err := NewConnectSQLite(context.Background(), cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	return &ClientStorages{
		Replica: NewReplicaRepository(db, logger),
	}, nil
}
