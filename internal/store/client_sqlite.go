package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/PatrikBaldon/RegiFarm-sub002/internal/config"
	"github.com/PatrikBaldon/RegiFarm-sub002/internal/logger"
)

// NewConnectSQLite opens the replica database file, creating it when absent,
// and ensures the replica schema exists.
func NewConnectSQLite(ctx context.Context, cfg config.Replica, log *logger.Logger) (*DB, error) {
	if cfg.Path != ":memory:" {
		if err := createLocalDBFileIfNotExists(cfg.Path); err != nil {
			log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating database file")
			return nil, fmt.Errorf("error creating database file")
		}
	}

	conn, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB")
	}

	// sqlite serialises writers anyway; one pooled connection avoids
	// SQLITE_BUSY and keeps an in-memory database on a single handle.
	conn.SetMaxOpenConns(1)

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		return nil, err
	}

	// The replica schema is tiny and dialect-specific, so it is kept here
	// instead of the goose migrations, which target PostgreSQL.
	if _, err = conn.ExecContext(ctx, createReplicaSchema); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating replica schema")
		return nil, fmt.Errorf("error creating replica schema: %w", err)
	}
	log.Debug().Str("func", "NewConnectSQLite").Msg("connected to replica database successfully")

	return &DB{DB: conn, logger: log}, nil
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	return nil
}
