package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/yuuzu/spenderman/internal/config"
	"github.com/yuuzu/spenderman/internal/database"
	"github.com/yuuzu/spenderman/internal/kv"
)

// OpenStore connects the configured backend and applies its migrations.
// The returned func releases the connection.
func OpenStore(ctx context.Context, cfg config.Application) (kv.Store, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory, "":
		log.Warn("Using in-memory storage, data is lost on exit")
		return kv.NewMemoryStore(), func() {}, nil

	case config.BackendPostgres:
		if err := database.Migrate(cfg.Database); err != nil {
			return nil, nil, err
		}
		pool, err := database.Open(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		return kv.NewPostgresStore(pool), pool.Close, nil

	case config.BackendSQLite:
		db, err := database.OpenSQLite(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		if err := database.MigrateSQLite(db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return kv.NewSQLiteStore(db), func() {
			if err := db.Close(); err != nil {
				log.Errorf("failed to close sqlite database: %v", err)
			}
		}, nil

	case config.BackendMongo:
		client, collection, err := database.OpenMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, nil, err
		}
		return kv.NewMongoStore(collection), func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Errorf("failed to disconnect from mongo: %v", err)
			}
		}, nil
	}
	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}
