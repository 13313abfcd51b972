package persistence

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/housekeeping-service/internal/config"
	"github.com/spec-kit/housekeeping-service/internal/store"
	"github.com/spec-kit/housekeeping-service/internal/store/memory"
	"github.com/spec-kit/housekeeping-service/internal/store/postgres"
	"github.com/spec-kit/housekeeping-service/internal/store/sqlite"
)

// OpenStore builds the persistence gateway selected by configuration.
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (store.Store, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		logger.Info("using in-memory store", zap.Bool("seeded", cfg.Store.Seed))
		if cfg.Store.Seed {
			return memory.NewSeeded(), nil
		}
		return memory.New(), nil

	case config.StoreDriverSQLite:
		logger.Info("using sqlite store", zap.String("path", cfg.Store.SQLitePath))
		return sqlite.New(ctx, cfg.Store.SQLitePath)

	case config.StoreDriverPostgres:
		pg, err := NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, err
		}
		if cfg.Postgres.RunMigrations {
			if err := RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
				pg.Close()
				return nil, err
			}
		}
		return postgres.New(pg.PoolHandle()), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
