package main

import (
	"context"
	"fmt"

	"github.com/angelmondragon/organics-storefront/pkg/config"
	"github.com/angelmondragon/organics-storefront/pkg/db"
	"github.com/angelmondragon/organics-storefront/pkg/logger"
	"github.com/angelmondragon/organics-storefront/pkg/migrate"
	"github.com/angelmondragon/organics-storefront/pkg/redis"
	"github.com/angelmondragon/organics-storefront/pkg/storage"
	"github.com/angelmondragon/organics-storefront/pkg/storage/rediskv"
	"github.com/angelmondragon/organics-storefront/pkg/storage/sqlkv"
)

type backendStorage interface {
	storage.Storage
	storage.Pinger
}

// backend is the opened cart storage plus whatever must be closed on exit.
type backend struct {
	storage backendStorage
	closers []func() error
}

func openBackend(ctx context.Context, cfg *config.Config, logg *logger.Logger) (*backend, error) {
	switch cfg.Storage.NormalizedBackend() {
	case config.StorageMemory:
		return &backend{storage: storage.NewMemoryStorage()}, nil

	case config.StorageFile:
		fs, err := storage.NewFileStorage(cfg.Storage.Dir)
		if err != nil {
			return nil, fmt.Errorf("open file storage: %w", err)
		}
		return &backend{storage: fs}, nil

	case config.StorageSQLite, config.StoragePostgres:
		client, err := db.New(ctx, cfg.DB, logg)
		if err != nil {
			return nil, fmt.Errorf("bootstrap database: %w", err)
		}
		if err := migrate.MaybeRun(ctx, cfg, logg, client); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		kv, err := sqlkv.New(client.DB())
		if err != nil {
			_ = client.Close()
			return nil, err
		}
		return &backend{storage: kv, closers: []func() error{client.Close}}, nil

	case config.StorageRedis:
		client, err := redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			return nil, fmt.Errorf("bootstrap redis: %w", err)
		}
		kv, err := rediskv.New(client)
		if err != nil {
			_ = client.Close()
			return nil, err
		}
		return &backend{storage: kv, closers: []func() error{client.Close}}, nil

	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
	}
}
