package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/Gunvolt24/wb_cart/config"
	"github.com/Gunvolt24/wb_cart/internal/ports"
	"github.com/Gunvolt24/wb_cart/internal/storage/memory"
	"github.com/Gunvolt24/wb_cart/internal/storage/postgres"
	"github.com/Gunvolt24/wb_cart/internal/storage/sqlite"
)

// Драйверы хранилища слотов.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// OpenStorage — хранилище слотов корзины по конфигурации и функция его закрытия.
func OpenStorage(ctx context.Context, cfg *config.Config, log ports.Logger) (ports.SlotStorage, func(), error) {
	switch driver := strings.ToLower(strings.TrimSpace(cfg.Storage.Driver)); driver {
	case "", DriverMemory:
		log.Infof(ctx, "slot storage: memory (carts are lost on restart)")
		return memory.NewSlotStore(nil), func() {}, nil

	case DriverPostgres:
		if cfg.Storage.AutoMigrate {
			if err := postgres.Migrate(ctx, cfg.Postgres.DSN); err != nil {
				return nil, nil, fmt.Errorf("postgres migrate: %w", err)
			}
		}
		pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres pool: %w", err)
		}
		log.Infof(ctx, "slot storage: postgres max_conns=%d", cfg.Postgres.MaxConns)
		return postgres.NewSlotStore(pool), pool.Close, nil

	case DriverSQLite:
		store, err := sqlite.Open(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("sqlite open: %w", err)
		}
		log.Infof(ctx, "slot storage: sqlite path=%s", cfg.Storage.SQLitePath)
		return store, func() {
			if err := store.Close(); err != nil {
				log.Warnf(ctx, "sqlite close: %v", err)
			}
		}, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
