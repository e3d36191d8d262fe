package main

import (
	"context"
	"database/sql"
	"fmt"

	"foodorder-be/internal/cart"
	"foodorder-be/internal/config"
	"foodorder-be/internal/db"
	"foodorder-be/internal/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// buildCartPersistence picks the cart backend named by CART_STORAGE. Remote
// backends are wrapped in a background writer; the returned closer flushes it
// and releases the backend.
func buildCartPersistence(ctx context.Context, cfg *config.Config, database *sql.DB) (cart.Persistence, func() error, error) {
	noop := func() error { return nil }

	switch cfg.CartStorage {
	case config.StorageMemory:
		logger.L().Warn("cart storage is in-memory, carts are lost on restart")
		return cart.NewMemoryPersistence(), noop, nil

	case config.StorageFile:
		return cart.NewFilePersistence(cfg.CartFilePath), noop, nil

	case config.StoragePostgres:
		p := cart.NewSQLPersistence(database, cart.DialectPostgres)
		if err := p.EnsureSchema(ctx); err != nil {
			return nil, nil, err
		}
		async := cart.NewAsyncPersistence(p)
		return async, async.Close, nil

	case config.StorageSQLite:
		sdb, err := db.OpenSQLite(cfg.CartSQLitePath)
		if err != nil {
			return nil, nil, err
		}
		p := cart.NewSQLPersistence(sdb, cart.DialectSQLite)
		if err := p.EnsureSchema(ctx); err != nil {
			_ = sdb.Close()
			return nil, nil, err
		}
		async := cart.NewAsyncPersistence(p)
		return async, func() error {
			_ = async.Close()
			return sdb.Close()
		}, nil

	case config.StorageRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		logger.L().Info("cart storage connected to redis", zap.String("addr", cfg.RedisAddr))
		async := cart.NewAsyncPersistence(cart.NewRedisPersistence(client))
		return async, func() error {
			_ = async.Close()
			return client.Close()
		}, nil

	default:
		return nil, nil, fmt.Errorf("unknown CART_STORAGE %q", cfg.CartStorage)
	}
}
