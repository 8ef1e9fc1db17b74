// Package bootstrap wires store backends and seeding for process startup.
package bootstrap

import (
	"context"
	"fmt"

	"connectsphere/internal/cache"
	"connectsphere/internal/config"
	"connectsphere/internal/database"
	"connectsphere/internal/seed"
	"connectsphere/internal/store"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	SeedFixtures bool
}

// InitRuntime establishes the configured store backend and optionally runs
// fixture seeding. The returned DB and Redis client are nil for backends
// that do not use them.
func InitRuntime(cfg *config.Config, opts Options) (store.KeyValue, *gorm.DB, *redis.Client, error) {
	var kv store.KeyValue
	var db *gorm.DB
	var redisClient *redis.Client

	switch cfg.StoreBackend {
	case config.StoreRedis:
		cache.InitRedis(cfg.RedisURL)
		redisClient = cache.GetClient()
		if redisClient == nil {
			return nil, nil, nil, fmt.Errorf("redis backend selected but connection failed")
		}
		kv = store.NewRedisStore(redisClient)
	case config.StoreDatabase:
		var err error
		db, err = database.Connect(cfg)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("database connection failed: %w", err)
		}
		kv = store.NewGormStore(db)
	case config.StoreMemory:
		kv = store.NewMemoryStore()
	default:
		return nil, nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	if opts.SeedFixtures {
		if err := seed.Seed(context.Background(), kv, seed.Options{}); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to seed fixtures: %w", err)
		}
	}

	return kv, db, redisClient, nil
}
