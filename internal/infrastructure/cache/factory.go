package cache

import (
	"fmt"
	"time"

	"github.com/erp/crm/internal/domain/shared"
	"github.com/erp/crm/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Factory creates the configured cache backend
type Factory struct {
	cacheConfig           config.CacheConfig
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
	connectRedis          func(config.RedisConfig, string) (shared.Cache, error)
}

// FactoryOption is a functional option for configuring the factory
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis falls back to
// the in-memory backend. Default is true.
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *Factory) {
		f.allowInMemoryFallback = allow
	}
}

// NewFactory creates a new factory
func NewFactory(cacheCfg config.CacheConfig, redisCfg config.RedisConfig, opts ...FactoryOption) *Factory {
	f := &Factory{
		cacheConfig:           cacheCfg,
		redisConfig:           redisCfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
		connectRedis: func(cfg config.RedisConfig, prefix string) (shared.Cache, error) {
			return NewRedisCache(cfg, prefix)
		},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create returns the configured backend, falling back to memory when Redis
// cannot be reached and fallback is allowed.
func (f *Factory) Create() (shared.Cache, error) {
	if f.cacheConfig.Backend == BackendMemory {
		f.logger.Info("using in-memory entity cache")
		return NewInMemoryCache(time.Minute), nil
	}

	c, err := f.connectRedis(f.redisConfig, f.cacheConfig.KeyPrefix)
	if err == nil {
		f.logger.Info("using Redis entity cache", zap.String("addr", f.redisConfig.Addr()))
		return c, nil
	}
	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis cache required but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory entity cache. "+
		"Entries will not be shared across instances.",
		zap.Error(err),
	)
	return NewInMemoryCache(time.Minute), nil
}
