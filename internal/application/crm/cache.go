package crm

import (
	"context"
	"encoding/json"
	"time"

	"github.com/erp/crm/internal/domain/crm"
	"github.com/erp/crm/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EntityCache keeps serialized records keyed by table, tenant and id.
// Cache failures are logged and treated as misses.
type EntityCache struct {
	cache  shared.Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewEntityCache wraps cache. A nil cache disables caching.
func NewEntityCache(cache shared.Cache, ttl time.Duration, logger *zap.Logger) *EntityCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EntityCache{cache: cache, ttl: ttl, logger: logger}
}

// Key returns the cache key of a record. The backend adds its own prefix.
func (c *EntityCache) Key(d crm.Descriptor, tenantID, id uuid.UUID) string {
	return d.Table + ":" + tenantID.String() + ":" + id.String()
}

// Get returns the cached record, or nil on a miss
func (c *EntityCache) Get(ctx context.Context, d crm.Descriptor, tenantID, id uuid.UUID) crm.Record {
	if c == nil || c.cache == nil {
		return nil
	}
	key := c.Key(d, tenantID, id)
	data, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.Warn("entity cache read failed", zap.String("key", key), zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}
	rec := d.New()
	if err := json.Unmarshal(data, rec); err != nil {
		c.logger.Warn("discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
		_ = c.cache.Delete(ctx, key)
		return nil
	}
	return rec
}

// Set stores rec under its key
func (c *EntityCache) Set(ctx context.Context, d crm.Descriptor, rec crm.Record) {
	if c == nil || c.cache == nil {
		return
	}
	base := rec.Base()
	key := c.Key(d, base.TenantID, base.ID)
	data, err := json.Marshal(rec)
	if err != nil {
		c.logger.Warn("entity cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.cache.Set(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("entity cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate drops the cached copy of a record
func (c *EntityCache) Invalidate(ctx context.Context, d crm.Descriptor, tenantID, id uuid.UUID) {
	if c == nil || c.cache == nil {
		return
	}
	key := c.Key(d, tenantID, id)
	if err := c.cache.Delete(ctx, key); err != nil {
		c.logger.Warn("entity cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}
