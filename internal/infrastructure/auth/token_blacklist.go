package auth

import (
	"context"
	"time"

	"github.com/erp/crm/internal/domain/shared"
)

// TokenBlacklist invalidates tokens before they expire
type TokenBlacklist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// CacheTokenBlacklist stores revoked token IDs in a shared.Cache, so it is
// backed by Redis in production and by memory in tests.
type CacheTokenBlacklist struct {
	cache shared.Cache
}

// NewCacheTokenBlacklist creates a blacklist on cache
func NewCacheTokenBlacklist(cache shared.Cache) *CacheTokenBlacklist {
	return &CacheTokenBlacklist{cache: cache}
}

func blacklistKey(jti string) string {
	return "token:blacklist:" + jti
}

// Revoke blacklists jti for ttl. Already-expired tokens are ignored.
func (b *CacheTokenBlacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if jti == "" || ttl <= 0 {
		return nil
	}
	return b.cache.Set(ctx, blacklistKey(jti), []byte{1}, ttl)
}

// IsRevoked reports whether jti was revoked
func (b *CacheTokenBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	_, ok, err := b.cache.Get(ctx, blacklistKey(jti))
	return ok, err
}
