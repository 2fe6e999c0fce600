package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/nguyentantai21042004/lecture-flow/internal/config"
	"github.com/nguyentantai21042004/lecture-flow/internal/logger"
)

// New returns a Redis client when cfg.RedisAddr is set and reachable, and an
// in-memory client otherwise.
func New(ctx context.Context, cfg config.CacheConfig, log logger.Logger) Client {
	if cfg.RedisAddr == "" {
		return NewMemoryClient(0)
	}
	c, err := NewRedisClient(ctx, RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		Prefix:   cfg.Prefix,
	})
	if err != nil {
		log.Warn(ctx, "Redis unavailable (%v), caching in memory", err)
		return NewMemoryClient(0)
	}
	log.Info(ctx, "Search cache: redis at %s", cfg.RedisAddr)
	return c
}

// Key joins parts with ':' and hashes the last part, which may be long free
// text such as a search query.
func Key(parts ...string) string {
	if len(parts) == 0 {
		return ""
	}
	last := sha256.Sum256([]byte(parts[len(parts)-1]))
	out := append(append([]string(nil), parts[:len(parts)-1]...), hex.EncodeToString(last[:16]))
	return strings.Join(out, ":")
}
