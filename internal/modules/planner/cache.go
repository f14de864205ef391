// README: Redis-backed cache for reusable plan sections.
package planner

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"wayfarer/internal/logger"
)

const defaultSectionTTL = 24 * time.Hour

// sectionCache stores generated section payloads keyed by a digest of the
// exact request that produced them. All operations are best effort: a cache
// without a Redis client behaves like a permanent miss.
type sectionCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func newSectionCache(rdb *redis.Client, ttl time.Duration) *sectionCache {
	if ttl <= 0 {
		ttl = defaultSectionTTL
	}
	return &sectionCache{rdb: rdb, ttl: ttl}
}

// sectionKey digests the section name, model, and prompt into a stable key.
// Any change to the prompt text or model naturally invalidates old entries.
func sectionKey(section, model, prompt string) string {
	h := sha256.New()
	h.Write([]byte(model))
	h.Write([]byte{0})
	h.Write([]byte(prompt))
	return fmt.Sprintf("section:%s:%s", section, hex.EncodeToString(h.Sum(nil)))
}

func (c *sectionCache) get(ctx context.Context, key string) (string, bool) {
	if c.rdb == nil {
		return "", false
	}
	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (c *sectionCache) put(ctx context.Context, key, val string) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Set(ctx, key, val, c.ttl).Err(); err != nil {
		logger.Warnf("section cache write failed: %v", err)
	}
}
