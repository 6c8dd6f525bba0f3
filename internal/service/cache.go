package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ResultCache is an optional redis-backed cache for serialized diagnostic
// results. Keys are digests of the full request payload, so a cached entry
// can never go stale relative to its inputs; TTL only bounds memory.
type ResultCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResultCache opens a redis client for result caching. An empty addr
// disables caching and returns nil, which every method tolerates.
func NewResultCache(addr, pass string, ttlSeconds int) *ResultCache {
	if addr == "" {
		return nil
	}
	return &ResultCache{
		client: redis.NewClient(&redis.Options{Addr: addr, Password: pass}),
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
}

// Key builds a cache key from a namespace and the request payload digest.
func (c *ResultCache) Key(prefix string, payload interface{}) string {
	b, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(b)
	return prefix + ":" + hex.EncodeToString(sum[:])
}

// Get loads a cached result into dst, reporting whether it was present.
func (c *ResultCache) Get(ctx context.Context, key string, dst interface{}) bool {
	if c == nil || key == "" {
		return false
	}
	raw, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("cache get %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		log.Printf("cache decode %s: %v", key, err)
		return false
	}
	return true
}

// Set stores a result; failures are logged and otherwise ignored.
func (c *ResultCache) Set(ctx context.Context, key string, v interface{}) {
	if c == nil || key == "" {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, string(b), c.ttl).Err(); err != nil {
		log.Printf("cache set %s: %v", key, err)
	}
}
