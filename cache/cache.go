package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a thin Redis-backed JSON cache for metadata and transcripts.
// When Redis is not configured or unreachable the cache degrades to a
// no-op and every lookup misses.
type Cache struct {
	rdb *redis.Client
}

// New creates a cache from REDIS_ADDR / REDIS_PASSWORD env vars. Returns a
// disabled cache when REDIS_ADDR is unset.
func New() *Cache {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return &Cache{}
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Caching will be disabled.", err)
		return &Cache{}
	}

	return &Cache{rdb: rdb}
}

// Enabled reports whether a Redis connection is available.
func (c *Cache) Enabled() bool { return c.rdb != nil }

// GetJSON fetches key and unmarshals it into dest. Returns false on a miss
// or when the cache is disabled.
func (c *Cache) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	if c.rdb == nil {
		return false, nil
	}

	data, err := c.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return true, nil
}

// SetJSON marshals val and stores it under key with the given TTL. No-op
// when the cache is disabled.
func (c *Cache) SetJSON(ctx context.Context, key string, val interface{}, ttl time.Duration) error {
	if c.rdb == nil {
		return nil
	}

	data, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	return c.rdb.Set(ctx, key, data, ttl).Err()
}

// MarkSeen records a video ID in a channel's seen set. Returns true when
// the ID was not seen before. Disabled caches report everything as unseen.
func (c *Cache) MarkSeen(ctx context.Context, channelID, videoID string) (bool, error) {
	if c.rdb == nil {
		return true, nil
	}

	added, err := c.rdb.SAdd(ctx, seenKey(channelID), videoID).Result()
	if err != nil {
		return false, fmt.Errorf("cache sadd: %w", err)
	}
	return added > 0, nil
}

// MetadataKey returns the cache key for a video's metadata.
func MetadataKey(videoID string) string {
	return "vidscribe:metadata:" + videoID
}

// TranscriptKey returns the cache key for a video's transcript.
func TranscriptKey(videoID string) string {
	return "vidscribe:transcript:" + videoID
}

func seenKey(channelID string) string {
	return "vidscribe:seen:" + channelID
}
