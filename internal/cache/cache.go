// Package cache holds the Redis-backed read caches: first-page search
// results (5 minutes) and the current-user record (24 hours).
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"chefhire_backend/internal/config"

	"github.com/redis/go-redis/v9"
)

const (
	// SearchTTL bounds staleness of cached first-page search results.
	SearchTTL = 5 * time.Minute

	// UserTTL bounds staleness of the cached current-user record.
	UserTTL = 24 * time.Hour
)

// NewRedisClient builds a client from config and verifies the connection.
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

// SearchCache caches page-1 resume search responses keyed by the exact
// filter combination. Entries are written only for empty free-text search;
// any resume mutation drops the whole keyspace.
type SearchCache struct {
	client *redis.Client
	prefix string
}

func NewSearchCache(client *redis.Client) *SearchCache {
	return &SearchCache{
		client: client,
		prefix: "search:resumes:",
	}
}

// Cacheable reports whether a request may be served from / written to the
// cache: only page 1, and never for typeahead-style free-text queries.
func Cacheable(page int, search string) bool {
	return page == 1 && search == ""
}

// Key builds the cache key for a filter combination. All three filter values
// participate, so any mismatch forces a network fetch.
func (c *SearchCache) Key(limit int, experience, profession string) string {
	if experience == "" {
		experience = "all"
	}
	if profession == "" {
		profession = "all"
	}
	return fmt.Sprintf("%slimit=%d:exp=%s:prof=%s", c.prefix, limit, experience, profession)
}

// Get loads a cached response into dest. Returns false on miss.
func (c *SearchCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// Set stores a response under key with the search TTL.
func (c *SearchCache) Set(ctx context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, SearchTTL).Err()
}

// Invalidate drops every cached search page. Called after any resume
// create, update, delete or verification change.
func (c *SearchCache) Invalidate(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, c.prefix+"*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// UserCache caches the current-user record served by /users/me.
type UserCache struct {
	client *redis.Client
	prefix string
}

func NewUserCache(client *redis.Client) *UserCache {
	return &UserCache{
		client: client,
		prefix: "user:me:",
	}
}

func (c *UserCache) Get(ctx context.Context, userID string, dest interface{}) (bool, error) {
	raw, err := c.client.Get(ctx, c.prefix+userID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *UserCache) Set(ctx context.Context, userID string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.prefix+userID, raw, UserTTL).Err()
}

// Delete drops the cached record after a profile mutation.
func (c *UserCache) Delete(ctx context.Context, userID string) error {
	return c.client.Del(ctx, c.prefix+userID).Err()
}
