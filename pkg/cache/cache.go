package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTLs per data class
const (
	TTLDirectory = 1 * time.Minute  // directory pages (members join rarely)
	TTLStats     = 10 * time.Minute // member statistics
	TTLBlog      = 2 * time.Minute  // published blog list
	TTLPartners  = 30 * time.Minute // partner list (changes rarely)
	TTLDefault   = 5 * time.Minute
)

// Cache key prefixes
const (
	PrefixDirectory = "directory:"
	PrefixStats     = "stats:"
	PrefixBlog      = "blog:"
	PrefixPartners  = "partners:"
)

// Service is the Redis cache interface used by read-heavy endpoints.
// All operations degrade to no-ops (or misses) when Redis is unavailable.
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	GetDirectoryPage(ctx context.Context, query string, page, limit int) ([]byte, error)
	SetDirectoryPage(ctx context.Context, query string, page, limit int, data interface{}) error
	InvalidateDirectory(ctx context.Context) error

	GetMemberStats(ctx context.Context) ([]byte, error)
	SetMemberStats(ctx context.Context, data interface{}) error
	InvalidateMemberStats(ctx context.Context) error

	GetPublishedPosts(ctx context.Context, page, limit int) ([]byte, error)
	SetPublishedPosts(ctx context.Context, page, limit int, data interface{}) error
	InvalidatePublishedPosts(ctx context.Context) error

	IsAvailable() bool
	Ping(ctx context.Context) error
}

type redisCache struct {
	client *redis.Client
}

// NewService creates a cache service backed by the given Redis client
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

// IsAvailable reports whether a Redis client is wired
func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

// Ping verifies the Redis connection
func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	return c.client.Ping(ctx).Err()
}

// Get reads a JSON value from the cache
func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return fmt.Errorf("redis not available")
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

// Set stores a JSON value in the cache
func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return nil // no Redis, skip silently
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

// Delete removes keys from the cache
func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// ========================================
// Directory pages
// ========================================

func (c *redisCache) directoryKey(query string, page, limit int) string {
	return fmt.Sprintf("%s%s:%d:%d", PrefixDirectory, query, page, limit)
}

func (c *redisCache) GetDirectoryPage(ctx context.Context, query string, page, limit int) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, c.directoryKey(query, page, limit)).Bytes()
}

func (c *redisCache) SetDirectoryPage(ctx context.Context, query string, page, limit int, data interface{}) error {
	if c.client == nil {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.directoryKey(query, page, limit), jsonData, TTLDirectory).Err()
}

func (c *redisCache) InvalidateDirectory(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.deleteByPattern(ctx, PrefixDirectory+"*")
}

// ========================================
// Member statistics
// ========================================

func (c *redisCache) GetMemberStats(ctx context.Context) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, PrefixStats+"members").Bytes()
}

func (c *redisCache) SetMemberStats(ctx context.Context, data interface{}) error {
	if c.client == nil {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, PrefixStats+"members", jsonData, TTLStats).Err()
}

func (c *redisCache) InvalidateMemberStats(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, PrefixStats+"members").Err()
}

// ========================================
// Published blog posts
// ========================================

func (c *redisCache) blogKey(page, limit int) string {
	return fmt.Sprintf("%spublished:%d:%d", PrefixBlog, page, limit)
}

func (c *redisCache) GetPublishedPosts(ctx context.Context, page, limit int) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, c.blogKey(page, limit)).Bytes()
}

func (c *redisCache) SetPublishedPosts(ctx context.Context, page, limit int, data interface{}) error {
	if c.client == nil {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.blogKey(page, limit), jsonData, TTLBlog).Err()
}

func (c *redisCache) InvalidatePublishedPosts(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.deleteByPattern(ctx, PrefixBlog+"published:*")
}

// ========================================
// Internal utilities
// ========================================

func (c *redisCache) deleteByPattern(ctx context.Context, pattern string) error {
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
