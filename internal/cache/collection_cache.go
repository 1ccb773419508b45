// Package cache keeps tenant collections and revoked token ids in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const collectionPrefix = "ems:collection:"

// CollectionCache stores a tenant's full collection of one resource.
//
// Entries are keyed by a per-resource generation. Get reports the generation it read
// under and Set writes under the generation it is given, so a load that raced with
// Invalidate lands on a key nobody reads anymore.
type CollectionCache interface {
	Get(ctx context.Context, companyID, resource string, dest any) (bool, int64, error)
	Set(ctx context.Context, companyID, resource string, gen int64, value any) error
	Invalidate(ctx context.Context, companyID string, resources ...string) error
}

type redisCollectionCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

// NewCollectionCache returns a Redis-backed cache. A nil client yields a cache that never hits.
func NewCollectionCache(rdb redis.Cmdable, ttl time.Duration) CollectionCache {
	if rdb == nil {
		return NopCollectionCache{}
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &redisCollectionCache{rdb: rdb, ttl: ttl}
}

// GenerationKey holds the counter bumped on every invalidation of a tenant's resource.
func GenerationKey(companyID, resource string) string {
	return collectionPrefix + companyID + ":" + resource + ":gen"
}

// CollectionKey is the redis key for a tenant's resource collection at generation gen.
func CollectionKey(companyID, resource string, gen int64) string {
	return collectionPrefix + companyID + ":" + resource + ":" + strconv.FormatInt(gen, 10)
}

func (c *redisCollectionCache) generation(ctx context.Context, companyID, resource string) (int64, error) {
	gen, err := c.rdb.Get(ctx, GenerationKey(companyID, resource)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *redisCollectionCache) Get(ctx context.Context, companyID, resource string, dest any) (bool, int64, error) {
	gen, err := c.generation(ctx, companyID, resource)
	if err != nil {
		return false, 0, err
	}
	raw, err := c.rdb.Get(ctx, CollectionKey(companyID, resource, gen)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, gen, nil
	}
	if err != nil {
		return false, gen, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, gen, fmt.Errorf("decode cached %s: %w", resource, err)
	}
	return true, gen, nil
}

func (c *redisCollectionCache) Set(ctx context.Context, companyID, resource string, gen int64, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", resource, err)
	}
	return c.rdb.Set(ctx, CollectionKey(companyID, resource, gen), raw, c.ttl).Err()
}

// Invalidate bumps the generation of every resource. Entries under older generations
// are left to expire.
func (c *redisCollectionCache) Invalidate(ctx context.Context, companyID string, resources ...string) error {
	if len(resources) == 0 {
		return nil
	}
	_, err := c.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, r := range resources {
			pipe.Incr(ctx, GenerationKey(companyID, r))
		}
		return nil
	})
	return err
}

// NopCollectionCache never stores anything.
type NopCollectionCache struct{}

func (NopCollectionCache) Get(context.Context, string, string, any) (bool, int64, error) {
	return false, 0, nil
}
func (NopCollectionCache) Set(context.Context, string, string, int64, any) error { return nil }
func (NopCollectionCache) Invalidate(context.Context, string, ...string) error   { return nil }
