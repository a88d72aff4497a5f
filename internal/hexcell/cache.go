package hexcell

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"campaign-server/internal/hexgrid"
	"campaign-server/internal/shared/redis"
)

// CachedStore is a read-through cache in front of a Store. Single-cell reads
// are served from redis when possible; writes and deletes invalidate the
// key. Range queries pass through untouched so the sparse range semantics
// stay exactly those of the inner store. Misses are never cached: an absent
// key must always re-resolve against storage.
type CachedStore struct {
	inner  Store
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedStore(inner Store, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedStore {
	return &CachedStore{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func cacheKey(id string) string { return "hexcell:" + id }

func (c *CachedStore) Get(ctx context.Context, layer int, h hexgrid.Hex) (*Record, error) {
	id, err := hexgrid.GenerateID(layer, h)
	if err != nil {
		return nil, err
	}

	if data, err := c.client.Get(ctx, cacheKey(id)).Bytes(); err == nil {
		var rec Record
		if err := json.Unmarshal(data, &rec); err == nil {
			return &rec, nil
		}
		// Unreadable cache entry: fall through to storage and rewrite below.
		c.logger.Warn("Discarding corrupt hex cell cache entry", "hex_id", id)
	}

	rec, err := c.inner.Get(ctx, layer, h)
	if err != nil || rec == nil {
		return rec, err
	}

	if data, err := json.Marshal(rec); err == nil {
		if err := c.client.Set(ctx, cacheKey(id), data, c.ttl).Err(); err != nil {
			c.logger.Warn("Failed to cache hex cell", "hex_id", id, "error", err)
		}
	}
	return rec, nil
}

func (c *CachedStore) Put(ctx context.Context, layer int, h hexgrid.Hex, rec Record) error {
	if err := c.inner.Put(ctx, layer, h, rec); err != nil {
		return err
	}
	c.invalidate(ctx, layer, h)
	return nil
}

func (c *CachedStore) ApplyPatch(ctx context.Context, layer int, h hexgrid.Hex, p Patch) (*Record, error) {
	rec, err := c.inner.ApplyPatch(ctx, layer, h, p)
	if err != nil {
		return nil, err
	}
	c.invalidate(ctx, layer, h)
	return rec, nil
}

func (c *CachedStore) Delete(ctx context.Context, layer int, h hexgrid.Hex) (bool, error) {
	existed, err := c.inner.Delete(ctx, layer, h)
	if err != nil {
		return false, err
	}
	c.invalidate(ctx, layer, h)
	return existed, nil
}

func (c *CachedStore) GetRange(ctx context.Context, layer int, rng hexgrid.Range) (map[string]Record, error) {
	return c.inner.GetRange(ctx, layer, rng)
}

func (c *CachedStore) invalidate(ctx context.Context, layer int, h hexgrid.Hex) {
	id, err := hexgrid.GenerateID(layer, h)
	if err != nil {
		return
	}
	if err := c.client.Del(ctx, cacheKey(id)).Err(); err != nil {
		c.logger.Warn("Failed to invalidate hex cell cache", "hex_id", id, "error", err)
	}
}
