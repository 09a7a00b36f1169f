package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/okarev/chronomap-backend/internal/geojson"
	"github.com/okarev/chronomap-backend/internal/logger"
)

// CachedLayer is one marshaled layer response: the weak ETag plus the
// FeatureCollection it tags.
type CachedLayer struct {
	ETag string                     `json:"etag"`
	Body *geojson.FeatureCollection `json:"body"`
}

// LayerCache is a read-through cache for layer responses. Get returns
// (nil, nil) on miss; failures are surfaced so the caller can decide to
// degrade to the store.
type LayerCache interface {
	Get(ctx context.Context, key string) (*CachedLayer, error)
	Set(ctx context.Context, key string, layer *CachedLayer) error
	Close() error
}

type redisLayerCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewRedisLayerCache(log *logger.Logger, addr string, ttl time.Duration) (LayerCache, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis address required")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &redisLayerCache{
		log: log.With("service", "RedisLayerCache"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

func (c *redisLayerCache) Get(ctx context.Context, key string) (*CachedLayer, error) {
	raw, err := c.rdb.Get(ctx, "layer:"+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get %q: %w", key, err)
	}
	var layer CachedLayer
	if err := json.Unmarshal(raw, &layer); err != nil {
		// A corrupt entry behaves like a miss; the next Set repairs it.
		c.log.Warn("Dropping corrupt cache entry", "key", key, "error", err)
		return nil, nil
	}
	return &layer, nil
}

func (c *redisLayerCache) Set(ctx context.Context, key string, layer *CachedLayer) error {
	raw, err := json.Marshal(layer)
	if err != nil {
		return fmt.Errorf("cache marshal %q: %w", key, err)
	}
	if err := c.rdb.Set(ctx, "layer:"+key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %q: %w", key, err)
	}
	return nil
}

func (c *redisLayerCache) Close() error {
	return c.rdb.Close()
}
