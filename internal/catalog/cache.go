package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	rec "automation-coach/internal/recommendations"
	"automation-coach/internal/shared/metrics"
	"automation-coach/internal/shared/telemetry"
)

const activeToolsKey = "catalog:active:v1"

// CachedRepo serves ListActive from a Redis snapshot and falls through to the
// wrapped repo on a miss or when Redis is unavailable. Writes invalidate the
// snapshot.
type CachedRepo struct {
	inner  Repo
	client *redis.Client
	ttl    time.Duration
}

// NewCachedRepo wraps inner with a Redis snapshot cache.
func NewCachedRepo(inner Repo, client *redis.Client, ttl time.Duration) *CachedRepo {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &CachedRepo{inner: inner, client: client, ttl: ttl}
}

// NewRedisClient parses a redis:// URL.
func NewRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	return redis.NewClient(opts), nil
}

func (r *CachedRepo) ListActive(ctx context.Context) ([]rec.Tool, error) {
	data, err := r.client.Get(ctx, activeToolsKey).Bytes()
	switch {
	case err == nil:
		var tools []rec.Tool
		if jsonErr := json.Unmarshal(data, &tools); jsonErr == nil {
			metrics.IncCatalogCache("hit")
			return tools, nil
		}
		metrics.IncCatalogCache("error")
	case errors.Is(err, redis.Nil):
		metrics.IncCatalogCache("miss")
	default:
		metrics.IncCatalogCache("error")
		telemetry.Warn("catalog.cache_unavailable", map[string]any{"error": err})
	}

	tools, err := r.inner.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if payload, jsonErr := json.Marshal(tools); jsonErr == nil {
		if setErr := r.client.Set(ctx, activeToolsKey, payload, r.ttl).Err(); setErr != nil {
			telemetry.Warn("catalog.cache_store_failed", map[string]any{"error": setErr})
		}
	}
	return tools, nil
}

// CategoryCounts is derived from the cached snapshot so both views agree.
func (r *CachedRepo) CategoryCounts(ctx context.Context) ([]CategoryCount, error) {
	tools, err := r.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	return CountByCategory(tools), nil
}

func (r *CachedRepo) Upsert(ctx context.Context, tools []rec.Tool) error {
	if err := r.inner.Upsert(ctx, tools); err != nil {
		return err
	}
	return r.Invalidate(ctx)
}

func (r *CachedRepo) Count(ctx context.Context) (int, error) {
	return r.inner.Count(ctx)
}

// Invalidate drops the snapshot.
func (r *CachedRepo) Invalidate(ctx context.Context) error {
	if err := r.client.Del(ctx, activeToolsKey).Err(); err != nil {
		return fmt.Errorf("invalidate catalog cache: %w", err)
	}
	return nil
}

var _ Repo = (*CachedRepo)(nil)
