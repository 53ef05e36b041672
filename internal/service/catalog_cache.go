package service

import (
	"context"
	"edutrack_backend/internal/model"
	"edutrack_backend/pkg/logger"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	catalogGenerationKey = "edutrack:catalog:generation"
	catalogCacheKey      = "edutrack:catalog:quizzes"
)

// CatalogCache holds the derived quiz listing between writes. Stale or missing entries
// are never an error: callers fall back to the row store.
//
// Entries are keyed by generation. On a miss Get returns the current generation, and the
// caller passes it back to Set after reading the store. Invalidate starts a new generation,
// so a listing computed before an invalidation is written under a key no reader asks for
// and ages out with the TTL.
type CatalogCache interface {
	Get(ctx context.Context) (quizzes []model.QuizWithStats, generation int64, ok bool)
	Set(ctx context.Context, generation int64, quizzes []model.QuizWithStats)
	Invalidate(ctx context.Context)
}

type noopCatalogCache struct{}

// NewNoopCatalogCache is used when redis is disabled.
func NewNoopCatalogCache() CatalogCache {
	return noopCatalogCache{}
}

func (noopCatalogCache) Get(context.Context) ([]model.QuizWithStats, int64, bool) {
	return nil, 0, false
}
func (noopCatalogCache) Set(context.Context, int64, []model.QuizWithStats) {}
func (noopCatalogCache) Invalidate(context.Context)                        {}

type RedisCatalogCache struct {
	Redis *redis.Client
	TTL   time.Duration
}

func NewRedisCatalogCache(rdb *redis.Client, ttl time.Duration) *RedisCatalogCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &RedisCatalogCache{Redis: rdb, TTL: ttl}
}

func catalogKey(generation int64) string {
	return fmt.Sprintf("%s:%d", catalogCacheKey, generation)
}

// Get returns generation -1 when the generation cannot be read; Set ignores it.
func (c *RedisCatalogCache) Get(ctx context.Context) ([]model.QuizWithStats, int64, bool) {
	generation, err := c.Redis.Get(ctx, catalogGenerationKey).Int64()
	if err == redis.Nil {
		generation = 0
	} else if err != nil {
		logger.Log.Warn("catalog cache generation read failed", zap.Error(err))
		return nil, -1, false
	}

	val, err := c.Redis.Get(ctx, catalogKey(generation)).Result()
	if err == redis.Nil {
		return nil, generation, false
	}
	if err != nil {
		logger.Log.Warn("catalog cache read failed", zap.Error(err))
		return nil, generation, false
	}

	var quizzes []model.QuizWithStats
	if err := json.Unmarshal([]byte(val), &quizzes); err != nil {
		logger.Log.Warn("catalog cache entry is corrupt", zap.Error(err))
		return nil, generation, false
	}
	return quizzes, generation, true
}

func (c *RedisCatalogCache) Set(ctx context.Context, generation int64, quizzes []model.QuizWithStats) {
	if generation < 0 {
		return
	}
	data, err := json.Marshal(quizzes)
	if err != nil {
		return
	}
	if err := c.Redis.Set(ctx, catalogKey(generation), data, c.TTL).Err(); err != nil {
		logger.Log.Warn("catalog cache write failed", zap.Error(err))
	}
}

func (c *RedisCatalogCache) Invalidate(ctx context.Context) {
	if err := c.Redis.Incr(ctx, catalogGenerationKey).Err(); err != nil {
		logger.Log.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}
