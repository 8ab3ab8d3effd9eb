package service

import (
	"context"
	"errors"

	"github.com/BloggingApp/journal-service/internal/repository/redisrepo"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// cache is best effort: Redis failures are logged and the store stays authoritative.
// A read racing a write can put back a stale entry after invalidation; only the TTL bounds it.
type cache struct {
	logger *zap.Logger
	redis  *redisrepo.RedisRepository
}

func fromCache[T any](c cache, ctx context.Context, key string) (*T, bool) {
	value, err := redisrepo.Get[T](c.redis, ctx, key)
	if err == nil {
		return value, value != nil
	}
	if !errors.Is(err, redis.Nil) {
		c.logger.Sugar().Errorf("failed to get %s from redis: %s", key, err.Error())
	}

	return nil, false
}

// fromCacheBSON is fromCache for documents with untyped fields, like the user profile.
func fromCacheBSON[T any](c cache, ctx context.Context, key string) (*T, bool) {
	value, err := redisrepo.GetBSON[T](c.redis, ctx, key)
	if err == nil {
		return value, true
	}
	if !errors.Is(err, redis.Nil) {
		c.logger.Sugar().Errorf("failed to get %s from redis: %s", key, err.Error())
	}

	return nil, false
}

func (c cache) storeBSON(ctx context.Context, key string, value interface{}) {
	if err := c.redis.SetBSON(ctx, key, value, c.redis.TTL); err != nil {
		c.logger.Sugar().Errorf("failed to set %s in redis: %s", key, err.Error())
	}
}

func (c cache) store(ctx context.Context, key string, value interface{}) {
	if err := c.redis.SetJSON(ctx, key, value, c.redis.TTL); err != nil {
		c.logger.Sugar().Errorf("failed to set %s in redis: %s", key, err.Error())
	}
}

func (c cache) invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}

	if err := c.redis.Del(ctx, keys...).Err(); err != nil {
		c.logger.Sugar().Errorf("failed to delete %v from redis: %s", keys, err.Error())
	}
}

func (c cache) invalidatePosts(ctx context.Context, postIDs ...string) {
	keys := make([]string, 0, len(postIDs))
	for _, id := range postIDs {
		keys = append(keys, redisrepo.PostKey(id))
	}

	c.invalidate(ctx, keys...)
}
