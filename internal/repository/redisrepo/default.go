package redisrepo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
)

type defaultRepo struct {
	rdb *redis.Client
}

func newDefaultRepo(rdb *redis.Client) Default {
	return &defaultRepo{
		rdb: rdb,
	}
}

func (r *defaultRepo) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	valueJSON, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return r.rdb.Set(ctx, key, valueJSON, ttl).Err()
}

// SetBSON keeps document types (int32, ObjectID, dates) that a JSON round-trip would flatten.
func (r *defaultRepo) SetBSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	valueBSON, err := bson.Marshal(value)
	if err != nil {
		return err
	}

	return r.rdb.Set(ctx, key, valueBSON, ttl).Err()
}

func (r *defaultRepo) Get(ctx context.Context, key string) *redis.StringCmd {
	return r.rdb.Get(ctx, key)
}

func Get[T any](r Default, ctx context.Context, key string) (*T, error) {
	value, err := r.Get(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	if value == "null" {
		return nil, nil
	}

	var result T
	if err := json.Unmarshal([]byte(value), &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func GetBSON[T any](r Default, ctx context.Context, key string) (*T, error) {
	value, err := r.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}

	var result T
	if err := bson.Unmarshal(value, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *defaultRepo) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	return r.rdb.Del(ctx, keys...)
}

// noopRepo stands in when no Redis address is configured: every read misses and writes are dropped.
type noopRepo struct{}

func (noopRepo) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (noopRepo) SetBSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (noopRepo) Get(ctx context.Context, key string) *redis.StringCmd {
	return redis.NewStringResult("", redis.Nil)
}

func (noopRepo) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	return redis.NewIntResult(0, nil)
}
