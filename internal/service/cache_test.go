package service

import (
	"context"
	"testing"
	"time"

	"github.com/BloggingApp/journal-service/internal/model"
	"github.com/BloggingApp/journal-service/internal/repository/redisrepo"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestCache(t *testing.T) cache {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return cache{logger: zap.NewNop(), redis: redisrepo.New(rdb, time.Minute)}
}

func TestCachedUserKeepsProfileTypes(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	friend := primitive.NewObjectID()
	user := &model.User{
		ID:            primitive.NewObjectID(),
		Username:      "amy",
		Email:         "amy@x.com",
		CurrentStreak: 3,
		Profile:       bson.M{"age": int32(5), "friend": friend, "bio": "hello"},
	}
	key := redisrepo.UserKey(user.ID.Hex())

	_, ok := fromCacheBSON[model.User](c, ctx, key)
	assert.False(t, ok)

	c.storeBSON(ctx, key, user)

	cached, ok := fromCacheBSON[model.User](c, ctx, key)
	require.True(t, ok)
	assert.Equal(t, user.ID, cached.ID)
	assert.Equal(t, "amy", cached.Username)
	assert.Equal(t, 3, cached.CurrentStreak)
	assert.Empty(t, cached.Password)
	assert.Equal(t, int32(5), cached.Profile["age"])
	assert.Equal(t, friend, cached.Profile["friend"])
	assert.Equal(t, "hello", cached.Profile["bio"])

	c.invalidate(ctx, key)
	_, ok = fromCacheBSON[model.User](c, ctx, key)
	assert.False(t, ok)
}

func TestCachedPostRoundTrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	post := &model.Post{
		ID:            primitive.NewObjectID(),
		UserID:        primitive.NewObjectID().Hex(),
		Title:         "t",
		NumberOfLikes: 1,
		Likes:         []string{"amy"},
		Comments:      []model.Comment{},
	}
	key := redisrepo.PostKey(post.ID.Hex())
	c.store(ctx, key, post)

	cached, ok := fromCache[model.Post](c, ctx, key)
	require.True(t, ok)
	assert.Equal(t, post.ID, cached.ID)
	assert.Equal(t, post.Likes, cached.Likes)

	c.invalidatePosts(ctx, post.ID.Hex())
	_, ok = fromCache[model.Post](c, ctx, key)
	assert.False(t, ok)
}
