package redisrepo

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type cachedPost struct {
	ID    string   `json:"_id"`
	Title string   `json:"title"`
	Likes []string `json:"likes"`
}

func newTestRepo(t *testing.T) (*RedisRepository, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return New(rdb, time.Minute), mr
}

func TestSetJSONAndGet(t *testing.T) {
	repo, mr := newTestRepo(t)
	ctx := context.Background()

	post := cachedPost{ID: "65f1c0ffee", Title: "t", Likes: []string{"amy"}}
	require.NoError(t, repo.SetJSON(ctx, PostKey(post.ID), post, repo.TTL))

	assert.True(t, mr.Exists("post:65f1c0ffee"))
	assert.Equal(t, time.Minute, mr.TTL("post:65f1c0ffee"))

	got, err := Get[cachedPost](repo, ctx, PostKey(post.ID))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, post, *got)
}

func TestGetMissAndNull(t *testing.T) {
	repo, mr := newTestRepo(t)
	ctx := context.Background()

	_, err := Get[cachedPost](repo, ctx, PostKey("missing"))
	assert.ErrorIs(t, err, redis.Nil)

	require.NoError(t, mr.Set(UserKey("ghost"), "null"))
	got, err := Get[cachedPost](repo, ctx, UserKey("ghost"))
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestDel(t *testing.T) {
	repo, mr := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SetJSON(ctx, PostKey("a"), cachedPost{ID: "a"}, repo.TTL))
	require.NoError(t, repo.SetJSON(ctx, PostKey("b"), cachedPost{ID: "b"}, repo.TTL))

	deleted, err := repo.Del(ctx, PostKey("a"), PostKey("b"), PostKey("c")).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
	assert.False(t, mr.Exists(PostKey("a")))
}

func TestNoopRepoAlwaysMisses(t *testing.T) {
	repo := New(nil, time.Minute)
	ctx := context.Background()

	require.NoError(t, repo.SetJSON(ctx, PostKey("a"), cachedPost{ID: "a"}, repo.TTL))

	_, err := Get[cachedPost](repo, ctx, PostKey("a"))
	assert.ErrorIs(t, err, redis.Nil)
	assert.NoError(t, repo.Del(ctx, PostKey("a")).Err())
}

type cachedUser struct {
	ID       primitive.ObjectID `bson:"_id"`
	Username string             `bson:"username"`
	Profile  bson.M             `bson:",inline"`
}

func TestSetBSONKeepsValueTypes(t *testing.T) {
	repo, mr := newTestRepo(t)
	ctx := context.Background()

	friend := primitive.NewObjectID()
	joined := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	user := cachedUser{
		ID:       primitive.NewObjectID(),
		Username: "amy",
		Profile:  bson.M{"age": int32(5), "friend": friend, "joined": joined},
	}
	require.NoError(t, repo.SetBSON(ctx, UserKey(user.ID.Hex()), user, repo.TTL))
	assert.Equal(t, time.Minute, mr.TTL(UserKey(user.ID.Hex())))

	got, err := GetBSON[cachedUser](repo, ctx, UserKey(user.ID.Hex()))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, int32(5), got.Profile["age"])
	assert.Equal(t, friend, got.Profile["friend"])
	assert.Equal(t, primitive.NewDateTimeFromTime(joined), got.Profile["joined"])

	_, err = GetBSON[cachedUser](repo, ctx, UserKey("missing"))
	assert.ErrorIs(t, err, redis.Nil)

	noop := New(nil, time.Minute)
	require.NoError(t, noop.SetBSON(ctx, UserKey(user.ID.Hex()), user, noop.TTL))
	_, err = GetBSON[cachedUser](noop, ctx, UserKey(user.ID.Hex()))
	assert.ErrorIs(t, err, redis.Nil)
}
