package repository

import (
	"time"

	"github.com/BloggingApp/journal-service/internal/repository/mongodb"
	"github.com/BloggingApp/journal-service/internal/repository/redisrepo"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

type Repository struct {
	Mongo *mongodb.MongoRepository
	Redis *redisrepo.RedisRepository
}

// New wires the store and the read cache. rdb may be nil to run without a cache.
func New(db *mongo.Database, rdb *redis.Client, cacheTTL time.Duration) *Repository {
	return &Repository{
		Mongo: mongodb.New(db),
		Redis: redisrepo.New(rdb, cacheTTL),
	}
}
