package mongodb

import (
	"context"

	"github.com/BloggingApp/journal-service/internal/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connect opens a client and pings the primary so an unreachable store fails at startup.
func Connect(ctx context.Context, cfg config.DBConfig) (*mongo.Client, error) {
	opts := options.Client().ApplyURI(cfg.ConnectionURI())
	if cfg.Timeout > 0 {
		opts.SetConnectTimeout(cfg.Timeout).SetServerSelectionTimeout(cfg.Timeout)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return client, nil
}

func Database(client *mongo.Client, cfg config.DBConfig) *mongo.Database {
	return client.Database(cfg.DatabaseName())
}
