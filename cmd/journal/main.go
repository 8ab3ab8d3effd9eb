package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/BloggingApp/journal-service/internal/config"
	"github.com/BloggingApp/journal-service/internal/repository"
	"github.com/BloggingApp/journal-service/internal/repository/mongodb"
	"github.com/BloggingApp/journal-service/internal/service"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const usage = `usage: journal <command>

commands:
  check              report posts whose counters or embedded comments drifted
  reconcile [postID] rebuild counters for one post, or for every drifting post
  clear              drop all collections (TEST mode only)`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	os.Exit(start(os.Args[1], os.Args[2:]))
}

func start(command string, args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %s\n", err.Error())
		return 1
	}

	logger := newLogger(cfg.DB.Mode)
	defer logger.Sync()

	client, err := mongodb.Connect(ctx, cfg.DB)
	if err != nil {
		logger.Sugar().Errorf("failed to connect to mongodb: %s", err.Error())
		return 1
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logger.Sugar().Errorf("failed to disconnect from mongodb: %s", err.Error())
		}
	}()
	logger.Sugar().Infof("Successfully connected to MongoDB, db=%s", cfg.DB.DatabaseName())

	rdb := connectRedis(ctx, logger, cfg.Redis)
	if rdb != nil {
		defer rdb.Close()
	}

	repos := repository.New(mongodb.Database(client, cfg.DB), rdb, cfg.Redis.TTL)
	services := service.New(logger, repos, cfg.DB)

	if err := run(ctx, logger, services, command, args); err != nil {
		logger.Sugar().Errorf("%s failed: %s", command, err.Error())
		return 1
	}

	return 0
}

func newLogger(mode config.Mode) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if mode == config.ModeDev {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}

	return logger
}

// connectRedis returns nil when no address is configured or Redis is unreachable; the cache is optional.
func connectRedis(ctx context.Context, logger *zap.Logger, cfg config.RedisConfig) *redis.Client {
	if cfg.Addr == "" {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.Addr})
	pong, err := rdb.Ping(ctx).Result()
	if err != nil {
		logger.Sugar().Warnf("redis unavailable, continuing without cache: %s", err.Error())
		_ = rdb.Close()
		return nil
	}
	logger.Sugar().Infof("Successfully connected to Redis: %s", pong)

	return rdb
}

func run(ctx context.Context, logger *zap.Logger, services *service.Service, command string, args []string) error {
	switch command {
	case "check":
		drifts, err := services.Consistency.Check(ctx)
		if err != nil {
			return err
		}
		for _, d := range drifts {
			logger.Sugar().Warnf(
				"post(%s) drifted: number_of_likes=%d likes=%d number_of_comments=%d embedded=%d stored=%d",
				d.PostID.Hex(), d.NumberOfLikes, d.Likes, d.NumberOfComments, d.EmbeddedComments, d.StoredComments,
			)
		}
		logger.Sugar().Infof("consistency check done, %d drifting posts", len(drifts))
		return nil

	case "reconcile":
		if len(args) > 0 {
			return services.Consistency.Reconcile(ctx, args[0])
		}
		drifts, err := services.Consistency.Check(ctx)
		if err != nil {
			return err
		}
		for _, d := range drifts {
			if err := services.Consistency.Reconcile(ctx, d.PostID.Hex()); err != nil {
				return err
			}
		}
		return nil

	case "clear":
		return services.ClearDB(ctx)

	default:
		return fmt.Errorf("unknown command %q\n%s", command, usage)
	}
}
