package main

import (
	"context"
	"testing"

	"github.com/BloggingApp/journal-service/internal/config"
	"github.com/BloggingApp/journal-service/internal/repository"
	"github.com/BloggingApp/journal-service/internal/repository/redisrepo"
	"github.com/BloggingApp/journal-service/internal/service"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRunUnknownCommand(t *testing.T) {
	err := run(context.Background(), zap.NewNop(), nil, "bogus", nil)
	assert.ErrorContains(t, err, `unknown command "bogus"`)
}

func TestRunClearOutsideTestMode(t *testing.T) {
	repo := &repository.Repository{Redis: redisrepo.New(nil, 0)}
	services := service.New(zap.NewNop(), repo, config.DBConfig{Mode: config.ModeProduction})

	err := run(context.Background(), zap.NewNop(), services, "clear", nil)
	assert.ErrorIs(t, err, service.ErrNotTestMode)
}

func TestRunReconcileRejectsInvalidID(t *testing.T) {
	repo := &repository.Repository{Redis: redisrepo.New(nil, 0)}
	services := service.New(zap.NewNop(), repo, config.DBConfig{Mode: config.ModeTest})

	err := run(context.Background(), zap.NewNop(), services, "reconcile", []string{"nope"})
	assert.ErrorIs(t, err, service.ErrInvalidID)
}

func TestConnectRedisWithoutAddr(t *testing.T) {
	assert.Nil(t, connectRedis(context.Background(), zap.NewNop(), config.RedisConfig{}))
}

func TestNewLogger(t *testing.T) {
	assert.NotNil(t, newLogger(config.ModeDev))
	assert.NotNil(t, newLogger(config.ModeProduction))
}
