package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseName(t *testing.T) {
	tests := []struct {
		name     string
		cfg      DBConfig
		expected string
	}{
		{name: "production", cfg: DBConfig{Mode: ModeProduction}, expected: "swe_journal"},
		{name: "dev", cfg: DBConfig{Mode: ModeDev}, expected: "swe_journal_dev"},
		{name: "test", cfg: DBConfig{Mode: ModeTest}, expected: "swe_journal_test"},
		{name: "explicit name wins", cfg: DBConfig{Mode: ModeTest, DBName: "custom"}, expected: "custom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cfg.DatabaseName())
		})
	}
}

func TestConnectionURI(t *testing.T) {
	cfg := DBConfig{Host: "db", Port: "27018"}
	assert.Equal(t, "mongodb://db:27018", cfg.ConnectionURI())

	cfg.URI = "mongodb+srv://cluster.example.net"
	assert.Equal(t, "mongodb+srv://cluster.example.net", cfg.ConnectionURI())
}

func TestParseMode(t *testing.T) {
	assert.Equal(t, ModeDev, ParseMode("dev"))
	assert.Equal(t, ModeTest, ParseMode(" TEST "))
	assert.Equal(t, ModeProduction, ParseMode(""))
	assert.Equal(t, ModeProduction, ParseMode("staging"))
}

func TestLoad(t *testing.T) {
	t.Setenv("MONGO_URI", "")
	t.Setenv("DB_HOST", "mongo.internal")
	t.Setenv("DB_PORT", "27019")
	t.Setenv("DB_DATABASE", "")
	t.Setenv("MODE", "TEST")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CACHE_TTL", "30m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mongodb://mongo.internal:27019", cfg.DB.ConnectionURI())
	assert.Equal(t, "swe_journal_test", cfg.DB.DatabaseName())
	assert.True(t, cfg.DB.IsTest())
	assert.Equal(t, 10*time.Second, cfg.DB.Timeout)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 30*time.Minute, cfg.Redis.TTL)
}
