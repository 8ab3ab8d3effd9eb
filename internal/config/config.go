package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Mode string

const (
	ModeProduction Mode = "PROD"
	ModeDev        Mode = "DEV"
	ModeTest       Mode = "TEST"
)

func ParseMode(s string) Mode {
	switch Mode(strings.ToUpper(strings.TrimSpace(s))) {
	case ModeDev:
		return ModeDev
	case ModeTest:
		return ModeTest
	default:
		return ModeProduction
	}
}

type DBConfig struct {
	URI     string
	Host    string
	Port    string
	DBName  string
	Mode    Mode
	Timeout time.Duration
}

// ConnectionURI prefers an explicit MONGO_URI and falls back to host and port.
func (c DBConfig) ConnectionURI() string {
	if c.URI != "" {
		return c.URI
	}

	return fmt.Sprintf("mongodb://%s:%s", c.Host, c.Port)
}

func (c DBConfig) DatabaseName() string {
	if c.DBName != "" {
		return c.DBName
	}

	switch c.Mode {
	case ModeDev:
		return "swe_journal_dev"
	case ModeTest:
		return "swe_journal_test"
	default:
		return "swe_journal"
	}
}

func (c DBConfig) IsTest() bool {
	return c.Mode == ModeTest
}

type RedisConfig struct {
	Addr string
	TTL  time.Duration
}

type Config struct {
	DB    DBConfig
	Redis RedisConfig
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("DB_HOST", "127.0.0.1")
	v.SetDefault("DB_PORT", "27017")
	v.SetDefault("MONGO_URI", "")
	v.SetDefault("DB_DATABASE", "")
	v.SetDefault("MODE", "")
	v.SetDefault("DB_TIMEOUT", 10*time.Second)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("CACHE_TTL", time.Hour)

	return &Config{
		DB: DBConfig{
			URI:     v.GetString("MONGO_URI"),
			Host:    v.GetString("DB_HOST"),
			Port:    v.GetString("DB_PORT"),
			DBName:  v.GetString("DB_DATABASE"),
			Mode:    ParseMode(v.GetString("MODE")),
			Timeout: v.GetDuration("DB_TIMEOUT"),
		},
		Redis: RedisConfig{
			Addr: v.GetString("REDIS_ADDR"),
			TTL:  v.GetDuration("CACHE_TTL"),
		},
	}, nil
}
