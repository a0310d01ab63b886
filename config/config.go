package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	HTTP            HTTPConfig     `yaml:"http"`
	Database        DatabaseConfig `yaml:"database"`
	Cache           CacheConfig    `yaml:"cache"`
	ShutdownTimeout time.Duration  `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"30s"`
}

type HTTPConfig struct {
	Port               int    `yaml:"port" env:"HTTP_PORT" env-default:"3000"`
	CORSAllowedOrigins string `yaml:"cors_allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver" env:"DB_DRIVER" env-default:"sqlite"`
	Path   string `yaml:"path" env:"DB_PATH" env-default:"tasks.db"`
	DSN    string `yaml:"dsn" env:"DB_DSN"`
	Debug  bool   `yaml:"debug" env:"DB_DEBUG" env-default:"false"`
}

type CacheConfig struct {
	Enabled       bool          `yaml:"enabled" env:"CACHE_ENABLED" env-default:"false"`
	RedisAddr     string        `yaml:"redis_addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string        `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int           `yaml:"redis_db" env:"REDIS_DB" env-default:"0"`
	Prefix        string        `yaml:"prefix" env:"CACHE_PREFIX" env-default:"task:"`
	TTL           time.Duration `yaml:"ttl" env:"CACHE_TTL" env-default:"5m"`
}

// Load reads configuration from an optional .env file, an optional YAML file
// named by CONFIG_PATH, and the environment. Environment variables win.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("config not read from %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("config not read from environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values cleanenv cannot express in tags.
func (c Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("invalid HTTP_PORT %d", c.HTTP.Port)
	}

	switch strings.ToLower(c.Database.Driver) {
	case DriverSQLite:
		if c.Database.Path == "" {
			return errors.New("DB_PATH is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.Database.DSN == "" {
			return errors.New("DB_DSN is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}

	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("invalid CACHE_TTL %s", c.Cache.TTL)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("invalid SHUTDOWN_TIMEOUT %s", c.ShutdownTimeout)
	}
	return nil
}

// Description is a single-line summary suitable for start-up logs.
func (c Config) Description() string {
	db := c.Database.Path
	if strings.ToLower(c.Database.Driver) == DriverPostgres {
		db = "postgres"
	}
	cache := "disabled"
	if c.Cache.Enabled {
		cache = c.Cache.RedisAddr
	}
	return fmt.Sprintf("port=%d db=%s cache=%s", c.HTTP.Port, db, cache)
}
