// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Environment names accepted in ENV.
const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// Data source kinds accepted in DATA_SOURCE.
const (
	SourceCSV = "csv"
	SourceDB  = "db"
)

// Config is the full service configuration.
type Config struct {
	Env   string      `yaml:"env" env:"ENV" env-default:"local"`
	HTTP  HTTPConfig  `yaml:"http"`
	Data  DataConfig  `yaml:"data"`
	DB    DBConfig    `yaml:"db"`
	Redis RedisConfig `yaml:"redis"`
}

// HTTPConfig configures the HTTP server.
type HTTPConfig struct {
	Addr string `yaml:"addr" env:"HTTP_ADDR" env-default:":8080"`
	// RateLimit caps analytics requests per minute; 0 disables the limit.
	RateLimit int `yaml:"rate_limit" env:"HTTP_RATE_LIMIT" env-default:"0"`
}

// DataConfig selects and shapes the price history.
type DataConfig struct {
	Source     string   `yaml:"source" env:"DATA_SOURCE" env-default:"csv"`
	File       string   `yaml:"file" env:"DATA_FILE" env-default:"data/dis.us.txt"`
	Symbol     string   `yaml:"symbol" env:"SYMBOL" env-default:"DIS"`
	Boundaries []string `yaml:"partition_boundaries" env:"PARTITION_BOUNDARIES" env-separator:","`
}

// DBConfig configures the price store.
type DBConfig struct {
	Driver  string `yaml:"driver" env:"DB_DRIVER" env-default:"sqlite"`
	DSN     string `yaml:"dsn" env:"DB_DSN" env-default:"prices.db"`
	Migrate bool   `yaml:"migrate" env:"RUN_MIGRATIONS" env-default:"true"`
}

// RedisConfig configures the analytics cache. An empty Host disables caching.
type RedisConfig struct {
	Host      string        `yaml:"host" env:"REDIS_HOST"`
	Port      string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password  string        `yaml:"password" env:"REDIS_PASSWORD"`
	TTL       time.Duration `yaml:"ttl" env:"CACHE_TTL" env-default:"24h"`
	Namespace string        `yaml:"namespace" env:"CACHE_NAMESPACE" env-default:"analytics"`
}

// Addr returns host:port of the Redis server.
func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

// Load reads the YAML file named by CONFIG_PATH, if set, and then the environment.
func Load() (*Config, error) {
	var cfg Config

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Data.Source {
	case SourceCSV, SourceDB:
	default:
		return fmt.Errorf("DATA_SOURCE must be %q or %q, got %q", SourceCSV, SourceDB, c.Data.Source)
	}
	if c.HTTP.RateLimit < 0 {
		return fmt.Errorf("HTTP_RATE_LIMIT must not be negative, got %d", c.HTTP.RateLimit)
	}
	if _, err := c.Data.PartitionBoundaries(); err != nil {
		return err
	}
	return nil
}

// PartitionBoundaries parses the configured boundary dates.
// It returns nil when no boundaries are configured.
func (d DataConfig) PartitionBoundaries() ([]time.Time, error) {
	var out []time.Time
	for _, s := range d.Boundaries {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return nil, fmt.Errorf("PARTITION_BOUNDARIES: %w", err)
		}
		out = append(out, t)
	}
	if len(out) != 0 && len(out) != 2 {
		return nil, fmt.Errorf("PARTITION_BOUNDARIES: want 2 dates, got %d", len(out))
	}
	return out, nil
}
