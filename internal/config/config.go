// Package config reads the service configuration from the environment.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/stacksolutions/estimator/internal/repository"
)

type Config struct {
	Server   serverConfig
	Rates    ratesConfig
	Database dbConfig
	Cache    cacheConfig
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`
}

type serverConfig struct {
	Address            string `envconfig:"ESTIMATOR_ADDRESS" default:":8080"`
	MetricsAddress     string `envconfig:"ESTIMATOR_METRICS_ADDRESS" default:":9090"`
	FrontendURL        string `envconfig:"ESTIMATOR_FRONTEND_URL" default:"http://localhost:3000"`
	// RateLimitPerMinute applies per client to submissions only.
	RateLimitPerMinute int `envconfig:"ESTIMATOR_RATE_LIMIT_PER_MINUTE" default:"60"`
	TrustedProxies     int `envconfig:"ESTIMATOR_TRUSTED_PROXIES" default:"1"`
}

type ratesConfig struct {
	// File is a YAML rate table. Empty means the built-in table.
	File  string `envconfig:"ESTIMATOR_RATES_FILE" default:""`
	Watch bool   `envconfig:"ESTIMATOR_WATCH_RATES" default:"false"`
}

type dbConfig struct {
	// URL empty keeps estimate history and bookings in memory.
	URL            string        `envconfig:"DATABASE_URL" default:""`
	MaxConns       int32         `envconfig:"DATABASE_MAX_CONNS" default:"10"`
	ConnectTimeout time.Duration `envconfig:"DATABASE_CONNECT_TIMEOUT" default:"5s"`
}

// Pool returns the connection settings for repository.NewPool.
func (d dbConfig) Pool() repository.PoolConfig {
	return repository.PoolConfig{URL: d.URL, MaxConns: d.MaxConns, ConnectTimeout: d.ConnectTimeout}
}

type cacheConfig struct {
	// RedisAddr empty uses an in-process cache.
	RedisAddr string        `envconfig:"REDIS_ADDR" default:""`
	TTL       time.Duration `envconfig:"ESTIMATOR_CACHE_TTL" default:"24h"`
	// The in-process cache only: entry cap and expired-entry sweep period.
	MaxEntries    int           `envconfig:"ESTIMATOR_CACHE_MAX_ENTRIES" default:"10000"`
	SweepInterval time.Duration `envconfig:"ESTIMATOR_CACHE_SWEEP_INTERVAL" default:"10m"`
}

// New reads the configuration from the process environment.
func New() (*Config, error) {
	cfg := new(Config)
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
