package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Service holds process-level settings shared by both binaries.
type Service struct {
	Environment string `envconfig:"SERVICE_ENVIRONMENT" required:"true"`
	APIPort     string `envconfig:"SERVICE_API_PORT" default:"8080"`
	Host        string `envconfig:"SERVICE_HOST" default:"localhost:8080"`
}

// Postgres configures the connection to the system of record.
type Postgres struct {
	URL      string `envconfig:"POSTGRES_URL" required:"true"`
	MaxConns int    `envconfig:"POSTGRES_MAX_CONNS" default:"5"`
	MinConns int    `envconfig:"POSTGRES_MIN_CONNS" default:"1"`
}

// Redis configures the ticket-total cache. The cache is optional: with an
// empty Addr the service runs without it.
type Redis struct {
	Addr               string `envconfig:"REDIS_ADDR"`
	Password           string `envconfig:"REDIS_PASSWORD" default:""`
	DB                 int    `envconfig:"REDIS_DB" default:"0"`
	TicketCacheTTLSec  int    `envconfig:"REDIS_TICKET_CACHE_TTL_SEC" default:"30"`
	TicketCacheEnabled bool   `envconfig:"REDIS_TICKET_CACHE_ENABLED" default:"true"`
}

// Feed configures the change-event subscription.
type Feed struct {
	Channel         string `envconfig:"FEED_CHANNEL" default:"catalog_changes"`
	BufferSize      int    `envconfig:"FEED_BUFFER_SIZE" default:"100"`
	RetryDelaySec   int    `envconfig:"FEED_RETRY_DELAY_SEC" default:"1"`
	HealthCheckPort string `envconfig:"MIRROR_HEALTH_CHECK_PORT" default:"8081"`
}

type Config struct {
	Service  Service
	Postgres Postgres
	Redis    Redis
	Feed     Feed
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
