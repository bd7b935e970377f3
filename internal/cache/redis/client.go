package redis

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/gatherhub/event-catalog-service/internal/config"
)

// Client wraps the redis connection used by the ticket-total cache.
type Client struct {
	*redis.Client
	log *zap.Logger
}

// NewClient creates a new redis client and verifies the connection.
func NewClient(ctx context.Context, cfg *config.Redis, log *zap.Logger) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	log.Info("Redis connection established", zap.String("addr", cfg.Addr))

	return &Client{Client: client, log: log}, nil
}
