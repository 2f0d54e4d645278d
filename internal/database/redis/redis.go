package redis

import (
	"context"
	"fmt"
	"time"

	"quote-service/internal/config"

	"github.com/redis/go-redis/v9"
)

// Client wraps the go-redis client used for the catalog cache.
type Client struct {
	client *redis.Client
}

func NewRedisClient(cfg config.RedisConfig) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Client{client: client}, nil
}

// NewFromClient wraps an existing go-redis client, mainly for tests.
func NewFromClient(client *redis.Client) *Client {
	return &Client{client: client}
}

func (c *Client) GetClient() *redis.Client {
	return c.client
}

func (c *Client) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.client.Close()
}
