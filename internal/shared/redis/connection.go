package redis

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/redis/go-redis/v9"

	"accounts-server/internal/shared/config"
)

const (
	dialTimeout  = 5 * time.Second
	ioTimeout    = 3 * time.Second
	poolSize     = 10
	minIdleConns = 2
)

// Client is the shared Redis connection pool.
type Client struct {
	*redis.Client
}

// Options resolves REDIS_URL when present, otherwise host, port, password and DB.
// Pool and timeout settings are applied either way.
func Options(cfg config.RedisConfig) (*redis.Options, error) {
	opts := &redis.Options{
		Addr:     net.JoinHostPort(cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		opts = parsed
	}

	opts.DialTimeout = dialTimeout
	opts.ReadTimeout = ioTimeout
	opts.WriteTimeout = ioTimeout
	opts.PoolSize = poolSize
	opts.MinIdleConns = minIdleConns
	return opts, nil
}

// Connect opens a pool and fails unless Redis answers a ping.
func Connect(cfg config.RedisConfig) (*Client, error) {
	opts, err := Options(cfg)
	if err != nil {
		return nil, err
	}
	logger := slog.With("component", "redis", "operation", "connect", "addr", opts.Addr, "db", opts.DB)

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Redis is unreachable", "error", err)
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis at %s: %w", opts.Addr, err)
	}

	logger.Info("Redis connection established")
	return &Client{client}, nil
}

// Close is safe on a nil Client.
func (c *Client) Close() error {
	if c == nil || c.Client == nil {
		return nil
	}
	return c.Client.Close()
}
