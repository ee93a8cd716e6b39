package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"interview-agent/internal/config"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 3 * time.Second

// NewRedisClient creates a Redis client and pings the server to ensure connectivity.
// The address may be host:port or a redis:// URL.
func NewRedisClient(ctx context.Context, redisCfg config.RedisConfig) (*redis.Client, error) {
	if redisCfg.Address == "" {
		return nil, fmt.Errorf("redis configuration is missing or address is empty")
	}

	opt, err := redisOptions(redisCfg)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", opt.Addr, err)
	}

	return client, nil
}

func redisOptions(redisCfg config.RedisConfig) (*redis.Options, error) {
	if strings.HasPrefix(redisCfg.Address, "redis://") || strings.HasPrefix(redisCfg.Address, "rediss://") {
		opt, err := redis.ParseURL(redisCfg.Address)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opt, nil
	}
	return &redis.Options{
		Addr:     redisCfg.Address,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	}, nil
}
