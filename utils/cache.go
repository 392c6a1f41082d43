package utils

import (
	"context"
	"fmt"
	"time"

	"safarexpress/config"

	"github.com/go-redis/redis/v8"
)

// CacheClient is the shared Redis client. It stays nil when REDIS_ADDR is
// not configured.
var CacheClient *redis.Client

// InitCache connects to Redis when an address is configured.
func InitCache(ctx context.Context) (*redis.Client, error) {
	if config.AppConfig.RedisAddr == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	CacheClient = client
	return client, nil
}

// GetCacheClient returns the shared client, or nil when Redis is disabled.
func GetCacheClient() *redis.Client {
	return CacheClient
}
