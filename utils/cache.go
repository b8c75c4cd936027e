// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"estately/config"

	"github.com/go-redis/redis/v8"
)

var (
	// SessionCacheClient is the Redis client backing dialogue session storage.
	SessionCacheClient *redis.Client
	// MemoryCacheClient is the Redis client backing saved user memories.
	MemoryCacheClient *redis.Client
)

// InitSessionCache initializes the Redis client for dialogue sessions.
func InitSessionCache() {
	SessionCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := SessionCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Sessions): %v", err)
	}
}

// GetSessionCacheClient returns the Redis client for dialogue sessions.
func GetSessionCacheClient() *redis.Client {
	if SessionCacheClient == nil {
		InitSessionCache()
	}
	return SessionCacheClient
}

// InitMemoryCache initializes the Redis client for saved user memories.
func InitMemoryCache() {
	MemoryCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisMemoryDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := MemoryCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Memories): %v", err)
	}
}

// GetMemoryCacheClient returns the Redis client for saved user memories.
func GetMemoryCacheClient() *redis.Client {
	if MemoryCacheClient == nil {
		InitMemoryCache()
	}
	return MemoryCacheClient
}

// InitRedis initializes all Redis clients at startup.
func InitRedis() {
	InitSessionCache()
	InitMemoryCache()
}
