package config

import (
	"context"
	"os"

	"github.com/redis/go-redis/v9"
)

// RedisClient backs the second tier of the catalog snapshot cache. It stays
// nil unless REDIS_ADDR is set; callers nil-check before touching it.
var RedisClient *redis.Client

func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		RedisClient = nil
		return
	}
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASS"),
		DB:       0,
	})
}

func RedisCtx() context.Context {
	return context.Background()
}
