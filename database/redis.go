package database

import (
	"context"
	"log"
	"time"

	"api/config"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client

// InitRedis connects the Redis client used for caching the aggregated
// live contest list. The API works without Redis but every aggregation
// request then hits the upstream platforms.
func InitRedis() {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := RDB.Ping(ctx).Result(); err != nil {
		log.Println("Redis unavailable, contest list caching disabled: ", err)
		RDB = nil
		return
	}

	log.Println("Redis connection established")
}
