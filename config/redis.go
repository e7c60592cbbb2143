package config

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client

// ConnectRedis initializes the shared redis client. Redis backs the rate
// limiter and the short-lived slot holds taken during reservation creation;
// when REDIS_ADDR is unset both features degrade gracefully.
func ConnectRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("REDIS_ADDR not set, rate limiting and slot holds disabled")
		return
	}

	db := 0
	if env := os.Getenv("REDIS_DB"); env != "" {
		if n, err := strconv.Atoi(env); err == nil {
			db = n
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unreachable at %s: %v", addr, err)
	}

	Redis = client
}
