package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client

// ConnectRedis opens the client backing the session store and pings it.
func ConnectRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", addr, err)
	}

	RDB = client
	slog.Info("connected to Redis", "addr", addr)
	return client, nil
}

func CloseRedis() {
	if RDB != nil {
		RDB.Close()
		slog.Info("redis connection closed")
	}
}
