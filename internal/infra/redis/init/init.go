package infra_redis_init

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-redis/redis"
	"github.com/humanbelnik/oscarparty/internal/config"
)

var exit = os.Exit

func addr(cfg config.RedisCache) string {
	return fmt.Sprintf("%s:%s", cfg.Host, cfg.Port)
}

func NewClient(cfg config.RedisCache) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr(cfg),
		Password: cfg.Password,
		DB:       0,
	})
}

// EstablishConn returns a client only once the server answers a ping.
func EstablishConn(cfg config.RedisCache) (*redis.Client, error) {
	client := NewClient(cfg)
	if err := client.Ping().Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr(cfg), err)
	}
	return client, nil
}

func MustEstablishConn(cfg config.RedisCache) *redis.Client {
	client, err := EstablishConn(cfg)
	if err != nil {
		slog.Error("redis ping failed", slog.String("addr", addr(cfg)), slog.String("error", err.Error()))
		exit(1)
	}
	return client
}
