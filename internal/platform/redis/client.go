package redis

import (
	"context"
	"fmt"

	"cbrbot/internal/config"

	goredis "github.com/redis/go-redis/v9"
)

// CreateClientAndPing connects to Redis and verifies the connection.
func CreateClientAndPing(ctx context.Context, cfg config.Redis) (*goredis.Client, error) {
	cli := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Pass,
		DB:       cfg.DB,
	})
	if err := cli.Ping(ctx).Err(); err != nil {
		_ = cli.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr(), err)
	}
	return cli, nil
}
