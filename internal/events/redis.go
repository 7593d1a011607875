package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/mucyuneje/asamfxproduction/internal/config"
)

// Redis publishes events as JSON on a pub/sub channel.
type Redis struct {
	rdb     *goredis.Client
	channel string
}

// NewRedis connects and pings the server before returning.
func NewRedis(ctx context.Context, conf *config.RedisConfig) (*Redis, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        conf.Addr,
		Password:    conf.Password,
		DB:          conf.DB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return NewRedisWithClient(rdb, conf.Channel), nil
}

func NewRedisWithClient(rdb *goredis.Client, channel string) *Redis {
	if channel == "" {
		channel = "payments"
	}

	return &Redis{
		rdb:     rdb,
		channel: channel,
	}
}

func (r *Redis) Publish(ctx context.Context, event Event) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	raw, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("json.Marshal -> %w", err)
	}

	return r.rdb.Publish(ctx, r.channel, raw).Err()
}

func (r *Redis) Close() error {
	return r.rdb.Close()
}
