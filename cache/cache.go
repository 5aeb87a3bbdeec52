// Package cache
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/mayur-samrutwar/orion/types"
)

type Adapter string

const (
	RedisAdapter Adapter = "redis"
)

type Config struct {
	Adapter  Adapter
	URL      string
	DB       int
	Password string

	IsFlush bool

	// DefaultExpiredTime bounds cached price snapshots. Residency flags never expire.
	DefaultExpiredTime time.Duration

	Logger *zap.Logger
}

type Client interface {
	// Get and Set persist residency flags under the gate's keys.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error

	Prices(ctx context.Context, feed string) (*types.MetalPrices, error)
	UpdatePrices(ctx context.Context, feed string, prices *types.MetalPrices) error

	ServerStatus(ctx context.Context) (*types.ServerStatus, error)
	UpdateServerStatus(ctx context.Context, serverStatus *types.ServerStatus) error
}

func New(cfg Config) (Client, error) {
	switch cfg.Adapter {
	case RedisAdapter:
		return newRedis(cfg)
	}
	return nil, errors.New("invalid cache config")
}

func newRedis(cfg Config) (*Redis, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.URL,
		DB:       cfg.DB,
		Password: cfg.Password,
	})

	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}
	if cfg.IsFlush {
		if err := flushSnapshots(context.Background(), redisClient); err != nil {
			return nil, fmt.Errorf("flush: %w", err)
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	client := &Redis{
		client: redisClient,
		logger: logger.With(zap.String("cache", "redis")),
	}
	client.cfg = cfg
	return client, nil
}

// flushSnapshots drops cached prices and server status. Residency flags share the
// database and are never flushed.
func flushSnapshots(ctx context.Context, client *redis.Client) error {
	for _, pattern := range []string{fmt.Sprintf(KeyPrices, "*"), KeyServerStatus} {
		iter := client.Scan(ctx, 0, pattern, 100).Iterator()
		for iter.Next(ctx) {
			if err := client.Del(ctx, iter.Val()).Err(); err != nil {
				return err
			}
		}
		if err := iter.Err(); err != nil {
			return err
		}
	}
	return nil
}
