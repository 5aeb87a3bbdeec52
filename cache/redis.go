// Package cache
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/mayur-samrutwar/orion/gate"
	"github.com/mayur-samrutwar/orion/types"
)

const (
	KeyPrices       = "#prices#%s"
	KeyServerStatus = "#server#status"
)

type Redis struct {
	cfg    Config
	client *redis.Client

	logger *zap.Logger
}

var _ gate.Store = (*Redis)(nil)

func (c *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		c.logger.Warn("cannot get key", zap.String("key", key), zap.Error(err))
		return "", false, err
	}
	return value, true, nil
}

func (c *Redis) Set(ctx context.Context, key, value string) error {
	return c.client.Set(ctx, key, value, 0).Err()
}

func (c *Redis) UpdatePrices(ctx context.Context, feed string, prices *types.MetalPrices) error {
	data, err := json.Marshal(prices)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, fmt.Sprintf(KeyPrices, feed), data, c.cfg.DefaultExpiredTime).Err()
}

// Prices returns the last snapshot of feed, types.ErrRecordNotFound when none is cached.
func (c *Redis) Prices(ctx context.Context, feed string) (*types.MetalPrices, error) {
	result, err := c.client.Get(ctx, fmt.Sprintf(KeyPrices, feed)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, types.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	var prices *types.MetalPrices
	if err := json.Unmarshal([]byte(result), &prices); err != nil {
		return nil, err
	}
	return prices, nil
}

func (c *Redis) UpdateServerStatus(ctx context.Context, serverStatus *types.ServerStatus) error {
	data, err := json.Marshal(serverStatus)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, KeyServerStatus, data, 0).Err(); err != nil {
		return err
	}
	return nil
}

func (c *Redis) ServerStatus(ctx context.Context) (*types.ServerStatus, error) {
	result, err := c.client.Get(ctx, KeyServerStatus).Result()
	if err != nil {
		return nil, err
	}
	var serverStatus *types.ServerStatus
	if err := json.Unmarshal([]byte(result), &serverStatus); err != nil {
		return nil, err
	}
	return serverStatus, nil
}
