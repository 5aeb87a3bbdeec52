// Package db
package db

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/mayur-samrutwar/orion/types"
)

type Adapter string

const (
	MGO Adapter = "mgo"
)

type Config struct {
	DbAdapter Adapter
	DbName    string
	URL       string
	MinConn   int
	MaxConn   int
	FlushDB   bool

	Logger *zap.Logger
}

type Client interface {
	ping(ctx context.Context) error
	dropDatabase(ctx context.Context) error

	// Get and Set persist residency flags under the gate's keys.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error

	Record(ctx context.Context, key string) (*types.ResidencyRecord, error)
	Records(ctx context.Context, skip, limit int64) ([]*types.ResidencyRecord, error)
	CountRecords(ctx context.Context) (int64, error)
}

func NewClient(cfg Config) (Client, error) {
	switch cfg.DbAdapter {
	case MGO:
		return newMongoDB(cfg)
	default:
		return nil, errors.New("invalid db config")
	}
}
