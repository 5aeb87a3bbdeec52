// Package db
package db

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"go.uber.org/zap"
	"gotest.tools/assert"

	"github.com/mayur-samrutwar/orion/gate"
	"github.com/mayur-samrutwar/orion/types"
)

// setupMGO starts a throwaway mongo container, skipping when docker is unavailable.
func setupMGO(t *testing.T) *mongoDB {
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker unavailable: %s", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker unavailable: %s", err)
	}
	res, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mongo",
		Tag:        "4.4",
	}, func(config *docker.HostConfig) {
		// set AutoRemove to true so that stopped container goes away by itself
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Skipf("cannot start mongo: %s", err)
	}
	t.Cleanup(func() {
		_ = pool.Purge(res)
	})
	_ = res.Expire(120)

	lgr, err := zap.NewDevelopment()
	assert.NilError(t, err)

	var mgo *mongoDB
	err = pool.Retry(func() error {
		var err error
		mgo, err = newMongoDB(Config{
			DbAdapter: MGO,
			URL:       fmt.Sprintf("mongodb://localhost:%s", res.GetPort("27017/tcp")),
			DbName:    "orion",
			MinConn:   1,
			MaxConn:   4,
			Logger:    lgr,
		})
		return err
	})
	assert.NilError(t, err)
	return mgo
}

func TestMGO_ResidencyRecords(t *testing.T) {
	ctx := context.Background()
	mgo := setupMGO(t)

	_, ok, err := mgo.Get(ctx, "kyc_0xabc")
	assert.NilError(t, err)
	assert.Assert(t, !ok)

	_, err = mgo.Record(ctx, "kyc_0xabc")
	assert.Assert(t, errors.Is(err, types.ErrRecordNotFound))

	assert.NilError(t, mgo.Set(ctx, "kyc_0xabc", "false"))
	assert.NilError(t, mgo.Set(ctx, "kyc_0xabc", "true"))
	value, ok, err := mgo.Get(ctx, "kyc_0xabc")
	assert.NilError(t, err)
	assert.Assert(t, ok)
	assert.Equal(t, value, "true")

	count, err := mgo.wrapper.C(cResidencyRecords).Count(ctx, map[string]string{"key": "kyc_0xabc"})
	assert.NilError(t, err)
	assert.Equal(t, count, int64(1))
}

func TestMGO_Records(t *testing.T) {
	ctx := context.Background()
	mgo := setupMGO(t)

	for _, key := range []string{"kyc_0x1", "kyc_0x2", "kyc_0x3"} {
		assert.NilError(t, mgo.Set(ctx, key, "true"))
	}
	records, err := mgo.Records(ctx, 0, 2)
	assert.NilError(t, err)
	assert.Equal(t, len(records), 2)

	total, err := mgo.CountRecords(ctx)
	assert.NilError(t, err)
	assert.Equal(t, total, int64(3))
}

func TestMGO_BacksGate(t *testing.T) {
	ctx := context.Background()
	g, err := gate.New(gate.Config{Store: setupMGO(t)})
	assert.NilError(t, err)

	assert.NilError(t, g.Decide(ctx, "0xabc", true))
	assert.Assert(t, g.CanAccess(ctx, "0xabc"))
	assert.Equal(t, g.StatusFor(ctx, "0xabc").State, types.StateVerified)
}
