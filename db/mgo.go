/*
 *  Copyright 2018 KardiaChain
 *  This file is part of the go-kardia library.
 *
 *  The go-kardia library is free software: you can redistribute it and/or modify
 *  it under the terms of the GNU Lesser General Public License as published by
 *  the Free Software Foundation, either version 3 of the License, or
 *  (at your option) any later version.
 *
 *  The go-kardia library is distributed in the hope that it will be useful,
 *  but WITHOUT ANY WARRANTY; without even the implied warranty of
 *  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
 *  GNU Lesser General Public License for more details.
 *
 *  You should have received a copy of the GNU Lesser General Public License
 *  along with the go-kardia library. If not, see <http://www.gnu.org/licenses/>.
 */
// Package db
package db

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/mayur-samrutwar/orion/gate"
	"github.com/mayur-samrutwar/orion/types"
)

const (
	cResidencyRecords = "ResidencyRecords"
)

type mongoDB struct {
	logger  *zap.Logger
	wrapper *KaiMgo
	client  *mongo.Client
}

var _ gate.Store = (*mongoDB)(nil)

func newMongoDB(cfg Config) (*mongoDB, error) {
	ctx := context.Background()
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	dbClient := &mongoDB{
		logger:  logger.With(zap.String("db", "mongo")),
		wrapper: &KaiMgo{},
	}
	mgoOptions := options.Client()
	mgoOptions.ApplyURI(cfg.URL)
	if cfg.MinConn > 0 {
		mgoOptions.SetMinPoolSize(uint64(cfg.MinConn))
	}
	if cfg.MaxConn > 0 {
		mgoOptions.SetMaxPoolSize(uint64(cfg.MaxConn))
	}
	mgoClient, err := mongo.NewClient(mgoOptions)
	if err != nil {
		return nil, err
	}

	if err := mgoClient.Connect(ctx); err != nil {
		return nil, err
	}
	dbClient.client = mgoClient
	dbClient.wrapper.Database(mgoClient.Database(cfg.DbName))
	if err := dbClient.ping(ctx); err != nil {
		return nil, err
	}

	if cfg.FlushDB {
		dbClient.logger.Info("Start flush database")
		if err := dbClient.dropDatabase(ctx); err != nil {
			return nil, err
		}
	}
	if err := createIndexes(ctx, dbClient); err != nil {
		dbClient.logger.Warn("cannot create indexes", zap.Error(err))
	}

	return dbClient, nil
}

func createIndexes(ctx context.Context, dbClient *mongoDB) error {
	type CIndex struct {
		c     string
		model []mongo.IndexModel
	}

	indexes := []CIndex{
		// one record per gate key
		{c: cResidencyRecords, model: []mongo.IndexModel{{Keys: bson.M{"key": 1}, Options: options.Index().SetUnique(true)}}},
		{c: cResidencyRecords, model: []mongo.IndexModel{{Keys: bson.M{"updatedAt": -1}, Options: options.Index().SetSparse(true)}}},
	}
	for _, cIdx := range indexes {
		if err := dbClient.wrapper.C(cIdx.c).EnsureIndex(ctx, cIdx.model); err != nil {
			return err
		}
	}
	return nil
}

//region General

func (m *mongoDB) ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

func (m *mongoDB) dropDatabase(ctx context.Context) error {
	return m.wrapper.DropDatabase(ctx)
}

//endregion General

//region Residency

func (m *mongoDB) Get(ctx context.Context, key string) (string, bool, error) {
	record, err := m.Record(ctx, key)
	if errors.Is(err, types.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return record.Value, true, nil
}

// Set overwrites the record of key, last writer wins.
func (m *mongoDB) Set(ctx context.Context, key, value string) error {
	record := &types.ResidencyRecord{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UnixNano() / int64(time.Millisecond),
	}
	if _, err := m.wrapper.C(cResidencyRecords).Upsert(ctx, bson.M{"key": key}, record); err != nil {
		m.logger.Warn("cannot upsert residency record", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}

func (m *mongoDB) Record(ctx context.Context, key string) (*types.ResidencyRecord, error) {
	var record *types.ResidencyRecord
	err := m.wrapper.C(cResidencyRecords).FindOne(ctx, bson.M{"key": key}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, types.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Records lists decisions, most recent first.
func (m *mongoDB) Records(ctx context.Context, skip, limit int64) ([]*types.ResidencyRecord, error) {
	opts := []*options.FindOptions{
		m.wrapper.FindSetSort("-updatedAt"),
		options.Find().SetSkip(skip),
		options.Find().SetLimit(limit),
	}
	cursor, err := m.wrapper.C(cResidencyRecords).Find(ctx, bson.M{}, opts...)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()
	var records []*types.ResidencyRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (m *mongoDB) CountRecords(ctx context.Context) (int64, error) {
	return m.wrapper.C(cResidencyRecords).Count(ctx, bson.M{})
}

//endregion Residency
