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

// Package server wires the residency gate, the payload encoder and the chain read
// model behind the REST API.
package server

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mayur-samrutwar/orion/aptos"
	"github.com/mayur-samrutwar/orion/cache"
	"github.com/mayur-samrutwar/orion/cfg"
	"github.com/mayur-samrutwar/orion/db"
	"github.com/mayur-samrutwar/orion/external"
	"github.com/mayur-samrutwar/orion/gate"
	"github.com/mayur-samrutwar/orion/metrics"
	"github.com/mayur-samrutwar/orion/orion"
)

type Config struct {
	Deployment   string
	OrionAddress string

	AptosEndpoint   string
	AptosTimeout    time.Duration
	AptosMaxRetries int

	KYCStore      string
	DeclinePolicy string

	CacheURL         string
	CacheDB          int
	CachePassword    string
	CacheIsFlush     bool
	CacheExpiredTime time.Duration

	StorageURI     string
	StorageDB      string
	StorageMinConn int
	StorageMaxConn int
	StorageIsFlush bool

	AugmontURL    string
	AugmontAPIKey string
	INRPerUSD     float64

	MetalPollInterval    time.Duration
	ContractPollInterval time.Duration
	DefaultAPITimeout    time.Duration

	// Node, Store and MetalFeed replace the configured backends when set.
	Node      orion.ChainReader
	Store     gate.Store
	MetalFeed external.Feed

	Metrics *metrics.Provider
	Logger  *zap.Logger
}

// FromEnv maps the service configuration onto a server Config.
func FromEnv(c cfg.OrionConfig) Config {
	return Config{
		Deployment:           c.Deployment,
		OrionAddress:         c.OrionAddress,
		AptosEndpoint:        c.AptosEndpoint,
		AptosTimeout:         c.AptosTimeout,
		AptosMaxRetries:      c.AptosMaxRetries,
		KYCStore:             c.KYCStore,
		DeclinePolicy:        c.DeclinePolicy,
		CacheURL:             c.CacheURL,
		CacheDB:              c.CacheDB,
		CachePassword:        c.CachePassword,
		CacheIsFlush:         c.CacheIsFlush,
		CacheExpiredTime:     c.CacheExpiredTime,
		StorageURI:           c.StorageURI,
		StorageDB:            c.StorageDB,
		StorageMinConn:       c.StorageMinConn,
		StorageMaxConn:       c.StorageMaxConn,
		StorageIsFlush:       c.StorageIsFlush,
		AugmontURL:           c.AugmontURL,
		AugmontAPIKey:        c.AugmontAPIKey,
		INRPerUSD:            c.INRPerUSD,
		MetalPollInterval:    c.MetalPollInterval,
		ContractPollInterval: c.ContractPollInterval,
		DefaultAPITimeout:    c.DefaultAPITimeout,
	}
}

// Server instance kind of a router, which receive request from client (wallet UI)
// and control how we react those request
type Server struct {
	Logger *zap.Logger

	metrics *metrics.Provider

	infoServer
}

func New(cfg Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("Create new server instance",
		zap.String("deployment", cfg.Deployment),
		zap.String("kycStore", cfg.KYCStore),
		zap.String("aptos", cfg.AptosEndpoint))

	if err := checkStoreFlush(cfg); err != nil {
		return nil, err
	}
	deployment, err := orion.LookupDeployment(cfg.Deployment)
	if err != nil {
		return nil, err
	}
	enc := orion.NewEncoder(deployment.WithAddress(cfg.OrionAddress))

	node := cfg.Node
	if node == nil {
		aptosClient, err := aptos.NewClient(aptos.Config{
			Endpoint:   cfg.AptosEndpoint,
			Timeout:    cfg.AptosTimeout,
			MaxRetries: cfg.AptosMaxRetries,
			Metrics:    cfg.Metrics,
			Logger:     logger,
		})
		if err != nil {
			return nil, fmt.Errorf("cannot create aptos client: %w", err)
		}
		node = aptosClient
	}
	reader := orion.NewReader(enc, node, logger)

	var cacheClient cache.Client
	if cfg.CacheURL != "" {
		cacheClient, err = cache.New(cache.Config{
			Adapter:            cache.RedisAdapter,
			URL:                cfg.CacheURL,
			DB:                 cfg.CacheDB,
			Password:           cfg.CachePassword,
			IsFlush:            cfg.CacheIsFlush,
			DefaultExpiredTime: cfg.CacheExpiredTime,
			Logger:             logger,
		})
		if err != nil {
			return nil, fmt.Errorf("cannot create cache client: %w", err)
		}
	}

	store, err := newStore(cfg, cacheClient, logger)
	if err != nil {
		return nil, err
	}
	g, err := gate.New(gate.Config{
		Store:         store,
		DeclinePolicy: gate.ParseDeclinePolicy(cfg.DeclinePolicy),
		Metrics:       cfg.Metrics,
		Logger:        logger,
	})
	if err != nil {
		return nil, err
	}
	flows := gate.NewFlows(g, func(address string) {
		logger.Info("Residency granted, continue to protected view", zap.String("address", address))
	})

	metalFeed := cfg.MetalFeed
	if metalFeed == nil {
		metalFeed = external.NewMetalFeed(external.MetalFeedConfig{
			URL:       cfg.AugmontURL,
			APIKey:    cfg.AugmontAPIKey,
			INRPerUSD: cfg.INRPerUSD,
			Logger:    logger,
		})
	}
	contractFeed := external.NewContractFeed(reader, logger)

	info := infoServer{
		enc:        enc,
		reader:     reader,
		gate:       g,
		flows:      flows,
		store:      store,
		cache:      cacheClient,
		apiTimeout: cfg.DefaultAPITimeout,
		metrics:    cfg.Metrics,
		logger:     logger,
	}
	if info.apiTimeout <= 0 {
		info.apiTimeout = 5 * time.Second
	}
	srv := &Server{
		Logger:     logger,
		metrics:    cfg.Metrics,
		infoServer: info,
	}
	srv.pollers = map[string]*external.Poller{
		external.FeedMetal: external.NewPoller(external.PollerConfig{
			Feed:     metalFeed,
			Interval: cfg.MetalPollInterval,
			OnUpdate: srv.cachePrices(external.FeedMetal),
			Metrics:  cfg.Metrics,
			Logger:   logger,
		}),
		external.FeedContract: external.NewPoller(external.PollerConfig{
			Feed:     contractFeed,
			Interval: intervalOr(cfg.ContractPollInterval, external.DefaultContractInterval),
			OnUpdate: srv.cachePrices(external.FeedContract),
			Metrics:  cfg.Metrics,
			Logger:   logger,
		}),
	}

	return srv, nil
}

// checkStoreFlush refuses to boot when the flush flag would drop residency flags.
// Redis only flushes snapshots, but the mongo flush drops the whole database.
func checkStoreFlush(c Config) error {
	if c.Store == nil && c.KYCStore == cfg.StoreMongo && c.StorageIsFlush {
		return errors.New("STORAGE_IS_FLUSH would drop the residency records, unset it or use another KYC_STORE")
	}
	return nil
}

func newStore(c Config, cacheClient cache.Client, logger *zap.Logger) (gate.Store, error) {
	if c.Store != nil {
		return c.Store, nil
	}
	switch c.KYCStore {
	case "", cfg.StoreMemory:
		logger.Warn("Residency flags kept in memory, decisions are lost on restart")
		return gate.NewMemoryStore(), nil
	case cfg.StoreRedis:
		if cacheClient == nil {
			return nil, errors.New("redis residency store requires CACHE_URI")
		}
		return cacheClient, nil
	case cfg.StoreMongo:
		dbClient, err := db.NewClient(db.Config{
			DbAdapter: db.MGO,
			DbName:    c.StorageDB,
			URL:       c.StorageURI,
			MinConn:   c.StorageMinConn,
			MaxConn:   c.StorageMaxConn,
			FlushDB:   c.StorageIsFlush,
			Logger:    logger,
		})
		if err != nil {
			return nil, fmt.Errorf("cannot create db client: %w", err)
		}
		return dbClient, nil
	}
	return nil, fmt.Errorf("invalid residency store %q", c.KYCStore)
}

func intervalOr(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}

// Run loads boot data and keeps both price feeds fresh until ctx is done.
func (s *Server) Run(ctx context.Context) {
	if err := s.LoadBootData(ctx); err != nil {
		s.Logger.Warn("cannot load boot data", zap.Error(err))
	}
	var wg sync.WaitGroup
	for _, p := range s.pollers {
		wg.Add(1)
		go func(p *external.Poller) {
			defer wg.Done()
			p.Run(ctx)
		}(p)
	}
	wg.Wait()
}
