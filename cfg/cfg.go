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

// Package cfg
package cfg

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	ModeDev        = "dev"
	ModeProduction = "prod"

	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreMongo  = "mgo"

	ServerVersion = "1.0.0"
)

type OrionConfig struct {
	ServerMode        string
	Port              string
	HttpRequestSecret string

	LogLevel  string
	SentryDSN string

	DefaultAPITimeout time.Duration

	AptosEndpoint   string
	AptosTimeout    time.Duration
	AptosMaxRetries int

	Deployment   string
	OrionAddress string

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
}

func New() (OrionConfig, error) {
	apiDefaultTimeoutStr := os.Getenv("DEFAULT_API_TIMEOUT")
	apiDefaultTimeout, err := strconv.Atoi(apiDefaultTimeoutStr)
	if err != nil {
		apiDefaultTimeout = 5
	}

	aptosTimeoutStr := os.Getenv("APTOS_TIMEOUT")
	aptosTimeout, err := time.ParseDuration(aptosTimeoutStr)
	if err != nil {
		aptosTimeout = 10 * time.Second
	}

	aptosMaxRetriesStr := os.Getenv("APTOS_MAX_RETRIES")
	aptosMaxRetries, err := strconv.Atoi(aptosMaxRetriesStr)
	if err != nil {
		aptosMaxRetries = 2
	}

	kycStore := strings.ToLower(os.Getenv("KYC_STORE"))
	switch kycStore {
	case "":
		kycStore = StoreMemory
	case StoreMemory, StoreRedis, StoreMongo:
	default:
		return OrionConfig{}, fmt.Errorf("invalid KYC_STORE %q", kycStore)
	}

	cacheDB := 0
	if cacheDBStr := os.Getenv("CACHE_DB"); cacheDBStr != "" {
		cacheDB, err = strconv.Atoi(cacheDBStr)
		if err != nil {
			return OrionConfig{}, err
		}
	}

	cacheIsFlushStr := os.Getenv("CACHE_IS_FLUSH")
	cacheIsFlush, err := strconv.ParseBool(cacheIsFlushStr)
	if err != nil {
		cacheIsFlush = false
	}

	cacheExpiredTimeStr := os.Getenv("CACHE_EXPIRED_TIME")
	cacheExpiredTime, err := time.ParseDuration(cacheExpiredTimeStr)
	if err != nil {
		cacheExpiredTime = 10 * time.Minute
	}

	storageMinConnStr := os.Getenv("STORAGE_MIN_CONN")
	storageMinConn, err := strconv.Atoi(storageMinConnStr)
	if err != nil {
		storageMinConn = 1
	}

	storageMaxConnStr := os.Getenv("STORAGE_MAX_CONN")
	storageMaxConn, err := strconv.Atoi(storageMaxConnStr)
	if err != nil {
		storageMaxConn = 8
	}

	storageIsFlushStr := os.Getenv("STORAGE_IS_FLUSH")
	storageIsFlush, err := strconv.ParseBool(storageIsFlushStr)
	if err != nil {
		storageIsFlush = false
	}

	inrPerUSDStr := os.Getenv("INR_PER_USD")
	inrPerUSD, err := strconv.ParseFloat(inrPerUSDStr, 64)
	if err != nil || inrPerUSD <= 0 {
		inrPerUSD = 88
	}

	metalPollIntervalStr := os.Getenv("METAL_POLL_INTERVAL")
	metalPollInterval, err := time.ParseDuration(metalPollIntervalStr)
	if err != nil {
		metalPollInterval = 60 * time.Second
	}
	contractPollIntervalStr := os.Getenv("CONTRACT_POLL_INTERVAL")
	contractPollInterval, err := time.ParseDuration(contractPollIntervalStr)
	if err != nil {
		contractPollInterval = 30 * time.Second
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	serverMode := os.Getenv("SERVER_MODE")
	if serverMode == "" {
		serverMode = ModeDev
	}

	cfg := OrionConfig{
		ServerMode:        serverMode,
		Port:              port,
		HttpRequestSecret: os.Getenv("HTTP_REQUEST_SECRET"),
		LogLevel:          os.Getenv("LOG_LEVEL"),
		SentryDSN:         os.Getenv("SENTRY_DSN"),
		DefaultAPITimeout: time.Duration(apiDefaultTimeout) * time.Second,

		AptosEndpoint:   os.Getenv("APTOS_ENDPOINT"),
		AptosTimeout:    aptosTimeout,
		AptosMaxRetries: aptosMaxRetries,

		Deployment:   os.Getenv("ORION_DEPLOYMENT"),
		OrionAddress: os.Getenv("ORION_ADDRESS"),

		KYCStore:      kycStore,
		DeclinePolicy: os.Getenv("KYC_DECLINE_POLICY"),

		CacheURL:         os.Getenv("CACHE_URI"),
		CacheDB:          cacheDB,
		CachePassword:    os.Getenv("CACHE_PASSWORD"),
		CacheIsFlush:     cacheIsFlush,
		CacheExpiredTime: cacheExpiredTime,

		StorageURI:     os.Getenv("STORAGE_URI"),
		StorageDB:      os.Getenv("STORAGE_DB"),
		StorageMinConn: storageMinConn,
		StorageMaxConn: storageMaxConn,
		StorageIsFlush: storageIsFlush,

		AugmontURL:    os.Getenv("AUGMONT_URL"),
		AugmontAPIKey: os.Getenv("AUGMONT_API_KEY"),
		INRPerUSD:     inrPerUSD,

		MetalPollInterval:    metalPollInterval,
		ContractPollInterval: contractPollInterval,
	}

	return cfg, nil
}
