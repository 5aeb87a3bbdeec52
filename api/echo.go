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

package api

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
	"go.uber.org/zap"
)

const (
	HeaderWalletAddress = "X-Wallet-Address"
	HeaderAuthorization = "Authorization"
)

// EchoServer define all API expose
type EchoServer interface {
	// General
	Ping(c echo.Context) error
	ServerStatus(c echo.Context) error

	// Prices
	Prices(c echo.Context) error
	ContractPrices(c echo.Context) error
	Quote(c echo.Context) error

	// Residency
	Residency(c echo.Context) error
	ResidencyFlow(c echo.Context) error

	// Chain reads
	Coin(c echo.Context) error
	Balances(c echo.Context) error
	Balance(c echo.Context) error
	Pool(c echo.Context) error
	Oracle(c echo.Context) error
	ProofOfReserve(c echo.Context) error

	// Payloads, residency required
	BuyPayload(c echo.Context) error
	SellPayload(c echo.Context) error
	MintPayload(c echo.Context) error
	LiquidityPayload(c echo.Context) error
	RegisterPayloads(c echo.Context) error

	IPrivate

	CanAccess(ctx context.Context, address string) bool
}

type IPrivate interface {
	SetOraclePricesPayload(c echo.Context) error
	BackUSDCPayload(c echo.Context) error
	InitUSDCPayload(c echo.Context) error
	MintUSDCPayload(c echo.Context) error
	ResidencyRecords(c echo.Context) error
}

type restDefinition struct {
	method      string
	path        string
	fn          func(c echo.Context) error
	middlewares []echo.MiddlewareFunc
}

type Config struct {
	HttpRequestSecret string
	// MetricsHandler is served at /metrics when set.
	MetricsHandler echo.HandlerFunc

	Logger *zap.Logger
}

func bind(gr *echo.Group, srv EchoServer) {
	residency := RequireResidency(srv)
	apis := []restDefinition{
		{
			method:      echo.GET,
			path:        "/ping",
			fn:          srv.Ping,
			middlewares: nil,
		},
		{
			method: echo.GET,
			path:   "/status",
			fn:     srv.ServerStatus,
		},
		// Prices
		{
			method: echo.GET,
			path:   "/prices",
			fn:     srv.Prices,
		},
		{
			method: echo.GET,
			path:   "/prices/contract",
			fn:     srv.ContractPrices,
		},
		{
			method: echo.GET,
			path:   "/quote",
			fn:     srv.Quote,
		},
		// Residency
		{
			method: echo.GET,
			path:   "/kyc/:address",
			fn:     srv.Residency,
		},
		{
			method: echo.POST,
			path:   "/kyc/:address/flow/:action",
			fn:     srv.ResidencyFlow,
		},
		// Chain reads
		{
			method: echo.GET,
			path:   "/coins/:symbol",
			fn:     srv.Coin,
		},
		{
			method: echo.GET,
			path:   "/balances/:owner",
			fn:     srv.Balances,
		},
		{
			method: echo.GET,
			path:   "/balances/:owner/:symbol",
			fn:     srv.Balance,
		},
		{
			method: echo.GET,
			path:   "/pools/:token",
			fn:     srv.Pool,
		},
		{
			method: echo.GET,
			path:   "/oracle",
			fn:     srv.Oracle,
		},
		{
			method: echo.GET,
			path:   "/proof-of-reserve",
			fn:     srv.ProofOfReserve,
		},
		// Payloads
		{
			method:      echo.POST,
			path:        "/payloads/buy",
			fn:          srv.BuyPayload,
			middlewares: []echo.MiddlewareFunc{residency},
		},
		{
			method:      echo.POST,
			path:        "/payloads/sell",
			fn:          srv.SellPayload,
			middlewares: []echo.MiddlewareFunc{residency},
		},
		{
			method:      echo.POST,
			path:        "/payloads/mint",
			fn:          srv.MintPayload,
			middlewares: []echo.MiddlewareFunc{residency},
		},
		{
			method:      echo.POST,
			path:        "/payloads/liquidity",
			fn:          srv.LiquidityPayload,
			middlewares: []echo.MiddlewareFunc{residency},
		},
		{
			method:      echo.GET,
			path:        "/payloads/register/:token",
			fn:          srv.RegisterPayloads,
			middlewares: []echo.MiddlewareFunc{residency},
		},
	}
	for _, api := range apis {
		gr.Add(api.method, api.path, api.fn, api.middlewares...)
	}
}

func bindPrivateAPIs(gr *echo.Group, srv IPrivate) {
	apis := []restDefinition{
		{
			method: echo.POST,
			path:   "/oracle-prices",
			fn:     srv.SetOraclePricesPayload,
		},
		{
			method: echo.POST,
			path:   "/back-usdc",
			fn:     srv.BackUSDCPayload,
		},
		{
			method: echo.POST,
			path:   "/init-usdc",
			fn:     srv.InitUSDCPayload,
		},
		{
			method: echo.POST,
			path:   "/mint-usdc",
			fn:     srv.MintUSDCPayload,
		},
		{
			method: echo.GET,
			path:   "/kyc/records",
			fn:     srv.ResidencyRecords,
		},
	}
	for _, api := range apis {
		gr.Add(api.method, api.path, api.fn, api.middlewares...)
	}
}

// New builds the echo instance with every route registered under /api/v1.
func New(srv EchoServer, cfg Config) *echo.Echo {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string {
			return uuid.New().String()
		},
	}))
	e.Use(middleware.CORS())
	e.Use(middleware.Logger())
	e.Use(middleware.Gzip())

	if cfg.MetricsHandler != nil {
		e.GET("/metrics", cfg.MetricsHandler)
	}

	v1Gr := e.Group("/api/v1")
	bind(v1Gr, srv)
	adminGr := v1Gr.Group("/admin", RequireSecret(cfg.HttpRequestSecret))
	bindPrivateAPIs(adminGr, srv)
	if cfg.HttpRequestSecret == "" {
		logger.Warn("HTTP_REQUEST_SECRET is empty, admin API rejects every request")
	}
	logger.Info("API routes registered", zap.Int("routes", len(e.Routes())))
	return e
}

// Start serves e on port until the server is shut down.
func Start(e *echo.Echo, port string, logger *zap.Logger) {
	logger.Info("API server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		logger.Info("echo server stopped", zap.Error(err))
	}
}

// Shutdown stops e, waiting at most timeout for in-flight requests.
func Shutdown(e *echo.Echo, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return e.Shutdown(ctx)
}
