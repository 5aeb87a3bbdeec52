package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/labstack/echo"
	"go.uber.org/zap"

	"github.com/mayur-samrutwar/orion/api"
	"github.com/mayur-samrutwar/orion/cfg"
	"github.com/mayur-samrutwar/orion/metrics"
	"github.com/mayur-samrutwar/orion/server"
)

func main() {
	// .env is optional, the environment wins when both are set
	_ = godotenv.Load()

	serviceCfg, err := cfg.New()
	if err != nil {
		panic(err.Error())
	}

	if err := setupSentry(serviceCfg); err != nil {
		panic(err)
	}
	defer sentry.Flush(2 * time.Second)

	logger, err := newLogger(serviceCfg)
	if err != nil {
		panic("cannot init logger")
	}
	logger.Info("Start API server...")

	defer func() {
		if err := recover(); err != nil {
			logger.Error("cannot recover", zap.Any("panic", err))
		}
		if err := logger.Sync(); err != nil {
			logger.Error("cannot sync log")
		}
	}()

	m := metrics.New()
	srvConfig := server.FromEnv(serviceCfg)
	srvConfig.Metrics = m
	srvConfig.Logger = logger
	srv, err := server.New(srvConfig)
	if err != nil {
		logger.Panic("cannot create server instance", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srv.Run(ctx)

	e := api.New(srv, api.Config{
		HttpRequestSecret: serviceCfg.HttpRequestSecret,
		MetricsHandler:    echo.WrapHandler(m.Handler()),
		Logger:            logger,
	})
	go api.Start(e, serviceCfg.Port, logger)

	// Wait for interrupt signal to gracefully shutdown the server with a timeout of 10 seconds.
	// Use a buffered channel to avoid missing signals as recommended for signal.Notify
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logger.Info("Shutting down API server...")
	cancel()
	if err := api.Shutdown(e, 10*time.Second); err != nil {
		logger.Error("cannot shutdown echo server", zap.Error(err))
	}
}

func setupSentry(sCfg cfg.OrionConfig) error {
	if sCfg.SentryDSN == "" {
		return nil
	}
	opts := sentry.ClientOptions{
		Dsn:         sCfg.SentryDSN,
		Environment: sCfg.ServerMode,
		Release:     "orion@" + cfg.ServerVersion,
	}
	if err := sentry.Init(opts); err != nil {
		return err
	}
	return nil
}
