// Package main
package main

import (
	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mayur-samrutwar/orion/cfg"
)

func newLogger(sCfg cfg.OrionConfig) (*zap.Logger, error) {
	logCfg := zap.NewProductionConfig()
	if sCfg.ServerMode == cfg.ModeDev {
		logCfg = zap.NewDevelopmentConfig()
		logCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	logCfg.Level.SetLevel(logLevel(sCfg.LogLevel))
	if sCfg.SentryDSN == "" {
		return logCfg.Build()
	}
	return logCfg.Build(zap.Hooks(captureToSentry))
}

// logLevel parses LOG_LEVEL, falling back to info.
func logLevel(s string) zapcore.Level {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// captureToSentry forwards warnings and above.
func captureToSentry(entry zapcore.Entry) error {
	lvl, ok := sentryLevel(entry.Level)
	if !ok {
		return nil
	}
	e := sentry.NewEvent()
	e.Message = entry.Message
	e.Level = lvl
	if entry.LoggerName != "" {
		e.Logger = entry.LoggerName
	}
	sentry.CaptureEvent(e)
	return nil
}

func sentryLevel(l zapcore.Level) (sentry.Level, bool) {
	switch {
	case l < zapcore.WarnLevel:
		return "", false
	case l == zapcore.WarnLevel:
		return sentry.LevelWarning, true
	case l == zapcore.ErrorLevel:
		return sentry.LevelError, true
	}
	return sentry.LevelFatal, true
}
