// Package main
package main

import (
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"

	"github.com/mayur-samrutwar/orion/cfg"
)

func TestLogLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, logLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, logLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, logLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, logLevel(""))
	assert.Equal(t, zapcore.InfoLevel, logLevel("verbose"))
}

func TestSentryLevel(t *testing.T) {
	_, ok := sentryLevel(zapcore.InfoLevel)
	assert.False(t, ok)

	tests := map[zapcore.Level]sentry.Level{
		zapcore.WarnLevel:   sentry.LevelWarning,
		zapcore.ErrorLevel:  sentry.LevelError,
		zapcore.DPanicLevel: sentry.LevelFatal,
		zapcore.FatalLevel:  sentry.LevelFatal,
	}
	for in, want := range tests {
		got, ok := sentryLevel(in)
		assert.True(t, ok, in.String())
		assert.Equal(t, want, got, in.String())
	}
}

func TestNewLogger(t *testing.T) {
	logger, err := newLogger(cfg.OrionConfig{ServerMode: cfg.ModeProduction, LogLevel: "warn"})
	assert.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
}
