package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/deppfellow/catalog/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerService_WithoutLicense(t *testing.T) {
	svc := NewLoggerService(config.DefaultObservabilityConfig())
	require.NotNil(t, svc)
	assert.Nil(t, svc.GetApplication())

	// Safe on an empty service.
	svc.Shutdown()

	var nilSvc *LoggerService
	assert.Nil(t, nilSvc.GetApplication())
}

func TestNewLoggerWithService_Level(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Logging.Level = "warn"

	l := NewLoggerWithService(cfg, nil)
	assert.Equal(t, zerolog.WarnLevel, l.GetLevel())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("info"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("bogus"))
}

func TestWithTraceContext_NilTransaction(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf)

	traced := WithTraceContext(l, nil)
	traced.Info().Msg("hello")
	assert.NotContains(t, buf.String(), "trace.id")
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	fallback := zerolog.New(&buf).With().Str("from", "fallback").Logger()

	got := FromContext(context.Background(), &fallback)
	assert.Same(t, &fallback, got)

	attached := zerolog.New(&buf).With().Str("from", "ctx").Logger()
	ctx := attached.WithContext(context.Background())

	FromContext(ctx, &fallback).Info().Msg("x")
	assert.Contains(t, buf.String(), `"from":"ctx"`)
}

func TestGetPgxTraceLogLevel(t *testing.T) {
	assert.Equal(t, 6, GetPgxTraceLogLevel(zerolog.DebugLevel))
	assert.Equal(t, 4, GetPgxTraceLogLevel(zerolog.InfoLevel))
	assert.Equal(t, 3, GetPgxTraceLogLevel(zerolog.WarnLevel))
	assert.Equal(t, 2, GetPgxTraceLogLevel(zerolog.ErrorLevel))
	assert.Equal(t, 0, GetPgxTraceLogLevel(zerolog.Disabled))
}
