package logx

import (
	"context"
	"strings"
	"sync"

	"bcvrates-service/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger    *zap.Logger
	buildOnce sync.Once
)

type ctxKey int

const (
	requestIDKey ctxKey = iota
	traceIDKey
)

// build runs on first use, so variables loaded from .env in main are seen.
func build() {
	zapCfg := zap.NewProductionConfig()
	zapCfg.Sampling = nil
	zapCfg.DisableStacktrace = true
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	appCfg := config.Load()
	if appCfg.LogLevel != "" {
		_ = zapCfg.Level.UnmarshalText([]byte(strings.ToLower(appCfg.LogLevel)))
	}

	var err error
	logger, err = zapCfg.Build(zap.AddCaller(), zap.Fields(zap.String("service", appCfg.ServiceName)))
	if err != nil {
		panic(err)
	}
}

// L returns the package-level logger, building it on first call.
func L() *zap.Logger {
	buildOnce.Do(build)
	return logger
}

// WithRequest stores request and trace ids for WithFields.
func WithRequest(ctx context.Context, requestID, traceID string) context.Context {
	ctx = context.WithValue(ctx, requestIDKey, requestID)
	return context.WithValue(ctx, traceIDKey, traceID)
}

func RequestID(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey).(string)
	return v
}

func TraceID(ctx context.Context) string {
	v, _ := ctx.Value(traceIDKey).(string)
	return v
}

// WithFields returns the base logger enriched with request/trace ids found in ctx.
func WithFields(ctx context.Context) *zap.Logger {
	var fields []zap.Field
	if rid := RequestID(ctx); rid != "" {
		fields = append(fields, zap.String("request_id", rid))
	}
	if tid := TraceID(ctx); tid != "" {
		fields = append(fields, zap.String("trace_id", tid))
	}
	if len(fields) == 0 {
		return L()
	}
	return L().With(fields...)
}
