// Package logtrace provides structured, context-aware logging for the
// notarization client. A correlation ID travels in the context so every
// log line belonging to one notarization or verification flow can be
// grouped together.
package logtrace

import (
	"context"
	"os"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type correlationIDKey struct{}

var (
	mu     sync.RWMutex
	logger = newLogger("docnotary", "dev", zapcore.InfoLevel)
)

// Setup configures the process-wide logger. Safe to call more than once;
// the last call wins.
func Setup(service, environment string, level zapcore.Level) {
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(service, environment, level)
}

func newLogger(service, environment string, level zapcore.Level) *zap.Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.LowercaseLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		level,
	)

	return zap.New(core).With(
		zap.String("service", service),
		zap.String("env", environment),
	)
}

// CtxWithCorrelationID returns a context carrying the given correlation ID.
// An empty id gets replaced with a fresh UUID.
func CtxWithCorrelationID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = uuid.New().String()
	}
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// CorrelationIDFromCtx returns the correlation ID stored in ctx, if any.
func CorrelationIDFromCtx(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if id, ok := ctx.Value(correlationIDKey{}).(string); ok {
		return id
	}
	return ""
}

func Debug(ctx context.Context, msg string, fields Fields) { log(ctx, zapcore.DebugLevel, msg, fields) }
func Info(ctx context.Context, msg string, fields Fields)  { log(ctx, zapcore.InfoLevel, msg, fields) }
func Warn(ctx context.Context, msg string, fields Fields)  { log(ctx, zapcore.WarnLevel, msg, fields) }
func Error(ctx context.Context, msg string, fields Fields) { log(ctx, zapcore.ErrorLevel, msg, fields) }

// Fatal logs at fatal level and exits the process.
func Fatal(ctx context.Context, msg string, fields Fields) {
	log(ctx, zapcore.FatalLevel, msg, fields)
}

func log(ctx context.Context, level zapcore.Level, msg string, fields Fields) {
	mu.RLock()
	l := logger
	mu.RUnlock()

	zapFields := make([]zap.Field, 0, len(fields)+1)
	if id := CorrelationIDFromCtx(ctx); id != "" {
		zapFields = append(zapFields, zap.String(FieldCorrelationID, id))
	}
	for key, value := range fields {
		zapFields = append(zapFields, zap.Any(key, value))
	}

	if ce := l.Check(level, msg); ce != nil {
		ce.Write(zapFields...)
	}
}
