package logger

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey string

const (
	LoggerKey   ctxKey = "logger"
	RequestID   ctxKey = "requestID"
	ServiceName        = "service"
)

type Logger interface {
	Debug(ctx context.Context, msg string, fields ...zap.Field)
	Info(ctx context.Context, msg string, fields ...zap.Field)
	Warn(ctx context.Context, msg string, fields ...zap.Field)
	Error(ctx context.Context, msg string, fields ...zap.Field)
	Fatal(ctx context.Context, msg string, fields ...zap.Field)
}

type logger struct {
	serviceName string
	logger      *zap.Logger
}

func (l logger) fields(ctx context.Context, fields []zap.Field) []zap.Field {
	fields = append(fields, zap.String(ServiceName, l.serviceName))

	if id, ok := ctx.Value(RequestID).(string); ok {
		fields = append(fields, zap.String(string(RequestID), id))
	}

	return fields
}

func (l logger) Debug(ctx context.Context, msg string, fields ...zap.Field) {
	l.logger.Debug(msg, l.fields(ctx, fields)...)
}

func (l logger) Info(ctx context.Context, msg string, fields ...zap.Field) {
	l.logger.Info(msg, l.fields(ctx, fields)...)
}

func (l logger) Warn(ctx context.Context, msg string, fields ...zap.Field) {
	l.logger.Warn(msg, l.fields(ctx, fields)...)
}

func (l logger) Error(ctx context.Context, msg string, fields ...zap.Field) {
	l.logger.Error(msg, l.fields(ctx, fields)...)
}

func (l logger) Fatal(ctx context.Context, msg string, fields ...zap.Field) {
	l.logger.Fatal(msg, l.fields(ctx, fields)...)
}

func New(level zapcore.Level, serviceName string) Logger {
	config := zap.Config{
		Encoding:         "console",
		Level:            zap.NewAtomicLevelAt(level),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "time",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalColorLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeName:     zapcore.FullNameEncoder,
		},
	}

	zapLogger, err := config.Build()
	if err != nil {
		zapLogger = zap.NewNop()
	}

	return &logger{
		serviceName: serviceName,
		logger:      zapLogger,
	}
}

// NewNop returns a Logger that discards everything. Used by tests and the
// console client, where log lines would interleave with user output.
func NewNop() Logger {
	return &logger{logger: zap.NewNop()}
}

// ParseLevel falls back to info on unknown level names.
func ParseLevel(level string) zapcore.Level {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel
	}

	return parsed
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestID, id)
}

func GetLoggerFromCtx(ctx context.Context) Logger {
	if l, ok := ctx.Value(LoggerKey).(Logger); ok {
		return l
	}

	return NewNop()
}
