/*
Package logger holds the process-wide zap logger.

Init builds it from the log section of the config. Until then, and in tests
that never call Init, every helper logs to a no-op core; tests that want to
inspect output install an observer core with Set.
*/
package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"erp/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var log *zap.Logger

// Init installs the logger described by cfg. Development runs get a
// console encoder unless json is asked for explicitly.
func Init(cfg *config.LogConfig, env string) error {
	sink, err := sinkFor(cfg)
	if err != nil {
		return err
	}
	core := zapcore.NewCore(encoderFor(cfg.Format, env), zapcore.AddSync(sink), levelOf(cfg.Level))
	log = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	return nil
}

func encoderFor(format, env string) zapcore.Encoder {
	ec := zap.NewProductionEncoderConfig()
	ec.TimeKey = "time"
	ec.EncodeTime = zapcore.ISO8601TimeEncoder
	ec.EncodeDuration = zapcore.StringDurationEncoder

	switch {
	case format == "json":
		return zapcore.NewJSONEncoder(ec)
	case format == "console", env == "development":
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapcore.NewConsoleEncoder(ec)
	}
	return zapcore.NewJSONEncoder(ec)
}

// sinkFor returns stdout, or a rotating file for output "file"
func sinkFor(cfg *config.LogConfig) (io.Writer, error) {
	if cfg.Output != "file" {
		return os.Stdout, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	return &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    positiveOr(cfg.MaxSizeMB, 10),
		MaxBackups: positiveOr(cfg.MaxBackups, 5),
		MaxAge:     positiveOr(cfg.MaxAgeDays, 7),
		Compress:   cfg.Compress,
	}, nil
}

func positiveOr(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}

// levelOf parses debug, info, warn or error. Anything else is info.
func levelOf(level string) zapcore.Level {
	l, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || l > zapcore.ErrorLevel {
		return zapcore.InfoLevel
	}
	return l
}

// Set replaces the process logger; nil restores the no-op logger
func Set(l *zap.Logger) {
	log = l
}

func current() *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

// Sync flushes buffered entries. Terminals and pipes reject fsync, which is
// not an error worth reporting at shutdown.
func Sync() error {
	err := current().Sync()
	if errors.Is(err, syscall.ENOTTY) || errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.EBADF) {
		return nil
	}
	return err
}

// Named returns a child logger for one component ("customer", "gorm")
func Named(component string) *zap.Logger {
	return current().Named(component)
}

// WithRequestID tags every entry with the request id
func WithRequestID(requestID string) *zap.Logger {
	return current().With(zap.String("request_id", requestID))
}

func Debug(msg string, fields ...zap.Field) { current().Debug(msg, fields...) }
func Info(msg string, fields ...zap.Field)  { current().Info(msg, fields...) }
func Warn(msg string, fields ...zap.Field)  { current().Warn(msg, fields...) }
func Error(msg string, fields ...zap.Field) { current().Error(msg, fields...) }
