package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"erp/infrastructure/persistence"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	gormlogger "gorm.io/gorm/logger"
)

// SQLOptions tunes the statement logger. A zero SlowThreshold disables
// slow-query warnings.
type SQLOptions struct {
	Level         gormlogger.LogLevel
	SlowThreshold time.Duration
}

// SQLLevel maps database.log_level to a GORM level, warn by default
func SQLLevel(level string) gormlogger.LogLevel {
	switch level {
	case "debug", "info":
		return gormlogger.Info
	case "error":
		return gormlogger.Error
	case "silent":
		return gormlogger.Silent
	}
	return gormlogger.Warn
}

// SQLLogger implements gorm's logger.Interface on top of the "gorm" child of
// the process logger. Lookups that find no row are not logged: a missing key
// is an ordinary outcome of Get.
type SQLLogger struct {
	opts SQLOptions
	zl   *zap.Logger
}

var _ gormlogger.Interface = (*SQLLogger)(nil)

func NewSQLLogger(opts SQLOptions) *SQLLogger {
	return &SQLLogger{opts: opts, zl: Named("gorm")}
}

func (l *SQLLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.opts.Level = level
	return &clone
}

func (l *SQLLogger) Info(ctx context.Context, format string, args ...any) {
	l.printf(ctx, gormlogger.Info, zapcore.InfoLevel, format, args)
}

func (l *SQLLogger) Warn(ctx context.Context, format string, args ...any) {
	l.printf(ctx, gormlogger.Warn, zapcore.WarnLevel, format, args)
}

func (l *SQLLogger) Error(ctx context.Context, format string, args ...any) {
	l.printf(ctx, gormlogger.Error, zapcore.ErrorLevel, format, args)
}

func (l *SQLLogger) printf(ctx context.Context, threshold gormlogger.LogLevel, lvl zapcore.Level, format string, args []any) {
	if l.opts.Level < threshold {
		return
	}
	l.forRequest(ctx).Log(lvl, fmt.Sprintf(format, args...))
}

func (l *SQLLogger) forRequest(ctx context.Context) *zap.Logger {
	if id := persistence.RequestIDFromContext(ctx); id != "" {
		return l.zl.With(zap.String("request_id", id))
	}
	return l.zl
}

// Trace reports one finished statement
func (l *SQLLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	lvl, msg := l.classify(time.Since(begin), err)
	if msg == "" {
		return
	}

	sql, rows := fc()
	fields := []zap.Field{
		zap.String("sql", sql),
		zap.Duration("elapsed", time.Since(begin)),
		zap.Int64("rows", rows),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	l.forRequest(ctx).Log(lvl, msg, fields...)
}

// classify picks the entry for a statement; an empty message means skip it.
// A cancelled statement was abandoned by its caller and is only a warning.
func (l *SQLLogger) classify(elapsed time.Duration, err error) (zapcore.Level, string) {
	switch {
	case l.opts.Level <= gormlogger.Silent:
		return 0, ""
	case errors.Is(err, gormlogger.ErrRecordNotFound):
		return 0, ""
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return zapcore.WarnLevel, "Database operation abandoned"
	case err != nil:
		return zapcore.ErrorLevel, "Database operation failed"
	case l.opts.SlowThreshold > 0 && elapsed > l.opts.SlowThreshold && l.opts.Level >= gormlogger.Warn:
		return zapcore.WarnLevel, "Slow SQL query"
	case l.opts.Level >= gormlogger.Info:
		return zapcore.InfoLevel, "SQL query executed"
	}
	return 0, ""
}
