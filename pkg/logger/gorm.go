package logger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const maxLoggedSQL = 1000

// GormLogger sends gorm output to zap, tagged with the request id.
//
// Statements are logged at debug, slow statements at warn and failed ones at
// error. gorm.ErrRecordNotFound is not a failure here: the user gateway turns
// it into NotFound, so the lookup is only logged at debug.
type GormLogger struct {
	log   *zap.Logger
	slow  time.Duration
	level gormlogger.LogLevel
}

var _ gormlogger.Interface = (*GormLogger)(nil)

// NewGormLogger derives the gorm level from the level log is enabled at.
// A zero slow threshold disables slow statement warnings.
func NewGormLogger(log *zap.Logger, slow time.Duration) *GormLogger {
	return &GormLogger{
		log:   log,
		slow:  slow,
		level: gormLevel(zapcore.LevelOf(log.Core())),
	}
}

func gormLevel(l zapcore.Level) gormlogger.LogLevel {
	switch {
	case l <= zapcore.DebugLevel:
		return gormlogger.Info
	case l <= zapcore.WarnLevel:
		return gormlogger.Warn
	default:
		return gormlogger.Error
	}
}

// LogMode returns a copy logging at level.
func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Info {
		WithContext(ctx, l.log).Info(fmt.Sprintf(msg, data...))
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Warn {
		WithContext(ctx, l.log).Warn(fmt.Sprintf(msg, data...))
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...any) {
	if l.level >= gormlogger.Error {
		WithContext(ctx, l.log).Error(fmt.Sprintf(msg, data...))
	}
}

// Trace logs one executed statement.
func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	slow := l.slow > 0 && elapsed > l.slow
	failed := err != nil && !errors.Is(err, gorm.ErrRecordNotFound)

	enabled := (failed && l.level >= gormlogger.Error) ||
		(slow && l.level >= gormlogger.Warn) ||
		l.level >= gormlogger.Info
	if !enabled {
		return
	}

	sql, rows := fc()
	fields := []zap.Field{zap.Int64("rows", rows), zap.Duration("elapsed", elapsed)}
	if len(sql) > maxLoggedSQL {
		sql = sql[:maxLoggedSQL] + "..."
		fields = append(fields, zap.Bool("sql_truncated", true))
	}
	fields = append(fields, zap.String("sql", sql))

	log := WithContext(ctx, l.log)
	switch {
	case failed:
		log.Error("query failed", append(fields, zap.Error(err))...)
	case slow:
		log.Warn("slow query", append(fields, zap.Duration("threshold", l.slow))...)
	case err != nil:
		log.Debug("record not found", fields...)
	default:
		log.Debug("query", fields...)
	}
}
