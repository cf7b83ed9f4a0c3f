package database

import (
	"context"
	"errors"
	"time"

	"recipebox/internal/logging"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// gormLogger sends GORM output through the global zerolog logger.
// Record-not-found results are lookups, not failures, and are never logged.
type gormLogger struct {
	level logger.LogLevel
	slow  time.Duration
}

func newGormLogger(level logger.LogLevel) logger.Interface {
	return &gormLogger{level: level, slow: slowQueryThreshold}
}

func (l *gormLogger) LogMode(level logger.LogLevel) logger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *gormLogger) Info(_ context.Context, msg string, args ...any) {
	if l.level >= logger.Info {
		logging.Info().Str("component", "gorm").Msgf(msg, args...)
	}
}

func (l *gormLogger) Warn(_ context.Context, msg string, args ...any) {
	if l.level >= logger.Warn {
		logging.Warn().Str("component", "gorm").Msgf(msg, args...)
	}
}

func (l *gormLogger) Error(_ context.Context, msg string, args ...any) {
	if l.level >= logger.Error {
		logging.Error().Str("component", "gorm").Msgf(msg, args...)
	}
}

func (l *gormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= logger.Silent {
		return
	}
	elapsed := time.Since(begin)

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= logger.Error:
		sql, rows := fc()
		logging.Error().Str("component", "gorm").Err(err).
			Str("sql", sql).Int64("rows", rows).Dur("elapsed", elapsed).
			Msg("query failed")
	case l.slow > 0 && elapsed > l.slow && l.level >= logger.Warn:
		sql, rows := fc()
		logging.Warn().Str("component", "gorm").
			Str("sql", sql).Int64("rows", rows).Dur("elapsed", elapsed).
			Msg("slow query")
	case l.level >= logger.Info:
		sql, rows := fc()
		logging.Debug().Str("component", "gorm").
			Str("sql", sql).Int64("rows", rows).Dur("elapsed", elapsed).
			Msg("query")
	}
}
