package logging

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"
)

// SlowQueryThreshold is the duration above which queries are logged as slow.
const SlowQueryThreshold = 200 * time.Millisecond

type gormLogger struct {
	base  zerolog.Logger
	level gormlogger.LogLevel
}

// GormLogger adapts zerolog to GORM's logger interface. Failed and slow
// queries are always reported; every statement is traced when logQueries is
// set. Record-not-found results are expected and never logged as errors.
func GormLogger(base zerolog.Logger, logQueries bool) gormlogger.Interface {
	level := gormlogger.Warn
	if logQueries {
		level = gormlogger.Info
	}
	return &gormLogger{base: base, level: level}
}

func (g *gormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *g
	clone.level = level
	return &clone
}

func (g *gormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if g.level >= gormlogger.Info {
		l := g.logger(ctx)
		l.Info().Msgf(msg, data...)
	}
}

func (g *gormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if g.level >= gormlogger.Warn {
		l := g.logger(ctx)
		l.Warn().Msgf(msg, data...)
	}
}

func (g *gormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if g.level >= gormlogger.Error {
		l := g.logger(ctx)
		l.Error().Msgf(msg, data...)
	}
}

func (g *gormLogger) Trace(ctx context.Context, begin time.Time, fc func() (sql string, rowsAffected int64), err error) {
	if g.level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	logger := g.logger(ctx)

	switch {
	case err != nil && g.level >= gormlogger.Error && !errors.Is(err, gormlogger.ErrRecordNotFound):
		sql, rows := fc()
		logger.Error().Err(err).Str("sql", sql).Int64("rows", rows).Dur("elapsed", elapsed).Msg("query failed")
	case elapsed > SlowQueryThreshold && g.level >= gormlogger.Warn:
		sql, rows := fc()
		logger.Warn().Str("sql", sql).Int64("rows", rows).Dur("elapsed", elapsed).Msg("slow query")
	case g.level >= gormlogger.Info:
		sql, rows := fc()
		logger.Info().Str("sql", sql).Int64("rows", rows).Dur("elapsed", elapsed).Msg("query")
	}
}

// logger prefers the request logger so SQL lines carry the request id.
func (g *gormLogger) logger(ctx context.Context) zerolog.Logger {
	if ctx != nil {
		if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
			return l.With().Str("component", "gorm").Logger()
		}
	}
	return g.base.With().Str("component", "gorm").Logger()
}
