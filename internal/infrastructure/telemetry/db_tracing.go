package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/shopcart/backend/internal/infrastructure/config"
)

type contextKey string

const queryStartTimeKey contextKey = "otel_query_start_time"

// DBTracing instruments GORM with otelgorm spans and flags slow queries on them.
type DBTracing struct {
	logFullSQL bool
	slowQuery  time.Duration
	dbSystem   string
	logger     *zap.Logger
}

// NewDBTracing creates the instrumentation for the given driver
func NewDBTracing(cfg config.TelemetryConfig, driver string, logger *zap.Logger) *DBTracing {
	slow := cfg.DBSlowQueryThresh
	if slow == 0 {
		slow = 200 * time.Millisecond
	}
	return &DBTracing{
		logFullSQL: cfg.DBLogFullSQL,
		slowQuery:  slow,
		dbSystem:   driver,
		logger:     logger,
	}
}

// Register installs otelgorm and the slow-query callbacks on db.
func (p *DBTracing) Register(db *gorm.DB) error {
	opts := []otelgorm.Option{otelgorm.WithDBName(p.dbSystem)}
	if !p.logFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	before := func(db *gorm.DB) {
		if db.Statement.Context != nil {
			db.Statement.Context = context.WithValue(db.Statement.Context, queryStartTimeKey, time.Now())
		}
	}

	cb := db.Callback()
	for _, register := range []func() error{
		func() error {
			if err := cb.Create().Before("gorm:create").Register("shop_timing:before_create", before); err != nil {
				return err
			}
			return cb.Create().After("gorm:create").Register("shop_slow_query:create", p.afterQuery)
		},
		func() error {
			if err := cb.Query().Before("gorm:query").Register("shop_timing:before_query", before); err != nil {
				return err
			}
			return cb.Query().After("gorm:query").Register("shop_slow_query:query", p.afterQuery)
		},
		func() error {
			if err := cb.Update().Before("gorm:update").Register("shop_timing:before_update", before); err != nil {
				return err
			}
			return cb.Update().After("gorm:update").Register("shop_slow_query:update", p.afterQuery)
		},
		func() error {
			if err := cb.Delete().Before("gorm:delete").Register("shop_timing:before_delete", before); err != nil {
				return err
			}
			return cb.Delete().After("gorm:delete").Register("shop_slow_query:delete", p.afterQuery)
		},
		func() error {
			if err := cb.Raw().Before("gorm:raw").Register("shop_timing:before_raw", before); err != nil {
				return err
			}
			return cb.Raw().After("gorm:raw").Register("shop_slow_query:raw", p.afterQuery)
		},
	} {
		if err := register(); err != nil {
			return err
		}
	}

	p.logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", p.logFullSQL),
		zap.Duration("slow_query_threshold", p.slowQuery),
		zap.String("db_system", p.dbSystem),
	)
	return nil
}

func (p *DBTracing) afterQuery(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	start, ok := ctx.Value(queryStartTimeKey).(time.Time)
	if !ok {
		return
	}
	elapsed := time.Since(start)
	if elapsed <= p.slowQuery {
		return
	}

	p.logger.Warn("Slow query",
		zap.String("table", db.Statement.Table),
		zap.Duration("elapsed", elapsed),
		zap.Bool("failed", db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound)),
	)
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.SetAttributes(
		attribute.Bool("db.slow_query", true),
		attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
	)
}
