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
)

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	DBName          string        // Database system reported on spans
	IncludeVars     bool          // Include query variables in spans (development only)
	SlowQueryThresh time.Duration // Queries slower than this get db.slow_query=true
}

type dbContextKey string

const queryStartKey dbContextKey = "otel_query_start_time"

// RegisterDBTracing installs the otelgorm plugin plus a callback pair that
// flags slow queries on the active span.
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	if cfg.DBName == "" {
		cfg.DBName = "postgresql"
	}
	if cfg.SlowQueryThresh <= 0 {
		cfg.SlowQueryThresh = 200 * time.Millisecond
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(cfg.DBName)}
	if !cfg.IncludeVars {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	before := func(tx *gorm.DB) {
		if tx.Statement.Context != nil {
			tx.Statement.Context = context.WithValue(tx.Statement.Context, queryStartKey, time.Now())
		}
	}
	after := func(tx *gorm.DB) {
		markSlowQuery(tx, cfg.SlowQueryThresh)
	}

	cb := db.Callback()
	steps := []func() error{
		func() error { return cb.Create().Before("gorm:create").Register("ga_timing:before_create", before) },
		func() error { return cb.Create().After("gorm:create").Register("ga_timing:after_create", after) },
		func() error { return cb.Query().Before("gorm:query").Register("ga_timing:before_query", before) },
		func() error { return cb.Query().After("gorm:query").Register("ga_timing:after_query", after) },
		func() error { return cb.Update().Before("gorm:update").Register("ga_timing:before_update", before) },
		func() error { return cb.Update().After("gorm:update").Register("ga_timing:after_update", after) },
		func() error { return cb.Delete().Before("gorm:delete").Register("ga_timing:before_delete", before) },
		func() error { return cb.Delete().After("gorm:delete").Register("ga_timing:after_delete", after) },
		func() error { return cb.Raw().Before("gorm:raw").Register("ga_timing:before_raw", before) },
		func() error { return cb.Raw().After("gorm:raw").Register("ga_timing:after_raw", after) },
	}
	for _, register := range steps {
		if err := register(); err != nil {
			return err
		}
	}

	logger.Info("Database tracing enabled",
		zap.String("db_system", cfg.DBName),
		zap.Duration("slow_query_threshold", cfg.SlowQueryThresh),
	)
	return nil
}

func markSlowQuery(tx *gorm.DB, threshold time.Duration) {
	ctx := tx.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	if tx.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", tx.Statement.Table))
	}
	if tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		RecordError(span, tx.Error)
	}
	if start, ok := ctx.Value(queryStartKey).(time.Time); ok {
		if elapsed := time.Since(start); elapsed > threshold {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
			)
		}
	}
}
