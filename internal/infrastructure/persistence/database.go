package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jewelry-erp/backend/internal/infrastructure/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Database owns the GORM handle and its connection pool.
type Database struct {
	DB   *gorm.DB
	pool *sql.DB
}

type openOptions struct {
	gorm     gorm.Config
	attempts int
	backoff  time.Duration
}

type Option func(*openOptions)

// WithLogger sets the GORM logger, normally logger.NewGormLogger.
func WithLogger(l gormlogger.Interface) Option {
	return func(o *openOptions) { o.gorm.Logger = l }
}

// WithConnectRetry pings up to attempts times, doubling the wait from
// backoff, before giving up. It covers a database container that is still
// starting when the server boots.
func WithConnectRetry(attempts int, backoff time.Duration) Option {
	return func(o *openOptions) {
		o.attempts = max(attempts, 1)
		o.backoff = backoff
	}
}

// NewDatabase opens a PostgreSQL pool. TranslateError turns unique and
// foreign key violations into gorm sentinels that repositories map to
// domain errors.
func NewDatabase(cfg *config.DatabaseConfig, opts ...Option) (*Database, error) {
	o := openOptions{
		gorm: gorm.Config{
			Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
			SkipDefaultTransaction: true,
			PrepareStmt:            true,
			TranslateError:         true,
		},
		attempts: 1,
	}
	for _, opt := range opts {
		opt(&o)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &o.gorm)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	d, err := wrap(db)
	if err != nil {
		return nil, err
	}
	d.pool.SetMaxOpenConns(cfg.MaxOpenConns)
	d.pool.SetMaxIdleConns(cfg.MaxIdleConns)
	d.pool.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)
	d.pool.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTime) * time.Minute)

	wait := o.backoff
	for attempt := 1; ; attempt++ {
		err = d.pool.Ping()
		if err == nil {
			return d, nil
		}
		if attempt >= o.attempts {
			_ = d.pool.Close()
			return nil, fmt.Errorf("ping database after %d attempt(s): %w", attempt, err)
		}
		time.Sleep(wait)
		wait *= 2
	}
}

func wrap(db *gorm.DB) (*Database, error) {
	pool, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get connection pool: %w", err)
	}
	return &Database{DB: db, pool: pool}, nil
}

func (d *Database) Close() error {
	return d.pool.Close()
}

// Ping backs the /ready database check.
func (d *Database) Ping(ctx context.Context) error {
	return d.pool.PingContext(ctx)
}
